package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/archive"
	"github.com/erazemk/proofpal/internal/store"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage proof-of-purchase attachments",
}

var filesAddCmd = &cobra.Command{
	Use:   "add <item-id> <path>...",
	Short: "Copy files into the archive and attach them to an item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		cfg, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		// The item must exist before any bytes are copied.
		if _, err := store.GetItem(cmd.Context(), database, itemID); err != nil {
			return err
		}

		arch := archive.New(cfg.FilesDir())
		for _, src := range args[1:] {
			desc, err := arch.CopyFileToItem(src, itemID)
			if err != nil {
				return err
			}
			file, err := store.AddFile(cmd.Context(), database, itemID, *desc)
			if err != nil {
				return err
			}
			output.Success("attached %s (%s, %s)", file.Path, file.MIME, humanize.Bytes(uint64(file.Size)))
		}
		return nil
	},
}

var filesListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List an item's attachments, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		files, err := store.ListFiles(cmd.Context(), database, itemID)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			output.Muted("no attachments")
			return nil
		}

		for _, file := range files {
			fmt.Printf("%-5d %s  %s  %s  uploaded %s\n",
				file.ID, file.Path, file.MIME, humanize.Bytes(uint64(file.Size)),
				humanize.Time(file.UploadedAt))
		}
		return nil
	},
}

var filesRmCmd = &cobra.Command{
	Use:   "rm <file-id>",
	Short: "Remove an attachment record and its archived file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file id %q", args[0])
		}

		cfg, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		file, err := store.GetFile(cmd.Context(), database, fileID)
		if err != nil {
			return err
		}
		if err := store.DeleteFile(cmd.Context(), database, fileID); err != nil {
			return err
		}

		// Another record may still point at the same stored bytes; only
		// delete them when this was the last reference.
		refs, err := store.CountFilesByPath(cmd.Context(), database, file.Path)
		if err != nil {
			return err
		}
		if refs == 0 {
			if err := archive.New(cfg.FilesDir()).RemoveFile(file.Path); err != nil {
				output.Warning("record removed, but stored file remains: %v", err)
				return nil
			}
		}
		output.Success("attachment %d removed", fileID)
		return nil
	},
}

func init() {
	filesCmd.AddCommand(filesAddCmd, filesListCmd, filesRmCmd)
	rootCmd.AddCommand(filesCmd)
}
