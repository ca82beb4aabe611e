package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <item-id>",
	Short: "Export a purchase dossier with attachment previews",
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

		dossier, err := export.Build(cmd.Context(), database, itemID)
		if err != nil {
			return err
		}

		dest := exportOut
		if dest == "" {
			dest = fmt.Sprintf("dossier-%d.html", itemID)
		}
		if err := dossier.WriteFile(dest); err != nil {
			return err
		}
		output.Success("dossier written to %s", dest)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: dossier-<id>.html)")
	rootCmd.AddCommand(exportCmd)
}
