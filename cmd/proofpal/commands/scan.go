package commands

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/alerts"
)

var scanQuiet bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fire reminders for deadlines that have arrived",
	Long: `Finds alerts whose due date has arrived and have not been sent,
shows a reminder for each and marks it sent. Safe to run on a
timer: alerts stay pending until a scan processes them, and a
second run right after finds nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		var notifier alerts.Notifier = alerts.ConsoleNotifier{}
		if scanQuiet {
			notifier = alerts.LogNotifier{}
		}

		scanner := alerts.NewScanner(database, notifier)
		count, err := scanner.Scan(cmd.Context())
		if err != nil {
			return err
		}
		if count == 0 {
			output.Muted("nothing due")
		} else {
			output.Success("%d reminder(s) sent", count)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "Log reminders instead of printing them")
	rootCmd.AddCommand(scanCmd)
}
