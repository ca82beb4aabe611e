package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/export"
	"github.com/erazemk/proofpal/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		stats, err := store.CountStats(cmd.Context(), database, time.Now().UTC())
		if err != nil {
			return err
		}

		output.Cards(
			output.Card("Tracked purchases", fmt.Sprintf("%d", stats.TotalItems)),
			output.Card("Returns due soon", fmt.Sprintf("%d", stats.ReturnsDue)),
			output.Card("Warranties to watch", fmt.Sprintf("%d", stats.WarrantiesDue)),
			output.Card("Spent this month", export.FormatMoney(stats.MonthlyTotal)),
		)

		if len(stats.RecentActions) > 0 {
			fmt.Println()
			output.Header("Recent activity")
			for _, entry := range stats.RecentActions {
				output.Muted("%s · %s %s", entry.TS.Format("2006-01-02 15:04"), entry.Action, humanize.Time(entry.TS))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
