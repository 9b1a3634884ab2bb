package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/core"
	"github.com/lakshaymaurya-felt/winsweep/internal/history"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past cleaning sessions",
	Long:  "List recorded cleaning sessions, newest first. Session ids feed 'ws restore --session'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.OpenDefault()
		if err != nil {
			return err
		}

		ids, err := store.ListLogs()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No cleaning sessions recorded.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(ids) > limit {
			ids = ids[:limit]
		}

		fmt.Println("\n  " + ui.Bold("Cleaning sessions") + ui.Muted("  (newest first)"))
		fmt.Println()
		for i, id := range ids {
			log, err := store.LoadLog(id)
			if err != nil {
				fmt.Printf("  %-26s %s\n", id, ui.Error("unreadable: "+err.Error()))
				continue
			}

			var bytes int64
			deleted := 0
			for _, r := range log.Records {
				if r.Success {
					deleted++
					bytes += r.SizeBytes
				}
			}

			marker := " "
			if i == 0 {
				marker = ui.Success("*")
			}
			fmt.Printf("  %s %-26s %s  %4d deleted, %d restorable, %s\n",
				marker, id, log.CreatedAt.Format("2006-01-02 15:04:05"),
				deleted, log.RestorableCount(), core.FormatSize(bytes))
		}
		fmt.Println()
		fmt.Println(ui.Muted("  * latest session; 'ws restore' replays it"))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to list (0 = all)")
}
