package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/history"
	"github.com/lakshaymaurya-felt/winsweep/internal/restore"
	"github.com/lakshaymaurya-felt/winsweep/internal/trashbin"
	"github.com/lakshaymaurya-felt/winsweep/internal/ui"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [path]",
	Short: "Undo a cleaning session",
	Long: `Restore deleted items from the trash store.

Without arguments, replays the most recent cleaning session from the
deletion history. With a path, restores that single file or directory
regardless of history. With --session, replays a specific session
listed by 'ws history'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bin, err := trashbin.Open()
		if err != nil {
			return err
		}
		store, err := history.OpenDefault()
		if err != nil {
			return err
		}

		engine := restore.New(bin, store)
		engine.Quiet = quiet

		// Ad hoc single-path restore consults no history.
		if len(args) == 1 {
			result, err := engine.RestorePath(args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Summary())
			return nil
		}

		session, _ := cmd.Flags().GetString("session")

		// Preflight: an empty latest session (everything failed or was
		// deleted permanently) reads the same as no history at all.
		if session == "" {
			count, err := engine.RestorableCount()
			if err != nil {
				return err
			}
			if count == 0 {
				return restore.ErrNothingToRestore
			}
		}

		run := func(progress restore.Progress) (restore.Result, error) {
			if session != "" {
				log, err := store.LoadLog(session)
				if err != nil {
					return restore.Result{}, err
				}
				return engine.RestoreLog(log, progress)
			}
			return engine.RestoreLast(progress)
		}

		var result restore.Result
		if !quiet && isatty.IsTerminal(os.Stdout.Fd()) {
			// Per-record prints would tear the progress display.
			engine.Quiet = true
			result, err = restore.RunInteractive(run)
		} else {
			result, err = run(nil)
		}
		if err != nil {
			return err
		}

		fmt.Println(ui.Success("✓ ") + result.Summary())
		return nil
	},
}

func init() {
	restoreCmd.Flags().String("session", "", "Session id to restore (see 'ws history')")
}
