package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/winsweep/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Monitor system health",
	Long:  "Real-time dashboard with CPU, memory, disk, network, and process metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetInt("refresh")
		if refresh < 1 {
			refresh = 1
		}
		interval := time.Duration(refresh) * time.Second

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON || !isatty.IsTerminal(os.Stdout.Fd()) {
			// One-shot snapshot; two samples so rates are meaningful.
			first, err := status.CollectMetrics(nil, 0)
			if err != nil {
				return err
			}
			time.Sleep(interval)
			metrics, err := status.CollectMetrics(&first.Network, interval)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(metrics)
		}

		model := status.NewModel(interval)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard failed: %w", err)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("refresh", 1, "Refresh interval in seconds")
	statusCmd.Flags().Bool("json", false, "Output one metrics snapshot as JSON")
}
