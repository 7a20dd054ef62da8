package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive platform dashboard",
	Long: `Open the interactive dashboard: user and organization totals, license
distribution, and recent signups. Press r to refresh, q to quit.

Examples:
  adminctl dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		program := tea.NewProgram(tui.NewDashboardModel(a.client))
		_, err = program.Run()
		return err
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live system monitor",
	Long: `Open the live monitor: system statistics and per-endpoint API health,
polled on an interval.

Examples:
  adminctl monitor
  adminctl monitor --interval 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		interval, _ := cmd.Flags().GetDuration("interval")
		program := tea.NewProgram(tui.NewMonitorModel(a.client, interval))
		_, err = program.Run()
		return err
	},
}

func init() {
	monitorCmd.Flags().Duration("interval", 10*time.Second, "poll interval")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(monitorCmd)
}
