package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/health"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Platform statistics and health",
	Long: `Print platform statistics or run health checks.

Examples:
  adminctl stats dashboard
  adminctl stats system --json
  adminctl stats health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var statsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		stats, err := a.client.DashboardStats(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(stats)
		}

		fmt.Printf("Users:          %d (%d new this week, %d active this month)\n",
			stats.TotalUsers, stats.NewUsersWeek, stats.ActiveUsersMonth)
		fmt.Printf("Organizations:  %d\n", stats.TotalOrganizations)
		fmt.Printf("Licenses:       %d active, %d expiring soon\n",
			stats.ActiveLicenses, stats.ExpiringSoon)

		if len(stats.LicenseDistribution) > 0 {
			types := make([]string, 0, len(stats.LicenseDistribution))
			for t := range stats.LicenseDistribution {
				types = append(types, t)
			}
			sort.Strings(types)
			parts := make([]string, len(types))
			for i, t := range types {
				parts[i] = fmt.Sprintf("%s %d", t, stats.LicenseDistribution[t])
			}
			fmt.Printf("Distribution:   %s\n", strings.Join(parts, ", "))
		}

		if len(stats.RecentUsers) > 0 {
			fmt.Println("\nRecent signups:")
			for _, u := range stats.RecentUsers {
				fmt.Printf("  %s (%s)\n", u.Email, u.Role)
			}
		}
		return nil
	},
}

var statsSystemCmd = &cobra.Command{
	Use:   "system",
	Short: "Print system statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		stats, err := a.client.SystemStats(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(stats)
		}

		fmt.Printf("Organizations:  %d total, %d active, %d paused\n",
			stats.TotalOrganizations, stats.ActiveOrganizations, stats.PausedOrganizations)
		fmt.Printf("Users:          %d total, %d active\n", stats.TotalUsers, stats.ActiveUsers)
		fmt.Printf("Licenses:       %d expired, %d expiring soon\n",
			stats.ExpiredLicenses, stats.ExpiringSoon)
		fmt.Printf("Security:       %d failed logins today, %d IP violations\n",
			stats.FailedLoginsToday, stats.IPViolationsToday)
		fmt.Printf("API:            %s (%s, %dms)\n",
			stats.APIHealth.Status, stats.APIHealth.Message, stats.APIHealth.ResponseTime)
		return nil
	},
}

var statsHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run local health checks against the backend and state",
	Long: `Run the console's own health checks: backend API reachability and
per-endpoint health, license standing, and state directory writability.

The exit code is non-zero when any check is unhealthy, so the command works
as a scriptable probe.

Examples:
  adminctl stats health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		manager := health.NewManager()
		manager.AddChecker(health.NewBackendChecker(a.client))
		manager.AddChecker(health.NewLicenseChecker(a.client, a.session))
		manager.AddChecker(health.NewStateDirChecker(a.cfg.StateDir))

		results := manager.Check(cmd.Context())
		overall := manager.OverallStatus(results)

		for _, name := range manager.CheckNames() {
			result := results[name]
			if result == nil {
				continue
			}
			fmt.Printf("%-12s %-10s %s (%s)\n",
				name, statusGlyph(result.Status)+" "+result.Status.String(),
				result.Message, result.Latency.Round(time.Millisecond))
		}
		fmt.Printf("\nOverall: %s\n", overall)

		if overall == health.StatusUnhealthy {
			return fmt.Errorf("health checks failed")
		}
		return nil
	},
}

func statusGlyph(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return "✓"
	case health.StatusDegraded:
		return "!"
	default:
		return "✗"
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	statsCmd.AddCommand(statsDashboardCmd)
	statsCmd.AddCommand(statsSystemCmd)
	statsCmd.AddCommand(statsHealthCmd)

	statsDashboardCmd.Flags().Bool("json", false, "output as JSON")
	statsSystemCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(statsCmd)
}
