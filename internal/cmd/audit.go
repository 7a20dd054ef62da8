package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/api"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit trail",
	Long: `Query the platform audit trail: logins, failed logins, administrative
changes, and security events. Entries are newest first.

Examples:
  adminctl audit logs
  adminctl audit logs --action login_failed --days 7
  adminctl audit logs --org org_123 --limit 200 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var auditLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List audit log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		orgID, _ := cmd.Flags().GetString("org")
		action, _ := cmd.Flags().GetString("action")
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("limit")

		logs, err := a.client.AuditLogs(cmd.Context(), api.AuditLogFilter{
			OrganizationID: orgID,
			Action:         action,
			Days:           days,
			Limit:          limit,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(logs)
		}

		if len(logs) == 0 {
			fmt.Println("No audit entries match.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tSTATUS\tUSER\tIP")
		for _, entry := range logs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
				entry.Action, entry.Status, entry.UserEmail, entry.IPAddress)
		}
		return w.Flush()
	},
}

func init() {
	auditCmd.AddCommand(auditLogsCmd)

	auditLogsCmd.Flags().String("org", "", "only entries for this organization")
	auditLogsCmd.Flags().String("action", "", "only entries with this action (e.g. login_failed)")
	auditLogsCmd.Flags().Int("days", 7, "how many days back to search")
	auditLogsCmd.Flags().Int("limit", 100, "maximum entries to return")
	auditLogsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(auditCmd)
}
