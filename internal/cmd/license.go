package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Inspect license standing",
	Long: `Inspect license standing: the logged-in organization's own license, or
any organization's validity by id.

Examples:
  adminctl license status
  adminctl license check org_123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var licenseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the logged-in organization's license",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		status, err := a.client.LicenseStatus(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Organization: %s\n", status.OrganizationName)
		fmt.Printf("License:      %s\n", status.LicenseType)
		if status.IsValid {
			fmt.Printf("Status:       valid, %d days remaining\n", status.DaysRemaining)
		} else {
			fmt.Println("Status:       INVALID or expired")
		}
		fmt.Printf("Expires:      %s\n", status.ExpiresAt.Local().Format("2006-01-02"))
		fmt.Printf("Seats:        %d\n", status.MaxUsers)
		if len(status.FeaturesEnabled) > 0 {
			fmt.Printf("Features:     %s\n", strings.Join(status.FeaturesEnabled, ", "))
		}
		return nil
	},
}

var licenseCheckCmd = &cobra.Command{
	Use:   "check <org-id>",
	Short: "Check another organization's license validity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		check, err := a.client.CheckLicense(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if check.Valid {
			fmt.Printf("License for %s is valid.\n", args[0])
			return nil
		}
		fmt.Printf("License for %s is NOT valid", args[0])
		if check.Reason != "" {
			fmt.Printf(" (%s)", check.Reason)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	licenseCmd.AddCommand(licenseStatusCmd)
	licenseCmd.AddCommand(licenseCheckCmd)

	rootCmd.AddCommand(licenseCmd)
}
