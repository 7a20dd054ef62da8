package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/errors"
	"github.com/authway/adminctl/internal/session"
	"github.com/authway/adminctl/internal/store"
	"github.com/authway/adminctl/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the admin session",
	Long: `Manage the admin session against the Authway backend.

The auth command provides subcommands for logging in, logging out, and
checking the current session. Tokens are stored encrypted in the state
directory (~/.authway by default) and expired access tokens are refreshed
transparently on the next command.

Examples:
  adminctl auth login --email admin@example.com
  adminctl auth status
  adminctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd handles login
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the Authway backend with an admin account.

Missing credentials are prompted for interactively; in scripts pass both
--email and --password (or pipe the password via AUTHWAY_PASSWORD).

Examples:
  adminctl auth login
  adminctl auth login --email admin@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			if !tui.ShouldPrompt() {
				return errors.New(errors.ErrCodeAuthLoginFailed, "credentials required").
					WithSuggestion("Pass --email and --password when not running interactively")
			}
			creds, err := tui.PromptForCredentials(email, password)
			if err != nil {
				return err
			}
			email, password = creds.Email, creds.Password
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		user, err := a.session.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Role)
		if user.OrganizationName != "" {
			fmt.Printf("Organization: %s\n", user.OrganizationName)
		}
		if license := a.session.CurrentLicense(); license != nil {
			fmt.Printf("License: %s\n", license.Type)
		}
		return nil
	},
}

// authLogoutCmd handles logout
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Long: `Revoke the refresh token server-side and clear the local session.

The local session is cleared even when the backend cannot be reached.

Examples:
  adminctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if !a.session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		user := a.session.CurrentUser()
		if err := a.session.Logout(cmd.Context()); err != nil {
			return err
		}

		if user != nil {
			fmt.Printf("Logged out %s.\n", user.Email)
		} else {
			fmt.Println("Logged out.")
		}
		return nil
	},
}

// authStatusCmd shows the current session
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if !a.session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			fmt.Println()
			fmt.Println("Use 'adminctl auth login' to start a session.")
			return nil
		}

		user := a.session.CurrentUser()
		fmt.Printf("Logged in as:  %s (%s)\n", user.Email, user.Role)
		if user.OrganizationName != "" {
			fmt.Printf("Organization:  %s\n", user.OrganizationName)
		}
		if license := a.session.CurrentLicense(); license != nil {
			valid := "valid"
			if !license.IsValid {
				valid = "INVALID"
			}
			fmt.Printf("License:       %s (%s)\n", license.Type, valid)
		}

		if token, ok := a.store.Get(store.KeyAccessToken); ok {
			fmt.Printf("Access token:  %s\n", session.Fingerprint(token))
		}
		if expiry, ok := a.session.TokenExpiry(); ok {
			remaining := time.Until(expiry).Round(time.Second)
			if remaining > 0 {
				fmt.Printf("Token expires: %s (in %s)\n", expiry.Local().Format(time.RFC1123), remaining)
			} else {
				fmt.Printf("Token expires: %s (expired, will refresh on next call)\n", expiry.Local().Format(time.RFC1123))
			}
		}
		fmt.Printf("Backend:       %s\n", a.cfg.APIURL)
		return nil
	},
}

// authValidateCmd validates a user's standing server-side
var authValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a user's token and license standing",
	Long: `Ask the backend to validate a user's standing: token validity plus the
organization's license state. Defaults to the logged-in user.

Examples:
  adminctl auth validate
  adminctl auth validate --user-id u_123 --org-id org_456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		userID, _ := cmd.Flags().GetString("user-id")
		orgID, _ := cmd.Flags().GetString("org-id")
		if userID == "" {
			user := a.session.CurrentUser()
			userID = user.ID
			if orgID == "" {
				orgID = user.OrganizationID
			}
		}

		result, err := a.client.Validate(cmd.Context(), userID, orgID)
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Printf("Valid. License: %s\n", result.LicenseStatus)
			return nil
		}
		fmt.Printf("NOT valid. License: %s\n", result.LicenseStatus)
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authValidateCmd)

	authLoginCmd.Flags().String("email", "", "admin email address")
	authLoginCmd.Flags().String("password", "", "password (prompted when omitted)")

	authValidateCmd.Flags().String("user-id", "", "user to validate (defaults to the logged-in user)")
	authValidateCmd.Flags().String("org-id", "", "organization for the license check")

	rootCmd.AddCommand(authCmd)
}
