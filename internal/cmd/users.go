package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/api"
	"github.com/authway/adminctl/internal/tui"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
	Long: `Manage users across the platform's organizations.

Examples:
  adminctl users list
  adminctl users list --org org_123
  adminctl users create --email dev@acme.com --org org_123
  adminctl users update u_456 --role manager
  adminctl users delete u_456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, optionally scoped to one organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		orgID, _ := cmd.Flags().GetString("org")
		users, err := a.client.ListUsers(cmd.Context(), orgID)
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tROLE\tORGANIZATION\tACTIVE\tLAST LOGIN")
		for _, u := range users {
			lastLogin := "never"
			if u.LastLogin != nil {
				lastLogin = u.LastLogin.Local().Format("2006-01-02 15:04")
			}
			org := u.OrganizationName
			if org == "" {
				org = u.OrganizationID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
				u.ID, u.Email, u.Role, org, u.IsActive, lastLogin)
		}
		return w.Flush()
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user in an organization",
	Long: `Create a user. The password is prompted for when not passed via flag.

Examples:
  adminctl users create --email dev@acme.com --name "Dev Eloper" --org org_123 --role member`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		orgID, _ := cmd.Flags().GetString("org")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if orgID == "" {
			return fmt.Errorf("--org is required")
		}
		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required when not running interactively")
			}
			creds, err := tui.PromptForCredentials(email, "")
			if err != nil {
				return err
			}
			password = creds.Password
		}

		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		user, err := a.client.CreateUser(cmd.Context(), api.CreateUserRequest{
			Email:          email,
			FullName:       name,
			Password:       password,
			Role:           role,
			OrganizationID: orgID,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user",
	Long: `Update a user. Only the fields passed as flags change; everything else
is left as it was.

Examples:
  adminctl users update u_456 --role manager
  adminctl users update u_456 --deactivate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req api.UpdateUserRequest
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.FullName = &name
		}
		if cmd.Flags().Changed("role") {
			role, _ := cmd.Flags().GetString("role")
			req.Role = &role
		}
		if cmd.Flags().Changed("activate") {
			active := true
			req.IsActive = &active
		}
		if cmd.Flags().Changed("deactivate") {
			active := false
			req.IsActive = &active
		}
		if req.FullName == nil && req.Role == nil && req.IsActive == nil {
			return fmt.Errorf("nothing to update: pass --name, --role, --activate, or --deactivate")
		}

		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		user, err := a.client.UpdateUser(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}

		fmt.Printf("Updated user %s (role %s, active %t)\n", user.Email, user.Role, user.IsActive)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("pass --force to delete without confirmation")
			}
			confirmed, err := tui.PromptForConfirmation(
				fmt.Sprintf("Delete user %s? This cannot be undone.", args[0]), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		a, err := newAuthedApp()
		if err != nil {
			return err
		}

		if err := a.client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersListCmd.Flags().String("org", "", "only users of this organization")

	usersCreateCmd.Flags().String("email", "", "email address (required)")
	usersCreateCmd.Flags().String("name", "", "full name")
	usersCreateCmd.Flags().String("role", "member", "role: member, manager, or admin")
	usersCreateCmd.Flags().String("org", "", "organization id (required)")
	usersCreateCmd.Flags().String("password", "", "initial password (prompted when omitted)")

	usersUpdateCmd.Flags().String("name", "", "new full name")
	usersUpdateCmd.Flags().String("role", "", "new role")
	usersUpdateCmd.Flags().Bool("activate", false, "activate the account")
	usersUpdateCmd.Flags().Bool("deactivate", false, "deactivate the account")

	usersDeleteCmd.Flags().Bool("force", false, "skip the confirmation prompt")

	rootCmd.AddCommand(usersCmd)
}
