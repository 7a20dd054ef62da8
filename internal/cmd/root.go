// Package cmd wires the adminctl command tree. Each command builds an
// explicit app handle (config, store, client, session) at run time; no
// session state lives in package globals.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Authway platform administration console",
	Long: `adminctl is the terminal administration console for the Authway
authentication platform. It manages users, organizations, and licenses,
inspects the platform database, and monitors backend health.

Authenticate once with 'adminctl auth login'; the session persists across
invocations and expired access tokens are refreshed transparently.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagAPIURL   string
	flagLogLevel string
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend origin (overrides config and AUTHWAY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "minimum log level: debug, info, warn, error")
}
