package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authway/adminctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage adminctl configuration",
	Long: `Manage adminctl configuration.

Configuration is read from ` + "`~/.authway/config.yaml`" + ` and overridden by
AUTHWAY_* environment variables and global flags.

Examples:
  adminctl config init
  adminctl config show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(config.DefaultStateDir())
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		fmt.Printf("api_url:     %s\n", a.cfg.APIURL)
		fmt.Printf("timeout:     %s\n", a.cfg.Timeout)
		fmt.Printf("state_dir:   %s\n", a.cfg.StateDir)
		fmt.Printf("log_level:   %s\n", a.cfg.LogLevel)
		fmt.Printf("log_format:  %s\n", a.cfg.LogFormat)
		fmt.Printf("config file: %s\n", config.FilePath(a.cfg.StateDir))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(configCmd)
}
