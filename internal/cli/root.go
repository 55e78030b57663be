package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "playerctl",
		Short: "CLI tool for the player registry API",
		Long: `playerctl is a CLI tool for interacting with the player registry JSON API.

It supports listing, counting, creating, updating and deleting players,
as well as checking server health.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}
			timeout, err := time.ParseDuration(cfg.Timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, timeout)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PLAYERCTL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: PLAYERCTL_OUTPUT)")
	rootCmd.PersistentFlags().StringVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (env: PLAYERCTL_TIMEOUT)")

	// Add subcommands
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command, printing any error in the chosen format
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		NewOutput(cfg.Output, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
