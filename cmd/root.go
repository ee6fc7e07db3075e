// Package cmd defines the CLI commands for the alertrelay executable.
package cmd

import "github.com/spf13/cobra"

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alertrelay",
		Short: "Webhook service that turns Google Alert emails into SmartSuite leads",
		Long: `alertrelay receives forwarded Google Alert emails over HTTP, extracts
the individual alerts, enriches each one with article content and structured
lead fields, and submits the resulting records to SmartSuite.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./alertrelay.yaml)")
	cmd.AddCommand(newServeCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
