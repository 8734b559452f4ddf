// Package cmd implements the CLI commands for the storefront server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Product catalog and cart service",
	Long: "An API-first e-commerce backend serving a filterable, paginated product\n" +
		"catalog with per-user favorites and a Redis-backed cart.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
