// Package cmd implements the sfc CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/mstepanov/storefront/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "sfc",
		Short: "CLI client for the storefront API",
		Long: "sfc is a command-line client for the storefront API.\n" +
			"It lets you browse the catalog with filters and pagination,\n" +
			"manage products and categories, and work with favorites, the\n" +
			"cart, and orders from the terminal.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.sfc.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("user", "", "user ID sent as X-User-ID (favorites and cart)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(favoritesCmd())
	rootCmd.AddCommand(cartCmd())
	rootCmd.AddCommand(ordersCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sfc")
	}

	viper.SetEnvPrefix("SFC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	opts := []apiclient.Option{}
	if user := viper.GetString("user"); user != "" {
		opts = append(opts, apiclient.WithUserID(user))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
