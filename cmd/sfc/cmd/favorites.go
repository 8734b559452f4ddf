package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func favoritesCmd() *cobra.Command {
	favoritesRoot := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorited products",
		Long: "Manage the per-user favorites list. All favorites commands need a\n" +
			"user identity, set via --user or SFC_USER.",
		PersistentPreRunE: requireUser,
	}

	favoritesRoot.AddCommand(
		favoritesListCmd(),
		favoritesAddCmd(),
		favoritesRemoveCmd(),
	)

	return favoritesRoot
}

func requireUser(_ *cobra.Command, _ []string) error {
	if viper.GetString("user") == "" {
		return fmt.Errorf("--user is required (or set SFC_USER)")
	}
	return nil
}

func favoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorited products",
		Example: `  sfc favorites list --user alice
  sfc favorites list --user alice --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			items, err := c.Favorites(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(items)
			}
			if len(items) == 0 {
				fmt.Println("No favorites yet.")
				return nil
			}
			return printSummaryTable(items)
		},
	}
}

func favoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Favorite a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			if _, err := c.AddFavorite(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Product %d favorited.\n", id)
			return nil
		},
	}
}

func favoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Unfavorite a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			if err := c.RemoveFavorite(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Product %d unfavorited.\n", id)
			return nil
		},
	}
}
