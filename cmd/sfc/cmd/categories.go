package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	categoriesRoot := &cobra.Command{
		Use:   "categories",
		Short: "Manage product categories",
	}

	categoriesRoot.AddCommand(
		categoryListCmd(),
		categoryCreateCmd(),
		categoryRenameCmd(),
		categoryDeleteCmd(),
	)

	return categoriesRoot
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories with product counts",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			cats, err := c.Categories(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cats)
			}
			if len(cats) == 0 {
				fmt.Println("No categories found.")
				return nil
			}
			return printCategoriesTable(cats)
		},
	}
}

func categoryCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			created, err := c.CreateCategory(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Category created: %s (%d)\n", created.Name, created.ID)
			return nil
		},
	}
}

func categoryRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			renamed, err := c.RenameCategory(context.Background(), id, args[1])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(renamed)
			}
			fmt.Printf("Category renamed: %s (%d)\n", renamed.Name, renamed.ID)
			return nil
		},
	}
}

func categoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an empty category",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			if err := c.DeleteCategory(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Category %d deleted.\n", id)
			return nil
		},
	}
}
