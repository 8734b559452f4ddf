package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/mstepanov/storefront/internal/api/client"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Manage catalog products",
	}

	productsRoot.AddCommand(
		productGetCmd(),
		productCreateCmd(),
		productUpdateCmd(),
		productDeleteCmd(),
	)

	return productsRoot
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

func productGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			p, err := c.GetProduct(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(p)
		},
	}
}

func productInputFlags(cmd *cobra.Command, in *apiclient.ProductInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "price")
	cmd.Flags().IntVar(&in.StockQuantity, "stock", 0, "stock quantity")
	cmd.Flags().
		StringVar(&in.Availability, "availability", "in_stock", "availability (in_stock, pre_order, discontinued)")
	cmd.Flags().BoolVar(&in.IsActive, "active", true, "visible in the catalog")
	cmd.Flags().Int64Var(&in.CategoryID, "category", 0, "category ID")
	cmd.Flags().StringArrayVar(&in.ImageURLs, "image", nil, "image URL (repeatable)")
}

func productCreateCmd() *cobra.Command {
	var in apiclient.ProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: `  sfc products create --name "Desk Lamp" --price 24.99 --stock 40 --category 3
  sfc products create --name "Next Gen Console" --price 599 --availability pre_order --category 7`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if in.Name == "" || in.Price <= 0 || in.CategoryID == 0 {
				return fmt.Errorf("--name, --price and --category are required")
			}
			c := newClient()
			created, err := c.CreateProduct(context.Background(), in)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Product created: %s (%d)\n", created.Name, created.ID)
			return nil
		},
	}
	productInputFlags(cmd, &in)

	return cmd
}

func productUpdateCmd() *cobra.Command {
	var in apiclient.ProductInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a product's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			updated, err := c.UpdateProduct(context.Background(), id, in)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			fmt.Printf("Product updated: %s (%d)\n", updated.Name, updated.ID)
			return nil
		},
	}
	productInputFlags(cmd, &in)

	return cmd
}

func productDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			if err := c.DeleteProduct(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Product %d deleted.\n", id)
			return nil
		},
	}
}
