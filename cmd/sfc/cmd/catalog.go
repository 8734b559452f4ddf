package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mstepanov/storefront/internal/api/client"
)

func catalogCmd() *cobra.Command {
	catalogRoot := &cobra.Command{
		Use:   "catalog",
		Short: "Query the product catalog",
	}

	catalogRoot.AddCommand(
		catalogListCmd(),
		catalogFeaturedCmd(),
		catalogMetaCmd(),
	)

	return catalogRoot
}

func catalogListCmd() *cobra.Command {
	var (
		f    apiclient.Filters
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of the catalog",
		Example: `  sfc catalog list
  sfc catalog list --search lamp --sort price --order asc
  sfc catalog list --category 3 --min-price 10 --max-price 100 --page 2`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			result, err := c.Catalog(context.Background(), f, page, size)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			if len(result.Items) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			if err := printSummaryTable(result.Items); err != nil {
				return err
			}
			fmt.Printf("\nPage %d of %d products", result.Page, result.Total)
			if result.HasNext {
				fmt.Print(" (more available)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Search, "search", "", "search in name and description")
	cmd.Flags().Int64Var(&f.CategoryID, "category", 0, "filter by category ID")
	cmd.Flags().Float64Var(&f.MinPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&f.MaxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&f.Availability, "availability", "", "filter by availability (in_stock, pre_order, discontinued)")
	cmd.Flags().StringVar(&f.SortBy, "sort", "", "sort column (created_at, price, name)")
	cmd.Flags().StringVar(&f.SortOrder, "order", "", "sort order (asc, desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size (server default when 0)")

	return cmd
}

func catalogFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show the featured product strip",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			items, err := c.Featured(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(items)
			}
			if len(items) == 0 {
				fmt.Println("No featured products.")
				return nil
			}
			return printSummaryTable(items)
		},
	}
}

func catalogMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta",
		Short: "Show catalog metadata (price bounds, category counts)",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			meta, err := c.Meta(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(meta)
			}
			return printMeta(meta)
		},
	}
}
