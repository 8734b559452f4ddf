package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mstepanov/storefront/internal/browse"
)

func browseCmd() *cobra.Command {
	var (
		search     string
		categoryID int64
		minPrice   float64
		maxPrice   float64
		size       int
		pages      int
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog with accumulated pagination",
		Long: "Browse runs the same view-model the storefront grid uses: filters\n" +
			"commit through the debounce pipeline, page 1 replaces the list, and\n" +
			"each following page is appended, like scrolling through results.",
		Example: `  sfc browse --search lamp
  sfc browse --category 3 --pages 3
  sfc browse --min-price 10 --max-price 100 --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := browse.NewSession(
				browse.NewClientQuerier(newClient()),
				browse.WithPageSize(size),
			)

			if search != "" {
				s.SetSearch(search)
			}
			s.SetPriceRange(minPrice, maxPrice)
			if categoryID != 0 {
				s.SetCategory(categoryID)
			} else {
				s.Flush()
			}

			if err := waitForRefresh(s); err != nil {
				return err
			}

			ctx := context.Background()
			fetched := 1
			for (all || fetched < pages) && !s.Exhausted() {
				applied, err := s.MoreWanted(ctx)
				if err != nil {
					return fmt.Errorf("fetching page %d: %w", fetched+1, err)
				}
				if !applied {
					break
				}
				fetched++
			}

			items := s.Items()
			if jsonOutput() {
				return outputJSON(items)
			}
			if len(items) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			if err := printSummaryTable(items); err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d products", len(items), s.Total())
			if s.Exhausted() {
				fmt.Print(" (all pages)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search in name and description")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "filter by category ID")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to accumulate")
	cmd.Flags().BoolVar(&all, "all", false, "keep paginating until exhausted")

	return cmd
}

// waitForRefresh blocks until the session's first page lands.
func waitForRefresh(s *browse.Session) error {
	deadline := time.Now().Add(30 * time.Second)
	for s.Settled() == 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for the first page")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return s.Err()
}
