package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSummaryTable(items []domain.ProductSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRICE\tAVAILABILITY\tFAV\n")
	for i := range items {
		fav := ""
		if items[i].Favorited {
			fav = "*"
		}
		tw.writef("%d\t%s\t$%.2f\t%s\t%s\n",
			items[i].ID,
			truncate(items[i].Name, 40),
			items[i].Price,
			items[i].Availability,
			fav,
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", p.ID)
	tw.writef("Name:\t%s\n", p.Name)
	if p.Description != "" {
		tw.writef("Description:\t%s\n", truncate(p.Description, 80))
	}
	tw.writef("Price:\t$%.2f\n", p.Price)
	tw.writef("Stock:\t%d\n", p.StockQuantity)
	tw.writef("Availability:\t%s\n", p.Availability)
	tw.writef("Active:\t%v\n", p.IsActive)
	tw.writef("Category:\t%d\n", p.CategoryID)
	if p.PreorderDate != nil {
		tw.writef("Preorder Date:\t%s\n", p.PreorderDate.Format("2006-01-02"))
	}
	tw.writef("Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printCategoriesTable(cats []domain.Category) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tPRODUCTS\tDELETABLE\n")
	for i := range cats {
		tw.writef("%d\t%s\t%d\t%v\n",
			cats[i].ID,
			cats[i].Name,
			cats[i].ProductCount,
			cats[i].CanDelete,
		)
	}
	return tw.finish()
}

func printCart(c *domain.Cart) error {
	if len(c.Items) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}
	tw := newTabWriter(os.Stdout)
	tw.writef("PRODUCT\tQTY\tADDED\n")
	for i := range c.Items {
		tw.writef("%d\t%d\t%s\n",
			c.Items[i].ProductID,
			c.Items[i].Quantity,
			c.Items[i].AddedAt.Format("2006-01-02 15:04:05"),
		)
	}
	tw.writef("\nTotal items:\t%d\n", c.TotalQuantity())
	return tw.finish()
}

func printOrdersTable(orders []domain.Order) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tSTATUS\tTOTAL\tLINES\tPLACED\n")
	for i := range orders {
		tw.writef("%d\t%s\t$%.2f\t%d\t%s\n",
			orders[i].ID,
			orders[i].Status,
			orders[i].TotalPrice,
			len(orders[i].Items),
			orders[i].CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printOrderDetail(o *domain.Order) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", o.ID)
	tw.writef("Status:\t%s\n", o.Status)
	tw.writef("Total:\t$%.2f\n", o.TotalPrice)
	tw.writef("Placed:\t%s\n", o.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(o.Items) > 0 {
		tw.writef("\nPRODUCT\tQTY\tPRICE\n")
		for i := range o.Items {
			tw.writef("%d\t%d\t$%.2f\n",
				o.Items[i].ProductID,
				o.Items[i].Quantity,
				o.Items[i].Price,
			)
		}
	}
	return tw.finish()
}

func printMeta(m *domain.CatalogMeta) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Products:\t%d\n", m.TotalProducts)
	tw.writef("Price range:\t$%.2f - $%.2f\n", m.MinPrice, m.MaxPrice)
	if !m.RefreshedAt.IsZero() {
		tw.writef("Refreshed:\t%s\n", m.RefreshedAt.Format("2006-01-02 15:04:05"))
	}
	if len(m.CategoryCounts) > 0 {
		tw.writef("\nCATEGORY\tPRODUCTS\n")
		for i := range m.CategoryCounts {
			tw.writef("%s\t%d\n", m.CategoryCounts[i].Name, m.CategoryCounts[i].Count)
		}
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
