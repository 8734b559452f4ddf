package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mstepanov/storefront/internal/api/client"
	domain "github.com/mstepanov/storefront/pkg/types"
)

func ordersCmd() *cobra.Command {
	ordersRoot := &cobra.Command{
		Use:   "orders",
		Short: "Place and manage orders",
		Long: "Place orders from the cart and track them. All order commands\n" +
			"need a user identity, set via --user or SFC_USER.",
		PersistentPreRunE: requireUser,
	}

	ordersRoot.AddCommand(
		ordersCheckoutCmd(),
		ordersListCmd(),
		ordersShowCmd(),
		ordersCancelCmd(),
		ordersSetStatusCmd(),
	)

	return ordersRoot
}

func ordersCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			result, err := c.Checkout(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printOrderDetail(result)
		},
	}
}

func ordersListCmd() *cobra.Command {
	var (
		page   int
		size   int
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your orders, newest first",
		Example: `  sfc orders list --user alice
  sfc orders list --status pending --user alice`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			result, err := c.Orders(context.Background(), page, size, status)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printOrdersPage(result)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, paid, cancelled, completed)")

	return cmd
}

func ordersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			result, err := c.Order(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printOrderDetail(result)
		},
	}
}

func ordersCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			result, err := c.UpdateOrderStatus(context.Background(), id, domain.OrderCancelled)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			fmt.Printf("Order %d cancelled.\n", result.ID)
			return nil
		},
	}
}

func ordersSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Move an order to a new status",
		Long: "Move an order to a new status. Pending orders can be paid or\n" +
			"cancelled; paid orders can complete.",
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := domain.OrderStatus(args[1])
			if !domain.ValidOrderStatus(status) {
				return fmt.Errorf("invalid status %q", args[1])
			}
			c := newClient()
			result, err := c.UpdateOrderStatus(context.Background(), id, status)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printOrderDetail(result)
		},
	}
}

func printOrdersPage(p *apiclient.OrdersPage) error {
	if len(p.Items) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	if err := printOrdersTable(p.Items); err != nil {
		return err
	}
	fmt.Printf("\nPage %d of %d orders", p.Page, p.Total)
	if p.HasNext {
		fmt.Print(" (more available)")
	}
	fmt.Println()
	return nil
}
