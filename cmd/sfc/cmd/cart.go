package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func cartCmd() *cobra.Command {
	cartRoot := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		Long: "Manage the per-user shopping cart. All cart commands need a user\n" +
			"identity, set via --user or SFC_USER.",
		PersistentPreRunE: requireUser,
	}

	cartRoot.AddCommand(
		cartShowCmd(),
		cartAddCmd(),
		cartSetCmd(),
		cartRemoveCmd(),
		cartClearCmd(),
	)

	return cartRoot
}

func parseQuantity(arg string) (int, error) {
	qty, err := strconv.Atoi(arg)
	if err != nil || qty < 0 {
		return 0, fmt.Errorf("invalid quantity %q", arg)
	}
	return qty, nil
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			result, err := c.Cart(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printCart(result)
		},
	}
}

func cartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Example: `  sfc cart add 5 --user alice
  sfc cart add 5 --qty 3 --user alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			result, err := c.AddCartItem(context.Background(), id, quantity)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printCart(result)
		},
	}
	cmd.Flags().IntVar(&quantity, "qty", 1, "quantity to add")

	return cmd
}

func cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a cart line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			c := newClient()
			result, err := c.UpdateCartItem(context.Background(), id, qty)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printCart(result)
		},
	}
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := newClient()
			result, err := c.RemoveCartItem(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printCart(result)
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if err := c.ClearCart(context.Background()); err != nil {
				return err
			}
			fmt.Println("Cart cleared.")
			return nil
		},
	}
}
