package client

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Cart fetches the user's cart.
func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	var out domain.Cart
	if err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCartItem puts quantity of a product into the cart.
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	var out domain.Cart
	body := map[string]any{"product_id": productID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/api/v1/cart/items", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem sets a cart line's quantity; zero removes the line.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	var out domain.Cart
	body := map[string]int{"quantity": quantity}
	path := fmt.Sprintf("/api/v1/cart/items/%d", productID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCartItem drops a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID int64) (*domain.Cart, error) {
	var out domain.Cart
	path := fmt.Sprintf("/api/v1/cart/items/%d", productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearCart empties the user's cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/cart", nil, nil, nil)
}
