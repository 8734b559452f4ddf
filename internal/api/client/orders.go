package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// OrdersPage is one page of the user's orders.
type OrdersPage struct {
	Items       []domain.Order `json:"items"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	Size        int            `json:"size"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// Checkout places an order from the user's cart.
func (c *Client) Checkout(ctx context.Context) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders fetches one page of the user's orders, newest first. A zero
// page or size leaves the server defaults in place; an empty status
// means no filter.
func (c *Client) Orders(ctx context.Context, page, size int, status string) (*OrdersPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if status != "" {
		q.Set("status", status)
	}

	var out OrdersPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches one of the user's orders.
func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	path := fmt.Sprintf("/api/v1/orders/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	body := map[string]string{"status": string(status)}
	path := fmt.Sprintf("/api/v1/orders/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
