package client

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// ProductInput is the writable portion of a product.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stock_quantity"`
	Availability  string   `json:"availability_type"`
	IsActive      bool     `json:"is_active"`
	CategoryID    int64    `json:"category_id"`
	ImageURLs     []string `json:"image_urls,omitempty"`
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches one product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	path := fmt.Sprintf("/api/v1/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product's writable fields.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	path := fmt.Sprintf("/api/v1/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
