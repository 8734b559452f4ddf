package client

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Categories lists all categories with product counts.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var out domain.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/categories", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameCategory changes a category's name.
func (c *Client) RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	var out domain.Category
	body := map[string]string{"name": name}
	path := fmt.Sprintf("/api/v1/categories/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes an empty category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/categories/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
