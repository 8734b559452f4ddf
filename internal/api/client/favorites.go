package client

import (
	"context"
	"fmt"
	"net/http"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Favorites lists the user's favorited products.
func (c *Client) Favorites(ctx context.Context) ([]domain.ProductSummary, error) {
	var out struct {
		Items []domain.ProductSummary `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/favorites", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// AddFavorite favorites a product for the user.
func (c *Client) AddFavorite(ctx context.Context, productID int64) (*domain.Favorite, error) {
	var out domain.Favorite
	path := fmt.Sprintf("/api/v1/favorites/%d", productID)
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFavorite unfavorites a product.
func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/v1/favorites/%d", productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
