package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Filters are the optional catalog query filters. Zero values mean
// "not set" and are omitted from the request.
type Filters struct {
	Search       string
	CategoryID   int64
	MinPrice     float64
	MaxPrice     float64
	Availability string
	SortBy       string
	SortOrder    string
}

// Values encodes the filters as URL query parameters.
func (f Filters) Values() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.CategoryID != 0 {
		params.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.MinPrice != 0 {
		params.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		params.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Availability != "" {
		params.Set("availability_type", f.Availability)
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		params.Set("sort_order", f.SortOrder)
	}
	return params
}

// CatalogPage is one page of catalog results.
type CatalogPage struct {
	Items       []domain.ProductSummary `json:"items"`
	Total       int                     `json:"total"`
	Page        int                     `json:"page"`
	Size        int                     `json:"size"`
	HasNext     bool                    `json:"has_next"`
	HasPrevious bool                    `json:"has_previous"`
}

// Catalog fetches one page of the catalog. Page is 1-based; size 0
// uses the server default.
func (c *Client) Catalog(ctx context.Context, f Filters, page, size int) (*CatalogPage, error) {
	params := f.Values()
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}

	var out CatalogPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Featured fetches the featured product strip.
func (c *Client) Featured(ctx context.Context) ([]domain.ProductSummary, error) {
	var out struct {
		Items []domain.ProductSummary `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/featured", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Meta fetches the catalog metadata snapshot.
func (c *Client) Meta(ctx context.Context) (*domain.CatalogMeta, error) {
	var out domain.CatalogMeta
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/meta", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
