package browse

import (
	"context"

	"github.com/mstepanov/storefront/internal/api/client"
)

type clientQuerier struct {
	c *client.Client
}

// NewClientQuerier adapts the storefront API client to the Querier
// contract.
func NewClientQuerier(c *client.Client) Querier {
	return clientQuerier{c: c}
}

func (q clientQuerier) Query(ctx context.Context, f FilterSet, page, size int) (*Page, error) {
	resp, err := q.c.Catalog(ctx, client.Filters{
		Search:     f.Search,
		CategoryID: f.CategoryID,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
	}, page, size)
	if err != nil {
		return nil, err
	}
	return &Page{Items: resp.Items, Total: resp.Total, HasNext: resp.HasNext}, nil
}
