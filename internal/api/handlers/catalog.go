package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mstepanov/storefront/internal/metrics"
	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// MetaProvider serves the cached catalog metadata snapshot.
type MetaProvider interface {
	Meta() *domain.CatalogMeta
}

// CatalogHandler handles the public browse endpoints.
type CatalogHandler struct {
	store           store.Store
	meta            MetaProvider
	defaultPageSize int
	maxPageSize     int
	featuredLimit   int
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s store.Store, meta MetaProvider, defaultPageSize, maxPageSize, featuredLimit int) *CatalogHandler {
	return &CatalogHandler{
		store:           s,
		meta:            meta,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		featuredLimit:   featuredLimit,
	}
}

// --- Input/Output types ---

// ListCatalogInput is the input for the paged catalog query.
type ListCatalogInput struct {
	Page         int     `query:"page"              doc:"Page number, 1-based"             minimum:"1"`
	Size         int     `query:"size"              doc:"Page size (default 20)"           minimum:"1" maximum:"100"`
	CategoryID   int64   `query:"category_id"       doc:"Filter by category"`
	MinPrice     float64 `query:"min_price"         doc:"Minimum price, inclusive"         minimum:"0"`
	MaxPrice     float64 `query:"max_price"         doc:"Maximum price, inclusive"         minimum:"0"`
	Availability string  `query:"availability_type" doc:"Filter by availability"           enum:"in_stock,pre_order,discontinued,"`
	Search       string  `query:"search"            doc:"Free-text match on name and description"`
	SortBy       string  `query:"sort_by"           doc:"Sort field"                       enum:"created_at,price,name,"`
	SortOrder    string  `query:"sort_order"        doc:"Sort direction"                   enum:"asc,desc,"`
	UserID       string  `header:"X-User-ID"        doc:"Requesting user, for favorite annotation"`
}

// CatalogPage is the paged catalog response body.
type CatalogPage struct {
	Items       []domain.ProductSummary `json:"items"`
	Total       int                     `json:"total"`
	Page        int                     `json:"page"`
	Size        int                     `json:"size"`
	HasNext     bool                    `json:"has_next"`
	HasPrevious bool                    `json:"has_previous"`
}

// ListCatalogOutput wraps the paged catalog response.
type ListCatalogOutput struct {
	Body CatalogPage
}

// FeaturedOutput is the response for the featured product strip.
type FeaturedOutput struct {
	Body struct {
		Items []domain.ProductSummary `json:"items"`
	}
}

// MetaOutput is the catalog metadata response.
type MetaOutput struct {
	Body domain.CatalogMeta
}

// --- Handlers ---

// ListCatalog returns one page of active products matching the filters.
// The total count always reflects the full filtered set, so clients can
// derive paging state from any page.
func (h *CatalogHandler) ListCatalog(
	ctx context.Context,
	input *ListCatalogInput,
) (*ListCatalogOutput, error) {
	start := time.Now()

	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.Size
	if size < 1 {
		size = h.defaultPageSize
	}
	if size > h.maxPageSize {
		size = h.maxPageSize
	}

	q := &store.CatalogQuery{
		ActiveOnly: true,
		Limit:      size,
		Offset:     (page - 1) * size,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}
	if input.CategoryID != 0 {
		q.CategoryID = &input.CategoryID
	}
	if input.MinPrice != 0 {
		q.MinPrice = &input.MinPrice
	}
	if input.MaxPrice != 0 {
		q.MaxPrice = &input.MaxPrice
	}
	if input.Availability != "" {
		q.Availability = &input.Availability
	}
	if input.Search != "" {
		q.Search = &input.Search
	}

	items, total, err := h.store.ListProducts(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("catalog query failed: " + err.Error())
	}

	if input.UserID != "" && len(items) > 0 {
		if err := h.annotateFavorites(ctx, input.UserID, items); err != nil {
			return nil, huma.Error500InternalServerError("favorite lookup failed: " + err.Error())
		}
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}

	metrics.CatalogQueriesTotal.Inc()
	metrics.CatalogQueryDuration.Observe(time.Since(start).Seconds())
	if total == 0 {
		metrics.CatalogEmptyResultsTotal.Inc()
	}

	resp := &ListCatalogOutput{}
	resp.Body = CatalogPage{
		Items:       items,
		Total:       total,
		Page:        page,
		Size:        size,
		HasNext:     page*size < total,
		HasPrevious: page > 1,
	}
	return resp, nil
}

// ListFeatured returns the newest in-stock products for the landing strip.
func (h *CatalogHandler) ListFeatured(
	ctx context.Context,
	_ *struct{},
) (*FeaturedOutput, error) {
	items, err := h.store.ListFeaturedProducts(ctx, h.featuredLimit)
	if err != nil {
		return nil, huma.Error500InternalServerError("featured query failed: " + err.Error())
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}

	resp := &FeaturedOutput{}
	resp.Body.Items = items
	return resp, nil
}

// GetMeta returns the cached catalog metadata snapshot used to populate
// filter widgets. It is refreshed on a schedule, not per request.
func (h *CatalogHandler) GetMeta(
	ctx context.Context,
	_ *struct{},
) (*MetaOutput, error) {
	meta := h.meta.Meta()
	if meta == nil {
		// Snapshot not warmed yet; compute one on demand.
		fresh, err := h.store.GetCatalogMeta(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("metadata query failed: " + err.Error())
		}
		meta = fresh
	}
	return &MetaOutput{Body: *meta}, nil
}

func (h *CatalogHandler) annotateFavorites(
	ctx context.Context,
	userID string,
	items []domain.ProductSummary,
) error {
	ids, err := h.store.ListFavoriteProductIDs(ctx, userID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	favorited := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		favorited[id] = struct{}{}
	}
	for i := range items {
		if _, ok := favorited[items[i].ID]; ok {
			items[i].Favorited = true
		}
	}
	return nil
}

// RegisterCatalogRoutes registers the browse endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Browse the catalog",
		Description: "Returns one page of active products matching the given filters.",
		Tags:        []string{"catalog"},
	}, h.ListCatalog)

	huma.Register(api, huma.Operation{
		OperationID: "list-featured",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/featured",
		Summary:     "List featured products",
		Description: "Returns the newest in-stock products.",
		Tags:        []string{"catalog"},
	}, h.ListFeatured)

	huma.Register(api, huma.Operation{
		OperationID: "get-catalog-meta",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/meta",
		Summary:     "Get catalog metadata",
		Description: "Returns aggregate catalog data for filter widgets: price bounds and per-category product counts.",
		Tags:        []string{"catalog"},
	}, h.GetMeta)
}
