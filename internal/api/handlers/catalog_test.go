package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/storefront/internal/api/handlers"
	"github.com/mstepanov/storefront/internal/store"
	storeMocks "github.com/mstepanov/storefront/internal/store/mocks"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// stubMeta serves a fixed metadata snapshot.
type stubMeta struct {
	meta *domain.CatalogMeta
}

func (s stubMeta) Meta() *domain.CatalogMeta { return s.meta }

func newCatalogAPI(t *testing.T, ms *storeMocks.MockStore, meta handlers.MetaProvider) humatest.TestAPI {
	t.Helper()
	h := handlers.NewCatalogHandler(ms, meta, 20, 100, 10)
	_, api := humatest.New(t)
	handlers.RegisterCatalogRoutes(api, h)
	return api
}

func TestCatalogHandler_ListCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   []string
	}{
		{
			name:  "defaults to page 1 size 20 active only",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.MatchedBy(func(q *store.CatalogQuery) bool {
						return q.ActiveOnly && q.Limit == 20 && q.Offset == 0
					})).
					Return([]domain.ProductSummary{{ID: 1, Name: "Desk"}}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"total":1`, `"page":1`, `"size":20`, `"has_next":false`, `"has_previous":false`},
		},
		{
			name:  "page and size map to limit and offset",
			query: "?page=3&size=10",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.MatchedBy(func(q *store.CatalogQuery) bool {
						return q.Limit == 10 && q.Offset == 20
					})).
					Return(nil, 45, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"has_next":true`, `"has_previous":true`, `"total":45`},
		},
		{
			name:  "last page has no next",
			query: "?page=3&size=20",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.Anything).
					Return(nil, 45, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"has_next":false`, `"has_previous":true`},
		},
		{
			name:  "category and price filters",
			query: "?category_id=7&min_price=10&max_price=99.5",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.MatchedBy(func(q *store.CatalogQuery) bool {
						return q.CategoryID != nil && *q.CategoryID == 7 &&
							q.MinPrice != nil && *q.MinPrice == 10 &&
							q.MaxPrice != nil && *q.MaxPrice == 99.5
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"total":0`},
		},
		{
			name:  "search and availability filters",
			query: "?search=lamp&availability_type=in_stock",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.MatchedBy(func(q *store.CatalogQuery) bool {
						return q.Search != nil && *q.Search == "lamp" &&
							q.Availability != nil && *q.Availability == "in_stock"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "sort params pass through",
			query: "?sort_by=price&sort_order=asc",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.MatchedBy(func(q *store.CatalogQuery) bool {
						return q.SortBy == "price" && q.SortOrder == "asc"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "size above maximum is rejected",
			query:      "?size=500",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown availability is rejected",
			query:      "?availability_type=maybe",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "store error returns 500",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListProducts(mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("db down")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"catalog query failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)

			api := newCatalogAPI(t, ms, stubMeta{})

			resp := api.Get("/api/v1/catalog" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestCatalogHandler_ListCatalog_FavoriteAnnotation(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		ListProducts(mock.Anything, mock.Anything).
		Return([]domain.ProductSummary{{ID: 1}, {ID: 2}, {ID: 3}}, 3, nil).
		Once()
	ms.EXPECT().
		ListFavoriteProductIDs(mock.Anything, "user-9").
		Return([]int64{2}, nil).
		Once()

	api := newCatalogAPI(t, ms, stubMeta{})

	resp := api.Get("/api/v1/catalog", "X-User-ID: user-9")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `{"id":2,"name":"","price":0,"availability_type":"","is_favorited":true}`)
	assert.Contains(t, body, `{"id":1,"name":"","price":0,"availability_type":"","is_favorited":false}`)
}

func TestCatalogHandler_ListCatalog_AnonymousSkipsFavoriteLookup(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		ListProducts(mock.Anything, mock.Anything).
		Return([]domain.ProductSummary{{ID: 1}}, 1, nil).
		Once()
	// No ListFavoriteProductIDs expectation: calling it would fail the test.

	api := newCatalogAPI(t, ms, stubMeta{})

	resp := api.Get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestCatalogHandler_ListFeatured(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		ListFeaturedProducts(mock.Anything, 10).
		Return([]domain.ProductSummary{{ID: 5, Name: "New Lamp"}}, nil).
		Once()

	api := newCatalogAPI(t, ms, stubMeta{})

	resp := api.Get("/api/v1/catalog/featured")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "New Lamp")
}

func TestCatalogHandler_GetMeta(t *testing.T) {
	t.Parallel()

	t.Run("serves the cached snapshot", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		meta := stubMeta{meta: &domain.CatalogMeta{
			TotalProducts: 42,
			MinPrice:      5,
			MaxPrice:      900,
			RefreshedAt:   time.Now(),
		}}

		api := newCatalogAPI(t, ms, meta)

		resp := api.Get("/api/v1/catalog/meta")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"total_products":42`)
	})

	t.Run("falls back to the store before first refresh", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().
			GetCatalogMeta(mock.Anything).
			Return(&domain.CatalogMeta{TotalProducts: 7}, nil).
			Once()

		api := newCatalogAPI(t, ms, stubMeta{})

		resp := api.Get("/api/v1/catalog/meta")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"total_products":7`)
	})
}
