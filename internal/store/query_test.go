package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCatalogQueryToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     CatalogQuery
		wantData  string
		wantCount string
		wantArgs  []any
	}{
		{
			name:  "empty query uses defaults",
			query: CatalogQuery{},
			wantData: baseCatalogSelect +
				" ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
		{
			name:  "active only adds no parameters",
			query: CatalogQuery{ActiveOnly: true},
			wantData: baseCatalogSelect +
				" WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products WHERE is_active = TRUE",
			wantArgs:  nil,
		},
		{
			name: "all filters number parameters in order",
			query: CatalogQuery{
				ActiveOnly:   true,
				CategoryID:   ptr(int64(7)),
				MinPrice:     ptr(10.0),
				MaxPrice:     ptr(99.99),
				Availability: ptr("in_stock"),
				Search:       ptr("lamp"),
			},
			wantData: baseCatalogSelect +
				" WHERE is_active = TRUE AND category_id = $1 AND price >= $2" +
				" AND price <= $3 AND availability_type = $4" +
				" AND (name ILIKE $5 OR description ILIKE $5)" +
				" ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products" +
				" WHERE is_active = TRUE AND category_id = $1 AND price >= $2" +
				" AND price <= $3 AND availability_type = $4" +
				" AND (name ILIKE $5 OR description ILIKE $5)",
			wantArgs: []any{int64(7), 10.0, 99.99, "in_stock", "%lamp%"},
		},
		{
			name:  "search reuses a single parameter for both columns",
			query: CatalogQuery{Search: ptr("desk")},
			wantData: baseCatalogSelect +
				" WHERE (name ILIKE $1 OR description ILIKE $1)" +
				" ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products" +
				" WHERE (name ILIKE $1 OR description ILIKE $1)",
			wantArgs: []any{"%desk%"},
		},
		{
			name:  "sort by price ascending",
			query: CatalogQuery{SortBy: "price", SortOrder: "asc"},
			wantData: baseCatalogSelect +
				" ORDER BY price ASC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
		{
			name:  "sort order defaults to descending",
			query: CatalogQuery{SortBy: "name"},
			wantData: baseCatalogSelect +
				" ORDER BY name DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
		{
			name:  "unknown sort column falls back to default order",
			query: CatalogQuery{SortBy: "id; DROP TABLE products"},
			wantData: baseCatalogSelect +
				" ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
		{
			name:  "limit is clamped to the maximum",
			query: CatalogQuery{Limit: 5000, Offset: 40},
			wantData: baseCatalogSelect +
				" ORDER BY created_at DESC LIMIT 100 OFFSET 40",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
		{
			name:  "negative offset is clamped to zero",
			query: CatalogQuery{Limit: -1, Offset: -20},
			wantData: baseCatalogSelect +
				" ORDER BY created_at DESC LIMIT 20 OFFSET 0",
			wantCount: "SELECT COUNT(*) FROM products",
			wantArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL()

			assert.Equal(t, tt.wantData, dataSQL)
			assert.Equal(t, tt.wantCount, countSQL)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCatalogQueryToSQLNoOrderByInjection(t *testing.T) {
	t.Parallel()

	q := CatalogQuery{SortBy: "price", SortOrder: "asc; DELETE FROM products"}
	dataSQL, _, _ := q.ToSQL()

	require.True(t, strings.Contains(dataSQL, "ORDER BY price DESC"),
		"unexpected order clause in %q", dataSQL)
}
