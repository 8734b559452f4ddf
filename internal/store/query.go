package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	sortByCreatedAt = "created_at"
	sortByPrice     = "price"
	sortByName      = "name"
)

// validSortBy maps allowed SortBy values to their SQL column names.
var validSortBy = map[string]string{
	sortByCreatedAt: "created_at",
	sortByPrice:     "price",
	sortByName:      "name",
}

const defaultOrderBy = "created_at DESC"

const baseCatalogSelect = `SELECT id, name, price,
	COALESCE(image_urls[1], ''), availability_type
FROM products`

const countCatalogSelect = "SELECT COUNT(*) FROM products"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a catalog
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters.
func (q *CatalogQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if q.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", paramIdx))
		args = append(args, *q.CategoryID)
		paramIdx++
	}

	if q.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", paramIdx))
		args = append(args, *q.MinPrice)
		paramIdx++
	}

	if q.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", paramIdx))
		args = append(args, *q.MaxPrice)
		paramIdx++
	}

	if q.Availability != nil {
		conditions = append(conditions, fmt.Sprintf("availability_type = $%d", paramIdx))
		args = append(args, *q.Availability)
		paramIdx++
	}

	if q.Search != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d)", paramIdx, paramIdx,
		))
		args = append(args, "%"+*q.Search+"%")
		paramIdx++
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Order by
	orderClause := defaultOrderBy
	if col, ok := validSortBy[q.SortBy]; ok {
		dir := "DESC"
		if strings.EqualFold(q.SortOrder, "asc") {
			dir = "ASC"
		}
		orderClause = col + " " + dir
	}

	// Limit
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseCatalogSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countCatalogSelect + whereClause

	return dataSQL, countSQL, args
}
