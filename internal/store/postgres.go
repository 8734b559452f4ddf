package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// Pool size is taken from the connection string (pool_max_conns).
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// --- Products ---

// CreateProduct inserts a new product and fills its ID and timestamps.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"name":                    p.Name,
		"description":             p.Description,
		"price":                   p.Price,
		"stock_quantity":          p.StockQuantity,
		"availability_type":       string(p.Availability),
		"is_active":               p.IsActive,
		"category_id":             p.CategoryID,
		"image_urls":              p.ImageURLs,
		"preorder_available_date": p.PreorderDate,
	}

	err := s.pool.QueryRow(ctx, queryCreateProduct, args).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	var availability string

	err := s.pool.QueryRow(ctx, queryGetProduct, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&availability, &p.IsActive, &p.CategoryID, &p.ImageURLs,
		&p.PreorderDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Availability = domain.AvailabilityType(availability)
	return p, nil
}

// UpdateProduct updates all mutable fields of a product.
func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"id":                      p.ID,
		"name":                    p.Name,
		"description":             p.Description,
		"price":                   p.Price,
		"stock_quantity":          p.StockQuantity,
		"availability_type":       string(p.Availability),
		"is_active":               p.IsActive,
		"category_id":             p.CategoryID,
		"image_urls":              p.ImageURLs,
		"preorder_available_date": p.PreorderDate,
	}

	if err := s.pool.QueryRow(ctx, queryUpdateProduct, args).Scan(&p.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// DeleteProduct removes a product. Returns pgx.ErrNoRows if it does not exist.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProduct, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListProducts queries catalog summaries with optional filters, returning
// results and total count.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	q *CatalogQuery,
) ([]domain.ProductSummary, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	// Get total count.
	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	// Get data rows.
	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// ListFeaturedProducts returns the newest active in-stock products.
func (s *PostgresStore) ListFeaturedProducts(
	ctx context.Context,
	limit int,
) ([]domain.ProductSummary, error) {
	rows, err := s.pool.Query(ctx, queryListFeaturedProducts, limit)
	if err != nil {
		return nil, fmt.Errorf("querying featured products: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]domain.ProductSummary, error) {
	var summaries []domain.ProductSummary
	for rows.Next() {
		var ps domain.ProductSummary
		var availability string
		if err := rows.Scan(
			&ps.ID, &ps.Name, &ps.Price, &ps.ImageURL, &availability,
		); err != nil {
			return nil, fmt.Errorf("scanning product summary: %w", err)
		}
		ps.Availability = domain.AvailabilityType(availability)
		summaries = append(summaries, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return summaries, nil
}

// --- Categories ---

// CreateCategory inserts a new category and fills its ID and timestamp.
func (s *PostgresStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := s.pool.QueryRow(ctx, queryCreateCategory, c.Name).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	c.CanDelete = true
	return nil
}

// GetCategory retrieves a category by ID, including its product count.
func (s *PostgresStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	err := s.pool.QueryRow(ctx, queryGetCategory, id).Scan(
		&c.ID, &c.Name, &c.CreatedAt, &c.ProductCount,
	)
	if err != nil {
		return nil, err
	}
	c.CanDelete = c.ProductCount == 0
	return c, nil
}

// ListCategories returns all categories with product counts, ordered by name.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, queryListCategories)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.CanDelete = c.ProductCount == 0
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category.
func (s *PostgresStore) UpdateCategory(ctx context.Context, c *domain.Category) error {
	tag, err := s.pool.Exec(ctx, queryUpdateCategory, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCategory removes a category. Returns ErrCategoryNotEmpty if products
// still reference it, pgx.ErrNoRows if it does not exist.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	var count int
	if err := s.pool.QueryRow(ctx, queryCountCategoryProducts, id).Scan(&count); err != nil {
		return fmt.Errorf("counting category products: %w", err)
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	tag, err := s.pool.Exec(ctx, queryDeleteCategory, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// --- Favorites ---

// AddFavorite marks a product as favorited by a user. Adding the same
// favorite twice is idempotent.
func (s *PostgresStore) AddFavorite(
	ctx context.Context,
	userID string,
	productID int64,
) (*domain.Favorite, error) {
	f := &domain.Favorite{UserID: userID, ProductID: productID}
	err := s.pool.QueryRow(ctx, queryAddFavorite, userID, productID).Scan(
		&f.ID, &f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding favorite: %w", err)
	}
	return f, nil
}

// RemoveFavorite deletes a favorite. Returns pgx.ErrNoRows if absent.
func (s *PostgresStore) RemoveFavorite(
	ctx context.Context,
	userID string,
	productID int64,
) error {
	tag, err := s.pool.Exec(ctx, queryRemoveFavorite, userID, productID)
	if err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListFavoriteProductIDs returns the product IDs favorited by a user,
// newest first.
func (s *PostgresStore) ListFavoriteProductIDs(
	ctx context.Context,
	userID string,
) ([]int64, error) {
	rows, err := s.pool.Query(ctx, queryListFavoriteProductIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("querying favorite ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning favorite id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorite ids: %w", err)
	}
	return ids, nil
}

// ListFavoriteProducts returns catalog summaries for a user's favorites,
// newest first. Favorited is set on every returned summary.
func (s *PostgresStore) ListFavoriteProducts(
	ctx context.Context,
	userID string,
) ([]domain.ProductSummary, error) {
	rows, err := s.pool.Query(ctx, queryListFavoriteProducts, userID)
	if err != nil {
		return nil, fmt.Errorf("querying favorite products: %w", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Favorited = true
	}
	return summaries, nil
}

// --- Catalog metadata ---

// GetCatalogMeta computes the aggregate catalog snapshot in SQL.
func (s *PostgresStore) GetCatalogMeta(ctx context.Context) (*domain.CatalogMeta, error) {
	meta := &domain.CatalogMeta{}

	err := s.pool.QueryRow(ctx, queryCatalogMetaBounds).Scan(
		&meta.TotalProducts, &meta.MinPrice, &meta.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("querying catalog bounds: %w", err)
	}

	rows, err := s.pool.Query(ctx, queryCatalogMetaCategoryCounts)
	if err != nil {
		return nil, fmt.Errorf("querying category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc domain.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		meta.CategoryCounts = append(meta.CategoryCounts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	return meta, nil
}
