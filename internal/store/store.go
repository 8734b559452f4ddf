// Package store defines the datastore abstraction for the storefront.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running
// database.
package store

import (
	"context"
	"errors"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// ErrCategoryNotEmpty is returned when deleting a category that still has
// products assigned to it.
var ErrCategoryNotEmpty = errors.New("category has products and cannot be deleted")

// ErrInsufficientStock is returned when placing an order that asks for
// more units than a product has in stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// CatalogQuery defines optional filters for catalog queries.
type CatalogQuery struct {
	Search       *string
	MinPrice     *float64
	MaxPrice     *float64
	CategoryID   *int64
	Availability *string
	ActiveOnly   bool
	Limit        int    // default 20
	Offset       int
	SortBy       string // "created_at", "price", "name"
	SortOrder    string // "asc", "desc"
}

// Store defines all data access operations for the storefront.
type Store interface {
	// Products
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, q *CatalogQuery) ([]domain.ProductSummary, int, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error)

	// Categories
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	// Favorites
	AddFavorite(ctx context.Context, userID string, productID int64) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID string, productID int64) error
	ListFavoriteProductIDs(ctx context.Context, userID string) ([]int64, error)
	ListFavoriteProducts(ctx context.Context, userID string) ([]domain.ProductSummary, error)

	// Orders
	CreateOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, userID string, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID, status string, limit, offset int) ([]domain.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error

	// Catalog metadata
	GetCatalogMeta(ctx context.Context) (*domain.CatalogMeta, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
