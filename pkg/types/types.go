// Package domain defines the core business types for the storefront.
package domain

import (
	"time"
)

// AvailabilityType represents how a product can currently be purchased.
type AvailabilityType string

// Availability constants.
const (
	AvailabilityInStock      AvailabilityType = "in_stock"
	AvailabilityPreOrder     AvailabilityType = "pre_order"
	AvailabilityDiscontinued AvailabilityType = "discontinued"
)

// ValidAvailability reports whether a is a known availability type.
func ValidAvailability(a AvailabilityType) bool {
	switch a {
	case AvailabilityInStock, AvailabilityPreOrder, AvailabilityDiscontinued:
		return true
	}
	return false
}

// Product is the full catalog record, as managed through the admin API.
type Product struct {
	ID            int64            `json:"id"                                db:"id"`
	Name          string           `json:"name"                              db:"name"`
	Description   string           `json:"description,omitempty"             db:"description"`
	Price         float64          `json:"price"                             db:"price"`
	StockQuantity int              `json:"stock_quantity"                    db:"stock_quantity"`
	Availability  AvailabilityType `json:"availability_type"                 db:"availability_type"`
	IsActive      bool             `json:"is_active"                         db:"is_active"`
	CategoryID    int64            `json:"category_id"                       db:"category_id"`
	ImageURLs     []string         `json:"image_urls,omitempty"              db:"image_urls"`
	PreorderDate  *time.Time       `json:"preorder_available_date,omitempty" db:"preorder_available_date"`
	CreatedAt     time.Time        `json:"created_at"                        db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"                        db:"updated_at"`
}

// Summary returns the catalog projection of the product. The favorited
// flag is left false; callers annotate it per user.
func (p *Product) Summary() ProductSummary {
	s := ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Availability: p.Availability,
	}
	if len(p.ImageURLs) > 0 {
		s.ImageURL = p.ImageURLs[0]
	}
	return s
}

// ProductSummary is the read-only catalog projection returned by browse
// queries. Favorited is filled per requesting user when one is known.
type ProductSummary struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Price        float64          `json:"price"`
	ImageURL     string           `json:"image_url,omitempty"`
	Availability AvailabilityType `json:"availability_type"`
	Favorited    bool             `json:"is_favorited"`
}

// Category groups products. ProductCount and CanDelete are derived fields
// populated by list queries; a category with products cannot be deleted.
type Category struct {
	ID           int64     `json:"id"            db:"id"`
	Name         string    `json:"name"          db:"name"`
	ProductCount int       `json:"product_count" db:"product_count"`
	CanDelete    bool      `json:"can_delete"    db:"can_delete"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// Favorite marks a product as saved by a user.
type Favorite struct {
	ID        int64     `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartItem is a single product line in a cart.
type CartItem struct {
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is the per-user shopping cart, stored as a single document.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalQuantity returns the summed quantity across all cart lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// Item returns the cart line for productID, or nil if absent.
func (c *Cart) Item(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

// Order status constants.
const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next.
// Pending orders can be paid or cancelled; paid orders can complete.
// Cancelled and completed are terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderPaid || next == OrderCancelled
	case OrderPaid:
		return next == OrderCompleted
	}
	return false
}

// OrderItem is one line of a placed order. Price is the unit price at
// checkout time; later catalog price changes do not affect it.
type OrderItem struct {
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity"   db:"quantity"`
	Price     float64 `json:"price"      db:"price"`
}

// Order is a placed order with its line items.
type Order struct {
	ID         int64       `json:"id"          db:"id"`
	UserID     string      `json:"user_id"     db:"user_id"`
	Status     OrderStatus `json:"status"      db:"status"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"  db:"created_at"`
}

// CategoryCount pairs a category with its live product count.
type CategoryCount struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// CatalogMeta is an aggregate snapshot of the catalog used to drive
// filter widgets: price slider bounds and category chips.
type CatalogMeta struct {
	TotalProducts  int             `json:"total_products"`
	MinPrice       float64         `json:"min_price"`
	MaxPrice       float64         `json:"max_price"`
	CategoryCounts []CategoryCount `json:"category_counts"`
	RefreshedAt    time.Time       `json:"refreshed_at"`
}
