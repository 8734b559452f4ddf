// Package order implements checkout and order management. Orders are
// placed from the user's cart; each line snapshots the product's price
// at checkout time.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/mstepanov/storefront/internal/cart"
	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// Service errors surfaced to handlers.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product cannot be ordered")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Service implements order operations on top of the store and the
// cart service.
type Service struct {
	carts *cart.Service
	store store.Store
}

// NewService creates an order service.
func NewService(carts *cart.Service, s store.Store) *Service {
	return &Service{carts: carts, store: s}
}

// Checkout places an order from the user's cart. Every line is
// validated against the catalog: the product must exist, be active and
// not discontinued, and have enough stock. The order total and the
// per-line price snapshots come from current catalog prices. On success
// the cart is cleared.
func (s *Service) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &domain.Order{UserID: userID, Status: domain.OrderPending}
	for _, line := range c.Items {
		p, err := s.store.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, line.ProductID)
		}
		if !p.IsActive || p.Availability == domain.AvailabilityDiscontinued {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, line.ProductID)
		}
		if p.StockQuantity < line.Quantity {
			return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, line.ProductID)
		}
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
		o.TotalPrice += p.Price * float64(line.Quantity)
	}

	if err := s.store.CreateOrder(ctx, o); err != nil {
		// The store re-checks stock inside the transaction, so a
		// concurrent checkout can still run out of units here.
		if errors.Is(err, store.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, err)
		}
		return nil, fmt.Errorf("creating order: %w", err)
	}

	// The order is already placed; a leftover cart gets cleared on the
	// next successful request.
	_ = s.carts.Clear(ctx, userID)

	return o, nil
}

// Get returns one of the user's orders.
func (s *Service) Get(ctx context.Context, userID string, id int64) (*domain.Order, error) {
	return s.store.GetOrder(ctx, userID, id)
}

// List returns the user's orders newest first, optionally filtered by
// status, plus the total count of matching orders.
func (s *Service) List(
	ctx context.Context,
	userID, status string,
	limit, offset int,
) ([]domain.Order, int, error) {
	return s.store.ListOrders(ctx, userID, status, limit, offset)
}

// UpdateStatus moves the user's order to next. Pending orders can be
// paid or cancelled; paid orders can complete. Anything else returns
// ErrInvalidTransition.
func (s *Service) UpdateStatus(
	ctx context.Context,
	userID string,
	id int64,
	next domain.OrderStatus,
) (*domain.Order, error) {
	o, err := s.store.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, next)
	}
	if err := s.store.UpdateOrderStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	o.Status = next
	return o, nil
}
