package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// Service errors surfaced to handlers.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is discontinued")
	ErrItemNotInCart      = errors.New("item not in cart")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// Service implements cart operations on top of a Repository. Products
// are validated against the catalog before entering a cart.
type Service struct {
	repo  Repository
	store store.Store
	now   func() time.Time
}

// NewService creates a cart service.
func NewService(repo Repository, s store.Store) *Service {
	return &Service{
		repo:  repo,
		store: s,
		now:   time.Now,
	}
}

// Get returns the user's cart. A user with no saved cart gets an empty
// one rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	c, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem adds quantity of a product to the cart, merging into an
// existing line if the product is already present.
func (s *Service) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if p.Availability == domain.AvailabilityDiscontinued {
		return nil, ErrProductUnavailable
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if item := c.Item(productID); item != nil {
		item.Quantity += quantity
	} else {
		c.Items = append(c.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   s.now().UTC(),
		})
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem sets the quantity of a cart line. Setting quantity to zero
// removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := c.Item(productID)
	if item == nil {
		return nil, ErrItemNotInCart
	}
	item.Quantity = quantity

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops a product from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	found := false
	for _, item := range c.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, ErrItemNotInCart
	}
	c.Items = kept

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear deletes the user's cart entirely.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, c *domain.Cart) error {
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}
