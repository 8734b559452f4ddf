package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mstepanov/storefront/internal/cart"
	"github.com/mstepanov/storefront/internal/metrics"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// CartHandler handles the per-user shopping cart.
type CartHandler struct {
	carts *cart.Service
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{carts: svc}
}

// --- Input/Output types ---

// GetCartInput identifies the requesting user.
type GetCartInput struct {
	UserID string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
}

// CartOutput wraps the cart document.
type CartOutput struct {
	Body domain.Cart
}

// AddCartItemInput is the input for adding a product to the cart.
type AddCartItemInput struct {
	UserID string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	Body   struct {
		ProductID int64 `json:"product_id" minimum:"1"`
		Quantity  int   `json:"quantity"   minimum:"1"`
	}
}

// UpdateCartItemInput is the input for setting a line quantity.
type UpdateCartItemInput struct {
	UserID    string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	ProductID int64  `path:"productID"  doc:"Product ID"`
	Body      struct {
		Quantity int `json:"quantity" minimum:"0"`
	}
}

// RemoveCartItemInput is the input for removing a line.
type RemoveCartItemInput struct {
	UserID    string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	ProductID int64  `path:"productID"  doc:"Product ID"`
}

// --- Handlers ---

// Get returns the user's cart, empty if they have none.
func (h *CartHandler) Get(
	ctx context.Context,
	input *GetCartInput,
) (*CartOutput, error) {
	c, err := h.carts.Get(ctx, input.UserID)
	if err != nil {
		metrics.CartErrorsTotal.Inc()
		return nil, huma.Error500InternalServerError("fetching cart: " + err.Error())
	}
	metrics.CartOperationsTotal.WithLabelValues("get").Inc()
	return &CartOutput{Body: *c}, nil
}

// AddItem puts a product into the cart, merging quantities for lines
// that already exist.
func (h *CartHandler) AddItem(
	ctx context.Context,
	input *AddCartItemInput,
) (*CartOutput, error) {
	c, err := h.carts.AddItem(ctx, input.UserID, input.Body.ProductID, input.Body.Quantity)
	if err != nil {
		return nil, cartError("adding cart item", err)
	}
	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return &CartOutput{Body: *c}, nil
}

// UpdateItem sets a line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(
	ctx context.Context,
	input *UpdateCartItemInput,
) (*CartOutput, error) {
	c, err := h.carts.UpdateItem(ctx, input.UserID, input.ProductID, input.Body.Quantity)
	if err != nil {
		return nil, cartError("updating cart item", err)
	}
	metrics.CartOperationsTotal.WithLabelValues("update").Inc()
	return &CartOutput{Body: *c}, nil
}

// RemoveItem drops a line from the cart.
func (h *CartHandler) RemoveItem(
	ctx context.Context,
	input *RemoveCartItemInput,
) (*CartOutput, error) {
	c, err := h.carts.RemoveItem(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, cartError("removing cart item", err)
	}
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return &CartOutput{Body: *c}, nil
}

// Clear empties the user's cart.
func (h *CartHandler) Clear(
	ctx context.Context,
	input *GetCartInput,
) (*struct{}, error) {
	if err := h.carts.Clear(ctx, input.UserID); err != nil {
		metrics.CartErrorsTotal.Inc()
		return nil, huma.Error500InternalServerError("clearing cart: " + err.Error())
	}
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return &struct{}{}, nil
}

// cartError maps cart service errors onto HTTP statuses.
func cartError(op string, err error) error {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		return huma.Error404NotFound("product not found")
	case errors.Is(err, cart.ErrItemNotInCart):
		return huma.Error404NotFound("item not in cart")
	case errors.Is(err, cart.ErrProductUnavailable):
		return huma.Error409Conflict("product is discontinued")
	case errors.Is(err, cart.ErrInvalidQuantity):
		return huma.Error422UnprocessableEntity("invalid quantity")
	default:
		metrics.CartErrorsTotal.Inc()
		return huma.Error500InternalServerError(op + ": " + err.Error())
	}
}

// RegisterCartRoutes registers cart endpoints with the Huma API.
func RegisterCartRoutes(api huma.API, h *CartHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get the cart",
		Tags:        []string{"cart"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "add-cart-item",
		Method:        http.MethodPost,
		Path:          "/api/v1/cart/items",
		Summary:       "Add a product to the cart",
		Tags:          []string{"cart"},
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
		DefaultStatus: http.StatusCreated,
	}, h.AddItem)

	huma.Register(api, huma.Operation{
		OperationID: "update-cart-item",
		Method:      http.MethodPut,
		Path:        "/api/v1/cart/items/{productID}",
		Summary:     "Set a cart line quantity",
		Description: "Quantity zero removes the line.",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.UpdateItem)

	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{productID}",
		Summary:     "Remove a cart line",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.RemoveItem)

	huma.Register(api, huma.Operation{
		OperationID:   "clear-cart",
		Method:        http.MethodDelete,
		Path:          "/api/v1/cart",
		Summary:       "Clear the cart",
		Tags:          []string{"cart"},
		DefaultStatus: http.StatusNoContent,
	}, h.Clear)
}
