package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5"

	"github.com/mstepanov/storefront/internal/metrics"
	"github.com/mstepanov/storefront/internal/order"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// Paging defaults for the order list.
const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

// OrdersHandler handles checkout and order management. Like cart and
// favorites, the user is identified by the X-User-ID header.
type OrdersHandler struct {
	orders *order.Service
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(svc *order.Service) *OrdersHandler {
	return &OrdersHandler{orders: svc}
}

// --- Input/Output types ---

// CheckoutInput identifies the user placing the order.
type CheckoutInput struct {
	UserID string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
}

// OrderOutput wraps a single order.
type OrderOutput struct {
	Body domain.Order
}

// ListOrdersInput is the input for the paged order list.
type ListOrdersInput struct {
	UserID string `header:"X-User-ID" doc:"Requesting user"       required:"true" minLength:"1"`
	Page   int    `query:"page"       doc:"Page number, 1-based"  minimum:"1"`
	Size   int    `query:"size"       doc:"Page size (default 20)" minimum:"1" maximum:"100"`
	Status string `query:"status"     doc:"Filter by status"      enum:"pending,paid,cancelled,completed,"`
}

// OrdersPage is the paged order list response body.
type OrdersPage struct {
	Items       []domain.Order `json:"items"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	Size        int            `json:"size"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ListOrdersOutput wraps the paged order list.
type ListOrdersOutput struct {
	Body OrdersPage
}

// GetOrderInput identifies one of the user's orders.
type GetOrderInput struct {
	UserID  string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	OrderID int64  `path:"orderID"    doc:"Order ID"`
}

// UpdateOrderStatusInput is the input for moving an order to a new status.
type UpdateOrderStatusInput struct {
	UserID  string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	OrderID int64  `path:"orderID"    doc:"Order ID"`
	Body    struct {
		Status domain.OrderStatus `json:"status" enum:"paid,cancelled,completed"`
	}
}

// --- Handlers ---

// Checkout places an order from the user's cart.
func (h *OrdersHandler) Checkout(
	ctx context.Context,
	input *CheckoutInput,
) (*OrderOutput, error) {
	o, err := h.orders.Checkout(ctx, input.UserID)
	if err != nil {
		return nil, orderError("placing order", err)
	}
	metrics.OrdersCreatedTotal.Inc()
	return &OrderOutput{Body: *o}, nil
}

// List returns one page of the user's orders, newest first.
func (h *OrdersHandler) List(
	ctx context.Context,
	input *ListOrdersInput,
) (*ListOrdersOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.Size
	if size < 1 {
		size = defaultOrderPageSize
	}
	if size > maxOrderPageSize {
		size = maxOrderPageSize
	}

	items, total, err := h.orders.List(ctx, input.UserID, input.Status, size, (page-1)*size)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing orders: " + err.Error())
	}
	if items == nil {
		items = []domain.Order{}
	}

	resp := &ListOrdersOutput{}
	resp.Body = OrdersPage{
		Items:       items,
		Total:       total,
		Page:        page,
		Size:        size,
		HasNext:     page*size < total,
		HasPrevious: page > 1,
	}
	return resp, nil
}

// Get returns one of the user's orders.
func (h *OrdersHandler) Get(
	ctx context.Context,
	input *GetOrderInput,
) (*OrderOutput, error) {
	o, err := h.orders.Get(ctx, input.UserID, input.OrderID)
	if err != nil {
		return nil, orderError("fetching order", err)
	}
	return &OrderOutput{Body: *o}, nil
}

// UpdateStatus moves an order to a new status.
func (h *OrdersHandler) UpdateStatus(
	ctx context.Context,
	input *UpdateOrderStatusInput,
) (*OrderOutput, error) {
	o, err := h.orders.UpdateStatus(ctx, input.UserID, input.OrderID, input.Body.Status)
	if err != nil {
		return nil, orderError("updating order status", err)
	}
	return &OrderOutput{Body: *o}, nil
}

// orderError maps order service errors onto HTTP statuses.
func orderError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return huma.Error404NotFound("order not found")
	case errors.Is(err, order.ErrProductNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, order.ErrEmptyCart):
		return huma.Error400BadRequest("cart is empty")
	case errors.Is(err, order.ErrProductUnavailable):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, order.ErrInsufficientStock):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError(op + ": " + err.Error())
	}
}

// RegisterOrderRoutes registers order endpoints with the Huma API.
func RegisterOrderRoutes(api huma.API, h *OrdersHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "checkout",
		Method:        http.MethodPost,
		Path:          "/api/v1/orders",
		Summary:       "Place an order from the cart",
		Description:   "Validates every cart line against the catalog, snapshots prices, and decrements stock.",
		Tags:          []string{"orders"},
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		DefaultStatus: http.StatusCreated,
	}, h.Checkout)

	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders",
		Summary:     "List orders",
		Description: "Returns the user's orders newest first, optionally filtered by status.",
		Tags:        []string{"orders"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders/{orderID}",
		Summary:     "Get an order",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-order-status",
		Method:      http.MethodPut,
		Path:        "/api/v1/orders/{orderID}/status",
		Summary:     "Update an order's status",
		Description: "Pending orders can be paid or cancelled; paid orders can complete.",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
	}, h.UpdateStatus)
}
