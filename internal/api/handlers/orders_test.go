package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/storefront/internal/api/handlers"
	"github.com/mstepanov/storefront/internal/cart"
	"github.com/mstepanov/storefront/internal/order"
	storeMocks "github.com/mstepanov/storefront/internal/store/mocks"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// newOrdersAPI wires the orders handler over a real order service with
// a miniredis-backed cart, so checkout tests can seed carts directly.
func newOrdersAPI(t *testing.T) (humatest.TestAPI, *cart.Service, *storeMocks.MockStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ms := storeMocks.NewMockStore(t)
	carts := cart.NewService(cart.NewRedisRepository(client, time.Hour), ms)
	svc := order.NewService(carts, ms)

	_, api := humatest.New(t)
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(svc))
	return api, carts, ms
}

func orderableProduct(id int64, price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          "Ceramic Mug",
		Price:         price,
		StockQuantity: stock,
		Availability:  domain.AvailabilityInStock,
		IsActive:      true,
	}
}

func TestOrdersHandler_Checkout(t *testing.T) {
	t.Parallel()

	t.Run("places the order", func(t *testing.T) {
		t.Parallel()

		api, carts, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetProduct(mock.Anything, int64(42)).
			Return(orderableProduct(42, 14.50, 10), nil)
		ms.EXPECT().
			CreateOrder(mock.Anything, mock.Anything).
			Run(func(_ context.Context, o *domain.Order) {
				o.ID = 7
				o.CreatedAt = time.Now().UTC()
			}).
			Return(nil).
			Once()

		_, err := carts.AddItem(context.Background(), "user-1", 42, 2)
		require.NoError(t, err)

		resp := api.Post("/api/v1/orders", "X-User-ID: user-1")
		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), `"id":7`)
		assert.Contains(t, resp.Body.String(), `"status":"pending"`)
		assert.Contains(t, resp.Body.String(), `"total_price":29`)
	})

	t.Run("empty cart returns 400", func(t *testing.T) {
		t.Parallel()

		api, _, _ := newOrdersAPI(t)

		resp := api.Post("/api/v1/orders", "X-User-ID: user-1")
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("requires user", func(t *testing.T) {
		t.Parallel()

		api, _, _ := newOrdersAPI(t)

		resp := api.Post("/api/v1/orders")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("not enough stock conflicts", func(t *testing.T) {
		t.Parallel()

		api, carts, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetProduct(mock.Anything, int64(42)).
			Return(orderableProduct(42, 14.50, 1), nil)

		_, err := carts.AddItem(context.Background(), "user-1", 42, 3)
		require.NoError(t, err)

		resp := api.Post("/api/v1/orders", "X-User-ID: user-1")
		require.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestOrdersHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("returns a page envelope", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			ListOrders(mock.Anything, "user-1", "", 20, 0).
			Return([]domain.Order{
				{ID: 2, UserID: "user-1", Status: domain.OrderPending, TotalPrice: 10},
				{ID: 1, UserID: "user-1", Status: domain.OrderCompleted, TotalPrice: 5},
			}, 2, nil).
			Once()

		resp := api.Get("/api/v1/orders", "X-User-ID: user-1")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"total":2`)
		assert.Contains(t, resp.Body.String(), `"has_next":false`)
		assert.Contains(t, resp.Body.String(), `"has_previous":false`)
	})

	t.Run("passes the status filter and paging through", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			ListOrders(mock.Anything, "user-1", "paid", 5, 5).
			Return(nil, 11, nil).
			Once()

		resp := api.Get("/api/v1/orders?status=paid&page=2&size=5", "X-User-ID: user-1")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"items":[]`)
		assert.Contains(t, resp.Body.String(), `"has_next":true`)
		assert.Contains(t, resp.Body.String(), `"has_previous":true`)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		t.Parallel()

		api, _, _ := newOrdersAPI(t)

		resp := api.Get("/api/v1/orders?status=shipped", "X-User-ID: user-1")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestOrdersHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the order", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetOrder(mock.Anything, "user-1", int64(5)).
			Return(&domain.Order{
				ID: 5, UserID: "user-1", Status: domain.OrderPaid, TotalPrice: 29,
				Items: []domain.OrderItem{{ProductID: 42, Quantity: 2, Price: 14.50}},
			}, nil).
			Once()

		resp := api.Get("/api/v1/orders/5", "X-User-ID: user-1")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"status":"paid"`)
		assert.Contains(t, resp.Body.String(), `"product_id":42`)
	})

	t.Run("someone else's order is 404", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetOrder(mock.Anything, "user-2", int64(5)).
			Return(nil, pgx.ErrNoRows).
			Once()

		resp := api.Get("/api/v1/orders/5", "X-User-ID: user-2")
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestOrdersHandler_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("cancels a pending order", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetOrder(mock.Anything, "user-1", int64(5)).
			Return(&domain.Order{ID: 5, UserID: "user-1", Status: domain.OrderPending}, nil).
			Once()
		ms.EXPECT().
			UpdateOrderStatus(mock.Anything, int64(5), domain.OrderCancelled).
			Return(nil).
			Once()

		resp := api.Put("/api/v1/orders/5/status", "X-User-ID: user-1", map[string]any{
			"status": "cancelled",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"status":"cancelled"`)
	})

	t.Run("invalid transition conflicts", func(t *testing.T) {
		t.Parallel()

		api, _, ms := newOrdersAPI(t)
		ms.EXPECT().
			GetOrder(mock.Anything, "user-1", int64(5)).
			Return(&domain.Order{ID: 5, UserID: "user-1", Status: domain.OrderCompleted}, nil).
			Once()

		resp := api.Put("/api/v1/orders/5/status", "X-User-ID: user-1", map[string]any{
			"status": "cancelled",
		})
		require.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("unknown status is rejected by validation", func(t *testing.T) {
		t.Parallel()

		api, _, _ := newOrdersAPI(t)

		resp := api.Put("/api/v1/orders/5/status", "X-User-ID: user-1", map[string]any{
			"status": "shipped",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}
