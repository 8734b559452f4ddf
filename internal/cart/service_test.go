package cart

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"

	storeMocks "github.com/mstepanov/storefront/internal/store/mocks"
	domain "github.com/mstepanov/storefront/pkg/types"
)

func newTestService(t *testing.T) (*Service, *storeMocks.MockStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ms := storeMocks.NewMockStore(t)
	return NewService(NewRedisRepository(client, time.Hour), ms), ms
}

func stockedProduct(id int64) *domain.Product {
	return &domain.Product{
		ID:           id,
		Name:         "Ceramic Mug",
		Price:        14.50,
		Availability: domain.AvailabilityInStock,
		IsActive:     true,
	}
}

func TestServiceGet_EmptyForNewUser(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.Get(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Equal(t, "fresh-user", c.UserID)
	assert.Empty(t, c.Items)
}

func TestServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a new line", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Once()

		c, err := svc.AddItem(ctx, "u1", 1, 2)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.False(t, c.UpdatedAt.IsZero())
	})

	t.Run("merges quantity into an existing line", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Times(2)

		_, err := svc.AddItem(ctx, "u1", 1, 2)
		require.NoError(t, err)
		c, err := svc.AddItem(ctx, "u1", 1, 3)
		require.NoError(t, err)

		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddItem(ctx, "u1", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(99)).Return(nil, pgx.ErrNoRows).Once()

		_, err := svc.AddItem(ctx, "u1", 99, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("discontinued product", func(t *testing.T) {
		svc, ms := newTestService(t)
		p := stockedProduct(7)
		p.Availability = domain.AvailabilityDiscontinued
		ms.EXPECT().GetProduct(mock.Anything, int64(7)).Return(p, nil).Once()

		_, err := svc.AddItem(ctx, "u1", 7, 1)
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})
}

func TestServiceUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("sets quantity", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Once()

		_, err := svc.AddItem(ctx, "u1", 1, 2)
		require.NoError(t, err)

		c, err := svc.UpdateItem(ctx, "u1", 1, 9)
		require.NoError(t, err)
		assert.Equal(t, 9, c.Item(1).Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Once()

		_, err := svc.AddItem(ctx, "u1", 1, 2)
		require.NoError(t, err)

		c, err := svc.UpdateItem(ctx, "u1", 1, 0)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateItem(ctx, "u1", 1, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("missing line", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateItem(ctx, "u1", 123, 4)
		assert.ErrorIs(t, err, ErrItemNotInCart)
	})
}

func TestServiceRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the named product", func(t *testing.T) {
		svc, ms := newTestService(t)
		ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Once()
		ms.EXPECT().GetProduct(mock.Anything, int64(2)).Return(stockedProduct(2), nil).Once()

		_, err := svc.AddItem(ctx, "u1", 1, 1)
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, "u1", 2, 1)
		require.NoError(t, err)

		c, err := svc.RemoveItem(ctx, "u1", 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(2), c.Items[0].ProductID)
	})

	t.Run("missing line", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.RemoveItem(ctx, "u1", 1)
		assert.ErrorIs(t, err, ErrItemNotInCart)
	})
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.EXPECT().GetProduct(mock.Anything, int64(1)).Return(stockedProduct(1), nil).Once()

	_, err := svc.AddItem(ctx, "u1", 1, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))

	c, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
