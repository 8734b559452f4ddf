package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mstepanov/storefront/pkg/types"
)

func setupTestRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client, 24*time.Hour), mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		UserID: "user-001",
		Items: []domain.CartItem{
			{ProductID: 42, Quantity: 2, AddedAt: now},
		},
		UpdatedAt: now,
	}
}

func TestRedisRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mr := setupTestRedis(t)

		c := sampleCart()
		data, err := json.Marshal(c)
		require.NoError(t, err)
		require.NoError(t, mr.Set("cart:"+c.UserID, string(data)))

		got, err := repo.Get(context.Background(), c.UserID)
		require.NoError(t, err)
		assert.Equal(t, c.UserID, got.UserID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(42), got.Items[0].ProductID)
		assert.Equal(t, 2, got.Items[0].Quantity)
	})

	t.Run("missing cart returns ErrNotFound", func(t *testing.T) {
		repo, _ := setupTestRedis(t)

		_, err := repo.Get(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("corrupt payload is an error", func(t *testing.T) {
		repo, mr := setupTestRedis(t)
		require.NoError(t, mr.Set("cart:user-001", "{not json"))

		_, err := repo.Get(context.Background(), "user-001")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisRepository_Save(t *testing.T) {
	repo, mr := setupTestRedis(t)
	c := sampleCart()

	require.NoError(t, repo.Save(context.Background(), c))

	// Stored under the expected key with the configured TTL.
	require.True(t, mr.Exists("cart:user-001"))
	assert.Equal(t, 24*time.Hour, mr.TTL("cart:user-001"))

	got, err := repo.Get(context.Background(), c.UserID)
	require.NoError(t, err)
	assert.Equal(t, c.Items, got.Items)
}

func TestRedisRepository_SaveRefreshesTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)
	c := sampleCart()

	require.NoError(t, repo.Save(context.Background(), c))
	mr.FastForward(12 * time.Hour)
	require.NoError(t, repo.Save(context.Background(), c))

	assert.Equal(t, 24*time.Hour, mr.TTL("cart:user-001"))
}

func TestRedisRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	c := sampleCart()

	require.NoError(t, repo.Save(context.Background(), c))
	require.NoError(t, repo.Delete(context.Background(), c.UserID))
	assert.False(t, mr.Exists("cart:user-001"))

	// Deleting a missing cart is not an error.
	require.NoError(t, repo.Delete(context.Background(), c.UserID))
}
