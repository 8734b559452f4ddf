package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mstepanov/storefront/internal/store"
)

// HealthHandler provides liveness and readiness probes.
type HealthHandler struct {
	store store.Store
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler. The redis client may be
// nil when the cart backend is not configured.
func NewHealthHandler(s store.Store, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{store: s, redis: rdb}
}

// Healthz returns 200 while the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 when both backing stores answer, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable", "component": "database"},
		)
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			return c.JSON(
				http.StatusServiceUnavailable,
				map[string]string{"status": "unavailable", "component": "redis"},
			)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
