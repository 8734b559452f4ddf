// Package engine maintains the catalog metadata snapshot. The snapshot
// backs the meta endpoint so filter widgets (price slider bounds,
// category chips) never hit the database on the request path.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mstepanov/storefront/internal/metrics"
	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// Engine recomputes aggregate catalog metadata from the store into an
// in-memory snapshot.
type Engine struct {
	store store.Store
	log   *slog.Logger

	mu   sync.RWMutex
	meta *domain.CatalogMeta
}

// NewEngine creates an Engine with injected dependencies.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	eng := &Engine{
		store: s,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// RefreshMeta recomputes the snapshot. A failed refresh leaves the
// previous snapshot in place.
func (eng *Engine) RefreshMeta(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.MetaRefreshDuration.Observe(time.Since(start).Seconds())
	}()
	metrics.MetaRefreshTotal.Inc()

	meta, err := eng.store.GetCatalogMeta(ctx)
	if err != nil {
		metrics.MetaRefreshErrorsTotal.Inc()
		return fmt.Errorf("refreshing catalog meta: %w", err)
	}
	meta.RefreshedAt = time.Now().UTC()

	metrics.CatalogProducts.Set(float64(meta.TotalProducts))

	eng.mu.Lock()
	eng.meta = meta
	eng.mu.Unlock()

	eng.log.Info("catalog meta refreshed",
		"total_products", meta.TotalProducts,
		"categories", len(meta.CategoryCounts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Meta returns the current snapshot, nil before the first successful
// refresh.
func (eng *Engine) Meta() *domain.CatalogMeta {
	eng.mu.RLock()
	defer eng.mu.RUnlock()
	return eng.meta
}
