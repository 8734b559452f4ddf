package browse

import (
	"context"
	"sync"
	"time"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Cursor owns the accumulated result list and mediates between "fresh
// query" and "more of the same query". Reset replaces the list for a
// new filter set; FetchNextPage appends. Every outgoing request carries
// the generation active at dispatch, and a response whose generation is
// stale at completion is discarded, so the last-issued Reset always
// wins no matter the response arrival order.
type Cursor struct {
	querier  Querier
	pageSize int
	timeout  time.Duration

	mu         sync.Mutex
	generation uint64
	filters    FilterSet
	applied    FilterSet
	items      []domain.ProductSummary
	total      int
	nextPage   int
	exhausted  bool
	inFlight   bool
	resetting  int
}

// NewCursor creates a cursor over q with an empty result list.
func NewCursor(q Querier, opts ...Option) *Cursor {
	o := newOptions(opts)
	return &Cursor{
		querier:  q,
		pageSize: o.pageSize,
		timeout:  o.fetchTimeout,
		nextPage: 1,
	}
}

// Reset starts a fresh query for f: page 1 replaces the accumulated
// list. A Reset issued while another is in flight supersedes it; the
// superseded response, success or failure, is discarded. On error the
// last-known-good list stays in place and the caller may retry.
func (c *Cursor) Reset(ctx context.Context, f FilterSet) error {
	return c.completeReset(ctx, c.beginReset(f), f)
}

// beginReset claims the next generation for f on the calling goroutine.
// Claim order is commit order, so whichever caller begins last wins no
// matter how the fetches interleave.
func (c *Cursor) beginReset(f FilterSet) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.filters = f
	c.resetting++
	return c.generation
}

// completeReset fetches page 1 for a claimed generation and applies the
// response if the generation is still current.
func (c *Cursor) completeReset(ctx context.Context, gen uint64, f FilterSet) error {
	page, err := c.query(ctx, f, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetting--
	if gen != c.generation {
		return nil
	}
	if err != nil {
		// Keep filters paired with the accumulated items so a
		// later FetchNextPage continues the query they came from.
		c.filters = c.applied
		return err
	}
	c.filters = f
	c.applied = f
	c.items = append([]domain.ProductSummary(nil), page.Items...)
	c.total = page.Total
	c.nextPage = 2
	c.exhausted = !page.HasNext
	return nil
}

// FetchNextPage fetches the next page of the current filter set and
// appends it. It reports whether a page was applied: a call while
// exhausted, while a fetch or Reset is in flight, or whose response was
// superseded by a newer Reset is a no-op. A failed fetch leaves the
// list and page counter unchanged and does not mark exhaustion.
func (c *Cursor) FetchNextPage(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.exhausted || c.inFlight || c.resetting > 0 {
		c.mu.Unlock()
		return false, nil
	}
	c.inFlight = true
	gen := c.generation
	f := c.filters
	pageNum := c.nextPage
	c.mu.Unlock()

	page, err := c.query(ctx, f, pageNum)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if gen != c.generation {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	c.items = append(c.items, page.Items...)
	c.total = page.Total
	c.nextPage++
	c.exhausted = !page.HasNext
	return true, nil
}

// Items returns a copy of the accumulated result list. The list never
// shrinks except via Reset and item order is append-only within one
// filter set's lifetime.
func (c *Cursor) Items() []domain.ProductSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ProductSummary(nil), c.items...)
}

// Total returns the server-reported match count for the current filter
// set, zero before the first page lands.
func (c *Cursor) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Exhausted reports whether no further pages exist for the current
// query.
func (c *Cursor) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Filters returns the filter set of the most recent Reset.
func (c *Cursor) Filters() FilterSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *Cursor) query(ctx context.Context, f FilterSet, page int) (*Page, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.querier.Query(ctx, f, page, c.pageSize)
}
