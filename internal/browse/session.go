package browse

import (
	"context"
	"sync"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// Session wires a FilterState to a Cursor: every committed filter set
// triggers an asynchronous Reset, and MoreWanted exposes the cursor's
// pagination for a scroll-style trigger. Resets run off the caller's
// goroutine so a debounce commit never blocks on the network; the
// cursor's generation check keeps overlapping resets last-commit-wins.
type Session struct {
	filters *FilterState
	cursor  *Cursor

	mu      sync.Mutex
	lastErr error
	settled uint64
}

// NewSession creates a session over q.
func NewSession(q Querier, opts ...Option) *Session {
	s := &Session{}
	s.cursor = NewCursor(q, opts...)
	s.filters = NewFilterState(s.onCommit, opts...)
	return s
}

// SetSearch records a search edit; the query refreshes once the edit
// settles.
func (s *Session) SetSearch(text string) {
	s.filters.SetSearch(text)
}

// SetPriceRange records a price-bound edit; the query refreshes once
// the edit settles.
func (s *Session) SetPriceRange(minPrice, maxPrice float64) {
	s.filters.SetPriceRange(minPrice, maxPrice)
}

// SetCategory selects a category and refreshes the query immediately.
func (s *Session) SetCategory(id int64) {
	s.filters.SetCategory(id)
}

// Flush commits any pending filter edit now instead of waiting out the
// debounce window.
func (s *Session) Flush() {
	s.filters.Flush()
}

// MoreWanted is the scroll-trigger entry point: it fetches the next
// page at most once per call, and is a guarded no-op while a fetch is
// in flight, a refresh is pending or the query is exhausted.
func (s *Session) MoreWanted(ctx context.Context) (bool, error) {
	return s.cursor.FetchNextPage(ctx)
}

// Items returns a copy of the accumulated result list.
func (s *Session) Items() []domain.ProductSummary {
	return s.cursor.Items()
}

// Total returns the server-reported match count for the current query.
func (s *Session) Total() int {
	return s.cursor.Total()
}

// Exhausted reports whether the current query has no further pages.
func (s *Session) Exhausted() bool {
	return s.cursor.Exhausted()
}

// Filters returns the most recently committed filter set.
func (s *Session) Filters() FilterSet {
	return s.cursor.Filters()
}

// Err returns the error from the most recently settled refresh, nil
// when it succeeded. Errors never mark the query exhausted; editing a
// filter again or flushing retries.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Settled returns how many refreshes have completed, applied or
// discarded. Callers waiting on an asynchronous commit can poll it.
func (s *Session) Settled() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// onCommit claims the reset generation before returning so that commit
// order, not goroutine scheduling, decides which filter set wins. Only
// the fetch and apply run asynchronously.
func (s *Session) onCommit(f FilterSet) {
	gen := s.cursor.beginReset(f)
	go func() {
		err := s.cursor.completeReset(context.Background(), gen, f)
		s.mu.Lock()
		s.lastErr = err
		s.settled++
		s.mu.Unlock()
	}()
}
