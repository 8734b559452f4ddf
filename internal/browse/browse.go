// Package browse implements the catalog browsing view-model: debounced
// filter edits feed a generation-tagged pagination cursor that owns an
// append-only result list, the same state machine an infinite-scroll
// product grid runs.
package browse

import (
	"context"
	"time"

	domain "github.com/mstepanov/storefront/pkg/types"
)

// FilterSet is an immutable snapshot of the catalog filter criteria. A
// new value is produced on every committed edit. Zero values mean "not
// set".
type FilterSet struct {
	Search     string
	CategoryID int64
	MinPrice   float64
	MaxPrice   float64
}

// Page is one page of catalog results as returned by a Querier.
type Page struct {
	Items   []domain.ProductSummary
	Total   int
	HasNext bool
}

// Querier fetches one page of the catalog for a filter set. Page is
// 1-based. A transport failure or non-2xx status is returned as an
// error.
type Querier interface {
	Query(ctx context.Context, f FilterSet, page, size int) (*Page, error)
}

const (
	defaultSearchDebounce = 500 * time.Millisecond
	defaultPriceDebounce  = 800 * time.Millisecond
	defaultPageSize       = 20
	defaultFetchTimeout   = 10 * time.Second
)

type options struct {
	searchDebounce time.Duration
	priceDebounce  time.Duration
	pageSize       int
	fetchTimeout   time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		searchDebounce: defaultSearchDebounce,
		priceDebounce:  defaultPriceDebounce,
		pageSize:       defaultPageSize,
		fetchTimeout:   defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a FilterState, Cursor or Session. Options that do
// not apply to the configured component are ignored.
type Option func(*options)

// WithSearchDebounce sets the quiet period after a search edit before
// the filter set commits.
func WithSearchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.searchDebounce = d
	}
}

// WithPriceDebounce sets the quiet period after a price edit before the
// filter set commits.
func WithPriceDebounce(d time.Duration) Option {
	return func(o *options) {
		o.priceDebounce = d
	}
}

// WithPageSize sets how many items each page fetch requests.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithFetchTimeout bounds each page fetch. A hung request would
// otherwise hold the in-flight guard and block pagination for good.
// Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.fetchTimeout = d
	}
}
