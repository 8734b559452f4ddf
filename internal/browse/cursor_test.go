package browse_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstepanov/storefront/internal/browse"
	domain "github.com/mstepanov/storefront/pkg/types"
)

type queryCall struct {
	filters browse.FilterSet
	page    int
	size    int
}

// fakeQuerier records calls and delegates to a swappable response
// function.
type fakeQuerier struct {
	mu    sync.Mutex
	calls []queryCall
	fn    func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error)
}

func (q *fakeQuerier) Query(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error) {
	q.mu.Lock()
	q.calls = append(q.calls, queryCall{filters: f, page: page, size: size})
	fn := q.fn
	q.mu.Unlock()
	return fn(ctx, f, page, size)
}

func (q *fakeQuerier) respond(fn func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error)) {
	q.mu.Lock()
	q.fn = fn
	q.mu.Unlock()
}

func (q *fakeQuerier) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

func (q *fakeQuerier) call(i int) queryCall {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls[i]
}

func item(id int64) domain.ProductSummary {
	return domain.ProductSummary{ID: id, Name: fmt.Sprintf("product %d", id), Price: float64(id), Availability: domain.AvailabilityInStock}
}

func ids(items []domain.ProductSummary) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// twoPages serves page 1 as [1,2] with more available and page 2 as [3]
// with nothing after.
func twoPages(_ context.Context, _ browse.FilterSet, page, _ int) (*browse.Page, error) {
	switch page {
	case 1:
		return &browse.Page{Items: []domain.ProductSummary{item(1), item(2)}, Total: 3, HasNext: true}, nil
	default:
		return &browse.Page{Items: []domain.ProductSummary{item(3)}, Total: 3, HasNext: false}, nil
	}
}

func TestCursor_ResetReplacesItems(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{fn: twoPages}
	c := browse.NewCursor(q, browse.WithPageSize(2))

	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{Search: "phone"}))

	assert.Equal(t, []int64{1, 2}, ids(c.Items()))
	assert.Equal(t, 3, c.Total())
	assert.False(t, c.Exhausted())
	assert.Equal(t, queryCall{filters: browse.FilterSet{Search: "phone"}, page: 1, size: 2}, q.call(0))
}

func TestCursor_FetchNextPageAppendsInOrder(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{fn: twoPages}
	c := browse.NewCursor(q, browse.WithPageSize(2))
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{Search: "phone"}))

	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
	assert.True(t, c.Exhausted())
	assert.Equal(t, 2, q.call(1).page)
	assert.Equal(t, "phone", q.call(1).filters.Search, "pagination reuses the committed filter set")
}

func TestCursor_FetchNextPageNoopWhenExhausted(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{fn: twoPages}
	c := browse.NewCursor(q)
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{}))
	_, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	require.True(t, c.Exhausted())

	before := q.callCount()
	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, q.callCount(), "an exhausted cursor issues no network call")
}

func TestCursor_FetchNextPageNoopWhileInFlight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	q := &fakeQuerier{}
	q.respond(func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error) {
		if page == 1 {
			return &browse.Page{Items: []domain.ProductSummary{item(1)}, Total: 2, HasNext: true}, nil
		}
		<-release
		return &browse.Page{Items: []domain.ProductSummary{item(2)}, Total: 2, HasNext: false}, nil
	})
	c := browse.NewCursor(q)
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		applied, err := c.FetchNextPage(context.Background())
		assert.NoError(t, err)
		assert.True(t, applied)
	}()

	require.Eventually(t, func() bool { return q.callCount() == 2 }, time.Second, time.Millisecond)

	// Re-entrant call while page 2 is still in flight.
	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)

	close(release)
	<-done

	assert.Equal(t, []int64{1, 2}, ids(c.Items()))
	assert.Equal(t, 2, q.callCount(), "the guarded call issued no request")
}

func TestCursor_LastIssuedResetWins(t *testing.T) {
	t.Parallel()

	oldRelease := make(chan struct{})
	q := &fakeQuerier{}
	q.respond(func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error) {
		if f.Search == "old" {
			<-oldRelease
			return &browse.Page{Items: []domain.ProductSummary{item(1)}, Total: 1, HasNext: false}, nil
		}
		return &browse.Page{Items: []domain.ProductSummary{item(2)}, Total: 1, HasNext: false}, nil
	})
	c := browse.NewCursor(q)

	done := make(chan error, 1)
	go func() {
		done <- c.Reset(context.Background(), browse.FilterSet{Search: "old"})
	}()
	require.Eventually(t, func() bool { return q.callCount() == 1 }, time.Second, time.Millisecond)

	// A newer reset supersedes the one still in flight.
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{Search: "new"}))
	assert.Equal(t, []int64{2}, ids(c.Items()))

	// The stale response arrives afterwards and must be discarded.
	close(oldRelease)
	require.NoError(t, <-done)
	assert.Equal(t, []int64{2}, ids(c.Items()))
	assert.Equal(t, browse.FilterSet{Search: "new"}, c.Filters())
}

func TestCursor_FetchNextPageNoopDuringReset(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	q := &fakeQuerier{}
	q.respond(func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error) {
		<-release
		return &browse.Page{Items: []domain.ProductSummary{item(1)}, Total: 1, HasNext: true}, nil
	})
	c := browse.NewCursor(q)

	done := make(chan error, 1)
	go func() {
		done <- c.Reset(context.Background(), browse.FilterSet{})
	}()
	require.Eventually(t, func() bool { return q.callCount() == 1 }, time.Second, time.Millisecond)

	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, q.callCount())

	close(release)
	require.NoError(t, <-done)
}

func TestCursor_FetchErrorLeavesState(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{fn: twoPages}
	c := browse.NewCursor(q)
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{}))

	q.respond(func(context.Context, browse.FilterSet, int, int) (*browse.Page, error) {
		return nil, errors.New("connection refused")
	})
	applied, err := c.FetchNextPage(context.Background())
	require.Error(t, err)
	assert.False(t, applied)
	assert.Equal(t, []int64{1, 2}, ids(c.Items()))
	assert.False(t, c.Exhausted(), "a failed fetch must not mark exhaustion")

	// Retry targets the same page number.
	q.respond(twoPages)
	applied, err = c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
	assert.Equal(t, 2, q.call(2).page)
}

func TestCursor_ResetErrorKeepsLastKnownGood(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{fn: twoPages}
	c := browse.NewCursor(q)
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{Search: "phone"}))

	q.respond(func(context.Context, browse.FilterSet, int, int) (*browse.Page, error) {
		return nil, errors.New("upstream down")
	})
	err := c.Reset(context.Background(), browse.FilterSet{Search: "laptop"})
	require.Error(t, err)
	assert.Equal(t, []int64{1, 2}, ids(c.Items()))
	assert.Equal(t, browse.FilterSet{Search: "phone"}, c.Filters(),
		"filters roll back to the query the accumulated items came from")

	// Pagination after the failed reset continues the old query, never
	// mixing new filters into the old list.
	q.respond(twoPages)
	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
	assert.Equal(t, "phone", q.call(2).filters.Search)
	assert.Equal(t, 2, q.call(2).page)
}

func TestCursor_FetchTimeoutReleasesGuard(t *testing.T) {
	t.Parallel()

	var hang bool
	var mu sync.Mutex
	q := &fakeQuerier{}
	q.respond(func(ctx context.Context, f browse.FilterSet, page, size int) (*browse.Page, error) {
		mu.Lock()
		h := hang
		mu.Unlock()
		if h {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return twoPages(ctx, f, page, size)
	})
	c := browse.NewCursor(q, browse.WithFetchTimeout(30*time.Millisecond))
	require.NoError(t, c.Reset(context.Background(), browse.FilterSet{}))

	mu.Lock()
	hang = true
	mu.Unlock()
	_, err := c.FetchNextPage(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The hung request must not hold the in-flight guard forever.
	mu.Lock()
	hang = false
	mu.Unlock()
	applied, err := c.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
}
