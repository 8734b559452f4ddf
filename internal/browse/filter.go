package browse

import (
	"sync"
	"time"
)

// FilterState coalesces rapid filter edits into single committed
// FilterSet values. Free-text and price edits are debounced; category
// selection commits immediately. Each new edit cancels the previously
// scheduled commit, so for any burst of edits inside the window exactly
// one commit (the last) fires. The component never fails, only delays.
type FilterState struct {
	commit         func(FilterSet)
	searchDebounce time.Duration
	priceDebounce  time.Duration

	mu      sync.Mutex
	pending FilterSet
	seq     uint64
	timer   *time.Timer
}

// NewFilterState creates a holder that calls commit with the settled
// filter set. Commit runs on the timer goroutine for debounced edits
// and on the caller's goroutine for immediate ones.
func NewFilterState(commit func(FilterSet), opts ...Option) *FilterState {
	o := newOptions(opts)
	return &FilterState{
		commit:         commit,
		searchDebounce: o.searchDebounce,
		priceDebounce:  o.priceDebounce,
	}
}

// SetSearch stores the pending search text and schedules a commit after
// the search quiet period.
func (f *FilterState) SetSearch(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending.Search = text
	f.scheduleLocked(f.searchDebounce)
}

// SetPriceRange stores the pending price bounds and schedules a commit
// after the price quiet period. Zero means "no bound".
func (f *FilterState) SetPriceRange(minPrice, maxPrice float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending.MinPrice = minPrice
	f.pending.MaxPrice = maxPrice
	f.scheduleLocked(f.priceDebounce)
}

// SetCategory selects a category and commits immediately. A discrete
// selection needs no quiet period. Any scheduled debounce commit is
// superseded; its pending edits ride along in this commit.
func (f *FilterState) SetCategory(id int64) {
	f.mu.Lock()
	f.pending.CategoryID = id
	f.supersedeLocked()
	set := f.pending
	f.mu.Unlock()
	f.commit(set)
}

// Flush commits the pending filter set now, canceling any scheduled
// commit. No-op when nothing is pending.
func (f *FilterState) Flush() {
	f.mu.Lock()
	if f.timer == nil {
		f.mu.Unlock()
		return
	}
	f.supersedeLocked()
	set := f.pending
	f.mu.Unlock()
	f.commit(set)
}

// Pending returns the current edit state, committed or not. Useful for
// echoing the user's input back before the debounce settles.
func (f *FilterState) Pending() FilterSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// scheduleLocked arms the commit timer, replacing any previous one. The
// sequence check keeps a superseded timer callback from committing if
// it already fired and is waiting on the mutex.
func (f *FilterState) scheduleLocked(d time.Duration) {
	f.supersedeLocked()
	seq := f.seq
	f.timer = time.AfterFunc(d, func() {
		f.mu.Lock()
		if seq != f.seq {
			f.mu.Unlock()
			return
		}
		f.timer = nil
		set := f.pending
		f.mu.Unlock()
		f.commit(set)
	})
}

func (f *FilterState) supersedeLocked() {
	f.seq++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
