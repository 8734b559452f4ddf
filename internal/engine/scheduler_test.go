package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeMocks "github.com/mstepanov/storefront/internal/store/mocks"
)

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := NewEngine(storeMocks.NewMockStore(t), WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, 5*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng := NewEngine(storeMocks.NewMockStore(t), WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_NextRunWithinInterval(t *testing.T) {
	t.Parallel()

	eng := NewEngine(storeMocks.NewMockStore(t), WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, 10*time.Minute, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	entries := sched.Entries()
	require.Len(t, entries, 1)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), entries[0].Next, 11*time.Minute)
}
