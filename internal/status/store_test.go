package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllLoading(t *testing.T) {
	st := NewStore()
	names := []string{"alpha", "beta", "gamma"}

	st.MarkAllLoading(1, names)

	for _, name := range names {
		assert.Equal(t, StatusLoading, st.Get(name))
	}
	progress := st.Progress()
	assert.Equal(t, 0, progress.Done)
	assert.Equal(t, 3, progress.Total)
	assert.False(t, progress.Complete)
}

func TestGetReturnsUnknownForMissingKey(t *testing.T) {
	st := NewStore()
	assert.Equal(t, StatusUnknown, st.Get("nope"))
}

func TestStaleWriteDiscarded(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"alpha", "beta"})
	require.True(t, st.Set("alpha", StatusUpToDate, 1))

	// A newer generation takes ownership of writes.
	st.MarkAllLoading(2, []string{"alpha", "beta"})

	assert.False(t, st.Set("beta", StatusModified, 1), "write from superseded generation must be dropped")
	assert.Equal(t, StatusLoading, st.Get("beta"))
	assert.False(t, st.MarkLoading("beta", 1))
	assert.False(t, st.MarkComplete(1))
}

func TestProgressMonotonicWithinGenerationAndResets(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"a", "b", "c"})

	last := 0
	for _, name := range []string{"a", "b"} {
		st.Set(name, StatusUpToDate, 1)
		done := st.Progress().Done
		assert.GreaterOrEqual(t, done, last)
		last = done
	}
	assert.Equal(t, 2, st.Progress().Done)

	st.MarkAllLoading(2, []string{"a", "b", "c"})
	assert.Equal(t, 0, st.Progress().Done)
}

func TestSetCompletesWhenAllProbed(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"a", "b"})

	st.Set("a", StatusUpToDate, 1)
	assert.False(t, st.Progress().Complete)
	st.Set("b", BehindBy(2), 1)
	assert.True(t, st.Progress().Complete)
}

func TestMarkLoadingUncountsRepository(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"a", "b"})
	st.Set("a", StatusUpToDate, 1)
	st.Set("b", StatusUpToDate, 1)
	require.True(t, st.Progress().Complete)

	require.True(t, st.MarkLoading("a", 1))
	progress := st.Progress()
	assert.Equal(t, 1, progress.Done)
	assert.False(t, progress.Complete)
	assert.Equal(t, StatusLoading, st.Get("a"))

	// Re-probing the repository restores completion.
	st.Set("a", AheadBy(1), 1)
	assert.True(t, st.Progress().Complete)
}

func TestSeedDoesNotOverwriteOrCount(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"a"})
	st.Set("a", StatusModified, 1)

	st.Seed(map[string]SyncStatus{
		"a": StatusUpToDate,
		"b": BehindBy(3),
	})

	assert.Equal(t, StatusModified, st.Get("a"), "seed must not overwrite live results")
	assert.Equal(t, BehindBy(3), st.Get("b"))
	assert.Equal(t, 1, st.Progress().Done)
}

func TestSubscribeSignalsOnWrite(t *testing.T) {
	st := NewStore()
	ch := st.Subscribe()
	defer st.Unsubscribe(ch)

	st.MarkAllLoading(1, []string{"a"})

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a store notification")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := NewStore()
	st.MarkAllLoading(1, []string{"a"})
	st.Set("a", StatusUpToDate, 1)

	snap := st.Snapshot()
	snap["a"] = StatusModified

	assert.Equal(t, StatusUpToDate, st.Get("a"))
}
