package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colrun/colrun/packages/runner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndList(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(&runner.RunResult{
		Collection: "smoke",
		Passed:     3,
		Failures:   1,
		Duration:   120 * time.Millisecond,
	}))
	require.NoError(t, store.Save(&runner.RunResult{
		Collection: "regression",
		Passed:     5,
		Errors:     2,
		Skipped:    1,
		Duration:   340 * time.Millisecond,
	}))

	records, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "regression", records[0].Collection)
	assert.Equal(t, 5, records[0].Passed)
	assert.Equal(t, 2, records[0].Errors)
	assert.Equal(t, 1, records[0].Skipped)
	assert.Equal(t, int64(340), records[0].DurationMs)

	assert.Equal(t, "smoke", records[1].Collection)
	assert.Equal(t, 1, records[1].Failures)
}

func TestStore_ListLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(&runner.RunResult{Collection: "many"}))
	}

	records, err := store.List(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStore_ListEmpty(t *testing.T) {
	store := openTestStore(t)

	records, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
