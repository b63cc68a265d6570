package syncq

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_AppendLoadRemove(t *testing.T) {
	s := newSQLiteStore(t)

	first := &Item{
		ID:         "item-1",
		Action:     "create",
		Payload:    json.RawMessage(`{"id":"q1"}`),
		EnqueuedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	second := &Item{
		ID:         "item-2",
		Action:     "delete",
		Payload:    json.RawMessage(`{"id":"q2"}`),
		EnqueuedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, s.Append(first))
	require.NoError(t, s.Append(second))

	items, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID, "load preserves enqueue order")
	assert.Equal(t, "item-2", items[1].ID)
	assert.Equal(t, "create", items[0].Action)
	assert.JSONEq(t, `{"id":"q1"}`, string(items[0].Payload))
	assert.True(t, items[0].EnqueuedAt.Equal(first.EnqueuedAt))

	require.NoError(t, s.Remove("item-1"))
	items, err = s.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-2", items[0].ID)

	// removing an unknown id is not an error
	require.NoError(t, s.Remove("ghost"))
}

func TestSQLiteStore_SetAttempts(t *testing.T) {
	s := newSQLiteStore(t)

	item := &Item{
		ID:         "retrying",
		Action:     "update",
		Payload:    json.RawMessage(`{}`),
		EnqueuedAt: time.Now(),
	}
	require.NoError(t, s.Append(item))
	require.NoError(t, s.SetAttempts("retrying", 2))

	items, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Attempts)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(&Item{
		ID:         "persisted",
		Action:     "create",
		Payload:    json.RawMessage(`{"id":"q1"}`),
		EnqueuedAt: time.Now(),
		Attempts:   1,
	}))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	items, err := reopened.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "persisted", items[0].ID)
	assert.Equal(t, 1, items[0].Attempts)
}
