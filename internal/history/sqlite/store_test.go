package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/quill/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Positions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown path is not found", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Position(ctx, "/tmp/none.txt")
		assert.ErrorIs(t, err, history.ErrNotFound)
	})

	t.Run("saves and reads back a position", func(t *testing.T) {
		store := newTestStore(t)
		at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		err := store.SavePosition(ctx, history.Position{Path: "/a.txt", Row: 4, Col: 2, UpdatedAt: at})
		require.NoError(t, err)

		pos, err := store.Position(ctx, "/a.txt")
		require.NoError(t, err)
		assert.Equal(t, 4, pos.Row)
		assert.Equal(t, 2, pos.Col)
		assert.True(t, at.Equal(pos.UpdatedAt))
	})

	t.Run("later position replaces earlier one", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SavePosition(ctx, history.Position{Path: "/a.txt", Row: 1, Col: 1}))
		require.NoError(t, store.SavePosition(ctx, history.Position{Path: "/a.txt", Row: 9, Col: 0}))

		pos, err := store.Position(ctx, "/a.txt")
		require.NoError(t, err)
		assert.Equal(t, 9, pos.Row)
		assert.Equal(t, 0, pos.Col)
	})
}

func TestStore_Saves(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records and lists newest first", func(t *testing.T) {
		store := newTestStore(t)
		for i := 0; i < 3; i++ {
			_, err := store.RecordSave(ctx, history.SaveRecord{
				SessionID: "s1",
				Path:      "/a.txt",
				Lines:     i + 1,
				Bytes:     10 * (i + 1),
				SavedAt:   base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}
		_, err := store.RecordSave(ctx, history.SaveRecord{SessionID: "s1", Path: "/b.txt", SavedAt: base})
		require.NoError(t, err)

		records, err := store.ListSaves(ctx, "/a.txt", 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, 3, records[0].Lines)
		assert.Equal(t, 1, records[2].Lines)
		assert.NotEmpty(t, records[0].ID)

		limited, err := store.ListSaves(ctx, "/a.txt", 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("keeps a given id", func(t *testing.T) {
		store := newTestStore(t)
		id, err := store.RecordSave(ctx, history.SaveRecord{ID: "fixed", Path: "/a.txt"})
		require.NoError(t, err)
		assert.Equal(t, "fixed", id)
	})

	t.Run("prunes old saves per path", func(t *testing.T) {
		store := newTestStore(t)
		for i := 0; i < 5; i++ {
			_, err := store.RecordSave(ctx, history.SaveRecord{Path: "/a.txt", Lines: i, SavedAt: base.Add(time.Duration(i) * time.Second)})
			require.NoError(t, err)
		}
		_, err := store.RecordSave(ctx, history.SaveRecord{Path: "/b.txt", SavedAt: base})
		require.NoError(t, err)

		removed, err := store.PruneSaves(ctx, "/a.txt", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		records, err := store.ListSaves(ctx, "/a.txt", 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 4, records[0].Lines)
		assert.Equal(t, 3, records[1].Lines)

		others, err := store.ListSaves(ctx, "/b.txt", 0)
		require.NoError(t, err)
		assert.Len(t, others, 1)
	})
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	store, err := NewInMemory()
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.NoError(t, store.Close())

	err = store.SavePosition(ctx, history.Position{Path: "/a"})
	assert.ErrorIs(t, err, history.ErrStoreClosed)
	_, err = store.Position(ctx, "/a")
	assert.ErrorIs(t, err, history.ErrStoreClosed)
	_, err = store.RecordSave(ctx, history.SaveRecord{Path: "/a"})
	assert.ErrorIs(t, err, history.ErrStoreClosed)
	_, err = store.ListSaves(ctx, "/a", 0)
	assert.ErrorIs(t, err, history.ErrStoreClosed)
	_, err = store.PruneSaves(ctx, "/a", 1)
	assert.ErrorIs(t, err, history.ErrStoreClosed)
}

func TestNew_FileBacked(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SavePosition(ctx, history.Position{Path: "/a.txt", Row: 3, Col: 1}))
	require.NoError(t, store.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	pos, err := reopened.Position(ctx, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, pos.Row)
}
