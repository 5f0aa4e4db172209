package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/orglyph/internal/store"
)

func openStore(t *testing.T) *store.RecentStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "state", "recent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	s := openStore(t)

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTouch_RecordsAndCounts(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Touch("/tmp/notes.org"))
	require.NoError(t, s.Touch("/tmp/notes.org"))
	require.NoError(t, s.Touch("/tmp/todo.org"))

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPath := map[string]store.Entry{}
	for _, e := range entries {
		byPath[e.Path] = e
	}
	require.Equal(t, 2, byPath["/tmp/notes.org"].OpenCount)
	require.Equal(t, 1, byPath["/tmp/todo.org"].OpenCount)
}

func TestList_MostRecentFirst(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Touch("/tmp/a.org"))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Touch("/tmp/b.org"))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Touch("/tmp/a.org"))

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "/tmp/a.org", entries[0].Path)
	require.Equal(t, "/tmp/b.org", entries[1].Path)
}

func TestList_RespectsLimit(t *testing.T) {
	s := openStore(t)

	for _, p := range []string{"/tmp/a.org", "/tmp/b.org", "/tmp/c.org"} {
		require.NoError(t, s.Touch(p))
	}

	entries, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestForget_RemovesEntry(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Touch("/tmp/gone.org"))
	require.NoError(t, s.Forget("/tmp/gone.org"))

	entries, err := s.List(10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.db")

	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Touch("/tmp/persist.org"))
	require.NoError(t, s.Close())

	s2, err := store.Open(path)
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "/tmp/persist.org", entries[0].Path)
}
