package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/todo-server/query"
	"github.com/stevemurr/todo-server/store"
)

// runStorageTests runs a common test suite against any Storage implementation.
func runStorageTests(t *testing.T, s store.Storage) {
	t.Helper()

	t.Run("Read empty", func(t *testing.T) {
		recs, err := s.Read()
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Write and Read", func(t *testing.T) {
		recs := []store.Record{
			{"id": float64(1), "title": "first"},
			{"id": float64(2), "title": "second", "complete": true},
		}
		require.NoError(t, s.Write(recs))

		got, err := s.Read()
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0]["title"])
		assert.Equal(t, true, got[1]["complete"])
	})

	t.Run("Write overwrites", func(t *testing.T) {
		require.NoError(t, s.Write([]store.Record{{"id": float64(3)}}))
		got, err := s.Read()
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, float64(3), got[0]["id"])
	})

	t.Run("Write empty", func(t *testing.T) {
		require.NoError(t, s.Write(nil))
		got, err := s.Read()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryStorage(t *testing.T) {
	runStorageTests(t, store.NewMemoryStorage())
}

func TestJSONStorage(t *testing.T) {
	s, err := store.NewJSONStorage(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	runStorageTests(t, s)
}

func TestSqliteStorage(t *testing.T) {
	s, err := store.NewSqliteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	runStorageTests(t, s)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		file    string
	}{
		{"json", "db.json"},
		{"sqlite", "db.sqlite"},
		{"memory", ""},
		{"", "default.json"},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			s, err := store.New(tc.backend, filepath.Join(dir, tc.backend, tc.file))
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := store.New("redis", dir)
		assert.Error(t, err)
	})
}

func TestOpen_NoStorage(t *testing.T) {
	_, err := store.Open(nil)
	assert.ErrorIs(t, err, store.ErrNoStorage)

	_, err = store.OpenFile("")
	assert.ErrorIs(t, err, store.ErrNoStorage)

	_, err = store.New("sqlite", "")
	assert.ErrorIs(t, err, store.ErrNoStorage)
}

func TestJSONStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	db, err := store.OpenFile(path)
	require.NoError(t, err)
	assert.Empty(t, db.All())
}

func TestJSONStorage_WrongShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))

	db, err := store.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, db.Len())
}

func TestJSONStorage_PrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	db, err := store.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, db.Insert(store.Record{"id": 1, "title": "x", "complete": false}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"complete\": false,\n    \"id\": 1,\n    \"title\": \"x\"\n  }\n]", string(b))
}

func TestJSONStorage_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "db.json")
	db, err := store.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, db.Insert(store.Record{"id": 1}))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// Records written through one DB are visible after reopening, and numeric
// ids still match after the JSON round trip.
func TestReopen(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo."+backend)

			s, err := store.New(backend, path)
			require.NoError(t, err)
			db, err := store.Open(s)
			require.NoError(t, err)
			require.NoError(t, db.Insert(store.Record{"id": 1, "title": "a", "complete": false}))
			require.NoError(t, db.Insert(store.Record{"id": 2, "title": "b", "complete": false}))
			require.NoError(t, db.Update(store.Record{"complete": true}, query.Field("id").Equals(2)))
			require.NoError(t, db.Close())

			s, err = store.New(backend, path)
			require.NoError(t, err)
			db, err = store.Open(s)
			require.NoError(t, err)
			defer db.Close()

			all := db.All()
			require.Len(t, all, 2)
			assert.Equal(t, "a", all[0]["title"])
			assert.Equal(t, "b", all[1]["title"])

			got := db.Search(query.Field("id").Equals(2))
			require.Len(t, got, 1)
			assert.Equal(t, true, got[0]["complete"])
		})
	}
}

func TestMemoryStorage_Snapshot(t *testing.T) {
	s := store.NewMemoryStorage()
	db, err := store.Open(s)
	require.NoError(t, err)
	require.NoError(t, db.Insert(store.Record{"id": 5, "tags": []any{"x"}}))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	// Snapshot has the persisted shape: numbers decode as float64.
	assert.Equal(t, float64(5), snap[0]["id"])

	snap[0]["tags"].([]any)[0] = "mutated"
	assert.Equal(t, []any{"x"}, db.All()[0]["tags"])
}
