package kv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kezzyngotho/aura/internal/database"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// storeFactories runs the shared contract against every backend.
func storeFactories(t *testing.T) map[string]func(t *testing.T) (Store, func(time.Time)) {
	t.Helper()
	return map[string]func(t *testing.T) (Store, func(time.Time)){
		"memory": func(t *testing.T) (Store, func(time.Time)) {
			s := NewMemoryStore()
			return s, func(now time.Time) { s.now = func() time.Time { return now } }
		},
		"sqlite": func(t *testing.T) (Store, func(time.Time)) {
			db, err := database.NewSQLiteConnection(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })

			s := NewSQLStore(db, DriverSQLite)
			require.NoError(t, s.Migrate(context.Background()))
			return s, func(now time.Time) { s.now = func() time.Time { return now } }
		},
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, factory := range storeFactories(t) {
		t.Run(name+"/get missing", func(t *testing.T) {
			s, _ := factory(t)
			var d doc
			_, err := s.Get(ctx, "nope", &d)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run(name+"/put then get bumps revision", func(t *testing.T) {
			s, _ := factory(t)
			require.NoError(t, s.Put(ctx, "k", doc{Name: "a", Count: 1}))
			require.NoError(t, s.Put(ctx, "k", doc{Name: "b", Count: 2}))

			var d doc
			rev, err := s.Get(ctx, "k", &d)
			require.NoError(t, err)
			assert.Equal(t, int64(2), rev)
			assert.Equal(t, doc{Name: "b", Count: 2}, d)
		})

		t.Run(name+"/conditional put", func(t *testing.T) {
			s, _ := factory(t)
			require.NoError(t, s.Put(ctx, "k", doc{Name: "a"}, IfRevision(0)))
			assert.ErrorIs(t, s.Put(ctx, "k", doc{Name: "b"}, IfRevision(0)), ErrConflict)
			assert.ErrorIs(t, s.Put(ctx, "k", doc{Name: "b"}, IfRevision(7)), ErrConflict)
			require.NoError(t, s.Put(ctx, "k", doc{Name: "c"}, IfRevision(1)))

			var d doc
			rev, err := s.Get(ctx, "k", &d)
			require.NoError(t, err)
			assert.Equal(t, int64(2), rev)
			assert.Equal(t, "c", d.Name)
		})

		t.Run(name+"/delete", func(t *testing.T) {
			s, _ := factory(t)
			require.NoError(t, s.Put(ctx, "k", doc{Name: "a"}))
			require.NoError(t, s.Delete(ctx, "k"))
			require.NoError(t, s.Delete(ctx, "k"))

			var d doc
			_, err := s.Get(ctx, "k", &d)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run(name+"/ttl expiry", func(t *testing.T) {
			s, setNow := factory(t)
			start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			setNow(start)
			require.NoError(t, s.Put(ctx, "k", doc{Name: "a"}, WithTTL(time.Hour)))

			var d doc
			_, err := s.Get(ctx, "k", &d)
			require.NoError(t, err)

			setNow(start.Add(2 * time.Hour))
			_, err = s.Get(ctx, "k", &d)
			assert.ErrorIs(t, err, ErrNotFound)

			// An expired key may be recreated as if it never existed.
			require.NoError(t, s.Put(ctx, "k", doc{Name: "fresh"}, IfRevision(0)))
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := Update(ctx, s, "counter", func(d *doc, exists bool) error {
		assert.False(t, exists)
		d.Count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)

	got, err = Update(ctx, s, "counter", func(d *doc, exists bool) error {
		assert.True(t, exists)
		d.Count += 10
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 11, got.Count)
}

func TestUpdate_AbortsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "k", doc{Count: 3}))

	boom := assert.AnError
	_, err := Update(ctx, s, "k", func(d *doc, _ bool) error {
		d.Count = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var d doc
	rev, err := s.Get(ctx, "k", &d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
	assert.Equal(t, 3, d.Count)
}

func TestUpdate_ConcurrentWritersAllLand(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const writers = 4
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Update(ctx, s, "counter", func(d *doc, _ bool) error {
				d.Count++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var d doc
	_, err := s.Get(ctx, "counter", &d)
	require.NoError(t, err)
	assert.Equal(t, writers, d.Count)
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, Append(ctx, s, "list", "a"))
	require.NoError(t, Append(ctx, s, "list", "b"))

	var list []string
	_, err := s.Get(ctx, "list", &list)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)
}

func TestSQLStore_Rebind(t *testing.T) {
	pg := NewSQLStore(nil, DriverPostgres)
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))

	lite := NewSQLStore(nil, DriverSQLite)
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}
