package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// exerciseAdapter runs the behaviour every Adapter must share.
func exerciseAdapter(t *testing.T, a Adapter) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := a.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, a.Set(ctx, "k", []byte(`{"a":1}`)))
	v, ok, err := a.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(v))

	require.NoError(t, a.Set(ctx, "k", []byte(`[1,2,3]`)))
	v, ok, err = a.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[1,2,3]`, string(v))

	require.NoError(t, a.Delete(ctx, "k"))
	_, ok, err = a.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, a.Delete(ctx, "k"))
}

func TestMemoryAdapter(t *testing.T) {
	exerciseAdapter(t, NewMemory())
}

func TestMemoryAdapter_CopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte(`"x"`)
	require.NoError(t, m.Set(context.Background(), "k", buf))
	buf[1] = 'y'
	v, _, _ := m.Get(context.Background(), "k")
	assert.Equal(t, `"x"`, string(v))
}

func TestSQLiteAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	g, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	exerciseAdapter(t, g)
}

func TestSQLiteAdapter_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	g, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, g.Set(context.Background(), "jobTrackerStatus", []byte(`{"3":"Applied"}`)))
	require.NoError(t, g.Close())

	g, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	v, ok, err := g.Get(context.Background(), "jobTrackerStatus")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"3":"Applied"}`, string(v))
}

func TestRedisAdapter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := NewRedis(rdb, "jobtracker:")
	exerciseAdapter(t, a)

	require.NoError(t, a.Set(context.Background(), "prefs", []byte(`{}`)))
	assert.True(t, mr.Exists("jobtracker:prefs"))
}

func TestPostgresAdapter(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	a, err := NewPostgres(ctx, pool)
	require.NoError(t, err)
	_, _ = pool.Exec(ctx, `DELETE FROM kv_store WHERE key IN ('k', 'missing')`)

	exerciseAdapter(t, a)
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	log := zap.NewNop()

	var dst map[string]int
	ok, err := LoadJSON(ctx, m, log, "absent", &dst)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "bad", []byte("{not json")))
	ok, err = LoadJSON(ctx, m, log, "bad", &dst)
	require.NoError(t, err, "unparseable values are recoverable")
	assert.False(t, ok)

	require.NoError(t, SaveJSON(ctx, m, "good", map[string]int{"a": 1}))
	ok, err = LoadJSON(ctx, m, log, "good", &dst)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1}, dst)
}

func TestSaveJSON_EncodeError(t *testing.T) {
	err := SaveJSON(context.Background(), NewMemory(), "k", make(chan int))
	var ue *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &ue)
}
