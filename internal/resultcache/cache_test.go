package resultcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skyward-data/scenes.report/internal/warehouse"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "query_cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)

	entry := &Entry{
		SQL:            "SELECT COUNT(*) FROM `p.d.t`",
		Columns:        []string{"scenes"},
		Rows:           [][]interface{}{{float64(42)}},
		BytesProcessed: 1024,
	}
	require.NoError(t, c.Put(entry))
	if entry.RunID == "" {
		t.Error("Put() should assign a run ID")
	}

	got, ok, err := c.Get(Key(entry.SQL))
	require.NoError(t, err)
	require.True(t, ok, "Get() did not find stored entry")
	if diff := cmp.Diff(entry.Columns, got.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(entry.Rows, got.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got.BytesProcessed != 1024 {
		t.Errorf("BytesProcessed = %d, want 1024", got.BytesProcessed)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Get(Key("SELECT 1"))
	require.NoError(t, err)
	if ok {
		t.Error("Get() reported a hit for an empty cache")
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := openTestCache(t)

	sql := "SELECT COUNT(*) FROM `p.d.t`"
	require.NoError(t, c.Put(&Entry{SQL: sql, Columns: []string{"scenes"}, Rows: [][]interface{}{{float64(1)}}}))
	require.NoError(t, c.Put(&Entry{SQL: sql, Columns: []string{"scenes"}, Rows: [][]interface{}{{float64(2)}}}))

	got, ok, err := c.Get(Key(sql))
	require.NoError(t, err)
	require.True(t, ok)
	if got.Rows[0][0] != float64(2) {
		t.Errorf("Get() returned stale value %v, want 2", got.Rows[0][0])
	}
}

func TestCachePurge(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put(&Entry{SQL: "SELECT 1", Columns: []string{"x"}, Rows: nil}))
	require.NoError(t, c.Purge())
	if _, ok, _ := c.Get(Key("SELECT 1")); ok {
		t.Error("entry survived Purge()")
	}
}

func TestKeyDeterministic(t *testing.T) {
	if Key("SELECT 1") != Key("SELECT 1") {
		t.Error("Key() is not deterministic")
	}
	if Key("SELECT 1") == Key("SELECT 2") {
		t.Error("Key() collides for different queries")
	}
}

type fakeLive struct {
	result  *warehouse.Result
	err     error
	queries int
}

func (f *fakeLive) Query(ctx context.Context, sql string) (*warehouse.Result, error) {
	f.queries++
	return f.result, f.err
}

type fixedEstimator struct{ bytes int64 }

func (f *fixedEstimator) EstimateBytes(ctx context.Context, sql string) (int64, error) {
	return f.bytes, nil
}

func TestQuerierCachesLiveResults(t *testing.T) {
	c := openTestCache(t)
	live := &fakeLive{result: &warehouse.Result{
		Columns:        []string{"scenes"},
		Rows:           [][]interface{}{{int64(42)}},
		BytesProcessed: 2048,
	}}
	q := &Querier{Cache: c, Live: live}

	ctx := context.Background()
	first, err := q.Query(ctx, "SELECT COUNT(*)")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first query should not be a cache hit")
	}

	second, err := q.Query(ctx, "SELECT COUNT(*)")
	if err != nil {
		t.Fatalf("second Query() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second query should be a cache hit")
	}
	if live.queries != 1 {
		t.Errorf("live querier ran %d times, want 1", live.queries)
	}
	if second.BytesProcessed != 2048 {
		t.Errorf("cached BytesProcessed = %d, want 2048", second.BytesProcessed)
	}
}

func TestQuerierHonoursGuard(t *testing.T) {
	c := openTestCache(t)
	live := &fakeLive{result: &warehouse.Result{Columns: []string{"x"}}}
	q := &Querier{
		Cache: c,
		Live:  live,
		Guard: &warehouse.Guard{
			Estimator:      &fixedEstimator{bytes: 1 << 40},
			PricePerTiBUSD: 6.25,
			WarnUSD:        0.001,
			Confirm:        func(string) bool { return false },
		},
	}

	_, err := q.Query(context.Background(), "SELECT *")
	if !errors.Is(err, warehouse.ErrDeclined) {
		t.Errorf("Query() error = %v, want ErrDeclined", err)
	}
	if live.queries != 0 {
		t.Errorf("declined query still ran %d times", live.queries)
	}
}
