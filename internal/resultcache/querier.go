package resultcache

import (
	"context"

	"github.com/skyward-data/scenes.report/internal/monitoring"
	"github.com/skyward-data/scenes.report/internal/warehouse"
)

// Querier layers the cache and the cost guard over a live warehouse
// querier: cache lookup first, then the dry-run cost check, then the
// billable query, whose result is stored before being returned.
type Querier struct {
	Cache *Cache
	Live  warehouse.Querier

	// Guard is optional; nil runs queries without a cost check.
	Guard *warehouse.Guard
}

// Query implements warehouse.Querier.
func (q *Querier) Query(ctx context.Context, sql string) (*warehouse.Result, error) {
	key := Key(sql)
	if entry, ok, err := q.Cache.Get(key); err != nil {
		return nil, err
	} else if ok {
		monitoring.Logf("Using cached result from %s (run %s)", entry.CreatedAt.Format("2006-01-02 15:04"), entry.RunID)
		return &warehouse.Result{
			Columns:        entry.Columns,
			Rows:           entry.Rows,
			BytesProcessed: entry.BytesProcessed,
			CacheHit:       true,
		}, nil
	}

	if q.Guard != nil {
		if _, err := q.Guard.Check(ctx, sql); err != nil {
			return nil, err
		}
	}

	res, err := q.Live.Query(ctx, sql)
	if err != nil {
		return nil, err
	}

	if err := q.Cache.Put(&Entry{
		Key:            key,
		SQL:            sql,
		Columns:        res.Columns,
		Rows:           res.Rows,
		BytesProcessed: res.BytesProcessed,
	}); err != nil {
		return nil, err
	}
	return res, nil
}
