// Package warehouse wraps the BigQuery SDK behind small interfaces so the
// export and report flows can be exercised with fakes. All failure
// semantics are the SDK's own; nothing here retries.
package warehouse

import "context"

// Result is a fully materialized query result set. Row values keep the
// types the driver produced (int64, float64, string, ...).
type Result struct {
	Columns        []string
	Rows           [][]interface{}
	BytesProcessed int64

	// CacheHit is set by the local result cache, never by the live client.
	CacheHit bool
}

// Querier executes a read-only query and materializes the result.
type Querier interface {
	Query(ctx context.Context, sql string) (*Result, error)
}

// Estimator performs a dry run and reports the bytes the query would
// process. Used by the cost guard before anything billable runs.
type Estimator interface {
	EstimateBytes(ctx context.Context, sql string) (int64, error)
}

// Job is a handle to a remote warehouse job.
type Job interface {
	// ID returns the remote job identifier.
	ID() string

	// Wait blocks until the remote job reports completion and returns the
	// job's terminal error state.
	Wait(ctx context.Context) error
}

// ExportRunner submits a query job whose results are written into the
// given destination table, replacing its contents.
type ExportRunner interface {
	RunExport(ctx context.Context, sql, dataset, table string) (Job, error)
}

// TableChecker reports whether a destination table exists. The report
// command uses it to refuse to run before the export has populated the
// table.
type TableChecker interface {
	TableExists(ctx context.Context, dataset, table string) (bool, error)
}

// Compile-time interface checks.
var (
	_ Querier      = (*Client)(nil)
	_ Estimator    = (*Client)(nil)
	_ ExportRunner = (*Client)(nil)
	_ TableChecker = (*Client)(nil)
)
