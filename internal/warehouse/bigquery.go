package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

// Client implements the warehouse interfaces on the BigQuery SDK.
// Credentials come from the ambient application-default chain; there is no
// credential handling here.
type Client struct {
	bq       *bigquery.Client
	location string
}

// NewClient opens a BigQuery client for the given project. location may be
// empty to let the service pick the job location.
func NewClient(ctx context.Context, projectID, location string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}
	return &Client{bq: bq, location: location}, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.bq.Close()
}

func (c *Client) newQuery(sql string) *bigquery.Query {
	q := c.bq.Query(sql)
	q.Location = c.location
	return q
}

// EstimateBytes dry-runs the query and returns the bytes it would process.
// The query cache is disabled so the estimate matches a cold run.
func (c *Client) EstimateBytes(ctx context.Context, sql string) (int64, error) {
	q := c.newQuery(sql)
	q.DryRun = true
	q.DisableQueryCache = true

	job, err := q.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("dry run failed: %w", err)
	}

	status := job.LastStatus()
	if status == nil || status.Statistics == nil {
		return 0, fmt.Errorf("dry run returned no statistics")
	}
	return status.Statistics.TotalBytesProcessed, nil
}

// Query runs sql and materializes the full result set.
func (c *Client) Query(ctx context.Context, sql string) (*Result, error) {
	q := c.newQuery(sql)

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start query: %w", err)
	}

	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read query results: %w", err)
	}

	var rows [][]interface{}
	for {
		var vals []bigquery.Value
		err := it.Next(&vals)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate query results: %w", err)
		}
		row := make([]interface{}, len(vals))
		for i, v := range vals {
			row[i] = v
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, len(it.Schema))
	for _, field := range it.Schema {
		columns = append(columns, field.Name)
	}

	result := &Result{Columns: columns, Rows: rows}

	// Statistics are best-effort: a failed refresh does not invalidate the
	// rows already fetched.
	if status, err := job.Status(ctx); err == nil && status.Statistics != nil {
		result.BytesProcessed = status.Statistics.TotalBytesProcessed
	}

	return result, nil
}

// RunExport submits a query job that writes its result into
// dataset.table, truncating any previous contents, and returns the job
// handle without waiting.
func (c *Client) RunExport(ctx context.Context, sql, dataset, table string) (Job, error) {
	q := c.newQuery(sql)
	q.Dst = c.bq.Dataset(dataset).Table(table)
	q.WriteDisposition = bigquery.WriteTruncate
	q.CreateDisposition = bigquery.CreateIfNeeded

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start export job: %w", err)
	}
	return &bqJob{job: job}, nil
}

// TableExists probes table metadata and maps a 404 to (false, nil).
func (c *Client) TableExists(ctx context.Context, dataset, table string) (bool, error) {
	_, err := c.bq.Dataset(dataset).Table(table).Metadata(ctx)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check table %s.%s: %w", dataset, table, err)
	}
	return true, nil
}

type bqJob struct {
	job *bigquery.Job
}

func (j *bqJob) ID() string {
	return j.job.ID()
}

func (j *bqJob) Wait(ctx context.Context) error {
	status, err := j.job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for job %s: %w", j.job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job %s failed: %w", j.job.ID(), err)
	}
	return nil
}
