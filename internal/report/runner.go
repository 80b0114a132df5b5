package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/skyward-data/scenes.report/internal/config"
	"github.com/skyward-data/scenes.report/internal/monitoring"
	"github.com/skyward-data/scenes.report/internal/warehouse"
)

// Output filenames under Settings.OutputDir.
const (
	CumulativeChartFile = "cumulative_scenes.html"
	CloudCoverChartFile = "cloud_cover.html"
	ClearScenesGIFFile  = "clear_scenes.gif"
)

// Runner drives the full report: every query in order, results rendered to
// the output directory.
type Runner struct {
	cfg    *config.Settings
	q      warehouse.Querier
	tables warehouse.TableChecker
}

// NewRunner creates a Runner. tables may be nil to skip the
// destination-table existence check (used by tests running against fakes).
func NewRunner(cfg *config.Settings, q warehouse.Querier, tables warehouse.TableChecker) *Runner {
	return &Runner{cfg: cfg, q: q, tables: tables}
}

// Run executes the report. It refuses to query a table the export has not
// created yet and otherwise propagates SDK errors unmodified.
func (r *Runner) Run(ctx context.Context) error {
	if r.tables != nil {
		exists, err := r.tables.TableExists(ctx, r.cfg.Dataset, r.cfg.Table)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("table %s does not exist; run the export command first", r.cfg.FullTableID())
		}
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	table := r.cfg.FullTableID()

	monitoring.Logf("Querying total scenes...")
	total, err := TotalScenes(ctx, r.q, table)
	if err != nil {
		return err
	}
	monitoring.Logf("Total scenes: %d", total)

	monitoring.Logf("Querying cumulative scenes by spacecraft...")
	points, err := CumulativeScenes(ctx, r.q, table)
	if err != nil {
		return err
	}
	filled := ForwardFill(points)
	if err := r.writeOutput(CumulativeChartFile, func(w io.Writer) error {
		return RenderCumulative(filled, w)
	}); err != nil {
		return err
	}

	monitoring.Logf("Querying cloud cover distribution...")
	buckets, err := CloudCover(ctx, r.q, table)
	if err != nil {
		return err
	}
	summary := SummarizeCloudCover(buckets)
	monitoring.Logf("Cloud cover: mean %.1f%%, median %.1f%%, p90 %.1f%% over %d scenes",
		summary.Mean, summary.Median, summary.P90, summary.Scenes)
	if err := r.writeOutput(CloudCoverChartFile, func(w io.Writer) error {
		return RenderCloudCoverHistogram(buckets, summary, w)
	}); err != nil {
		return err
	}

	monitoring.Logf("Querying clear scenes by path and row...")
	cells, err := ClearScenes(ctx, r.q, table)
	if err != nil {
		return err
	}
	return r.writeOutput(ClearScenesGIFFile, func(w io.Writer) error {
		return RenderClearScenesGIF(cells, w)
	})
}

// writeOutput renders into a file under the output directory.
func (r *Runner) writeOutput(name string, render func(io.Writer) error) error {
	dst := filepath.Join(r.cfg.OutputDir, name)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	monitoring.Logf("Wrote %s", dst)
	return nil
}
