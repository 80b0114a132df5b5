// Package exporter triggers the managed export that copies the Landsat
// scene catalog into the warehouse table. The copy itself runs entirely
// inside the warehouse; this code only builds the job and waits for it.
package exporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyward-data/scenes.report/internal/catalog"
	"github.com/skyward-data/scenes.report/internal/config"
	"github.com/skyward-data/scenes.report/internal/monitoring"
	"github.com/skyward-data/scenes.report/internal/warehouse"
)

// Trigger submits the export job for the configured destination table.
type Trigger struct {
	cfg *config.Settings
	wh  warehouse.ExportRunner
}

// New creates a Trigger.
func New(cfg *config.Settings, wh warehouse.ExportRunner) *Trigger {
	return &Trigger{cfg: cfg, wh: wh}
}

// BuildSQL returns the export query: the exported metadata columns plus
// the scene centroid, for every covered mission and tier, read from the
// source catalog table.
func BuildSQL(catalogTable string) string {
	var spacecraft []string
	for _, id := range catalog.SpacecraftIDs() {
		spacecraft = append(spacecraft, fmt.Sprintf("'%s'", id))
	}
	var tiers []string
	for _, t := range catalog.Tiers() {
		tiers = append(tiers, fmt.Sprintf("'%s'", t))
	}

	var b strings.Builder
	b.WriteString("SELECT\n")
	for _, col := range catalog.ExportedColumns {
		fmt.Fprintf(&b, "    %s,\n", col)
	}
	b.WriteString("    ST_CENTROID(geo) AS geo\n")
	fmt.Fprintf(&b, "FROM\n    `%s`\n", catalogTable)
	fmt.Fprintf(&b, "WHERE\n    SPACECRAFT_ID IN (%s)\n", strings.Join(spacecraft, ", "))
	fmt.Fprintf(&b, "    AND COLLECTION_CATEGORY IN (%s)\n", strings.Join(tiers, ", "))
	return b.String()
}

// ConsoleURL returns the cloud console page where the export job can be
// observed for the given project.
func ConsoleURL(project string) string {
	return "https://console.cloud.google.com/bigquery?project=" + project
}

// Run submits the export and, when wait is set, blocks until the remote
// job reports completion. SDK errors propagate unmodified.
func (t *Trigger) Run(ctx context.Context, wait bool) error {
	sql := BuildSQL(t.cfg.CatalogTable)

	job, err := t.wh.RunExport(ctx, sql, t.cfg.Dataset, t.cfg.Table)
	if err != nil {
		return err
	}

	monitoring.Logf("Export job %s started for %s. Check the status at %s",
		job.ID(), t.cfg.FullTableID(), ConsoleURL(t.cfg.CloudProject))

	if !wait {
		return nil
	}

	if err := job.Wait(ctx); err != nil {
		return err
	}
	monitoring.Logf("Export job %s completed", job.ID())
	return nil
}
