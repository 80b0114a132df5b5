// Package config loads the warehouse settings file shared by the export and
// report commands.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSettingsPath is the path to the canonical settings file. Both
// commands read the same file so they always address the same warehouse
// table.
const DefaultSettingsPath = "config/settings.json"

// Pricing and output defaults applied by ApplyDefaults.
const (
	// DefaultPricePerTiBUSD is the on-demand analysis price used for dry-run
	// cost estimates.
	DefaultPricePerTiBUSD = 6.25

	// DefaultCostWarnUSD is the estimated-cost threshold above which the
	// report command asks for confirmation before running a query.
	DefaultCostWarnUSD = 0.001

	DefaultOutputDir = "output"
	DefaultCachePath = "output/query_cache.db"
)

// Settings holds the identifiers and knobs for the export and report
// commands. Only CloudProject, Dataset and Table are required; everything
// else has a default.
type Settings struct {
	// CloudProject is the cloud project that owns the destination dataset
	// and is billed for queries.
	CloudProject string `json:"cloud_project"`

	// Dataset and Table identify the warehouse table the scene catalog is
	// exported into and queried from.
	Dataset string `json:"dataset"`
	Table   string `json:"table"`

	// CatalogTable is the fully qualified source catalog table the export
	// job copies from (project.dataset.table). Required by the export
	// command only.
	CatalogTable string `json:"catalog_table,omitempty"`

	// Location is the job location passed to the warehouse, e.g. "US".
	// Empty lets the service pick.
	Location string `json:"location,omitempty"`

	// PricePerTiBUSD and CostWarnUSD control the dry-run cost guard.
	PricePerTiBUSD float64 `json:"price_per_tib_usd,omitempty"`
	CostWarnUSD    float64 `json:"cost_warn_usd,omitempty"`

	// OutputDir is where the report command writes charts and the
	// animation. CachePath is the local result-cache database.
	OutputDir string `json:"output_dir,omitempty"`
	CachePath string `json:"cache_path,omitempty"`
}

// Load reads a Settings from a JSON file and applies defaults. The file is
// validated to have a .json extension and to be under the max file size.
func Load(path string) (*Settings, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("settings file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("settings file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	s.ApplyDefaults()
	return &s, nil
}

// ApplyDefaults fills in zero-valued optional fields.
func (s *Settings) ApplyDefaults() {
	if s.PricePerTiBUSD == 0 {
		s.PricePerTiBUSD = DefaultPricePerTiBUSD
	}
	if s.CostWarnUSD == 0 {
		s.CostWarnUSD = DefaultCostWarnUSD
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}
	if s.CachePath == "" {
		s.CachePath = DefaultCachePath
	}
}

// Validate checks the identifiers every command needs. The export and
// report commands layer their own extra checks on top.
func (s *Settings) Validate() error {
	if s.CloudProject == "" {
		return fmt.Errorf("cloud_project is required")
	}
	if s.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if s.Table == "" {
		return fmt.Errorf("table is required")
	}
	if s.PricePerTiBUSD < 0 {
		return fmt.Errorf("price_per_tib_usd must not be negative")
	}
	if s.CostWarnUSD < 0 {
		return fmt.Errorf("cost_warn_usd must not be negative")
	}
	return nil
}

// ValidateForExport additionally requires the source catalog table.
func (s *Settings) ValidateForExport() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.CatalogTable == "" {
		return fmt.Errorf("catalog_table is required for the export command")
	}
	return nil
}

// FullTableID returns the fully qualified destination table identifier,
// project.dataset.table.
func (s *Settings) FullTableID() string {
	return fmt.Sprintf("%s.%s.%s", s.CloudProject, s.Dataset, s.Table)
}
