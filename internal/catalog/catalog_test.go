package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlatformsAndTiers(t *testing.T) {
	if got := len(Platforms()); got != 9 {
		t.Errorf("expected 9 platforms, got %d", got)
	}
	if got := len(Tiers()); got != 2 {
		t.Errorf("expected 2 tiers, got %d", got)
	}
	for _, p := range Platforms() {
		if p.SpacecraftID() == "" {
			t.Errorf("platform %s has no spacecraft ID", p)
		}
	}
}

func TestSpacecraftIDs(t *testing.T) {
	want := []string{
		"LANDSAT_1", "LANDSAT_2", "LANDSAT_3", "LANDSAT_4",
		"LANDSAT_5", "LANDSAT_7", "LANDSAT_8", "LANDSAT_9",
	}
	if diff := cmp.Diff(want, SpacecraftIDs()); diff != "" {
		t.Errorf("SpacecraftIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportedColumnsMatchScene(t *testing.T) {
	want := []string{
		"SPACECRAFT_ID",
		"DATE_ACQUIRED",
		"WRS_PATH",
		"WRS_ROW",
		"COLLECTION_CATEGORY",
		"CLOUD_COVER_LAND",
		"CLOUD_COVER",
		"SUN_ELEVATION",
	}
	if diff := cmp.Diff(want, ExportedColumns); diff != "" {
		t.Errorf("ExportedColumns mismatch (-want +got):\n%s", diff)
	}
}
