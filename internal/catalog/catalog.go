// Package catalog describes the Landsat Collection 2 scene catalog: the
// missions and tiers the export covers and the per-scene metadata columns
// that end up in the warehouse table.
package catalog

import "reflect"

// Platform is a Landsat mission code as used in Collection 2 asset paths,
// e.g. LC08 for the Landsat 8 OLI/TIRS instrument.
type Platform string

const (
	LM01 Platform = "LM01" // Landsat 1 MSS
	LM02 Platform = "LM02" // Landsat 2 MSS
	LM03 Platform = "LM03" // Landsat 3 MSS
	LM04 Platform = "LM04" // Landsat 4 MSS
	LT04 Platform = "LT04" // Landsat 4 TM
	LT05 Platform = "LT05" // Landsat 5 TM
	LE07 Platform = "LE07" // Landsat 7 ETM+
	LC08 Platform = "LC08" // Landsat 8 OLI/TIRS
	LC09 Platform = "LC09" // Landsat 9 OLI-2/TIRS-2
)

// Tier is a Collection 2 processing tier.
type Tier string

const (
	T1 Tier = "T1" // Tier 1: highest radiometric and positional quality
	T2 Tier = "T2" // Tier 2: scenes that do not meet Tier 1 criteria
)

// Platforms returns every mission the export covers, in launch order.
func Platforms() []Platform {
	return []Platform{LM01, LM02, LM03, LM04, LT04, LT05, LE07, LC08, LC09}
}

// Tiers returns the exported processing tiers.
func Tiers() []Tier {
	return []Tier{T1, T2}
}

// SpacecraftID returns the SPACECRAFT_ID metadata value for a platform,
// e.g. "LANDSAT_8". LM04 and LT04 are different instruments on the same
// spacecraft and share an ID.
func (p Platform) SpacecraftID() string {
	switch p {
	case LM01:
		return "LANDSAT_1"
	case LM02:
		return "LANDSAT_2"
	case LM03:
		return "LANDSAT_3"
	case LM04, LT04:
		return "LANDSAT_4"
	case LT05:
		return "LANDSAT_5"
	case LE07:
		return "LANDSAT_7"
	case LC08:
		return "LANDSAT_8"
	case LC09:
		return "LANDSAT_9"
	}
	return ""
}

// SpacecraftIDs returns the deduplicated SPACECRAFT_ID values for all
// exported platforms, in launch order.
func SpacecraftIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range Platforms() {
		id := p.SpacecraftID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Scene is one catalog row in the warehouse table. The column set matches
// what the export job copies; the schema itself is owned by the warehouse,
// not by this code.
type Scene struct {
	SpacecraftID       string  `bigquery:"SPACECRAFT_ID"`
	DateAcquired       string  `bigquery:"DATE_ACQUIRED"` // YYYY-MM-DD
	WRSPath            int64   `bigquery:"WRS_PATH"`
	WRSRow             int64   `bigquery:"WRS_ROW"`
	CollectionCategory string  `bigquery:"COLLECTION_CATEGORY"`
	CloudCoverLand     float64 `bigquery:"CLOUD_COVER_LAND"` // -1 for scenes with no land
	CloudCover         float64 `bigquery:"CLOUD_COVER"`
	SunElevation       float64 `bigquery:"SUN_ELEVATION"` // negative for night scenes
}

// ExportedColumns lists the metadata columns the export job carries over,
// read from Scene's column tags in field order. The geography centroid
// column "geo" is computed by the export query and is not part of this
// list.
var ExportedColumns = sceneColumns()

func sceneColumns() []string {
	t := reflect.TypeOf(Scene{})
	cols := make([]string, t.NumField())
	for i := range cols {
		cols[i] = t.Field(i).Tag.Get("bigquery")
	}
	return cols
}
