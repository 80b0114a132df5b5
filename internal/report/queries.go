// Package report issues the aggregation queries against the exported scene
// table and renders their results as summaries, charts and an animation.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyward-data/scenes.report/internal/warehouse"
)

// totalScenesSQL counts every exported scene.
const totalScenesSQL = `
SELECT
    COUNT(*) AS scenes
FROM
    {table}
`

// cumulativeScenesSQL counts scenes per spacecraft per acquisition year,
// then accumulates the yearly counts per spacecraft with a window sum.
const cumulativeScenesSQL = `
WITH year_count AS (
    SELECT
        SPACECRAFT_ID,
        EXTRACT(YEAR FROM PARSE_DATE('%Y-%m-%d', DATE_ACQUIRED)) AS year_acquired,
        COUNT(*) AS scenes
    FROM
        {table}
    GROUP BY
        SPACECRAFT_ID, year_acquired
)
SELECT
    SPACECRAFT_ID,
    year_acquired,
    SUM(scenes) OVER (
        PARTITION BY SPACECRAFT_ID
        ORDER BY year_acquired
        ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
    ) AS cumulative_count
FROM
    year_count
ORDER BY
    SPACECRAFT_ID, year_acquired
`

// clearScenesSQL counts clear scenes per WRS path/row cell per year.
// Clear excludes ocean scenes (CLOUD_COVER_LAND is -1 when a scene has no
// land), night scenes and cloudy scenes.
const clearScenesSQL = `
SELECT
    EXTRACT(YEAR FROM PARSE_DATE('%Y-%m-%d', DATE_ACQUIRED)) AS year,
    COUNT(*) AS num_scenes,
    WRS_PATH, WRS_ROW,
    ST_X(ST_CENTROID(ST_UNION_AGG(geo))) AS lon,
    ST_Y(ST_CENTROID(ST_UNION_AGG(geo))) AS lat
FROM
    {table}
WHERE
    CLOUD_COVER_LAND <> -1
    AND SUN_ELEVATION > 0
    AND CLOUD_COVER < 20
GROUP BY
    year, WRS_PATH, WRS_ROW
`

// cloudCoverSQL buckets scene cloud cover into 5% bins. Scenes without a
// cloud assessment carry a negative value and are excluded.
const cloudCoverSQL = `
SELECT
    CAST(FLOOR(CLOUD_COVER / 5) * 5 AS INT64) AS bucket,
    COUNT(*) AS scenes
FROM
    {table}
WHERE
    CLOUD_COVER >= 0
GROUP BY
    bucket
ORDER BY
    bucket
`

// bindTable substitutes the fully qualified table identifier into a query
// template.
func bindTable(tmpl, fullTableID string) string {
	return strings.ReplaceAll(tmpl, "{table}", "`"+fullTableID+"`")
}

// CumulativePoint is one spacecraft/year cumulative scene count.
type CumulativePoint struct {
	Spacecraft string
	Year       int
	Cumulative int64
}

// CellCount is the clear-scene count for one WRS path/row cell in one year,
// with the aggregated cell centroid.
type CellCount struct {
	Year   int
	Scenes int64
	Path   int64
	Row    int64
	Lon    float64
	Lat    float64
}

// CloudCoverBucket is the scene count for one 5% cloud-cover bin.
type CloudCoverBucket struct {
	Bucket int64 // lower bound of the bin, e.g. 15 for [15,20)
	Scenes int64
}

// TotalScenes returns the number of scenes in the table.
func TotalScenes(ctx context.Context, q warehouse.Querier, fullTableID string) (int64, error) {
	res, err := q.Query(ctx, bindTable(totalScenesSQL, fullTableID))
	if err != nil {
		return 0, err
	}
	if len(res.Rows) != 1 || len(res.Rows[0]) != 1 {
		return 0, fmt.Errorf("total scenes query returned %d rows, want 1", len(res.Rows))
	}
	return asInt64(res.Rows[0][0])
}

// CumulativeScenes returns the cumulative scene series, ordered by
// spacecraft then year.
func CumulativeScenes(ctx context.Context, q warehouse.Querier, fullTableID string) ([]CumulativePoint, error) {
	res, err := q.Query(ctx, bindTable(cumulativeScenesSQL, fullTableID))
	if err != nil {
		return nil, err
	}

	points := make([]CumulativePoint, 0, len(res.Rows))
	for i, row := range res.Rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("cumulative scenes row %d has %d columns, want 3", i, len(row))
		}
		craft, err := asString(row[0])
		if err != nil {
			return nil, fmt.Errorf("cumulative scenes row %d: %w", i, err)
		}
		year, err := asInt64(row[1])
		if err != nil {
			return nil, fmt.Errorf("cumulative scenes row %d: %w", i, err)
		}
		cum, err := asInt64(row[2])
		if err != nil {
			return nil, fmt.Errorf("cumulative scenes row %d: %w", i, err)
		}
		points = append(points, CumulativePoint{Spacecraft: craft, Year: int(year), Cumulative: cum})
	}
	return points, nil
}

// ClearScenes returns per-cell clear-scene counts for every year.
func ClearScenes(ctx context.Context, q warehouse.Querier, fullTableID string) ([]CellCount, error) {
	res, err := q.Query(ctx, bindTable(clearScenesSQL, fullTableID))
	if err != nil {
		return nil, err
	}

	cells := make([]CellCount, 0, len(res.Rows))
	for i, row := range res.Rows {
		if len(row) != 6 {
			return nil, fmt.Errorf("clear scenes row %d has %d columns, want 6", i, len(row))
		}
		var c CellCount
		var year int64
		var err error
		if year, err = asInt64(row[0]); err == nil {
			c.Year = int(year)
			if c.Scenes, err = asInt64(row[1]); err == nil {
				if c.Path, err = asInt64(row[2]); err == nil {
					if c.Row, err = asInt64(row[3]); err == nil {
						if c.Lon, err = asFloat64(row[4]); err == nil {
							c.Lat, err = asFloat64(row[5])
						}
					}
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("clear scenes row %d: %w", i, err)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// CloudCover returns the 5% cloud-cover histogram, ordered by bucket.
func CloudCover(ctx context.Context, q warehouse.Querier, fullTableID string) ([]CloudCoverBucket, error) {
	res, err := q.Query(ctx, bindTable(cloudCoverSQL, fullTableID))
	if err != nil {
		return nil, err
	}

	buckets := make([]CloudCoverBucket, 0, len(res.Rows))
	for i, row := range res.Rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("cloud cover row %d has %d columns, want 2", i, len(row))
		}
		bucket, err := asInt64(row[0])
		if err != nil {
			return nil, fmt.Errorf("cloud cover row %d: %w", i, err)
		}
		scenes, err := asInt64(row[1])
		if err != nil {
			return nil, fmt.Errorf("cloud cover row %d: %w", i, err)
		}
		buckets = append(buckets, CloudCoverBucket{Bucket: bucket, Scenes: scenes})
	}
	return buckets, nil
}

// asInt64 coerces driver and cache values to int64. The local result cache
// round-trips values through JSON, which widens integers to float64.
func asInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as int64", v)
	}
}

func asFloat64(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as float64", v)
	}
}

func asString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot interpret %T as string", v)
}
