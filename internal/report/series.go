package report

import "sort"

// ForwardFill expands the cumulative series to cover every year from the
// earliest to the latest acquisition for every spacecraft. Years before a
// spacecraft's first scene are zero; gaps and years after its last scene
// carry the last cumulative value forward, so retired missions keep their
// final totals in the chart.
func ForwardFill(points []CumulativePoint) []CumulativePoint {
	if len(points) == 0 {
		return nil
	}

	minYear, maxYear := points[0].Year, points[0].Year
	byCraft := make(map[string]map[int]int64)
	for _, p := range points {
		if p.Year < minYear {
			minYear = p.Year
		}
		if p.Year > maxYear {
			maxYear = p.Year
		}
		if byCraft[p.Spacecraft] == nil {
			byCraft[p.Spacecraft] = make(map[int]int64)
		}
		byCraft[p.Spacecraft][p.Year] = p.Cumulative
	}

	crafts := make([]string, 0, len(byCraft))
	for craft := range byCraft {
		crafts = append(crafts, craft)
	}
	sort.Strings(crafts)

	filled := make([]CumulativePoint, 0, len(crafts)*(maxYear-minYear+1))
	for _, craft := range crafts {
		years := byCraft[craft]
		var last int64
		for year := minYear; year <= maxYear; year++ {
			if cum, ok := years[year]; ok {
				last = cum
			}
			filled = append(filled, CumulativePoint{Spacecraft: craft, Year: year, Cumulative: last})
		}
	}
	return filled
}

// Years returns the sorted distinct years in a filled series.
func Years(points []CumulativePoint) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range points {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Spacecraft returns the sorted distinct spacecraft in a series.
func Spacecraft(points []CumulativePoint) []string {
	seen := make(map[string]bool)
	var crafts []string
	for _, p := range points {
		if !seen[p.Spacecraft] {
			seen[p.Spacecraft] = true
			crafts = append(crafts, p.Spacecraft)
		}
	}
	sort.Strings(crafts)
	return crafts
}
