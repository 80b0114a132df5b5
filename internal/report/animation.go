package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Color scale for clear-scene counts, matching a sequential red ramp.
// Counts are clamped to [rampMin, rampMax] before interpolation.
const (
	rampMin = 1.0
	rampMax = 50.0
)

// Frame geometry in points. The world map is wider than tall.
const (
	frameWidth  = 800
	frameHeight = 450
)

// frameDelay is the per-frame delay in hundredths of a second (2.5 fps).
const frameDelay = 40

// rampColor interpolates a clamped count along a white-to-dark-red ramp.
func rampColor(v float64) color.Color {
	if v < rampMin {
		v = rampMin
	}
	if v > rampMax {
		v = rampMax
	}
	t := (v - rampMin) / (rampMax - rampMin)

	// Endpoints of the ramp: near-white to dark red.
	const (
		r0, g0, b0 = 255, 245, 240
		r1, g1, b1 = 103, 0, 13
	)
	lerp := func(a, b float64) uint8 { return uint8(a + (b-a)*t) }
	return color.RGBA{R: lerp(r0, r1), G: lerp(g0, g1), B: lerp(b0, b1), A: 255}
}

// rampPalette builds the GIF palette: the red ramp plus white and black
// for background and title text.
func rampPalette() color.Palette {
	pal := make(color.Palette, 0, 66)
	pal = append(pal, color.White, color.Black)
	const steps = 64
	for i := 0; i < steps; i++ {
		v := rampMin + (rampMax-rampMin)*float64(i)/float64(steps-1)
		pal = append(pal, rampColor(v))
	}
	return pal
}

// CellYears returns the sorted distinct years present in the cell counts.
func CellYears(cells []CellCount) []int {
	seen := make(map[int]bool)
	var years []int
	for _, c := range cells {
		if !seen[c.Year] {
			seen[c.Year] = true
			years = append(years, c.Year)
		}
	}
	sort.Ints(years)
	return years
}

// RenderClearScenesGIF draws one world-map frame per year, colouring each
// WRS path/row cell centroid by its clear-scene count, and writes the
// frames as an animated GIF.
func RenderClearScenesGIF(cells []CellCount, w io.Writer) error {
	years := CellYears(cells)
	if len(years) == 0 {
		return fmt.Errorf("no clear-scene cells to animate")
	}

	byYear := make(map[int][]CellCount)
	for _, c := range cells {
		byYear[c.Year] = append(byYear[c.Year], c)
	}

	pal := rampPalette()
	anim := &gif.GIF{}
	for _, year := range years {
		frame, err := renderYearFrame(year, byYear[year])
		if err != nil {
			return fmt.Errorf("year %d: %w", year, err)
		}

		paletted := image.NewPaletted(frame.Bounds(), pal)
		draw.Draw(paletted, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, frameDelay)
	}

	return gif.EncodeAll(w, anim)
}

// renderYearFrame draws the scatter frame for one year. Cells are drawn in
// ascending count order so overlapping low counts do not mask hot cells.
func renderYearFrame(year int, cells []CellCount) (image.Image, error) {
	sorted := make([]CellCount, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Scenes < sorted[j].Scenes })

	pts := make(plotter.XYs, len(sorted))
	for i, c := range sorted {
		pts[i] = plotter.XY{X: c.Lon, Y: c.Lat}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Clear Landsat Scenes, %d", year)
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -60, 86
	p.HideAxes()

	if len(pts) > 0 {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyleFunc = func(i int) vgdraw.GlyphStyle {
			return vgdraw.GlyphStyle{
				Color:  rampColor(float64(sorted[i].Scenes)),
				Radius: vg.Points(1.5),
				Shape:  vgdraw.CircleGlyph{},
			}
		}
		p.Add(scatter)
	}

	c := vgimg.New(vg.Points(frameWidth), vg.Points(frameHeight))
	p.Draw(vgdraw.New(c))
	return c.Image(), nil
}
