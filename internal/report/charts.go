package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// prismPalette is a qualitative palette for per-spacecraft series, dark to
// light so the oldest missions sit at the bottom of the stack.
var prismPalette = []string{
	"#94346E", "#CC503E", "#E17C05", "#EDAD08", "#73AF48",
	"#0F8554", "#38A6A5", "#1D6996", "#5F4690",
}

// RenderCumulative writes a stacked bar chart of cumulative scenes per
// spacecraft per year. points should already be forward-filled so every
// spacecraft has a value for every year.
func RenderCumulative(points []CumulativePoint, w io.Writer) error {
	years := Years(points)
	crafts := Spacecraft(points)
	if len(years) == 0 {
		return fmt.Errorf("no cumulative scene counts to chart")
	}

	byCraft := make(map[string]map[int]int64, len(crafts))
	for _, p := range points {
		if byCraft[p.Spacecraft] == nil {
			byCraft[p.Spacecraft] = make(map[int]int64, len(years))
		}
		byCraft[p.Spacecraft][p.Year] = p.Cumulative
	}

	xAxis := make([]string, len(years))
	for i, y := range years {
		xAxis[i] = strconv.Itoa(y)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Cumulative Landsat Scenes",
			Width:     "900px",
			Height:    "540px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Cumulative Landsat Scenes",
			Subtitle: fmt.Sprintf("%d spacecraft, %d-%d", len(crafts), years[0], years[len(years)-1]),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithColorsOpts(opts.Colors(prismPalette)),
	)

	bar.SetXAxis(xAxis)
	for _, craft := range crafts {
		data := make([]opts.BarData, len(years))
		for i, y := range years {
			data[i] = opts.BarData{Value: byCraft[craft][y]}
		}
		bar.AddSeries(craft, data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	return bar.Render(w)
}

// RenderCloudCoverHistogram writes a bar chart of the 5% cloud-cover
// histogram with the weighted summary in the subtitle.
func RenderCloudCoverHistogram(buckets []CloudCoverBucket, summary CloudCoverSummary, w io.Writer) error {
	xAxis := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		xAxis[i] = fmt.Sprintf("%d-%d%%", b.Bucket, b.Bucket+5)
		data[i] = opts.BarData{Value: b.Scenes}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Scene Cloud Cover",
			Width:     "900px",
			Height:    "540px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Scene Cloud Cover",
			Subtitle: fmt.Sprintf("mean %.1f%%, median %.1f%%, p90 %.1f%% over %d scenes",
				summary.Mean, summary.Median, summary.P90, summary.Scenes),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(xAxis)
	bar.AddSeries("scenes", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	return bar.Render(w)
}
