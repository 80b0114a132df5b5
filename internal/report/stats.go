package report

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CloudCoverSummary describes the cloud-cover distribution across all
// assessed scenes, computed from the 5% histogram using bin midpoints.
type CloudCoverSummary struct {
	Scenes int64
	Mean   float64
	StdDev float64
	Median float64
	P90    float64
}

// SummarizeCloudCover computes weighted summary statistics from the
// cloud-cover histogram. Buckets must be ordered by bucket lower bound, as
// the query returns them.
func SummarizeCloudCover(buckets []CloudCoverBucket) CloudCoverSummary {
	if len(buckets) == 0 {
		return CloudCoverSummary{}
	}

	xs := make([]float64, len(buckets))
	ws := make([]float64, len(buckets))
	var total int64
	for i, b := range buckets {
		xs[i] = float64(b.Bucket) + 2.5 // bin midpoint
		ws[i] = float64(b.Scenes)
		total += b.Scenes
	}

	return CloudCoverSummary{
		Scenes: total,
		Mean:   stat.Mean(xs, ws),
		StdDev: math.Sqrt(stat.Variance(xs, ws)),
		Median: stat.Quantile(0.5, stat.Empirical, xs, ws),
		P90:    stat.Quantile(0.9, stat.Empirical, xs, ws),
	}
}
