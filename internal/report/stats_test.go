package report

import (
	"math"
	"testing"
)

func TestSummarizeCloudCover(t *testing.T) {
	// Equal weight in the [0,5) and [95,100) bins: mean at the midpoint
	// between the two bin centres.
	buckets := []CloudCoverBucket{
		{Bucket: 0, Scenes: 10},
		{Bucket: 95, Scenes: 10},
	}

	s := SummarizeCloudCover(buckets)
	if s.Scenes != 20 {
		t.Errorf("Scenes = %d, want 20", s.Scenes)
	}
	if math.Abs(s.Mean-50) > 1e-9 {
		t.Errorf("Mean = %v, want 50", s.Mean)
	}
	// Two clusters 95 points apart: the spread should be close to the
	// half-distance of 47.5.
	if s.StdDev < 40 || s.StdDev > 55 {
		t.Errorf("StdDev = %v, want about 47.5", s.StdDev)
	}
}

func TestSummarizeCloudCoverSkewed(t *testing.T) {
	// Nearly all scenes in the clearest bin.
	buckets := []CloudCoverBucket{
		{Bucket: 0, Scenes: 1000},
		{Bucket: 50, Scenes: 10},
	}

	s := SummarizeCloudCover(buckets)
	if s.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", s.Median)
	}
	if s.P90 != 2.5 {
		t.Errorf("P90 = %v, want 2.5", s.P90)
	}
	if s.Mean <= 2.5 || s.Mean >= 5 {
		t.Errorf("Mean = %v, want slightly above 2.5", s.Mean)
	}
}

func TestSummarizeCloudCoverEmpty(t *testing.T) {
	s := SummarizeCloudCover(nil)
	if s.Scenes != 0 || s.Mean != 0 {
		t.Errorf("SummarizeCloudCover(nil) = %+v, want zero value", s)
	}
}
