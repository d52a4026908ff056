package summary

// Package summary reduces aligned records into per-value descriptive
// statistics and per-identity mean-delta annotations. Percentiles use
// linear interpolation between order statistics.

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/transita/ptdelta/core/align"
)

// Stats holds the descriptive statistics of one perturbation value's deltas.
// A value with no aligned records keeps Count 0 and every statistic 0.0 so
// the summary always carries one uniformly shaped row per value.
type Stats struct {
	Value  int     `json:"value"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes the delta statistics for one perturbation value.
func Describe(value int, records []align.Record) Stats {
	s := Stats{Value: value, Count: len(records)}
	if len(records) == 0 {
		return s
	}
	deltas := make([]float64, len(records))
	for i, r := range records {
		deltas[i] = r.Delta
	}
	sort.Float64s(deltas)
	s.Mean = stat.Mean(deltas, nil)
	s.Median = quantile(0.5, deltas)
	s.P10 = quantile(0.1, deltas)
	s.P90 = quantile(0.9, deltas)
	s.Min = deltas[0]
	s.Max = deltas[len(deltas)-1]
	return s
}

// quantile returns the q-th quantile of the sorted sample, interpolating
// linearly between the order statistics at rank h = (n-1)q. gonum's
// stat.Quantile cumulant kinds define quantiles over the empirical CDF,
// which disagrees with this rank-based interpolation for small samples.
func quantile(q float64, sorted []float64) float64 {
	h := q * float64(len(sorted)-1)
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// IdentityMeans returns the arithmetic mean delta per identity over all
// records of one value, for broadcasting back onto the detail rows.
func IdentityMeans(records []align.Record) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.ID] += r.Delta
		counts[r.ID]++
	}
	means := make(map[string]float64, len(sums))
	for id, sum := range sums {
		means[id] = sum / float64(counts[id])
	}
	return means
}
