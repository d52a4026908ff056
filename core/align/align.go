package align

// Package align pairs baseline and perturbed measurement sets by identity
// and occurrence rank and computes signed deltas. It carries no error
// handling: unavailable replicates arrive as empty sets and simply produce
// no records.

import (
	"github.com/transita/ptdelta/core/measure"
)

// Record is one aligned (identity, occurrence) pair with its delta.
type Record struct {
	Value      int
	Sim        int
	ID         string
	Occurrence int
	Baseline   float64
	Perturbed  float64
	Delta      float64
	// SimsCount is the number of replicates that contributed to the
	// averaged perturbed value. Zero outside averaged mode.
	SimsCount int
}

// Pair aligns one replicate's perturbed set against its baseline. Identities
// present in only one set are excluded. For a common identity with b and p
// occurrences, exactly min(b, p) records are produced, pairing rank i of
// each side's order; excess occurrences are dropped.
func Pair(value, sim int, base, perturbed measure.Set) []Record {
	var records []Record
	for _, id := range base.IDs() {
		baseVals := base[id]
		pertVals := perturbed[id]
		n := len(baseVals)
		if len(pertVals) < n {
			n = len(pertVals)
		}
		for i := 0; i < n; i++ {
			records = append(records, Record{
				Value:      value,
				Sim:        sim,
				ID:         id,
				Occurrence: i + 1,
				Baseline:   baseVals[i],
				Perturbed:  pertVals[i],
				Delta:      pertVals[i] - baseVals[i],
			})
		}
	}
	return records
}

// PairAveraged aligns per-vehicle durations: all perturbed replicates for
// the value are first reduced to one arithmetic mean per identity, then
// differenced against the single baseline duration. One record per common
// identity, occurrence rank always 1.
func PairAveraged(value int, base measure.Set, perturbed []measure.Set) []Record {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, set := range perturbed {
		for id, vals := range set {
			for _, v := range vals {
				sums[id] += v
				counts[id]++
			}
		}
	}

	var records []Record
	for _, id := range base.IDs() {
		count := counts[id]
		if count == 0 {
			continue
		}
		baseVal := base[id][0]
		avg := sums[id] / float64(count)
		records = append(records, Record{
			Value:      value,
			ID:         id,
			Occurrence: 1,
			Baseline:   baseVal,
			Perturbed:  avg,
			Delta:      avg - baseVal,
			SimsCount:  count,
		})
	}
	return records
}
