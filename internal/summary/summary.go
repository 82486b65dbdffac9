// Package summary computes the end-of-run diagnostic printed by the CLI:
// dispersion and concentration of corridor weights.
package summary

import (
	"github.com/nerevar/traclusdl/internal/corridor"
	"github.com/nerevar/traclusdl/internal/stats"
)

// RunSummary reports how flow is distributed across finalized corridors.
type RunSummary struct {
	Count               int
	MeanWeight          float64
	StdDevWeight        float64
	MedianWeight        float64
	Min, Q1, Q3, Max    float64
	WeightConcentration float64 // Shannon entropy in bits; low = a few corridors dominate
}

// Summarize reduces a finalize result's corridors to a RunSummary.
// Returns the zero value if there are no corridors.
func Summarize(corridors []corridor.Corridor) RunSummary {
	if len(corridors) == 0 {
		return RunSummary{}
	}

	weights := make([]float64, len(corridors))
	for i, c := range corridors {
		weights[i] = float64(c.Weight)
	}

	min, q1, median, q3, max := stats.FiveNumberSummary(weights)
	return RunSummary{
		Count:               len(corridors),
		MeanWeight:          stats.Mean(weights),
		StdDevWeight:        stats.StdDev(weights),
		MedianWeight:        median,
		Min:                 min,
		Q1:                  q1,
		Q3:                  q3,
		Max:                 max,
		WeightConcentration: stats.ShannonEntropy(weights),
	}
}
