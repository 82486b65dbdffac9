package stats

import (
	"sort"
)

// Percentile calculates the p-th percentile (0-100) using linear
// interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	return Quantile(values, p/100.0)
}

// Percentiles calculates multiple percentiles at once, one result per entry
// of ps.
func Percentiles(values []float64, ps []float64) []float64 {
	if len(values) == 0 {
		return make([]float64, len(ps))
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	results := make([]float64, len(ps))
	for i, p := range ps {
		results[i] = Percentile(sorted, p)
	}

	return results
}

// FiveNumberSummary returns the five-number summary (min, Q1, median, Q3, max).
func FiveNumberSummary(values []float64) (min, q1, median, q3, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	min = sorted[0]
	max = sorted[len(sorted)-1]
	q1 = Quantile(sorted, 0.25)
	median = Quantile(sorted, 0.5)
	q3 = Quantile(sorted, 0.75)

	return
}
