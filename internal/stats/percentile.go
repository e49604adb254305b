// internal/stats/percentile.go
// Package: stats
package stats

import (
	"math"
	"slices"
)

// Quantile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks (copy-safe).
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	cp := slices.Clone(values)
	slices.Sort(cp)
	return sortedQuantile(cp, p)
}

// sortedQuantile is Quantile for an already sorted slice. A NaN p yields NaN.
func sortedQuantile(sorted []float64, p float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	pos := p / 100 * float64(len(sorted)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return sorted[l]
	}
	frac := pos - float64(l)
	return sorted[l] + (sorted[r]-sorted[l])*frac
}
