// internal/harness/metrics.go
// Package: harness
package harness

import (
	"math"

	"github.com/mwiater/benchpct/internal/group"
)

func meanStd(values []float64) (mean, std float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n
	var varsum float64
	for _, v := range values {
		d := v - mean
		varsum += d * d
	}
	std = math.Sqrt(varsum / n)
	return
}

// Summarize builds one GroupSummary per group, in group order, at the first
// percentile of the rows. Groups whose rows carry no percentiles are
// summarized by case count only.
func Summarize(groups []group.Group) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		gs := GroupSummary{Key: g.Key, Cases: len(g.Rows)}
		if len(g.Rows) == 0 || len(g.Rows[0].Percentiles) == 0 {
			out = append(out, gs)
			continue
		}

		gs.Percentile = g.Rows[0].Percentiles[0]
		values := make([]float64, 0, len(g.Rows))
		lo, hi := 0, 0
		for i, r := range g.Rows {
			v := r.Values[0]
			values = append(values, v)
			if v < g.Rows[lo].Values[0] {
				lo = i
			}
			if v > g.Rows[hi].Values[0] {
				hi = i
			}
		}
		gs.Fastest = g.Rows[lo].Case
		gs.Slowest = g.Rows[hi].Case
		gs.Mean, gs.Std = meanStd(values)
		out = append(out, gs)
	}
	return out
}
