// internal/stats/aggregate.go

// Package stats computes percentile rows from benchmark samples.
package stats

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/samples"
)

// CaseKey is the column/key under which a row's case name is reported.
const CaseKey = "Benchmark"

// DefaultPercentiles is the request list used when none is configured.
var DefaultPercentiles = []float64{50, 75, 90, 95, 99, 99.9}

// Row holds the requested percentiles of one benchmark case.
// Values[i] is the statistic for Percentiles[i]; every row produced by one
// Aggregate call shares the same Percentiles slice.
type Row struct {
	Case        string
	Percentiles []float64
	Values      []float64
}

// Value returns the statistic for percentile p.
func (r Row) Value(p float64) (float64, bool) {
	i := slices.Index(r.Percentiles, p)
	if i < 0 {
		return 0, false
	}
	return r.Values[i], true
}

// Label returns the report key of the i-th percentile, e.g. "P99.9".
func (r Row) Label(i int) string {
	return Label(r.Percentiles[i])
}

// Label formats a percentile as a report key: 50 -> "P50", 99.9 -> "P99.9".
func Label(p float64) string {
	return "P" + FormatPercentile(p)
}

// ValidPercentile reports whether p lies in [0, 100]. NaN is not valid.
func ValidPercentile(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 100
}

// FormatPercentile renders p with the fewest digits that round-trip.
func FormatPercentile(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Aggregate computes one Row per case of set, in first-appearance order,
// using the numeric field of each sample.
func Aggregate(set *samples.SampleSet, field string, percentiles []float64) ([]Row, error) {
	for _, p := range percentiles {
		if !ValidPercentile(p) {
			return nil, errors.WithStack(&reporterrors.ErrData{
				Field:   "percentiles",
				Message: fmt.Sprintf("percentile %s is outside [0, 100]", FormatPercentile(p)),
			})
		}
	}

	pcts := slices.Clone(percentiles)
	rows := make([]Row, 0, set.Len())
	for _, name := range set.Cases() {
		values, err := fieldValues(set.Samples(name), name, field)
		if err != nil {
			return nil, err
		}
		slices.Sort(values)

		row := Row{Case: name, Percentiles: pcts, Values: make([]float64, len(pcts))}
		for i, p := range pcts {
			row.Values[i] = sortedQuantile(values, p)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fieldValues(list []samples.Sample, name, field string) ([]float64, error) {
	if len(list) == 0 {
		return nil, errors.WithStack(&reporterrors.ErrData{
			Field:   field,
			Message: fmt.Sprintf("case %q has no samples", name),
		})
	}
	values := make([]float64, 0, len(list))
	for i, s := range list {
		v, ok := s.Metric(field)
		if !ok {
			return nil, errors.WithStack(&reporterrors.ErrData{
				Field:   field,
				Message: fmt.Sprintf("sample %d of case %q has no numeric %q", i, name, field),
			})
		}
		values = append(values, v)
	}
	return values, nil
}
