package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/samples"
)

func sample(name string, realTime float64) samples.Sample {
	return samples.Sample{Case: name, Metrics: map[string]float64{"real_time": realTime, "cpu_time": realTime / 2}}
}

func TestAggregate_Example(t *testing.T) {
	set, err := samples.Load(strings.NewReader(`{"benchmarks":[
		{"name":"alpha_op","run_type":"iteration","real_time":10.0},
		{"name":"alpha_op","run_type":"iteration","real_time":20.0}]}`))
	require.NoError(t, err)

	rows, err := Aggregate(set, "real_time", []float64{50})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "alpha_op", rows[0].Case)
	v, ok := rows[0].Value(50)
	require.True(t, ok)
	assert.Equal(t, 15.0, v)
	assert.Equal(t, "P50", rows[0].Label(0))
}

func TestAggregate_RowOrderAndSharedKeys(t *testing.T) {
	set := samples.FromSamples(
		sample("zeta_b", 5),
		sample("alpha_a", 1),
		sample("zeta_b", 7),
		sample("mid", 3),
	)
	pcts := []float64{99, 50, 0}

	rows, err := Aggregate(set, "real_time", pcts)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "zeta_b", rows[0].Case)
	assert.Equal(t, "alpha_a", rows[1].Case)
	assert.Equal(t, "mid", rows[2].Case)
	for _, r := range rows {
		assert.Equal(t, []float64{99, 50, 0}, r.Percentiles)
		assert.Len(t, r.Values, 3)
	}
	assert.Equal(t, []float64{6.98, 6, 5}, roundAll(rows[0].Values))

	pcts[0] = 1
	assert.Equal(t, 99.0, rows[0].Percentiles[0], "rows must not alias the request slice")
}

func TestAggregate_UsesRequestedField(t *testing.T) {
	set := samples.FromSamples(sample("a", 10), sample("a", 20))

	rows, err := Aggregate(set, "cpu_time", []float64{100})
	require.NoError(t, err)
	assert.Equal(t, 10.0, rows[0].Values[0])
}

func TestAggregate_Empty(t *testing.T) {
	rows, err := Aggregate(samples.FromSamples(), "real_time", DefaultPercentiles)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAggregate_MissingField(t *testing.T) {
	set := samples.FromSamples(samples.Sample{Case: "a", Metrics: map[string]float64{"cpu_time": 1}})

	_, err := Aggregate(set, "real_time", []float64{50})
	var dataErr *reporterrors.ErrData
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "real_time", dataErr.Field)
}

func TestAggregate_PercentileOutOfRange(t *testing.T) {
	set := samples.FromSamples(sample("a", 1))

	for _, p := range []float64{-1, 100.5, math.NaN(), math.Inf(1)} {
		_, err := Aggregate(set, "real_time", []float64{50, p})
		var dataErr *reporterrors.ErrData
		require.True(t, errors.As(err, &dataErr), "p=%v", p)
		assert.Equal(t, "percentiles", dataErr.Field)
	}
}

func TestRow_ValueMissing(t *testing.T) {
	r := Row{Case: "a", Percentiles: []float64{50}, Values: []float64{1}}
	_, ok := r.Value(90)
	assert.False(t, ok)
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(int(v*1000+0.5)) / 1000
	}
	return out
}
