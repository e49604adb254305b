package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/stats"
)

var testPercentiles = []float64{50, 99.9}

func testRows() []stats.Row {
	return []stats.Row{
		{Case: "femtolog_info_literal", Percentiles: testPercentiles, Values: []float64{15, 21.123456}},
		{Case: "spdlog_info_literal", Percentiles: testPercentiles, Values: []float64{40.5, 88.25}},
	}
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, testRows()))

	want := "\nBenchmark: femtolog_info_literal\n" +
		"  P50: 15.000 ns\n" +
		"  P99.9: 21.123 ns\n" +
		"\nBenchmark: spdlog_info_literal\n" +
		"  P50: 40.500 ns\n" +
		"  P99.9: 88.250 ns\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteConsole_PadsSingleDigitPercentiles(t *testing.T) {
	var buf bytes.Buffer
	rows := []stats.Row{{Case: "a", Percentiles: []float64{5}, Values: []float64{1}}}
	require.NoError(t, WriteConsole(&buf, rows))
	assert.Contains(t, buf.String(), "  P 5: 1.000 ns\n")
}

func TestWriteConsole_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, testRows(), testPercentiles))

	want := "Benchmark,P50,P99.9\n" +
		"femtolog_info_literal,15,21.123456\n" +
		"spdlog_info_literal,40.5,88.25\n"
	assert.Equal(t, want, buf.String())
}

func TestEncode_CSVHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, nil, stats.DefaultPercentiles))
	assert.Equal(t, "Benchmark,P50,P75,P90,P95,P99,P99.9\n", buf.String())
}

func TestEncode_JSONKeyOrder(t *testing.T) {
	rows := []stats.Row{{Case: "a_b", Percentiles: []float64{99, 5, 50}, Values: []float64{3, 1, 2}}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, rows, rows[0].Percentiles))

	want := "[\n  {\n    \"Benchmark\": \"a_b\",\n    \"P99\": 3,\n    \"P5\": 1,\n    \"P50\": 2\n  }\n]\n"
	assert.Equal(t, want, buf.String())
}

func TestEncode_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, nil, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEncode_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, testRows(), testPercentiles))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, want := range testRows() {
		assert.Equal(t, want.Case, got[i].Case)
		assert.Equal(t, want.Percentiles, got[i].Percentiles)
		assert.Equal(t, want.Values, got[i].Values)
	}
}

func TestEncode_YAMLKeepsInsertionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, testRows()[:1], testPercentiles))

	want := "- Benchmark: femtolog_info_literal\n" +
		"  P50: 15.0\n" +
		"  P99.9: 21.123456\n"
	assert.Equal(t, want, buf.String())

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 15.0, decoded[0]["P50"])
}

func TestEncode_YAMLQuotesAmbiguousNames(t *testing.T) {
	rows := []stats.Row{{Case: "true", Percentiles: []float64{50}, Values: []float64{1}}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, rows, rows[0].Percentiles))

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "true", decoded[0]["Benchmark"])
}

func TestEncode_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, testRows(), testPercentiles))

	want := "Benchmark: femtolog_info_literal\n" +
		"  P50: 15.000 ns\n" +
		"  P99.9: 21.123 ns\n" +
		"\n" +
		"Benchmark: spdlog_info_literal\n" +
		"  P50: 40.500 ns\n" +
		"  P99.9: 88.250 ns\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "report.csv")

	written, err := Write(path, FormatCSV, testRows(), testPercentiles)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Benchmark,P50,P99.9\n"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	_, err := Write(path, FormatJSON, testRows(), testPercentiles)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := ReadJSON(f)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestWrite_DirectoryBlockedByFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Write(filepath.Join(blocker, "report.csv"), FormatCSV, testRows(), testPercentiles)
	require.Error(t, err)

	var ioErr *reporterrors.ErrIO
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := map[string]string{
		"not an array":    `{"Benchmark":"a"}`,
		"missing name":    `[{"P50": 1}]`,
		"bad key":         `[{"Benchmark":"a","median":1}]`,
		"mismatched keys": `[{"Benchmark":"a","P50":1},{"Benchmark":"b","P90":1}]`,
		"non numeric":     `[{"Benchmark":"a","P50":"fast"}]`,
		"truncated":       `[{"Benchmark":"a","P50":1}`,
		"nan percentile":  `[{"Benchmark":"a","PNaN":1}]`,
		"negative":        `[{"Benchmark":"a","P-5":1}]`,
		"above 100":       `[{"Benchmark":"a","P1000":1}]`,
		"infinite":        `[{"Benchmark":"a","PInf":1}]`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(doc))
			var dataErr *reporterrors.ErrData
			require.True(t, errors.As(err, &dataErr), "got %v", err)
		})
	}
}
