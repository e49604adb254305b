package report

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"out/report.csv":  FormatCSV,
		"out/report.json": FormatJSON,
		"out/report.yaml": FormatYAML,
		"out/report.yml":  FormatYAML,
		"out/report.txt":  FormatText,
		"out/REPORT.JSON": FormatJSON,
		"out/report.log":  FormatText,
		"out/report":      FormatText,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestResolveFormat_OverrideWins(t *testing.T) {
	f, err := ResolveFormat("yaml", "out/report.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ResolveFormat("", "out/report.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ResolveFormat("  ", "out/report.log")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}

func TestParseFormat(t *testing.T) {
	for _, name := range FormatNames {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	_, err := ParseFormat("xml")
	var cfgErr *reporterrors.ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "format", cfgErr.Field)
}
