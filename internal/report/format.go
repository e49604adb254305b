// internal/report/format.go
package report

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// Format selects how a report file is encoded.
type Format int

const (
	// FormatText is the line-oriented text used for the console; also the fallback.
	FormatText Format = iota
	// FormatCSV writes a header row and one record per case.
	FormatCSV
	// FormatJSON writes an indented array of row objects.
	FormatJSON
	// FormatYAML writes the same row objects as YAML, keys in insertion order.
	FormatYAML
)

var formatNames = map[Format]string{
	FormatText: "txt",
	FormatCSV:  "csv",
	FormatJSON: "json",
	FormatYAML: "yaml",
}

// FormatNames lists the accepted --format values.
var FormatNames = []string{"csv", "json", "yaml", "txt"}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat maps a configuration value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "txt", "text":
		return FormatText, nil
	}
	return FormatText, errors.WithStack(&reporterrors.ErrInvalidConfig{
		Field:   "format",
		Value:   s,
		Message: "must be one of " + strings.Join(FormatNames, ", "),
	})
}

// DetectFormat infers the format from the extension of path.
// Unknown or missing extensions fall back to FormatText.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// ResolveFormat returns the explicit override when set, otherwise the format
// implied by path.
func ResolveFormat(override, path string) (Format, error) {
	if strings.TrimSpace(override) != "" {
		return ParseFormat(override)
	}
	return DetectFormat(path), nil
}
