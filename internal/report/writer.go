// internal/report/writer.go

// Package report renders percentile rows to the console and to report files.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/stats"
)

// encoder writes rows in one format. percentiles is passed separately so an
// empty row set still produces a CSV header.
type encoder func(w io.Writer, rows []stats.Row, percentiles []float64) error

var encoders = map[Format]encoder{
	FormatCSV:  encodeCSV,
	FormatJSON: encodeJSON,
	FormatYAML: encodeYAML,
	FormatText: encodeText,
}

// Write encodes rows to path in the given format and returns the path written.
// Missing parent directories are created. The file is written to a temporary
// sibling first and renamed into place, so a failed run never leaves a partial report.
func Write(path string, format Format, rows []stats.Row, percentiles []float64) (string, error) {
	enc, ok := encoders[format]
	if !ok {
		return "", errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "format", Value: format})
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WithStack(&reporterrors.ErrIO{Path: dir, Op: "mkdir", Err: err})
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "create", Err: err})
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := enc(tmp, rows, percentiles); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "write", Err: err})
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "write", Err: err})
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "chmod", Err: err})
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "rename", Err: err})
	}
	return path, nil
}

// Encode writes rows to w in the given format without touching the filesystem.
func Encode(w io.Writer, format Format, rows []stats.Row, percentiles []float64) error {
	enc, ok := encoders[format]
	if !ok {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "format", Value: format})
	}
	return enc(w, rows, percentiles)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func headers(percentiles []float64) []string {
	out := make([]string, 0, len(percentiles)+1)
	out = append(out, stats.CaseKey)
	for _, p := range percentiles {
		out = append(out, stats.Label(p))
	}
	return out
}

func encodeCSV(w io.Writer, rows []stats.Row, percentiles []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(percentiles)); err != nil {
		return err
	}
	for _, r := range rows {
		record := make([]string, 0, len(r.Values)+1)
		record = append(record, r.Case)
		for _, v := range r.Values {
			record = append(record, formatValue(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonRow marshals a Row as an object whose keys keep the request order,
// which a map[string]any would lose.
type jsonRow stats.Row

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	name, err := json.Marshal(r.Case)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + stats.CaseKey + `":`)
	buf.Write(name)
	for i, p := range r.Percentiles {
		v, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "%s of %s", stats.Label(p), r.Case)
		}
		buf.WriteString(`,"` + stats.Label(p) + `":`)
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, rows []stats.Row, _ []float64) error {
	list := make([]jsonRow, len(rows))
	for i, r := range rows {
		list[i] = jsonRow(r)
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func encodeYAML(w io.Writer, rows []stats.Row, _ []float64) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, r := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m.Content = append(m.Content, strNode(stats.CaseKey), strNode(r.Case))
		for i := range r.Percentiles {
			m.Content = append(m.Content, strNode(r.Label(i)), floatNode(r.Values[i]))
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// floatNode always carries a decimal point so 15 reads back as 15.0, not an int.
func floatNode(v float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(v):
		s = ".nan"
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	default:
		s = formatValue(v)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

func encodeText(w io.Writer, rows []stats.Row, _ []float64) error {
	for _, r := range rows {
		if err := writeBlock(w, r, plainStyles); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
