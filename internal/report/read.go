// internal/report/read.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/stats"
)

// ReadJSON loads rows from a JSON report written by Write. Key order inside
// each object is significant: it defines the percentile order of the rows.
func ReadJSON(r io.Reader) ([]stats.Row, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	rows := []stats.Row{}
	var shared []float64
	for dec.More() {
		row, err := readRow(dec)
		if err != nil {
			return nil, err
		}
		if shared == nil {
			shared = row.Percentiles
		} else if !slices.Equal(shared, row.Percentiles) {
			return nil, dataErr(stats.CaseKey, fmt.Sprintf("row %q has different percentile keys", row.Case))
		}
		row.Percentiles = shared
		rows = append(rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return rows, nil
}

func readRow(dec *json.Decoder) (stats.Row, error) {
	var row stats.Row
	if err := expectDelim(dec, '{'); err != nil {
		return row, err
	}
	seenName := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return row, dataErr("", err.Error())
		}
		key, _ := tok.(string)
		if key == stats.CaseKey {
			if err := dec.Decode(&row.Case); err != nil {
				return row, dataErr(key, err.Error())
			}
			seenName = true
			continue
		}
		if !strings.HasPrefix(key, "P") {
			return row, dataErr(key, "unexpected key")
		}
		p, err := strconv.ParseFloat(strings.TrimPrefix(key, "P"), 64)
		if err != nil {
			return row, dataErr(key, "not a percentile key")
		}
		if !stats.ValidPercentile(p) {
			return row, dataErr(key, "percentile outside [0, 100]")
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return row, dataErr(key, err.Error())
		}
		row.Percentiles = append(row.Percentiles, p)
		row.Values = append(row.Values, v)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return row, err
	}
	if !seenName {
		return row, dataErr(stats.CaseKey, "missing")
	}
	if row.Percentiles == nil {
		row.Percentiles = []float64{}
		row.Values = []float64{}
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return dataErr("", err.Error())
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return dataErr("", fmt.Sprintf("expected %q, got %v", want, tok))
	}
	return nil
}

func dataErr(field, msg string) error {
	return errors.WithStack(&reporterrors.ErrData{Source: "report", Field: field, Message: msg})
}
