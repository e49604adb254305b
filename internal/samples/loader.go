// internal/samples/loader.go
package samples

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// document is the subset of the Google Benchmark output we rely on.
// Benchmarks is a pointer so a missing key can be told apart from an empty list.
type document struct {
	Context    *Context                     `json:"context"`
	Benchmarks *[]map[string]json.RawMessage `json:"benchmarks"`
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*SampleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "open", Err: err})
	}
	defer f.Close()

	return load(f, path)
}

// Load decodes a benchmark document from r and keeps the iteration records.
func Load(r io.Reader) (*SampleSet, error) {
	return load(r, "")
}

func load(r io.Reader, source string) (*SampleSet, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WithStack(&reporterrors.ErrData{Source: source, Message: err.Error()})
	}
	if doc.Benchmarks == nil {
		return nil, errors.WithStack(&reporterrors.ErrData{
			Source:  source,
			Field:   "benchmarks",
			Message: "top-level list not found",
		})
	}

	set := newSampleSet()
	if doc.Context != nil {
		set.Context = *doc.Context
	}

	for i, entry := range *doc.Benchmarks {
		runType, ok, err := stringField(entry, "run_type")
		if err != nil {
			return nil, errors.WithStack(&reporterrors.ErrData{Source: source, Field: "run_type", Message: entryMessage(i, err)})
		}
		if !ok || runType != RunTypeIteration {
			continue
		}

		name, ok, err := stringField(entry, "name")
		if err != nil {
			return nil, errors.WithStack(&reporterrors.ErrData{Source: source, Field: "name", Message: entryMessage(i, err)})
		}
		if !ok || name == "" {
			return nil, errors.WithStack(&reporterrors.ErrData{Source: source, Field: "name", Message: entryMessage(i, errors.New("missing"))})
		}

		set.add(Sample{Case: name, Metrics: numericFields(entry)})
	}

	return set, nil
}

func stringField(entry map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := entry[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, errors.Errorf("expected a string, got %s", string(raw))
	}
	return s, true, nil
}

// numericFields keeps every key whose value decodes as a number.
func numericFields(entry map[string]json.RawMessage) map[string]float64 {
	out := make(map[string]float64, len(entry))
	for k, raw := range entry {
		if string(raw) == "null" {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err == nil {
			out[k] = v
		}
	}
	return out
}

func entryMessage(i int, err error) string {
	return errors.Wrapf(err, "benchmarks[%d]", i).Error()
}
