// internal/reporterrors/errors.go

// Package reporterrors defines the error kinds surfaced by the report pipeline.
// Stages return these wrapped with errors.WithStack; callers recover them with errors.As.
//
// None of them are retried. A run that hits any of them stops at the failing stage;
// ErrRender is the only one that leaves earlier output (the report file) in place.
package reporterrors

import (
	"fmt"
)

// ErrData is returned when the benchmark document is malformed or a record is missing a required key.
type ErrData struct {
	Source  string // Path or description of the document, e.g., "results.json"
	Field   string // Offending key, e.g., "benchmarks" or "name"
	Message string // An optional message to include with the error message
}

func (err *ErrData) Error() (s string) {
	switch {
	case err.Source != "" && err.Field != "":
		s = fmt.Sprintf("malformed benchmark data in %s: field %q", err.Source, err.Field)
	case err.Field != "":
		s = fmt.Sprintf("malformed benchmark data: field %q", err.Field)
	case err.Source != "":
		s = fmt.Sprintf("malformed benchmark data in %s", err.Source)
	default:
		s = "malformed benchmark data"
	}
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}

// ErrIO is returned when an input file cannot be read or an output directory/file cannot be written.
type ErrIO struct {
	Path string // The offending path
	Op   string // What was attempted, e.g., "open", "mkdir", "write"
	Err  error  // Underlying error, usually from package os
}

func (err *ErrIO) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%s %s failed", err.Op, err.Path)
	}
	return fmt.Sprintf("%s %s: %s", err.Op, err.Path, err.Err)
}

func (err *ErrIO) Unwrap() error {
	return err.Err
}

// ErrRender is returned when a chart cannot be drawn or its image cannot be saved.
type ErrRender struct {
	Path string
	Err  error
}

func (err *ErrRender) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("could not render chart to %s", err.Path)
	}
	return fmt.Sprintf("could not render chart to %s: %s", err.Path, err.Err)
}

func (err *ErrRender) Unwrap() error {
	return err.Err
}

// ErrInvalidConfig is returned when the run configuration fails validation.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidConfig struct {
	Field   string      // Name of the setting, e.g., "percentiles"
	Value   interface{} // The invalid value that was provided
	Message string      // Why the value is invalid
}

func (err *ErrInvalidConfig) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %v is invalid for setting %q", err.Value, err.Field)
	}
	return fmt.Sprintf("value %v is invalid for setting %q; %s", err.Value, err.Field, err.Message)
}
