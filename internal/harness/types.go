// internal/harness/types.go
// Package: harness
package harness

import (
	"time"

	"github.com/mwiater/benchpct/internal/config"
	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/stats"
)

// GroupSummary describes one group of cases at the first requested percentile.
type GroupSummary struct {
	Key   string `json:"key"`
	Cases int    `json:"cases"`

	// Percentile the summary is computed at, e.g. 50.
	Percentile float64 `json:"percentile"`

	// Fastest and slowest case names at Percentile.
	Fastest string `json:"fastest"`
	Slowest string `json:"slowest"`

	// Mean +/- std of the Percentile values across the group's cases.
	Mean float64 `json:"mean_ns"`
	Std  float64 `json:"std_ns"`
}

// RunResult is the top-level artifact returned by Run.
type RunResult struct {
	Config      config.Config  `json:"config"`
	Rows        []stats.Row    `json:"rows"`
	Groups      []group.Group  `json:"-"`
	Summaries   []GroupSummary `json:"summaries"`
	ReportPath  string         `json:"report_path,omitempty"`
	ChartPath   string         `json:"chart_path,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}
