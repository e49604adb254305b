// internal/chart/mode.go
package chart

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// Mode selects the chart layout. The two implementations are ByPercentile
// and ByGroup; each carries its own layout parameters.
type Mode interface {
	name() string
}

// ByPercentile draws one panel per percentile with one bar per case, colored
// by group. All panels share the y scale max(values)*Headroom.
type ByPercentile struct {
	Headroom float64
}

// ByGroup draws one panel per group with one cluster of bars per percentile.
// Bars are min(ClusterFraction/cases, MaxBarWidth) axis units wide.
type ByGroup struct {
	Headroom        float64
	ClusterFraction float64
	MaxBarWidth     float64
}

func (ByPercentile) name() string { return "percentile" }
func (ByGroup) name() string      { return "group" }

// DefaultByPercentile is the default mode.
func DefaultByPercentile() ByPercentile { return ByPercentile{Headroom: 1.15} }

// DefaultByGroup returns the clustered-per-group layout.
func DefaultByGroup() ByGroup {
	return ByGroup{Headroom: 1.1, ClusterFraction: 0.8, MaxBarWidth: 0.08}
}

// ModeNames lists the accepted --plot-mode values.
var ModeNames = []string{"percentile", "group"}

// ParseMode maps a configuration value to a Mode with default parameters.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percentile":
		return DefaultByPercentile(), nil
	case "group":
		return DefaultByGroup(), nil
	}
	return nil, errors.WithStack(&reporterrors.ErrInvalidConfig{
		Field:   "plot_mode",
		Value:   s,
		Message: "must be one of " + strings.Join(ModeNames, ", "),
	})
}

// ModeName returns the configuration name of m.
func ModeName(m Mode) string {
	if m == nil {
		return ""
	}
	return m.name()
}

func headroom(h float64) float64 {
	if h <= 0 {
		return 1
	}
	return h
}
