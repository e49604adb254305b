// internal/group/group.go

// Package group partitions percentile rows by the prefix of their case name.
//
// Benchmark cases follow a "<library>_<operation>[_<variant>]" naming convention,
// e.g. "femtolog_info_literal" and "spdlog_info_literal". The token before the
// first separator selects the group; a name without a separator is a group of its own.
package group

import (
	"strings"

	"github.com/mwiater/benchpct/internal/stats"
)

// Separator splits a case name into tokens.
const Separator = "_"

// Group is a named, ordered subset of rows sharing a key.
type Group struct {
	Key  string
	Rows []stats.Row
}

// Key returns the group key of a case name.
func Key(caseName string) string {
	key, _, _ := strings.Cut(caseName, Separator)
	return key
}

// Classify assigns every row to exactly one group. Groups appear in the order
// their key is first seen and keep the input order of their rows.
func Classify(rows []stats.Row) []Group {
	var groups []Group
	index := map[string]int{}
	for _, r := range rows {
		k := Key(r.Case)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// Keys lists the group keys in order.
func Keys(groups []Group) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}

// ShortName abbreviates a case name for axis labels: names with more than two
// tokens keep the first and last, two-token names keep the second, anything
// else is returned unchanged.
func ShortName(caseName string) string {
	parts := strings.Split(caseName, Separator)
	switch {
	case len(parts) > 2:
		return parts[0] + Separator + parts[len(parts)-1]
	case len(parts) == 2:
		return parts[1]
	default:
		return caseName
	}
}
