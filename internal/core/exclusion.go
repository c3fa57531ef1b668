package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// ExclusionSet removes identifiers that must not take part in a comparison.
// It is built once per run and applied to both sources.
type ExclusionSet struct {
	// Prefixes drops identifiers starting with any entry.
	Prefixes []string

	// Inactive holds Source B identifiers whose status text contains the
	// configured marker.
	Inactive map[string]struct{}

	// StatusApplied is false when the status rule was disabled or Source B
	// had no status column.
	StatusApplied bool
}

// ExclusionStats counts the records one Apply call removed.
type ExclusionStats struct {
	ByPrefix int
	ByStatus int
}

// BuildExclusions derives the exclusion set for a run. statusIdx is the
// position of the status column in Source B's table, or -1 when absent; in
// that case the status rule is skipped.
func BuildExclusions(s Settings, b []Record, statusIdx int) *ExclusionSet {
	e := &ExclusionSet{
		Prefixes: s.InvalidIDPrefixes,
		Inactive: make(map[string]struct{}),
	}

	if !s.StatusRuleEnabled() || statusIdx < 0 {
		return e
	}
	e.StatusApplied = true

	fold := cases.Fold()
	marker := fold.String(strings.TrimSpace(s.StatusMarker))

	for _, r := range b {
		if statusIdx >= len(r.Fields) {
			continue
		}
		if strings.Contains(fold.String(r.Fields[statusIdx]), marker) {
			e.Inactive[r.ID] = struct{}{}
		}
	}
	return e
}

// HasPrefix reports whether id starts with a configured invalid prefix.
func (e *ExclusionSet) HasPrefix(id string) bool {
	for _, p := range e.Prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// IsInactive reports whether id was flagged by the status rule.
func (e *ExclusionSet) IsInactive(id string) bool {
	_, ok := e.Inactive[id]
	return ok
}

// Apply returns the records that survive both rules, preserving order.
// The prefix rule is checked first, so a record matching both rules counts
// as a prefix exclusion. The input slice is not modified.
func (e *ExclusionSet) Apply(records []Record) ([]Record, ExclusionStats) {
	var stats ExclusionStats
	kept := make([]Record, 0, len(records))

	for _, r := range records {
		switch {
		case e.HasPrefix(r.ID):
			stats.ByPrefix++
		case e.IsInactive(r.ID):
			stats.ByStatus++
		default:
			kept = append(kept, r)
		}
	}
	return kept, stats
}
