package core

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/recon/internal/config"
)

// DefaultMinIDDigits is the shortest digit run accepted as an identifier when
// a profile does not say otherwise. Observed exports disagree (any digits,
// 4+, 5+), so every profile states its own threshold explicitly.
const DefaultMinIDDigits = 1

// DefaultHeaderScanRows is how many leading rows of Source A are searched for
// the header row.
const DefaultHeaderScanRows = 10

// PositionCodeWidth is the fixed width position codes are zero-padded to
// before the two sources are compared byte for byte.
const PositionCodeWidth = 8

// PositionFallbackDigits is the minimum digit run searched across the whole
// Source A position field when its "code - label" prefix holds no digits.
const PositionFallbackDigits = 5

// clearPrefixes is the override value that empties a profile's prefix list.
const clearPrefixes = "-"

// SourceSpec names the columns read from one source.
type SourceSpec struct {
	Label          string `json:"label"`
	IDColumn       string `json:"idColumn"`
	PositionColumn string `json:"positionColumn"`

	// SkipRows is the index of the header row for sources read at a fixed
	// offset. Only Source B uses it; Source A is always located structurally.
	SkipRows int `json:"skipRows,omitempty"`
}

// Settings is the full configuration surface of one reconciliation run.
type Settings struct {
	SourceA SourceSpec `json:"sourceA"`
	SourceB SourceSpec `json:"sourceB"`

	// MinIDDigits is the minimum length of the digit run extracted as identifier.
	MinIDDigits int `json:"minIdDigits"`

	// InvalidIDPrefixes drops identifiers starting with any of these strings.
	InvalidIDPrefixes []string `json:"invalidIdPrefixes"`

	// StatusColumn and StatusMarker drive the Source B status rule. Either
	// one empty disables it.
	StatusColumn string `json:"statusColumn,omitempty"`
	StatusMarker string `json:"statusMarker,omitempty"`

	// HeaderScanRows is the Source A header search window.
	HeaderScanRows int `json:"headerScanRows"`
}

// withDefaults fills zero-valued numeric fields.
func (s Settings) withDefaults() Settings {
	if s.MinIDDigits <= 0 {
		s.MinIDDigits = DefaultMinIDDigits
	}
	if s.HeaderScanRows <= 0 {
		s.HeaderScanRows = DefaultHeaderScanRows
	}
	if s.SourceA.Label == "" {
		s.SourceA.Label = "Source A"
	}
	if s.SourceB.Label == "" {
		s.SourceB.Label = "Source B"
	}
	return s
}

// Validate checks that every required column name is configured.
func (s Settings) Validate() error {
	var errs []string

	if NormalizeColumn(s.SourceA.IDColumn) == "" {
		errs = append(errs, "source A identifier column is not set")
	}
	if NormalizeColumn(s.SourceA.PositionColumn) == "" {
		errs = append(errs, "source A position column is not set")
	}
	if NormalizeColumn(s.SourceB.IDColumn) == "" {
		errs = append(errs, "source B identifier column is not set")
	}
	if NormalizeColumn(s.SourceB.PositionColumn) == "" {
		errs = append(errs, "source B position column is not set")
	}
	if s.SourceB.SkipRows < 0 {
		errs = append(errs, "source B skip rows must be non-negative")
	}
	for _, p := range s.InvalidIDPrefixes {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, "invalid identifier prefixes must not contain blanks")
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}
	return nil
}

// StatusRuleEnabled reports whether the status column rule is configured.
func (s Settings) StatusRuleEnabled() bool {
	return NormalizeColumn(s.StatusColumn) != "" && strings.TrimSpace(s.StatusMarker) != ""
}

// Apply returns a copy of s with every non-zero field of o replacing the
// corresponding setting.
func (s Settings) Apply(o config.ReconcileConfig) Settings {
	setString(&s.SourceA.Label, o.SourceALabel)
	setString(&s.SourceA.IDColumn, o.SourceAIDColumn)
	setString(&s.SourceA.PositionColumn, o.SourceAPositionColumn)
	setString(&s.SourceB.Label, o.SourceBLabel)
	setString(&s.SourceB.IDColumn, o.SourceBIDColumn)
	setString(&s.SourceB.PositionColumn, o.SourceBPositionColumn)
	setString(&s.StatusColumn, o.StatusColumn)
	setString(&s.StatusMarker, o.StatusMarker)

	if o.SourceBSkipRows > 0 {
		s.SourceB.SkipRows = o.SourceBSkipRows
	}
	if o.MinIDDigits > 0 {
		s.MinIDDigits = o.MinIDDigits
	}
	if o.HeaderScanRows > 0 {
		s.HeaderScanRows = o.HeaderScanRows
	}

	switch {
	case len(o.InvalidIDPrefixes) == 1 && o.InvalidIDPrefixes[0] == clearPrefixes:
		s.InvalidIDPrefixes = nil
	case len(o.InvalidIDPrefixes) > 0:
		s.InvalidIDPrefixes = append([]string(nil), o.InvalidIDPrefixes...)
	}

	return s
}

// ResolveSettings looks up the configured profile and applies overrides.
func ResolveSettings(o config.ReconcileConfig) (Settings, error) {
	p, ok := GetProfile(o.Profile)
	if !ok {
		return Settings{}, fmt.Errorf("unknown profile %q", o.Profile)
	}

	s := p.Settings.Apply(o).withDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
