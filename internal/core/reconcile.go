package core

import (
	"errors"
	"io"
	"log/slog"
)

// sampleSize is how many identifiers and codes Diagnostics shows per source.
const sampleSize = 5

// Option configures a Reconcile call.
type Option func(*reconcileOptions)

type reconcileOptions struct {
	logger *slog.Logger
}

// WithLogger routes pipeline stage logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *reconcileOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Reconcile runs the full pipeline over the raw grids of both sources.
// It returns either a complete Result or an error, never both.
func Reconcile(gridA, gridB [][]string, s Settings, opts ...Option) (*Result, error) {
	o := reconcileOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	s = s.withDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	// Source A: structural header detection.
	headerA, err := LocateHeader(gridA, []string{s.SourceA.IDColumn, s.SourceA.PositionColumn}, s.HeaderScanRows)
	if err != nil {
		var hnf *HeaderNotFoundError
		if errors.As(err, &hnf) {
			hnf.Source = SourceA
			hnf.Label = s.SourceA.Label
		}
		return nil, err
	}
	tableA := NewTable(SourceA, gridA, headerA)
	tableB := NewTable(SourceB, gridB, s.SourceB.SkipRows)
	log.Debug("tables built",
		"header_row_a", headerA,
		"columns_a", len(tableA.Columns),
		"columns_b", len(tableB.Columns),
	)

	colsA, err := tableA.RequireColumns(s.SourceA.Label, s.SourceA.IDColumn, s.SourceA.PositionColumn)
	if err != nil {
		return nil, err
	}
	colsB, err := tableB.RequireColumns(s.SourceB.Label, s.SourceB.IDColumn, s.SourceB.PositionColumn)
	if err != nil {
		return nil, err
	}

	recsA, emptyA := extractRecords(tableA, colsA[0], colsA[1], PositionCodeA, s.MinIDDigits)
	recsB, emptyB := extractRecords(tableB, colsB[0], colsB[1], PositionCodeB, s.MinIDDigits)

	statusIdx := -1
	if s.StatusRuleEnabled() {
		statusIdx = tableB.ColumnIndex(s.StatusColumn)
		if statusIdx < 0 {
			log.Debug("status column absent, status rule skipped", "column", s.StatusColumn)
		}
	}

	excl := BuildExclusions(s, recsB, statusIdx)
	filteredA, statsA := excl.Apply(recsA)
	filteredB, statsB := excl.Apply(recsB)

	a, dupA := Dedupe(filteredA)
	b, dupB := Dedupe(filteredB)

	res := Compare(a, b)
	res.ColumnsA = tableA.Columns
	res.ColumnsB = tableB.Columns

	res.Summary.RowsA = len(tableA.Rows)
	res.Summary.RowsB = len(tableB.Rows)
	res.Summary.EmptyIDA = emptyA
	res.Summary.EmptyIDB = emptyB
	res.Summary.PrefixExcludedA = statsA.ByPrefix
	res.Summary.PrefixExcludedB = statsB.ByPrefix
	res.Summary.StatusExcludedA = statsA.ByStatus
	res.Summary.StatusExcludedB = statsB.ByStatus
	res.Summary.DuplicatesA = dupA
	res.Summary.DuplicatesB = dupB

	res.Diagnostics = Diagnostics{
		HeaderRowA:        headerA,
		HeaderRowB:        tableB.HeaderRow,
		SampleIDsA:        sampleIDs(a),
		SampleIDsB:        sampleIDs(b),
		SampleCodesA:      sampleCodes(a),
		SampleCodesB:      sampleCodes(b),
		StatusRuleApplied: excl.StatusApplied,
		InactiveIDs:       len(excl.Inactive),
	}

	log.Debug("comparison complete",
		"total_a", res.Summary.TotalA,
		"total_b", res.Summary.TotalB,
		"no_position", res.Summary.NoPosition,
		"a_only", res.Summary.AOnly,
		"b_only", res.Summary.BOnly,
		"divergent", res.Summary.Divergent,
	)

	return res, nil
}

// extractRecords normalizes every table row into a Record. Rows whose
// identifier cell yields no digit run are dropped and counted.
func extractRecords(t *Table, idIdx, posIdx int, code func(string) string, minDigits int) ([]Record, int) {
	records := make([]Record, 0, len(t.Rows))
	dropped := 0

	for i, row := range t.Rows {
		id := NormalizeID(row[idIdx], minDigits)
		if id == "" {
			dropped++
			continue
		}
		records = append(records, Record{
			ID:           id,
			PositionCode: code(row[posIdx]),
			Source:       t.Source,
			Line:         t.Lines[i],
			Fields:       row,
		})
	}
	return records, dropped
}

func sampleIDs(records []Record) []string {
	out := make([]string, 0, sampleSize)
	for _, r := range records {
		if len(out) == sampleSize {
			break
		}
		out = append(out, r.ID)
	}
	return out
}

func sampleCodes(records []Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, sampleSize)
	for _, r := range records {
		if len(out) == sampleSize {
			break
		}
		if !r.HasPosition() {
			continue
		}
		if _, ok := seen[r.PositionCode]; ok {
			continue
		}
		seen[r.PositionCode] = struct{}{}
		out = append(out, r.PositionCode)
	}
	return out
}
