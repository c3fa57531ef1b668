// Package report renders reconciliation results for people: the four-sheet
// XLSX workbook handed to HR and the plain summary printed by the CLI.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/recon/internal/core"
)

// maxSheetName is Excel's limit on worksheet name length.
const maxSheetName = 31

// sheetNameReplacer swaps characters Excel rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// SheetNames are the worksheet titles of one export, in order.
type SheetNames struct {
	NoPosition string
	AOnly      string
	BOnly      string
	Divergent  string
}

// Names builds the worksheet titles from the source labels. Titles are
// sanitized, cut to Excel's limit and kept distinct.
func Names(s core.Settings) SheetNames {
	a, b := s.SourceA.Label, s.SourceB.Label
	used := make(map[string]bool, 4)

	return SheetNames{
		NoPosition: uniqueSheetName(fmt.Sprintf("No position (%s)", a), used),
		AOnly:      uniqueSheetName(fmt.Sprintf("%s not in %s", a, b), used),
		BOnly:      uniqueSheetName(fmt.Sprintf("%s not in %s", b, a), used),
		Divergent:  uniqueSheetName("Divergent positions", used),
	}
}

func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "' ")
	if name == "" {
		name = "Sheet"
	}
	base := truncateRunes(name, maxSheetName)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// WriteWorkbook writes the four result sets of res as an XLSX workbook.
//
// The first three sheets repeat the original columns of their source (header
// row, then one row per record). The divergent sheet starts with the
// identifier and both position codes, followed by Source A's columns. An
// empty result still produces all four sheets with their headers.
func WriteWorkbook(w io.Writer, res *core.Result, s core.Settings) error {
	f := excelize.NewFile()
	defer f.Close()

	names := Names(s)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name    string
		header  []string
		rows    func(yield func([]string) error) error
		replace bool
	}{
		{
			name:    names.NoPosition,
			header:  res.ColumnsA,
			rows:    recordRows(res.NoPosition),
			replace: true,
		},
		{
			name:   names.AOnly,
			header: res.ColumnsA,
			rows:   recordRows(res.AOnly),
		},
		{
			name:   names.BOnly,
			header: res.ColumnsB,
			rows:   recordRows(res.BOnly),
		},
		{
			name:   names.Divergent,
			header: divergentHeader(res.ColumnsA, s),
			rows:   divergentRows(res.Divergent),
		},
	}

	for _, sh := range sheets {
		if sh.replace {
			// Reuse the default sheet so the workbook has exactly four.
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", sh.name, err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sh.name, err)
		}

		if err := writeSheet(f, sh.name, headerStyle, sh.header, sh.rows); err != nil {
			return fmt.Errorf("write sheet %q: %w", sh.name, err)
		}
	}

	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeSheet streams one worksheet. Cells are written as text so codes and
// identifiers keep their leading zeros.
func writeSheet(f *excelize.File, name string, headerStyle int, header []string,
	rows func(yield func([]string) error) error) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	line := 1
	write := func(cells []string, opts ...excelize.RowOpts) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		line++
		return sw.SetRow(cell, values, opts...)
	}

	if err := write(header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return err
	}
	if err := rows(func(cells []string) error { return write(cells) }); err != nil {
		return err
	}

	return sw.Flush()
}

func recordRows(records []core.Record) func(func([]string) error) error {
	return func(yield func([]string) error) error {
		for _, r := range records {
			if err := yield(r.Fields); err != nil {
				return err
			}
		}
		return nil
	}
}

func divergentHeader(columnsA []string, s core.Settings) []string {
	header := []string{
		"ID",
		s.SourceA.Label + " position code",
		s.SourceB.Label + " position code",
	}
	return append(header, columnsA...)
}

func divergentRows(pairs []core.DivergentPair) func(func([]string) error) error {
	return func(yield func([]string) error) error {
		for _, d := range pairs {
			row := append([]string{d.ID, d.A.PositionCode, d.B.PositionCode}, d.A.Fields...)
			if err := yield(row); err != nil {
				return err
			}
		}
		return nil
	}
}
