package core

// header.go finds the header row and turns a raw grid into a Table.
//
// Source A exports prepend a variable number of banner rows (report title,
// generation date, applied filters). The header is the first row, within a
// bounded window, whose cells include every required column name.

import "strings"

// LocateHeader returns the 0-based index of the first row among the first
// window rows of grid whose normalized cells contain every required name.
// Returns a *HeaderNotFoundError when no row qualifies; the caller fills in
// Source and Label.
func LocateHeader(grid [][]string, required []string, window int) (int, error) {
	if window <= 0 {
		window = DefaultHeaderScanRows
	}

	want := NormalizeColumns(required)
	limit := min(window, len(grid))

	for i := 0; i < limit; i++ {
		have := make(map[string]struct{}, len(grid[i]))
		for _, cell := range grid[i] {
			have[NormalizeColumn(cell)] = struct{}{}
		}
		if containsAll(have, want) {
			return i, nil
		}
	}

	return -1, &HeaderNotFoundError{Required: required, Window: window}
}

func containsAll(have map[string]struct{}, want []string) bool {
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

// NewTable builds a Table from grid using row headerRow as the header.
// Rows below the header that are entirely blank are skipped. A headerRow past
// the end of the grid yields a table with no columns.
func NewTable(src Source, grid [][]string, headerRow int) *Table {
	t := &Table{Source: src, HeaderRow: headerRow}
	if headerRow < 0 || headerRow >= len(grid) {
		return t
	}

	t.Columns = NormalizeColumns(grid[headerRow])

	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]
		if isEmptyRow(row) {
			continue
		}
		cells := make([]string, len(t.Columns))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
		t.Lines = append(t.Lines, i+1)
	}

	return t
}

// ColumnIndex returns the position of the named column, or -1.
// The first of several identically named columns wins.
func (t *Table) ColumnIndex(name string) int {
	want := NormalizeColumn(name)
	if want == "" {
		return -1
	}
	for i, c := range t.Columns {
		if c == want {
			return i
		}
	}
	return -1
}

// RequireColumns returns the indexes of the named columns, or a
// *MissingColumnError listing every absent one.
func (t *Table) RequireColumns(label string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string

	for i, n := range names {
		idx[i] = t.ColumnIndex(n)
		if idx[i] < 0 {
			missing = append(missing, n)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnError{
			Source:   t.Source,
			Label:    label,
			Missing:  missing,
			Expected: names,
		}
	}
	return idx, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
