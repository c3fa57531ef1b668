package core

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildXLSX writes rows to the first sheet of a new workbook. numFmts applies
// a built-in number format to single cells, keyed by cell name ("A2").
func buildXLSX(t *testing.T, rows [][]any, numFmts map[string]int) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow(%s): %v", cell, err)
		}
	}

	for cell, numFmt := range numFmts {
		style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellStyle("Sheet1", cell, cell, style); err != nil {
			t.Fatalf("SetCellStyle(%s): %v", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
