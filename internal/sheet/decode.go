// Package sheet decodes uploaded spreadsheets into raw cell grids.
//
// Two input families are accepted: XLSX workbooks (first worksheet) and
// delimited text. Nothing here knows about headers or columns; the grid is
// handed to the reconciliation core exactly as the file laid it out.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Grid is the raw content of one worksheet: rows of cell text. Rows may have
// different lengths; trailing empty cells are often omitted.
type Grid [][]string

// Format identifies how an upload is encoded.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	// ErrEmptyFile is returned when an upload has no bytes or no rows.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnsupported is returned for binary formats other than XLSX,
	// such as legacy .xls workbooks.
	ErrUnsupported = errors.New("unsupported file format")
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// candidateDelimiters are tried in order when sniffing delimited text.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DetectFormat inspects the leading bytes of data.
func DetectFormat(data []byte) (Format, error) {
	switch {
	case len(bytes.TrimSpace(data)) == 0:
		return "", ErrEmptyFile
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX, nil
	case bytes.HasPrefix(data, oleMagic):
		return "", fmt.Errorf("%w: legacy .xls workbook, save as .xlsx or .csv", ErrUnsupported)
	default:
		return FormatCSV, nil
	}
}

// Decode parses an uploaded file into a Grid.
func Decode(data []byte) (Grid, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	var grid Grid
	switch format {
	case FormatXLSX:
		grid, err = decodeXLSX(data)
	default:
		grid, err = decodeDelimited(data)
	}
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}
	return grid, nil
}

// decodeXLSX reads the first worksheet of a workbook. Cells are read as
// stored, not as displayed: a number formatted "#,##0" must come back as
// 1234567, not "1,234,567".
func decodeXLSX(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx workbook: read sheet %q: %w", sheets[0], err)
	}
	return Grid(rows), nil
}

// decodeDelimited parses delimited text. Input that is not valid UTF-8 is
// assumed to be Windows-1252, the usual encoding of spreadsheet exports saved
// on Portuguese and Spanish locale desktops.
func decodeDelimited(data []byte) (Grid, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("encoding error: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = SniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return Grid(records), nil
}

// sniffLines is how many non-empty lines SniffDelimiter samples. Banner rows
// above the header rarely contain delimiters, so one line is not enough.
const sniffLines = 20

// SniffDelimiter picks the candidate delimiter occurring most often across the
// first non-empty lines, defaulting to comma.
func SniffDelimiter(data []byte) rune {
	var sample []string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		sample = append(sample, l)
		if len(sample) == sniffLines {
			break
		}
	}
	joined := strings.Join(sample, "\n")

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(joined, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
