package sheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Format
		wantErr error
	}{
		{"zip container", []byte("PK\x03\x04rest"), FormatXLSX, nil},
		{"plain text", []byte("a,b\n1,2\n"), FormatCSV, nil},
		{"blank", []byte("  \n\t"), "", ErrEmptyFile},
		{"legacy xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, "", ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.data)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Relatório de Usuários"},
		{},
		{"ID do Usuário", "Posição ID"},
		{"12345", "00010203-Analyst"},
		{67890, 10203},
	})

	grid, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 5)

	assert.Equal(t, []string{"Relatório de Usuários"}, grid[0])
	assert.Equal(t, []string{"ID do Usuário", "Posição ID"}, grid[2])
	assert.Equal(t, []string{"12345", "00010203-Analyst"}, grid[3])
	assert.Equal(t, []string{"67890", "10203"}, grid[4])
}

func TestDecode_XLSXFormattedNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"NP", "Cargo - Cód.", "Cargo (float)"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1234567))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 10203))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", 10203.0))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	decimals, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "B2", thousands))
	require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C2", decimals))

	// Sanity check: the display value is what a formatted read would return.
	shown, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	require.Equal(t, "1,234,567", shown)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"1234567", "10203", "10203"}, grid[1])
}

func TestDecode_CSV(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Grid
	}{
		{
			name: "comma",
			data: []byte("NP,Cargo - Cód.\n12345,10203\n"),
			want: Grid{{"NP", "Cargo - Cód."}, {"12345", "10203"}},
		},
		{
			name: "semicolon with bom",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("NP;Cargo - Cód.\n12345;10203\n")...),
			want: Grid{{"NP", "Cargo - Cód."}, {"12345", "10203"}},
		},
		{
			name: "tab separated",
			data: []byte("NP\tDesc. C. Custo\n500\tAfastado - Licença\n"),
			want: Grid{{"NP", "Desc. C. Custo"}, {"500", "Afastado - Licença"}},
		},
		{
			name: "windows-1252 encoded",
			data: []byte("NP;Posi\xe7\xe3o\n1;x\n"),
			want: Grid{{"NP", "Posição"}, {"1", "x"}},
		},
		{
			name: "ragged rows",
			data: []byte("Report title\nID,Pos\n1,2\n"),
			want: Grid{{"Report title"}, {"ID", "Pos"}, {"1", "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, grid)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Decode([]byte("PK\x03\x04 not really a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid xlsx workbook")
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', SniffDelimiter([]byte("Relatório gerado em 01/02/2024\n\na;b;c\n1;2;3\n")))
	assert.Equal(t, ',', SniffDelimiter([]byte("single column\nvalue\n")))
	assert.Equal(t, '|', SniffDelimiter([]byte("a|b|c\n")))
}
