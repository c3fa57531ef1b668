package core

import (
	"errors"
	"testing"

	"github.com/JonMunkholm/recon/internal/sheet"
)

func csodSAPSettings() Settings {
	return Settings{
		SourceA:           SourceSpec{Label: "CSOD", IDColumn: "ID do Usuário", PositionColumn: "Posição ID"},
		SourceB:           SourceSpec{Label: "SAP", IDColumn: "NP", PositionColumn: "Cargo - Cód."},
		MinIDDigits:       1,
		InvalidIDPrefixes: []string{"100008", "89", "70"},
		StatusColumn:      "Desc. C. Custo",
		StatusMarker:      "afastad",
		HeaderScanRows:    10,
	}
}

// gridA builds a Source A grid with its header on row 3 under the report
// banner.
func gridA(rows ...[]string) [][]string {
	grid := [][]string{
		{"Relatório de Usuários"},
		{"Gerado em 01/03/2024"},
		{""},
		{"ID do Usuário", "Posição ID"},
	}
	return append(grid, rows...)
}

func gridB(rows ...[]string) [][]string {
	return append([][]string{{"NP", "Cargo - Cód.", "Desc. C. Custo"}}, rows...)
}

func TestReconcile_MatchingSources(t *testing.T) {
	a := gridA([]string{"12345", "00010203-Analyst"})
	b := [][]string{{"NP", "Cargo - Cód."}, {"12345", "10203.0"}}

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res.Summary)
	}
	if res.Diagnostics.HeaderRowA != 3 {
		t.Errorf("HeaderRowA = %d, want 3", res.Diagnostics.HeaderRowA)
	}
	if res.Diagnostics.StatusRuleApplied {
		t.Error("status rule should be skipped when the column is absent")
	}
	if res.Summary.TotalA != 1 || res.Summary.TotalB != 1 {
		t.Errorf("totals = %d/%d, want 1/1", res.Summary.TotalA, res.Summary.TotalB)
	}
}

func TestReconcile_PrefixExcluded(t *testing.T) {
	a := gridA([]string{"70999", "00010203-Analyst"})
	b := gridB([]string{"12", "10203", "Operações"})

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	for _, r := range res.AOnly {
		if r.ID == "70999" {
			t.Error("70999 should be excluded by prefix")
		}
	}
	if res.Summary.PrefixExcludedA != 1 {
		t.Errorf("PrefixExcludedA = %d, want 1", res.Summary.PrefixExcludedA)
	}
	if got := ids(res.BOnly); len(got) != 1 || got[0] != "12" {
		t.Errorf("BOnly = %v, want [12]", got)
	}
}

func TestReconcile_StatusExcludedFromBothSides(t *testing.T) {
	a := gridA([]string{"500", "00099999-Other"})
	b := gridB([]string{"500", "10203", "Afastado - Licença"})

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if !res.Empty() {
		t.Errorf("id 500 should be absent from every set, got %+v", res.Summary)
	}
	if res.Summary.StatusExcludedA != 1 || res.Summary.StatusExcludedB != 1 {
		t.Errorf("status exclusions = %d/%d, want 1/1",
			res.Summary.StatusExcludedA, res.Summary.StatusExcludedB)
	}
	if !res.Diagnostics.StatusRuleApplied || res.Diagnostics.InactiveIDs != 1 {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
}

func TestReconcile_NoPositionAndAOnly(t *testing.T) {
	a := gridA([]string{"900", ""})
	b := gridB([]string{"12345", "10203", ""})

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if got := ids(res.NoPosition); len(got) != 1 || got[0] != "900" {
		t.Errorf("NoPosition = %v, want [900]", got)
	}
	if got := ids(res.AOnly); len(got) != 1 || got[0] != "900" {
		t.Errorf("AOnly = %v, want [900]", got)
	}
	if got := ids(res.BOnly); len(got) != 1 || got[0] != "12345" {
		t.Errorf("BOnly = %v, want [12345]", got)
	}
}

func TestReconcile_Divergent(t *testing.T) {
	a := gridA(
		[]string{"1", "00010203-Analyst"},
		[]string{"2", "00020304 - Lead, 00010203 - Analyst"},
		[]string{"2", "00099999 - Duplicate"},
	)
	b := gridB(
		[]string{"2.0", "10203", ""},
		[]string{"1", "10203.0", ""},
	)

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if len(res.Divergent) != 1 {
		t.Fatalf("Divergent = %+v, want one pair", res.Divergent)
	}
	d := res.Divergent[0]
	if d.ID != "2" || d.A.PositionCode != "00020304" || d.B.PositionCode != "00010203" {
		t.Errorf("unexpected pair: id=%s a=%s b=%s", d.ID, d.A.PositionCode, d.B.PositionCode)
	}
	if d.A.Line != 6 {
		t.Errorf("A line = %d, want 6", d.A.Line)
	}
	if res.Summary.DuplicatesA != 1 {
		t.Errorf("DuplicatesA = %d, want 1", res.Summary.DuplicatesA)
	}
}

func TestReconcile_EmptyIDsDropped(t *testing.T) {
	a := gridA([]string{"", "00010203-Analyst"}, []string{"n/a", ""}, []string{"1", "00000001-X"})
	b := gridB([]string{"1", "1", ""})

	res, err := Reconcile(a, b, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if res.Summary.RowsA != 3 || res.Summary.EmptyIDA != 2 {
		t.Errorf("RowsA/EmptyIDA = %d/%d, want 3/2", res.Summary.RowsA, res.Summary.EmptyIDA)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res.Summary)
	}
}

func TestReconcile_HeaderNotFound(t *testing.T) {
	a := [][]string{{"Nome", "Cargo"}, {"Ana", "x"}}
	b := gridB()

	_, err := Reconcile(a, b, csodSAPSettings())

	var hnf *HeaderNotFoundError
	if !errors.As(err, &hnf) {
		t.Fatalf("expected *HeaderNotFoundError, got %v", err)
	}
	if hnf.Source != SourceA || hnf.Label != "CSOD" {
		t.Errorf("Source/Label = %s/%s, want A/CSOD", hnf.Source, hnf.Label)
	}
}

func TestReconcile_MissingColumnInB(t *testing.T) {
	a := gridA([]string{"1", "00000001-X"})
	b := [][]string{{"NP", "Cargo"}, {"1", "1"}}

	_, err := Reconcile(a, b, csodSAPSettings())

	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnError, got %v", err)
	}
	if mce.Source != SourceB || len(mce.Missing) != 1 || mce.Missing[0] != "Cargo - Cód." {
		t.Errorf("unexpected error: %+v", mce)
	}
}

func TestReconcile_SkipRowsForB(t *testing.T) {
	s := csodSAPSettings()
	s.SourceB.SkipRows = 2

	a := gridA([]string{"1", "00000001-X"})
	b := append([][]string{{"SAP export"}, {"2024-01-31"}}, gridB([]string{"1", "1", ""})...)

	res, err := Reconcile(a, b, s)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !res.Empty() || res.Diagnostics.HeaderRowB != 2 {
		t.Errorf("summary=%+v headerRowB=%d", res.Summary, res.Diagnostics.HeaderRowB)
	}
}

func TestReconcile_InvalidSettings(t *testing.T) {
	_, err := Reconcile(nil, nil, Settings{})
	if err == nil {
		t.Fatal("expected error for empty settings")
	}
	if got := MapError(err).Code; got != "VAL007" {
		t.Errorf("code = %s, want VAL007", got)
	}
}

func TestReconcile_XLSXNumericCells(t *testing.T) {
	dataA := buildXLSX(t, [][]any{
		{"Relatório de Usuários"},
		{"Gerado em 01/03/2024"},
		{},
		{"ID do Usuário", "Posição ID"},
		{"1234567", "00010203-Analyst"},
		{67890, "00020304 - Lead"},
	}, map[string]int{"A6": 3})

	// SAP stores IDs and codes as numbers shown with thousands separators.
	dataB := buildXLSX(t, [][]any{
		{"NP", "Cargo - Cód.", "Desc. C. Custo"},
		{1234567, 10203, "Operações"},
		{67890, 20304.0, "Operações"},
	}, map[string]int{"A2": 3, "B2": 3, "A3": 3, "B3": 4})

	gridA, err := sheet.Decode(dataA)
	if err != nil {
		t.Fatalf("Decode A: %v", err)
	}
	gridB, err := sheet.Decode(dataB)
	if err != nil {
		t.Fatalf("Decode B: %v", err)
	}

	res, err := Reconcile(gridA, gridB, csodSAPSettings())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if !res.Empty() {
		t.Errorf("expected empty result, got %+v (a_only=%v b_only=%v)", res.Summary, ids(res.AOnly), ids(res.BOnly))
	}
	if res.Summary.TotalA != 2 || res.Summary.TotalB != 2 {
		t.Errorf("totals = %d/%d, want 2/2", res.Summary.TotalA, res.Summary.TotalB)
	}
	if res.Diagnostics.HeaderRowA != 3 {
		t.Errorf("HeaderRowA = %d, want 3", res.Diagnostics.HeaderRowA)
	}
	if got := res.Diagnostics.SampleIDsB; len(got) != 2 || got[0] != "1234567" || got[1] != "67890" {
		t.Errorf("SampleIDsB = %v, want [1234567 67890]", got)
	}
	if got := res.Diagnostics.SampleCodesB; len(got) != 2 || got[0] != "00010203" || got[1] != "00020304" {
		t.Errorf("SampleCodesB = %v, want [00010203 00020304]", got)
	}
}
