package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/recon/internal/core"
)

// MaxDisplayRows caps each result table on the page; the workbook always
// carries every row.
const MaxDisplayRows = 500

func selectedProfile(profiles []core.Profile, key string) core.Profile {
	for _, p := range profiles {
		if p.Key == key {
			return p
		}
	}
	if len(profiles) > 0 {
		return profiles[0]
	}
	return core.Profile{Settings: core.Settings{
		SourceA: core.SourceSpec{Label: "Source A"},
		SourceB: core.SourceSpec{Label: "Source B"},
	}}
}

func exportLabel(src core.SourceSpec) string {
	return src.Label + " export"
}

func runTitle(run *core.Run) string {
	return fmt.Sprintf("%s x %s", run.Settings.SourceA.Label, run.Settings.SourceB.Label)
}

func runCaption(run *core.Run) string {
	s := run.Settings
	return fmt.Sprintf("%s: %s, %s: %s, profile %s", s.SourceA.Label, run.FileNameA,
		s.SourceB.Label, run.FileNameB, run.Profile)
}

func workbookURL(run *core.Run) templ.SafeURL {
	return templ.URL("/runs/" + run.ID + "/workbook")
}

func sectionTitle(title string, n int) string {
	return fmt.Sprintf("%s (%d)", title, n)
}

func truncatedNote(total int) string {
	return fmt.Sprintf("Showing the first %d of %d rows. Download the workbook for all of them.", MaxDisplayRows, total)
}

// capped returns at most MaxDisplayRows leading rows.
func capped[T any](rows []T) []T {
	if len(rows) > MaxDisplayRows {
		return rows[:MaxDisplayRows]
	}
	return rows
}

func diagnosticRows(run *core.Run) [][3]string {
	sum := run.Result.Summary
	diag := run.Result.Diagnostics
	return [][3]string{
		{"Header row", strconv.Itoa(diag.HeaderRowA + 1), strconv.Itoa(diag.HeaderRowB + 1)},
		{"Data rows", strconv.Itoa(sum.RowsA), strconv.Itoa(sum.RowsB)},
		{"Without ID", strconv.Itoa(sum.EmptyIDA), strconv.Itoa(sum.EmptyIDB)},
		{"Excluded by prefix", strconv.Itoa(sum.PrefixExcludedA), strconv.Itoa(sum.PrefixExcludedB)},
		{"Excluded by status", strconv.Itoa(sum.StatusExcludedA), strconv.Itoa(sum.StatusExcludedB)},
		{"Duplicates", strconv.Itoa(sum.DuplicatesA), strconv.Itoa(sum.DuplicatesB)},
		{"Compared", strconv.Itoa(sum.TotalA), strconv.Itoa(sum.TotalB)},
		{"Sample IDs", strings.Join(diag.SampleIDsA, " "), strings.Join(diag.SampleIDsB, " ")},
		{"Sample codes", strings.Join(diag.SampleCodesA, " "), strings.Join(diag.SampleCodesB, " ")},
		{"Columns", strings.Join(run.Result.ColumnsA, " | "), strings.Join(run.Result.ColumnsB, " | ")},
	}
}

func statusNote(run *core.Run) string {
	s := run.Settings
	diag := run.Result.Diagnostics
	switch {
	case !s.StatusRuleEnabled():
		return "Status rule not configured."
	case !diag.StatusRuleApplied:
		return fmt.Sprintf("Status column %q not found in %s; status rule skipped.", s.StatusColumn, s.SourceB.Label)
	default:
		return fmt.Sprintf("%d IDs matched %q in %q.", diag.InactiveIDs, s.StatusMarker, s.StatusColumn)
	}
}
