package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/recon/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// SummaryRow is one line of the result overview: a set name and its size.
type SummaryRow struct {
	Name  string
	Count int
}

// SummaryRows lists the four result sets with the same titles the workbook
// uses for its sheets.
func SummaryRows(res *core.Result, s core.Settings) []SummaryRow {
	names := Names(s)
	return []SummaryRow{
		{names.NoPosition, res.Summary.NoPosition},
		{names.AOnly, res.Summary.AOnly},
		{names.BOnly, res.Summary.BOnly},
		{names.Divergent, res.Summary.Divergent},
	}
}

// WriteSummary prints the result counts and the input diagnostics of a run.
func WriteSummary(w io.Writer, res *core.Result, s core.Settings) error {
	a, b := s.SourceA.Label, s.SourceB.Label
	sum := res.Summary
	diag := res.Diagnostics

	counts := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Result", "Records")
	for _, row := range SummaryRows(res, s) {
		counts.Row(row.Name, strconv.Itoa(row.Count))
	}

	inputs := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", a, b).
		Row("Header row", strconv.Itoa(diag.HeaderRowA+1), strconv.Itoa(diag.HeaderRowB+1)).
		Row("Data rows", strconv.Itoa(sum.RowsA), strconv.Itoa(sum.RowsB)).
		Row("Without ID", strconv.Itoa(sum.EmptyIDA), strconv.Itoa(sum.EmptyIDB)).
		Row("Excluded by prefix", strconv.Itoa(sum.PrefixExcludedA), strconv.Itoa(sum.PrefixExcludedB)).
		Row("Excluded by status", strconv.Itoa(sum.StatusExcludedA), strconv.Itoa(sum.StatusExcludedB)).
		Row("Duplicates", strconv.Itoa(sum.DuplicatesA), strconv.Itoa(sum.DuplicatesB)).
		Row("Compared", strconv.Itoa(sum.TotalA), strconv.Itoa(sum.TotalB)).
		Row("Sample IDs", strings.Join(diag.SampleIDsA, " "), strings.Join(diag.SampleIDsB, " ")).
		Row("Sample codes", strings.Join(diag.SampleCodesA, " "), strings.Join(diag.SampleCodesB, " "))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s x %s", a, b)))
	sb.WriteString("\n")
	sb.WriteString(counts.String())
	sb.WriteString("\n")
	if res.Empty() {
		sb.WriteString("No differences found.\n")
	}
	sb.WriteString(inputs.String())
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(statusNote(s, diag)))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func statusNote(s core.Settings, diag core.Diagnostics) string {
	switch {
	case !s.StatusRuleEnabled():
		return "Status rule: not configured"
	case !diag.StatusRuleApplied:
		return fmt.Sprintf("Status rule: column %q not found in %s, skipped", s.StatusColumn, s.SourceB.Label)
	default:
		return fmt.Sprintf("Status rule: %d %s IDs matched %q in %q",
			diag.InactiveIDs, s.SourceB.Label, s.StatusMarker, s.StatusColumn)
	}
}
