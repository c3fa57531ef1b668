package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows(testResult(), testSettings("CSOD", "SAP"))

	assert.Equal(t, []SummaryRow{
		{"No position (CSOD)", 1},
		{"CSOD not in SAP", 2},
		{"SAP not in CSOD", 1},
		{"Divergent positions", 1},
	}, rows)
}

func TestWriteSummary(t *testing.T) {
	s := testSettings("CSOD", "SAP")
	s.StatusColumn = "Desc. C. Custo"
	s.StatusMarker = "afastad"

	res := testResult()
	res.Diagnostics.SampleIDsA = []string{"900", "0042"}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, res, s))

	out := buf.String()
	assert.Contains(t, out, "CSOD x SAP")
	assert.Contains(t, out, "Divergent positions")
	assert.Contains(t, out, "900 0042")
	assert.Contains(t, out, `column "Desc. C. Custo" not found in SAP`)
	assert.NotContains(t, out, "No differences found")
}

func TestWriteSummary_NoDifferences(t *testing.T) {
	s := testSettings("CSOD", "SAP")
	res := testResult()
	res.NoPosition, res.AOnly, res.BOnly, res.Divergent = nil, nil, nil, nil

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, res, s))

	assert.Contains(t, buf.String(), "No differences found.")
	assert.Contains(t, buf.String(), "Status rule: not configured")
}
