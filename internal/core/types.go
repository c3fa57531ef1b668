package core

// Source identifies which export a record came from.
type Source string

const (
	SourceA Source = "A"
	SourceB Source = "B"
)

// Table is one source's grid after header detection.
// Columns are normalized; each row is padded to len(Columns).
type Table struct {
	Source    Source
	Columns   []string
	Rows      [][]string
	Lines     []int // 1-based spreadsheet line of each row
	HeaderRow int   // 0-based index of the header in the raw grid
}

// Record is one row after normalization.
type Record struct {
	ID           string   `json:"id"`
	PositionCode string   `json:"positionCode"` // 8 digits, or "" for no position
	Source       Source   `json:"source"`
	Line         int      `json:"line"`
	Fields       []string `json:"fields"` // original cells aligned to the table's columns
}

// HasPosition reports whether the record carries a position code.
func (r Record) HasPosition() bool {
	return r.PositionCode != ""
}

// DivergentPair is an identifier present in both sources whose position
// codes differ.
type DivergentPair struct {
	ID string `json:"id"`
	A  Record `json:"a"`
	B  Record `json:"b"`
}

// Result holds the four comparison sets of one run.
type Result struct {
	NoPosition []Record        `json:"noPosition"`
	AOnly      []Record        `json:"aOnly"`
	BOnly      []Record        `json:"bOnly"`
	Divergent  []DivergentPair `json:"divergent"`

	// ColumnsA and ColumnsB are the normalized headers of each source,
	// used to render and export the original fields of each record.
	ColumnsA []string `json:"columnsA"`
	ColumnsB []string `json:"columnsB"`

	Summary     Summary     `json:"summary"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Empty reports whether all four result sets are empty. An empty result is
// a valid outcome: the two sources agree.
func (r *Result) Empty() bool {
	return len(r.NoPosition) == 0 && len(r.AOnly) == 0 &&
		len(r.BOnly) == 0 && len(r.Divergent) == 0
}

// Summary carries the counts shown above the result tables.
type Summary struct {
	NoPosition int `json:"noPosition"`
	AOnly      int `json:"aOnly"`
	BOnly      int `json:"bOnly"`
	Divergent  int `json:"divergent"`

	// TotalA and TotalB count records after filtering and de-duplication.
	TotalA int `json:"totalA"`
	TotalB int `json:"totalB"`

	RowsA int `json:"rowsA"` // data rows read below the header
	RowsB int `json:"rowsB"`

	EmptyIDA int `json:"emptyIdA"` // rows dropped for lacking an identifier
	EmptyIDB int `json:"emptyIdB"`

	PrefixExcludedA int `json:"prefixExcludedA"`
	PrefixExcludedB int `json:"prefixExcludedB"`
	StatusExcludedA int `json:"statusExcludedA"`
	StatusExcludedB int `json:"statusExcludedB"`

	DuplicatesA int `json:"duplicatesA"`
	DuplicatesB int `json:"duplicatesB"`
}

// Diagnostics describes how the inputs were interpreted. It backs the
// "what did the tool see" panel and the CLI's verbose output.
type Diagnostics struct {
	HeaderRowA int `json:"headerRowA"`
	HeaderRowB int `json:"headerRowB"`

	SampleIDsA   []string `json:"sampleIdsA"`
	SampleIDsB   []string `json:"sampleIdsB"`
	SampleCodesA []string `json:"sampleCodesA"`
	SampleCodesB []string `json:"sampleCodesB"`

	StatusRuleApplied bool `json:"statusRuleApplied"`
	InactiveIDs       int  `json:"inactiveIds"`
}
