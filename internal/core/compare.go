package core

// Dedupe keeps the first record of every identifier, preserving order, and
// returns how many later duplicates were dropped.
func Dedupe(records []Record) ([]Record, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))

	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

// Compare computes the four result sets from two de-duplicated,
// exclusion-filtered record sets. Output keeps input row order; divergent
// pairs follow Source A's order. Pure: neither input is modified.
func Compare(a, b []Record) *Result {
	res := &Result{
		NoPosition: make([]Record, 0),
		AOnly:      make([]Record, 0),
		BOnly:      make([]Record, 0),
		Divergent:  make([]DivergentPair, 0),
	}

	idsA := indexByID(a)
	idsB := indexByID(b)

	for _, r := range a {
		if !r.HasPosition() {
			res.NoPosition = append(res.NoPosition, r)
		}

		other, inB := idsB[r.ID]
		if !inB {
			res.AOnly = append(res.AOnly, r)
			continue
		}

		if r.HasPosition() && other.HasPosition() && r.PositionCode != other.PositionCode {
			res.Divergent = append(res.Divergent, DivergentPair{ID: r.ID, A: r, B: other})
		}
	}

	for _, r := range b {
		if _, inA := idsA[r.ID]; !inA {
			res.BOnly = append(res.BOnly, r)
		}
	}

	res.Summary = Summary{
		NoPosition: len(res.NoPosition),
		AOnly:      len(res.AOnly),
		BOnly:      len(res.BOnly),
		Divergent:  len(res.Divergent),
		TotalA:     len(a),
		TotalB:     len(b),
	}
	return res
}

// indexByID maps identifiers to their first record.
func indexByID(records []Record) map[string]Record {
	idx := make(map[string]Record, len(records))
	for _, r := range records {
		if _, ok := idx[r.ID]; !ok {
			idx[r.ID] = r
		}
	}
	return idx
}
