package core

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	in := []Record{
		rec(SourceA, "1", "00000001"),
		rec(SourceA, "2", ""),
		rec(SourceA, "1", "00000009"),
		rec(SourceA, "3", ""),
		rec(SourceA, "2", "00000002"),
	}

	out, dropped := Dedupe(in)

	if got := ids(out); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("ids = %v, want [1 2 3]", got)
	}
	if out[0].PositionCode != "00000001" {
		t.Errorf("first occurrence should win, got code %q", out[0].PositionCode)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestCompare(t *testing.T) {
	a := []Record{
		rec(SourceA, "1", "00000001"), // matches
		rec(SourceA, "2", "00000002"), // divergent
		rec(SourceA, "3", ""),         // no position, in B
		rec(SourceA, "4", "00000004"), // only in A
		rec(SourceA, "5", ""),         // no position, only in A
		rec(SourceA, "6", "00000006"), // B has no code
	}
	b := []Record{
		rec(SourceB, "1", "00000001"),
		rec(SourceB, "2", "00000020"),
		rec(SourceB, "3", "00000003"),
		rec(SourceB, "6", ""),
		rec(SourceB, "7", "00000007"),
	}

	res := Compare(a, b)

	if got := ids(res.NoPosition); !reflect.DeepEqual(got, []string{"3", "5"}) {
		t.Errorf("NoPosition = %v, want [3 5]", got)
	}
	if got := ids(res.AOnly); !reflect.DeepEqual(got, []string{"4", "5"}) {
		t.Errorf("AOnly = %v, want [4 5]", got)
	}
	if got := ids(res.BOnly); !reflect.DeepEqual(got, []string{"7"}) {
		t.Errorf("BOnly = %v, want [7]", got)
	}
	if len(res.Divergent) != 1 {
		t.Fatalf("Divergent = %+v, want one pair", res.Divergent)
	}
	d := res.Divergent[0]
	if d.ID != "2" || d.A.PositionCode != "00000002" || d.B.PositionCode != "00000020" {
		t.Errorf("unexpected pair %+v", d)
	}

	want := Summary{NoPosition: 2, AOnly: 2, BOnly: 1, Divergent: 1, TotalA: 6, TotalB: 5}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestCompare_Empty(t *testing.T) {
	res := Compare(nil, nil)

	if !res.Empty() {
		t.Error("Empty() = false for empty inputs")
	}
	if res.NoPosition == nil || res.AOnly == nil || res.BOnly == nil || res.Divergent == nil {
		t.Error("result slices should be non-nil")
	}
}

// Structural properties that must hold for any input.
func TestCompare_Properties(t *testing.T) {
	a := []Record{
		rec(SourceA, "10", "00000001"), rec(SourceA, "11", ""), rec(SourceA, "12", "00000003"),
		rec(SourceA, "13", "00000004"), rec(SourceA, "14", "00000005"),
	}
	b := []Record{
		rec(SourceB, "12", "00000003"), rec(SourceB, "13", "00000009"), rec(SourceB, "14", ""),
		rec(SourceB, "15", "00000001"), rec(SourceB, "11", "00000002"),
	}

	res := Compare(a, b)

	inA := make(map[string]bool)
	for _, r := range a {
		inA[r.ID] = true
	}
	inB := make(map[string]bool)
	for _, r := range b {
		inB[r.ID] = true
	}

	for _, r := range res.AOnly {
		if inB[r.ID] {
			t.Errorf("a_only id %s is present in B", r.ID)
		}
	}
	for _, r := range res.BOnly {
		if inA[r.ID] {
			t.Errorf("b_only id %s is present in A", r.ID)
		}
	}
	for _, d := range res.Divergent {
		if !inA[d.ID] || !inB[d.ID] {
			t.Errorf("divergent id %s not in both sources", d.ID)
		}
		if d.A.PositionCode == "" || d.B.PositionCode == "" || d.A.PositionCode == d.B.PositionCode {
			t.Errorf("divergent pair %s has codes %q/%q", d.ID, d.A.PositionCode, d.B.PositionCode)
		}
	}
	for _, r := range res.NoPosition {
		if r.HasPosition() {
			t.Errorf("no_position id %s has code %q", r.ID, r.PositionCode)
		}
	}

	// Duplicated input yields the same counts once de-duplicated.
	dupA, _ := Dedupe(append(append([]Record{}, a...), a...))
	dupB, _ := Dedupe(append(append([]Record{}, b...), b...))
	if again := Compare(dupA, dupB); again.Summary != res.Summary {
		t.Errorf("summary changed after duplicating input: %+v vs %+v", again.Summary, res.Summary)
	}
}
