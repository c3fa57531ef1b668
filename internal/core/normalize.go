package core

// normalize.go turns human-edited spreadsheet cells into comparable keys.
//
// Both exports are maintained by hand and round-tripped through Excel, so the
// same value shows up in several shapes:
//   - column names with embedded line breaks, double spaces, decomposed accents
//   - identifiers as "12345", "12345.0", " 12345 ", ="12345"
//   - position codes as "00010203 - Analyst, 00020304 - Lead" or 10203.0

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// columnControlReplacer removes control characters Excel keeps inside
// wrapped header cells.
var columnControlReplacer = strings.NewReplacer("\n", "", "\r", "", "\t", "")

// NormalizeColumn canonicalizes a column name: embedded newlines, carriage
// returns and tabs are removed, whitespace runs collapse to one space, the
// result is trimmed and composed to Unicode NFC. Idempotent.
func NormalizeColumn(name string) string {
	name = columnControlReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return norm.NFC.String(name)
}

// NormalizeColumns applies NormalizeColumn to every name.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}

// NormalizeID extracts the canonical identifier from a cell: one trailing
// ".0" left by numeric coercion is dropped, then the first run of at least
// minDigits ASCII digits is returned. Returns "" when no such run exists.
// minDigits below 1 is treated as 1.
func NormalizeID(value string, minDigits int) string {
	s := strings.TrimSpace(CleanCell(value))
	s = strings.TrimSuffix(s, ".0")
	return firstDigitRun(s, max(minDigits, 1))
}

// PositionCodeA extracts the position code from a Source A position field.
//
// The field may list several "code - label" entries separated by commas;
// only the first entry counts and its code is the text before the first
// hyphen. When that text has no digits, the first run of
// PositionFallbackDigits or more digits anywhere in the field is used.
func PositionCodeA(field string) string {
	field = CleanCell(field)
	if field == "" {
		return ""
	}

	entry, _, _ := strings.Cut(field, ",")
	code, _, _ := strings.Cut(entry, "-")

	run := firstDigitRun(code, 1)
	if run == "" {
		run = firstDigitRun(field, PositionFallbackDigits)
	}
	return padCode(run)
}

// PositionCodeB converts a Source B position cell, expected to hold an
// integer or an integer-valued float ("10203", "10203.0", "1.0203E+04"),
// to a code. Fractions are truncated. Missing, negative or non-numeric
// input yields "".
func PositionCodeB(cell string) string {
	s := CleanCell(cell)
	if s == "" {
		return ""
	}
	// Decimal comma from pt-BR locales: "10203,0".
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= 1e15 {
		return ""
	}
	return padCode(strconv.FormatInt(int64(f), 10))
}

// IsCanonicalCode reports whether code is a valid normalized position code.
func IsCanonicalCode(code string) bool {
	if len(code) != PositionCodeWidth {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// padCode left-pads a digit run to PositionCodeWidth. Leading zeros beyond
// the width are dropped first; codes with more significant digits than the
// width cannot be represented and yield "".
func padCode(digits string) string {
	if digits == "" {
		return ""
	}
	trimmed := strings.TrimLeft(digits, "0")
	if len(trimmed) > PositionCodeWidth {
		return ""
	}
	return strings.Repeat("0", PositionCodeWidth-len(trimmed)) + trimmed
}

// firstDigitRun returns the first maximal run of ASCII digits in s that is at
// least minLen long.
func firstDigitRun(s string, minLen int) string {
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j-i >= minLen {
			return s[i:j]
		}
		i = j
	}
	return ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}
