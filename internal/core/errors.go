package core

import (
	"errors"
	"fmt"
	"strings"
)

// HeaderNotFoundError is returned when no row in the scan window contains
// all required columns.
type HeaderNotFoundError struct {
	Source   Source
	Label    string
	Required []string
	Window   int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s file: header row not found in first %d rows (expected columns: %s)",
		e.Label, e.Window, strings.Join(e.Required, ", "))
}

// MissingColumnError is returned when a source lacks required columns after
// normalization.
type MissingColumnError struct {
	Source   Source
	Label    string
	Missing  []string
	Expected []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s file: missing required column(s): %s (expected: %s)",
		e.Label, strings.Join(e.Missing, ", "), strings.Join(e.Expected, ", "))
}

var (
	// ErrRunNotFound is returned when a run ID is unknown or has expired.
	ErrRunNotFound = errors.New("run not found")

	// ErrNoFile is returned when one of the two uploads is missing.
	ErrNoFile = errors.New("no file provided")
)
