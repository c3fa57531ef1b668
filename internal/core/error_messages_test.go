package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "file too large maps correctly",
			err:         errors.New("file too large: 40MB exceeds limit"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit",
		},
		{
			name:        "legacy xls maps to unsupported format",
			err:         fmt.Errorf("source A: %w", errors.New("unsupported file format: legacy .xls")),
			wantCode:    "FILE002",
			wantMessage: "File is not a supported spreadsheet",
		},
		{
			name:        "broken workbook maps correctly",
			err:         errors.New("invalid xlsx workbook: zip: not a valid zip file"),
			wantCode:    "FILE002",
			wantMessage: "The workbook could not be read",
		},
		{
			name:        "empty file maps correctly",
			err:         errors.New("empty file"),
			wantCode:    "FILE005",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "missing upload maps correctly",
			err:         ErrNoFile,
			wantCode:    "FILE004",
			wantMessage: "Both files are required",
		},
		{
			name:        "limiter rejection maps correctly",
			err:         ErrTooManyRuns,
			wantCode:    "UPL002",
			wantMessage: "Too many reconciliations in progress",
		},
		{
			name:        "expired run maps correctly",
			err:         ErrRunNotFound,
			wantCode:    "UPL003",
			wantMessage: "This result is no longer available",
		},
		{
			name:        "deadline maps correctly",
			err:         fmt.Errorf("decode: %w", context.DeadlineExceeded),
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "unknown profile maps correctly",
			err:         errors.New(`unknown profile "nope"`),
			wantCode:    "TBL002",
			wantMessage: "Unknown reconciliation profile",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("EMPTY FILE"),
			wantCode:    "FILE005",
			wantMessage: "The uploaded file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_HeaderNotFound(t *testing.T) {
	err := fmt.Errorf("reconcile: %w", &HeaderNotFoundError{
		Source:   SourceA,
		Label:    "CSOD",
		Required: []string{"ID do Usuário", "Posição ID"},
		Window:   10,
	})

	got := MapError(err)
	if got.Code != "HDR001" {
		t.Fatalf("code = %q, want HDR001", got.Code)
	}
	if !strings.Contains(got.Message, "CSOD") {
		t.Errorf("message %q should name the source", got.Message)
	}
	if !strings.Contains(got.Action, "ID do Usuário, Posição ID") || !strings.Contains(got.Action, "10") {
		t.Errorf("action %q should list expected columns and window", got.Action)
	}
}

func TestMapError_MissingColumn(t *testing.T) {
	err := &MissingColumnError{
		Source:   SourceB,
		Label:    "SAP",
		Missing:  []string{"Cargo - Cód."},
		Expected: []string{"NP", "Cargo - Cód."},
	}

	got := MapError(err)
	if got.Code != "VAL004" {
		t.Fatalf("code = %q, want VAL004", got.Code)
	}
	if !strings.Contains(got.Message, "Cargo - Cód.") {
		t.Errorf("message %q should name the missing column", got.Message)
	}
	if !strings.Contains(got.Action, "NP, Cargo - Cód.") {
		t.Errorf("action %q should list expected columns", got.Action)
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(errors.New("empty file"))

	expected := "The uploaded file is empty (Code: FILE005). Export the report again and upload the new file"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  errors.New("empty file"),
			want: true,
		},
		{
			name: "typed header error is user facing",
			err:  &HeaderNotFoundError{Label: "A", Window: 10},
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
