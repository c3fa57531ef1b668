package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. Users quote the code; support staff look it up here.
//
// # Header and column errors
//
//	HDR001 - Header row not found in the Source A file
//	         Action: Check the first rows contain the identifier and position columns
//	         Type: *HeaderNotFoundError
//
//	VAL004 - Required column missing
//	         Action: Check the export includes the expected columns
//	         Type: *MissingColumnError, pattern "missing required column"
//
//	VAL007 - Invalid settings
//	         Action: Fix the profile or environment overrides
//	         Patterns: "invalid settings"
//
// # File errors
//
//	FILE001 - File too large                Patterns: "file too large", "request body too large"
//	FILE002 - Not a readable spreadsheet    Patterns: "unsupported file format", "invalid xlsx", "invalid csv"
//	FILE003 - Encoding problem              Patterns: "encoding error"
//	FILE004 - A file was not selected       Patterns: "no file provided"
//	FILE005 - Empty file                    Patterns: "empty file"
//
// # Run errors
//
//	UPL001 - Upload form unreadable             Patterns: "parse upload form"
//	UPL002 - Too many reconciliations running   Patterns: "too many concurrent runs"
//	UPL003 - Result expired                     Patterns: "run not found"
//	UPL004 - Request cancelled                  Patterns: "context canceled"
//	UPL005 - Request timed out                  Patterns: "context deadline exceeded"
//
// # Profiles and rate limiting
//
//	TBL002  - Unknown profile     Patterns: "unknown profile"
//	RATE001 - Too many requests   Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check application logs for the
// original technical error.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Column and settings errors
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the file",
			Action:  "Check that the export includes the expected columns",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid settings",
		msg: UserMessage{
			Message: "The reconciliation settings are incomplete",
			Action:  "Fix the profile or its environment overrides",
			Code:    "VAL007",
		},
	},

	// =========================================================================
	// File errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Remove unused sheets or columns and export again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Remove unused sheets or columns and export again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "File is not a supported spreadsheet",
			Action:  "Save the file as .xlsx or .csv",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "The workbook could not be read",
			Action:  "Open the file in Excel and save it again as .xlsx",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The text file could not be read as a table",
			Action:  "Ensure the file is delimited with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "Both files are required",
			Action:  "Select one file for each source",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Export the report again and upload the new file",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Run errors (UPL001-UPL005)
	// =========================================================================
	{
		pattern: "parse upload form",
		msg: UserMessage{
			Message: "The upload could not be read",
			Action:  "Submit both files using the form on the upload page",
			Code:    "UPL001",
		},
	},
	{
		pattern: "too many concurrent runs",
		msg: UserMessage{
			Message: "Too many reconciliations in progress",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "run not found",
		msg: UserMessage{
			Message: "This result is no longer available",
			Action:  "Upload the two files again to rebuild it",
			Code:    "UPL003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try again; if it persists, check the files are not unusually large",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Profiles and rate limiting
	// =========================================================================
	{
		pattern: "unknown profile",
		msg: UserMessage{
			Message: "Unknown reconciliation profile",
			Action:  "Choose one of the listed profiles",
			Code:    "TBL002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Header and column errors produce messages naming the file and the expected
// columns; everything else is matched against known patterns
// (case-insensitive), falling back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var hnf *HeaderNotFoundError
	if errors.As(err, &hnf) {
		return UserMessage{
			Message: fmt.Sprintf("Header row not found in the %s file", hnf.Label),
			Action: fmt.Sprintf("Check that one of the first %d rows contains the columns: %s",
				hnf.Window, strings.Join(hnf.Required, ", ")),
			Code: "HDR001",
		}
	}

	var mce *MissingColumnError
	if errors.As(err, &mce) {
		return UserMessage{
			Message: fmt.Sprintf("The %s file is missing required column(s): %s",
				mce.Label, strings.Join(mce.Missing, ", ")),
			Action: fmt.Sprintf("The %s export must contain the columns: %s",
				mce.Label, strings.Join(mce.Expected, ", ")),
			Code: "VAL004",
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback. User-facing errors are problems with the
// input, not with the service.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
