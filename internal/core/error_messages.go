package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. Users quote the code; support staff look it up here.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the upload exceeds the configured size limit
//	FILE002 - Invalid CSV: rows are malformed or inconsistent
//	FILE003 - Encoding error: the file is not UTF-8
//	FILE004 - No file: the request carried no file
//	FILE005 - Empty file: the file has no data rows
//	FILE006 - Unsupported type: the extension is not allowed
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Validation failed: the validator reported blocking errors
//	VAL002 - Column not found: a query named a column the dataset lacks
//
// # Dataset Errors (DS001-DS099)
//
//	DS001 - Dataset not found: the id was never issued
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - System busy: all upload slots are in use
//	UPL002 - Request cancelled
//	UPL003 - Request timeout
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Typed errors are matched first with errors.Is and errors.As. Anything else
// falls through to case-insensitive substring patterns, first match wins.

import (
	"context"
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

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure file is comma-separated with consistent columns",
		Code:    "FILE002",
	}
	msgEncoding = UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save file as UTF-8 encoding",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to upload",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a CSV file with data rows",
		Code:    "FILE005",
	}
	msgUnsupported = UserMessage{
		Message: "Only CSV files are allowed",
		Action:  "Export your analytics as .csv and upload again",
		Code:    "FILE006",
	}
	msgValidation = UserMessage{
		Message: "The file failed validation",
		Action:  "Fix the listed problems and upload again",
		Code:    "VAL001",
	}
	msgBadColumn = UserMessage{
		Message: "Column not found in dataset",
		Action:  "Pick one of the columns listed for this dataset",
		Code:    "VAL002",
	}
	msgNotFound = UserMessage{
		Message: "File not found",
		Action:  "Upload the file again to get a new id",
		Code:    "DS001",
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL002",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try uploading a smaller file or check your connection",
		Code:    "UPL003",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catch errors that crossed a boundary as plain text.
// Order matters: specific before general.
var errorPatterns = []errorPattern{
	{"file too large", msgFileTooLarge},
	{"request body too large", msgFileTooLarge},
	{"invalid csv", msgInvalidCSV},
	{"encoding error", msgEncoding},
	{"no file provided", msgNoFile},
	{"empty file", msgEmptyFile},
	{"unsupported file type", msgUnsupported},
	{"validation failed", msgValidation},
	{"column not found", msgBadColumn},
	{"dataset not found", msgNotFound},
	{"too many concurrent uploads", msgBusy},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgTimeout},
	{"rate limit", msgRateLimited},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(fmt.Errorf("%w: file_9", ErrNotFound))
//	// msg.Code == "DS001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		parseErr  *ParseError
		validErr  *ValidationError
		columnErr *BadColumnError
	)
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return msgFileTooLarge
	case errors.As(err, &parseErr):
		return msgInvalidCSV
	case errors.Is(err, ErrEncoding):
		return msgEncoding
	case errors.Is(err, ErrNoFile):
		return msgNoFile
	case errors.Is(err, ErrEmptyInput):
		return msgEmptyFile
	case errors.Is(err, ErrUnsupportedFile):
		return msgUnsupported
	case errors.As(err, &validErr):
		return msgValidation
	case errors.As(err, &columnErr):
		return msgBadColumn
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.Is(err, ErrTooManyUploads):
		return msgBusy
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// Details returns the itemised problems carried by err, if any.
// Validation failures list every blocking error.
func Details(err error) []string {
	var validErr *ValidationError
	if errors.As(err, &validErr) {
		return validErr.Errors
	}
	return nil
}
