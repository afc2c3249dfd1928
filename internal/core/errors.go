package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEncoding is returned when uploaded bytes are not valid UTF-8.
	ErrEncoding = errors.New("encoding error: file is not valid UTF-8")

	// ErrEmptyInput is returned when a file has no data rows.
	ErrEmptyInput = errors.New("empty file: no data rows found")

	// ErrNotFound is returned for an id the store never issued.
	ErrNotFound = errors.New("dataset not found")

	// ErrUnsupportedFile is returned for uploads with a disallowed extension.
	ErrUnsupportedFile = errors.New("unsupported file type: only CSV files are allowed")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file provided")
)

// ParseError reports malformed delimited text.
type ParseError struct {
	Line int // 1-based line in the input, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError carries the blocking problems that rejected an upload.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// BadColumnError is returned when a query names a column the dataset lacks.
type BadColumnError struct {
	Column string
}

func (e *BadColumnError) Error() string {
	return fmt.Sprintf("column not found: %q", e.Column)
}
