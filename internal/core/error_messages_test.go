package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"file too large", fmt.Errorf("%w: 11MB", ErrFileTooLarge), "FILE001"},
		{"parse error", &ParseError{Line: 3, Err: errors.New("wrong number of fields")}, "FILE002"},
		{"encoding", ErrEncoding, "FILE003"},
		{"no file", ErrNoFile, "FILE004"},
		{"empty file", ErrEmptyInput, "FILE005"},
		{"unsupported", ErrUnsupportedFile, "FILE006"},
		{"validation", &ValidationError{Errors: []string{"Found 1 negative view counts"}}, "VAL001"},
		{"bad column", &BadColumnError{Column: "x"}, "VAL002"},
		{"not found", fmt.Errorf("%w: file_3", ErrNotFound), "DS001"},
		{"busy", ErrTooManyUploads, "UPL001"},
		{"cancelled", fmt.Errorf("upload: %w", context.Canceled), "UPL002"},
		{"deadline", context.DeadlineExceeded, "UPL003"},
		{"rate limit text", errors.New("rate limit exceeded"), "RATE001"},
		{"plain text match", errors.New("http: request body too large"), "FILE001"},
		{"case insensitive", errors.New("INVALID CSV somewhere"), "FILE002"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err).Code; got != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrEncoding)
	want := "File contains invalid characters (Code: FILE003). Save file as UTF-8 encoding"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrNotFound, true},
		{errors.New("boom"), false},
	}

	for _, tt := range tests {
		if got := IsUserFacing(tt.err); got != tt.want {
			t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestDetails(t *testing.T) {
	err := fmt.Errorf("upload: %w", &ValidationError{Errors: []string{"a", "b"}})
	if got := Details(err); len(got) != 2 {
		t.Errorf("Details() = %v, want 2 items", got)
	}
	if got := Details(ErrNotFound); got != nil {
		t.Errorf("Details(ErrNotFound) = %v, want nil", got)
	}
}
