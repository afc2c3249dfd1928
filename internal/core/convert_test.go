package core

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"-7", -7, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
		{"1,000", 0, false},
		{"0x1p4", 0, false},
		{"-0X10", 0, false},
		{"0.5", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-01-15", "1/15/2024", "01/15/2024", "Jan 15, 2024", "2024/01/15"} {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseDate(in)
			if !ok || !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, %v, want %v", in, got, ok, want)
			}
		})
	}

	if _, ok := ParseDate("mobile"); ok {
		t.Error("ParseDate(mobile) succeeded")
	}
}

func TestIsMissingToken(t *testing.T) {
	for _, s := range []string{"", "NA", "N/A", "null", "NaN", "None", "<NA>"} {
		if !IsMissingToken(s) {
			t.Errorf("IsMissingToken(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "Unknown", "na ", "none"} {
		if IsMissingToken(s) {
			t.Errorf("IsMissingToken(%q) = true, want false", s)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"device_type": "Device Type",
		"views":       "Views",
		"WATCH_TIME":  "Watch Time",
		"age_group2":  "Age Group2",
	}

	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		10:    "10",
		1.5:   "1.5",
		0:     "0",
		-2.25: "-2.25",
	}

	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
