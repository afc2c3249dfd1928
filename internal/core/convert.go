package core

// convert.go provides the value parsers shared by type inference, validation
// and aggregation:
//   - Missing-value tokens ("", "NA", "null", ...)
//   - Numbers (plain decimal and scientific notation)
//   - Dates (ISO 8601 first, then common US/EU layouts)
//
// Inference and cleaning must agree on what counts as numeric, so every
// caller goes through ParseNumber rather than strconv directly.

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// missingTokens are cell values read as missing, matching the defaults of
// common dataframe readers.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissingToken reports whether a raw cell value denotes a missing value.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// Date layouts. ISO forms come first since they are unambiguous.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006.01.02",
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
	"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
}

// ParseNumber parses a decimal numeric cell. Infinities, NaN and
// hexadecimal forms such as "0x1p4" are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || hasBasePrefix(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func hasBasePrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseDate parses a date cell using the supported layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatNumber renders a float the way it should appear in CSV output.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DisplayName turns a column name into a chart label:
// underscores become spaces and each word is title-cased.
//
//	DisplayName("watch_time") == "Watch Time"
func DisplayName(column string) string {
	s := strings.ReplaceAll(column, "_", " ")
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
