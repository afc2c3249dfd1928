package core

// validation.go checks an uploaded table before it is cleaned and stored.
//
// Problems fall into two buckets:
//  1. Errors block the upload (empty table, negative views)
//  2. Warnings are returned with a successful upload (missing optional
//     columns, missing cells)
//
// Validation never stops at the first error except for an empty table,
// so the caller sees every blocking problem at once.

import (
	"fmt"
	"strings"
)

// ExpectedColumns are the columns an audience export normally carries.
// None are required; absent ones only produce a warning.
var ExpectedColumns = []string{
	"views", "watch_time", "country", "age_group",
	"gender", "device_type", "traffic_source",
}

// NumericColumns must hold numbers; other values are coerced to missing.
var NumericColumns = []string{"views", "watch_time"}

// ValidationReport is the outcome of validating a table.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Summary  Summary  `json:"summary"`

	// MissingValues holds per-column missing counts when any cell is missing.
	MissingValues []ColumnCount `json:"missing_values,omitempty"`
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

func (r *ValidationReport) addError(format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationReport) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate inspects t and reports blocking errors and advisory warnings.
//
// Columns listed in NumericColumns that were not inferred as numeric are
// coerced in place: values that are not numbers, dates included, become
// missing. Coercion alone never rejects a file.
func Validate(t *Table) ValidationReport {
	report := ValidationReport{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
		Summary:  Summarize(t),
	}

	if t.RowCount() == 0 {
		report.addError("CSV file is empty")
		return report
	}

	var missingCols []string
	for _, name := range ExpectedColumns {
		if !t.Has(name) {
			missingCols = append(missingCols, name)
		}
	}
	if len(missingCols) > 0 {
		report.addWarning("Missing optional columns: %s", strings.Join(missingCols, ", "))
	}

	for _, name := range NumericColumns {
		col := t.Column(name)
		if col == nil || col.Type == ColumnNumeric {
			continue
		}
		coerceNumeric(col)
	}

	counts, total := missingCounts(t)
	if total > 0 {
		report.MissingValues = counts
		report.addWarning("Missing values found: %s", formatCounts(counts))
	}

	if col := t.Column("views"); col != nil && col.Type == ColumnNumeric {
		negative := 0
		for _, c := range col.Cells {
			if !c.Missing && c.Number < 0 {
				negative++
			}
		}
		if negative > 0 {
			report.addError("Found %d negative view counts", negative)
		}
	}

	return report
}

// coerceNumeric converts a text or date column to numeric in place.
// Values that are not numbers become missing.
func coerceNumeric(col *Column) {
	for i, c := range col.Cells {
		if c.Missing {
			continue
		}
		if f, ok := ParseNumber(c.Text); ok {
			col.Cells[i].Number = f
		} else {
			col.Cells[i] = Cell{Missing: true}
		}
	}
	col.Type = ColumnNumeric
}

// missingCounts returns per-column missing counts in column order.
func missingCounts(t *Table) ([]ColumnCount, int) {
	counts := make([]ColumnCount, len(t.Columns))
	total := 0
	for i, col := range t.Columns {
		n := 0
		for _, c := range col.Cells {
			if c.Missing {
				n++
			}
		}
		counts[i] = ColumnCount{Column: col.Name, Count: n}
		total += n
	}
	return counts, total
}

func formatCounts(counts []ColumnCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s: %d", c.Column, c.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
