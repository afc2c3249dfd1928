package core

import (
	"strings"
	"testing"
)

const fullHeader = "views,watch_time,country,age_group,gender,device_type,traffic_source\n"

func TestValidate_EmptyTable(t *testing.T) {
	report := Validate(&Table{})

	if report.IsValid {
		t.Error("IsValid = true, want false")
	}
	if len(report.Errors) != 1 || report.Errors[0] != "CSV file is empty" {
		t.Errorf("Errors = %v, want [CSV file is empty]", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", report.Warnings)
	}
}

func TestValidate_MissingColumnsSingleWarning(t *testing.T) {
	tbl := mustParse(t, "views,watch_time,country,age_group,device_type\n10,1.5,US,18-24,mobile\n")
	report := Validate(tbl)

	if !report.IsValid {
		t.Errorf("IsValid = false, errors = %v", report.Errors)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", report.Warnings)
	}
	w := report.Warnings[0]
	if !strings.Contains(w, "gender") || !strings.Contains(w, "traffic_source") {
		t.Errorf("warning %q does not list both missing columns", w)
	}
	if w != "Missing optional columns: gender, traffic_source" {
		t.Errorf("warning = %q", w)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantValid    bool
		wantErrors   []string
		wantWarnings int
	}{
		{
			name:      "complete table",
			data:      fullHeader + "10,1.5,US,18-24,F,mobile,search\n",
			wantValid: true,
		},
		{
			name:       "negative views",
			data:       fullHeader + "-1,1,US,18-24,F,mobile,search\n-2,1,US,18-24,F,mobile,search\n5,1,US,18-24,F,mobile,search\n",
			wantValid:  false,
			wantErrors: []string{"Found 2 negative view counts"},
		},
		{
			name:         "date typed views coerced",
			data:         fullHeader + "2024-01-01,1,US,18-24,F,mobile,search\n",
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "text views coerced",
			data:         fullHeader + "10,1,US,18-24,F,mobile,search\nlots,1,US,18-24,F,mobile,search\n",
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "missing values only warn",
			data:         fullHeader + "10,,US,,F,mobile,search\n",
			wantValid:    true,
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Validate(mustParse(t, tt.data))

			if report.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (errors %v)", report.IsValid, tt.wantValid, report.Errors)
			}
			if len(report.Errors) != len(tt.wantErrors) {
				t.Fatalf("Errors = %v, want %v", report.Errors, tt.wantErrors)
			}
			for i, want := range tt.wantErrors {
				if report.Errors[i] != want {
					t.Errorf("Errors[%d] = %q, want %q", i, report.Errors[i], want)
				}
			}
			if len(report.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", report.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestValidate_CoercesTextViews(t *testing.T) {
	tbl := mustParse(t, fullHeader+"10,1,US,18-24,F,mobile,search\nlots,1,US,18-24,F,mobile,search\n")
	Validate(tbl)

	views := tbl.Column("views")
	if views.Type != ColumnNumeric {
		t.Fatalf("views.Type = %v, want numeric", views.Type)
	}
	if views.Cells[0].Number != 10 {
		t.Errorf("views[0] = %v, want 10", views.Cells[0].Number)
	}
	if !views.Cells[1].Missing {
		t.Error("views[1] not missing after coercion")
	}
}

func TestValidate_CoercesDateViews(t *testing.T) {
	tbl := mustParse(t, "views,country\n2024-01-01,US\n2024-01-02,FR\n")
	if tbl.Column("views").Type != ColumnDate {
		t.Fatalf("views inferred as %v, want date", tbl.Column("views").Type)
	}

	report := Validate(tbl)
	if !report.IsValid {
		t.Fatalf("IsValid = false, errors = %v", report.Errors)
	}

	views := tbl.Column("views")
	if views.Type != ColumnNumeric {
		t.Errorf("views.Type = %v, want numeric", views.Type)
	}
	for i, c := range views.Cells {
		if !c.Missing {
			t.Errorf("views[%d] = %+v, want missing", i, c)
		}
	}

	cleaned := Clean(tbl)
	if got := GenerateInsights(cleaned).TotalViews; got == nil || *got != 0 {
		t.Errorf("TotalViews = %v, want 0", got)
	}
}

func TestValidate_MissingValuesWarning(t *testing.T) {
	tbl := mustParse(t, "views,country\n10,\nNA,\n")
	report := Validate(tbl)

	var got string
	for _, w := range report.Warnings {
		if strings.HasPrefix(w, "Missing values found") {
			got = w
		}
	}
	if want := "Missing values found: {views: 1, country: 2}"; got != want {
		t.Errorf("missing values warning = %q, want %q", got, want)
	}
	if len(report.MissingValues) != 2 {
		t.Errorf("MissingValues = %v, want 2 entries", report.MissingValues)
	}
}
