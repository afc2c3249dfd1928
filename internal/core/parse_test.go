package core

import (
	"encoding/csv"
	"errors"
	"reflect"
	"testing"
)

// mustParse parses data or fails the test.
func mustParse(t *testing.T, data string) *Table {
	t.Helper()
	tbl, err := ParseTable([]byte(data))
	if err != nil {
		t.Fatalf("ParseTable(%q) error = %v", data, err)
	}
	return tbl
}

func TestParseTable(t *testing.T) {
	tbl := mustParse(t, "views,country,date\n10,US,2024-01-01\n5,FR,2024-01-02\n")

	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if got, want := tbl.ColumnNames(), []string{"views", "country", "date"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnNames() = %v, want %v", got, want)
	}

	types := map[string]ColumnType{
		"views":   ColumnNumeric,
		"country": ColumnText,
		"date":    ColumnDate,
	}
	for name, want := range types {
		if got := tbl.Column(name).Type; got != want {
			t.Errorf("Column(%q).Type = %v, want %v", name, got, want)
		}
	}

	if got := tbl.Column("views").Cells[1].Number; got != 5 {
		t.Errorf("views[1] = %v, want 5", got)
	}
}

func TestParseTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", []byte(""), ErrEmptyInput},
		{"header only", []byte("views,country\n"), ErrEmptyInput},
		{"invalid utf8", []byte("views\n\xff\xfe\n"), ErrEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseTable_RaggedRows(t *testing.T) {
	_, err := ParseTable([]byte("views,country\n10\n"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseTable() error = %v, want *ParseError", err)
	}
	if !errors.Is(err, csv.ErrFieldCount) {
		t.Errorf("ParseTable() error = %v, want to wrap csv.ErrFieldCount", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", parseErr.Line)
	}
}

func TestParseTable_SkipsBOM(t *testing.T) {
	tbl := mustParse(t, "\xEF\xBB\xBFviews\n1\n")
	if tbl.Column("views") == nil {
		t.Errorf("ColumnNames() = %v, want views without BOM", tbl.ColumnNames())
	}
}

func TestParseTable_MissingTokens(t *testing.T) {
	tbl := mustParse(t, "views,country\nNA,US\n3,\nnull,N/A\n")

	views := tbl.Column("views")
	if views.Type != ColumnNumeric {
		t.Errorf("views.Type = %v, want numeric", views.Type)
	}
	wantViews := []bool{true, false, true}
	for i, want := range wantViews {
		if got := views.Cells[i].Missing; got != want {
			t.Errorf("views[%d].Missing = %v, want %v", i, got, want)
		}
	}

	country := tbl.Column("country")
	wantCountry := []bool{false, true, true}
	for i, want := range wantCountry {
		if got := country.Cells[i].Missing; got != want {
			t.Errorf("country[%d].Missing = %v, want %v", i, got, want)
		}
	}
}

func TestUniqueHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"distinct", []string{"a", "b"}, []string{"a", "b"}},
		{"duplicates", []string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{"blank", []string{"a", "", "b"}, []string{"a", "Unnamed: 1", "b"}},
		{"suffix collision", []string{"a", "a.1", "a"}, []string{"a", "a.1", "a.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uniqueHeaders(tt.header); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("uniqueHeaders(%v) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want ColumnType
	}{
		{"integers", []string{"1", "2", "3"}, ColumnNumeric},
		{"floats with missing", []string{"1.5", "", "NA"}, ColumnNumeric},
		{"all missing", []string{"", "NA"}, ColumnNumeric},
		{"iso dates", []string{"2024-01-01", "2024-02-29"}, ColumnDate},
		{"us dates", []string{"1/15/2024", "12/31/2023"}, ColumnDate},
		{"mixed", []string{"1", "abc"}, ColumnText},
		{"text", []string{"mobile", "desktop"}, ColumnText},
		{"hex floats", []string{"0x1p4", "0x10"}, ColumnText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferColumnType(tt.raw); got != tt.want {
				t.Errorf("InferColumnType(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
