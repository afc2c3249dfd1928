package core

import "time"

// ColumnType is the inferred type of a table column.
// The parser assigns it once; the cleaner, insight engine and chart adapter
// read it instead of re-inferring.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnNumeric
	ColumnDate
)

// String returns the name used in API responses.
func (t ColumnType) String() string {
	switch t {
	case ColumnNumeric:
		return "numeric"
	case ColumnDate:
		return "date"
	default:
		return "text"
	}
}

// MarshalText lets ColumnType appear as a string in JSON.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnknownValue fills missing text and date cells during cleaning.
const UnknownValue = "Unknown"

// Cell is a single table value.
// Text always holds the string form; Number is meaningful only in numeric columns.
type Cell struct {
	Text    string
	Number  float64
	Missing bool
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// Value returns the JSON-friendly value of row i: nil when missing,
// float64 for numeric columns, string otherwise.
func (c *Column) Value(i int) any {
	cell := c.Cells[i]
	if cell.Missing {
		return nil
	}
	if c.Type == ColumnNumeric {
		return cell.Number
	}
	return cell.Text
}

// Table is an in-memory columnar dataset. Every column has the same length.
type Table struct {
	Columns []*Column
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	if t == nil {
		return nil
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Has reports whether the table contains every named column.
func (t *Table) Has(names ...string) bool {
	for _, n := range names {
		if t.Column(n) == nil {
			return false
		}
	}
	return true
}

// Record returns row i as a column name -> value map.
func (t *Table) Record(i int) map[string]any {
	rec := make(map[string]any, len(t.Columns))
	for _, c := range t.Columns {
		rec[c.Name] = c.Value(i)
	}
	return rec
}

// Summary describes the shape of a table.
type Summary struct {
	TotalRows    int      `json:"total_rows"`
	TotalColumns int      `json:"total_columns"`
	Columns      []string `json:"columns"`
}

// Summarize returns the shape of t.
func Summarize(t *Table) Summary {
	cols := t.ColumnNames()
	if cols == nil {
		cols = []string{}
	}
	return Summary{
		TotalRows:    t.RowCount(),
		TotalColumns: len(cols),
		Columns:      cols,
	}
}

// Dataset is a stored canonical table with its upload metadata.
type Dataset struct {
	ID         string
	FileName   string
	UploadedAt time.Time
	Table      *Table
}

// DatasetInfo is a lightweight listing entry for a stored dataset.
type DatasetInfo struct {
	ID         string    `json:"file_id"`
	FileName   string    `json:"filename"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadResult is returned for an accepted upload.
type UploadResult struct {
	Message         string   `json:"message"`
	ID              string   `json:"file_id"`
	FileName        string   `json:"filename"`
	RowsProcessed   int      `json:"rows_processed"`
	Columns         []string `json:"columns"`
	Warnings        []string `json:"validation_warnings"`
	Summary         Summary  `json:"summary"`
	ArchiveLocation string   `json:"archive_location,omitempty"`
}

// ColumnsPreview describes a stored dataset's columns and first rows.
type ColumnsPreview struct {
	Columns    []string              `json:"columns"`
	DataTypes  map[string]ColumnType `json:"data_types"`
	SampleData []map[string]any      `json:"sample_data"`
}

// PreviewRows is the number of sample rows in a ColumnsPreview.
const PreviewRows = 5
