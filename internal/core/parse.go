package core

// parse.go decodes uploaded bytes into a typed Table.
//
// Parsing is strict where the input is ambiguous:
//  1. A UTF-8 BOM is skipped; any other invalid UTF-8 rejects the file
//  2. Standard CSV quoting rules apply; ragged rows reject the file
//  3. Headers are made unique ("views", "views.1") and blank headers named
//
// Column types are inferred once here and carried on the Column.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTable decodes CSV bytes with a header row into a Table.
func ParseTable(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}

	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, toParseError(err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	names := uniqueHeaders(header)
	table := &Table{Columns: make([]*Column, len(names))}
	raw := make([]string, len(rows))
	for i, name := range names {
		for r, row := range rows {
			raw[r] = row[i]
		}
		table.Columns[i] = BuildColumn(name, raw)
	}

	return table, nil
}

// BuildColumn infers the type of raw cell values and returns a typed column.
func BuildColumn(name string, raw []string) *Column {
	col := &Column{
		Name:  name,
		Type:  InferColumnType(raw),
		Cells: make([]Cell, len(raw)),
	}
	for i, s := range raw {
		if IsMissingToken(s) {
			col.Cells[i] = Cell{Missing: true}
			continue
		}
		cell := Cell{Text: s}
		if col.Type == ColumnNumeric {
			cell.Number, _ = ParseNumber(s)
		}
		col.Cells[i] = cell
	}
	return col
}

// InferColumnType classifies raw values: numeric if every non-missing value
// is a number, date if every non-missing value is a date, otherwise text.
// A column with no values at all is numeric.
func InferColumnType(raw []string) ColumnType {
	numeric, date := true, true
	present := 0
	for _, s := range raw {
		if IsMissingToken(s) {
			continue
		}
		present++
		if numeric {
			if _, ok := ParseNumber(s); !ok {
				numeric = false
			}
		}
		if date {
			if _, ok := ParseDate(s); !ok {
				date = false
			}
		}
		if !numeric && !date {
			return ColumnText
		}
	}
	switch {
	case numeric:
		return ColumnNumeric
	case date && present > 0:
		return ColumnDate
	default:
		return ColumnText
	}
}

// uniqueHeaders names blank headers "Unnamed: i" and suffixes duplicates
// with ".1", ".2", ... in order of appearance.
func uniqueHeaders(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))

	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for seen[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
