package core

// Clean returns the canonical form of t:
//  1. rows where every cell is missing are dropped
//  2. missing numeric cells become 0
//  3. missing text and date cells become UnknownValue
//
// Rows are dropped before filling so an empty row is never counted as filled.
// The input is not modified. Clean accepts any table, validated or not.
func Clean(t *Table) *Table {
	if t == nil {
		return &Table{}
	}

	keep := make([]int, 0, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		if !rowEmpty(t, i) {
			keep = append(keep, i)
		}
	}

	out := &Table{Columns: make([]*Column, len(t.Columns))}
	for ci, col := range t.Columns {
		cells := make([]Cell, len(keep))
		for j, i := range keep {
			cells[j] = fillCell(col.Type, col.Cells[i])
		}
		out.Columns[ci] = &Column{Name: col.Name, Type: col.Type, Cells: cells}
	}
	return out
}

func rowEmpty(t *Table, i int) bool {
	for _, col := range t.Columns {
		if !col.Cells[i].Missing {
			return false
		}
	}
	return true
}

func fillCell(typ ColumnType, c Cell) Cell {
	if !c.Missing {
		return c
	}
	if typ == ColumnNumeric {
		return Cell{Text: "0", Number: 0}
	}
	return Cell{Text: UnknownValue}
}
