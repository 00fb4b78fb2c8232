package xl

import (
	"iter"
	"slices"
	"strconv"
)

// RowElement is a top-level or nested element of a worksheet: a Row or a
// RowGroup.
type RowElement interface {
	isRowElement()
}

// Row is one spreadsheet row. Cells are written left to right starting at
// column A.
type Row struct {
	Cells []Cell
}

// RowGroup is a collapsible outline group of rows. A group must directly
// follow a Row at the same nesting level and must contain at least one
// element.
type RowGroup struct {
	Children  iter.Seq[RowElement]
	Collapsed bool
}

func (Row) isRowElement()      {}
func (RowGroup) isRowElement() {}

// NewRow returns a row of the given cells.
func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// NewRowGroup returns an expanded group of the given elements.
func NewRowGroup(children ...RowElement) RowGroup {
	return RowGroup{Children: slices.Values(children)}
}

// NewCollapsedRowGroup returns a collapsed group of the given elements.
func NewCollapsedRowGroup(children ...RowElement) RowGroup {
	return RowGroup{Children: slices.Values(children), Collapsed: true}
}

// CellRef is a zero-based (row, column) cell position.
type CellRef struct {
	Row    int
	Column int
}

// String renders the position in A1 notation.
func (r CellRef) String() string {
	return CellCoordAsString(r.Column, r.Row)
}

// ColumnNumberAsLetters converts a one-based column number to letters:
// 1 is "A", 26 is "Z", 27 is "AA".
func ColumnNumberAsLetters(n int) string {
	if n < 1 {
		panic("invalid column number")
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte((n-1)%26 + 'A')
		n = (n - 1) / 26
	}
	return string(buf[i:])
}

// CellCoordAsString formats a zero-based column and row as a cell reference,
// e.g. (0, 0) is "A1" and (26, 0) is "AA1".
func CellCoordAsString(col, row int) string {
	if row < 0 || col < 0 {
		panic("invalid cell coordinate")
	}
	return ColumnNumberAsLetters(col+1) + strconv.Itoa(row+1)
}

// columnLetters caches column letters by zero-based column index.
type columnLetters []string

func (c *columnLetters) get(col int) string {
	for len(*c) <= col {
		*c = append(*c, ColumnNumberAsLetters(len(*c)+1))
	}
	return (*c)[col]
}
