package xl

import (
	"fmt"
	"time"
)

// Cell is one cell of a Row. It is a closed set of types:
// EmptyCell, IntegerCell, DecimalCell, DateTimeCell, BooleanCell,
// InlineStringCell, SharedStringCell, AbsoluteMerge and RelativeMerge.
//
// Value-bearing cells with Null set are written styled but blank. A nil
// Style selects the built-in default formatting for the cell's type.
type Cell interface {
	isCell()
}

// EmptyCell is a blank, unstyled cell.
type EmptyCell struct{}

// IntegerCell holds a whole number.
type IntegerCell struct {
	Value int64
	Null  bool
	Style *Style
}

// DecimalCell holds a fractional number.
type DecimalCell struct {
	Value float64
	Null  bool
	Style *Style
}

// DateTimeCell holds a point in time. The wall clock of Value, in its own
// location, is what the spreadsheet shows.
type DateTimeCell struct {
	Value time.Time
	Null  bool
	Style *Style
}

// BooleanCell holds TRUE or FALSE.
type BooleanCell struct {
	Value bool
	Null  bool
	Style *Style
}

// InlineStringCell holds text written directly into the cell.
type InlineStringCell struct {
	Value string
	Null  bool
	Style *Style
}

// SharedStringCell holds text stored once in the workbook's shared string
// table and referenced by index.
type SharedStringCell struct {
	Value string
	Null  bool
	Style *Style
}

// AbsoluteMerge writes Inner and merges the current cell into the range
// anchored at (AnchorRow, AnchorColumn), zero-based.
type AbsoluteMerge struct {
	Inner        Cell
	AnchorRow    int
	AnchorColumn int
}

// RelativeMerge writes Inner and merges the current cell into the range
// anchored RowOffset rows above and ColumnOffset columns left of it.
type RelativeMerge struct {
	Inner        Cell
	RowOffset    int
	ColumnOffset int
}

func (EmptyCell) isCell()        {}
func (IntegerCell) isCell()      {}
func (DecimalCell) isCell()      {}
func (DateTimeCell) isCell()     {}
func (BooleanCell) isCell()      {}
func (InlineStringCell) isCell() {}
func (SharedStringCell) isCell() {}
func (AbsoluteMerge) isCell()    {}
func (RelativeMerge) isCell()    {}

// Empty returns an empty cell.
func Empty() Cell { return EmptyCell{} }

// Int returns an integer cell.
func Int(v int64, style *Style) Cell { return IntegerCell{Value: v, Style: style} }

// Decimal returns a decimal cell.
func Decimal(v float64, style *Style) Cell { return DecimalCell{Value: v, Style: style} }

// DateTime returns a date/time cell.
func DateTime(v time.Time, style *Style) Cell { return DateTimeCell{Value: v, Style: style} }

// Bool returns a boolean cell.
func Bool(v bool, style *Style) Cell { return BooleanCell{Value: v, Style: style} }

// Inline returns an inline string cell.
func Inline(v string, style *Style) Cell { return InlineStringCell{Value: v, Style: style} }

// Shared returns a shared string cell.
func Shared(v string, style *Style) Cell { return SharedStringCell{Value: v, Style: style} }

// NewAbsoluteMerge wraps inner into a merge anchored at a fixed position.
// Negative anchors are accepted here and rejected when the sheet is closed.
func NewAbsoluteMerge(inner Cell, anchorRow, anchorColumn int) (Cell, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: merged cell has no inner cell", ErrInvalidMerge)
	}
	return AbsoluteMerge{Inner: inner, AnchorRow: anchorRow, AnchorColumn: anchorColumn}, nil
}

// NewRelativeMerge wraps inner into a merge anchored relative to the cell's
// own position. Offsets must not be negative.
func NewRelativeMerge(inner Cell, rowOffset, columnOffset int) (Cell, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: merged cell has no inner cell", ErrInvalidMerge)
	}
	if rowOffset < 0 {
		return nil, fmt.Errorf("%w: row offset %d must be non-negative", ErrOutOfRange, rowOffset)
	}
	if columnOffset < 0 {
		return nil, fmt.Errorf("%w: column offset %d must be non-negative", ErrOutOfRange, columnOffset)
	}
	return RelativeMerge{Inner: inner, RowOffset: rowOffset, ColumnOffset: columnOffset}, nil
}

// anchor returns the merge anchor for a merge cell visited at (row, col).
func (m AbsoluteMerge) anchor(row, col int) CellRef {
	return CellRef{Row: m.AnchorRow, Column: m.AnchorColumn}
}

func (m RelativeMerge) anchor(row, col int) CellRef {
	return CellRef{Row: row - m.RowOffset, Column: col - m.ColumnOffset}
}

// cellKind selects the cached descriptor slot and the wire type of a cell.
type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindNumber
	kindDate
	kindString
	kindSharedString
	kindBoolean
)

// wireType returns the value of the cell's t attribute.
func (k cellKind) wireType() string {
	switch k {
	case kindNumber, kindDate:
		return "n"
	case kindString:
		return "inlineStr"
	case kindSharedString:
		return "s"
	case kindBoolean:
		return "b"
	}
	return ""
}

func (k cellKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindDate:
		return "date"
	case kindString:
		return "string"
	case kindSharedString:
		return "shared string"
	case kindBoolean:
		return "boolean"
	}
	return "empty"
}
