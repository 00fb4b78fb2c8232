package xl

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/adnsv/srw/xml"
)

// sheetVisitor writes the sheetData of one worksheet. It walks rows and row
// groups depth first and registers styles, shared strings and merged cells
// in the workbook-wide tables as a side effect.
type sheetVisitor struct {
	x       *xml.Writer
	styles  *styleRegistry
	strings *sharedStrings
	letters *columnLetters
	outline outlineCache
	merges  mergeReconciler

	level     int // current outline depth
	collapsed int // number of enclosing collapsed groups
	row       int // zero-based index of the next row
	col       int // zero-based index of the current cell
	rowText   string
	afterRow  bool // the previous sibling element was a Row

	// With summaries above, a group's summary row is the row before it, so
	// each row is held back until the next element shows whether a
	// collapsed group follows. With summaries below it is the row after.
	summaryAbove bool
	held         Row
	holding      bool
	collapseNext bool
}

func newSheetVisitor(x *xml.Writer, w *Writer, params *Parameters) *sheetVisitor {
	return &sheetVisitor{
		x:            x,
		styles:       w.styles,
		strings:      w.strings,
		letters:      &w.letters,
		summaryAbove: params != nil && !params.SummaryBelow,
	}
}

// close writes a row still held back at the end of the sheet.
func (v *sheetVisitor) close() error {
	return v.flush(false)
}

func (v *sheetVisitor) flush(collapsed bool) error {
	if !v.holding {
		return nil
	}
	v.holding = false
	return v.writeRow(v.held, collapsed)
}

// visitAll writes every element of rows.
func (v *sheetVisitor) visitAll(rows iter.Seq[RowElement]) error {
	if rows == nil {
		return nil
	}
	for el := range rows {
		if err := v.visit(el); err != nil {
			return err
		}
	}
	return nil
}

func (v *sheetVisitor) visit(el RowElement) error {
	switch el := el.(type) {
	case Row:
		return v.visitRow(el)
	case *Row:
		return v.visitRow(*el)
	case RowGroup:
		return v.visitGroup(el)
	case *RowGroup:
		return v.visitGroup(*el)
	}
	return fmt.Errorf("unsupported row element %T at row %d", el, v.row+1)
}

func (v *sheetVisitor) visitRow(r Row) error {
	if v.summaryAbove {
		if err := v.flush(false); err != nil {
			return err
		}
		// callers may reuse r.Cells once the row is handed over
		v.held.Cells = append(v.held.Cells[:0], r.Cells...)
		v.holding = true
		v.afterRow = true
		return nil
	}
	collapsed := v.collapseNext
	v.collapseNext = false
	return v.writeRow(r, collapsed)
}

func (v *sheetVisitor) writeRow(r Row, collapsed bool) error {
	if v.row >= MaxRows {
		return fmt.Errorf("%w: a sheet holds at most %d rows", ErrTooManyRows, MaxRows)
	}
	if len(r.Cells) > MaxColumns {
		return fmt.Errorf("%w: row %d has %d cells, at most %d are allowed", ErrTooManyColumns, v.row+1, len(r.Cells), MaxColumns)
	}
	tpl := v.outline.template(v.level, v.collapsed > 0)
	v.rowText = strconv.Itoa(v.row + 1)

	x := v.x
	x.OTag("+row").Attr("r", v.rowText)
	if tpl.level != "" {
		x.Attr("outlineLevel", tpl.level)
	}
	if tpl.hidden {
		x.Attr("hidden", 1)
	}
	if collapsed {
		x.Attr("collapsed", 1)
	}
	for i, c := range r.Cells {
		v.col = i
		if err := v.visitCell(c); err != nil {
			return err
		}
	}
	x.CTag() // row

	v.afterRow = true
	v.row++
	return nil
}

func (v *sheetVisitor) visitGroup(g RowGroup) error {
	if !v.afterRow {
		return fmt.Errorf("%w: group at row %d, outline level %d", ErrRowGroupPlacement, v.row+1, v.level)
	}
	if v.level >= MaxOutlineLevel {
		return fmt.Errorf("%w: group at row %d", ErrOutlineOverflow, v.row+1)
	}
	if err := v.flush(g.Collapsed); err != nil {
		return err
	}
	v.level++
	if g.Collapsed {
		v.collapsed++
	}
	v.afterRow = false
	v.collapseNext = false

	start := v.row
	n := 0
	if g.Children != nil {
		for el := range g.Children {
			n++
			if err := v.visit(el); err != nil {
				return err
			}
		}
	}
	if n == 0 {
		return fmt.Errorf("%w: group at row %d, outline level %d", ErrEmptyRowGroup, start+1, v.level)
	}
	// the last row of the group is written at the group's level
	if err := v.flush(false); err != nil {
		return err
	}

	if g.Collapsed {
		v.collapsed--
	}
	v.level--
	v.afterRow = false
	v.collapseNext = g.Collapsed && !v.summaryAbove
	return nil
}

// ref returns the A1 reference of the current cell.
func (v *sheetVisitor) ref() string {
	return v.letters.get(v.col) + v.rowText
}

func (v *sheetVisitor) visitCell(c Cell) error {
	switch c := c.(type) {
	case nil, EmptyCell:
		v.x.OTag("+c").Attr("r", v.ref()).CTag()

	case IntegerCell:
		d := v.styles.describe(c.Style, kindNumber)
		if c.Null {
			v.writeNull(d)
		} else {
			v.writeValue(d, strconv.FormatInt(c.Value, 10))
		}

	case DecimalCell:
		d := v.styles.describe(c.Style, kindNumber)
		if c.Null {
			v.writeNull(d)
			break
		}
		s, err := formatDecimal(c.Value)
		if err != nil {
			return fmt.Errorf("cell %s: %w", v.ref(), err)
		}
		v.writeValue(d, s)

	case DateTimeCell:
		d := v.styles.describe(c.Style, kindDate)
		if c.Null {
			v.writeNull(d)
			break
		}
		oa, err := toOADate(c.Value)
		if err != nil {
			return fmt.Errorf("cell %s: %w", v.ref(), err)
		}
		s, err := formatDecimal(oa)
		if err != nil {
			return fmt.Errorf("cell %s: %w", v.ref(), err)
		}
		v.writeValue(d, s)

	case BooleanCell:
		d := v.styles.describe(c.Style, kindBoolean)
		switch {
		case c.Null:
			v.writeNull(d)
		case c.Value:
			v.writeValue(d, "1")
		default:
			v.writeValue(d, "0")
		}

	case InlineStringCell:
		d := v.styles.describe(c.Style, kindString)
		if c.Null {
			v.writeNull(d)
			break
		}
		v.openCell(d)
		v.x.Attr("t", d.kind.wireType())
		v.x.OTag("is")
		writeText(v.x, c.Value)
		v.x.CTag() // is
		v.x.CTag() // c

	case SharedStringCell:
		d := v.styles.describe(c.Style, kindSharedString)
		if c.Null {
			v.writeNull(d)
			break
		}
		v.writeValue(d, strconv.Itoa(v.strings.ref(c.Value)))

	case AbsoluteMerge:
		return v.visitMerge(c.Inner, c.anchor(v.row, v.col))
	case RelativeMerge:
		return v.visitMerge(c.Inner, c.anchor(v.row, v.col))

	default:
		return fmt.Errorf("cell %s: unsupported cell %T", v.ref(), c)
	}
	return nil
}

// visitMerge writes the wrapped cell at the current position and records the
// position as part of the range anchored at anchor.
func (v *sheetVisitor) visitMerge(inner Cell, anchor CellRef) error {
	if err := v.visitCell(inner); err != nil {
		return err
	}
	v.merges.add(anchor, CellRef{Row: v.row, Column: v.col})
	return nil
}

func (v *sheetVisitor) openCell(d cellDescriptor) {
	v.x.OTag("+c").Attr("r", v.ref())
	if d.s != "" {
		v.x.Attr("s", d.s)
	}
}

// writeNull writes a styled cell without a value.
func (v *sheetVisitor) writeNull(d cellDescriptor) {
	v.openCell(d)
	v.x.CTag()
}

func (v *sheetVisitor) writeValue(d cellDescriptor, text string) {
	v.openCell(d)
	v.x.Attr("t", d.kind.wireType())
	v.x.OTag("v").Write(text).CTag()
	v.x.CTag()
}

// writeText writes a t element, preserving leading and trailing whitespace.
func writeText(x *xml.Writer, s string) {
	x.OTag("t")
	if s != strings.TrimSpace(s) {
		x.Attr("xml:space", "preserve")
	}
	x.Write(escapeText(s))
	x.CTag()
}

// escapeText encodes the characters XML 1.0 cannot carry as _xHHHH_ escapes.
// Tab and line feed pass through. A literal "_x" is written as "_x005F_x" so
// readers do not decode it.
func escapeText(s string) string {
	if strings.IndexFunc(s, needsEscape) < 0 && !strings.Contains(s, "_x") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i, r := range s {
		switch {
		case r == '_' && i+1 < len(s) && s[i+1] == 'x':
			b.WriteString("_x005F_")
		case needsEscape(r):
			fmt.Fprintf(&b, "_x%04X_", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return (r < 0x20 && r != '\t' && r != '\n') || r == 0xFFFE || r == 0xFFFF
}

// formatDecimal renders f the way spreadsheet XML expects numbers: a plain
// decimal with '.' as separator and no grouping, switching to exponent
// notation for magnitudes a plain decimal would spell out digit by digit.
func formatDecimal(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	if a := math.Abs(f); a != 0 && (a >= 1e15 || a < 1e-5) {
		return strconv.FormatFloat(f, 'E', -1, 64), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// OLE Automation dates count days from 1899-12-30. Only years 100 through
// 9999 can be represented.
var (
	oaEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).UnixMilli()
	oaMin   = time.Date(100, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	oaMax   = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
)

const millisPerDay = 24 * 60 * 60 * 1000

// toOADate converts the wall clock reading of t to an OLE Automation date:
// whole days since the epoch plus the time of day as a fraction. Before the
// epoch the day part counts backwards while the fraction still counts
// forward from midnight, so 1899-12-29 06:00 is -1.25. Precision is one
// millisecond.
func toOADate(t time.Time) (float64, error) {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	wall := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
	ms := wall.Unix()*1000 + int64(wall.Nanosecond()/int(time.Millisecond))
	if ms < oaMin || ms >= oaMax {
		return 0, fmt.Errorf("%w: date %s is outside the years 100 to 9999", ErrOutOfRange, t.Format(time.DateOnly))
	}
	ms -= oaEpoch
	if ms < 0 {
		if frac := ms % millisPerDay; frac != 0 {
			ms -= (millisPerDay + frac) * 2
		}
	}
	return float64(ms) / millisPerDay, nil
}
