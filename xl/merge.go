package xl

import (
	"fmt"

	"github.com/adnsv/srw/xml"
)

// mergeRange is a rectangular block of merged cells.
type mergeRange struct {
	from CellRef // anchor, upper left
	to   CellRef // lower right
}

func (r mergeRange) String() string {
	return r.from.String() + ":" + r.to.String()
}

// mergeReconciler collects the cells of merged ranges while rows are written
// and turns them into ranges when the sheet is closed. Cells sharing an
// anchor form one range spanning up to the farthest of them.
//
// Anchors are not checked when collected: a negative anchor only fails the
// sheet once all rows are written.
type mergeReconciler struct {
	byAnchor map[CellRef]int
	groups   []mergeRange
	cells    int
}

func (m *mergeReconciler) add(anchor, current CellRef) {
	m.cells++
	if m.byAnchor == nil {
		m.byAnchor = map[CellRef]int{}
	}
	i, ok := m.byAnchor[anchor]
	if !ok {
		m.byAnchor[anchor] = len(m.groups)
		m.groups = append(m.groups, mergeRange{from: anchor, to: current})
		return
	}
	g := &m.groups[i]
	g.to.Row = max(g.to.Row, current.Row)
	g.to.Column = max(g.to.Column, current.Column)
}

// ranges validates the collected ranges in first-seen anchor order and
// returns those covering more than one cell.
func (m *mergeReconciler) ranges() ([]mergeRange, error) {
	var out []mergeRange
	for _, g := range m.groups {
		if g.from.Row < 0 || g.from.Column < 0 {
			return nil, fmt.Errorf("%w: anchor row %d, column %d is negative", ErrInvalidMerge, g.from.Row, g.from.Column)
		}
		if g.to.Row < g.from.Row || g.to.Column < g.from.Column {
			return nil, fmt.Errorf("%w: cell %s lies above or left of its anchor %s", ErrInvalidMerge, g.to, g.from)
		}
		if g.to == g.from {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// write emits the mergeCells element when there is anything to merge.
func (m *mergeReconciler) write(x *xml.Writer) (int, error) {
	if len(m.groups) == 0 {
		return 0, nil
	}
	rr, err := m.ranges()
	if err != nil {
		return 0, err
	}
	if len(rr) == 0 {
		return 0, nil
	}
	x.OTag("+mergeCells").Attr("count", len(rr))
	for _, r := range rr {
		x.OTag("+mergeCell").Attr("ref", r.String()).CTag()
	}
	x.CTag()
	return len(rr), nil
}
