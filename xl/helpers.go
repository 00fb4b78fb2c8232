package xl

// BorderForRange returns the outline border of the cell at (r, c) inside a
// block of rowSpan by columnSpan cells: edge cells get the sides facing out
// of the block. Positions outside the block get no border.
func BorderForRange(r, c, rowSpan, columnSpan int) Border {
	if c < 0 || c >= columnSpan || r < 0 || r >= rowSpan {
		return BorderNone
	}
	var b Border
	if c == 0 {
		b |= BorderLeft
	}
	if c == columnSpan-1 {
		b |= BorderRight
	}
	if r == 0 {
		b |= BorderTop
	}
	if r == rowSpan-1 {
		b |= BorderBottom
	}
	return b
}

// AlternateForRange memoizes fn over the position classes of a block of
// rowSpan by columnSpan cells: the four corners, the four edges, the inside
// and the outside. fn is called at most once per class, with the first
// position seen in it, so it must depend on the position only through its
// class. Typical use is building one *Style per class for a bordered table:
//
//	style := xl.AlternateForRange(rows, cols, func(r, c, rs, cs int) *xl.Style {
//		return &xl.Style{Border: xl.BorderForRange(r, c, rs, cs)}
//	})
func AlternateForRange[T any](rowSpan, columnSpan int, fn func(r, c, rowSpan, columnSpan int) T) func(r, c int) T {
	var (
		done   [10]bool
		values [10]T
	)
	return func(r, c int) T {
		i := rangeClass(r, c, rowSpan, columnSpan)
		if !done[i] {
			values[i] = fn(r, c, rowSpan, columnSpan)
			done[i] = true
		}
		return values[i]
	}
}

func rangeClass(r, c, rowSpan, columnSpan int) int {
	if c < 0 || c >= columnSpan || r < 0 || r >= rowSpan {
		return 9
	}
	var i int
	switch {
	case r == 0:
	case r < rowSpan-1:
		i = 3
	default:
		i = 6
	}
	switch {
	case c == 0:
	case c < columnSpan-1:
		i++
	default:
		i += 2
	}
	return i
}
