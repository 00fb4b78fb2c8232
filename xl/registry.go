package xl

import "strconv"

// builtinCellFormats is the number of cell format records written ahead of
// the registered styles: the single default format at index 0.
const builtinCellFormats = 1

// cellDescriptor is what a cell needs on the wire besides its value: the
// cellXfs index and the value type. Descriptors are small values cached per
// (style, kind) so cells sharing a style do no per-cell formatting work.
type cellDescriptor struct {
	index int
	kind  cellKind
	s     string // index as text, empty for the default format
}

func newCellDescriptor(index int, kind cellKind) cellDescriptor {
	d := cellDescriptor{index: index, kind: kind}
	if index != 0 {
		d.s = strconv.Itoa(index)
	}
	return d
}

// Descriptors for cells without an explicit style. They reference the
// default cell format and never touch the registry.
var (
	plainNumber       = newCellDescriptor(0, kindNumber)
	plainBoolean      = newCellDescriptor(0, kindBoolean)
	plainEmpty        = newCellDescriptor(0, kindEmpty)
	plainString       = newCellDescriptor(0, kindString)
	plainSharedString = newCellDescriptor(0, kindSharedString)
)

// defaultDateStyle is registered the first time an unstyled date is written;
// a date needs a date format to display as one.
var defaultDateStyle = Style{Format: FormatDateMmDdYy}

type descriptorKey struct {
	style int
	kind  cellKind
}

// styleRegistry deduplicates cell styles across all worksheets of a
// workbook. Every distinct style, after its kind default format is applied,
// gets one cellXfs record.
type styleRegistry struct {
	styles      *SharedTable[Style]
	descriptors map[descriptorKey]cellDescriptor
	plainDate   *cellDescriptor
}

func newStyleRegistry() *styleRegistry {
	return &styleRegistry{
		styles:      NewSharedTable[Style](),
		descriptors: map[descriptorKey]cellDescriptor{},
	}
}

// allocate returns the descriptor for a cell of the given kind and style,
// registering the style on first use.
func (r *styleRegistry) allocate(style Style, kind cellKind) cellDescriptor {
	i := r.styles.Allocate(style.withKindFormat(kind))
	key := descriptorKey{style: i, kind: kind}
	if d, ok := r.descriptors[key]; ok {
		return d
	}
	d := newCellDescriptor(builtinCellFormats+i, kind)
	r.descriptors[key] = d
	return d
}

// describe picks the descriptor for a cell: the built-in one when style is
// nil, a registered one otherwise.
func (r *styleRegistry) describe(style *Style, kind cellKind) cellDescriptor {
	if style != nil {
		return r.allocate(*style, kind)
	}
	switch kind {
	case kindNumber:
		return plainNumber
	case kindBoolean:
		return plainBoolean
	case kindString:
		return plainString
	case kindSharedString:
		return plainSharedString
	case kindDate:
		if r.plainDate == nil {
			d := r.allocate(defaultDateStyle, kindDate)
			r.plainDate = &d
		}
		return *r.plainDate
	}
	return plainEmpty
}

// Len returns the number of registered styles.
func (r *styleRegistry) Len() int {
	return r.styles.Len()
}
