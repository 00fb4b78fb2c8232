package xl

import "fmt"

// Style is the full formatting of a cell: font, borders, fill, number format
// and alignment. Styles are compared by value; every distinct Style used in a
// workbook becomes one cell format record in the stylesheet.
//
// Zero-valued members mean "not set". A nil *Style on a cell is different
// from a pointer to the zero Style: the former uses the built-in default
// format and never touches the stylesheet.
type Style struct {
	Font      Font
	Border    Border
	Fill      Color
	Format    Format
	Alignment Alignment
}

func (s Style) String() string {
	return fmt.Sprintf("%v, %v, %v, %q, %v", s.Font, s.Border, s.Fill, s.Format.Code(), s.Alignment)
}

// Color is an opaque RGB color. The zero value means "no color".
type Color uint32

const colorSet = 0xFF000000

// RGB returns the color with the given red, green and blue components.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Common colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// IsSet reports whether c holds a color.
func (c Color) IsSet() bool {
	return c&colorSet != 0
}

// Hex returns the color as six uppercase hexadecimal digits, e.g. "FF0000".
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	var b [6]byte
	v := uint32(c) & 0x00FFFFFF
	for i := 5; i >= 0; i-- {
		b[i] = digits[v&0xF]
		v >>= 4
	}
	return string(b[:])
}

// argb is the color as written to the stylesheet, fully opaque.
func (c Color) argb() string {
	return "FF" + c.Hex()
}

func (c Color) String() string {
	if !c.IsSet() {
		return "none"
	}
	return "#" + c.Hex()
}

// Border is a set of thin cell border sides.
type Border uint8

// Border sides.
const (
	BorderNone   Border = 0
	BorderLeft   Border = 1 << 0
	BorderRight  Border = 1 << 1
	BorderTop    Border = 1 << 2
	BorderBottom Border = 1 << 3
	BorderAll           = BorderLeft | BorderRight | BorderTop | BorderBottom
)

// Has reports whether all sides in side are set.
func (b Border) Has(side Border) bool {
	return b&side == side
}

func (b Border) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderAll:
		return "all"
	}
	var s string
	for _, side := range []struct {
		b    Border
		name string
	}{{BorderLeft, "left"}, {BorderRight, "right"}, {BorderTop, "top"}, {BorderBottom, "bottom"}} {
		if b.Has(side.b) {
			if s != "" {
				s += "|"
			}
			s += side.name
		}
	}
	return s
}

// HorizontalAlignment values as defined in ECMA-376 (ST_HorizontalAlignment).
type HorizontalAlignment string

const (
	HorizontalDefault          HorizontalAlignment = ""
	HorizontalGeneral          HorizontalAlignment = "general"
	HorizontalLeft             HorizontalAlignment = "left"
	HorizontalCenter           HorizontalAlignment = "center"
	HorizontalRight            HorizontalAlignment = "right"
	HorizontalFill             HorizontalAlignment = "fill"
	HorizontalJustify          HorizontalAlignment = "justify"
	HorizontalCenterContinuous HorizontalAlignment = "centerContinuous"
	HorizontalDistributed      HorizontalAlignment = "distributed"
)

// VerticalAlignment values as defined in ECMA-376 (ST_VerticalAlignment).
type VerticalAlignment string

const (
	VerticalDefault     VerticalAlignment = ""
	VerticalTop         VerticalAlignment = "top"
	VerticalCenter      VerticalAlignment = "center"
	VerticalBottom      VerticalAlignment = "bottom"
	VerticalJustify     VerticalAlignment = "justify"
	VerticalDistributed VerticalAlignment = "distributed"
)

// Alignment positions text within a cell. The zero value means "not set".
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	// TextRotation is in degrees: 0-90 rotates counterclockwise, 91-180
	// rotates clockwise by TextRotation-90.
	TextRotation int
	WrapText     bool
}

// NewAlignment validates the rotation and returns the alignment.
func NewAlignment(h HorizontalAlignment, v VerticalAlignment, textRotation int, wrapText bool) (Alignment, error) {
	if textRotation < 0 || textRotation > 180 {
		return Alignment{}, fmt.Errorf("%w: text rotation %d must be in range [0, 180]", ErrOutOfRange, textRotation)
	}
	return Alignment{Horizontal: h, Vertical: v, TextRotation: textRotation, WrapText: wrapText}, nil
}

// IsZero reports whether no alignment property is set.
func (a Alignment) IsZero() bool {
	return a == Alignment{}
}

func (a Alignment) String() string {
	return fmt.Sprintf("%s, %s, Rotation: %d, WrapText: %t", a.Horizontal, a.Vertical, a.TextRotation, a.WrapText)
}

// withKindFormat fills in the number format a style gets when the caller
// did not choose one for the given kind of cell.
func (s Style) withKindFormat(kind cellKind) Style {
	if !s.Format.IsZero() {
		return s
	}
	switch kind {
	case kindNumber:
		s.Format = FormatGeneral
	case kindDate:
		s.Format = FormatDateDMmm
	case kindString, kindSharedString:
		s.Format = FormatText
	}
	return s
}
