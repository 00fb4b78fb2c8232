package xl

import "fmt"

// Font represents font formatting properties for cell content.
// These properties correspond to the OpenXML font element as defined in ECMA-376.
// The zero Font means "use the workbook default font" (Calibri 11).
type Font struct {
	Typeface      string        // Font name, empty uses the application default
	Size          float64       // Font size in points
	Color         Color         // Text color, zero renders black
	Slope         FontSlope     // Normal or italic
	Weight        FontWeight    // Normal or bold
	Underline     UnderlineType // Underline style
	Strikethrough bool          // Strikethrough text
}

// FontSlope selects upright or italic glyphs.
type FontSlope int

const (
	SlopeNormal FontSlope = iota
	SlopeItalic
)

// FontWeight selects regular or bold glyphs.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// UnderlineType represents the type of underline formatting.
type UnderlineType string

// Underline type constants as defined in ECMA-376 (ST_UnderlineValues).
const (
	UnderlineNone             UnderlineType = ""                 // No underline (default)
	UnderlineSingle           UnderlineType = "single"           // Single underline
	UnderlineDouble           UnderlineType = "double"           // Double underline
	UnderlineSingleAccounting UnderlineType = "singleAccounting" // Single accounting underline
	UnderlineDoubleAccounting UnderlineType = "doubleAccounting" // Double accounting underline
)

// Font size bounds accepted by NewFont.
const (
	MinFontSize = 0.1
	MaxFontSize = 500.0
)

// NewFont validates size and returns the font.
func NewFont(typeface string, size float64, color Color, slope FontSlope, weight FontWeight) (Font, error) {
	if size < MinFontSize || size > MaxFontSize {
		return Font{}, fmt.Errorf("%w: font size %v must be in range [%v, %v]", ErrOutOfRange, size, MinFontSize, MaxFontSize)
	}
	return Font{
		Typeface: typeface,
		Size:     size,
		Color:    color,
		Slope:    slope,
		Weight:   weight,
	}, nil
}

// IsZero returns true if the font has no custom properties set.
func (f Font) IsZero() bool {
	return f == Font{}
}

func (f Font) String() string {
	if f.IsZero() {
		return "default font"
	}
	return fmt.Sprintf("%s, %v, %v, slope %d, weight %d", f.Typeface, f.Size, f.Color, f.Slope, f.Weight)
}
