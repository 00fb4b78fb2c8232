package xl

import (
	"strconv"

	"github.com/adnsv/srw/xml"
)

// Defaults of the workbook font, written as font 0.
const (
	DefaultTypeface = "Calibri"
	DefaultFontSize = 11.0
)

// Fills 0 and 1 are reserved by Excel; borders 0 and 1 are the empty and
// the all-thin border.
const (
	builtinFills   = 2
	builtinBorders = 2
)

// stylesheet assigns ids to the fonts, fills, borders and number formats
// used by the registered styles.
type stylesheet struct {
	formats *formatCatalog
	fonts   *SharedTable[Font]
	fills   *SharedTable[Color]
	borders *SharedTable[Border]
}

func newStylesheet(styles *SharedTable[Style]) (*stylesheet, error) {
	ss := &stylesheet{
		formats: newFormatCatalog(),
		fonts:   NewSharedTable[Font](),
		fills:   NewSharedTable[Color](),
		borders: NewSharedTable[Border](),
	}
	err := styles.All(func(_ int, s Style) error {
		if !s.Format.IsZero() {
			ss.formats.register(s.Format)
		}
		if !s.Font.IsZero() {
			ss.fonts.Allocate(s.Font)
		}
		if s.Fill.IsSet() {
			ss.fills.Allocate(s.Fill)
		}
		if s.Border != BorderNone && s.Border != BorderAll {
			ss.borders.Allocate(s.Border)
		}
		return nil
	})
	return ss, err
}

func (ss *stylesheet) numFmtID(s Style) int {
	if s.Format.IsZero() {
		return 0
	}
	return ss.formats.id(s.Format)
}

func (ss *stylesheet) fontID(s Style) int {
	if s.Font.IsZero() {
		return 0
	}
	i, _ := ss.fonts.Index(s.Font)
	return 1 + i
}

func (ss *stylesheet) fillID(s Style) int {
	if !s.Fill.IsSet() {
		return 0
	}
	i, _ := ss.fills.Index(s.Fill)
	return builtinFills + i
}

func (ss *stylesheet) borderID(s Style) int {
	switch s.Border {
	case BorderNone:
		return 0
	case BorderAll:
		return 1
	}
	i, _ := ss.borders.Index(s.Border)
	return builtinBorders + i
}

func (w *Writer) writeStyles() error {
	_, rid := w.nextWorkbookID()

	relpath := "styles.xml"
	abspath := "/xl/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	w.WorkbookRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles",
		Target: relpath,
	}

	ss, err := newStylesheet(w.styles.styles)
	if err != nil {
		return err
	}
	count := w.styles.Len()

	err = w.writePart(abspath, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("styleSheet")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

		if n := ss.formats.custom.Len(); n > 0 {
			x.OTag("+numFmts").Attr("count", n)
			ss.formats.custom.All(func(i int, code string) error {
				x.OTag("+numFmt").Attr("numFmtId", BaseCustomFormatID+i).Attr("formatCode", code).CTag()
				return nil
			})
			x.CTag()
		}

		x.OTag("+fonts").Attr("count", 1+ss.fonts.Len())
		writeFont(x, Font{})
		ss.fonts.All(func(_ int, f Font) error {
			writeFont(x, f)
			return nil
		})
		x.CTag()

		x.OTag("+fills").Attr("count", builtinFills+ss.fills.Len())
		x.OTag("+fill")
		x.OTag("patternFill").Attr("patternType", "none").CTag()
		x.CTag()
		x.OTag("+fill")
		x.OTag("patternFill").Attr("patternType", "gray125").CTag()
		x.CTag()
		ss.fills.All(func(_ int, c Color) error {
			x.OTag("+fill")
			x.OTag("patternFill").Attr("patternType", "solid")
			x.OTag("fgColor").Attr("rgb", c.argb()).CTag()
			x.OTag("bgColor").Attr("indexed", 64).CTag()
			x.CTag() // patternFill
			x.CTag() // fill
			return nil
		})
		x.CTag()

		x.OTag("+borders").Attr("count", builtinBorders+ss.borders.Len())
		writeBorder(x, BorderNone)
		writeBorder(x, BorderAll)
		ss.borders.All(func(_ int, b Border) error {
			writeBorder(x, b)
			return nil
		})
		x.CTag()

		x.OTag("+cellStyleXfs").Attr("count", 1)
		x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
		x.CTag()

		// Record i+1 belongs to registered style i; descriptors handed out
		// during traversal already point there.
		x.OTag("+cellXfs").Attr("count", builtinCellFormats+count)
		x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).Attr("xfId", 0).CTag()
		err := w.styles.styles.Drain(func(_ int, s Style) error {
			writeCellFormat(x, ss, s)
			return nil
		})
		if err != nil {
			return err
		}
		x.CTag()

		x.OTag("+cellStyles").Attr("count", 1)
		x.OTag("+cellStyle").Attr("name", "Normal").Attr("xfId", 0).Attr("builtinId", 0).CTag()
		x.CTag()

		x.CTag() // styleSheet
		return nil
	})
	if err != nil {
		return err
	}
	w.log.Debug("styles written", "styles", count, "formats", ss.formats.custom.Len(),
		"fonts", ss.fonts.Len(), "fills", ss.fills.Len(), "borders", ss.borders.Len())
	return nil
}

func writeFont(x *xml.Writer, f Font) {
	x.OTag("+font")
	if f.Weight == WeightBold {
		x.OTag("b").Attr("val", 1).CTag()
	}
	if f.Slope == SlopeItalic {
		x.OTag("i").Attr("val", 1).CTag()
	}
	if f.Strikethrough {
		x.OTag("strike").Attr("val", 1).CTag()
	}
	if f.Underline != UnderlineNone {
		x.OTag("u").Attr("val", string(f.Underline)).CTag()
	}
	size := f.Size
	if size == 0 {
		size = DefaultFontSize
	}
	x.OTag("sz").Attr("val", strconv.FormatFloat(size, 'f', -1, 64)).CTag()
	color := f.Color
	if !color.IsSet() {
		color = Black
	}
	x.OTag("color").Attr("rgb", color.argb()).CTag()
	typeface := f.Typeface
	if typeface == "" {
		typeface = DefaultTypeface
	}
	x.OTag("name").Attr("val", typeface).CTag()
	x.CTag()
}

func writeBorder(x *xml.Writer, b Border) {
	x.OTag("+border")
	side := func(s Border) {
		if !b.Has(s) {
			x.CTag()
			return
		}
		x.Attr("style", "thin")
		x.OTag("color").Attr("auto", 1).CTag()
		x.CTag()
	}
	x.OTag("left")
	side(BorderLeft)
	x.OTag("right")
	side(BorderRight)
	x.OTag("top")
	side(BorderTop)
	x.OTag("bottom")
	side(BorderBottom)
	x.OTag("diagonal").CTag()
	x.CTag()
}

func writeCellFormat(x *xml.Writer, ss *stylesheet, s Style) {
	numFmt, font, fill, border := ss.numFmtID(s), ss.fontID(s), ss.fillID(s), ss.borderID(s)
	x.OTag("+xf")
	x.Attr("numFmtId", numFmt).Attr("fontId", font).Attr("fillId", fill).Attr("borderId", border).Attr("xfId", 0)
	if numFmt != 0 {
		x.Attr("applyNumberFormat", 1)
	}
	if font != 0 {
		x.Attr("applyFont", 1)
	}
	if fill != 0 {
		x.Attr("applyFill", 1)
	}
	if border != 0 {
		x.Attr("applyBorder", 1)
	}
	if a := s.Alignment; !a.IsZero() {
		x.Attr("applyAlignment", 1)
		x.OTag("alignment")
		if a.Horizontal != HorizontalDefault {
			x.Attr("horizontal", string(a.Horizontal))
		}
		if a.Vertical != VerticalDefault {
			x.Attr("vertical", string(a.Vertical))
		}
		if a.TextRotation != 0 {
			x.Attr("textRotation", a.TextRotation)
		}
		if a.WrapText {
			x.Attr("wrapText", 1)
		}
		x.CTag()
	}
	x.CTag()
}
