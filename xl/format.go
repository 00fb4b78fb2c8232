package xl

import (
	"fmt"

	"github.com/xuri/nfp"
)

// BaseCustomFormatID is the first numFmtId given to custom number formats.
// It sits above the ids Excel reserves for built-in and legacy formats.
const BaseCustomFormatID = 165

// Format is a number format: either one of Excel's built-in formats,
// identified by its numFmtId, or a custom format code whose id is assigned
// when the stylesheet is written. The zero Format means "not set".
type Format struct {
	id   int
	code string
}

// Built-in number formats (ECMA-376 §18.8.30).
var (
	FormatGeneral               = Format{0, "General"}
	FormatInteger               = Format{1, "0"}
	FormatDecimal2              = Format{2, "0.00"}
	FormatThousands             = Format{3, "#,##0"}
	FormatThousandsDecimal2     = Format{4, "#,##0.00"}
	FormatPercent               = Format{9, "0%"}
	FormatPercentDecimal2       = Format{10, "0.00%"}
	FormatScientific            = Format{11, "0.00E+00"}
	FormatFraction              = Format{12, "# ?/?"}
	FormatFractionPrecise       = Format{13, "# ??/??"}
	FormatDateMmDdYy            = Format{14, "mm-dd-yy"}
	FormatDateDMmmYy            = Format{15, "d-mmm-yy"}
	FormatDateDMmm              = Format{16, "d-mmm"}
	FormatDateMmmYy             = Format{17, "mmm-yy"}
	FormatTimeAmPm              = Format{18, "h:mm AM/PM"}
	FormatTimeAmPmSeconds       = Format{19, "h:mm:ss AM/PM"}
	FormatTime24                = Format{20, "h:mm"}
	FormatTime24Seconds         = Format{21, "h:mm:ss"}
	FormatDateTime              = Format{22, "m/d/yy h:mm"}
	FormatAccounting            = Format{37, "#,##0 ;(#,##0)"}
	FormatAccountingRed         = Format{38, "#,##0 ;[Red](#,##0)"}
	FormatAccountingDecimal2    = Format{39, "#,##0.00;(#,##0.00)"}
	FormatAccountingDecimal2Red = Format{40, "#,##0.00;[Red](#,##0.00)"}
	FormatTimeMmSs              = Format{45, "mm:ss"}
	FormatTimeElapsed           = Format{46, "[h]:mm:ss"}
	FormatTimeMmSsTenths        = Format{47, "mm:ss.0"}
	FormatEngineering           = Format{48, "##0.0E+0"}
	FormatText                  = Format{49, "@"}
)

var builtinFormats = []Format{
	FormatGeneral,
	FormatInteger,
	FormatDecimal2,
	FormatThousands,
	FormatThousandsDecimal2,
	FormatPercent,
	FormatPercentDecimal2,
	FormatScientific,
	FormatFraction,
	FormatFractionPrecise,
	FormatDateMmDdYy,
	FormatDateDMmmYy,
	FormatDateDMmm,
	FormatDateMmmYy,
	FormatTimeAmPm,
	FormatTimeAmPmSeconds,
	FormatTime24,
	FormatTime24Seconds,
	FormatDateTime,
	FormatAccounting,
	FormatAccountingRed,
	FormatAccountingDecimal2,
	FormatAccountingDecimal2Red,
	FormatTimeMmSs,
	FormatTimeElapsed,
	FormatTimeMmSsTenths,
	FormatEngineering,
	FormatText,
}

var builtinFormatsByCode = func() map[string]Format {
	m := make(map[string]Format, len(builtinFormats))
	for _, f := range builtinFormats {
		m[f.code] = f
	}
	return m
}()

// BuiltinFormats returns the closed set of built-in formats, ordered by id.
func BuiltinFormats() []Format {
	return append([]Format(nil), builtinFormats...)
}

// ResolveFormat maps a format code to a built-in format when one has exactly
// that code. Otherwise it returns a custom format awaiting an id.
func ResolveFormat(code string) (f Format, builtin bool) {
	if f, ok := builtinFormatsByCode[code]; ok {
		return f, true
	}
	return Format{id: -1, code: code}, false
}

// NewCustomFormat validates code and returns the format for it. Codes equal to
// a built-in format code resolve to that built-in format.
func NewCustomFormat(code string) (Format, error) {
	if code == "" {
		return Format{}, fmt.Errorf("%w: empty format code", ErrInvalidFormat)
	}
	if len(parseFormat(code)) == 0 {
		return Format{}, fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
	f, _ := ResolveFormat(code)
	return f, nil
}

// NewDateTimeFormat is NewCustomFormat for date and time cells: the code must
// contain at least one date, time or elapsed time token.
func NewDateTimeFormat(code string) (Format, error) {
	f, err := NewCustomFormat(code)
	if err != nil {
		return Format{}, err
	}
	if !f.IsDateTime() {
		return Format{}, fmt.Errorf("%w: %q has no date or time tokens", ErrInvalidFormat, code)
	}
	return f, nil
}

// ID returns the built-in numFmtId, or -1 for custom formats.
func (f Format) ID() int { return f.id }

// Code returns the format code.
func (f Format) Code() string { return f.code }

// IsZero reports whether f is unset.
func (f Format) IsZero() bool { return f == Format{} }

// IsBuiltin reports whether f is one of the built-in formats.
func (f Format) IsBuiltin() bool { return f.id >= 0 && f.code != "" }

// IsDateTime reports whether f renders numbers as dates or times.
func (f Format) IsDateTime() bool {
	if f.IsBuiltin() {
		return f.id >= 14 && f.id <= 22 || f.id >= 45 && f.id <= 47
	}
	for _, sec := range parseFormat(f.code) {
		for _, tok := range sec.Items {
			switch tok.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}

func (f Format) String() string {
	return f.code
}

func parseFormat(code string) []nfp.Section {
	if code == "" {
		return nil
	}
	ps := nfp.NumberFormatParser()
	return ps.Parse(code)
}

// formatCatalog assigns numFmtIds to the formats used by a workbook's styles.
type formatCatalog struct {
	custom *SharedTable[string]
}

func newFormatCatalog() *formatCatalog {
	return &formatCatalog{custom: NewSharedTable[string]()}
}

// register records f, allocating a custom id when it is not built in.
func (c *formatCatalog) register(f Format) {
	if _, builtin := ResolveFormat(f.code); !builtin {
		c.custom.Allocate(f.code)
	}
}

// id returns the numFmtId for a registered format.
func (c *formatCatalog) id(f Format) int {
	if b, builtin := ResolveFormat(f.code); builtin {
		return b.id
	}
	i, _ := c.custom.Index(f.code)
	return BaseCustomFormatID + i
}
