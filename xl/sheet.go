package xl

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest worksheet name Excel accepts.
const MaxSheetNameLength = 31

// Sheet limits of the spreadsheet format.
const (
	MaxRows    = 1 << 20
	MaxColumns = 1 << 14
)

// MaxOutlineLevel is the deepest row or column outline nesting.
const MaxOutlineLevel = 255

// CompatibilityFlags relax format rules that Excel itself enforces, for
// consumers that do not.
type CompatibilityFlags uint

const (
	// RelaxNameLength allows worksheet names longer than 31 characters.
	RelaxNameLength CompatibilityFlags = 1 << iota
)

// Worksheet is a named sheet whose rows are produced lazily while the
// workbook is written. The row sequence is consumed exactly once.
type Worksheet struct {
	name   string
	params *Parameters
	rows   iter.Seq[RowElement]
}

// NewWorksheet validates name and returns a worksheet that writes rows.
// params may be nil.
func NewWorksheet(name string, params *Parameters, rows iter.Seq[RowElement]) (*Worksheet, error) {
	if err := validateSheetName(name, params.compatibility()); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = func(func(RowElement) bool) {}
	}
	return &Worksheet{name: name, params: params, rows: rows}, nil
}

// Name returns the worksheet name.
func (ws *Worksheet) Name() string { return ws.name }

// Parameters are optional worksheet-level settings.
type Parameters struct {
	// SummaryBelow places group summary rows below their details; when
	// false the summary row is the one right above a group. Both flags are
	// written whenever Parameters are given, so a zero Parameters means
	// summaries above and to the left. Without Parameters, Excel's default
	// (below and right) applies.
	SummaryBelow bool
	// SummaryRight places group summary columns right of their details.
	SummaryRight bool

	Columns       []Column
	Freeze        *PaneFreeze
	Compatibility CompatibilityFlags
}

func (p *Parameters) compatibility() CompatibilityFlags {
	if p == nil {
		return 0
	}
	return p.Compatibility
}

// Column configures the width and outline level of the zero-based column
// range [Min, Max].
type Column struct {
	Min          int
	Max          int
	Width        float64
	OutlineLevel int
}

// NewColumn validates and returns a column range configuration.
func NewColumn(min, max int, width float64, outlineLevel int) (Column, error) {
	c := Column{Min: min, Max: max, Width: width, OutlineLevel: outlineLevel}
	if err := c.validate(); err != nil {
		return Column{}, err
	}
	return c, nil
}

func (c Column) validate() error {
	if c.Min < 0 {
		return fmt.Errorf("%w: column min %d must be non-negative", ErrOutOfRange, c.Min)
	}
	if c.Max < c.Min {
		return fmt.Errorf("%w: column max %d must not be less than min %d", ErrOutOfRange, c.Max, c.Min)
	}
	if c.Max >= MaxColumns {
		return fmt.Errorf("%w: column max %d exceeds %d columns", ErrOutOfRange, c.Max, MaxColumns)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: column width %v must be non-negative", ErrOutOfRange, c.Width)
	}
	if c.OutlineLevel < 0 || c.OutlineLevel > MaxOutlineLevel {
		return fmt.Errorf("%w: column outline level %d must be in range [0, %d]", ErrOutOfRange, c.OutlineLevel, MaxOutlineLevel)
	}
	return nil
}

// PaneFreeze keeps the rows above Row and the columns left of Column in
// place while the rest of the sheet scrolls.
type PaneFreeze struct {
	Row    int
	Column int
}

// NewPaneFreeze validates and returns a frozen pane split.
func NewPaneFreeze(row, column int) (*PaneFreeze, error) {
	f := &PaneFreeze{Row: row, Column: column}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *PaneFreeze) validate() error {
	if f.Row < 0 {
		return fmt.Errorf("%w: frozen row index %d must be non-negative", ErrOutOfRange, f.Row)
	}
	if f.Column < 0 {
		return fmt.Errorf("%w: frozen column index %d must be non-negative", ErrOutOfRange, f.Column)
	}
	if f.Row >= MaxRows || f.Column >= MaxColumns {
		return fmt.Errorf("%w: frozen pane at row %d, column %d is outside the sheet", ErrOutOfRange, f.Row, f.Column)
	}
	return nil
}

// validate checks parameters built without the constructors.
func (p *Parameters) validate() error {
	if p == nil {
		return nil
	}
	for _, c := range p.Columns {
		if err := c.validate(); err != nil {
			return err
		}
	}
	if p.Freeze != nil {
		return p.Freeze.validate()
	}
	return nil
}

// activePane names the pane that scrolls.
func (f *PaneFreeze) activePane() string {
	switch {
	case f.Row > 0 && f.Column > 0:
		return "bottomRight"
	case f.Row > 0:
		return "bottomLeft"
	default:
		return "topRight"
	}
}

func validateSheetName(s string, flags CompatibilityFlags) error {
	n := utf8.RuneCountInString(s)
	if n == 0 || strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty sheet name is not allowed", ErrInvalidSheetName)
	} else if n > MaxSheetNameLength && flags&RelaxNameLength == 0 {
		return fmt.Errorf("%w: %q has %d characters, at most %d are allowed", ErrSheetNameTooLong, s, n, MaxSheetNameLength)
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return fmt.Errorf("%w: the first or last character of %q can not be a single quote", ErrInvalidSheetName, s)
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return fmt.Errorf("%w: %q can not contain any of the characters :\\/?*[]", ErrInvalidSheetName, s)
	}
	return nil
}
