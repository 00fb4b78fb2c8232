package xl

import (
	"errors"
	"iter"
	"strings"
	"testing"
)

func noRows(func(RowElement) bool) {}

func TestSheetNameRules(t *testing.T) {
	relaxed := &Parameters{Compatibility: RelaxNameLength}
	for _, tc := range []struct {
		name   string
		params *Parameters
		want   error
	}{
		{strings.Repeat("a", 31), nil, nil},
		{strings.Repeat("a", 32), nil, ErrSheetNameTooLong},
		{strings.Repeat("a", 32), relaxed, nil},
		{strings.Repeat("я", 31), nil, nil},
		{"", nil, ErrInvalidSheetName},
		{"", relaxed, ErrInvalidSheetName},
		{"   ", nil, ErrInvalidSheetName},
		{"'quoted'", nil, ErrInvalidSheetName},
		{"a/b", nil, ErrInvalidSheetName},
		{"what?", nil, ErrInvalidSheetName},
		{"Sheet 1", &Parameters{}, nil},
	} {
		_, err := NewWorksheet(tc.name, tc.params, noRows)
		if !errors.Is(err, tc.want) || (tc.want == nil) != (err == nil) {
			t.Errorf("NewWorksheet(%q) = %v, want %v", tc.name, err, tc.want)
		}

		gen := Generator[int](func(func(...RowElement) error) iter.Seq[int] {
			return func(func(int) bool) {}
		})
		_, err = NewProgressingWorksheet(tc.name, tc.params, gen)
		if !errors.Is(err, tc.want) || (tc.want == nil) != (err == nil) {
			t.Errorf("NewProgressingWorksheet(%q) = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewProgressingWorksheetNeedsGenerator(t *testing.T) {
	if _, err := NewProgressingWorksheet[int]("Sheet1", nil, nil); err == nil {
		t.Error("nil generator accepted")
	}
}

func TestNewColumn(t *testing.T) {
	for _, tc := range []struct {
		min, max int
		width    float64
		level    int
		ok       bool
	}{
		{0, 0, 10, 0, true},
		{2, 5, 0, 255, true},
		{-1, 0, 10, 0, false},
		{3, 2, 10, 0, false},
		{0, 0, -1, 0, false},
		{0, 0, 10, 256, false},
		{0, MaxColumns, 10, 0, false},
	} {
		_, err := NewColumn(tc.min, tc.max, tc.width, tc.level)
		if tc.ok != (err == nil) {
			t.Errorf("NewColumn(%d, %d, %v, %d) = %v", tc.min, tc.max, tc.width, tc.level, err)
		}
		if err != nil && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("unexpected error kind %v", err)
		}
	}
}

func TestPaneFreeze(t *testing.T) {
	if _, err := NewPaneFreeze(-1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative row: %v", err)
	}
	if _, err := NewPaneFreeze(0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative column: %v", err)
	}
	for _, tc := range []struct {
		row, col int
		want     string
	}{
		{1, 0, "bottomLeft"},
		{0, 2, "topRight"},
		{3, 2, "bottomRight"},
	} {
		f, err := NewPaneFreeze(tc.row, tc.col)
		if err != nil {
			t.Fatal(err)
		}
		if got := f.activePane(); got != tc.want {
			t.Errorf("(%d, %d): active pane %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestWorkbookDuplicateNames(t *testing.T) {
	var wb workbook
	for _, n := range []string{"Data", "Summary", "data", "Other", "Summary"} {
		wb.addSheet(n, "")
	}
	err := wb.validate()
	if !errors.Is(err, ErrDuplicateSheetName) {
		t.Fatalf("validate() = %v", err)
	}
	for _, s := range []string{`"Data", "data"`, `"Summary", "Summary"`} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not name %s", err, s)
		}
	}
	if strings.Contains(err.Error(), "Other") {
		t.Errorf("error %q names a unique sheet", err)
	}

	var empty workbook
	if err := empty.validate(); !errors.Is(err, ErrNoSheets) {
		t.Errorf("empty workbook: %v", err)
	}
}
