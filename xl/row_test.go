package xl

import "testing"

func TestCellRef(t *testing.T) {
	for _, tc := range []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{99, 0, "A100"},
		{0, 701, "ZZ1"},
		{0, 702, "AAA1"},
		{1048575, 16383, "XFD1048576"},
	} {
		if got := (CellRef{Row: tc.row, Column: tc.col}).String(); got != tc.want {
			t.Errorf("CellRef{%d, %d} = %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestColumnLetters(t *testing.T) {
	var c columnLetters
	for _, tc := range []struct {
		col  int
		want string
	}{
		{27, "AB"},
		{0, "A"},
		{51, "AZ"},
		{52, "BA"},
	} {
		if got := c.get(tc.col); got != tc.want {
			t.Errorf("get(%d) = %q, want %q", tc.col, got, tc.want)
		}
		if got := ColumnNumberAsLetters(tc.col + 1); got != tc.want {
			t.Errorf("ColumnNumberAsLetters(%d) = %q, want %q", tc.col+1, got, tc.want)
		}
	}
	if len(c) != 53 {
		t.Errorf("cache holds %d columns, want 53", len(c))
	}
}
