package xl

import (
	"errors"
	"testing"
)

func TestBuiltinFormats(t *testing.T) {
	all := BuiltinFormats()
	if len(all) != 28 {
		t.Fatalf("%d built-in formats, want 28", len(all))
	}
	seen := map[int]bool{}
	for _, f := range all {
		if !f.IsBuiltin() {
			t.Errorf("%q is not built in", f)
		}
		if seen[f.ID()] {
			t.Errorf("duplicate id %d", f.ID())
		}
		seen[f.ID()] = true
	}
	for _, id := range []int{0, 1, 2, 3, 4, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 37, 38, 39, 40, 45, 46, 47, 48, 49} {
		if !seen[id] {
			t.Errorf("id %d missing", id)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	f, builtin := ResolveFormat("0.00%")
	if !builtin || f != FormatPercentDecimal2 {
		t.Errorf("ResolveFormat(0.00%%) = %v, %v", f, builtin)
	}
	f, builtin = ResolveFormat("#,##0.000")
	if builtin || f.ID() != -1 || f.Code() != "#,##0.000" {
		t.Errorf("ResolveFormat(custom) = %d %q, %v", f.ID(), f.Code(), builtin)
	}
}

func TestNewCustomFormat(t *testing.T) {
	f, err := NewCustomFormat("0.000")
	if err != nil {
		t.Fatal(err)
	}
	if f.IsBuiltin() || f.IsDateTime() {
		t.Errorf("0.000: builtin %v, date %v", f.IsBuiltin(), f.IsDateTime())
	}

	f, err = NewCustomFormat("h:mm")
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatTime24 {
		t.Errorf("h:mm resolved to %d", f.ID())
	}

	if _, err := NewCustomFormat(""); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("empty code: %v", err)
	}
}

func TestNewDateTimeFormat(t *testing.T) {
	for _, code := range []string{"yyyy-mm-dd", "dd.mm.yyyy hh:mm:ss", "[h]:mm"} {
		f, err := NewDateTimeFormat(code)
		if err != nil {
			t.Errorf("%q: %v", code, err)
			continue
		}
		if !f.IsDateTime() {
			t.Errorf("%q is not a date format", code)
		}
	}
	if _, err := NewDateTimeFormat("0.00"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("0.00 accepted as a date format: %v", err)
	}
}

func TestFormatCatalogIDs(t *testing.T) {
	c := newFormatCatalog()
	a, _ := NewCustomFormat("0.000")
	b, _ := NewCustomFormat("yyyy-mm-dd")
	for _, f := range []Format{a, FormatInteger, b, a} {
		c.register(f)
	}
	for _, tc := range []struct {
		f    Format
		want int
	}{
		{a, BaseCustomFormatID},
		{b, BaseCustomFormatID + 1},
		{FormatInteger, 1},
		{FormatText, 49},
	} {
		if got := c.id(tc.f); got != tc.want {
			t.Errorf("id(%q) = %d, want %d", tc.f, got, tc.want)
		}
	}
	if c.custom.Len() != 2 {
		t.Errorf("%d custom formats, want 2", c.custom.Len())
	}
}
