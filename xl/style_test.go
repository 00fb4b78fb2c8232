package xl

import (
	"errors"
	"testing"
)

func TestColorHex(t *testing.T) {
	for _, tc := range []struct {
		r, g, b uint8
		want    string
	}{
		{0, 0, 0, "000000"},
		{255, 0, 0, "FF0000"},
		{15, 15, 15, "0F0F0F"},
		{255, 255, 255, "FFFFFF"},
		{0x12, 0xAB, 0x0C, "12AB0C"},
	} {
		c := RGB(tc.r, tc.g, tc.b)
		if got := c.Hex(); got != tc.want {
			t.Errorf("RGB(%d, %d, %d).Hex() = %q, want %q", tc.r, tc.g, tc.b, got, tc.want)
		}
		if !c.IsSet() {
			t.Errorf("RGB(%d, %d, %d) is not set", tc.r, tc.g, tc.b)
		}
	}
	var zero Color
	if zero.IsSet() {
		t.Error("zero color is set")
	}
	if Black == zero {
		t.Error("black must differ from no color")
	}
}

func TestBorderString(t *testing.T) {
	for _, tc := range []struct {
		b    Border
		want string
	}{
		{BorderNone, "none"},
		{BorderAll, "all"},
		{BorderLeft | BorderTop, "left|top"},
		{BorderBottom, "bottom"},
	} {
		if got := tc.b.String(); got != tc.want {
			t.Errorf("%08b.String() = %q, want %q", uint8(tc.b), got, tc.want)
		}
	}
}

func TestNewFontSize(t *testing.T) {
	for _, tc := range []struct {
		size float64
		ok   bool
	}{
		{0.05, false},
		{0.1, true},
		{11, true},
		{500, true},
		{500.5, false},
	} {
		_, err := NewFont("Arial", tc.size, Black, SlopeNormal, WeightBold)
		if tc.ok && err != nil {
			t.Errorf("NewFont(size %v): %v", tc.size, err)
		}
		if !tc.ok && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NewFont(size %v) = %v, want ErrOutOfRange", tc.size, err)
		}
	}
}

func TestNewAlignmentRotation(t *testing.T) {
	for _, rot := range []int{0, 45, 90, 180} {
		if _, err := NewAlignment(HorizontalCenter, VerticalTop, rot, false); err != nil {
			t.Errorf("rotation %d: %v", rot, err)
		}
	}
	for _, rot := range []int{-1, 181} {
		if _, err := NewAlignment(HorizontalCenter, VerticalTop, rot, false); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("rotation %d: got %v, want ErrOutOfRange", rot, err)
		}
	}
}

func TestStyleKindFormat(t *testing.T) {
	for _, tc := range []struct {
		kind cellKind
		want Format
	}{
		{kindNumber, FormatGeneral},
		{kindDate, FormatDateDMmm},
		{kindString, FormatText},
		{kindSharedString, FormatText},
		{kindBoolean, Format{}},
	} {
		if got := (Style{}).withKindFormat(tc.kind).Format; got != tc.want {
			t.Errorf("%v: format %q, want %q", tc.kind, got, tc.want)
		}
	}
	s := Style{Format: FormatPercent}
	if got := s.withKindFormat(kindDate).Format; got != FormatPercent {
		t.Errorf("explicit format replaced by %q", got)
	}
}
