package xl

import (
	"hash/maphash"
	"testing"
)

// styleProduct returns every combination of a handful of values per style
// member.
func styleProduct() []Style {
	fonts := []Font{
		{},
		{Typeface: "Arial", Size: 10},
		{Typeface: "Arial", Size: 10, Weight: WeightBold},
		{Typeface: "Consolas", Size: 12, Color: RGB(255, 0, 0), Slope: SlopeItalic},
	}
	borders := []Border{BorderNone, BorderAll, BorderLeft, BorderTop | BorderBottom}
	fills := []Color{0, RGB(230, 230, 230), RGB(255, 255, 0)}
	formats := []Format{{}, FormatInteger, FormatDateTime, {id: -1, code: "0.000"}}
	alignments := []Alignment{{}, {Horizontal: HorizontalCenter}, {Vertical: VerticalTop, WrapText: true}}

	var out []Style
	for _, f := range fonts {
		for _, b := range borders {
			for _, fill := range fills {
				for _, nf := range formats {
					for _, a := range alignments {
						out = append(out, Style{Font: f, Border: b, Fill: fill, Format: nf, Alignment: a})
					}
				}
			}
		}
	}
	return out
}

func TestStyleRegistryDedup(t *testing.T) {
	styles := styleProduct()
	r := newStyleRegistry()

	first := map[Style]int{}
	byIndex := map[int]Style{}
	for _, s := range styles {
		d := r.allocate(s, kindBoolean)
		if d.index < builtinCellFormats {
			t.Fatalf("style %v got reserved index %d", s, d.index)
		}
		if prev, ok := byIndex[d.index]; ok && prev != s {
			t.Fatalf("styles %v and %v share index %d", prev, s, d.index)
		}
		byIndex[d.index] = s
		first[s] = d.index
	}
	// equal copies resolve to the same index, in any order
	for i := len(styles) - 1; i >= 0; i-- {
		s := styles[i]
		if got := r.allocate(s, kindBoolean).index; got != first[s] {
			t.Errorf("style %v: index %d, first %d", s, got, first[s])
		}
	}
	if r.Len() != len(styles) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(styles))
	}

	seed := maphash.MakeSeed()
	hashes := map[uint64]bool{}
	for _, s := range styles {
		hashes[maphash.Comparable(seed, s)] = true
	}
	if ratio := float64(len(hashes)) / float64(len(styles)); ratio < 0.6 {
		t.Errorf("only %.0f%% distinct style hashes", ratio*100)
	}
}

func TestStyleRegistryDescriptors(t *testing.T) {
	r := newStyleRegistry()
	s := Style{Fill: RGB(1, 2, 3)}

	n := r.describe(&s, kindNumber)
	b := r.describe(&s, kindBoolean)
	if n.index != b.index {
		t.Errorf("number and boolean with the same style: %d, %d", n.index, b.index)
	}
	if n.kind != kindNumber || b.kind != kindBoolean {
		t.Errorf("kinds %v, %v", n.kind, b.kind)
	}
	if n.s != "1" {
		t.Errorf("style attribute %q, want \"1\"", n.s)
	}

	// a date picks up the date default format and so is a different style
	d := r.describe(&s, kindDate)
	if d.index == n.index {
		t.Error("date shares the number style record")
	}
	if len(r.descriptors) != 3 {
		t.Errorf("%d cached descriptors, want 3", len(r.descriptors))
	}
}

func TestStyleRegistryPlainCells(t *testing.T) {
	r := newStyleRegistry()
	for _, k := range []cellKind{kindNumber, kindBoolean, kindString, kindSharedString, kindEmpty} {
		d := r.describe(nil, k)
		if d.index != 0 || d.s != "" {
			t.Errorf("%v: plain descriptor index %d", k, d.index)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("plain cells registered %d styles", r.Len())
	}

	d1 := r.describe(nil, kindDate)
	d2 := r.describe(nil, kindDate)
	if d1 != d2 || d1.index == 0 {
		t.Errorf("plain dates: %+v, %+v", d1, d2)
	}
	if r.Len() != 1 {
		t.Errorf("plain dates registered %d styles, want 1", r.Len())
	}
	if i, _ := r.styles.Index(defaultDateStyle); i != d1.index-builtinCellFormats {
		t.Errorf("default date style at %d, descriptor %d", i, d1.index)
	}
}
