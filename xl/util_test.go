package xl

import (
	"bytes"
	"io"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

// testOptions keep packages reproducible.
func testOptions() *Options {
	return &Options{
		AppName:    "test",
		DocumentID: "urn:uuid:00000000-0000-0000-0000-000000000000",
		Created:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func mustSheet(t testing.TB, name string, params *Parameters, rows ...RowElement) *Worksheet {
	t.Helper()
	ws, err := NewWorksheet(name, params, slices.Values(rows))
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func sheets(ws ...*Worksheet) iter.Seq[*Worksheet] {
	return slices.Values(ws)
}

func writeBook(t testing.TB, ws ...*Worksheet) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, sheets(ws...), testOptions()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// packageParts returns the part contents of a package in archive order.
func packageParts(t testing.TB, b []byte) ([]string, map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	parts := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, f.Name)
		parts[f.Name] = data
	}
	return names, parts
}

func openBook(t testing.TB, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func rawValue(t testing.TB, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	return v
}
