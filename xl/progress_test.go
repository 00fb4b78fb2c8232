package xl

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"slices"
	"testing"
)

// batches returns a generator writing n batches of size rows each and
// yielding the running row count.
func batches(n, size int) Generator[int] {
	return func(write func(rows ...RowElement) error) iter.Seq[int] {
		return func(yield func(int) bool) {
			total := 0
			for range n {
				rows := make([]RowElement, size)
				for i := range rows {
					rows[i] = NewRow(Int(int64(total), nil))
					total++
				}
				if err := write(rows...); err != nil {
					return
				}
				if !yield(total) {
					return
				}
			}
		}
	}
}

func mustProgressing(t *testing.T, name string, gen Generator[int]) *ProgressingWorksheet[int] {
	t.Helper()
	ws, err := NewProgressingWorksheet(name, nil, gen)
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func TestWriteWithProgress(t *testing.T) {
	var buf bytes.Buffer
	var got []int
	seq := WriteWithProgress(&buf, slices.Values([]*ProgressingWorksheet[int]{
		mustProgressing(t, "First", batches(3, 2)),
		mustProgressing(t, "Second", batches(2, 5)),
	}), testOptions())
	for p, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, p)
	}
	if want := []int{2, 4, 6, 5, 10}; !slices.Equal(got, want) {
		t.Errorf("checkpoints %v, want %v", got, want)
	}

	f := openBook(t, buf.Bytes())
	for sheet, n := range map[string]int{"First": 6, "Second": 10} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != n {
			t.Errorf("%s: %d rows, want %d", sheet, len(rows), n)
		}
	}
}

func TestWriteWithProgressError(t *testing.T) {
	var writeErr error
	bad := Generator[int](func(write func(rows ...RowElement) error) iter.Seq[int] {
		return func(yield func(int) bool) {
			if !yield(0) {
				return
			}
			writeErr = write(NewRowGroup(NewRow()))
			// a later write keeps failing the same way
			if err := write(NewRow()); !errors.Is(err, ErrRowGroupPlacement) {
				t.Errorf("second write: %v", err)
			}
			yield(1)
		}
	})
	var got []int
	var last error
	for p, err := range WriteWithProgress(io.Discard, slices.Values([]*ProgressingWorksheet[int]{
		mustProgressing(t, "Sheet1", bad),
	}), nil) {
		if err != nil {
			last = err
			continue
		}
		got = append(got, p)
	}
	if !errors.Is(writeErr, ErrRowGroupPlacement) {
		t.Errorf("write returned %v", writeErr)
	}
	if !errors.Is(last, ErrRowGroupPlacement) {
		t.Errorf("sequence ended with %v", last)
	}
	if !slices.Equal(got, []int{0}) {
		t.Errorf("checkpoints %v", got)
	}
}

func TestWriteWithProgressStop(t *testing.T) {
	seq := WriteWithProgress(io.Discard, slices.Values([]*ProgressingWorksheet[int]{
		mustProgressing(t, "Sheet1", batches(10, 1)),
	}), nil)
	n := 0
	for _, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		if n++; n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("%d checkpoints seen", n)
	}
}

func TestWriteProgressSingleUse(t *testing.T) {
	w := NewWriter(NewDirStorage(t.TempDir()), testOptions())
	sheets := slices.Values([]*ProgressingWorksheet[int]{mustProgressing(t, "Sheet1", batches(1, 1))})
	for _, err := range WriteProgress(w, sheets) {
		if err != nil {
			t.Fatal(err)
		}
	}
	var last error
	for _, err := range WriteProgress(w, sheets) {
		last = err
	}
	if !errors.Is(last, ErrWriterUsed) {
		t.Errorf("second write: %v", last)
	}
}
