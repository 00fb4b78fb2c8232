package xl

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Generator produces the rows of a progressing worksheet in batches. It
// returns a sequence that, as it is iterated, pushes batches through write
// and yields a checkpoint after each one. write fails with the traversal
// error of the batch, and any later call fails with the same error.
type Generator[P any] func(write func(rows ...RowElement) error) iter.Seq[P]

// ProgressingWorksheet is a worksheet whose rows are pushed by a Generator
// while the caller observes checkpoints.
type ProgressingWorksheet[P any] struct {
	name      string
	params    *Parameters
	generator Generator[P]
}

// NewProgressingWorksheet validates name and returns a worksheet fed by gen.
// params may be nil.
func NewProgressingWorksheet[P any](name string, params *Parameters, gen Generator[P]) (*ProgressingWorksheet[P], error) {
	if gen == nil {
		return nil, errors.New("nil row generator")
	}
	if err := validateSheetName(name, params.compatibility()); err != nil {
		return nil, err
	}
	return &ProgressingWorksheet[P]{name: name, params: params, generator: gen}, nil
}

// Name returns the worksheet name.
func (ws *ProgressingWorksheet[P]) Name() string { return ws.name }

// errStopped ends a sheet when the caller stops iterating checkpoints.
var errStopped = errors.New("stopped")

// WriteWithProgress is Write for progressing worksheets. The returned
// sequence writes the package as it is iterated, yielding each checkpoint of
// each sheet in order; an error is yielded once, as the last element. The
// package is complete only if the sequence is iterated to its end without an
// error.
func WriteWithProgress[P any](out io.Writer, sheets iter.Seq[*ProgressingWorksheet[P]], opts *Options) iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		o := opts.withDefaults()
		zs := NewZipStorage(out, o.CompressionLevel)
		ok := true
		for p, err := range WriteProgress(NewWriter(zs, &o), sheets) {
			if err != nil {
				zs.Close()
				yield(p, err)
				return
			}
			if ok = yield(p, nil); !ok {
				break
			}
		}
		if err := zs.Close(); err != nil && ok {
			var zero P
			yield(zero, err)
		}
	}
}

// WriteProgress is (*Writer).Write for progressing worksheets; see
// WriteWithProgress.
func WriteProgress[P any](w *Writer, sheets iter.Seq[*ProgressingWorksheet[P]]) iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		var zero P
		if err := w.begin(); err != nil {
			yield(zero, err)
			return
		}
		for sh := range sheets {
			if sh == nil {
				yield(zero, fmt.Errorf("%w: nil worksheet", ErrInvalidSheetName))
				return
			}
			err := w.writeSheet(sh.name, sh.params, func(v *sheetVisitor) error {
				var werr error
				write := func(rows ...RowElement) error {
					if werr == nil {
						werr = v.visitAll(slices.Values(rows))
					}
					return werr
				}
				for p := range sh.generator(write) {
					if werr != nil {
						return werr
					}
					if !yield(p, nil) {
						return errStopped
					}
				}
				return werr
			})
			if errors.Is(err, errStopped) {
				return
			}
			if err != nil {
				yield(zero, err)
				return
			}
		}
		if err := w.finish(); err != nil {
			yield(zero, err)
		}
	}
}
