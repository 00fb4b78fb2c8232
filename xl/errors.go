package xl

import "errors"

// Construction-time validation errors.
var (
	ErrInvalidSheetName = errors.New("invalid sheet name")
	ErrSheetNameTooLong = errors.New("the sheet name is too long")
	ErrOutOfRange       = errors.New("value out of range")
	ErrInvalidFormat    = errors.New("invalid number format")
)

// Errors raised while a workbook is being written. Any of them aborts the
// write; the output produced so far is not a valid package.
var (
	ErrDuplicateSheetName = errors.New("duplicate sheet name")
	ErrNoSheets           = errors.New("workbook has no sheets")
	ErrRowGroupPlacement  = errors.New("row group must follow a simple row")
	ErrEmptyRowGroup      = errors.New("row group has no rows")
	ErrOutlineOverflow    = errors.New("row outline level overflow, max row grouping level is 255")
	ErrInvalidMerge       = errors.New("invalid merged cell range")
	ErrInvalidNumber      = errors.New("number can not be represented in a cell")
	ErrTooManyRows        = errors.New("too many rows")
	ErrTooManyColumns     = errors.New("too many columns")
	ErrWriterUsed         = errors.New("writer has already been used")
)

// ErrDrained is returned by SharedTable when its entries have already been
// consumed by Drain.
var ErrDrained = errors.New("the collection is drained already")
