package xl

import (
	"log/slog"
	"time"

	"github.com/adnsv/srw/xml"
)

// DefaultBufferSize is the size of the write buffer placed in front of each
// package part.
const DefaultBufferSize = 64 << 10

// Options configure a workbook write. The zero value is usable; nil
// *Options mean DefaultOptions.
type Options struct {
	// AppName is recorded as the producing application.
	AppName string
	// Creator is recorded as the document author.
	Creator string
	// DocumentID is the package identifier; a random UUID when empty.
	DocumentID string
	// Created is the creation timestamp; the time of the write when zero.
	Created time.Time

	// CompressionLevel is the deflate level of the ZIP container, 1 to 9.
	// Zero selects the default level.
	CompressionLevel int
	// BufferSize is the write buffer size per part.
	BufferSize int
	// Indent pretty-prints the workbook metadata parts. Worksheets are
	// always written compact.
	Indent bool

	Logger *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		AppName:    "JumboExcel",
		BufferSize: DefaultBufferSize,
	}
}

// withDefaults returns a copy of o with unset fields filled in.
func (o *Options) withDefaults() Options {
	if o == nil {
		o = DefaultOptions()
	}
	r := *o
	if r.BufferSize <= 0 {
		r.BufferSize = DefaultBufferSize
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// metaConfig is the XML writer configuration for parts other than
// worksheets.
func (w *Writer) metaConfig() xml.WriterConfig {
	if w.opts.Indent {
		return xml.WriterConfig{Indent: xml.Indent2Spaces}
	}
	return xml.WriterConfig{}
}
