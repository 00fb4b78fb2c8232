package xl

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"

	"github.com/adnsv/srw/xml"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Writer streams one workbook into a Storage. Worksheets are written as they
// are visited; the tables they reference (shared strings, styles) are
// written once every worksheet is done.
//
// A Writer is single use and not safe for concurrent use.
type Writer struct {
	out            Storage
	opts           Options
	log            *slog.Logger
	lastGlobalId   int
	lastWorkbookId int
	used           bool

	GlobalRels          map[string]RelInfo // maps id to absolute path
	WorkbookRels        map[string]RelInfo // maps id to absolute paths
	DefaultContentTypes map[string]string  // maps path extension to content-type
	PartContentTypes    map[string]string  // maps path partname to content-type

	wb      workbook
	strings *sharedStrings
	styles  *styleRegistry
	letters columnLetters
}

type RelInfo struct {
	Type   string // url to schema type
	Target string // relative path
}

// NewWriter returns a Writer producing parts in s. opts may be nil.
func NewWriter(s Storage, opts *Options) *Writer {
	o := opts.withDefaults()
	w := &Writer{
		out:                 s,
		opts:                o,
		log:                 o.Logger,
		GlobalRels:          map[string]RelInfo{},
		WorkbookRels:        map[string]RelInfo{},
		DefaultContentTypes: map[string]string{},
		PartContentTypes:    map[string]string{},

		strings: newSharedStrings(),
		styles:  newStyleRegistry(),
	}

	w.DefaultContentTypes["xml"] = "application/xml"
	w.DefaultContentTypes["rels"] = "application/vnd.openxmlformats-package.relationships+xml"

	return w
}

// Write streams sheets into out as a spreadsheet package. opts may be nil.
// The output is always finalized, but after an error it is not a valid
// package and should be discarded.
func Write(out io.Writer, sheets iter.Seq[*Worksheet], opts *Options) (err error) {
	o := opts.withDefaults()
	zs := NewZipStorage(out, o.CompressionLevel)
	defer func() {
		if cerr := zs.Close(); err == nil {
			err = cerr
		}
	}()
	return NewWriter(zs, &o).Write(sheets)
}

// Write writes every sheet in order and then the workbook-level parts.
func (w *Writer) Write(sheets iter.Seq[*Worksheet]) error {
	if err := w.begin(); err != nil {
		return err
	}
	for sh := range sheets {
		if sh == nil {
			return fmt.Errorf("%w: nil worksheet", ErrInvalidSheetName)
		}
		err := w.writeSheet(sh.name, sh.params, func(v *sheetVisitor) error {
			return v.visitAll(sh.rows)
		})
		if err != nil {
			return err
		}
	}
	return w.finish()
}

func (w *Writer) begin() error {
	if w.used {
		return ErrWriterUsed
	}
	w.used = true
	return nil
}

// finish writes everything that depends on the complete set of sheets.
func (w *Writer) finish() error {
	if err := w.wb.validate(); err != nil {
		return err
	}

	err := w.writeWorkbook()
	if err != nil {
		return err
	}

	if w.strings.table.Len() > 0 {
		err = w.writeSharedStrings()
		if err != nil {
			return err
		}
	}

	if w.styles.Len() > 0 {
		err = w.writeStyles()
		if err != nil {
			return err
		}
	}

	err = w.writeCoreProperties()
	if err != nil {
		return err
	}
	err = w.writeExtendedProperties()
	if err != nil {
		return err
	}

	err = w.writeRels("/xl/_rels/workbook.xml.rels", w.WorkbookRels)
	if err != nil {
		return err
	}

	err = w.writeRels("/_rels/.rels", w.GlobalRels)
	if err != nil {
		return err
	}

	err = w.writeContentTypes()
	if err != nil {
		return err
	}

	w.log.Info("workbook written", "sheets", len(w.wb.sheets), "styles", len(w.styles.descriptors))
	return nil
}

func (w *Writer) nextGlobalID() (int, string) {
	w.lastGlobalId++
	return w.lastGlobalId, fmt.Sprintf("rId%d", w.lastGlobalId)
}
func (w *Writer) nextWorkbookID() (int, string) {
	w.lastWorkbookId++
	return w.lastWorkbookId, fmt.Sprintf("rId%d", w.lastWorkbookId)
}

// writePart streams one part through a buffered XML writer.
func (w *Writer) writePart(abspath string, cfg xml.WriterConfig, fn func(x *xml.Writer) error) error {
	f, err := w.out.Create(abspath)
	if err != nil {
		return fmt.Errorf("create %s: %w", abspath, err)
	}
	bw := bufio.NewWriterSize(f, w.opts.BufferSize)
	x := xml.NewWriter(bw, cfg)
	x.XmlStandaloneDecl()

	if err = fn(x); err != nil {
		f.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", abspath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", abspath, err)
	}
	return nil
}

// writeSheet writes one worksheet part; body fills its sheetData.
func (w *Writer) writeSheet(name string, params *Parameters, body func(v *sheetVisitor) error) error {
	if err := params.validate(); err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	_, rid := w.nextWorkbookID()
	rec := w.wb.addSheet(name, rid)
	abspath := "/xl/" + rec.relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	w.WorkbookRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet",
		Target: rec.relpath,
	}

	var rows, merges int
	err := w.writePart(abspath, xml.WriterConfig{}, func(x *xml.Writer) error {
		x.OTag("worksheet")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
		x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

		writeSheetParameters(x, params)

		v := newSheetVisitor(x, w, params)
		x.OTag("+sheetData")
		if err := body(v); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		if err := v.close(); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		x.CTag() // sheetData

		n, err := v.merges.write(x)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}

		x.CTag() // worksheet
		rows, merges = v.row, n
		return nil
	})
	if err != nil {
		return err
	}
	w.log.Debug("sheet written", "name", name, "part", abspath, "rows", rows, "merges", merges)
	return nil
}

func writeSheetParameters(x *xml.Writer, p *Parameters) {
	if p == nil {
		return
	}

	x.OTag("+sheetPr")
	x.OTag("+outlinePr")
	x.Attr("summaryBelow", boolAttr(p.SummaryBelow))
	x.Attr("summaryRight", boolAttr(p.SummaryRight))
	x.CTag() // outlinePr
	x.CTag() // sheetPr

	if f := p.Freeze; f != nil && (f.Row > 0 || f.Column > 0) {
		x.OTag("+sheetViews")
		x.OTag("+sheetView").Attr("workbookViewId", 0)
		x.OTag("+pane")
		if f.Column > 0 {
			x.Attr("xSplit", f.Column)
		}
		if f.Row > 0 {
			x.Attr("ySplit", f.Row)
		}
		x.Attr("topLeftCell", CellCoordAsString(f.Column, f.Row))
		x.Attr("activePane", f.activePane())
		x.Attr("state", "frozen")
		x.CTag() // pane
		x.CTag() // sheetView
		x.CTag() // sheetViews
	}

	if len(p.Columns) > 0 {
		x.OTag("+cols")
		for _, c := range p.Columns {
			x.OTag("+col").Attr("min", c.Min+1).Attr("max", c.Max+1)
			if c.Width > 0 {
				x.Attr("width", strconv.FormatFloat(c.Width, 'f', -1, 64)).Attr("customWidth", 1)
			}
			if c.OutlineLevel > 0 {
				x.Attr("outlineLevel", c.OutlineLevel)
			}
			x.CTag()
		}
		x.CTag()
	}
}

func boolAttr(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (w *Writer) writeWorkbook() error {
	_, rid := w.nextGlobalID()

	relpath := "xl/workbook.xml"
	abspath := "/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	w.GlobalRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument",
		Target: relpath,
	}

	return w.writePart(abspath, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("workbook")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
		x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

		x.OTag("+sheets")
		for _, sheet := range w.wb.sheets {
			x.OTag("+sheet")
			x.Attr("name", sheet.name)
			x.Attr("sheetId", sheet.id)
			x.Attr("r:id", sheet.rid)
			x.CTag()
		}
		x.CTag()

		x.CTag()
		return nil
	})
}

func (w *Writer) writeContentTypes() error {
	return w.writePart("[Content_Types].xml", w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("Types")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")
		enumerate(w.DefaultContentTypes, func(ext, ctype string) error {
			x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
			return nil
		})
		enumerate(w.PartContentTypes, func(abspath, ctype string) error {
			x.OTag("+Override").Attr("PartName", abspath).Attr("ContentType", ctype).CTag()
			return nil
		})

		x.CTag()
		return nil
	})
}

func (w *Writer) writeRels(path string, rels map[string]RelInfo) error {
	return w.writePart(path, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("Relationships")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
		err := enumerate(rels, func(rid string, info RelInfo) error {
			x.OTag("+Relationship").Attr("Id", rid).Attr("Type", info.Type).Attr("Target", info.Target)
			x.CTag()

			return nil
		})
		if err != nil {
			return err
		}
		x.CTag()
		return nil
	})
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
