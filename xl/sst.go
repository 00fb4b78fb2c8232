package xl

import "github.com/adnsv/srw/xml"

// sharedStrings is the workbook's shared string table.
type sharedStrings struct {
	table *SharedTable[string]
	refs  int // cells referencing the table
}

func newSharedStrings() *sharedStrings {
	return &sharedStrings{table: NewSharedTable[string]()}
}

// ref returns the table index of s, adding it when needed.
func (ss *sharedStrings) ref(s string) int {
	ss.refs++
	return ss.table.Allocate(s)
}

func (w *Writer) writeSharedStrings() error {
	_, rid := w.nextWorkbookID()

	relpath := "sharedStrings.xml"
	abspath := "/xl/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	w.WorkbookRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings",
		Target: relpath,
	}

	unique := w.strings.table.Len()
	err := w.writePart(abspath, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("sst")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
		x.Attr("count", w.strings.refs)
		x.Attr("uniqueCount", unique)

		// Strings are released while they are written.
		err := w.strings.table.Drain(func(_ int, s string) error {
			x.OTag("+si")
			writeText(x, s)
			x.CTag()
			return nil
		})
		if err != nil {
			return err
		}

		x.CTag()
		return nil
	})
	if err != nil {
		return err
	}
	w.log.Debug("shared strings written", "unique", unique, "refs", w.strings.refs)
	return nil
}
