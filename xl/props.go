package xl

import (
	"time"

	"github.com/adnsv/srw/xml"
	"github.com/google/uuid"
)

// documentID returns the package identifier recorded in the core
// properties.
func (w *Writer) documentID() string {
	if w.opts.DocumentID != "" {
		return w.opts.DocumentID
	}
	return "urn:uuid:" + uuid.NewString()
}

func (w *Writer) writeCoreProperties() error {
	_, rid := w.nextGlobalID()

	relpath := "docProps/core.xml"
	abspath := "/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-package.core-properties+xml"
	w.GlobalRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties",
		Target: relpath,
	}

	created := w.opts.Created
	if created.IsZero() {
		created = time.Now()
	}

	return w.writePart(abspath, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("cp:coreProperties")
		x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
		x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
		x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
		x.Attr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
		x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

		x.OTag("+dc:identifier").String(w.documentID()).CTag()
		if w.opts.Creator != "" {
			x.OTag("+dc:creator").String(w.opts.Creator).CTag()
		}

		x.OTag("+dcterms:created")
		x.Attr("xsi:type", "dcterms:W3CDTF")
		x.Write(created.UTC().Format(time.RFC3339))
		x.CTag()

		x.CTag()
		return nil
	})
}

func (w *Writer) writeExtendedProperties() error {
	_, rid := w.nextGlobalID()

	relpath := "docProps/app.xml"
	abspath := "/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	w.GlobalRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties",
		Target: relpath,
	}

	return w.writePart(abspath, w.metaConfig(), func(x *xml.Writer) error {
		x.OTag("Properties")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
		x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

		if w.opts.AppName != "" {
			x.OTag("+Application").String(w.opts.AppName).CTag()
		}

		x.CTag()
		return nil
	})
}
