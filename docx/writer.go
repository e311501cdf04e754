package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/redline/model"
)

// Application is recorded in docProps/app.xml of written packages.
const Application = "redline"

// xmlHeader precedes every XML part.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Marshal serializes doc as a DOCX package.
func Marshal(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes doc as a DOCX package to w. Every paragraph becomes a
// <w:p> and every run a <w:r> whose colour and highlight come from the
// run's category. The output is deterministic for a given document.
func Write(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	documentPart, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding document.xml: %w", err)
	}
	corePart, err := encodeCore(doc.Metadata)
	if err != nil {
		return fmt.Errorf("encoding core.xml: %w", err)
	}

	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{partContentTypes, contentTypesPart},
		{partRootRels, rootRelsPart},
		{partDocument, func() ([]byte, error) { return documentPart, nil }},
		{partDocumentRels, documentRelsPart},
		{partStyles, func() ([]byte, error) { return []byte(stylesXML), nil }},
		{partCore, func() ([]byte, error) { return corePart, nil }},
		{partApp, func() ([]byte, error) { return appPart(doc) }},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		data, err := part.data()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", part.name, err)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   part.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing ZIP archive: %w", err)
	}
	return nil
}

// marshalPart encodes v with the XML declaration prepended.
func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

func contentTypesPart() ([]byte, error) {
	return marshalPart(contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/" + partDocument, ContentType: ctDocument},
			{PartName: "/" + partStyles, ContentType: ctStyles},
			{PartName: "/" + partCore, ContentType: ctCore},
			{PartName: "/" + partApp, ContentType: ctExtended},
		},
	})
}

func rootRelsPart() ([]byte, error) {
	return marshalPart(relationshipsXML{
		Xmlns: nsRelationships,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
			{ID: "rId2", Type: relCoreProps, Target: partCore},
			{ID: "rId3", Type: relExtendedProps, Target: partApp},
		},
	})
}

func documentRelsPart() ([]byte, error) {
	return marshalPart(relationshipsXML{
		Xmlns: nsRelationships,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
		},
	})
}

func appPart(doc *model.Document) ([]byte, error) {
	return marshalPart(appPropertiesXML{
		Xmlns:       nsExtended,
		Application: Application,
		Paragraphs:  doc.ParagraphCount(),
	})
}

// wName builds a WordprocessingML element or attribute name. The prefix is
// written literally and bound by the xmlns:w declaration on the root.
func wName(local string) xml.Name {
	return xml.Name{Local: "w:" + local}
}

func wVal(val string) []xml.Attr {
	return []xml.Attr{{Name: wName("val"), Value: val}}
}

// encoder wraps xml.Encoder and keeps the first error.
type encoder struct {
	enc *xml.Encoder
	err error
}

func (e *encoder) token(t xml.Token) {
	if e.err == nil {
		e.err = e.enc.EncodeToken(t)
	}
}

func (e *encoder) start(local string, attrs ...xml.Attr) {
	e.token(xml.StartElement{Name: wName(local), Attr: attrs})
}

func (e *encoder) end(local string) {
	e.token(xml.EndElement{Name: wName(local)})
}

// empty writes a self-contained element such as <w:tab></w:tab>.
func (e *encoder) empty(local string, attrs ...xml.Attr) {
	e.start(local, attrs...)
	e.end(local)
}

func (e *encoder) flush() error {
	if e.err == nil {
		e.err = e.enc.Flush()
	}
	return e.err
}

// encodeDocument renders word/document.xml.
func encodeDocument(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	e := &encoder{enc: xml.NewEncoder(&buf)}
	e.token(xml.StartElement{
		Name: wName("document"),
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: nsW},
			{Name: xml.Name{Local: "xmlns:r"}, Value: nsR},
		},
	})
	e.start("body")
	for _, para := range doc.Paragraphs {
		encodeParagraph(e, para)
	}
	e.start("sectPr")
	e.empty("pgSz", xml.Attr{Name: wName("w"), Value: "11906"}, xml.Attr{Name: wName("h"), Value: "16838"})
	e.empty("pgMar",
		xml.Attr{Name: wName("top"), Value: "1134"},
		xml.Attr{Name: wName("right"), Value: "850"},
		xml.Attr{Name: wName("bottom"), Value: "1134"},
		xml.Attr{Name: wName("left"), Value: "1701"},
	)
	e.end("sectPr")
	e.end("body")
	e.end("document")

	if err := e.flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeParagraph(e *encoder, para *model.Paragraph) {
	e.start("p")
	if para != nil {
		for _, run := range para.Runs {
			encodeRun(e, run)
		}
	}
	e.end("p")
}

func encodeRun(e *encoder, run model.Run) {
	if run.Text == "" {
		return
	}

	e.start("r")
	if style := run.Style(); !style.IsDefault() {
		e.start("rPr")
		if style.Foreground != model.ColorDefault {
			e.empty("color", wVal(style.Foreground)...)
		}
		if style.Highlight != model.HighlightNone {
			e.empty("highlight", wVal(string(style.Highlight))...)
		}
		e.end("rPr")
	}

	encodeRunText(e, run.Text)
	e.end("r")
}

// encodeRunText writes text as w:t segments. Tabs, newlines, vertical tabs
// and form feeds become w:tab, w:br, w:cr and page breaks. Other
// characters XML 1.0 cannot carry (C0 controls, U+FFFE and U+FFFF) are
// dropped.
func encodeRunText(e *encoder, text string) {
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		e.start("t", xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: "preserve"})
		e.token(xml.CharData(sb.String()))
		e.end("t")
		sb.Reset()
	}

	for _, r := range text {
		switch {
		case r == '\t':
			flush()
			e.empty("tab")
		case r == '\n':
			flush()
			e.empty("br")
		case r == '\v':
			flush()
			e.empty("cr")
		case r == '\f':
			flush()
			e.empty("br", xml.Attr{Name: wName("type"), Value: "page"})
		case r == '\r':
			sb.WriteRune(r)
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		default:
			sb.WriteRune(r)
		}
	}
	flush()
}

// encodeCore renders docProps/core.xml. Dates are written only when set,
// so an undated document always encodes to the same bytes.
func encodeCore(meta model.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	e := &encoder{enc: xml.NewEncoder(&buf)}
	root := xml.Name{Local: "cp:coreProperties"}
	e.token(xml.StartElement{
		Name: root,
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:cp"}, Value: nsCP},
			{Name: xml.Name{Local: "xmlns:dc"}, Value: nsDC},
			{Name: xml.Name{Local: "xmlns:dcterms"}, Value: nsDCTerms},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: nsXSI},
		},
	})

	text := func(name, value string, attrs ...xml.Attr) {
		if value == "" {
			return
		}
		n := xml.Name{Local: name}
		e.token(xml.StartElement{Name: n, Attr: attrs})
		e.token(xml.CharData(value))
		e.token(xml.EndElement{Name: n})
	}
	date := func(name string, t time.Time) {
		if t.IsZero() {
			return
		}
		text(name, t.UTC().Format(time.RFC3339), xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: "dcterms:W3CDTF"})
	}

	text("dc:title", meta.Title)
	text("dc:subject", meta.Subject)
	text("dc:creator", meta.Author)
	text("cp:keywords", strings.Join(meta.Keywords, ", "))
	date("dcterms:created", meta.CreationDate)
	date("dcterms:modified", meta.ModDate)
	e.token(xml.EndElement{Name: root})

	if err := e.flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
