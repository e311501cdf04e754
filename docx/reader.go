// Package docx reads and writes DOCX (Office Open XML) documents.
//
// [Marshal] and [Write] serialize a [model.Document] into a minimal
// WordprocessingML package. Run categories become a foreground colour plus
// a highlight, so a diff document opens in Word with insertions, deletions
// and fact corrections marked.
//
// [Open] and [OpenBytes] read an existing package for text extraction, and
// [Reader.Document] recovers run categories from highlight colours.
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

// Reader provides access to DOCX document content.
type Reader struct {
	closer     io.Closer
	zipReader  *zip.Reader
	document   *documentXML
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	paragraphs []parsedParagraph
	tables     []ParsedTable
}

// parsedParagraph holds a parsed paragraph.
type parsedParagraph struct {
	Text    string
	StyleID string
	Runs    []parsedRun
}

// parsedRun holds a parsed text run.
type parsedRun struct {
	Text      string
	Bold      bool
	Italic    bool
	Color     string
	Highlight string
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenBytes reads a DOCX package held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse document.xml
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Parse metadata (optional)
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		partContentTypes,
		partDocument,
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Text returns the paragraphs joined by newlines. Tables follow after a
// blank line, one row per line with cells separated by tabs.
func (r *Reader) Text() (string, error) {
	if r.document == nil {
		return "", fmt.Errorf("document not parsed")
	}

	var result strings.Builder
	result.WriteString(r.ParagraphText())

	var rows []string
	for i := range r.tables {
		if t := r.tables[i].ToText(); t != "" {
			rows = append(rows, t)
		}
	}
	if len(rows) > 0 {
		result.WriteString("\n\n")
		result.WriteString(strings.Join(rows, "\n"))
	}

	return result.String(), nil
}

// ParagraphText returns only the body paragraphs joined by newlines.
func (r *Reader) ParagraphText() string {
	texts := make([]string, len(r.paragraphs))
	for i, para := range r.paragraphs {
		texts[i] = para.Text
	}
	return strings.Join(texts, "\n")
}

// Tables returns the tables found in the document body.
func (r *Reader) Tables() []ParsedTable {
	return r.tables
}

// Document returns a model.Document representation of the DOCX content.
// Each run's category is recovered from its highlight colour.
func (r *Reader) Document() (*model.Document, error) {
	if r.document == nil {
		return nil, fmt.Errorf("document not parsed")
	}

	doc := model.NewDocument()
	doc.Metadata = r.Metadata()
	for _, para := range r.paragraphs {
		p := doc.AddParagraph()
		for _, run := range para.Runs {
			p.Append(run.Text, model.CategoryFromHighlight(model.Highlight(run.Highlight)))
		}
	}
	return doc, nil
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		if r.coreProps.Keywords != "" {
			meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
			for i, kw := range meta.Keywords {
				meta.Keywords[i] = strings.TrimSpace(kw)
			}
		}
		meta.CreationDate, _ = time.Parse(time.RFC3339, r.coreProps.Created)
		meta.ModDate, _ = time.Parse(time.RFC3339, r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent(partDocument)
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	r.processBody()

	return nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent(partCore)
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent(partApp)
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// processBody converts body paragraphs and tables.
func (r *Reader) processBody() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]parsedParagraph, 0, len(r.document.Body.Paragraphs))
	for _, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, processParagraph(p))
	}

	for _, tbl := range r.document.Body.Tables {
		r.tables = append(r.tables, parseTable(tbl))
	}
}

// processParagraph processes a single paragraph.
func processParagraph(p paragraphXML) parsedParagraph {
	parsed := parsedParagraph{
		StyleID: p.Properties.Style.Val,
	}

	var sb strings.Builder
	for _, run := range p.Runs {
		if run.Text == "" {
			continue
		}
		sb.WriteString(run.Text)
		parsed.Runs = append(parsed.Runs, parsedRun{
			Text:      run.Text,
			Bold:      isOn(run.Properties.Bold),
			Italic:    isOn(run.Properties.Italic),
			Color:     run.Properties.Color.Val,
			Highlight: run.Properties.Highlight.Val,
		})
	}
	parsed.Text = sb.String()

	return parsed
}

// isOn reports whether a toggle property such as <w:b/> is set.
func isOn(b boolXML) bool {
	return b.XMLName.Local != "" && b.Val != "false" && b.Val != "0"
}
