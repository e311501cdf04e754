// Package parse extracts plain text from uploaded documents.
//
// A Parser dispatches on the client's declared file type: DOCX, PDF, plain
// text and Markdown, HTML, and raster images through OCR. Every failure is
// an *Error with one of three kinds, EmptyFile, CorruptedFile or
// UnsupportedFormat, whose message can be returned to the user unchanged.
package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/redline/docx"
	"github.com/tsawler/redline/format"
	"github.com/tsawler/redline/htmldoc"
	"github.com/tsawler/redline/ocr"
)

// Options configures a Parser.
type Options struct {
	// StripMarkdown renders Markdown uploads to plain text instead of
	// returning the source verbatim.
	StripMarkdown bool

	// OCRLanguage is the Tesseract language list used for images.
	// Empty selects ocr.DefaultLanguage.
	OCRLanguage string
}

// DefaultOptions returns the default parser options.
func DefaultOptions() Options {
	return Options{
		OCRLanguage: ocr.DefaultLanguage,
	}
}

// Parser extracts text from documents. It holds no mutable state and is
// safe for concurrent use.
type Parser struct {
	opts      Options
	recognize func(data []byte, lang string) (string, error)
}

// New returns a Parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts, recognize: ocr.Recognize}
}

// Parse extracts text from data according to the declared file type
// (case-insensitive, e.g. "docx", "pdf", "txt", "md"). Content whose
// signature belongs to a different format is rejected. The result is
// trimmed of surrounding whitespace and never empty.
func (p *Parser) Parse(data []byte, declaredType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	f := format.ParseType(declaredType)
	switch f {
	case format.Unknown:
		return "", newError(UnsupportedFormat, nil, "Unsupported file type: %s", declaredType)
	case format.DOC:
		return "", newError(UnsupportedFormat, nil, "Legacy .doc format not supported. Please convert to .docx")
	}
	if err := checkContent(data, f, declaredType); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch f {
	case format.DOCX:
		text, err = parseDOCX(data)
	case format.PDF:
		text, err = parsePDF(data)
	case format.TXT:
		text, err = parseText(data, false)
	case format.Markdown:
		text, err = parseText(data, p.opts.StripMarkdown)
	case format.HTML:
		text, err = parseHTML(data)
	case format.Image:
		text, err = p.parseImage(data)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyFile
	}
	return text, nil
}

// ParseFile reads a file and parses it with the type taken from its
// extension. A file without an extension is typed by its content.
func (p *Parser) ParseFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	f := format.Detect(path)
	if f == format.Unknown && filepath.Ext(path) == "" {
		f, _ = format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	}
	if f == format.Unknown {
		return "", newError(UnsupportedFormat, nil, "Unsupported file type: %s", filepath.Base(path))
	}
	return p.Parse(data, f.Extension())
}

// checkContent compares the declared format with the one the leading bytes
// identify. Text formats only reject binary documents, since plain text can
// start with anything.
func checkContent(data []byte, declared format.Format, declaredType string) error {
	detected, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil || detected == format.Unknown || detected == declared {
		return nil
	}

	switch {
	case declared == format.DOCX && detected == format.DOC:
		return newError(UnsupportedFormat, nil, "Legacy .doc format not supported. Please convert to .docx")
	case declared.IsText() && detected.IsText():
		return nil
	case declared.IsText() && detected == format.Image:
		return nil
	}
	return newError(CorruptedFile, nil, "File content does not match declared type %s: detected %s",
		strings.ToLower(strings.TrimSpace(declaredType)), detected)
}

func parseDOCX(data []byte) (string, error) {
	r, err := docx.OpenBytes(data)
	if err != nil {
		return "", newError(CorruptedFile, err, "Cannot parse DOCX file: %v", err)
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", newError(CorruptedFile, err, "Cannot parse DOCX file: %v", err)
	}

	// Page breaks and carriage returns read as line breaks.
	return strings.NewReplacer("\f", "\n", "\v", "\n").Replace(text), nil
}

func parseHTML(data []byte) (string, error) {
	text, err := parseText(data, false)
	if err != nil {
		return "", err
	}

	r, err := htmldoc.OpenReader(strings.NewReader(text))
	if err != nil {
		return "", newError(CorruptedFile, err, "Cannot parse HTML file: %v", err)
	}
	return r.Text()
}
