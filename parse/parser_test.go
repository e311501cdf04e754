package parse

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/redline/docx"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/ocr"
)

// buildPDF writes a minimal PDF with one content stream per page. Each
// page lists its lines top to bottom.
func buildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	var (
		buf     bytes.Buffer
		offsets []int
	)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))

		var content strings.Builder
		content.WriteString("BT /F1 12 Tf 72 720 Td")
		for j, line := range lines {
			if j > 0 {
				content.WriteString(" 0 -16 Td")
			}
			fmt.Fprintf(&content, " (%s) Tj", line)
		}
		content.WriteString(" ET")
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	doc := model.NewDocument()
	for _, p := range paragraphs {
		doc.AddParagraph().Append(p, model.Unchanged)
	}
	data, err := docx.Marshal(doc)
	if err != nil {
		t.Fatalf("docx.Marshal: %v", err)
	}
	return data
}

func buildPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func assertKind(t *testing.T, err error, kind Kind, message string) {
	t.Helper()

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if perr.Kind != kind {
		t.Errorf("Kind = %v, want %v", perr.Kind, kind)
	}
	if message != "" && !strings.HasPrefix(perr.Message, message) {
		t.Errorf("Message = %q, want prefix %q", perr.Message, message)
	}
}

func TestParseEmpty(t *testing.T) {
	p := New(DefaultOptions())
	for _, typ := range []string{"docx", "pdf", "txt", "doc", "xyz"} {
		_, err := p.Parse(nil, typ)
		if !errors.Is(err, ErrEmptyFile) {
			t.Errorf("Parse(nil, %q) error = %v, want EmptyFile", typ, err)
		}
		assertKind(t, err, EmptyFile, "File is empty")
	}
}

func TestParseUnsupported(t *testing.T) {
	p := New(DefaultOptions())

	_, err := p.Parse([]byte("data"), "doc")
	assertKind(t, err, UnsupportedFormat, "Legacy .doc format not supported. Please convert to .docx")

	_, err = p.Parse([]byte("data"), "rtf")
	assertKind(t, err, UnsupportedFormat, "Unsupported file type: rtf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Error("expected errors.Is to match ErrUnsupportedFormat")
	}
}

func TestParseDOCX(t *testing.T) {
	p := New(DefaultOptions())

	text, err := p.Parse(buildDOCX(t, "First", "", "Третий"), "DOCX")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "First\n\nТретий" {
		t.Errorf("Parse() = %q", text)
	}
}

func TestParseDOCXFailures(t *testing.T) {
	p := New(DefaultOptions())

	_, err := p.Parse([]byte("this is not a zip archive"), "docx")
	assertKind(t, err, CorruptedFile, "Cannot parse DOCX file: ")
	if !errors.Is(err, ErrCorruptedFile) {
		t.Error("expected errors.Is to match ErrCorruptedFile")
	}

	ole := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0, 0, 0, 0}
	_, err = p.Parse(ole, "docx")
	assertKind(t, err, UnsupportedFormat, "Legacy .doc format")

	_, err = p.Parse(buildDOCX(t, "  ", ""), "docx")
	assertKind(t, err, EmptyFile, "File is empty")
}

func TestParseDOCXBreaks(t *testing.T) {
	text, err := New(DefaultOptions()).Parse(buildDOCX(t, "One\fTwo\vThree"), "docx")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "One\nTwo\nThree" {
		t.Errorf("Parse() = %q", text)
	}
}

func TestParseContentMismatch(t *testing.T) {
	p := New(DefaultOptions())
	ole := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0, 0, 0, 0}

	tests := []struct {
		name     string
		data     []byte
		declared string
		kind     Kind
		message  string
	}{
		{"pdf declared as docx", buildPDF(t, []string{"Hello"}), "docx", CorruptedFile, "File content does not match declared type docx: detected PDF"},
		{"docx declared as pdf", buildDOCX(t, "Hello"), "PDF", CorruptedFile, "File content does not match declared type pdf: detected DOCX"},
		{"docx declared as text", buildDOCX(t, "Hello"), "txt", CorruptedFile, "File content does not match declared type txt: detected DOCX"},
		{"pdf declared as markdown", buildPDF(t, []string{"Hello"}), "md", CorruptedFile, "File content does not match declared type md: detected PDF"},
		{"doc declared as text", ole, "txt", CorruptedFile, "File content does not match declared type txt: detected DOC"},
		{"png declared as pdf", buildPNG(t), "pdf", CorruptedFile, "File content does not match declared type pdf: detected Image"},
		{"doc declared as docx", ole, "docx", UnsupportedFormat, "Legacy .doc format not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.data, tt.declared)
			assertKind(t, err, tt.kind, tt.message)
		})
	}
}

func TestParseContentCompatible(t *testing.T) {
	p := New(DefaultOptions())

	// HTML is text, so it may be declared as plain text.
	text, err := p.Parse([]byte("<html><body>hi</body></html>"), "txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "<html><body>hi</body></html>" {
		t.Errorf("Parse() = %q", text)
	}

	// Text that happens to start like a BMP header is still text.
	text, err = p.Parse([]byte("BMW built this engine in 1998."), "txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "BMW built this engine in 1998." {
		t.Errorf("Parse() = %q", text)
	}
}

func TestParsePDF(t *testing.T) {
	p := New(DefaultOptions())

	data := buildPDF(t, []string{"Hello world", "Second line"}, []string{"Page two"})
	text, err := p.Parse(data, "pdf")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := "Hello world\nSecond line\nPage two"; text != want {
		t.Errorf("Parse() = %q, want %q", text, want)
	}
}

func TestParsePDFFailures(t *testing.T) {
	p := New(DefaultOptions())

	_, err := p.Parse([]byte("%PDF-1.4 truncated"), "pdf")
	assertKind(t, err, CorruptedFile, "Cannot parse PDF file: ")

	_, err = p.Parse(buildPDF(t), "pdf")
	assertKind(t, err, EmptyFile, "PDF file has no pages")

	_, err = p.Parse(buildPDF(t, nil), "pdf")
	assertKind(t, err, EmptyFile, "Could not extract text from PDF")
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8", []byte("  Привет, мир\n"), "Привет, мир"},
		{"utf-8 bom", []byte("\xEF\xBB\xBFhello"), "hello"},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"windows-1251", []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, "Привет"},
		{"latin-1 fallback", []byte{'c', 'a', 'f', 0xE9, 0x98}, "café\u0098"},
		{"paragraphs kept", []byte("a\n\nb"), "a\n\nb"},
	}

	p := New(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.data, "txt")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTextWhitespaceOnly(t *testing.T) {
	_, err := New(DefaultOptions()).Parse([]byte(" \n\t "), "txt")
	assertKind(t, err, EmptyFile, "File is empty")
}

func TestParseMarkdown(t *testing.T) {
	src := []byte("# Title\n\nSome *emphasis* and `code`.\nSame paragraph.\n\n- one\n- two\n\n```\nfmt.Println()\n```\n")

	raw, err := New(DefaultOptions()).Parse(src, "md")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if raw != strings.TrimSpace(string(src)) {
		t.Errorf("Parse() without stripping = %q", raw)
	}

	opts := DefaultOptions()
	opts.StripMarkdown = true
	plain, err := New(opts).Parse(src, "md")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "Title\nSome emphasis and code. Same paragraph.\none\ntwo\nfmt.Println()"
	if plain != want {
		t.Errorf("Parse() = %q, want %q", plain, want)
	}
}

func TestParseHTML(t *testing.T) {
	text, err := New(DefaultOptions()).Parse([]byte("<html><body><h1>Title</h1><p>Body text</p></body></html>"), "html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "Title\nBody text" {
		t.Errorf("Parse() = %q", text)
	}
}

func TestParseImage(t *testing.T) {
	p := New(DefaultOptions())
	var gotLang string
	p.recognize = func(data []byte, lang string) (string, error) {
		gotLang = lang
		return "  recognized text \n", nil
	}

	text, err := p.Parse(buildPNG(t), "png")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if text != "recognized text" {
		t.Errorf("Parse() = %q", text)
	}
	if gotLang != ocr.DefaultLanguage {
		t.Errorf("language = %q, want %q", gotLang, ocr.DefaultLanguage)
	}

	_, err = p.Parse([]byte("not an image"), "jpg")
	assertKind(t, err, CorruptedFile, "Cannot parse image file: ")
}

func TestParseImageWithoutOCR(t *testing.T) {
	if ocr.Enabled {
		t.Skip("OCR support compiled in")
	}

	_, err := New(DefaultOptions()).Parse(buildPNG(t), "png")
	assertKind(t, err, UnsupportedFormat, "")
	if !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("expected wrapped ErrOCRNotEnabled, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from a file\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	text, err := New(DefaultOptions()).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if text != "from a file" {
		t.Errorf("ParseFile() = %q", text)
	}

	if _, err := New(DefaultOptions()).ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseFileDetection(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}
	p := New(DefaultOptions())

	text, err := p.ParseFile(write("report.DOCX", buildDOCX(t, "Upper case extension")))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if text != "Upper case extension" {
		t.Errorf("ParseFile() = %q", text)
	}

	text, err = p.ParseFile(write("upload", buildDOCX(t, "No extension")))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if text != "No extension" {
		t.Errorf("ParseFile() = %q", text)
	}

	text, err = p.ParseFile(write("scan", buildPDF(t, []string{"Sniffed PDF"})))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if text != "Sniffed PDF" {
		t.Errorf("ParseFile() = %q", text)
	}

	_, err = p.ParseFile(write("notes.rtf", []byte("{\\rtf1 hi}")))
	assertKind(t, err, UnsupportedFormat, "Unsupported file type: notes.rtf")

	_, err = p.ParseFile(write("README", []byte("plain words")))
	assertKind(t, err, UnsupportedFormat, "Unsupported file type: README")
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		EmptyFile:         "EmptyFile",
		CorruptedFile:     "CorruptedFile",
		UnsupportedFormat: "UnsupportedFormat",
		Kind(42):          "Kind(42)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
