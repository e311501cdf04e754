// Package format identifies the format of an uploaded file, either from the
// declared type the client sends or from the file's leading bytes.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// TXT indicates plain text.
	TXT
	// Markdown indicates a Markdown (.md) document.
	Markdown
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// DOC indicates a legacy Word 97-2003 (.doc) document.
	DOC
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
	// Image indicates a raster image (PNG, JPEG, TIFF, BMP or WebP).
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case TXT:
		return "TXT"
	case Markdown:
		return "Markdown"
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case TXT:
		return ".txt"
	case Markdown:
		return ".md"
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case PDF:
		return ".pdf"
	case HTML:
		return ".html"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// IsText reports whether the format is decoded as text before parsing.
func (f Format) IsText() bool {
	return f == TXT || f == Markdown || f == HTML
}

// ParseType maps a declared file type such as "docx", "TXT" or ".md" to a
// Format. Unrecognized types return Unknown.
func ParseType(declared string) Format {
	t := strings.ToLower(strings.TrimSpace(declared))
	t = strings.TrimPrefix(t, ".")
	switch t {
	case "txt", "text":
		return TXT
	case "md", "markdown":
		return Markdown
	case "docx":
		return DOCX
	case "doc":
		return DOC
	case "pdf":
		return PDF
	case "html", "htm", "xhtml":
		return HTML
	case "png", "jpg", "jpeg", "tif", "tiff", "bmp", "webp":
		return Image
	default:
		return Unknown
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := filepath.Ext(filename)
	if ext == "" {
		return Unknown
	}
	return ParseType(ext)
}

var (
	magicPDF  = []byte("%PDF")
	magicZIP  = []byte{0x50, 0x4B, 0x03, 0x04}
	magicOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	magicPNG     = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	magicJPEG    = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE  = []byte{'I', 'I', 0x2A, 0x00}
	magicTIFFBE  = []byte{'M', 'M', 0x00, 0x2A}
	magicBMP     = []byte("BM")
	magicRIFF    = []byte("RIFF")
	magicWEBP    = []byte("WEBP")
	magicUTF8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives return Unknown because the magic alone cannot tell a DOCX
// from other ZIP-based formats; use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicZIP):
		return Unknown
	case IsOLE2(data):
		return DOC
	case isImageMagic(data):
		return Image
	case detectHTMLMagic(data):
		return HTML
	}
	return Unknown
}

// IsOLE2 reports whether data starts with the OLE2 compound file signature
// used by legacy Office documents.
func IsOLE2(data []byte) bool {
	return bytes.HasPrefix(data, magicOLE2)
}

func isImageMagic(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, magicPNG),
		bytes.HasPrefix(data, magicJPEG),
		bytes.HasPrefix(data, magicTIFFLE),
		bytes.HasPrefix(data, magicTIFFBE):
		return true
	case bytes.HasPrefix(data, magicBMP) && len(data) >= 14:
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWEBP):
		return true
	}
	return false
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimPrefix(data, magicUTF8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}

// DetectFromReader inspects the content to determine format.
// ZIP archives are opened to tell a DOCX apart from other ZIP files.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	// Read magic bytes first (need more for HTML detection)
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, magicZIP) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive for the WordprocessingML main part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
