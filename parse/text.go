package parse

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// parseText decodes a plain text or Markdown upload.
func parseText(data []byte, stripMarkdown bool) (string, error) {
	text, ok := decodeText(data)
	if !ok {
		return "", newError(CorruptedFile, nil, "Cannot decode text file. Unsupported encoding")
	}
	if stripMarkdown {
		return markdownText([]byte(text)), nil
	}
	return text, nil
}

// decodeText tries UTF-16 (by byte order mark), UTF-8, Windows-1251 and
// finally ISO-8859-1. Windows-1251 is rejected when the input contains
// its one undefined byte.
func decodeText(data []byte) (string, bool) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out), true
		}
	}

	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, bomUTF8)), true
	}

	if out, err := charmap.Windows1251.NewDecoder().Bytes(data); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), true
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}
