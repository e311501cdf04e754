package parse

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"rsc.io/pdf"
)

// parsePDF extracts the text of every page. Pages whose content cannot be
// read are skipped.
func parsePDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = newError(CorruptedFile, nil, "Cannot parse PDF file: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newError(CorruptedFile, err, "Cannot parse PDF file: %v", err)
	}

	n := r.NumPage()
	if n == 0 {
		return "", newError(EmptyFile, nil, "PDF file has no pages")
	}

	var parts []string
	for i := 1; i <= n; i++ {
		s, err := pageText(r, i)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	result := strings.TrimSpace(strings.Join(parts, "\n"))
	if result == "" {
		return "", newError(EmptyFile, nil, "Could not extract text from PDF")
	}
	return result, nil
}

// pageText reassembles the glyphs of one page into lines. A vertical move
// of more than half the font size starts a new line; a horizontal gap
// wider than a fifth of it inserts a space.
func pageText(r *pdf.Reader, num int) (s string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	page := r.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing", num)
	}

	var (
		sb      strings.Builder
		first   = true
		lastY   float64
		lastEnd float64
	)
	for _, t := range page.Content().Text {
		if !first {
			size := math.Max(t.FontSize, 1)
			switch {
			case math.Abs(t.Y-lastY) > size/2:
				sb.WriteByte('\n')
			case t.X-lastEnd > size/5 && !strings.HasSuffix(sb.String(), " ") && t.S != " ":
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
		first = false
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}
