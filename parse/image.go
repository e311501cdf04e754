package parse

import (
	"bytes"
	"errors"
	"image"

	// Decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/redline/ocr"
)

// parseImage validates the image header and runs OCR over it.
func (p *Parser) parseImage(data []byte) (string, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", newError(CorruptedFile, err, "Cannot parse image file: %v", err)
	}

	lang := p.opts.OCRLanguage
	if lang == "" {
		lang = ocr.DefaultLanguage
	}
	text, err := p.recognize(data, lang)
	if errors.Is(err, ocr.ErrOCRNotEnabled) {
		return "", newError(UnsupportedFormat, err, "Image text recognition is not available on this server")
	}
	if err != nil {
		return "", newError(CorruptedFile, err, "Cannot recognize text in image: %v", err)
	}
	return text, nil
}
