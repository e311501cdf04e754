// Package ocr recognizes text in uploaded images.
//
// Recognition wraps the Tesseract engine via gosseract and is compiled in
// only with the "ocr" build tag, since it needs Tesseract and its language
// data installed on the host:
//
//	go build -tags ocr
//
// Without the tag every call returns ErrOCRNotEnabled.
package ocr

import (
	"errors"
	"fmt"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "eng"

// Recognize runs OCR over a single image with a short-lived client.
// lang is a Tesseract language list such as "eng" or "rus+eng"; an empty
// value selects DefaultLanguage.
func Recognize(imageData []byte, lang string) (string, error) {
	client, err := New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("setting OCR language %q: %w", lang, err)
	}
	return client.RecognizeImage(imageData)
}
