//go:build !ocr

package ocr

// Enabled reports whether Tesseract support is compiled in.
const Enabled = false

// Client stands in for the Tesseract client in builds without the "ocr"
// tag. New never returns one, so Recognize fails and image uploads are
// rejected as an unsupported format.
type Client struct{}

// New fails with ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close has nothing to release; it accepts a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage fails with ErrOCRNotEnabled.
func (c *Client) RecognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage fails with ErrOCRNotEnabled.
func (c *Client) SetLanguage(string) error {
	return ErrOCRNotEnabled
}
