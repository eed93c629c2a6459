//go:build ocr

// Package ocr recovers text from page elements that were rendered as
// images, which is how scanned books arrive. Recognized text feeds the
// same header and solution matching as native text blocks.
//
// The package wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Reader recognizes text in image bytes. A Reader holds Tesseract
// resources and must be closed when no longer needed.
type Reader struct {
	client *gosseract.Client
}

// NewReader creates a text reader with English as the default language.
func NewReader() (*Reader, error) {
	return &Reader{client: gosseract.NewClient()}, nil
}

// Close releases the engine resources.
func (r *Reader) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Text recognizes the text in the image bytes, trimmed of surrounding
// whitespace. Header lines and solution blocks come back as plain text
// ready for pattern matching.
func (r *Reader) Text(imageData []byte) (string, error) {
	if err := r.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage selects the recognition language(s). Multiple languages
// are joined with "+", e.g. "eng+rus" for books with Cyrillic player
// names.
func (r *Reader) SetLanguage(lang string) error {
	return r.client.SetLanguage(lang)
}
