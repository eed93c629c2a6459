//go:build !ocr

// Package ocr recovers text from page elements that were rendered as
// images, which is how scanned books arrive.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; all operations return ErrNotEnabled. Rebuild with the tag to
// enable recognition:
//
//	go build -tags ocr
//
// The tagged build requires Tesseract to be installed.
package ocr

import "errors"

// ErrNotEnabled is returned when recognition is requested but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Reader is the stub text reader; every operation fails with
// ErrNotEnabled.
type Reader struct{}

// NewReader returns an error indicating OCR support is not enabled.
func NewReader() (*Reader, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub reader. It is safe on a nil reader.
func (r *Reader) Close() error {
	return nil
}

// Text returns an error indicating OCR support is not enabled.
func (r *Reader) Text(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (r *Reader) SetLanguage(lang string) error {
	return ErrNotEnabled
}
