//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStubReader(t *testing.T) {
	r, err := NewReader()
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled from NewReader, got %v", err)
	}
	if r != nil {
		t.Error("Expected nil reader from the stub")
	}

	var zero Reader
	if _, err := zero.Text([]byte("image")); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled from Text, got %v", err)
	}
	if err := zero.SetLanguage("eng"); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("Expected ErrNotEnabled from SetLanguage, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader should be safe, got %v", err)
	}
}
