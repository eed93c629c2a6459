package source

import (
	"context"
	"errors"
	"fmt"

	"chessdex/model"
	"chessdex/sequence"
)

// ErrNotFound is returned by content resolvers for unknown references.
var ErrNotFound = errors.New("source: content not found")

// Source yields a document's pages in ascending page order.
type Source interface {
	Pages(ctx context.Context) ([]sequence.Page, error)
}

// MemorySource holds pages and image content in memory. The zero value
// is not usable; create one with NewMemorySource. It implements both
// Source and the engine's content resolver.
type MemorySource struct {
	pages  []sequence.Page
	images map[string][]byte
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{images: make(map[string][]byte)}
}

// AddPage appends a page with the given elements in reading order.
func (m *MemorySource) AddPage(number int, elements ...model.Element) *MemorySource {
	m.pages = append(m.pages, sequence.Page{Number: number, Elements: elements})
	return m
}

// AddImage registers image bytes under a content reference.
func (m *MemorySource) AddImage(ref string, data []byte) *MemorySource {
	m.images[ref] = data
	return m
}

// Pages returns the accumulated pages.
func (m *MemorySource) Pages(ctx context.Context) ([]sequence.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.pages, nil
}

// Resolve returns the bytes registered under the reference.
func (m *MemorySource) Resolve(ref string) ([]byte, error) {
	data, ok := m.images[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return data, nil
}
