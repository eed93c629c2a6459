package source

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"chessdex/model"
	"chessdex/sequence"
)

// jsonDocument is the block-dump format produced by upstream layout
// extractors: one entry per page, blocks carrying their kind, bounding
// box, and for images the base64 pixel data.
type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonPage struct {
	Number int         `json:"number"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Type string `json:"type"`

	// BBox is [x0, y0, x1, y1] with the origin at the top left.
	BBox [4]float64 `json:"bbox"`

	// Text is set for text blocks.
	Text string `json:"text,omitempty"`

	// Ref and Data describe image blocks. Data is base64; Ref may be
	// empty, in which case a reference is generated.
	Ref  string `json:"ref,omitempty"`
	Data string `json:"data,omitempty"`
}

// JSONSource reads a block-dump document. It implements both Source and
// the engine's content resolver; image bytes are decoded once at load
// time.
type JSONSource struct {
	pages  []sequence.Page
	images map[string][]byte
}

// OpenJSON loads a block-dump file.
func OpenJSON(path string) (*JSONSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block dump: %w", err)
	}
	defer f.Close()
	return FromJSON(f)
}

// FromJSON loads a block-dump document from a reader.
func FromJSON(r io.Reader) (*JSONSource, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse block dump: %w", err)
	}

	s := &JSONSource{images: make(map[string][]byte)}
	for _, page := range doc.Pages {
		elements, err := s.loadBlocks(page)
		if err != nil {
			return nil, err
		}
		s.pages = append(s.pages, sequence.Page{Number: page.Number, Elements: elements})
	}
	return s, nil
}

// loadBlocks converts one page's blocks into elements in reading order.
func (s *JSONSource) loadBlocks(page jsonPage) ([]model.Element, error) {
	type positioned struct {
		element model.Element
		y, x    float64
	}

	items := make([]positioned, 0, len(page.Blocks))
	for i, block := range page.Blocks {
		bbox := model.NewBBoxFromCorners(block.BBox[0], block.BBox[1], block.BBox[2], block.BBox[3])

		switch block.Type {
		case "text":
			items = append(items, positioned{
				element: &model.TextElement{Content: block.Text, BBox: bbox},
				y:       block.BBox[1],
				x:       block.BBox[0],
			})

		case "image":
			ref := block.Ref
			if ref == "" {
				ref = fmt.Sprintf("page%d-image%d", page.Number, i)
			}
			if block.Data != "" {
				data, err := base64.StdEncoding.DecodeString(block.Data)
				if err != nil {
					return nil, fmt.Errorf("page %d image %q: decode data: %w", page.Number, ref, err)
				}
				s.images[ref] = data
			}
			items = append(items, positioned{
				element: &model.ImageElement{ContentRef: ref, BBox: bbox},
				y:       block.BBox[1],
				x:       block.BBox[0],
			})

		default:
			return nil, fmt.Errorf("page %d block %d: unknown type %q", page.Number, i, block.Type)
		}
	}

	// Reading order: top to bottom, ties left to right.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].y != items[j].y {
			return items[i].y < items[j].y
		}
		return items[i].x < items[j].x
	})

	elements := make([]model.Element, len(items))
	for i, item := range items {
		elements[i] = item.element
	}
	return elements, nil
}

// Pages returns the loaded pages.
func (s *JSONSource) Pages(ctx context.Context) ([]sequence.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.pages, nil
}

// Resolve returns the decoded bytes of an image block.
func (s *JSONSource) Resolve(ref string) ([]byte, error) {
	data, ok := s.images[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return data, nil
}
