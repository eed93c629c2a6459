package source

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chessdex/model"
)

func TestMemorySource(t *testing.T) {
	src := NewMemorySource().
		AddPage(1, &model.TextElement{Content: "hello"}).
		AddPage(2, &model.ImageElement{ContentRef: "img-1"}).
		AddImage("img-1", []byte{1, 2, 3})

	pages, err := src.Pages(context.Background())
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || len(pages[0].Elements) != 1 {
		t.Errorf("Unexpected first page: %+v", pages[0])
	}

	data, err := src.Resolve("img-1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("Unexpected data %v", data)
	}

	if _, err := src.Resolve("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFromJSON(t *testing.T) {
	imageData := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	doc := fmt.Sprintf(`{
		"pages": [
			{
				"number": 1,
				"blocks": [
					{"type": "image", "ref": "board-1", "bbox": [100, 300, 460, 660], "data": %q},
					{"type": "text", "text": "1. Smith - Jones, London 1990", "bbox": [100, 100, 400, 120]},
					{"type": "text", "text": "1.e4! wins", "bbox": [100, 700, 400, 720]}
				]
			}
		]
	}`, imageData)

	src, err := FromJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	pages, err := src.Pages(context.Background())
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 1 || len(pages[0].Elements) != 3 {
		t.Fatalf("Unexpected pages: %+v", pages)
	}

	// Blocks are reordered top to bottom regardless of dump order.
	first, ok := pages[0].Elements[0].(*model.TextElement)
	if !ok || !strings.HasPrefix(first.Content, "1. Smith") {
		t.Errorf("Expected the header block first, got %+v", pages[0].Elements[0])
	}
	img, ok := pages[0].Elements[1].(*model.ImageElement)
	if !ok || img.ContentRef != "board-1" {
		t.Errorf("Expected the image block second, got %+v", pages[0].Elements[1])
	}
	if img.BBox.Width != 360 || img.BBox.Height != 360 {
		t.Errorf("Unexpected image bbox %+v", img.BBox)
	}

	data, err := src.Resolve("board-1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Unexpected image data %q", data)
	}
}

func TestFromJSONGeneratesRefs(t *testing.T) {
	doc := `{"pages": [{"number": 3, "blocks": [
		{"type": "image", "bbox": [0, 0, 10, 10]}
	]}]}`

	src, err := FromJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	pages, _ := src.Pages(context.Background())
	img := pages[0].Elements[0].(*model.ImageElement)
	if img.ContentRef == "" {
		t.Error("Expected a generated content reference")
	}
}

func TestFromJSONRejectsBadInput(t *testing.T) {
	if _, err := FromJSON(strings.NewReader("{not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	badType := `{"pages": [{"number": 1, "blocks": [{"type": "video", "bbox": [0,0,1,1]}]}]}`
	if _, err := FromJSON(strings.NewReader(badType)); err == nil {
		t.Error("Expected error for unknown block type")
	}

	badData := `{"pages": [{"number": 1, "blocks": [{"type": "image", "bbox": [0,0,1,1], "data": "%%%"}]}]}`
	if _, err := FromJSON(strings.NewReader(badData)); err == nil {
		t.Error("Expected error for undecodable image data")
	}
}

func TestOpenJSONMissingFile(t *testing.T) {
	if _, err := OpenJSON("/nonexistent/blocks.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}
