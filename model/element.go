package model

// ElementKind discriminates the page element union.
type ElementKind int

const (
	ElementKindText ElementKind = iota
	ElementKindImage
)

func (k ElementKind) String() string {
	switch k {
	case ElementKindText:
		return "Text"
	case ElementKindImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Element is one positioned block on a page. It is a closed union of
// TextElement and ImageElement; a block is always exactly one of the two,
// so consumers switch on Kind rather than probing optional fields.
type Element interface {
	Kind() ElementKind
	Bounds() BBox
}

// TextElement is a positioned run of text on a page.
type TextElement struct {
	Content string
	BBox    BBox
}

func (t *TextElement) Kind() ElementKind { return ElementKindText }
func (t *TextElement) Bounds() BBox      { return t.BBox }

// ImageElement is a positioned raster image on a page. ContentRef is an
// opaque handle the content resolver understands; the element itself never
// carries pixel data.
type ImageElement struct {
	BBox       BBox
	ContentRef string
}

func (i *ImageElement) Kind() ElementKind { return ElementKindImage }
func (i *ImageElement) Bounds() BBox      { return i.BBox }
