package chessdex

import (
	"chessdex/assemble"
	"chessdex/compile"
)

// TextRecognizer recovers text from image bytes. The ocr package's
// Reader satisfies it when built with the ocr tag.
type TextRecognizer interface {
	Text(imageData []byte) (string, error)
}

// ExtractOptions holds configuration for diagram extraction.
type ExtractOptions struct {
	// Page selection; nil means all pages.
	pages []int

	// Engine search parameters.
	engine assemble.Config

	// Pattern overrides; empty strings select the defaults.
	headerPattern    string
	solutionPatterns []string
	triggerPhrase    string

	// Collaborators. A nil classifier selects the stock board
	// classifier; the rest stay off when nil.
	classifier assemble.ImageClassifier
	lookup     compile.FENLookup
	sink       compile.ImageSink
	observer   assemble.Observer
	recognizer TextRecognizer
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		engine: assemble.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.solutionPatterns != nil {
		newOpts.solutionPatterns = make([]string, len(o.solutionPatterns))
		copy(newOpts.solutionPatterns, o.solutionPatterns)
	}
	return newOpts
}
