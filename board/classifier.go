package board

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Stdlib codecs plus the extended formats PDF extractors commonly emit.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Verdict is a classifier's judgment of a single image.
type Verdict struct {
	// Board reports whether the image passed the heuristic.
	Board bool

	// Score is the heuristic's confidence in [0, 1]. A negative verdict
	// still carries a score so composites can weigh near misses.
	Score float64
}

// Classifier is the interface for chessboard detection heuristics.
type Classifier interface {
	// Classify judges a decoded image.
	Classify(img image.Image) (Verdict, error)

	// Name returns the classifier name.
	Name() string
}

// Registry holds registered classifiers by name.
type Registry struct {
	classifiers map[string]Classifier
}

// NewRegistry creates an empty classifier registry.
func NewRegistry() *Registry {
	return &Registry{classifiers: make(map[string]Classifier)}
}

// Register registers a classifier.
func (r *Registry) Register(c Classifier) {
	r.classifiers[c.Name()] = c
}

// Get retrieves a classifier by name, or nil.
func (r *Registry) Get(name string) Classifier {
	return r.classifiers[name]
}

// List returns all registered classifier names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.classifiers))
	for name := range r.classifiers {
		names = append(names, name)
	}
	return names
}

var globalRegistry = NewRegistry()

// RegisterClassifier registers a classifier globally.
func RegisterClassifier(c Classifier) {
	globalRegistry.Register(c)
}

// GetClassifier retrieves a globally registered classifier by name.
func GetClassifier(name string) Classifier {
	return globalRegistry.Get(name)
}

func init() {
	RegisterClassifier(NewGridClassifier())
	RegisterClassifier(NewBoundsClassifier())
	RegisterClassifier(NewEncodedSizeClassifier())
	RegisterClassifier(NewSquareDensityClassifier())
}

// Decode decodes raw image bytes into an image.Image. PNG, JPEG, GIF,
// TIFF, BMP, and WebP are supported.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Composite combines member classifiers into one verdict: the score is
// the mean of member scores, and the image is accepted when every member
// required to pass passes and the mean reaches MinScore.
type Composite struct {
	// Members are evaluated in order.
	Members []Classifier

	// Required names members whose individual Board verdict must be
	// positive. An empty set means only MinScore gates acceptance.
	Required []string

	// MinScore is the minimum mean score for acceptance.
	MinScore float64
}

// DefaultComposite returns the stock pipeline: the grid-alternation
// heuristic is required, the rest contribute to the score.
func DefaultComposite() *Composite {
	return &Composite{
		Members: []Classifier{
			NewGridClassifier(),
			NewBoundsClassifier(),
			NewSquareDensityClassifier(),
		},
		Required: []string{"grid"},
		MinScore: 0.5,
	}
}

// Name returns the composite name.
func (c *Composite) Name() string { return "composite" }

// Classify runs every member and combines their verdicts.
func (c *Composite) Classify(img image.Image) (Verdict, error) {
	if len(c.Members) == 0 {
		return Verdict{}, fmt.Errorf("composite has no members")
	}

	required := make(map[string]bool, len(c.Required))
	for _, name := range c.Required {
		required[name] = true
	}

	var sum float64
	pass := true
	for _, member := range c.Members {
		v, err := member.Classify(img)
		if err != nil {
			return Verdict{}, fmt.Errorf("%s: %w", member.Name(), err)
		}
		sum += v.Score
		if required[member.Name()] && !v.Board {
			pass = false
		}
	}

	mean := sum / float64(len(c.Members))
	return Verdict{Board: pass && mean >= c.MinScore, Score: mean}, nil
}

// Bytes adapts a Classifier to the byte-level contract the assembly
// engine consumes: decode failures are reported as errors so the engine
// can treat the element as a non-candidate.
type Bytes struct {
	Classifier Classifier
}

// Classify decodes the image bytes and delegates to the wrapped classifier.
func (b Bytes) Classify(data []byte) (bool, float64, error) {
	img, err := Decode(data)
	if err != nil {
		return false, 0, err
	}
	v, err := b.Classifier.Classify(img)
	if err != nil {
		return false, 0, err
	}
	return v.Board, v.Score, nil
}

// luminance returns a pixel's perceptual brightness in [0, 1].
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535.0
}
