package board

import (
	"image"
	"math"
)

// BoundsConfig holds dimensional acceptance bounds.
type BoundsConfig struct {
	// MinDim and MaxDim bound each side in pixels. Printed tactical
	// diagrams in the supported books render between roughly 200 and
	// 400 pixels per side.
	MinDim int
	MaxDim int

	// MinAspect and MaxAspect bound width/height. Boards are square; a
	// little slack absorbs border cropping.
	MinAspect float64
	MaxAspect float64
}

// DefaultBoundsConfig returns the stock dimensional bounds.
func DefaultBoundsConfig() BoundsConfig {
	return BoundsConfig{
		MinDim:    200,
		MaxDim:    400,
		MinAspect: 0.9,
		MaxAspect: 1.1,
	}
}

// BoundsClassifier accepts images whose pixel dimensions and squareness
// fall inside configured bounds. It is cheap and runs first in the stock
// composite, weeding out ornaments and full-page scans before the
// heavier heuristics look at pixels.
type BoundsClassifier struct {
	config BoundsConfig
}

// NewBoundsClassifier creates a bounds classifier with defaults.
func NewBoundsClassifier() *BoundsClassifier {
	return NewBoundsClassifierWithConfig(DefaultBoundsConfig())
}

// NewBoundsClassifierWithConfig creates a bounds classifier with the
// given bounds.
func NewBoundsClassifierWithConfig(config BoundsConfig) *BoundsClassifier {
	return &BoundsClassifier{config: config}
}

// Name returns the classifier name.
func (b *BoundsClassifier) Name() string { return "bounds" }

// Classify checks the image dimensions against the configured bounds.
// The score peaks at a perfect square in the middle of the size range
// and decays toward the edges.
func (b *BoundsClassifier) Classify(img image.Image) (Verdict, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return Verdict{}, nil
	}

	aspect := float64(w) / float64(h)
	inSize := w >= b.config.MinDim && w <= b.config.MaxDim &&
		h >= b.config.MinDim && h <= b.config.MaxDim
	inAspect := aspect >= b.config.MinAspect && aspect <= b.config.MaxAspect

	// Squareness component: 1 at aspect 1.0.
	squareness := math.Min(aspect, 1/aspect)

	// Size component: 1 at the center of the range, 0 at or beyond the bounds.
	mid := float64(b.config.MinDim+b.config.MaxDim) / 2
	half := float64(b.config.MaxDim-b.config.MinDim) / 2
	sizeScore := 0.0
	if half > 0 {
		dev := math.Max(math.Abs(float64(w)-mid), math.Abs(float64(h)-mid))
		sizeScore = math.Max(0, 1-dev/half)
	}

	return Verdict{
		Board: inSize && inAspect,
		Score: 0.5*squareness + 0.5*sizeScore,
	}, nil
}
