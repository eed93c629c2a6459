package board

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// EncodedSizeConfig holds the byte-size acceptance range.
type EncodedSizeConfig struct {
	// TargetDim is the side length the image is rescaled to before
	// re-encoding, so the byte range is comparable across source sizes.
	TargetDim int

	// MinBytes and MaxBytes bound the PNG-encoded size at TargetDim.
	// A board diagram compresses into a narrow band: flat ornaments
	// come out far smaller, photographs far larger.
	MinBytes int
	MaxBytes int
}

// DefaultEncodedSizeConfig returns the range observed for 360x360
// printed diagrams.
func DefaultEncodedSizeConfig() EncodedSizeConfig {
	return EncodedSizeConfig{
		TargetDim: 360,
		MinBytes:  45 << 10,
		MaxBytes:  85 << 10,
	}
}

// EncodedSizeClassifier rescales the image to a canonical size,
// re-encodes it as PNG, and accepts when the encoded size lands inside
// the configured band.
type EncodedSizeClassifier struct {
	config EncodedSizeConfig
}

// NewEncodedSizeClassifier creates an encoded-size classifier with the
// stock range.
func NewEncodedSizeClassifier() *EncodedSizeClassifier {
	return NewEncodedSizeClassifierWithConfig(DefaultEncodedSizeConfig())
}

// NewEncodedSizeClassifierWithConfig creates an encoded-size classifier
// with the given range.
func NewEncodedSizeClassifierWithConfig(config EncodedSizeConfig) *EncodedSizeClassifier {
	if config.TargetDim <= 0 {
		config.TargetDim = 360
	}
	return &EncodedSizeClassifier{config: config}
}

// Name returns the classifier name.
func (e *EncodedSizeClassifier) Name() string { return "encoded-size" }

// Classify re-encodes the rescaled image and checks the byte count.
func (e *EncodedSizeClassifier) Classify(img image.Image) (Verdict, error) {
	dim := e.config.TargetDim
	scaled := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return Verdict{}, fmt.Errorf("re-encode: %w", err)
	}

	size := buf.Len()
	in := size >= e.config.MinBytes && size <= e.config.MaxBytes

	// Score peaks at the middle of the band.
	mid := float64(e.config.MinBytes+e.config.MaxBytes) / 2
	half := float64(e.config.MaxBytes-e.config.MinBytes) / 2
	score := 0.0
	if half > 0 {
		score = math.Max(0, 1-math.Abs(float64(size)-mid)/half)
	}

	return Verdict{Board: in, Score: score}, nil
}
