package board

import "image"

// SquareDensityConfig holds square-region counting thresholds.
type SquareDensityConfig struct {
	// SampleRows is how many horizontal scanlines are sampled.
	SampleRows int

	// Contrast is the luminance step that counts as an edge transition.
	Contrast float64

	// MinSide is the minimum side length in pixels for a region to count.
	MinSide int

	// MinAspect and MaxAspect bound a region's width/height ratio.
	MinAspect float64
	MaxAspect float64

	// MinSquares is the number of square-ish regions required for a
	// positive verdict.
	MinSquares int
}

// DefaultSquareDensityConfig returns the stock thresholds.
func DefaultSquareDensityConfig() SquareDensityConfig {
	return SquareDensityConfig{
		SampleRows: 16,
		Contrast:   0.25,
		MinSide:    5,
		MinAspect:  0.4,
		MaxAspect:  1.8,
		MinSquares: 4,
	}
}

// SquareDensityClassifier approximates contour-based square counting.
// It samples evenly spaced scanlines, splits each into runs between
// strong luminance transitions, and probes each run's vertical extent at
// its center; a run whose width and height are both above MinSide with a
// roughly square aspect counts as one square region. Boards produce many
// distinct square regions; running text and photographs produce few.
type SquareDensityClassifier struct {
	config SquareDensityConfig
}

// NewSquareDensityClassifier creates a square-density classifier with
// the stock thresholds.
func NewSquareDensityClassifier() *SquareDensityClassifier {
	return NewSquareDensityClassifierWithConfig(DefaultSquareDensityConfig())
}

// NewSquareDensityClassifierWithConfig creates a square-density
// classifier with the given thresholds.
func NewSquareDensityClassifierWithConfig(config SquareDensityConfig) *SquareDensityClassifier {
	if config.SampleRows < 2 {
		config.SampleRows = 2
	}
	if config.MinSide < 2 {
		config.MinSide = 2
	}
	return &SquareDensityClassifier{config: config}
}

// Name returns the classifier name.
func (s *SquareDensityClassifier) Name() string { return "square-density" }

// run is a horizontal segment of uniform brightness on one scanline.
type run struct {
	start, end int
}

// Classify counts distinct square-ish regions across sampled scanlines.
func (s *SquareDensityClassifier) Classify(img image.Image) (Verdict, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w < s.config.MinSide || h < s.config.SampleRows {
		return Verdict{}, nil
	}

	spacing := h / s.config.SampleRows
	if spacing < 1 {
		spacing = 1
	}

	var counted []image.Rectangle
	squares := 0
	for i := 0; i < s.config.SampleRows; i++ {
		y := bounds.Min.Y + i*spacing + spacing/2
		if y >= bounds.Max.Y {
			break
		}
		for _, r := range s.scanRuns(img, y, bounds.Min.X, bounds.Max.X) {
			width := r.end - r.start
			if width < s.config.MinSide {
				continue
			}
			cx := (r.start + r.end) / 2
			if insideAny(counted, cx, y) {
				continue
			}

			top, bottom := s.verticalExtent(img, cx, y, bounds)
			height := bottom - top
			if height < s.config.MinSide {
				continue
			}
			aspect := float64(width) / float64(height)
			if aspect < s.config.MinAspect || aspect > s.config.MaxAspect {
				continue
			}

			counted = append(counted, image.Rect(r.start, top, r.end, bottom))
			squares++
		}
	}

	score := float64(squares) / float64(2*s.config.MinSquares)
	if score > 1 {
		score = 1
	}
	return Verdict{Board: squares >= s.config.MinSquares, Score: score}, nil
}

// scanRuns splits one scanline into runs between strong luminance
// transitions.
func (s *SquareDensityClassifier) scanRuns(img image.Image, y, x0, x1 int) []run {
	var runs []run
	start := x0
	prev := luminance(img.At(x0, y))

	for x := x0 + 1; x < x1; x++ {
		cur := luminance(img.At(x, y))
		if diff(cur, prev) >= s.config.Contrast {
			runs = append(runs, run{start: start, end: x})
			start = x
		}
		prev = cur
	}
	runs = append(runs, run{start: start, end: x1})
	return runs
}

// verticalExtent walks up and down from (x, y) while the luminance stays
// within the contrast threshold of the starting pixel, returning the
// uniform region's top and bottom.
func (s *SquareDensityClassifier) verticalExtent(img image.Image, x, y int, bounds image.Rectangle) (top, bottom int) {
	base := luminance(img.At(x, y))

	top = y
	for top > bounds.Min.Y && diff(luminance(img.At(x, top-1)), base) < s.config.Contrast {
		top--
	}
	bottom = y + 1
	for bottom < bounds.Max.Y && diff(luminance(img.At(x, bottom)), base) < s.config.Contrast {
		bottom++
	}
	return top, bottom
}

// insideAny reports whether the point is inside any already counted region.
func insideAny(rects []image.Rectangle, x, y int) bool {
	for _, r := range rects {
		if x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y {
			return true
		}
	}
	return false
}
