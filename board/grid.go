package board

import "image"

// GridConfig holds grid-alternation thresholds.
type GridConfig struct {
	// Cells is the number of cells per side the image is divided into.
	Cells int

	// Contrast is the minimum luminance difference between neighboring
	// cells for the pair to count as alternating.
	Contrast float64

	// MinAlternation is the minimum fraction of neighboring cell pairs
	// that must alternate for a positive verdict.
	MinAlternation float64
}

// DefaultGridConfig returns thresholds tuned for printed diagrams.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Cells:          8,
		Contrast:       0.12,
		MinAlternation: 0.55,
	}
}

// GridClassifier detects the checkerboard pattern directly: it divides
// the image into an 8x8 cell grid, computes each cell's mean luminance,
// and measures how many horizontally and vertically adjacent cell pairs
// differ by a visible contrast. Printed boards alternate on most pairs
// even when pieces occupy squares.
type GridClassifier struct {
	config GridConfig
}

// NewGridClassifier creates a grid classifier with default thresholds.
func NewGridClassifier() *GridClassifier {
	return NewGridClassifierWithConfig(DefaultGridConfig())
}

// NewGridClassifierWithConfig creates a grid classifier with the given
// thresholds.
func NewGridClassifierWithConfig(config GridConfig) *GridClassifier {
	if config.Cells < 2 {
		config.Cells = 2
	}
	return &GridClassifier{config: config}
}

// Name returns the classifier name.
func (g *GridClassifier) Name() string { return "grid" }

// Classify measures checkerboard alternation across the cell grid.
func (g *GridClassifier) Classify(img image.Image) (Verdict, error) {
	cells := g.config.Cells
	bounds := img.Bounds()
	if bounds.Dx() < cells || bounds.Dy() < cells {
		return Verdict{}, nil
	}

	means := cellLuminance(img, cells)

	pairs := 0
	alternating := 0
	for row := 0; row < cells; row++ {
		for col := 0; col < cells; col++ {
			if col+1 < cells {
				pairs++
				if diff(means[row][col], means[row][col+1]) >= g.config.Contrast {
					alternating++
				}
			}
			if row+1 < cells {
				pairs++
				if diff(means[row][col], means[row+1][col]) >= g.config.Contrast {
					alternating++
				}
			}
		}
	}
	if pairs == 0 {
		return Verdict{}, nil
	}

	ratio := float64(alternating) / float64(pairs)
	return Verdict{Board: ratio >= g.config.MinAlternation, Score: ratio}, nil
}

// cellLuminance computes the mean luminance of each cell in a cells x
// cells grid over the image. The board's outer border is trimmed by half
// a cell on each side so cell boundaries line up with square boundaries
// more often than not.
func cellLuminance(img image.Image, cells int) [][]float64 {
	bounds := img.Bounds()
	insetX := bounds.Dx() / (cells * 2)
	insetY := bounds.Dy() / (cells * 2)
	x0 := bounds.Min.X + insetX
	y0 := bounds.Min.Y + insetY
	w := bounds.Dx() - 2*insetX
	h := bounds.Dy() - 2*insetY

	means := make([][]float64, cells)
	for row := 0; row < cells; row++ {
		means[row] = make([]float64, cells)
		for col := 0; col < cells; col++ {
			cx0 := x0 + col*w/cells
			cx1 := x0 + (col+1)*w/cells
			cy0 := y0 + row*h/cells
			cy1 := y0 + (row+1)*h/cells

			var sum float64
			var n int
			for y := cy0; y < cy1; y++ {
				for x := cx0; x < cx1; x++ {
					sum += luminance(img.At(x, y))
					n++
				}
			}
			if n > 0 {
				means[row][col] = sum / float64(n)
			}
		}
	}
	return means
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
