package assemble

import "chessdex/model"

// ScoreConfig holds the weights for ranking competing image candidates
// around one header.
type ScoreConfig struct {
	// PositionWeight and SizeWeight blend the two components. They
	// should sum to 1.
	PositionWeight float64
	SizeWeight     float64

	// AcceptFloor is the minimum combined score a candidate needs to be
	// accepted at all.
	AcceptFloor float64

	// ExpectedWidth and ExpectedHeight are the nominal diagram pixel
	// dimensions the size component compares against.
	ExpectedWidth  float64
	ExpectedHeight float64

	// DistanceDecay controls how fast the position component falls off
	// with element distance from the header.
	DistanceDecay float64
}

// DefaultScoreConfig returns the stock ranking weights.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		PositionWeight: 0.6,
		SizeWeight:     0.4,
		AcceptFloor:    0.35,
		ExpectedWidth:  360,
		ExpectedHeight: 360,
		DistanceDecay:  0.25,
	}
}

// positionScore falls from 1 toward 0 as the candidate sits further
// from the header in the element sequence.
func (c ScoreConfig) positionScore(distance int) float64 {
	if distance < 0 {
		distance = -distance
	}
	return 1 / (1 + c.DistanceDecay*float64(distance))
}

// sizeScore is 1 when the candidate matches the expected diagram
// dimensions and shrinks as either side deviates.
func (c ScoreConfig) sizeScore(bbox model.BBox) float64 {
	if bbox.Width <= 0 || bbox.Height <= 0 ||
		c.ExpectedWidth <= 0 || c.ExpectedHeight <= 0 {
		return 0
	}
	w := ratioScore(bbox.Width, c.ExpectedWidth)
	h := ratioScore(bbox.Height, c.ExpectedHeight)
	return (w + h) / 2
}

// ratioScore maps actual/expected onto [0, 1] with 1 at a perfect
// match, symmetric for over- and undersized candidates.
func ratioScore(actual, expected float64) float64 {
	r := actual / expected
	if r > 1 {
		r = 1 / r
	}
	return r
}

// Rank computes the combined candidate score for an image found at the
// given element distance from the header.
func (c ScoreConfig) Rank(bbox model.BBox, distance int) float64 {
	return c.PositionWeight*c.positionScore(distance) +
		c.SizeWeight*c.sizeScore(bbox)
}
