package assemble

import "fmt"

// Strategy selects the element ordering the engine expects around each
// header.
type Strategy int

const (
	// StrategyHeaderImageSolution expects the board image after the
	// header and the solution after the image. This is the common layout
	// and the default.
	StrategyHeaderImageSolution Strategy = iota

	// StrategyImageHeaderSolution expects the board image before the
	// header and the solution after the header.
	StrategyImageHeaderSolution

	// StrategyHeaderSolutionImage expects the solution after the header
	// and the board image after the solution.
	StrategyHeaderSolutionImage

	// StrategyFlexible takes the first acceptable image and solution in
	// either direction, preferring forward matches.
	StrategyFlexible
)

var strategyNames = map[Strategy]string{
	StrategyHeaderImageSolution: "header_image_solution",
	StrategyImageHeaderSolution: "image_header_solution",
	StrategyHeaderSolutionImage: "header_solution_image",
	StrategyFlexible:            "flexible",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy resolves a strategy name as used in configuration files.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Config holds the engine's search parameters.
type Config struct {
	// Strategy selects the expected element ordering.
	Strategy Strategy

	// ForwardWindow and BackwardWindow bound how many elements past and
	// before the header are searched for the board image.
	ForwardWindow  int
	BackwardWindow int

	// SolutionWindow bounds how many elements past the search origin are
	// examined for the solution block.
	SolutionWindow int

	// TriggerWindow bounds the secondary search that follows a trigger
	// phrase. The real solution sits immediately after the trigger, so
	// this window is short.
	TriggerWindow int

	// PageEndTail is the number of trailing same-page elements within
	// which a header counts as sitting at the end of its page.
	// PageEndExtension widens the forward window for such headers so the
	// search reaches onto the next page.
	PageEndTail      int
	PageEndExtension int

	// Score holds the candidate ranking parameters.
	Score ScoreConfig

	// MaxDiagrams caps how many diagrams are assembled; zero means no
	// cap.
	MaxDiagrams int
}

// DefaultConfig returns the stock search parameters.
func DefaultConfig() Config {
	return Config{
		Strategy:         StrategyHeaderImageSolution,
		ForwardWindow:    20,
		BackwardWindow:   20,
		SolutionWindow:   20,
		TriggerWindow:    5,
		PageEndTail:      3,
		PageEndExtension: 10,
		Score:            DefaultScoreConfig(),
	}
}
