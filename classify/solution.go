package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"chessdex/model"
)

// Default solution patterns. A solution block starts with a move number,
// one dot for white or three dots for black, and a move token that begins
// with a file letter, piece letter, castling marker, or digit. Declaration
// order doubles as the tie-break when two patterns match at the same
// offset, so the black variant comes first: "22..." must never be read as
// a white move.
const (
	DefaultBlackSolutionPattern = `(\d+)(\.{3})\s*([a-hRNBQKO0-9][^\s.,;!?]*[!?]{0,2})`
	DefaultWhiteSolutionPattern = `(\d+)(\.)\s*([a-hRNBQKO0-9][^\s.,;!?]*[!?]{0,2})`
)

// DefaultSolutionPatterns returns the built-in pattern set in tie-break
// order.
func DefaultSolutionPatterns() []string {
	return []string{DefaultBlackSolutionPattern, DefaultWhiteSolutionPattern}
}

// trailingAnnotations are stripped repeatedly from the end of a move
// token. Multi-rune forms come first so "+=" is removed as a unit.
var trailingAnnotations = []string{
	"inf", "+/-", "+=", "-+", "!!", "??", "!?", "?!",
	"!", "?", "+", "#", "=", "±", "∓", "∞", "†", "‡", "µ",
}

// SolutionMatcher extracts the first solution move from text elements.
type SolutionMatcher struct {
	patterns []*regexp.Regexp
}

// NewSolutionMatcher compiles solution patterns. Each pattern must capture
// three groups: move number, dots, and the move token. With no arguments
// the default white/black pattern pair is used.
func NewSolutionMatcher(patterns ...string) (*SolutionMatcher, error) {
	if len(patterns) == 0 {
		patterns = DefaultSolutionPatterns()
	}
	m := &SolutionMatcher{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid solution pattern %q: %w", p, err)
		}
		if re.NumSubexp() < 3 {
			return nil, fmt.Errorf("solution pattern %q must capture 3 groups, has %d", p, re.NumSubexp())
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match searches the entire normalized text for the earliest solution
// move. When two patterns match at the same offset, the earlier declared
// pattern wins. The returned SolutionInfo has no source position
// attached; the caller fills SourceIndex and Page.
func (m *SolutionMatcher) Match(text string) (model.SolutionInfo, bool) {
	normalized := Normalize(text)

	var best []int
	for _, re := range m.patterns {
		idx := re.FindStringSubmatchIndex(normalized)
		if idx == nil {
			continue
		}
		if best == nil || idx[0] < best[0] {
			best = idx
		}
	}
	if best == nil {
		return model.SolutionInfo{}, false
	}

	moveNumber := normalized[best[2]:best[3]]
	dots := normalized[best[4]:best[5]]
	token := normalized[best[6]:best[7]]

	// The full move keeps everything from the token to the end of its line.
	rest := normalized[best[6]:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	info := model.SolutionInfo{
		MoveNumber:  moveNumber,
		Dots:        dots,
		RawToken:    token,
		CleanedMove: CleanMove(token),
		FullMove:    moveNumber + dots + " " + FlattenSpace(rest),
		Turn:        model.TurnWhite,
		FullText:    FlattenSpace(normalized),
	}
	if strings.Contains(dots, "...") {
		info.Turn = model.TurnBlack
	}
	return info, true
}

// IsSolution reports whether the text contains a recognizable solution move.
func (m *SolutionMatcher) IsSolution(text string) bool {
	_, ok := m.Match(text)
	return ok
}

// CleanMove strips trailing annotation glyphs from a move token and
// retains only characters valid in bare chess notation, turning "f3!"
// into "f3" and "Nxe4+" into "Nxe4".
func CleanMove(token string) string {
	for {
		trimmed := token
		for _, suffix := range trailingAnnotations {
			trimmed = strings.TrimSuffix(trimmed, suffix)
		}
		if trimmed == token {
			break
		}
		token = trimmed
	}

	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == 'x' || r == '=' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultTriggerPhrase marks solution text presented indirectly, as in
// books that label the line "Show solution" below the board.
const DefaultTriggerPhrase = "show solution"

// TriggerMatcher recognizes solution trigger elements by a configured
// phrase. The zero value never matches.
type TriggerMatcher struct {
	phrase string
}

// NewTriggerMatcher creates a trigger matcher for the given phrase. An
// empty phrase selects the default.
func NewTriggerMatcher(phrase string) TriggerMatcher {
	if phrase == "" {
		phrase = DefaultTriggerPhrase
	}
	return TriggerMatcher{phrase: strings.ToLower(phrase)}
}

// Match reports whether the normalized text contains the trigger phrase,
// case-insensitively, as a substring.
func (t TriggerMatcher) Match(text string) bool {
	if t.phrase == "" {
		return false
	}
	return strings.Contains(strings.ToLower(Normalize(text)), t.phrase)
}
