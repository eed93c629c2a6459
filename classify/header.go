package classify

import (
	"fmt"
	"regexp"

	"chessdex/model"
)

// DefaultHeaderPattern recognizes header lines of the form
// "27. Alekhine - Nimzowitsch, New York 1927". Capture groups are, in
// order: diagram number, white player, black player, free-text location,
// and year. Both plain and en-dash separators are accepted in case a
// caller feeds unnormalized text.
const DefaultHeaderPattern = `(\d+)\.\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*[–-]\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*),\s*(.*?)\s*(\d{4})`

// HeaderMatcher extracts diagram headers from text elements.
type HeaderMatcher struct {
	re *regexp.Regexp
}

// NewHeaderMatcher compiles a header pattern. The pattern must capture at
// least four groups (number, white, black, year); a fifth group, when
// present, is taken as the location between the player names and the
// year.
func NewHeaderMatcher(pattern string) (*HeaderMatcher, error) {
	if pattern == "" {
		pattern = DefaultHeaderPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid header pattern: %w", err)
	}
	if re.NumSubexp() < 4 {
		return nil, fmt.Errorf("header pattern must capture at least 4 groups, has %d", re.NumSubexp())
	}
	return &HeaderMatcher{re: re}, nil
}

// Match normalizes the text and attempts to extract a header from it.
// The returned Header has no source position attached; the caller fills
// SourceIndex and Page.
func (m *HeaderMatcher) Match(text string) (model.Header, bool) {
	groups := m.re.FindStringSubmatch(Normalize(text))
	if groups == nil {
		return model.Header{}, false
	}

	h := model.Header{
		Number: groups[1],
		White:  FlattenSpace(groups[2]),
		Black:  FlattenSpace(groups[3]),
	}
	if m.re.NumSubexp() >= 5 {
		h.Site = FlattenSpace(groups[4])
		h.Year = groups[5]
	} else {
		h.Year = groups[4]
	}
	return h, true
}

// IsHeader reports whether the text contains a recognizable diagram header.
func (m *HeaderMatcher) IsHeader(text string) bool {
	_, ok := m.Match(text)
	return ok
}
