package classify

import "testing"

func TestHeaderMatcher_Basic(t *testing.T) {
	m, err := NewHeaderMatcher("")
	if err != nil {
		t.Fatalf("NewHeaderMatcher failed: %v", err)
	}

	h, ok := m.Match("27. Alekhine - Nimzowitsch, New York 1927")
	if !ok {
		t.Fatal("Expected header to match")
	}
	if h.Number != "27" {
		t.Errorf("Expected number 27, got %q", h.Number)
	}
	if h.White != "Alekhine" || h.Black != "Nimzowitsch" {
		t.Errorf("Expected Alekhine/Nimzowitsch, got %q/%q", h.White, h.Black)
	}
	if h.Site != "New York" {
		t.Errorf("Expected site New York, got %q", h.Site)
	}
	if h.Year != "1927" {
		t.Errorf("Expected year 1927, got %q", h.Year)
	}
	if h.Players() != "Alekhine - Nimzowitsch" {
		t.Errorf("Unexpected players string: %q", h.Players())
	}
}

func TestHeaderMatcher_EnDash(t *testing.T) {
	m, err := NewHeaderMatcher("")
	if err != nil {
		t.Fatalf("NewHeaderMatcher failed: %v", err)
	}

	// En dash separator is normalized to a hyphen before matching.
	h, ok := m.Match("15. Alekhine – Cohn, Karlovy Vary 1911")
	if !ok {
		t.Fatal("Expected en-dash header to match")
	}
	if h.White != "Alekhine" || h.Black != "Cohn" || h.Year != "1911" {
		t.Errorf("Unexpected header fields: %+v", h)
	}
}

func TestHeaderMatcher_MultiWordNames(t *testing.T) {
	m, err := NewHeaderMatcher("")
	if err != nil {
		t.Fatalf("NewHeaderMatcher failed: %v", err)
	}

	h, ok := m.Match("3. Van Wely - Den Heijer, Amsterdam 1995")
	if !ok {
		t.Fatal("Expected multi-word names to match")
	}
	if h.White != "Van Wely" {
		t.Errorf("Expected white 'Van Wely', got %q", h.White)
	}
}

func TestHeaderMatcher_NonHeaders(t *testing.T) {
	m, err := NewHeaderMatcher("")
	if err != nil {
		t.Fatalf("NewHeaderMatcher failed: %v", err)
	}

	nonHeaders := []string{
		"",
		"8.f3! A nice set-up against the bishops",
		"Chapter 3: Double Attacks",
		"Smith - Jones",   // no number, no year
		"42. lowercase - name, somewhere 1990",
	}
	for _, text := range nonHeaders {
		if m.IsHeader(text) {
			t.Errorf("Expected %q not to classify as header", text)
		}
	}
}

func TestHeaderMatcher_FourGroupPattern(t *testing.T) {
	// Custom patterns without a location group still work.
	m, err := NewHeaderMatcher(`Problem\s+(\d+):\s*([A-Z][a-z]+)\s+vs\s+([A-Z][a-z]+)\s+(\d{4})`)
	if err != nil {
		t.Fatalf("NewHeaderMatcher failed: %v", err)
	}

	h, ok := m.Match("Problem 9: Tal vs Botvinnik 1960")
	if !ok {
		t.Fatal("Expected custom pattern to match")
	}
	if h.Number != "9" || h.Year != "1960" {
		t.Errorf("Unexpected fields: %+v", h)
	}
	if h.Site != "" {
		t.Errorf("Expected empty site for 4-group pattern, got %q", h.Site)
	}
}

func TestHeaderMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewHeaderMatcher(`(\d+`); err == nil {
		t.Error("Expected error for unbalanced pattern")
	}
	if _, err := NewHeaderMatcher(`(\d+)\.`); err == nil {
		t.Error("Expected error for pattern with too few groups")
	}
}
