package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// glyphReplacer maps chess figurines, annotation glyphs, and typographic
// punctuation to readable ASCII equivalents before pattern matching.
var glyphReplacer = strings.NewReplacer(
	// Chess pieces
	"♔", "K", "♕", "Q", "♖", "R", "♗", "B", "♘", "N", "♙", "P",
	"♚", "k", "♛", "q", "♜", "r", "♝", "b", "♞", "n", "♟", "p",

	// Chess annotations
	"†", "+", "‡", "++",
	"±", "+=", "∓", "-+", "∞", "inf",
	"→", "->", "≠", "!=", "≡", "=",

	// Evaluation symbols
	"⊕", "+", "⊖", "-", "⊗", "x", "⊙", "o",
	"△", "triangle", "▲", "up", "▼", "down",
	"↑", "up", "↓", "down", "↗", "ne", "↘", "se",
	"↙", "sw", "↖", "nw", "⇄", "exchange",

	// Punctuation and quotes
	"…", "...",
	"“", "\"", "”", "\"", "‘", "'", "’", "'",
	"–", "-", "—", "-", "½", "1/2",

	// OCR artifacts
	"ƒ", "f", "µ", "u",
)

var spaceRun = regexp.MustCompile(`\s+`)

// Normalize cleans chess glyphs and typographic punctuation from text
// while preserving readability. Anything the explicit glyph table misses
// is folded to its compatibility form (fullwidth digits, ligatures, and
// the like) so the configured patterns only ever see ASCII-ish input.
func Normalize(text string) string {
	text = glyphReplacer.Replace(text)
	text = norm.NFKC.String(text)
	return strings.TrimSpace(text)
}

// FlattenSpace prepares normalized text for single-line output by
// replacing newlines and tabs with spaces and collapsing runs of
// whitespace.
func FlattenSpace(text string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}
