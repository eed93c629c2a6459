package model

import "fmt"

// Turn identifies which side the first solution move belongs to.
type Turn string

const (
	TurnWhite Turn = "white"
	TurnBlack Turn = "black"
)

// Header holds the metadata extracted from a diagram header line such as
// "27. Alekhine - Nimzowitsch, New York 1927".
type Header struct {
	Number string
	White  string
	Black  string
	Site   string
	Year   string

	// SourceIndex is the global index of the element the header was
	// extracted from; Page is the page it appeared on.
	SourceIndex int
	Page        int
}

// Players returns the combined player string in "White - Black" form.
func (h Header) Players() string {
	return fmt.Sprintf("%s - %s", h.White, h.Black)
}

// HeaderKey is the identity of a header. Repeated headers with the same
// key describe the same diagram and must yield a single record.
type HeaderKey struct {
	Number  string
	Players string
	Year    string
}

// Key returns the deduplication identity for the header.
func (h Header) Key() HeaderKey {
	return HeaderKey{Number: h.Number, Players: h.Players(), Year: h.Year}
}

// SolutionInfo holds the parsed first move of a solution block.
type SolutionInfo struct {
	MoveNumber  string // "8" in "8.f3!"
	Dots        string // "." for white, "..." for black
	RawToken    string // move with annotations, e.g. "f3!"
	CleanedMove string // annotations stripped, e.g. "f3"
	FullMove    string // "8. f3! A nice set-up ..." (move-number prefix form)
	Turn        Turn
	FullText    string // complete normalized block text, whitespace-collapsed

	SourceIndex int
	Page        int
}

// ImageCandidate is an image element provisionally classified as a board,
// pending scoring against other candidates in the same search window.
type ImageCandidate struct {
	ElementIndex int
	BBox         BBox
	Page         int

	// ClassifierScore is the raw verdict strength reported by the image
	// classifier; Score is the engine's position/size composite used to
	// rank candidates.
	ClassifierScore float64
	Score           float64
}

// DiagramRecord is the compiled result for one diagram. A record exists
// only when a header yielded an accepted image; solution and enrichment
// fields may be empty.
type DiagramRecord struct {
	Page          int
	DiagramNumber string
	Players       string
	Year          string

	SolutionMove             string
	SolutionMoveWithNotation string
	SolutionFullMove         string
	SolutionFullText         string
	SolutionTurn             string

	FEN     string
	APITurn string

	ImagePath    string
	ImagePage    int
	HeaderPage   int
	SolutionPage int // 0 when no solution was attached
}
