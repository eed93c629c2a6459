package compile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"chessdex/assemble"
	"chessdex/model"
)

// FENLookup resolves a board image to its position. Implementations
// return empty strings with a nil error when the position could not be
// determined; an error means the lookup itself misbehaved.
type FENLookup interface {
	Lookup(ctx context.Context, image []byte) (fen, turn string, err error)
}

// ImageSink persists an accepted board image under the given file name
// and returns the path the record should reference.
type ImageSink interface {
	Store(name string, data []byte) (path string, err error)
}

// DirSink stores images as files in a directory, creating it on first
// use.
type DirSink struct {
	Dir string

	created bool
}

// Store writes the image file and returns its full path.
func (d *DirSink) Store(name string, data []byte) (string, error) {
	if !d.created {
		if err := os.MkdirAll(d.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create image dir: %w", err)
		}
		d.created = true
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Warning notes a non-fatal compilation problem on one record.
type Warning struct {
	// Page is the header page of the affected record.
	Page int

	Message string
}

// Compiler flattens matches into records. Lookup and Sink are both
// optional; with neither set compilation is a pure transformation.
type Compiler struct {
	Lookup FENLookup
	Sink   ImageSink
}

// Compile flattens one match. The ordinal is 1-based and names the
// stored image file. Sink and lookup failures are reported as warnings
// and leave the corresponding fields empty.
func (c *Compiler) Compile(ctx context.Context, match assemble.Match, ordinal int) (model.DiagramRecord, []Warning) {
	record := model.DiagramRecord{
		Page:          match.Header.Page,
		DiagramNumber: match.Header.Number,
		Players:       match.Header.Players(),
		Year:          match.Header.Year,
		ImagePage:     match.Image.Page,
		HeaderPage:    match.Header.Page,
	}

	if sol := match.Solution; sol != nil {
		record.SolutionMove = sol.CleanedMove
		record.SolutionMoveWithNotation = sol.RawToken
		record.SolutionFullMove = sol.FullMove
		record.SolutionFullText = sol.FullText
		record.SolutionTurn = string(sol.Turn)
		record.SolutionPage = sol.Page
	}

	var warnings []Warning

	if c.Sink != nil {
		name := fmt.Sprintf("diagram_%03d_page_%d.png", ordinal, match.Image.Page)
		path, err := c.Sink.Store(name, match.ImageData)
		if err != nil {
			warnings = append(warnings, Warning{Page: match.Header.Page,
				Message: fmt.Sprintf("store image: %v", err)})
		} else {
			record.ImagePath = path
		}
	}

	if c.Lookup != nil {
		fen, turn, err := c.Lookup.Lookup(ctx, match.ImageData)
		if err != nil {
			warnings = append(warnings, Warning{Page: match.Header.Page,
				Message: fmt.Sprintf("position lookup: %v", err)})
		} else {
			record.FEN = fen
			record.APITurn = turn
		}
	}

	return record, warnings
}

// CompileAll flattens matches in order. On context cancellation the
// records compiled so far are returned together with the context error.
func (c *Compiler) CompileAll(ctx context.Context, matches []assemble.Match) ([]model.DiagramRecord, []Warning, error) {
	records := make([]model.DiagramRecord, 0, len(matches))
	var warnings []Warning

	for i, match := range matches {
		if err := ctx.Err(); err != nil {
			return records, warnings, err
		}
		record, w := c.Compile(ctx, match, i+1)
		records = append(records, record)
		warnings = append(warnings, w...)
	}
	return records, warnings, nil
}
