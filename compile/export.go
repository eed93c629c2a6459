package compile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"chessdex/model"
)

// csvColumns is the export schema, in column order. Downstream
// spreadsheets depend on these exact names.
var csvColumns = []string{
	"page",
	"diagram_number",
	"players",
	"year",
	"solution_move",
	"solution_move_with_notation",
	"solution_full_move",
	"solution_full_text",
	"solution_turn",
	"fen",
	"api_turn",
	"image_path",
	"image_page",
	"header_page",
	"solution_page",
}

// WriteCSV writes records as UTF-8 CSV with a byte order mark, which
// keeps Excel from mangling chess glyphs in the solution text.
func WriteCSV(w io.Writer, records []model.DiagramRecord) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Page),
			r.DiagramNumber,
			r.Players,
			r.Year,
			r.SolutionMove,
			r.SolutionMoveWithNotation,
			r.SolutionFullMove,
			r.SolutionFullText,
			r.SolutionTurn,
			r.FEN,
			r.APITurn,
			r.ImagePath,
			strconv.Itoa(r.ImagePage),
			strconv.Itoa(r.HeaderPage),
			optionalPage(r.SolutionPage),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// optionalPage renders 0, the no-page marker, as an empty cell.
func optionalPage(page int) string {
	if page == 0 {
		return ""
	}
	return strconv.Itoa(page)
}
