package compile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chessdex/assemble"
	"chessdex/model"
)

type stubLookup struct {
	fen, turn string
	err       error
}

func (s stubLookup) Lookup(ctx context.Context, image []byte) (string, string, error) {
	return s.fen, s.turn, s.err
}

type stubSink struct {
	names []string
	err   error
}

func (s *stubSink) Store(name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.names = append(s.names, name)
	return "images/" + name, nil
}

func sampleMatch() assemble.Match {
	return assemble.Match{
		Header: model.Header{
			Number: "12", White: "Tal", Black: "Botvinnik",
			Site: "Moscow", Year: "1960", Page: 37,
		},
		HeaderIndex: 5,
		Image:       model.ImageCandidate{ElementIndex: 6, Page: 37, Score: 0.8},
		ImageData:   []byte("png-bytes"),
		Solution: &model.SolutionInfo{
			MoveNumber: "21", Dots: ".", RawToken: "Nxf7!",
			CleanedMove: "Nxf7", FullMove: "21. Nxf7! a classic sacrifice",
			Turn: model.TurnWhite, FullText: "21.Nxf7! a classic sacrifice",
			SourceIndex: 7, Page: 38,
		},
	}
}

func TestCompile(t *testing.T) {
	sink := &stubSink{}
	c := &Compiler{
		Lookup: stubLookup{fen: "r1bqkbnr/...", turn: "white"},
		Sink:   sink,
	}

	record, warnings := c.Compile(context.Background(), sampleMatch(), 3)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}

	if record.Page != 37 || record.HeaderPage != 37 || record.ImagePage != 37 {
		t.Errorf("Unexpected pages: %+v", record)
	}
	if record.DiagramNumber != "12" || record.Players != "Tal - Botvinnik" || record.Year != "1960" {
		t.Errorf("Unexpected header fields: %+v", record)
	}
	if record.SolutionMove != "Nxf7" || record.SolutionMoveWithNotation != "Nxf7!" {
		t.Errorf("Unexpected solution fields: %+v", record)
	}
	if record.SolutionTurn != "white" || record.SolutionPage != 38 {
		t.Errorf("Unexpected solution turn or page: %+v", record)
	}
	if record.FEN != "r1bqkbnr/..." || record.APITurn != "white" {
		t.Errorf("Unexpected lookup fields: %+v", record)
	}
	if record.ImagePath != "images/diagram_003_page_37.png" {
		t.Errorf("Unexpected image path %q", record.ImagePath)
	}
	if len(sink.names) != 1 || sink.names[0] != "diagram_003_page_37.png" {
		t.Errorf("Unexpected stored names %v", sink.names)
	}
}

func TestCompileWithoutSolution(t *testing.T) {
	c := &Compiler{}
	match := sampleMatch()
	match.Solution = nil

	record, warnings := c.Compile(context.Background(), match, 1)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if record.SolutionMove != "" || record.SolutionTurn != "" || record.SolutionPage != 0 {
		t.Errorf("Expected empty solution fields, got %+v", record)
	}
	if record.DiagramNumber != "12" {
		t.Error("Record should still carry header fields")
	}
}

func TestCompileLookupFailureLeavesFieldsEmpty(t *testing.T) {
	c := &Compiler{
		Lookup: stubLookup{err: errors.New("service down")},
		Sink:   &stubSink{},
	}

	record, warnings := c.Compile(context.Background(), sampleMatch(), 1)
	if record.FEN != "" || record.APITurn != "" {
		t.Errorf("Expected empty lookup fields, got %+v", record)
	}
	if record.ImagePath == "" {
		t.Error("Sink result should survive a lookup failure")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "service down") {
		t.Errorf("Expected one lookup warning, got %v", warnings)
	}
}

func TestCompileSinkFailureLeavesPathEmpty(t *testing.T) {
	c := &Compiler{Sink: &stubSink{err: errors.New("disk full")}}

	record, warnings := c.Compile(context.Background(), sampleMatch(), 1)
	if record.ImagePath != "" {
		t.Errorf("Expected empty image path, got %q", record.ImagePath)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected one sink warning, got %v", warnings)
	}
}

func TestCompileAll(t *testing.T) {
	sink := &stubSink{}
	c := &Compiler{Sink: sink}

	records, warnings, err := c.CompileAll(context.Background(),
		[]assemble.Match{sampleMatch(), sampleMatch()})
	if err != nil {
		t.Fatalf("CompileAll failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if sink.names[0] != "diagram_001_page_37.png" || sink.names[1] != "diagram_002_page_37.png" {
		t.Errorf("Expected sequential ordinals, got %v", sink.names)
	}
}

func TestCompileAllContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Compiler{}
	records, _, err := c.CompileAll(ctx, []assemble.Match{sampleMatch()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records after immediate cancel, got %d", len(records))
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	sink := &DirSink{Dir: dir}

	path, err := sink.Store("diagram_001_page_5.png", []byte("data"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if path != filepath.Join(dir, "diagram_001_page_5.png") {
		t.Errorf("Unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("Unexpected file content %q", data)
	}
}

func TestWriteCSV(t *testing.T) {
	c := &Compiler{}
	record, _ := c.Compile(context.Background(), sampleMatch(), 1)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []model.DiagramRecord{record}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("Expected a UTF-8 byte order mark")
	}

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\ufeff"), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "page,diagram_number,players,year,solution_move") {
		t.Errorf("Unexpected header row %q", lines[0])
	}
	if !strings.Contains(lines[1], "Tal - Botvinnik") || !strings.Contains(lines[1], "Nxf7") {
		t.Errorf("Unexpected record row %q", lines[1])
	}
}

func TestWriteCSVEmptySolutionPage(t *testing.T) {
	c := &Compiler{}
	match := sampleMatch()
	match.Solution = nil
	record, _ := c.Compile(context.Background(), match, 1)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []model.DiagramRecord{record}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasSuffix(strings.TrimRight(lines[1], "\r"), ",") {
		t.Errorf("Expected empty trailing solution_page cell, got %q", lines[1])
	}
}
