package chessdex

import (
	"context"
	"fmt"
	"io"

	"chessdex/assemble"
	"chessdex/board"
	"chessdex/classify"
	"chessdex/compile"
	"chessdex/model"
	"chessdex/sequence"
	"chessdex/source"
)

// Extractor provides a fluent interface for extracting diagram records.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	source   source.Source
	resolver assemble.ContentResolver

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options, so each chain method returns an independent instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:   e.source,
		resolver: e.resolver,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ============================================================================
// Configuration (chainable)
// ============================================================================

// Pages restricts extraction to the given 1-based page numbers.
func (e *Extractor) Pages(numbers ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append([]int(nil), numbers...)
	return newExt
}

// PageRange restricts extraction to pages from through to, inclusive.
func (e *Extractor) PageRange(from, to int) *Extractor {
	newExt := e.clone()
	if from > to {
		newExt.err = fmt.Errorf("invalid page range %d-%d", from, to)
		return newExt
	}
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	newExt.options.pages = pages
	return newExt
}

// Strategy selects the element ordering the engine expects around each
// header.
func (e *Extractor) Strategy(s assemble.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.engine.Strategy = s
	return newExt
}

// EngineConfig replaces the engine search parameters wholesale.
func (e *Extractor) EngineConfig(config assemble.Config) *Extractor {
	newExt := e.clone()
	newExt.options.engine = config
	return newExt
}

// MaxDiagrams caps how many diagrams are extracted; zero means no cap.
func (e *Extractor) MaxDiagrams(n int) *Extractor {
	newExt := e.clone()
	newExt.options.engine.MaxDiagrams = n
	return newExt
}

// HeaderPattern overrides the header regular expression. The pattern
// must capture number, white, black, and year; a fifth group is taken
// as the site.
func (e *Extractor) HeaderPattern(pattern string) *Extractor {
	newExt := e.clone()
	newExt.options.headerPattern = pattern
	return newExt
}

// SolutionPatterns overrides the solution patterns. Declaration order
// is the tie-break when two patterns match at the same offset.
func (e *Extractor) SolutionPatterns(patterns ...string) *Extractor {
	newExt := e.clone()
	newExt.options.solutionPatterns = append([]string(nil), patterns...)
	return newExt
}

// TriggerPhrase overrides the phrase that marks indirect solutions.
func (e *Extractor) TriggerPhrase(phrase string) *Extractor {
	newExt := e.clone()
	newExt.options.triggerPhrase = phrase
	return newExt
}

// WithResolver replaces the content resolver the source provided.
func (e *Extractor) WithResolver(r assemble.ContentResolver) *Extractor {
	newExt := e.clone()
	newExt.resolver = r
	return newExt
}

// WithClassifier replaces the stock board classifier.
func (e *Extractor) WithClassifier(c assemble.ImageClassifier) *Extractor {
	newExt := e.clone()
	newExt.options.classifier = c
	return newExt
}

// WithLookup enables position lookup for accepted board images.
func (e *Extractor) WithLookup(l compile.FENLookup) *Extractor {
	newExt := e.clone()
	newExt.options.lookup = l
	return newExt
}

// WithSink stores accepted board images through the given sink.
func (e *Extractor) WithSink(s compile.ImageSink) *Extractor {
	newExt := e.clone()
	newExt.options.sink = s
	return newExt
}

// WithImageDir stores accepted board images as files in a directory.
func (e *Extractor) WithImageDir(dir string) *Extractor {
	return e.WithSink(&compile.DirSink{Dir: dir})
}

// WithObserver receives engine progress events during extraction.
func (e *Extractor) WithObserver(o assemble.Observer) *Extractor {
	newExt := e.clone()
	newExt.options.observer = o
	return newExt
}

// WithOCR recovers text from image blocks through the given recognizer
// before matching runs. Scanned books render headers and solutions as
// images; recognized text is inserted right after the originating
// image block.
func (e *Extractor) WithOCR(r TextRecognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Records runs the full pipeline and returns the compiled diagram
// records, any warnings encountered, and an error if extraction failed.
// Warnings indicate non-fatal issues where a record or element is
// incomplete but extraction as a whole succeeded.
//
// Example:
//
//	records, warnings, err := chessdex.OpenJSON("book.json").Records(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", chessdex.FormatWarnings(warnings))
//	}
func (e *Extractor) Records(ctx context.Context) ([]model.DiagramRecord, []Warning, error) {
	matches, warnings, err := e.Matches(ctx)
	if err != nil && len(matches) == 0 {
		return nil, warnings, err
	}

	compiler := &compile.Compiler{
		Lookup: e.options.lookup,
		Sink:   e.options.sink,
	}
	addWarnings := func(ws []compile.Warning) {
		for _, w := range ws {
			warnings = append(warnings, Warning{Code: "compile", Page: w.Page, Message: w.Message})
		}
	}

	if err != nil {
		// Assembly was interrupted; still flatten the matches gathered so
		// far instead of discarding them. Enrichment fails fast on the
		// dead context and surfaces as warnings.
		records := make([]model.DiagramRecord, 0, len(matches))
		for i, match := range matches {
			record, w := compiler.Compile(ctx, match, i+1)
			records = append(records, record)
			addWarnings(w)
		}
		return records, warnings, err
	}

	records, compileWarnings, err := compiler.CompileAll(ctx, matches)
	addWarnings(compileWarnings)
	return records, warnings, err
}

// Matches runs header search and image pairing without compilation.
func (e *Extractor) Matches(ctx context.Context) ([]assemble.Match, []Warning, error) {
	seq, warnings, err := e.Sequence(ctx)
	if err != nil {
		return nil, warnings, err
	}

	engine, err := e.buildEngine()
	if err != nil {
		return nil, warnings, err
	}
	matches, err := engine.Assemble(ctx, seq)
	return matches, warnings, err
}

// Headers returns every distinct diagram header in the document, in
// order of first appearance.
func (e *Extractor) Headers(ctx context.Context) ([]model.Header, []Warning, error) {
	seq, warnings, err := e.Sequence(ctx)
	if err != nil {
		return nil, warnings, err
	}

	matcher, err := classify.NewHeaderMatcher(e.options.headerPattern)
	if err != nil {
		return nil, warnings, err
	}

	seen := make(map[model.HeaderKey]bool)
	var headers []model.Header
	for i, item := range seq {
		text, ok := item.Element.(*model.TextElement)
		if !ok {
			continue
		}
		header, ok := matcher.Match(text.Content)
		if !ok || seen[header.Key()] {
			continue
		}
		header.SourceIndex = i
		header.Page = item.Page
		seen[header.Key()] = true
		headers = append(headers, header)
	}
	return headers, warnings, nil
}

// Sequence loads the selected pages and returns the flattened element
// stream the engine would search.
func (e *Extractor) Sequence(ctx context.Context) (sequence.GlobalSequence, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.source == nil {
		return nil, nil, fmt.Errorf("no source configured")
	}

	pages, err := e.source.Pages(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load pages: %w", err)
	}
	pages = e.selectPages(pages)

	warnings := append([]Warning(nil), e.warnings...)
	pages, warnings = e.recoverText(pages, warnings)
	return sequence.Flatten(pages), warnings, nil
}

// ExportCSV runs the full pipeline and writes the records as CSV. On
// interruption the records compiled before it are still written ahead
// of the error, so a long run never loses finished work.
func (e *Extractor) ExportCSV(ctx context.Context, w io.Writer) ([]Warning, error) {
	records, warnings, err := e.Records(ctx)
	if err != nil {
		if len(records) > 0 {
			if werr := compile.WriteCSV(w, records); werr != nil {
				return warnings, werr
			}
		}
		return warnings, err
	}
	return warnings, compile.WriteCSV(w, records)
}

// ============================================================================
// Internals
// ============================================================================

// selectPages applies the configured page filter.
func (e *Extractor) selectPages(pages []sequence.Page) []sequence.Page {
	if len(e.options.pages) == 0 {
		return pages
	}
	wanted := make(map[int]bool, len(e.options.pages))
	for _, n := range e.options.pages {
		wanted[n] = true
	}
	selected := make([]sequence.Page, 0, len(e.options.pages))
	for _, p := range pages {
		if wanted[p.Number] {
			selected = append(selected, p)
		}
	}
	return selected
}

// recoverText runs the configured recognizer over image blocks and
// inserts recognized text right after each originating image, so
// scanned headers and solutions become matchable.
func (e *Extractor) recoverText(pages []sequence.Page, warnings []Warning) ([]sequence.Page, []Warning) {
	if e.options.recognizer == nil {
		return pages, warnings
	}

	out := make([]sequence.Page, len(pages))
	for i, page := range pages {
		elements := make([]model.Element, 0, len(page.Elements))
		for _, el := range page.Elements {
			elements = append(elements, el)

			img, ok := el.(*model.ImageElement)
			if !ok {
				continue
			}
			data, err := e.resolver.Resolve(img.ContentRef)
			if err != nil {
				warnings = append(warnings, Warning{Code: "source", Page: page.Number,
					Message: fmt.Sprintf("resolve %q: %v", img.ContentRef, err)})
				continue
			}
			text, err := e.options.recognizer.Text(data)
			if err != nil {
				warnings = append(warnings, Warning{Code: "ocr", Page: page.Number,
					Message: err.Error()})
				continue
			}
			if text != "" {
				elements = append(elements, &model.TextElement{Content: text, BBox: img.BBox})
			}
		}
		out[i] = sequence.Page{Number: page.Number, Elements: elements}
	}
	return out, warnings
}

// buildEngine assembles the engine from the configured options.
func (e *Extractor) buildEngine() (*assemble.Engine, error) {
	headers, err := classify.NewHeaderMatcher(e.options.headerPattern)
	if err != nil {
		return nil, err
	}
	solutions, err := classify.NewSolutionMatcher(e.options.solutionPatterns...)
	if err != nil {
		return nil, err
	}

	classifier := e.options.classifier
	if classifier == nil {
		classifier = board.Bytes{Classifier: board.DefaultComposite()}
	}

	return assemble.New(e.options.engine, assemble.Deps{
		Classifier: classifier,
		Resolver:   e.resolver,
		Headers:    headers,
		Solutions:  solutions,
		Trigger:    classify.NewTriggerMatcher(e.options.triggerPhrase),
		Observer:   e.options.observer,
	})
}
