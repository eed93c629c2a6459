package assemble

import (
	"context"
	"fmt"

	"chessdex/model"
	"chessdex/sequence"
)

// ImageClassifier judges whether raw image bytes depict a chessboard.
// The score expresses confidence in [0, 1]. An error means the bytes
// could not be judged at all; the engine treats such elements as
// non-candidates.
type ImageClassifier interface {
	Classify(data []byte) (board bool, score float64, err error)
}

// ContentResolver fetches the raw bytes behind an image element's
// content reference.
type ContentResolver interface {
	Resolve(ref string) ([]byte, error)
}

// HeaderMatcher recognizes diagram header lines.
type HeaderMatcher interface {
	Match(text string) (model.Header, bool)
}

// SolutionMatcher recognizes solution blocks.
type SolutionMatcher interface {
	Match(text string) (model.SolutionInfo, bool)
}

// TriggerMatcher recognizes trigger phrases that stand in for inline
// solutions.
type TriggerMatcher interface {
	Match(text string) bool
}

// Deps bundles the engine's collaborators.
type Deps struct {
	Classifier ImageClassifier
	Resolver   ContentResolver
	Headers    HeaderMatcher
	Solutions  SolutionMatcher

	// Trigger may be nil when the source uses no trigger phrases.
	Trigger TriggerMatcher

	// Observer may be nil; events are then discarded.
	Observer Observer
}

// Match is one assembled diagram: a header, its accepted board image,
// and the solution when one was found nearby. Solution is nil when the
// search found none; the diagram is still valid.
type Match struct {
	Header      model.Header
	HeaderIndex int

	Image     model.ImageCandidate
	ImageData []byte

	Solution *model.SolutionInfo
}

// verdict caches one element's resolved bytes and classifier judgment
// so overlapping search windows never re-classify the same image. ok
// distinguishes a cached judgment from a cached failure; the data bytes
// themselves may legitimately be empty.
type verdict struct {
	data  []byte
	board bool
	score float64
	ok    bool
}

// Engine pairs headers with board images and solutions over a flattened
// element sequence. An Engine is not safe for concurrent use; create
// one per run.
type Engine struct {
	config   Config
	deps     Deps
	verdicts map[int]verdict
}

// New creates an engine. Classifier, Resolver, Headers, and Solutions
// are required.
func New(config Config, deps Deps) (*Engine, error) {
	if deps.Classifier == nil {
		return nil, fmt.Errorf("assemble: nil ImageClassifier")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("assemble: nil ContentResolver")
	}
	if deps.Headers == nil {
		return nil, fmt.Errorf("assemble: nil HeaderMatcher")
	}
	if deps.Solutions == nil {
		return nil, fmt.Errorf("assemble: nil SolutionMatcher")
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	return &Engine{
		config:   config,
		deps:     deps,
		verdicts: make(map[int]verdict),
	}, nil
}

// Assemble walks the sequence and returns one Match per distinct header
// that yielded an accepted board image. On context cancellation the
// matches assembled so far are returned together with the context
// error.
func (e *Engine) Assemble(ctx context.Context, seq sequence.GlobalSequence) ([]Match, error) {
	seen := make(map[model.HeaderKey]bool)
	var matches []Match

	for i, item := range seq {
		if err := ctx.Err(); err != nil {
			return matches, err
		}
		if e.config.MaxDiagrams > 0 && len(matches) >= e.config.MaxDiagrams {
			break
		}

		text, ok := item.Element.(*model.TextElement)
		if !ok {
			continue
		}
		header, ok := e.deps.Headers.Match(text.Content)
		if !ok {
			continue
		}
		header.SourceIndex = i
		header.Page = item.Page

		key := header.Key()
		if seen[key] {
			e.observe(Event{Kind: EventHeaderDuplicate, Index: i, Page: item.Page,
				Detail: header.Players()})
			continue
		}
		seen[key] = true
		e.observe(Event{Kind: EventHeaderFound, Index: i, Page: item.Page,
			Detail: fmt.Sprintf("%s. %s, %s", header.Number, header.Players(), header.Year)})

		match, found := e.locate(seq, header)
		if !found {
			e.observe(Event{Kind: EventSearchFailed, Index: i, Page: item.Page,
				Detail: header.Players()})
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// locate runs the configured strategy for one header.
func (e *Engine) locate(seq sequence.GlobalSequence, header model.Header) (Match, bool) {
	match := Match{Header: header, HeaderIndex: header.SourceIndex}

	switch e.config.Strategy {
	case StrategyImageHeaderSolution:
		img, data, ok := e.bestImage(seq, header.SourceIndex, -e.config.BackwardWindow)
		if !ok {
			return Match{}, false
		}
		match.Image = img
		match.ImageData = data
		match.Solution = e.findSolutionAfter(seq, header.SourceIndex)
		return match, true

	case StrategyHeaderSolutionImage:
		sol := e.findSolutionAfter(seq, header.SourceIndex)
		if sol == nil {
			return Match{}, false
		}
		img, data, ok := e.bestImage(seq, sol.SourceIndex, e.forwardWindow(seq, header.SourceIndex))
		if !ok {
			return Match{}, false
		}
		match.Image = img
		match.ImageData = data
		match.Solution = sol
		return match, true

	case StrategyFlexible:
		img, data, ok := e.firstImage(seq, header.SourceIndex)
		if !ok {
			return Match{}, false
		}
		match.Image = img
		match.ImageData = data
		match.Solution = e.firstSolution(seq, header.SourceIndex)
		return match, true

	default: // StrategyHeaderImageSolution
		img, data, ok := e.bestImage(seq, header.SourceIndex, e.forwardWindow(seq, header.SourceIndex))
		if !ok {
			return Match{}, false
		}
		match.Image = img
		match.ImageData = data
		match.Solution = e.findSolutionAfter(seq, img.ElementIndex)
		return match, true
	}
}

// forwardWindow widens the base forward window when the header sits in
// the last few elements of its page, so the search reaches onto the
// next page where the diagram usually landed.
func (e *Engine) forwardWindow(seq sequence.GlobalSequence, headerIndex int) int {
	window := e.config.ForwardWindow
	if seq.PageTailLen(headerIndex) <= e.config.PageEndTail {
		window += e.config.PageEndExtension
	}
	return window
}

// bestImage scores every board-positive image within the window and
// returns the highest ranked one. A negative window searches backward.
// Candidates below the acceptance floor are rejected even when they are
// the only ones.
func (e *Engine) bestImage(seq sequence.GlobalSequence, origin, window int) (model.ImageCandidate, []byte, bool) {
	var best model.ImageCandidate
	var bestData []byte
	found := false

	e.eachImage(seq, origin, window, func(index int, item sequence.Item, v verdict) bool {
		cand := model.ImageCandidate{
			ElementIndex:    index,
			BBox:            item.Element.Bounds(),
			Page:            item.Page,
			ClassifierScore: v.score,
			Score:           e.config.Score.Rank(item.Element.Bounds(), index-origin),
		}
		e.observe(Event{Kind: EventImageCandidate, Index: index, Page: item.Page, Score: cand.Score})
		if !found || cand.Score > best.Score {
			best = cand
			bestData = v.data
			found = true
		}
		return true
	})

	if !found {
		return model.ImageCandidate{}, nil, false
	}
	if best.Score < e.config.Score.AcceptFloor {
		e.observe(Event{Kind: EventImageRejected, Index: best.ElementIndex,
			Page: best.Page, Score: best.Score})
		return model.ImageCandidate{}, nil, false
	}
	e.observe(Event{Kind: EventImageChosen, Index: best.ElementIndex,
		Page: best.Page, Score: best.Score})
	return best, bestData, true
}

// firstImage takes the first board-positive image near the header,
// forward before backward, without ranking. Both directions use the
// extended window; the flexible strategy exists for books with erratic
// layouts where the diagram drifts further from its header. Backward
// indices are visited in sequence order, so of two board images above
// the header the upper one wins.
func (e *Engine) firstImage(seq sequence.GlobalSequence, origin int) (model.ImageCandidate, []byte, bool) {
	var got model.ImageCandidate
	var gotData []byte
	found := false
	take := func(index int, item sequence.Item, v verdict) bool {
		got = model.ImageCandidate{
			ElementIndex:    index,
			BBox:            item.Element.Bounds(),
			Page:            item.Page,
			ClassifierScore: v.score,
			Score:           e.config.Score.Rank(item.Element.Bounds(), index-origin),
		}
		gotData = v.data
		found = true
		return false
	}

	e.eachImage(seq, origin, e.config.ForwardWindow+e.config.PageEndExtension, take)
	if !found {
		back := e.config.BackwardWindow + e.config.PageEndExtension
		for d := back; d >= 1 && !found; d-- {
			index := origin - d
			if index < 0 {
				continue
			}
			item := seq[index]
			img, ok := item.Element.(*model.ImageElement)
			if !ok {
				continue
			}
			v, ok := e.classifyAt(index, img)
			if !ok || !v.board {
				continue
			}
			take(index, item, v)
		}
	}

	if !found {
		return model.ImageCandidate{}, nil, false
	}
	e.observe(Event{Kind: EventImageChosen, Index: got.ElementIndex,
		Page: got.Page, Score: got.Score})
	return got, gotData, true
}

// eachImage visits board-positive images within the window around
// origin, nearest first. A negative window walks backward. The visit
// callback returns false to stop early.
func (e *Engine) eachImage(seq sequence.GlobalSequence, origin, window int, visit func(int, sequence.Item, verdict) bool) {
	step := 1
	n := window
	if window < 0 {
		step = -1
		n = -window
	}
	for d := 1; d <= n; d++ {
		index := origin + d*step
		if index < 0 || index >= len(seq) {
			break
		}
		item := seq[index]
		img, ok := item.Element.(*model.ImageElement)
		if !ok {
			continue
		}
		v, ok := e.classifyAt(index, img)
		if !ok || !v.board {
			continue
		}
		if !visit(index, item, v) {
			return
		}
	}
}

// classifyAt resolves and classifies the image element at the given
// global index, caching the outcome. Resolution and classification
// failures mark the element a permanent non-candidate.
func (e *Engine) classifyAt(index int, img *model.ImageElement) (verdict, bool) {
	if v, ok := e.verdicts[index]; ok {
		return v, v.ok
	}
	data, err := e.deps.Resolver.Resolve(img.ContentRef)
	if err == nil {
		board, score, cerr := e.deps.Classifier.Classify(data)
		if cerr == nil {
			v := verdict{data: data, board: board, score: score, ok: true}
			e.verdicts[index] = v
			return v, true
		}
	}
	e.verdicts[index] = verdict{}
	return verdict{}, false
}

// findSolutionAfter searches forward from the origin for a solution
// block. Hitting a trigger phrase first redirects the search into a
// short secondary window right after the trigger; when that window is
// empty the whole search ends without a solution.
func (e *Engine) findSolutionAfter(seq sequence.GlobalSequence, origin int) *model.SolutionInfo {
	for d := 1; d <= e.config.SolutionWindow; d++ {
		index := origin + d
		if index >= len(seq) {
			return nil
		}
		item := seq[index]
		text, ok := item.Element.(*model.TextElement)
		if !ok {
			continue
		}

		if e.deps.Trigger != nil && e.deps.Trigger.Match(text.Content) {
			e.observe(Event{Kind: EventTriggerFound, Index: index, Page: item.Page})
			return e.solutionInWindow(seq, index, e.config.TriggerWindow)
		}
		if sol, ok := e.deps.Solutions.Match(text.Content); ok {
			sol.SourceIndex = index
			sol.Page = item.Page
			e.observe(Event{Kind: EventSolutionFound, Index: index, Page: item.Page,
				Detail: sol.CleanedMove})
			return &sol
		}
	}
	return nil
}

// solutionInWindow looks for a solution block in the short window after
// a trigger element.
func (e *Engine) solutionInWindow(seq sequence.GlobalSequence, origin, window int) *model.SolutionInfo {
	for d := 1; d <= window; d++ {
		index := origin + d
		if index >= len(seq) {
			return nil
		}
		item := seq[index]
		text, ok := item.Element.(*model.TextElement)
		if !ok {
			continue
		}
		if sol, ok := e.deps.Solutions.Match(text.Content); ok {
			sol.SourceIndex = index
			sol.Page = item.Page
			e.observe(Event{Kind: EventSolutionFound, Index: index, Page: item.Page,
				Detail: sol.CleanedMove})
			return &sol
		}
	}
	return nil
}

// firstSolution takes the first solution near the header, forward
// before backward, ignoring triggers. Both directions use the same
// extended window as the flexible image search.
func (e *Engine) firstSolution(seq sequence.GlobalSequence, origin int) *model.SolutionInfo {
	window := e.config.SolutionWindow + e.config.PageEndExtension
	for d := 1; d <= window; d++ {
		index := origin + d
		if index >= len(seq) {
			break
		}
		if sol := e.solutionAt(seq, index); sol != nil {
			return sol
		}
	}
	for d := 1; d <= window; d++ {
		index := origin - d
		if index < 0 {
			break
		}
		if sol := e.solutionAt(seq, index); sol != nil {
			return sol
		}
	}
	return nil
}

func (e *Engine) solutionAt(seq sequence.GlobalSequence, index int) *model.SolutionInfo {
	text, ok := seq[index].Element.(*model.TextElement)
	if !ok {
		return nil
	}
	sol, ok := e.deps.Solutions.Match(text.Content)
	if !ok {
		return nil
	}
	sol.SourceIndex = index
	sol.Page = seq[index].Page
	e.observe(Event{Kind: EventSolutionFound, Index: index, Page: seq[index].Page,
		Detail: sol.CleanedMove})
	return &sol
}

func (e *Engine) observe(ev Event) {
	e.deps.Observer.Observe(ev)
}
