package assemble

// EventKind identifies what the engine just did.
type EventKind int

const (
	// EventHeaderFound fires when a new header is recognized.
	EventHeaderFound EventKind = iota

	// EventHeaderDuplicate fires when a header repeats an identity the
	// run already processed.
	EventHeaderDuplicate

	// EventImageCandidate fires for each image the classifier accepted
	// inside a header's search window.
	EventImageCandidate

	// EventImageChosen fires when one candidate wins the ranking.
	EventImageChosen

	// EventImageRejected fires when the best candidate still falls below
	// the acceptance floor.
	EventImageRejected

	// EventTriggerFound fires when the solution search hits a trigger
	// phrase instead of a solution block.
	EventTriggerFound

	// EventSolutionFound fires when a solution block is attached.
	EventSolutionFound

	// EventSearchFailed fires when a header yields no acceptable image.
	EventSearchFailed
)

func (k EventKind) String() string {
	switch k {
	case EventHeaderFound:
		return "header_found"
	case EventHeaderDuplicate:
		return "header_duplicate"
	case EventImageCandidate:
		return "image_candidate"
	case EventImageChosen:
		return "image_chosen"
	case EventImageRejected:
		return "image_rejected"
	case EventTriggerFound:
		return "trigger_found"
	case EventSolutionFound:
		return "solution_found"
	case EventSearchFailed:
		return "search_failed"
	default:
		return "unknown"
	}
}

// Event is one engine progress notification.
type Event struct {
	Kind EventKind

	// Index is the global element index the event concerns.
	Index int

	// Page is the page that element sits on.
	Page int

	// Score carries the candidate score for image events, zero
	// otherwise.
	Score float64

	// Detail is a short human-readable note, e.g. the header identity.
	Detail string
}

// Observer receives engine progress events. Implementations must be
// fast; the engine calls them inline.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls the wrapped function.
func (f ObserverFunc) Observe(e Event) { f(e) }

// NopObserver discards all events.
type NopObserver struct{}

// Observe does nothing.
func (NopObserver) Observe(Event) {}
