package chessdex

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered during extraction.
// Extraction succeeded but the affected record or element may be
// incomplete.
type Warning struct {
	// Code groups warnings by origin: "source", "ocr", "compile".
	Code string

	// Page is the page the problem occurred on, 0 when not tied to one.
	Page int

	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings as a single semicolon-separated
// string for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
