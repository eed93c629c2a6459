// Package chessdex extracts chess tactics diagrams from paginated
// documents.
//
// A document arrives as pages of positioned text and image blocks. The
// pipeline finds diagram headers like "27. Alekhine - Nimzowitsch, New
// York 1927", pairs each with its board image and solution text, and
// compiles the results into flat records ready for CSV export.
//
// Basic usage:
//
//	records, warnings, err := chessdex.OpenJSON("book.json").Records(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", chessdex.FormatWarnings(warnings))
//	}
//
// With options:
//
//	records, _, err := chessdex.OpenJSON("book.json").
//	    Pages(12, 13, 14).
//	    Strategy(assemble.StrategyFlexible).
//	    WithImageDir("out/images").
//	    Records(ctx)
//
// For advanced use cases the lower-level assemble and compile packages
// are also available.
package chessdex

import (
	"chessdex/assemble"
	"chessdex/source"
)

// OpenJSON opens a block-dump file and returns an Extractor for fluent
// configuration.
//
// Example:
//
//	records, warnings, err := chessdex.OpenJSON("book.json").Records(ctx)
func OpenJSON(path string) *Extractor {
	src, err := source.OpenJSON(path)
	if err != nil {
		return &Extractor{err: err, options: defaultOptions()}
	}
	return FromSource(src, src)
}

// FromSource creates an Extractor over an arbitrary page source. The
// resolver hands out the bytes behind the source's image references;
// sources like source.JSONSource and source.MemorySource implement
// both.
func FromSource(src source.Source, resolver assemble.ContentResolver) *Extractor {
	return &Extractor{
		source:   src,
		resolver: resolver,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call returning (T, error) and panics if
// the error is non-nil. It is intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords wraps a terminal call returning (T, []Warning, error) and
// panics on error, discarding warnings.
//
// Example:
//
//	records := chessdex.MustRecords(chessdex.OpenJSON("book.json").Records(ctx))
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
