// Package source supplies page elements to the pipeline.
//
// A Source yields pages of positioned elements; a paired content
// resolver hands out the raw bytes behind image references. The JSON
// source reads block dumps produced by upstream layout extractors, and
// the memory source backs tests and programmatic callers.
package source
