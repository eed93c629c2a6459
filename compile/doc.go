// Package compile turns assembled diagram matches into flat, exportable
// records.
//
// Compilation is where side effects happen: the accepted board image is
// written through an ImageSink and the position is looked up through a
// FENLookup. Both steps are optional and both are best-effort; a
// failure leaves the affected fields empty and the record intact.
package compile
