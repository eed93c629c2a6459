// Package assemble pairs diagram headers with their board images and
// solution text.
//
// The engine walks a flattened element sequence, finds header lines,
// and for each new header searches a bounded window of nearby elements
// for the matching board image and solution block. Several search
// strategies cover the layout conventions of different books; the
// default expects header, then image, then solution in reading order.
//
// The engine itself never touches pixels or fetches content. Image
// bytes come from a ContentResolver and the board judgment from an
// ImageClassifier, so the search logic is testable with fakes.
package assemble
