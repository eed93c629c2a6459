// Package board decides whether an extracted page image depicts a
// chessboard. The decision is pluggable: each heuristic (grid alternation,
// dimensional bounds, re-encoded byte size, square-region density) is an
// interchangeable Classifier strategy, and Composite combines several into
// one verdict. Thresholds are empirically tuned per book series and stay
// configurable.
package board
