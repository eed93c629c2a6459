// Package sequence flattens per-page element lists into a single
// globally indexed stream.
//
// The assembly engine searches for related elements by distance in
// reading order. Page boundaries would break those searches, so pages
// are concatenated in page order into one sequence where every element
// carries its global index alongside its page of origin. A header near
// the bottom of one page and its diagram at the top of the next are
// then just a few positions apart.
package sequence
