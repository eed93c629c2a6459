// Package classify provides pattern-based recognition of diagram page
// elements: header lines carrying player metadata, solution blocks
// carrying the first move of the tactical line, and trigger phrases that
// indicate an indirectly presented solution. All matchers operate on
// normalized text; normalization maps chess figurines and typographic
// punctuation to ASCII so patterns stay simple.
package classify
