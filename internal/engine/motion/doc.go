// Package motion implements the pure positional algorithms behind cursor
// motions: character and line stepping, word and WORD boundaries, sentence,
// paragraph and section boundaries, and single-line character searches.
//
// Every function is a pure computation over a buffer.Reader and returns a
// new Position; none mutates the buffer. Motions that cannot locate their
// target report failure through an ok return value rather than an error.
//
// Columns are byte offsets within a line; scanning decodes UTF-8 runes at
// byte boundaries.
package motion
