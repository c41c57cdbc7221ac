// Package match implements delimiter matching: bracket pairs across the
// whole buffer, quote pairs within a line, and tag pairs within a line.
//
// All matchers are pure functions of their input text and position; none
// mutates a buffer.
package match
