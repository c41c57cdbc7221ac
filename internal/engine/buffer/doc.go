// Package buffer defines the line-addressable text buffer collaborator and
// the Position value type used throughout the engine.
//
// The interpreter core never owns text storage; it reads and edits through
// the Buffer interface. Memory provides the in-process implementation used
// by tests and the demo front end.
//
// Positions are (line, character) pairs over the buffer's current content.
// Line is in [0, LineCount()); Character is in [0, len(line)] where the
// value len(line) denotes the virtual end-of-line slot.
package buffer
