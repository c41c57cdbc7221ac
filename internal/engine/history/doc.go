// Package history provides snapshot-based undo/redo and named marks for
// a single buffer.
package history
