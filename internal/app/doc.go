// Package app is the terminal front end: it owns the tcell screen,
// translates terminal key events into engine key tokens, renders the
// buffer and status line, and wires configuration reload into the
// running session.
package app
