// Package key defines the key token model used by the interpreter.
//
// A key token is either a single printable character ("a", "$", " ") or a
// bracketed name for a special or chorded key ("<esc>", "<bs>", "<c-r>").
// Tokens are the sole input surface of the engine: the host translates its
// native key events into tokens and injects them one at a time.
//
// Tokens are normalized to a canonical lowercase bracketed form so that
// "<Esc>", "<ESC>" and "<esc>" compare equal.
package key
