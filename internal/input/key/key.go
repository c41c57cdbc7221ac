package key

import "strings"

// Named special key tokens in canonical form.
const (
	Escape    = "<esc>"
	Enter     = "<cr>"
	Tab       = "<tab>"
	Backspace = "<bs>"
	Delete    = "<del>"
	Up        = "<up>"
	Down      = "<down>"
	Left      = "<left>"
	Right     = "<right>"
	Home      = "<home>"
	End       = "<end>"
	PageUp    = "<pageup>"
	PageDown  = "<pagedown>"
	Insert    = "<insert>"
)

// aliases maps alternate spellings to canonical tokens.
var aliases = map[string]string{
	"<escape>":    Escape,
	"<return>":    Enter,
	"<enter>":     Enter,
	"<backspace>": Backspace,
	"<delete>":    Delete,
	"<space>":     " ",
	"<pgup>":      PageUp,
	"<pgdn>":      PageDown,
}

// specialKeys is the set of named (non-chorded) special key tokens.
var specialKeys = map[string]bool{
	Escape:    true,
	Enter:     true,
	Tab:       true,
	Backspace: true,
	Delete:    true,
	Up:        true,
	Down:      true,
	Left:      true,
	Right:     true,
	Home:      true,
	End:       true,
	PageUp:    true,
	PageDown:  true,
	Insert:    true,
}

// Normalize converts a token to its canonical form.
// Bare characters pass through unchanged; bracketed names are lowercased
// and alias spellings are resolved ("<Esc>" -> "<esc>", "<Space>" -> " ").
func Normalize(token string) string {
	if len(token) < 2 || token[0] != '<' || token[len(token)-1] != '>' {
		return token
	}
	lower := strings.ToLower(token)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}
	return lower
}

// FromRune returns the token for a typed printable character.
func FromRune(r rune) string {
	return string(r)
}

// IsSpecial returns true if the token names a special key such as <esc>.
func IsSpecial(token string) bool {
	return specialKeys[Normalize(token)]
}

// IsChord returns true if the token is a modifier chord such as <c-r>
// or <a-x>. The shift modifier is folded into the character itself, so
// only ctrl, alt and meta chords appear as tokens.
func IsChord(token string) bool {
	t := Normalize(token)
	if len(t) < 5 || t[0] != '<' || t[len(t)-1] != '>' {
		return false
	}
	switch t[1] {
	case 'c', 'a', 'm', 'd', 's':
		return t[2] == '-'
	}
	return false
}

// IsControl returns true for any token that does not represent a plain
// printable character: named special keys, modifier chords, and anything
// else in bracketed form. The <character> wildcard matches exactly the
// tokens for which IsControl is false.
func IsControl(token string) bool {
	t := Normalize(token)
	if specialKeys[t] {
		return true
	}
	if IsChord(t) {
		return true
	}
	// Unknown bracketed names are treated as control keys rather than text.
	return len(t) >= 2 && t[0] == '<' && t[len(t)-1] == '>'
}

// IsPrintable returns true if the token is a single printable character
// that can be inserted as buffer text.
func IsPrintable(token string) bool {
	if IsControl(token) {
		return false
	}
	runes := []rune(token)
	return len(runes) == 1 && (runes[0] >= ' ' || runes[0] == '\t')
}

// IsDigit returns true if the token is a single decimal digit.
func IsDigit(token string) bool {
	return len(token) == 1 && token[0] >= '0' && token[0] <= '9'
}
