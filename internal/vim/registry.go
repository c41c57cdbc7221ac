package vim

import "github.com/dshills/vimkit/internal/input/key"

// MatchStatus is the three-valued outcome of matching the typed keys
// against the action catalog.
type MatchStatus uint8

const (
	// MatchNone means no action can ever complete the typed keys.
	MatchNone MatchStatus = iota

	// MatchPartial means at least one action still needs more keys.
	MatchPartial

	// MatchFound means an action matched the full key buffer.
	MatchFound
)

// String returns the status name.
func (s MatchStatus) String() string {
	switch s {
	case MatchNone:
		return "none"
	case MatchPartial:
		return "partial"
	case MatchFound:
		return "found"
	default:
		return "unknown"
	}
}

// Registry is the ordered action catalog. Registration order is match
// priority; the catalog is populated once at startup and read-only
// afterwards.
type Registry struct {
	actions []*Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends actions to the catalog. Earlier registrations win
// ties, so specific patterns must precede general ones that would also
// match the same literal sequence.
func (r *Registry) Register(actions ...*Action) {
	r.actions = append(r.actions, actions...)
}

// matchInput carries the gates consulted while matching.
type matchInput struct {
	mode  Mode
	first bool // no count/operator/register prefix typed yet
	state *State
}

// Match tests keys against the catalog. The first action whose pattern
// matches the full buffer wins; otherwise a surviving prefix reports
// MatchPartial, and MatchNone means the buffer must be discarded.
func (r *Registry) Match(keys []string, in matchInput) (*Action, MatchStatus) {
	for _, a := range r.actions {
		if r.applies(a, keys, in) {
			return a, MatchFound
		}
	}
	for _, a := range r.actions {
		if r.couldApply(a, keys, in) {
			return nil, MatchPartial
		}
	}
	return nil, MatchNone
}

// applies is the exact-length test with every gate enforced.
func (r *Registry) applies(a *Action, keys []string, in matchInput) bool {
	if !r.gates(a, in) {
		return false
	}
	return compareKeypressSequence(a.Keys, keys)
}

// couldApply is the prefix test: only the already-typed tokens are
// compared.
func (r *Registry) couldApply(a *Action, keys []string, in matchInput) bool {
	if !r.gates(a, in) {
		return false
	}
	if len(keys) >= len(a.Keys) {
		return false
	}
	return compareKeypressSequence(a.Keys[:len(keys)], keys)
}

func (r *Registry) gates(a *Action, in matchInput) bool {
	if !a.validIn(in.mode) {
		return false
	}
	if a.MustBeFirstKey && !in.first {
		return false
	}
	if a.When != nil && !a.When(in.state) {
		return false
	}
	return true
}

// compareKeypressSequence matches typed tokens against a pattern of the
// same length, position by position: <any> matches every token,
// <number> a single decimal digit, <character> anything that is not a
// control-key token, and everything else by exact equality.
func compareKeypressSequence(pattern, typed []string) bool {
	if len(pattern) != len(typed) {
		return false
	}
	for i, p := range pattern {
		t := typed[i]
		switch p {
		case "<any>":
		case "<number>":
			if !key.IsDigit(t) {
				return false
			}
		case "<character>":
			if key.IsControl(t) {
				return false
			}
		default:
			if p != t {
				return false
			}
		}
	}
	return true
}
