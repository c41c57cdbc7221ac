package vim

// Mode identifies the modal state keystrokes are interpreted in.
type Mode uint8

const (
	// ModeNormal is the default command mode.
	ModeNormal Mode = iota

	// ModeInsert accepts literal text input.
	ModeInsert

	// ModeVisual is character-wise selection.
	ModeVisual

	// ModeVisualLine is line-wise selection.
	ModeVisualLine

	// ModeVisualBlock is rectangular selection.
	ModeVisualBlock

	// ModeVisualBlockInsert is insertion across a block selection.
	ModeVisualBlockInsert

	// ModeReplace overwrites characters in place.
	ModeReplace

	// ModeSearchInProgress is accumulating a / or ? pattern.
	ModeSearchInProgress
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	case ModeVisualLine:
		return "visualLine"
	case ModeVisualBlock:
		return "visualBlock"
	case ModeVisualBlockInsert:
		return "visualBlockInsert"
	case ModeReplace:
		return "replace"
	case ModeSearchInProgress:
		return "searchInProgress"
	default:
		return "unknown"
	}
}

// visualFamily reports whether m is one of the selection modes.
func (m Mode) visualFamily() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}
