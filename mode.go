package avatar

// DisplayMode selects what the widget draws.
type DisplayMode uint8

const (
	// ModeAvatar draws the circular crop of the source image.
	ModeAvatar DisplayMode = iota

	// ModeInitials draws the colored initials badge.
	ModeInitials
)

// String returns the mode name.
func (m DisplayMode) String() string {
	switch m {
	case ModeAvatar:
		return "avatar"
	case ModeInitials:
		return "initials"
	default:
		return "unknown"
	}
}

// ModeMachine tracks the display mode and the pulse that toggles it.
//
// A pulse starts with Trigger. The mode flips exactly once, at the
// grow/shrink boundary reported by Repeat, and the pulse ends with Finish.
// A Trigger while a pulse is in flight is ignored, so the number of
// toggles always equals the number of pulses played.
//
// The zero value is ready to use and starts in ModeAvatar.
type ModeMachine struct {
	mode      DisplayMode
	animating bool
	toggled   bool
}

// Mode returns the active display mode.
func (m *ModeMachine) Mode() DisplayMode { return m.mode }

// Animating reports whether a pulse is in flight.
func (m *ModeMachine) Animating() bool { return m.animating }

// Trigger starts a pulse. It reports false, and changes nothing, when a
// pulse is already in flight.
func (m *ModeMachine) Trigger() bool {
	if m.animating {
		return false
	}
	m.animating = true
	m.toggled = false
	return true
}

// Repeat handles the grow/shrink boundary and reports whether the mode
// flipped. Only the first call per pulse flips the mode.
func (m *ModeMachine) Repeat() bool {
	if !m.animating || m.toggled {
		return false
	}
	m.toggled = true
	if m.mode == ModeAvatar {
		m.mode = ModeInitials
	} else {
		m.mode = ModeAvatar
	}
	return true
}

// Finish ends the pulse in flight. A pulse cancelled before its boundary
// leaves the mode unchanged.
func (m *ModeMachine) Finish() {
	m.animating = false
	m.toggled = false
}

// restore sets the mode from persisted state and drops any pulse.
func (m *ModeMachine) restore(mode DisplayMode) {
	m.mode = mode
	m.animating = false
	m.toggled = false
}
