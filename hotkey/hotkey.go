// Package hotkey provides the global push-to-talk hotkey: a pure chord
// matcher plus a listener that feeds it from the system-wide key event hook.
package hotkey

import (
	"fmt"
	"strings"
	"sync"
)

// Action is the decision produced by the matcher for a single key event.
type Action int

const (
	// ActionNone means the event changed nothing.
	ActionNone Action = iota
	// ActionStart means the chord was just completed and recording should begin.
	ActionStart
	// ActionStop means the chord was just broken and recording should end.
	ActionStop
	// ActionEscape means the escape key was pressed.
	ActionEscape
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionEscape:
		return "escape"
	default:
		return "none"
	}
}

// Chord is the set of virtual key codes that must all be held at once to
// trigger recording.
type Chord []uint16

// String renders the chord as hex key codes for logs.
func (c Chord) String() string {
	parts := make([]string, len(c))
	for i, code := range c {
		parts[i] = fmt.Sprintf("0x%02X", code)
	}
	return strings.Join(parts, "+")
}

// Contains reports whether the chord includes the given key code.
func (c Chord) Contains(code uint16) bool {
	for _, k := range c {
		if k == code {
			return true
		}
	}
	return false
}

// Matcher turns raw key transitions into push-to-talk actions. It tracks the
// set of currently held keys and produces edge-triggered start/stop decisions:
// start fires only on the press that completes the chord, stop only on the
// release that breaks it. The escape key is routed as ActionEscape and never
// enters the held set.
type Matcher struct {
	mu    sync.Mutex
	chord Chord
	held  map[uint16]struct{}
}

// NewMatcher creates a matcher for the given chord.
func NewMatcher(chord Chord) *Matcher {
	return &Matcher{
		chord: chord,
		held:  make(map[uint16]struct{}),
	}
}

// KeyDown records a key press and returns the resulting action. The recording
// flag is the caller's current session state; start decisions are only
// produced while it is false.
func (m *Matcher) KeyDown(code uint16, recording bool) Action {
	if code == EscapeCode {
		return ActionEscape
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.satisfied()
	m.held[code] = struct{}{}
	if !recording && !before && m.satisfied() {
		return ActionStart
	}
	return ActionNone
}

// KeyUp records a key release and returns the resulting action. Stop
// decisions are only produced while recording is true.
func (m *Matcher) KeyUp(code uint16, recording bool) Action {
	if code == EscapeCode {
		return ActionNone
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.satisfied()
	delete(m.held, code)
	if recording && before && !m.satisfied() {
		return ActionStop
	}
	return ActionNone
}

// SetChord replaces the chord and clears all held state.
func (m *Matcher) SetChord(chord Chord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chord = chord
	clear(m.held)
}

// Chord returns the configured chord.
func (m *Matcher) Chord() Chord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chord
}

// Reset clears the held set.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.held)
}

// satisfied reports whether every chord key is currently held.
// Callers must hold mu. An empty chord never matches.
func (m *Matcher) satisfied() bool {
	if len(m.chord) == 0 {
		return false
	}
	for _, code := range m.chord {
		if _, ok := m.held[code]; !ok {
			return false
		}
	}
	return true
}
