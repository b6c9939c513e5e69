package hotkey

import "testing"

const (
	keyA uint16 = 0x3B // left ctrl
	keyB uint16 = 0x3A // left alt
	keyX uint16 = 0x00 // unrelated key
)

type step struct {
	name      string
	press     bool
	code      uint16
	recording bool
	want      Action
}

func runSteps(t *testing.T, m *Matcher, steps []step) {
	t.Helper()
	for _, s := range steps {
		var got Action
		if s.press {
			got = m.KeyDown(s.code, s.recording)
		} else {
			got = m.KeyUp(s.code, s.recording)
		}
		if got != s.want {
			t.Errorf("%s: got %v, want %v", s.name, got, s.want)
		}
	}
}

func TestMatcher_SingleKeyChord(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	runSteps(t, m, []step{
		{"1. press completes chord", true, keyA, false, ActionStart},
		{"2. repeat press does not retrigger", true, keyA, true, ActionNone},
		{"3. release breaks chord", false, keyA, true, ActionStop},
		{"4. release again is inert", false, keyA, false, ActionNone},
	})
}

func TestMatcher_TwoKeyChord(t *testing.T) {
	m := NewMatcher(Chord{keyA, keyB})

	runSteps(t, m, []step{
		{"1. first key alone", true, keyA, false, ActionNone},
		{"2. second key completes", true, keyB, false, ActionStart},
		{"3. releasing either member stops", false, keyA, true, ActionStop},
		{"4. releasing the other is inert", false, keyB, false, ActionNone},
	})
}

func TestMatcher_ABScenario(t *testing.T) {
	// Hold A, tap B twice: each B press re-completes the chord, each B
	// release breaks it.
	m := NewMatcher(Chord{keyA, keyB})

	runSteps(t, m, []step{
		{"1. hold A", true, keyA, false, ActionNone},
		{"2. press B starts", true, keyB, false, ActionStart},
		{"3. release B stops", false, keyB, true, ActionStop},
		{"4. press B starts again", true, keyB, false, ActionStart},
		{"5. release B stops again", false, keyB, true, ActionStop},
		{"6. release A is inert", false, keyA, false, ActionNone},
	})
}

func TestMatcher_KeyRepeatAtMostOnce(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	starts := 0
	for i := 0; i < 5; i++ {
		recording := starts > 0
		if m.KeyDown(keyA, recording) == ActionStart {
			starts++
		}
	}
	if starts != 1 {
		t.Errorf("start fired %d times across repeats, want 1", starts)
	}
}

func TestMatcher_UnrelatedKeys(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	runSteps(t, m, []step{
		{"1. unrelated press", true, keyX, false, ActionNone},
		{"2. chord press still starts", true, keyA, false, ActionStart},
		{"3. unrelated release while recording", false, keyX, true, ActionNone},
		{"4. chord release stops", false, keyA, true, ActionStop},
		{"5. release of never-pressed key", false, keyB, false, ActionNone},
	})
}

func TestMatcher_EscapeRouting(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	runSteps(t, m, []step{
		{"1. escape while idle", true, EscapeCode, false, ActionEscape},
		{"2. chord press starts", true, keyA, false, ActionStart},
		{"3. escape while recording", true, EscapeCode, true, ActionEscape},
		{"4. escape release is inert", false, EscapeCode, true, ActionNone},
		{"5. chord release still stops", false, keyA, true, ActionStop},
	})
}

func TestMatcher_EscapeNeverHeld(t *testing.T) {
	// A chord that includes the escape key can never be satisfied because
	// escape presses are routed, not recorded.
	m := NewMatcher(Chord{EscapeCode})

	if got := m.KeyDown(EscapeCode, false); got != ActionEscape {
		t.Fatalf("escape down = %v, want %v", got, ActionEscape)
	}
	if got := m.KeyDown(EscapeCode, false); got != ActionEscape {
		t.Fatalf("second escape down = %v, want %v", got, ActionEscape)
	}
}

func TestMatcher_StartOnlyWhenIdle(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	if got := m.KeyDown(keyA, true); got != ActionNone {
		t.Errorf("chord completed while recording = %v, want %v", got, ActionNone)
	}
}

func TestMatcher_StopOnlyWhenRecording(t *testing.T) {
	m := NewMatcher(Chord{keyA})

	m.KeyDown(keyA, false)
	if got := m.KeyUp(keyA, false); got != ActionNone {
		t.Errorf("chord broken while idle = %v, want %v", got, ActionNone)
	}
}

func TestMatcher_SetChordClearsHeld(t *testing.T) {
	m := NewMatcher(Chord{keyA})
	m.KeyDown(keyA, false)

	m.SetChord(Chord{keyB})

	// Old key no longer held, new chord requires a fresh press.
	if got := m.KeyUp(keyA, true); got != ActionNone {
		t.Errorf("stale release after SetChord = %v, want %v", got, ActionNone)
	}
	if got := m.KeyDown(keyB, false); got != ActionStart {
		t.Errorf("new chord press = %v, want %v", got, ActionStart)
	}
}

func TestMatcher_EmptyChordNeverMatches(t *testing.T) {
	m := NewMatcher(nil)

	if got := m.KeyDown(keyA, false); got != ActionNone {
		t.Errorf("press with empty chord = %v, want %v", got, ActionNone)
	}
}

func TestChord_String(t *testing.T) {
	tests := []struct {
		name  string
		chord Chord
		want  string
	}{
		{"single", Chord{0x36}, "0x36"},
		{"pair", Chord{0x3B, 0x3A}, "0x3B+0x3A"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chord.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChord_Contains(t *testing.T) {
	c := Chord{keyA, keyB}
	if !c.Contains(keyA) {
		t.Error("Contains(keyA) = false, want true")
	}
	if c.Contains(keyX) {
		t.Error("Contains(keyX) = true, want false")
	}
}
