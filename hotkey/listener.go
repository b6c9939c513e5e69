package hotkey

import (
	"errors"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// ErrRunning is returned when starting a listener that is already running.
var ErrRunning = errors.New("hotkey listener already running")

// Callbacks receives push-to-talk decisions from the listener. All function
// fields are optional. Recording is queried before each decision so the
// matcher sees fresh session state; when nil the listener assumes idle.
//
// Callbacks are invoked synchronously on the hook goroutine and must not
// block.
type Callbacks struct {
	OnStart   func()
	OnStop    func()
	OnEscape  func()
	Recording func() bool
}

// Listener owns the global key hook and feeds its events through a Matcher.
type Listener struct {
	matcher *Matcher
	cb      Callbacks

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewListener creates a listener for the given chord.
func NewListener(chord Chord, cb Callbacks) *Listener {
	return &Listener{
		matcher: NewMatcher(chord),
		cb:      cb,
	}
}

// Start installs the global hook and begins dispatching key events.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return ErrRunning
	}

	events := hook.Start()
	l.done = make(chan struct{})
	l.running = true

	go l.loop(events)

	slog.Info("hotkey listener started", "chord", l.matcher.Chord())
	return nil
}

// Stop removes the global hook and waits for the event loop to drain.
// Stopping a stopped listener is a no-op.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	hook.End()
	<-done
	l.matcher.Reset()

	slog.Info("hotkey listener stopped")
}

// Running reports whether the hook is installed.
func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// SetChord replaces the chord the matcher watches for without reinstalling
// the hook. Held state is cleared, so the new chord needs a fresh press.
func (l *Listener) SetChord(chord Chord) {
	l.matcher.SetChord(chord)
	slog.Info("hotkey chord changed", "chord", chord)
}

// loop consumes the hook event stream until hook.End closes it. Key repeats
// surface as KeyHold on some platforms and as repeated KeyDown on others;
// both are routed as presses and the matcher makes duplicates harmless.
func (l *Listener) loop(events <-chan hook.Event) {
	defer close(l.done)

	for ev := range events {
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			l.dispatch(l.matcher.KeyDown(ev.Rawcode, l.recording()))
		case hook.KeyUp:
			l.dispatch(l.matcher.KeyUp(ev.Rawcode, l.recording()))
		}
	}
}

func (l *Listener) recording() bool {
	if l.cb.Recording == nil {
		return false
	}
	return l.cb.Recording()
}

func (l *Listener) dispatch(action Action) {
	switch action {
	case ActionStart:
		if l.cb.OnStart != nil {
			l.cb.OnStart()
		}
	case ActionStop:
		if l.cb.OnStop != nil {
			l.cb.OnStop()
		}
	case ActionEscape:
		if l.cb.OnEscape != nil {
			l.cb.OnEscape()
		}
	}
}
