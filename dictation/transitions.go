package dictation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// event is an input to the session state machine.
type event int

const (
	evStart event = iota // hotkey chord pressed
	evStop               // hotkey chord released
	evEscape             // Escape pressed
	evDone               // worker finished with text
	evFail               // worker finished with an error
)

// eventArg carries the payload of worker completion events.
type eventArg struct {
	text string
	err  error
}

// transition mutates session state with e.mu held and returns a follow-up
// to run after the lock is released, or nil.
type transition func(e *Engine, arg eventArg) func()

// transitions is the complete session state machine. Pairs not listed here
// are no-ops: a stop while idle, an escape while transcribing, and a second
// start while recording all fall through silently.
var transitions = map[stateEvent]transition{
	{StateIdle, evStart}:        (*Engine).startLocked,
	{StateIdle, evEscape}:       (*Engine).undoLocked,
	{StateRecording, evStop}:    (*Engine).stopLocked,
	{StateRecording, evEscape}:  (*Engine).cancelLocked,
	{StateTranscribing, evDone}: (*Engine).doneLocked,
	{StateTranscribing, evFail}: (*Engine).failLocked,
}

// stateEvent keys the transition table.
type stateEvent struct {
	state State
	event event
}

// apply runs a single transition. The lock is held only for the state
// change itself; notifications and slow work happen in the returned
// follow-up, outside the lock.
func (e *Engine) apply(ev event, arg eventArg) {
	e.mu.Lock()
	fn, ok := transitions[stateEvent{e.state, ev}]
	if !ok {
		e.mu.Unlock()
		return
	}
	after := fn(e, arg)
	e.mu.Unlock()

	if after != nil {
		after()
	}
}

// startLocked begins a new recording session.
func (e *Engine) startLocked(eventArg) func() {
	e.buffer.Clear()
	e.cancelled = false
	e.startedAt = e.now()

	if err := e.capturer.Start(e.handleChunk); err != nil {
		slog.Error("start audio capture", "error", err)
		return func() { e.cb.emitError(fmt.Sprintf("Recording failed: %v", err)) }
	}

	e.state = StateRecording
	slog.Debug("recording started")
	return e.cb.emitRecordingStarted
}

// stopLocked closes the capture stream and decides whether the recording is
// worth transcribing. The cancelled flag is read exactly once, here; a
// cancel that already returned the session to idle never reaches this
// transition.
func (e *Engine) stopLocked(eventArg) func() {
	if err := e.capturer.Stop(); err != nil {
		slog.Error("stop audio capture", "error", err)
	}

	if e.cancelled {
		e.cancelled = false
		e.buffer.Clear()
		e.state = StateIdle
		return nil
	}

	wallSeconds := e.now().Sub(e.startedAt).Seconds()
	audioDuration := e.buffer.Duration()

	if audioDuration < e.minDuration {
		e.state = StateIdle
		slog.Debug("recording too short, discarding", "duration", audioDuration)
		return func() {
			e.cb.emitRecordingStopped()
			e.cb.emitRecordingDuration(wallSeconds)
		}
	}

	samples := e.buffer.Samples()
	e.state = StateTranscribing
	slog.Info("recording stopped", "duration", audioDuration, "samples", len(samples))

	return func() {
		e.cb.emitRecordingStopped()
		e.cb.emitRecordingDuration(wallSeconds)
		e.cb.emitTranscriptionStarted()
		go e.transcribeWorker(samples)
	}
}

// cancelLocked discards the recording in progress.
func (e *Engine) cancelLocked(eventArg) func() {
	e.cancelled = true
	if err := e.capturer.Stop(); err != nil {
		slog.Error("stop audio capture", "error", err)
	}
	e.buffer.Clear()
	e.state = StateIdle
	slog.Info("recording cancelled")
	return e.cb.emitRecordingCancelled
}

// undoLocked consumes the one-shot undo window if it is still open. A zero
// deadline (never armed, or already consumed) fails the check as well.
func (e *Engine) undoLocked(eventArg) func() {
	if !e.now().Before(e.undoDeadline) {
		return nil
	}
	e.undoDeadline = time.Time{}

	return func() {
		if err := e.injector.Undo(); err != nil {
			slog.Error("undo paste", "error", err)
			return
		}
		slog.Info("paste undone")
		e.cb.emitPasteUndone()
	}
}

// doneLocked finishes a successful transcription. The injector sleeps while
// the paste settles, so everything beyond the state change runs outside the
// lock.
func (e *Engine) doneLocked(arg eventArg) func() {
	e.state = StateIdle

	text := strings.TrimSpace(arg.text)
	if text == "" {
		slog.Info("transcription empty, nothing to paste")
		return func() { e.cb.emitTranscriptionDone("") }
	}

	return func() {
		if e.settings == nil || e.settings.AddTrailingSpace() {
			text += " "
		}

		if err := e.injector.Inject(text); err != nil {
			slog.Error("inject text", "error", err)
			e.cb.emitError(fmt.Sprintf("Paste failed: %v", err))
			return
		}

		e.armUndo()
		slog.Info("transcription pasted", "chars", len(text))
		e.cb.emitTranscriptionDone(text)
	}
}

// failLocked surfaces a worker failure and returns the session to idle.
func (e *Engine) failLocked(arg eventArg) func() {
	e.state = StateIdle
	return func() {
		slog.Error("transcription failed", "error", arg.err)
		e.cb.emitError(fmt.Sprintf("Transcription failed: %v", arg.err))
	}
}

// armUndo opens the undo window for the paste that just landed.
func (e *Engine) armUndo() {
	e.mu.Lock()
	e.undoDeadline = e.now().Add(e.undoWindow)
	e.mu.Unlock()
}
