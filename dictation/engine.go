// Package dictation coordinates a push-to-talk dictation session: audio is
// captured while the hotkey chord is held, transcribed on release, and the
// resulting text is pasted into the focused application.
package dictation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gowtham-ponnana/JustDictate/audiocapture"
)

// ErrBackendUnavailable is returned by a Transcriber whose backend cannot
// serve yet, e.g. while a model download is still in progress.
var ErrBackendUnavailable = errors.New("transcription backend not ready")

// State identifies the phase a dictation session is in.
type State string

const (
	StateIdle         State = "idle"
	StateRecording    State = "recording"
	StateTranscribing State = "transcribing"
)

// Transcriber converts recorded samples to text.
type Transcriber interface {
	Transcribe(samples []float32, sampleRate int) (string, error)
}

// Injector inserts transcribed text into the focused application and can
// undo that insertion.
type Injector interface {
	Inject(text string) error
	Undo() error
}

// Settings is the configuration the engine reads while running.
// AddTrailingSpace is consulted at each completed transcription rather than
// cached, so a settings change applies to the very next dictation.
type Settings interface {
	AddTrailingSpace() bool
}

// Engine drives the session state machine. All state changes are serialized
// through one mutex and the transition table in transitions.go; the hotkey
// hook, the audio callback and the transcription worker never hold the lock
// across blocking work.
type Engine struct {
	// Dependencies
	capturer    audiocapture.Capturer
	transcriber Transcriber
	injector    Injector
	settings    Settings
	cb          Callbacks

	// Components
	buffer *audiocapture.Buffer

	// Configuration
	sampleRate  int
	minDuration time.Duration
	undoWindow  time.Duration

	now func() time.Time

	// State
	mu           sync.Mutex
	state        State
	startedAt    time.Time
	cancelled    bool
	undoDeadline time.Time
}

// Config holds the dependencies and tunables for an Engine.
type Config struct {
	Capturer    audiocapture.Capturer
	Transcriber Transcriber
	Injector    Injector
	Settings    Settings
	Callbacks   Callbacks

	SampleRate  int           // defaults to audiocapture.DefaultSampleRate
	MinDuration time.Duration // shortest recording worth transcribing
	UndoWindow  time.Duration // how long Escape undoes the last paste
}

// New creates an Engine. Capturer and Injector are required. A nil
// Transcriber is allowed and surfaces as ErrBackendUnavailable when a
// recording completes, so the hotkey stays responsive while a backend is
// still setting up.
func New(cfg Config) (*Engine, error) {
	if cfg.Capturer == nil {
		return nil, fmt.Errorf("capturer is required")
	}
	if cfg.Injector == nil {
		return nil, fmt.Errorf("injector is required")
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = audiocapture.DefaultSampleRate
	}
	if cfg.MinDuration == 0 {
		cfg.MinDuration = 300 * time.Millisecond
	}
	if cfg.UndoWindow == 0 {
		cfg.UndoWindow = 5 * time.Second
	}

	return &Engine{
		capturer:    cfg.Capturer,
		transcriber: cfg.Transcriber,
		injector:    cfg.Injector,
		settings:    cfg.Settings,
		cb:          cfg.Callbacks,
		buffer:      audiocapture.NewBuffer(cfg.SampleRate),
		sampleRate:  cfg.SampleRate,
		minDuration: cfg.MinDuration,
		undoWindow:  cfg.UndoWindow,
		now:         time.Now,
		state:       StateIdle,
	}, nil
}

// StartRecording opens the microphone and begins buffering audio.
// No-op unless the session is idle.
func (e *Engine) StartRecording() { e.apply(evStart, eventArg{}) }

// StopRecording closes the microphone and hands the buffered audio to the
// transcription worker. Recordings shorter than MinDuration are discarded
// silently. No-op unless the session is recording.
func (e *Engine) StopRecording() { e.apply(evStop, eventArg{}) }

// Escape cancels whatever is in progress: while recording it discards the
// audio, while idle it undoes the last paste if the undo window is still
// open. During transcription it does nothing.
func (e *Engine) Escape() { e.apply(evEscape, eventArg{}) }

// State returns the current session phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Close stops any capture in progress and returns the session to idle.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateRecording {
		e.state = StateIdle
		if err := e.capturer.Stop(); err != nil {
			return fmt.Errorf("stop capture: %w", err)
		}
	}
	return nil
}

// handleChunk runs on the audio callback goroutine. It must never block:
// the buffer has its own short-lived lock and the level callback is
// expected to be cheap.
func (e *Engine) handleChunk(samples []float32) {
	e.buffer.Append(samples)
	e.cb.emitAudioLevel(audiocapture.RMS(samples))
}

// transcribeWorker runs off the hook goroutine and reports exactly one
// completion event back to the state machine.
func (e *Engine) transcribeWorker(samples []float32) {
	text, err := e.runBackend(samples)
	if err != nil {
		e.apply(evFail, eventArg{err: err})
		return
	}
	e.apply(evDone, eventArg{text: text})
}

// runBackend calls the transcriber, converting panics into errors so a
// faulty backend cannot take down the process or wedge the session.
func (e *Engine) runBackend(samples []float32) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transcription backend panic: %v", r)
		}
	}()

	if e.transcriber == nil {
		return "", ErrBackendUnavailable
	}
	return e.transcriber.Transcribe(samples, e.sampleRate)
}
