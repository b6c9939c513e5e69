// Package clipboard inserts transcribed text into the focused application.
//
// Insertion goes through the system clipboard: the previous contents are
// saved, the text is written, a paste keystroke is synthesized, and the old
// contents are restored. This works in any application that accepts paste,
// at the cost of briefly occupying the clipboard.
package clipboard

import (
	"fmt"
	"log/slog"
	"time"

	atotto "github.com/atotto/clipboard"
)

const (
	// settleWrite is how long the clipboard gets to propagate the new
	// contents before the paste keystroke fires.
	settleWrite = 50 * time.Millisecond
	// settleRestore is how long the focused application gets to consume
	// the paste before the old contents are restored.
	settleRestore = 150 * time.Millisecond
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Synthesizer sends paste and undo keystrokes to the focused application.
type Synthesizer interface {
	Paste() error
	Undo() error
}

// Injector pastes text into whichever application has keyboard focus and
// can ask that application to undo the paste afterwards.
type Injector struct {
	clip          Clipboard
	keys          Synthesizer
	settleWrite   time.Duration
	settleRestore time.Duration
}

// New returns an Injector backed by the system clipboard and a keystroke
// synthesizer for the current platform.
func New() *Injector {
	return newInjector(systemClipboard{}, newSynthesizer())
}

func newInjector(clip Clipboard, keys Synthesizer) *Injector {
	return &Injector{
		clip:          clip,
		keys:          keys,
		settleWrite:   settleWrite,
		settleRestore: settleRestore,
	}
}

// Inject pastes text into the focused application. The previous clipboard
// contents are restored afterwards regardless of whether the paste keystroke
// succeeded; only a failed clipboard write aborts the attempt.
func (in *Injector) Inject(text string) error {
	saved, err := in.clip.ReadAll()
	if err != nil {
		// An unreadable clipboard (empty, or holding a non-text type)
		// must not block dictation. Restore to empty instead.
		slog.Warn("read clipboard before paste", "error", err)
		saved = ""
	}

	if err := in.clip.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	time.Sleep(in.settleWrite)

	pasteErr := in.keys.Paste()

	time.Sleep(in.settleRestore)
	if err := in.clip.WriteAll(saved); err != nil {
		slog.Warn("restore clipboard", "error", err)
	}

	if pasteErr != nil {
		return fmt.Errorf("synthesize paste: %w", pasteErr)
	}
	return nil
}

// Undo asks the focused application to undo the last edit. The caller is
// responsible for only invoking this while its paste is the last edit.
func (in *Injector) Undo() error {
	if err := in.keys.Undo(); err != nil {
		return fmt.Errorf("synthesize undo: %w", err)
	}
	return nil
}

// systemClipboard adapts the real clipboard to the Clipboard interface.
type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return atotto.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return atotto.WriteAll(text) }
