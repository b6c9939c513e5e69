package dictation

// Callbacks are the engine's notifications to the UI layer. All fields are
// optional; nil callbacks are skipped. They are invoked synchronously from
// whichever goroutine drives the transition and must return quickly.
type Callbacks struct {
	RecordingStarted     func()
	RecordingStopped     func()
	RecordingCancelled   func()
	AudioLevel           func(rms float32)
	TranscriptionStarted func()
	TranscriptionDone    func(text string)
	Error                func(message string)
	PasteUndone          func()
	RecordingDuration    func(seconds float64)
}

func (c Callbacks) emitRecordingStarted() {
	if c.RecordingStarted != nil {
		c.RecordingStarted()
	}
}

func (c Callbacks) emitRecordingStopped() {
	if c.RecordingStopped != nil {
		c.RecordingStopped()
	}
}

func (c Callbacks) emitRecordingCancelled() {
	if c.RecordingCancelled != nil {
		c.RecordingCancelled()
	}
}

func (c Callbacks) emitAudioLevel(rms float32) {
	if c.AudioLevel != nil {
		c.AudioLevel(rms)
	}
}

func (c Callbacks) emitTranscriptionStarted() {
	if c.TranscriptionStarted != nil {
		c.TranscriptionStarted()
	}
}

func (c Callbacks) emitTranscriptionDone(text string) {
	if c.TranscriptionDone != nil {
		c.TranscriptionDone(text)
	}
}

func (c Callbacks) emitError(message string) {
	if c.Error != nil {
		c.Error(message)
	}
}

func (c Callbacks) emitPasteUndone() {
	if c.PasteUndone != nil {
		c.PasteUndone()
	}
}

func (c Callbacks) emitRecordingDuration(seconds float64) {
	if c.RecordingDuration != nil {
		c.RecordingDuration(seconds)
	}
}
