// Package audiocapture provides microphone capture for dictation: a
// PortAudio-backed input device delivering fixed-size chunks of 16 kHz mono
// float32 samples, and a session buffer that accumulates them.
package audiocapture

import (
	"errors"
	"time"
)

// ErrAlreadyCapturing is returned when starting a device that is already capturing.
var ErrAlreadyCapturing = errors.New("already capturing audio")

// ErrNilHandler is returned when starting a device without a handler.
var ErrNilHandler = errors.New("nil audio handler")

const (
	// DefaultSampleRate is the capture rate expected by the transcription
	// backends.
	DefaultSampleRate = 16000
	// DefaultFramesPerChunk is the chunk size delivered to handlers,
	// 100 ms at the default sample rate.
	DefaultFramesPerChunk = 1600
)

// AudioHandler receives one chunk of mono float32 samples in [-1, 1]. It is
// invoked on the audio callback goroutine and must only copy the samples and
// hand them off; the underlying array is reused for the next chunk.
type AudioHandler func(samples []float32)

// Capturer abstracts the audio input device so the engine can be tested
// without hardware.
type Capturer interface {
	// Start begins capture, delivering chunks to the handler until Stop.
	Start(handler AudioHandler) error
	// Stop ends capture. Stopping a stopped capturer is a no-op.
	Stop() error
}

// Config holds configuration for audio capture.
type Config struct {
	SampleRate     int // Samples per second, default 16000 Hz
	FramesPerChunk int // Samples per handler invocation, default 1600 (100 ms)
}

// DefaultConfig returns the default capture configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:     DefaultSampleRate,
		FramesPerChunk: DefaultFramesPerChunk,
	}
}

// withDefaults fills zero fields with defaults.
func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.FramesPerChunk <= 0 {
		c.FramesPerChunk = DefaultFramesPerChunk
	}
	return c
}

// ChunkDuration returns the wall-clock length of one chunk.
func (c Config) ChunkDuration() time.Duration {
	c = c.withDefaults()
	return time.Duration(c.FramesPerChunk) * time.Second / time.Duration(c.SampleRate)
}
