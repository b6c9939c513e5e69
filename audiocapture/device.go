package audiocapture

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	paOnce    sync.Once
	paInitErr error
)

// ensureInitialized initializes PortAudio once per process. Termination is
// left to process exit; streams are closed individually.
func ensureInitialized() error {
	paOnce.Do(func() {
		paInitErr = portaudio.Initialize()
	})
	return paInitErr
}

// Device captures microphone audio from the default input device.
type Device struct {
	cfg Config

	mu      sync.Mutex
	stream  *portaudio.Stream
	running bool
}

// NewDevice creates a capture device with the given configuration.
func NewDevice(cfg Config) (*Device, error) {
	if err := ensureInitialized(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &Device{cfg: cfg.withDefaults()}, nil
}

// Start opens the default input stream and begins delivering chunks to the
// handler.
func (d *Device) Start(handler AudioHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return ErrAlreadyCapturing
	}
	if handler == nil {
		return ErrNilHandler
	}

	stream, err := portaudio.OpenDefaultStream(
		1, 0, float64(d.cfg.SampleRate), d.cfg.FramesPerChunk,
		func(in []float32) {
			handler(in)
		},
	)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	d.stream = stream
	d.running = true
	return nil
}

// Stop stops and closes the stream. Stopping a stopped device is a no-op.
func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}
	d.running = false

	var firstErr error
	if err := d.stream.Stop(); err != nil {
		firstErr = fmt.Errorf("stop input stream: %w", err)
	}
	if err := d.stream.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close input stream: %w", err)
	}
	d.stream = nil
	return firstErr
}

// Running reports whether the device is capturing.
func (d *Device) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// SampleRate returns the configured sample rate.
func (d *Device) SampleRate() int {
	return d.cfg.SampleRate
}
