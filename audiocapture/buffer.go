package audiocapture

import (
	"math"
	"sync"
	"time"
)

// Buffer accumulates the samples of one recording session. It is safe to
// append from the audio callback while another goroutine snapshots or clears.
type Buffer struct {
	mu         sync.Mutex
	samples    []float32
	sampleRate int
}

// NewBuffer creates an empty buffer for audio at the given sample rate.
func NewBuffer(sampleRate int) *Buffer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Buffer{sampleRate: sampleRate}
}

// Append copies the chunk into the buffer. The caller's slice may be reused
// afterwards.
func (b *Buffer) Append(chunk []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, chunk...)
}

// Samples returns a copy of everything recorded so far.
func (b *Buffer) Samples() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Duration returns the wall-clock length of the buffered audio.
func (b *Buffer) Duration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Duration(float64(len(b.samples)) / float64(b.sampleRate) * float64(time.Second))
}

// SampleRate returns the buffer's sample rate.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Clear drops all buffered samples, keeping capacity for reuse.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}

// RMS returns the root mean square level of a chunk, 0 for an empty chunk.
func RMS(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(samples))))
}
