// Package archive writes finished recordings to disk as WAV files.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer saves recordings into a directory and prunes old ones.
type Writer struct {
	dir string
	now func() time.Time
}

// New creates the archive directory if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// Save writes samples as a 16-bit mono WAV file and returns its path.
// Filenames embed a millisecond timestamp so lexical order is temporal.
func (w *Writer) Save(samples []float32, sampleRate int) (string, error) {
	name := "rec_" + w.now().Format("20060102-150405.000") + ".wav"
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create recording file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("finalize wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close recording file: %w", err)
	}

	return path, nil
}

// Prune deletes the oldest recordings beyond keep.
func (w *Writer) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}

	matches, err := filepath.Glob(filepath.Join(w.dir, "rec_*.wav"))
	if err != nil {
		return fmt.Errorf("list recordings: %w", err)
	}
	if len(matches) <= keep {
		return nil
	}

	slices.Sort(matches)
	for _, path := range matches[:len(matches)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old recording: %w", err)
		}
	}

	return nil
}
