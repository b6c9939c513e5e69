package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Stats tracks cumulative dictation usage across sessions.
type Stats struct {
	TotalRecordingSeconds float64 `json:"total_recording_seconds"`
	TotalRecordings       int     `json:"total_recordings"`
}

// LoadStats loads usage statistics. A missing or corrupted stats file
// yields zero stats rather than an error, so a bad write never breaks
// startup.
func LoadStats() (*Stats, error) {
	path, err := statsPath()
	if err != nil {
		return nil, fmt.Errorf("get stats path: %w", err)
	}
	return loadStatsFrom(path)
}

func loadStatsFrom(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Stats{}, nil
		}
		return nil, fmt.Errorf("read stats: %w", err)
	}

	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("stats file corrupted, starting fresh", "error", err)
		return &Stats{}, nil
	}

	return &s, nil
}

// Save persists the statistics to disk.
func (s *Stats) Save() error {
	path, err := statsPath()
	if err != nil {
		return fmt.Errorf("get stats path: %w", err)
	}
	return s.saveTo(path)
}

func (s *Stats) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	return nil
}

// AddRecording accumulates one finished recording.
func (s *Stats) AddRecording(seconds float64) {
	s.TotalRecordingSeconds += seconds
	s.TotalRecordings++
}

func statsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, statsFileName), nil
}
