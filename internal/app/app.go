// Package app wires the dictation engine, hotkey listener, transcription
// providers and tray UI into one background service.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gowtham-ponnana/JustDictate/archive"
	"github.com/gowtham-ponnana/JustDictate/audiocapture"
	"github.com/gowtham-ponnana/JustDictate/clipboard"
	"github.com/gowtham-ponnana/JustDictate/config"
	"github.com/gowtham-ponnana/JustDictate/dictation"
	"github.com/gowtham-ponnana/JustDictate/history"
	"github.com/gowtham-ponnana/JustDictate/hotkey"
	"github.com/gowtham-ponnana/JustDictate/internal/types"
	"github.com/gowtham-ponnana/JustDictate/langdetect"
	"github.com/gowtham-ponnana/JustDictate/notify"
	"github.com/gowtham-ponnana/JustDictate/stt"
)

// archiveKeep caps how many recordings the archive retains.
const archiveKeep = 20

// Service owns every long-lived component and the wiring between them.
// This struct focuses on orchestration; business logic lives in
// sub-components.
type Service struct {
	version string

	mu       sync.Mutex
	cfg      *config.Config
	provider stt.Provider
	stats    *config.Stats
	tray     *tray

	// Most recent finished recording, consumed when its transcription
	// completes.
	lastDuration float64
	lastLanguage string

	// Touched only on the audio callback goroutine.
	levelChunks int

	// Components, built once in Start before the listener goes live.
	engine   *dictation.Engine
	listener *hotkey.Listener
	registry *stt.Registry
	history  *history.Store
	archiver *archive.Writer
	detector *langdetect.Detector
}

// New creates the service. Call Start once the tray is ready.
func New(cfg *config.Config, version string) *Service {
	return &Service{cfg: cfg, version: version}
}

// Version returns the application version.
func (s *Service) Version() string {
	return s.version
}

// Start builds the dictation pipeline and installs the global hook.
// History, archive and statistics are best-effort: failures there are
// logged and the dictation path keeps working.
func (s *Service) Start() error {
	if !hotkey.IsAccessibilityTrusted(true) {
		slog.Warn("accessibility permission not granted; key events and paste may not work")
	}

	device, err := audiocapture.NewDevice(audiocapture.DefaultConfig())
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}

	engine, err := dictation.New(dictation.Config{
		Capturer:    device,
		Transcriber: engineTranscriber{svc: s},
		Injector:    clipboard.New(),
		Settings:    s,
		Callbacks:   s.engineCallbacks(),
	})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	s.engine = engine

	s.setupStorage()
	s.detector = langdetect.New()
	s.setupSTT()

	s.listener = hotkey.NewListener(s.cfg.Chord(), hotkey.Callbacks{
		OnStart:   engine.StartRecording,
		OnStop:    engine.StopRecording,
		OnEscape:  engine.Escape,
		Recording: func() bool { return engine.State() == dictation.StateRecording },
	})
	if err := s.listener.Start(); err != nil {
		return fmt.Errorf("start hotkey listener: %w", err)
	}

	slog.Info("service started", "version", s.version)
	return nil
}

// Stop tears the service down in reverse order of Start.
func (s *Service) Stop() {
	if s.listener != nil {
		s.listener.Stop()
	}
	if s.engine != nil {
		if err := s.engine.Close(); err != nil {
			slog.Error("close engine", "error", err)
		}
	}
	if s.registry != nil {
		if err := s.registry.Close(); err != nil {
			slog.Error("close stt providers", "error", err)
		}
	}
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			slog.Error("close history", "error", err)
		}
	}

	s.mu.Lock()
	stats := s.stats
	s.mu.Unlock()
	if stats != nil {
		if err := stats.Save(); err != nil {
			slog.Warn("save stats", "error", err)
		}
	}

	slog.Info("service stopped")
}

// setupStorage opens the stats, history and recording stores.
func (s *Service) setupStorage() {
	stats, err := config.LoadStats()
	if err != nil {
		slog.Warn("load stats", "error", err)
		stats = &config.Stats{}
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()

	dir, err := config.Dir()
	if err != nil {
		slog.Error("get data dir", "error", err)
		return
	}

	store, err := history.Open(filepath.Join(dir, "history"))
	if err != nil {
		slog.Error("open history", "error", err)
	} else {
		if days := s.cfg.HistoryDays; days > 0 {
			store.SetTTL(time.Duration(days) * 24 * time.Hour)
		}
		s.history = store
	}

	if s.cfg.KeepRecordings {
		w, err := archive.New(filepath.Join(dir, "recordings"))
		if err != nil {
			slog.Error("init recording archive", "error", err)
		} else {
			s.archiver = w
		}
	}
}

// archiveSamples keeps a WAV copy of the recording when enabled.
func (s *Service) archiveSamples(samples []float32, sampleRate int) {
	if s.archiver == nil {
		return
	}

	path, err := s.archiver.Save(samples, sampleRate)
	if err != nil {
		slog.Warn("archive recording", "error", err)
		return
	}
	slog.Debug("recording archived", "path", path)

	if err := s.archiver.Prune(archiveKeep); err != nil {
		slog.Warn("prune recordings", "error", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine callbacks
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) engineCallbacks() dictation.Callbacks {
	return dictation.Callbacks{
		RecordingStarted:     func() { s.setTrayState(dictation.StateRecording) },
		RecordingStopped:     func() { s.setTrayState(dictation.StateIdle) },
		RecordingCancelled:   func() { s.setTrayState(dictation.StateIdle) },
		AudioLevel:           s.onAudioLevel,
		TranscriptionStarted: func() { s.setTrayState(dictation.StateTranscribing) },
		TranscriptionDone:    s.onTranscriptionDone,
		Error:                s.onError,
		RecordingDuration:    s.onRecordingDuration,
	}
}

// onAudioLevel runs on the audio callback goroutine, so it only counts
// chunks and occasionally logs stream health.
func (s *Service) onAudioLevel(rms float32) {
	s.levelChunks++
	if s.levelChunks%50 == 0 {
		slog.Debug("capture level", "rms", rms, "chunks", s.levelChunks)
	}
}

func (s *Service) onRecordingDuration(seconds float64) {
	s.mu.Lock()
	s.lastDuration = seconds
	s.mu.Unlock()
}

func (s *Service) onError(message string) {
	s.setTrayState(dictation.StateIdle)
	notify.Error(message)
}

// onTranscriptionDone records the finished dictation in history and
// statistics, tagging it with a language when one can be determined.
func (s *Service) onTranscriptionDone(text string) {
	s.setTrayState(dictation.StateIdle)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		slog.Info("transcription empty, nothing pasted")
		return
	}

	notify.PlayDone()

	s.mu.Lock()
	duration := s.lastDuration
	lang := s.lastLanguage
	s.mu.Unlock()

	if lang == "" || lang == "auto" {
		lang = ""
		if code, _, ok := s.detector.Detect(trimmed); ok {
			lang = code
		}
	}

	if s.history != nil {
		if _, err := s.history.Add(trimmed, lang, duration); err != nil {
			slog.Warn("record history", "error", err)
		}
	}

	s.mu.Lock()
	if s.stats != nil {
		s.stats.AddRecording(duration)
		if err := s.stats.Save(); err != nil {
			slog.Warn("save stats", "error", err)
		}
	}
	s.mu.Unlock()

	s.refreshTray()
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings and status
// ─────────────────────────────────────────────────────────────────────────────

// AddTrailingSpace implements dictation.Settings. It is read per paste,
// so a menu toggle applies to the very next dictation.
func (s *Service) AddTrailingSpace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.TrailingSpace()
}

// SetHotkey switches to a named preset, persists it and rebinds the
// running listener.
func (s *Service) SetHotkey(name string) error {
	chord, ok := config.PresetChord(name)
	if !ok {
		return fmt.Errorf("unknown hotkey preset: %s", name)
	}

	s.mu.Lock()
	s.cfg.Hotkey = name
	s.cfg.CustomChord = nil
	err := s.cfg.Save()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if s.listener != nil {
		s.listener.SetChord(chord)
	}

	s.refreshTray()
	return nil
}

// SetTrailingSpace persists the trailing-space preference.
func (s *Service) SetTrailingSpace(v bool) error {
	s.mu.Lock()
	s.cfg.SetTrailingSpace(v)
	err := s.cfg.Save()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	s.refreshTray()
	return nil
}

// Status returns a snapshot for the tray menu.
func (s *Service) Status() types.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := types.Status{
		State:            string(dictation.StateIdle),
		Hotkey:           s.cfg.Hotkey,
		HotkeyLabel:      config.PresetLabel(s.cfg.Hotkey),
		AddTrailingSpace: s.cfg.TrailingSpace(),
	}
	if len(s.cfg.CustomChord) > 0 {
		st.HotkeyLabel = "Custom"
	}
	if s.engine != nil {
		st.State = string(s.engine.State())
	}
	if s.provider != nil {
		st.Provider = s.provider.DisplayName()
		st.ProviderReady = s.provider.IsReady()
	}
	if s.stats != nil {
		st.TotalRecordings = s.stats.TotalRecordings
		st.TotalSeconds = s.stats.TotalRecordingSeconds
	}
	return st
}

// Providers lists the registered speech-to-text providers.
func (s *Service) Providers() []types.ProviderInfo {
	if s.registry == nil {
		return nil
	}

	list := s.registry.List()
	infos := make([]types.ProviderInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, types.ProviderInfo{
			Name:          p.Name(),
			DisplayName:   p.DisplayName(),
			IsLocal:       p.IsLocal(),
			RequiresSetup: p.RequiresSetup(),
			SetupProgress: p.SetupProgress(),
			IsReady:       p.IsReady(),
		})
	}
	return infos
}

// Recent returns the latest transcriptions, newest first.
func (s *Service) Recent(n int) ([]history.Entry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(n)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tray bridge
// ─────────────────────────────────────────────────────────────────────────────

// attachTray connects the tray UI. Called from onReady before Start, so
// every engine callback finds it in place.
func (s *Service) attachTray(t *tray) {
	s.mu.Lock()
	s.tray = t
	s.mu.Unlock()
}

func (s *Service) trayUI() *tray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tray
}

func (s *Service) setTrayState(state dictation.State) {
	if t := s.trayUI(); t != nil {
		t.setState(state)
	}
}

// refreshTray re-renders menu checkmarks and the recent list.
func (s *Service) refreshTray() {
	if t := s.trayUI(); t != nil {
		t.refreshStatus()
		t.refreshRecent()
	}
}
