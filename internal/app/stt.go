package app

import (
	"log/slog"
	"os"

	"github.com/gowtham-ponnana/JustDictate/dictation"
	"github.com/gowtham-ponnana/JustDictate/notify"
	"github.com/gowtham-ponnana/JustDictate/stt"
)

// setupSTT registers the available providers and selects one. Provider
// setup (model download) runs in the background; until it finishes the
// engine reports the backend as unavailable instead of blocking.
func (s *Service) setupSTT() {
	reg := stt.NewRegistry()

	local, err := stt.NewWhisperLocal(stt.WhisperLocalConfig{
		ModelSize: s.cfg.ModelSize,
		Language:  s.cfg.Language,
	})
	if err != nil {
		slog.Error("init local whisper", "error", err)
	} else {
		reg.Register(local)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	reg.Register(stt.NewWhisperCloud(stt.WhisperCloudConfig{
		APIKey:   apiKey,
		BaseURL:  s.cfg.APIBaseURL,
		Language: s.cfg.Language,
	}))

	s.registry = reg

	name := s.cfg.Provider
	if name == "" {
		if apiKey != "" {
			name = "whisper-cloud"
		} else {
			name = "whisper-local"
		}
	}

	provider := reg.Get(name)
	if provider == nil {
		slog.Error("unknown stt provider", "provider", name)
		return
	}

	s.mu.Lock()
	s.provider = provider
	s.mu.Unlock()
	slog.Info("stt provider selected", "provider", provider.Name(), "ready", provider.IsReady())

	if provider.RequiresSetup() && !provider.IsReady() {
		go s.runProviderSetup(provider)
	}
}

// runProviderSetup downloads models off the main path, logging progress
// in roughly decile steps.
func (s *Service) runProviderSetup(p stt.Provider) {
	slog.Info("provider setup started", "provider", p.Name())

	last := -10
	err := p.Setup(func(percent int) {
		if percent >= last+10 {
			slog.Info("provider setup progress", "provider", p.Name(), "percent", percent)
			last = percent
		}
	})
	if err != nil {
		slog.Error("provider setup failed", "provider", p.Name(), "error", err)
		notify.Error("Speech model setup failed: " + err.Error())
		return
	}

	slog.Info("provider setup complete", "provider", p.Name())
	notify.Info("", "Speech model ready. Hold the hotkey to dictate.")
	s.refreshTray()
}

func (s *Service) currentProvider() stt.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

func (s *Service) noteLanguage(lang string) {
	s.mu.Lock()
	s.lastLanguage = lang
	s.mu.Unlock()
}

// engineTranscriber adapts the selected provider to the engine and
// archives samples when recordings are kept.
type engineTranscriber struct {
	svc *Service
}

func (t engineTranscriber) Transcribe(samples []float32, sampleRate int) (string, error) {
	t.svc.archiveSamples(samples, sampleRate)

	p := t.svc.currentProvider()
	if p == nil || !p.IsReady() {
		return "", dictation.ErrBackendUnavailable
	}

	result, err := p.Transcribe(samples, sampleRate)
	if err != nil {
		return "", err
	}

	t.svc.noteLanguage(result.Language)
	return result.Text, nil
}
