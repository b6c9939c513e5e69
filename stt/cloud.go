package stt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// cloudTimeout bounds a single transcription request.
const cloudTimeout = 60 * time.Second

// WhisperCloud implements the Provider interface using the OpenAI audio
// transcription API, or any OpenAI-compatible server via BaseURL.
type WhisperCloud struct {
	client   openai.Client
	model    string
	language string
	hasKey   bool
}

// WhisperCloudConfig holds configuration for WhisperCloud.
type WhisperCloudConfig struct {
	APIKey   string
	BaseURL  string // optional, for OpenAI-compatible servers
	Model    string // default "whisper-1"
	Language string // source language code (optional, empty for auto-detect)
}

// NewWhisperCloud creates a new cloud transcription provider. The provider
// is constructed even without an API key so it can be listed; it only
// becomes ready once a key is configured.
func NewWhisperCloud(cfg WhisperCloudConfig) *WhisperCloud {
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &WhisperCloud{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		language: cfg.Language,
		hasKey:   cfg.APIKey != "",
	}
}

func (w *WhisperCloud) Name() string        { return "whisper-cloud" }
func (w *WhisperCloud) DisplayName() string { return "OpenAI Whisper" }
func (w *WhisperCloud) IsLocal() bool       { return false }

// RequiresSetup is true when no API key is configured; there is nothing to
// download, so Setup cannot fix it.
func (w *WhisperCloud) RequiresSetup() bool { return !w.hasKey }
func (w *WhisperCloud) IsReady() bool       { return w.hasKey }
func (w *WhisperCloud) SetupProgress() int {
	if w.hasKey {
		return 100
	}
	return -1
}

func (w *WhisperCloud) Setup(progress func(percent int)) error {
	if !w.hasKey {
		return fmt.Errorf("whisper cloud: OPENAI_API_KEY is not set")
	}
	if progress != nil {
		progress(100)
	}
	return nil
}

// Transcribe sends the audio to the transcription endpoint as an in-memory
// WAV file.
func (w *WhisperCloud) Transcribe(samples []float32, sampleRate int) (*Result, error) {
	if !w.hasKey {
		return nil, fmt.Errorf("whisper cloud is not ready: API key required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cloudTimeout)
	defer cancel()

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(float32ToWAV(samples, sampleRate)), "audio.wav", "audio/wav"),
		Model: openai.AudioModel(w.model),
	}
	if w.language != "" && w.language != "auto" {
		params.Language = openai.String(w.language)
	}

	transcription, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	return &Result{
		Text:       strings.TrimSpace(transcription.Text),
		Language:   w.language,
		Confidence: 1.0,
	}, nil
}

func (w *WhisperCloud) Close() error {
	return nil
}
