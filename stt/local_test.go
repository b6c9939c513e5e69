package stt

import (
	"path/filepath"
	"testing"
)

func TestNewWhisperLocal(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWhisperLocal(WhisperLocalConfig{ModelSize: "base", ModelDir: dir})
	if err != nil {
		t.Fatalf("NewWhisperLocal() error = %v", err)
	}
	if got, want := w.modelPath, filepath.Join(dir, "ggml-base.bin"); got != want {
		t.Errorf("modelPath = %q, want %q", got, want)
	}
	// No model file in a fresh dir, so the provider cannot be ready.
	if w.IsReady() {
		t.Error("IsReady() = true with no model downloaded")
	}
	if !w.RequiresSetup() {
		t.Error("RequiresSetup() = false with no model downloaded")
	}
}

func TestNewWhisperLocalDefaultsToBase(t *testing.T) {
	w, err := NewWhisperLocal(WhisperLocalConfig{ModelDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewWhisperLocal() error = %v", err)
	}
	if w.modelSize != "base" {
		t.Errorf("modelSize = %q, want %q", w.modelSize, "base")
	}
}

func TestNewWhisperLocalRejectsUnknownSize(t *testing.T) {
	if _, err := NewWhisperLocal(WhisperLocalConfig{ModelSize: "gigantic"}); err == nil {
		t.Fatal("NewWhisperLocal() error = nil for unknown model size")
	}
}

func TestParseWhisperOutput(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		wantText string
		wantLang string
	}{
		{
			name:     "json output",
			stdout:   `{"result":{"language":"en"},"transcription":[{"text":" Hello"},{"text":" world."}]}`,
			wantText: "Hello world.",
			wantLang: "en",
		},
		{
			name:     "json with artifacts",
			stdout:   `{"result":{"language":"en"},"transcription":[{"text":"[BLANK_AUDIO]"}]}`,
			wantText: "",
			wantLang: "en",
		},
		{
			name:     "plain text fallback",
			stdout:   "Hello world.\n",
			wantText: "Hello world.",
			wantLang: "de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWhisperOutput([]byte(tt.stdout), "de")
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", got.Language, tt.wantLang)
			}
		})
	}
}
