package app

import (
	"errors"
	"testing"

	"github.com/gowtham-ponnana/JustDictate/config"
	"github.com/gowtham-ponnana/JustDictate/dictation"
	"github.com/gowtham-ponnana/JustDictate/stt"
)

type fakeProvider struct {
	ready bool
	text  string
	lang  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string          { return "fake" }
func (f *fakeProvider) DisplayName() string   { return "Fake Provider" }
func (f *fakeProvider) IsLocal() bool         { return true }
func (f *fakeProvider) RequiresSetup() bool   { return false }
func (f *fakeProvider) IsReady() bool         { return f.ready }
func (f *fakeProvider) SetupProgress() int    { return 100 }
func (f *fakeProvider) Setup(func(int)) error { return nil }
func (f *fakeProvider) Close() error          { return nil }

func (f *fakeProvider) Transcribe(samples []float32, sampleRate int) (*stt.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &stt.Result{Text: f.text, Language: f.lang}, nil
}

func TestEngineTranscriberWithoutProvider(t *testing.T) {
	svc := New(&config.Config{}, "test")

	_, err := engineTranscriber{svc: svc}.Transcribe([]float32{0}, 16000)
	if !errors.Is(err, dictation.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestEngineTranscriberProviderNotReady(t *testing.T) {
	svc := New(&config.Config{}, "test")
	p := &fakeProvider{ready: false}
	svc.provider = p

	_, err := engineTranscriber{svc: svc}.Transcribe([]float32{0}, 16000)
	if !errors.Is(err, dictation.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times while not ready", p.calls)
	}
}

func TestEngineTranscriberReady(t *testing.T) {
	svc := New(&config.Config{}, "test")
	svc.provider = &fakeProvider{ready: true, text: "hello there", lang: "en"}

	text, err := engineTranscriber{svc: svc}.Transcribe([]float32{0}, 16000)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello there" {
		t.Errorf("text = %q, want %q", text, "hello there")
	}
	if svc.lastLanguage != "en" {
		t.Errorf("lastLanguage = %q, want en", svc.lastLanguage)
	}
}

func TestEngineTranscriberProviderError(t *testing.T) {
	svc := New(&config.Config{}, "test")
	wantErr := errors.New("backend exploded")
	svc.provider = &fakeProvider{ready: true, err: wantErr}

	_, err := engineTranscriber{svc: svc}.Transcribe([]float32{0}, 16000)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestStatusBeforeStart(t *testing.T) {
	svc := New(&config.Config{Hotkey: "right_alt"}, "test")

	st := svc.Status()
	if st.State != "idle" {
		t.Errorf("State = %q, want idle", st.State)
	}
	if st.Hotkey != "right_alt" {
		t.Errorf("Hotkey = %q, want right_alt", st.Hotkey)
	}
	if st.HotkeyLabel != "Right Alt" {
		t.Errorf("HotkeyLabel = %q, want Right Alt", st.HotkeyLabel)
	}
	if !st.AddTrailingSpace {
		t.Error("AddTrailingSpace should default to true")
	}
	if st.Provider != "" || st.ProviderReady {
		t.Errorf("no provider selected yet, got %q ready=%v", st.Provider, st.ProviderReady)
	}
}

func TestStatusCustomChordLabel(t *testing.T) {
	svc := New(&config.Config{Hotkey: "right_cmd", CustomChord: []uint16{0x31}}, "test")

	if st := svc.Status(); st.HotkeyLabel != "Custom" {
		t.Errorf("HotkeyLabel = %q, want Custom", st.HotkeyLabel)
	}
}

func TestSetHotkeyUnknownPreset(t *testing.T) {
	svc := New(&config.Config{}, "test")

	if err := svc.SetHotkey("bogus"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestAddTrailingSpaceFollowsConfig(t *testing.T) {
	cfg := &config.Config{}
	svc := New(cfg, "test")

	if !svc.AddTrailingSpace() {
		t.Error("default should be true")
	}

	cfg.SetTrailingSpace(false)
	if svc.AddTrailingSpace() {
		t.Error("config change should apply immediately")
	}
}
