package stt

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhisperCloudTranscribe(t *testing.T) {
	var gotModel, gotLanguage string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %q, want /audio/transcriptions", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart form: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")

		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotFile, _ = io.ReadAll(f)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":" hello there "}`)
	}))
	defer srv.Close()

	p := NewWhisperCloud(WhisperCloudConfig{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Language: "en",
	})
	if !p.IsReady() {
		t.Fatal("IsReady() = false with an API key configured")
	}

	samples := make([]float32, 1600)
	res, err := p.Transcribe(samples, 16000)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if res.Text != "hello there" {
		t.Errorf("Text = %q, want %q", res.Text, "hello there")
	}
	if gotModel != "whisper-1" {
		t.Errorf("model field = %q, want %q", gotModel, "whisper-1")
	}
	if gotLanguage != "en" {
		t.Errorf("language field = %q, want %q", gotLanguage, "en")
	}
	if !bytes.HasPrefix(gotFile, []byte("RIFF")) {
		t.Errorf("uploaded file does not start with a RIFF header")
	}
	if got, want := len(gotFile), 44+2*len(samples); got != want {
		t.Errorf("uploaded file length = %d, want %d", got, want)
	}
}

func TestWhisperCloudWithoutKey(t *testing.T) {
	p := NewWhisperCloud(WhisperCloudConfig{})

	if p.IsReady() {
		t.Error("IsReady() = true without an API key")
	}
	if !p.RequiresSetup() {
		t.Error("RequiresSetup() = false without an API key")
	}
	if _, err := p.Transcribe(make([]float32, 16), 16000); err == nil {
		t.Error("Transcribe() error = nil without an API key")
	}
	if err := p.Setup(nil); err == nil {
		t.Error("Setup() error = nil without an API key")
	}
}
