package stt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// WhisperLocal implements the Provider interface using local whisper.cpp.
// It shells out to the whisper-cli tool for transcription.
type WhisperLocal struct {
	modelPath string
	modelSize string // "tiny", "base", "small", "medium", "large"
	binPath   string
	language  string // source language code, empty for auto-detect

	mu            sync.RWMutex
	ready         bool
	hasBinary     bool
	setupProgress int
}

// WhisperLocalConfig holds configuration for WhisperLocal.
type WhisperLocalConfig struct {
	ModelSize string // "tiny", "base", "small", "medium", "large"
	ModelDir  string // Directory to store models
	BinPath   string // Path to the whisper.cpp binary (optional, discovered if empty)
	Language  string // Source language code (optional, empty for auto-detect)
}

// Model sizes with their download URLs and approximate sizes.
var modelSizes = map[string]struct {
	URL  string
	Size int64
}{
	"tiny":   {"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin", 75 * 1024 * 1024},
	"base":   {"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin", 150 * 1024 * 1024},
	"small":  {"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin", 500 * 1024 * 1024},
	"medium": {"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin", 1500 * 1024 * 1024},
	"large":  {"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin", 3000 * 1024 * 1024},
}

// NewWhisperLocal creates a new WhisperLocal provider.
func NewWhisperLocal(cfg WhisperLocalConfig) (*WhisperLocal, error) {
	if cfg.ModelSize == "" {
		cfg.ModelSize = "base"
	}

	if _, ok := modelSizes[cfg.ModelSize]; !ok {
		return nil, fmt.Errorf("invalid model size: %s", cfg.ModelSize)
	}

	if cfg.ModelDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		cfg.ModelDir = filepath.Join(configDir, "justdictate", "models")
	}

	w := &WhisperLocal{
		modelSize:     cfg.ModelSize,
		modelPath:     filepath.Join(cfg.ModelDir, fmt.Sprintf("ggml-%s.bin", cfg.ModelSize)),
		binPath:       cfg.BinPath,
		language:      cfg.Language,
		setupProgress: -1,
	}

	if binPath := w.findWhisperBinary(); binPath != "" {
		w.hasBinary = true
		w.binPath = binPath
	}

	// Ready only when both the binary and the model are present.
	if _, err := os.Stat(w.modelPath); err == nil && w.hasBinary {
		w.ready = true
		w.setupProgress = 100
	}

	return w, nil
}

func (w *WhisperLocal) Name() string { return "whisper-local" }
func (w *WhisperLocal) DisplayName() string {
	if !w.HasBinary() {
		return fmt.Sprintf("Whisper Local (%s) [whisper.cpp not installed]", w.modelSize)
	}
	return fmt.Sprintf("Whisper Local (%s)", w.modelSize)
}
func (w *WhisperLocal) IsLocal() bool       { return true }
func (w *WhisperLocal) RequiresSetup() bool { return !w.IsReady() }

// HasBinary returns true if a whisper.cpp binary was found.
func (w *WhisperLocal) HasBinary() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.hasBinary
}

func (w *WhisperLocal) IsReady() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ready
}

func (w *WhisperLocal) SetupProgress() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.setupProgress
}

// Setup downloads the whisper model if needed.
func (w *WhisperLocal) Setup(progress func(percent int)) error {
	w.mu.Lock()
	if w.ready {
		w.mu.Unlock()
		return nil
	}
	w.setupProgress = 0
	w.mu.Unlock()

	modelInfo, ok := modelSizes[w.modelSize]
	if !ok {
		return fmt.Errorf("unknown model size: %s", w.modelSize)
	}

	if err := os.MkdirAll(filepath.Dir(w.modelPath), 0755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	if err := w.downloadModel(modelInfo.URL, modelInfo.Size, progress); err != nil {
		return fmt.Errorf("download model: %w", err)
	}

	w.mu.Lock()
	w.ready = true
	w.setupProgress = 100
	w.mu.Unlock()

	if progress != nil {
		progress(100)
	}

	return nil
}

func (w *WhisperLocal) downloadModel(url string, expectedSize int64, progress func(percent int)) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}

	// Download into a temp file and rename, so an interrupted download
	// never leaves a truncated model behind.
	tmpPath := w.modelPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	pw := &progressWriter{
		dst:   f,
		total: expectedSize,
		report: func(pct int) {
			w.mu.Lock()
			w.setupProgress = pct
			w.mu.Unlock()
			if progress != nil {
				progress(pct)
			}
		},
	}
	if _, err := io.Copy(pw, resp.Body); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, w.modelPath); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	return nil
}

// progressWriter reports whole-percent download progress as data flows
// through it.
type progressWriter struct {
	dst     io.Writer
	written int64
	total   int64
	last    int
	report  func(percent int)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.dst.Write(p)
	pw.written += int64(n)
	if pw.total > 0 {
		if pct := int(pw.written * 100 / pw.total); pct > pw.last {
			pw.last = pct
			pw.report(pct)
		}
	}
	return n, err
}

// Transcribe converts audio samples to text using local whisper.cpp.
func (w *WhisperLocal) Transcribe(samples []float32, sampleRate int) (*Result, error) {
	if !w.IsReady() {
		return nil, fmt.Errorf("whisper local is not ready: model not downloaded")
	}

	audioPath := filepath.Join(os.TempDir(), fmt.Sprintf("whisper_audio_%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(audioPath, float32ToWAV(samples, sampleRate), 0644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	defer os.Remove(audioPath)

	binPath := w.binPath
	if binPath == "" {
		binPath = w.findWhisperBinary()
	}
	if binPath == "" {
		return nil, fmt.Errorf("whisper.cpp binary not found, please install whisper.cpp")
	}

	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-oj", // Output JSON
		"--no-prints",
	}
	if w.language != "" && w.language != "auto" {
		args = append(args, "-l", w.language)
	}

	cmd := exec.Command(binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w, stderr: %s", err, stderr.String())
	}

	return parseWhisperOutput(stdout.Bytes(), w.language), nil
}

// whisperOutput represents the JSON output from whisper.cpp.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseWhisperOutput decodes whisper.cpp stdout. Older builds print plain
// text instead of JSON, so that is kept as a fallback.
func parseWhisperOutput(stdout []byte, fallbackLang string) *Result {
	var out whisperOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return &Result{
			Text:       cleanTranscript(string(stdout)),
			Language:   fallbackLang,
			Confidence: 0.8,
		}
	}

	var text strings.Builder
	for _, seg := range out.Transcription {
		text.WriteString(seg.Text)
	}
	return &Result{
		Text:       cleanTranscript(text.String()),
		Language:   out.Result.Language,
		Confidence: 0.9,
	}
}

func (w *WhisperLocal) findWhisperBinary() string {
	// Common binary names - whisper-cli is the Homebrew name.
	names := []string{"whisper-cli", "whisper-cpp", "whisper", "main"}

	// Check PATH.
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	// Check common installation locations.
	homeDir, _ := os.UserHomeDir()
	locations := []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
		filepath.Join(homeDir, ".local", "bin"),
		filepath.Join(homeDir, "whisper.cpp"),
	}

	for _, loc := range locations {
		for _, name := range names {
			path := filepath.Join(loc, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	// On macOS, check for a binary bundled alongside the app.
	if runtime.GOOS == "darwin" {
		execPath, _ := os.Executable()
		bundlePath := filepath.Join(filepath.Dir(execPath), "..", "Resources", "whisper-cli")
		if _, err := os.Stat(bundlePath); err == nil {
			return bundlePath
		}
	}

	return ""
}

func (w *WhisperLocal) Close() error {
	return nil
}
