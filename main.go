package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/getlantern/systray"
	"github.com/joho/godotenv"

	"github.com/gowtham-ponnana/JustDictate/config"
	"github.com/gowtham-ponnana/JustDictate/internal/app"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A .env next to the binary may carry OPENAI_API_KEY; absence is fine.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if os.Getenv("JUSTDICTATE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = &config.Config{Hotkey: config.DefaultHotkey}
	}

	svc := app.New(cfg, version)

	// systray owns the main goroutine; translate signals into a quit.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		systray.Quit()
	}()

	app.Run(svc)
}
