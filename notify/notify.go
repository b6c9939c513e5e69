// Package notify surfaces app events to the user via desktop
// notifications and sounds.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appTitle = "JustDictate"

// maxMessageRunes caps notification body length; most platforms truncate
// around this point anyway.
const maxMessageRunes = 200

// Error shows an error notification.
func Error(message string) {
	if err := beeep.Notify(appTitle, Truncate(message, maxMessageRunes), ""); err != nil {
		slog.Warn("show notification", "error", err)
	}
}

// Info shows an informational notification.
func Info(title, message string) {
	if title == "" {
		title = appTitle
	}
	if err := beeep.Notify(title, Truncate(message, maxMessageRunes), ""); err != nil {
		slog.Warn("show notification", "error", err)
	}
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
