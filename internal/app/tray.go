package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"

	"github.com/gowtham-ponnana/JustDictate/config"
	"github.com/gowtham-ponnana/JustDictate/dictation"
	"github.com/gowtham-ponnana/JustDictate/history"
	"github.com/gowtham-ponnana/JustDictate/notify"
)

// Tray titles per session state.
const (
	titleIdle         = "🎙"
	titleRecording    = "🔴"
	titleTranscribing = "⏳"
)

// recentSlots is how many transcriptions the menu shows.
const recentSlots = 5

// recentTitleRunes caps menu item width.
const recentTitleRunes = 48

// tray renders service state into the system tray menu. Methods may be
// called from any goroutine; systray serializes the actual UI updates.
type tray struct {
	svc *Service

	status  *systray.MenuItem
	hotkeys map[string]*systray.MenuItem
	space   *systray.MenuItem
	recents []*systray.MenuItem
	quit    *systray.MenuItem

	mu      sync.Mutex
	entries []history.Entry
}

// Run starts the tray UI and the service, blocking until Quit.
func Run(svc *Service) {
	systray.Run(func() { onReady(svc) }, svc.Stop)
}

func onReady(svc *Service) {
	systray.SetTitle(titleIdle)
	systray.SetTooltip("JustDictate " + svc.Version())

	t := newTray(svc)
	svc.attachTray(t)

	if err := svc.Start(); err != nil {
		slog.Error("start service", "error", err)
		notify.Error("JustDictate failed to start: " + err.Error())
	}

	t.refreshStatus()
	t.refreshRecent()
	go t.loop()
}

func newTray(svc *Service) *tray {
	t := &tray{svc: svc, hotkeys: make(map[string]*systray.MenuItem)}

	t.status = systray.AddMenuItem("Starting…", "Current status")
	t.status.Disable()
	systray.AddSeparator()

	hotkeyMenu := systray.AddMenuItem("Hotkey", "Push-to-talk chord")
	for _, p := range config.Presets() {
		t.hotkeys[p.Name] = hotkeyMenu.AddSubMenuItemCheckbox(p.Label, "", false)
	}
	t.space = systray.AddMenuItemCheckbox("Append Space", "Append a space after pasted text", true)
	systray.AddSeparator()

	header := systray.AddMenuItem("Recent", "Click an entry to copy it")
	header.Disable()
	for range recentSlots {
		item := systray.AddMenuItem("", "Copy to clipboard")
		item.Hide()
		t.recents = append(t.recents, item)
	}
	systray.AddSeparator()

	t.quit = systray.AddMenuItem("Quit", "Quit JustDictate")
	return t
}

// loop dispatches menu clicks: one goroutine per repeatable item, then
// blocks on Quit.
func (t *tray) loop() {
	for name, item := range t.hotkeys {
		go func() {
			for range item.ClickedCh {
				if err := t.svc.SetHotkey(name); err != nil {
					slog.Error("set hotkey", "error", err)
				}
			}
		}()
	}

	go func() {
		for range t.space.ClickedCh {
			if err := t.svc.SetTrailingSpace(!t.space.Checked()); err != nil {
				slog.Error("set trailing space", "error", err)
			}
		}
	}()

	for i, item := range t.recents {
		go func() {
			for range item.ClickedCh {
				t.copyRecent(i)
			}
		}()
	}

	<-t.quit.ClickedCh
	systray.Quit()
}

// setState updates the tray title to reflect the session state.
func (t *tray) setState(state dictation.State) {
	switch state {
	case dictation.StateRecording:
		systray.SetTitle(titleRecording)
	case dictation.StateTranscribing:
		systray.SetTitle(titleTranscribing)
	default:
		systray.SetTitle(titleIdle)
	}
}

// refreshStatus re-renders the status line and menu checkmarks.
func (t *tray) refreshStatus() {
	st := t.svc.Status()

	line := fmt.Sprintf("Hold %s to dictate", st.HotkeyLabel)
	if st.Provider != "" && !st.ProviderReady {
		line = "Preparing " + st.Provider + "…"
	}
	t.status.SetTitle(line)

	for name, item := range t.hotkeys {
		if name == st.Hotkey {
			item.Check()
		} else {
			item.Uncheck()
		}
	}

	if st.AddTrailingSpace {
		t.space.Check()
	} else {
		t.space.Uncheck()
	}
}

// refreshRecent reloads the clickable transcription list.
func (t *tray) refreshRecent() {
	entries, err := t.svc.Recent(recentSlots)
	if err != nil {
		slog.Warn("load recent transcriptions", "error", err)
		return
	}

	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()

	for i, item := range t.recents {
		if i < len(entries) {
			item.SetTitle(notify.Truncate(entries[i].Text, recentTitleRunes))
			item.Show()
		} else {
			item.Hide()
		}
	}
}

// copyRecent puts the i-th recent transcription on the clipboard.
func (t *tray) copyRecent(i int) {
	t.mu.Lock()
	var text string
	if i < len(t.entries) {
		text = t.entries[i].Text
	}
	t.mu.Unlock()

	if text == "" {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		slog.Error("copy transcription", "error", err)
	}
}
