// Package config handles application configuration and usage statistics.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gowtham-ponnana/JustDictate/hotkey"
)

const (
	appName        = "justdictate"
	configFileName = "config.json"
	statsFileName  = "stats.json"
)

// DefaultHotkey is the preset used when no hotkey is configured.
const DefaultHotkey = "right_cmd"

// Config represents the application configuration.
type Config struct {
	Hotkey           string   `json:"hotkey"`
	CustomChord      []uint16 `json:"custom_chord,omitempty"`
	AddTrailingSpace *bool    `json:"add_trailing_space,omitempty"`
	Provider         string   `json:"provider,omitempty"`
	ModelSize        string   `json:"model_size,omitempty"`
	APIBaseURL       string   `json:"api_base_url,omitempty"`
	Language         string   `json:"language,omitempty"`
	KeepRecordings   bool     `json:"keep_recordings,omitempty"`
	HistoryDays      int      `json:"history_days,omitempty"`

	// Legacy field (deprecated, kept for migration)
	HotkeyKeys []int `json:"hotkey_keys,omitempty"`
}

// Preset is a named hotkey chord selectable from the menu.
type Preset struct {
	Name  string
	Label string
	Chord hotkey.Chord
}

// presets are the chords offered in the UI, in menu order. The codes are
// macOS virtual keycodes; gohook reports the same values in its Rawcode.
var presets = []Preset{
	{Name: "right_cmd", Label: "Right Command", Chord: hotkey.Chord{0x36}},
	{Name: "right_alt", Label: "Right Alt", Chord: hotkey.Chord{0x3D}},
	{Name: "left_ctrl_left_alt", Label: "Left Ctrl + Left Alt", Chord: hotkey.Chord{0x3B, 0x3A}},
}

// Presets returns the selectable hotkey presets in menu order.
func Presets() []Preset {
	return slices.Clone(presets)
}

// PresetNames returns the preset identifiers in menu order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// PresetChord returns the chord for a preset name.
func PresetChord(name string) (hotkey.Chord, bool) {
	idx := slices.IndexFunc(presets, func(p Preset) bool { return p.Name == name })
	if idx == -1 {
		return nil, false
	}
	return presets[idx].Chord, true
}

// PresetLabel returns the human-readable label for a preset name, or the
// name itself when it is not a known preset.
func PresetLabel(name string) string {
	idx := slices.IndexFunc(presets, func(p Preset) bool { return p.Name == name })
	if idx == -1 {
		return name
	}
	return presets[idx].Label
}

// Load loads the configuration from the config file.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.migrateLegacyChord()

	if cfg.Hotkey == "" && len(cfg.CustomChord) == 0 {
		cfg.Hotkey = DefaultHotkey
	}

	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	return c.saveTo(path)
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Chord returns the active hotkey chord: the custom chord when configured,
// else the named preset, else the default. An unknown preset name falls
// back to the default rather than failing.
func (c *Config) Chord() hotkey.Chord {
	if len(c.CustomChord) > 0 {
		return hotkey.Chord(c.CustomChord)
	}

	name := c.Hotkey
	if name == "" {
		name = DefaultHotkey
	}
	if chord, ok := PresetChord(name); ok {
		return chord
	}

	slog.Warn("unknown hotkey preset, using default", "hotkey", c.Hotkey)
	chord, _ := PresetChord(DefaultHotkey)
	return chord
}

// TrailingSpace reports whether a trailing space is appended to pasted
// text. Defaults to true when unset.
func (c *Config) TrailingSpace() bool {
	if c.AddTrailingSpace == nil {
		return true
	}
	return *c.AddTrailingSpace
}

// SetTrailingSpace records the trailing-space preference.
func (c *Config) SetTrailingSpace(v bool) {
	c.AddTrailingSpace = &v
}

// migrateLegacyChord converts the hotkey_keys integer list written by older
// builds into CustomChord. The legacy field is cleared either way so the
// next Save drops it.
func (c *Config) migrateLegacyChord() {
	if len(c.HotkeyKeys) == 0 {
		return
	}
	if len(c.CustomChord) == 0 {
		chord := make([]uint16, len(c.HotkeyKeys))
		for i, k := range c.HotkeyKeys {
			chord[i] = uint16(k)
		}
		c.CustomChord = chord
	}
	c.HotkeyKeys = nil
}

// Dir returns the directory holding the application's configuration and
// data files.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		Hotkey: DefaultHotkey,
	}
}
