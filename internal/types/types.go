// Package types provides shared type definitions for the application.
package types

// Status is a snapshot of the running app, shown in the tray menu.
type Status struct {
	State            string  `json:"state"`            // "idle", "recording", "transcribing"
	Hotkey           string  `json:"hotkey"`           // Active hotkey preset name
	HotkeyLabel      string  `json:"hotkeyLabel"`      // Human-readable chord label
	Provider         string  `json:"provider"`         // Active transcription provider
	ProviderReady    bool    `json:"providerReady"`    // Whether the provider can transcribe now
	AddTrailingSpace bool    `json:"addTrailingSpace"` // Append a space after pasted text
	TotalRecordings  int     `json:"totalRecordings"`  // Lifetime finished recordings
	TotalSeconds     float64 `json:"totalSeconds"`     // Lifetime recorded audio in seconds
}

// ProviderInfo describes a speech-to-text provider.
type ProviderInfo struct {
	Name          string `json:"name"`          // Provider identifier
	DisplayName   string `json:"displayName"`   // Human-readable name
	IsLocal       bool   `json:"isLocal"`       // Whether it runs locally
	RequiresSetup bool   `json:"requiresSetup"` // Whether setup is needed (e.g., model download)
	SetupProgress int    `json:"setupProgress"` // Setup progress 0-100, -1 if not started
	IsReady       bool   `json:"isReady"`       // Whether the provider is ready to use
}
