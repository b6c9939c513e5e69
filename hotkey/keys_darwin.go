//go:build darwin

package hotkey

// EscapeCode is the virtual key code for the escape key.
const EscapeCode uint16 = 0x35
