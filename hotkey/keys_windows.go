//go:build windows

package hotkey

// EscapeCode is the virtual key code for the escape key.
const EscapeCode uint16 = 0x1B
