//go:build !darwin && !windows

package hotkey

// EscapeCode is the X11 keysym for the escape key, which is what the hook
// reports as the raw code on Linux.
const EscapeCode uint16 = 0xFF1B
