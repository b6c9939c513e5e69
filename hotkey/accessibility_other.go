//go:build !darwin

package hotkey

// IsAccessibilityTrusted reports whether the process is allowed to observe
// global key events. Only macOS gates this behind a permission.
func IsAccessibilityTrusted(_ bool) bool {
	return true
}
