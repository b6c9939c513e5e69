//go:build !darwin

package notify

// PlayDone is a no-op on platforms without a bundled completion sound.
func PlayDone() {}
