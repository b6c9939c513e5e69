//go:build darwin

package notify

import "os/exec"

// PlayDone plays a short completion sound. Fire and forget.
func PlayDone() {
	go func() {
		_ = exec.Command("afplay", "/System/Library/Sounds/Tink.aiff").Run()
	}()
}
