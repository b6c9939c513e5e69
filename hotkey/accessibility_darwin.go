//go:build darwin

package hotkey

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>

static int axTrusted(int prompt) {
	if (!prompt) {
		return AXIsProcessTrusted() ? 1 : 0;
	}
	const void *keys[] = { kAXTrustedCheckOptionPrompt };
	const void *values[] = { kCFBooleanTrue };
	CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault,
		keys, values, 1,
		&kCFCopyStringDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	int trusted = AXIsProcessTrustedWithOptions(options) ? 1 : 0;
	CFRelease(options);
	return trusted;
}
*/
import "C"

// IsAccessibilityTrusted reports whether the process is allowed to observe
// global key events. When prompt is true the system permission dialog is
// shown if access has not been granted yet.
func IsAccessibilityTrusted(prompt bool) bool {
	arg := C.int(0)
	if prompt {
		arg = 1
	}
	return C.axTrusted(arg) == 1
}
