package clipboard

import (
	"runtime"

	"github.com/micmonay/keybd_event"
)

// keySynthesizer produces paste and undo keystrokes with the platform's
// conventional modifier: Command on macOS, Control everywhere else.
type keySynthesizer struct {
	useCommand bool
}

func newSynthesizer() *keySynthesizer {
	return &keySynthesizer{useCommand: runtime.GOOS == "darwin"}
}

func (k *keySynthesizer) Paste() error { return k.send(keybd_event.VK_V) }
func (k *keySynthesizer) Undo() error  { return k.send(keybd_event.VK_Z) }

func (k *keySynthesizer) send(key int) error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if k.useCommand {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	kb.SetKeys(key)
	return kb.Launching()
}
