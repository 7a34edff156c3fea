//go:build windows

package hook

import (
	"fmt"
	"unsafe"

	"github.com/dshills/keyecho/internal/input/key"
)

const (
	inputKeyboard  = 1
	keyeventfKeyUp = 0x0002
)

var procSendInput = user32.NewProc("SendInput")

// keyboardInput mirrors KEYBDINPUT.
type keyboardInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input mirrors INPUT with the union padded to MOUSEINPUT's size.
type input struct {
	Type uint32
	_    uint32
	Ki   keyboardInput
	_    [8]byte
}

// windowsInjector synthesizes transitions via SendInput.
type windowsInjector struct{}

// NewSystemInjector returns the Windows key injector.
func NewSystemInjector() Injector {
	return windowsInjector{}
}

func (windowsInjector) Inject(name string, action key.Action) error {
	vk, ok := vkCode(name)
	if !ok {
		return fmt.Errorf("no virtual-key code for %q", name)
	}

	var flags uint32
	if action == key.ActionUp {
		flags = keyeventfKeyUp
	}
	in := input{
		Type: inputKeyboard,
		Ki:   keyboardInput{Vk: vk, Flags: flags},
	}

	sent, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if sent != 1 {
		return fmt.Errorf("injecting %s %s: %w", name, action, err)
	}
	return nil
}
