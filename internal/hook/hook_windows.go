//go:build windows

package hook

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/dshills/keyecho/internal/input/key"
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// msg mirrors MSG for the hook thread's message pump.
type msg struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

// windowsHook installs a WH_KEYBOARD_LL hook. The hook procedure runs on
// a dedicated OS-locked thread driving a message pump; the transition
// callback therefore must stay fast so physical input is never delayed.
type windowsHook struct {
	mu       sync.Mutex
	running  bool
	threadID uint32
	done     chan struct{}
}

// NewSystemHook returns the Windows keyboard hook.
func NewSystemHook() Hook {
	return &windowsHook{}
}

func (h *windowsHook) Start(ctx context.Context, fn TransitionFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return fmt.Errorf("hook already running")
	}

	installed := make(chan installResult, 1)
	h.done = make(chan struct{})
	go h.run(fn, installed, h.done)
	res := <-installed
	if res.err != nil {
		return res.err
	}
	h.threadID = res.threadID
	h.running = true

	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				h.Stop()
			case <-h.done:
			}
		}()
	}
	return nil
}

// installResult reports the hook thread's startup outcome.
type installResult struct {
	err      error
	threadID uint32
}

func (h *windowsHook) run(fn TransitionFunc, installed chan<- installResult, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	proc := windows.NewCallback(func(code int32, wparam uintptr, lparam uintptr) uintptr {
		if code >= 0 {
			info := (*kbdllHookStruct)(unsafe.Pointer(lparam))
			switch wparam {
			case wmKeyDown, wmSysKeyDown:
				fn(vkName(uint16(info.VkCode)), key.ActionDown)
			case wmKeyUp, wmSysKeyUp:
				fn(vkName(uint16(info.VkCode)), key.ActionUp)
			}
		}
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wparam, lparam)
		return ret
	})

	handle, _, err := procSetWindowsHookEx.Call(whKeyboardLL, proc, 0, 0)
	if handle == 0 {
		installed <- installResult{err: fmt.Errorf("installing keyboard hook: %w", err)}
		return
	}
	installed <- installResult{threadID: windows.GetCurrentThreadId()}

	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 || m.Message == wmQuit {
			break
		}
	}
	procUnhookWindowsHookEx.Call(handle)
}

func (h *windowsHook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return ErrNotStarted
	}
	h.running = false
	procPostThreadMessage.Call(uintptr(h.threadID), wmQuit, 0, 0)
	return nil
}
