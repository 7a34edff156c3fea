//go:build windows

package hook

import (
	"fmt"
	"strings"
)

// vkNames maps Windows virtual-key codes to the raw names the hook
// reports. Names are pre-normalization; Normalize in the key package
// turns "left ctrl" into "LEFT_CTRL".
var vkNames = map[uint16]string{
	0x08: "backspace",
	0x09: "tab",
	0x0D: "enter",
	0x13: "pause",
	0x14: "caps lock",
	0x1B: "esc",
	0x20: "space",
	0x21: "page up",
	0x22: "page down",
	0x23: "end",
	0x24: "home",
	0x25: "left",
	0x26: "up",
	0x27: "right",
	0x28: "down",
	0x2C: "print screen",
	0x2D: "insert",
	0x2E: "delete",
	0x5B: "left windows",
	0x5C: "right windows",
	0x5D: "menu",
	0x90: "num lock",
	0x91: "scroll lock",
	0xA0: "left shift",
	0xA1: "right shift",
	0xA2: "left ctrl",
	0xA3: "right ctrl",
	0xA4: "left alt",
	0xA5: "right alt",
	0xBA: ";",
	0xBB: "=",
	0xBC: ",",
	0xBD: "-",
	0xBE: ".",
	0xBF: "/",
	0xC0: "`",
	0xDB: "[",
	0xDC: "\\",
	0xDD: "]",
	0xDE: "'",
}

// vkCodes is the reverse table, keyed by normalized names. Built once at
// init from vkNames plus letters, digits and function keys.
var vkCodes = buildVKCodes()

func buildVKCodes() map[string]uint16 {
	codes := make(map[string]uint16, len(vkNames)+64)
	for vk, name := range vkNames {
		codes[normalizeName(name)] = vk
	}
	for c := uint16('A'); c <= 'Z'; c++ {
		codes[string(rune(c))] = c
	}
	for c := uint16('0'); c <= '9'; c++ {
		codes[string(rune(c))] = c
	}
	for i := uint16(1); i <= 24; i++ {
		codes[fmt.Sprintf("F%d", i)] = 0x70 + i - 1
	}
	// Bare modifier names injected by playback map to the generic codes.
	codes["SHIFT"] = 0x10
	codes["CTRL"] = 0x11
	codes["ALT"] = 0x12
	return codes
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// vkName returns the raw name for a virtual-key code.
func vkName(vk uint16) string {
	if name, ok := vkNames[vk]; ok {
		return name
	}
	switch {
	case vk >= 'A' && vk <= 'Z':
		return strings.ToLower(string(rune(vk)))
	case vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= 0x70 && vk <= 0x87:
		return fmt.Sprintf("f%d", vk-0x70+1)
	default:
		return fmt.Sprintf("vk_0x%02x", vk)
	}
}

// vkCode returns the virtual-key code for a normalized key name.
func vkCode(name string) (uint16, bool) {
	vk, ok := vkCodes[normalizeName(name)]
	if ok {
		return vk, true
	}
	// Names synthesized for unknown codes round-trip back to the code.
	var raw uint16
	if _, err := fmt.Sscanf(strings.ToLower(name), "vk_0x%x", &raw); err == nil {
		return raw, true
	}
	return 0, false
}
