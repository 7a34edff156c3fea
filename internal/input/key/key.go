package key

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize converts a hook-reported key name into its canonical form.
// Single characters are upper-cased; multi-word names have their spaces
// replaced with underscores and are upper-cased. The empty string stays
// empty.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if utf8.RuneCountInString(name) == 1 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// modifierTokens are the name fragments that mark a key as a modifier.
var modifierTokens = []string{"CTRL", "SHIFT", "ALT", "META", "WINDOWS", "CMD"}

// IsModifier returns true if the normalized name identifies a modifier key
// such as "CTRL", "LEFT_SHIFT" or "ALT_GR".
func IsModifier(name string) bool {
	for _, tok := range modifierTokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// IsPrintable returns true if the normalized name is a single printable
// character.
func IsPrintable(name string) bool {
	if utf8.RuneCountInString(name) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsPrint(r)
}
