// Package hotkey normalizes user-entered keyboard accelerators.
package hotkey

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default is the accelerator bound to the open-random-note action.
const Default = "Ctrl+Alt+R"

// Normalize strips whitespace from s, splits it on "+" and upper-cases the
// first letter of every key: " ctrl + shift+k " becomes "Ctrl+Shift+K".
// A blank string normalizes to "".
func Normalize(s string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if compact == "" {
		return ""
	}

	keys := strings.Split(compact, "+")
	out := keys[:0]
	for _, k := range keys {
		if k == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(k)
		out = append(out, string(unicode.ToUpper(r))+k[size:])
	}
	return strings.Join(out, "+")
}

// Resolve returns the accelerator to register. When custom hotkeys are
// enabled but none is set, it returns Default and reset is true, meaning the
// stored custom value should be replaced with Default.
func Resolve(useCustom bool, custom string) (accel string, reset bool) {
	if !useCustom {
		return Default, false
	}
	if n := Normalize(custom); n != "" {
		return n, false
	}
	return Default, true
}
