package keyboard

import (
	"fmt"
	"strings"

	"github.com/dooshek/zoomleaver/internal/types"
)

// ParseShortcut converts a "+"-separated combo such as "cmd+shift+w" or
// "Alt+Q" into a KeyBinding. Exactly one non-modifier key is required.
func ParseShortcut(s string) (types.KeyBinding, error) {
	var kb types.KeyBinding

	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			return types.KeyBinding{}, fmt.Errorf("invalid shortcut %q: empty key", s)
		case "ctrl", "control":
			kb.Ctrl = true
		case "shift":
			kb.Shift = true
		case "alt", "option", "opt":
			kb.Alt = true
		case "cmd", "command", "super", "win", "meta":
			kb.Super = true
		default:
			if kb.Key != "" {
				return types.KeyBinding{}, fmt.Errorf("invalid shortcut %q: more than one key", s)
			}
			kb.Key = part
		}
	}

	if kb.Key == "" {
		return types.KeyBinding{}, fmt.Errorf("invalid shortcut %q: no key", s)
	}
	return kb, nil
}

// FormatKeyCombo formats a key combination into a human-readable string
func FormatKeyCombo(combo types.KeyCombo) string {
	var parts []string
	if combo.HasCtrl() {
		parts = append(parts, "CTRL")
	}
	if combo.HasShift() {
		parts = append(parts, "SHIFT")
	}
	if combo.HasAlt() {
		parts = append(parts, "ALT")
	}
	if combo.HasSuper() {
		parts = append(parts, "SUPER")
	}
	if key := combo.GetKey(); key != "" {
		parts = append(parts, strings.ToUpper(key))
	}
	return strings.Join(parts, " + ")
}
