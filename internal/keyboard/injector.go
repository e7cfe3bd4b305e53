package keyboard

import "github.com/dooshek/zoomleaver/internal/types"

// ConfirmKey accepts the default button of a dialog.
var ConfirmKey = types.KeyBinding{Key: "enter"}

// Injector sends synthetic key presses to the focused window.
type Injector interface {
	Tap(kb types.KeyBinding) error
}

// Modifiers returns the robotgo modifier names for a binding.
func Modifiers(kb types.KeyBinding) []string {
	var mods []string
	if kb.Ctrl {
		mods = append(mods, "ctrl")
	}
	if kb.Shift {
		mods = append(mods, "shift")
	}
	if kb.Alt {
		mods = append(mods, "alt")
	}
	if kb.Super {
		mods = append(mods, "cmd")
	}
	return mods
}
