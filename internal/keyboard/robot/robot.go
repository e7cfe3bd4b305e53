// Package robot injects key presses through robotgo.
package robot

import (
	"fmt"

	"github.com/dooshek/zoomleaver/internal/keyboard"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/go-vgo/robotgo"
)

// Injector implements keyboard.Injector with robotgo.
type Injector struct{}

// New creates a robotgo-backed injector.
func New() *Injector {
	return &Injector{}
}

func (r *Injector) Tap(kb types.KeyBinding) error {
	mods := keyboard.Modifiers(kb)
	args := make([]interface{}, 0, len(mods))
	for _, m := range mods {
		args = append(args, m)
	}

	logger.Debugf("keyboard: tapping %s", keyboard.FormatKeyCombo(kb))
	if err := robotgo.KeyTap(kb.Key, args...); err != nil {
		return fmt.Errorf("failed to tap %s: %w", keyboard.FormatKeyCombo(kb), err)
	}
	return nil
}
