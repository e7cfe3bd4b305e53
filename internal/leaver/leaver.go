// Package leaver runs the focus → exit → confirm sequence that leaves a meeting.
package leaver

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/internal/keyboard"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
)

const (
	DefaultFocusSettle  = time.Second
	DefaultDialogSettle = 500 * time.Millisecond
)

var (
	meetingKeywords = []string{"zoom meeting", "meeting"}
	subWindowTokens = []string{"participant", "chat", "breakout"}
)

// Options controls the exit sequence.
type Options struct {
	Shortcut     types.KeyBinding // sent where the platform has no quit command
	Confirm      bool
	FocusSettle  time.Duration
	DialogSettle time.Duration
}

// OptionsFromConfig builds Options from the configuration record. An
// unparsable leave_shortcut falls back to the platform default.
func OptionsFromConfig(cfg types.Config) Options {
	shortcut, err := keyboard.ParseShortcut(cfg.LeaveShortcut)
	if err != nil {
		logger.Warnf("Invalid leave shortcut %q, using %s: %v", cfg.LeaveShortcut, types.DefaultLeaveShortcut(), err)
		shortcut, _ = keyboard.ParseShortcut(types.DefaultLeaveShortcut())
	}
	return Options{
		Shortcut:     shortcut,
		Confirm:      cfg.ConfirmLeave,
		FocusSettle:  DefaultFocusSettle,
		DialogSettle: DefaultDialogSettle,
	}
}

// Leaver executes the leave sequence against the desktop.
type Leaver struct {
	detector windowdetect.Detector
	keys     keyboard.Injector
	sleep    func(time.Duration)

	seq  sync.Mutex // one sequence at a time
	mu   sync.RWMutex
	opts Options
}

// New creates a Leaver.
func New(detector windowdetect.Detector, keys keyboard.Injector, opts Options) *Leaver {
	return &Leaver{
		detector: detector,
		keys:     keys,
		sleep:    time.Sleep,
		opts:     opts,
	}
}

// SetOptions replaces the options used by subsequent Leave calls.
func (l *Leaver) SetOptions(opts Options) {
	l.mu.Lock()
	l.opts = opts
	l.mu.Unlock()
}

func (l *Leaver) options() Options {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.opts
}

// Leave focuses the meeting window, issues the exit command and confirms
// the dialog. It reports whether every step ran without error; it does not
// check afterwards that the meeting was actually left.
func (l *Leaver) Leave() bool {
	l.seq.Lock()
	defer l.seq.Unlock()

	opts := l.options()

	snapshot := windowdetect.NewEnumerator(l.detector).Snapshot()
	target, ok := SelectTarget(detection.FilterWindows(snapshot))
	if !ok {
		logger.Warn("No Zoom window found to focus on")
		return false
	}

	logger.Infof("Leaving Zoom meeting... focusing on: %s", target.Title)

	var failure error
	if err := l.detector.FocusWindow(target); err != nil {
		logger.Error("Failed to focus meeting window", err)
		failure = err
	} else {
		l.sleep(opts.FocusSettle)
		if err := l.exit(target, opts); err != nil {
			logger.Error("Exit command failed", err)
			failure = err
		} else {
			l.sleep(opts.DialogSettle)
		}
	}

	// Attempted even after a failure: the dialog may already be showing.
	if opts.Confirm {
		if err := l.keys.Tap(keyboard.ConfirmKey); err != nil {
			logger.Error("Failed to confirm leave dialog", err)
			if failure == nil {
				failure = err
			}
		}
	}

	if failure != nil {
		return false
	}
	logger.Info("Successfully executed leave meeting sequence!")
	return true
}

func (l *Leaver) exit(target windowdetect.WindowInfo, opts Options) error {
	err := l.detector.QuitApplication(target)
	if errors.Is(err, windowdetect.ErrUnsupported) {
		logger.Debugf("%s has no quit command, sending %s", l.detector.Name(), keyboard.FormatKeyCombo(opts.Shortcut))
		return l.keys.Tap(opts.Shortcut)
	}
	return err
}

// SelectTarget picks the main meeting window. Windows owned by Zoom are
// searched before windows whose owner is unknown; windows owned by any other
// process are never chosen. Within a group the order is a meeting-titled
// window that is not a participants/chat/breakout panel, else any non-panel
// window, else the first window.
func SelectTarget(windows []windowdetect.WindowInfo) (windowdetect.WindowInfo, bool) {
	var owned, unknown []windowdetect.WindowInfo
	for _, w := range windows {
		switch {
		case w.OwnedByZoom():
			owned = append(owned, w)
		case w.AppName == "":
			unknown = append(unknown, w)
		default:
			logger.Debugf("Skipping %q, owned by %s", w.Title, w.AppName)
		}
	}
	if w, ok := selectFrom(owned); ok {
		return w, true
	}
	return selectFrom(unknown)
}

func selectFrom(windows []windowdetect.WindowInfo) (windowdetect.WindowInfo, bool) {
	for _, w := range windows {
		lower := strings.ToLower(w.Title)
		if containsAny(lower, meetingKeywords) && !containsAny(lower, subWindowTokens) {
			return w, true
		}
	}
	for _, w := range windows {
		if !containsAny(strings.ToLower(w.Title), subWindowTokens) {
			return w, true
		}
	}
	if len(windows) > 0 {
		return windows[0], true
	}
	return windowdetect.WindowInfo{}, false
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
