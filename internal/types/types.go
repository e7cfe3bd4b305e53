package types

import "runtime"

// KeyCombo interface for types that can be printed as a key combination
type KeyCombo interface {
	HasCtrl() bool
	HasShift() bool
	HasAlt() bool
	HasSuper() bool
	GetKey() string
}

// KeyBinding is a single key plus its modifiers, e.g. the parsed form of "cmd+shift+w".
type KeyBinding struct {
	Key   string `yaml:"key"`
	Ctrl  bool   `yaml:"ctrl"`
	Shift bool   `yaml:"shift"`
	Alt   bool   `yaml:"alt"`
	Super bool   `yaml:"super"` // Super (Windows/Command) key modifier
}

func (kb KeyBinding) HasCtrl() bool  { return kb.Ctrl }
func (kb KeyBinding) HasShift() bool { return kb.Shift }
func (kb KeyBinding) HasAlt() bool   { return kb.Alt }
func (kb KeyBinding) HasSuper() bool { return kb.Super }
func (kb KeyBinding) GetKey() string { return kb.Key }

// Config is the flat, persisted configuration record.
type Config struct {
	ParticipantThreshold int    `yaml:"participant_threshold"`
	CheckInterval        int    `yaml:"check_interval"` // seconds
	AutoStart            bool   `yaml:"auto_start"`
	LogActivity          bool   `yaml:"log_activity"`
	LeaveShortcut        string `yaml:"leave_shortcut"`
	ConfirmLeave         bool   `yaml:"confirm_leave"`
}

const (
	DefaultParticipantThreshold = 5
	DefaultCheckInterval        = 10
	MaxCheckInterval            = 24 * 60 * 60
)

// DefaultLeaveShortcut returns the leave shortcut for the host OS.
// macOS quits the app with Cmd+Q; Zoom on Linux and Windows leaves with Alt+Q.
func DefaultLeaveShortcut() string {
	if runtime.GOOS == "darwin" {
		return "cmd+q"
	}
	return "alt+q"
}
