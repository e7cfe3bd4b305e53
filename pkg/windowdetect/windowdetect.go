package windowdetect

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupported is returned by operations the host platform cannot perform.
var ErrUnsupported = errors.New("operation not supported on this platform")

// WindowInfo contains information about a top-level window
type WindowInfo struct {
	Title   string
	AppName string // owning process, empty when unknown
	ID      string // platform window handle, empty when unknown
	PID     int
}

// OwnedByZoom reports whether the owning process is known to be Zoom.
func (w WindowInfo) OwnedByZoom() bool {
	return strings.Contains(strings.ToLower(w.AppName), "zoom")
}

// Snapshot is the list of windows captured at one instant.
type Snapshot []WindowInfo

// Titles returns the window titles in snapshot order.
func (s Snapshot) Titles() []string {
	titles := make([]string, 0, len(s))
	for _, w := range s {
		titles = append(titles, w.Title)
	}
	return titles
}

// Detector defines the interface for window detection and control
type Detector interface {
	// ListWindows returns every titled window on the desktop.
	ListWindows() ([]WindowInfo, error)

	// FocusWindow brings the window to the foreground.
	FocusWindow(w WindowInfo) error

	// QuitApplication asks the application owning w to quit.
	// Returns ErrUnsupported where no such command exists.
	QuitApplication(w WindowInfo) error

	// Name returns the backend name for logging.
	Name() string
}

type baseDetector struct {
	platform platformDetector
}

type platformDetector interface {
	listWindows() ([]WindowInfo, error)
	focusWindow(w WindowInfo) error
	quitApplication(w WindowInfo) error
	name() string
}

// commandRunner runs an external program and returns its stdout.
type commandRunner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// New creates a new platform-specific window detector
func New() (Detector, error) {
	var platform platformDetector

	switch runtime.GOOS {
	case "darwin":
		platform = newDarwinDetector(execRunner)
	case "windows":
		platform = newWindowsDetector(execRunner)
	default:
		platform = newLinuxDetector(execRunner)
		if platform == nil {
			return nil, fmt.Errorf("failed to initialize Linux window detector: xdotool is not installed")
		}
	}

	return &baseDetector{platform: platform}, nil
}

func (d *baseDetector) ListWindows() ([]WindowInfo, error) {
	return d.platform.listWindows()
}

func (d *baseDetector) FocusWindow(w WindowInfo) error {
	return d.platform.focusWindow(w)
}

func (d *baseDetector) QuitApplication(w WindowInfo) error {
	return d.platform.quitApplication(w)
}

func (d *baseDetector) Name() string {
	return d.platform.name()
}

// CheckPermissions verifies the process may query other applications' windows.
// Only macOS gates this behind an Accessibility/Automation grant.
func CheckPermissions() error {
	if runtime.GOOS != "darwin" {
		return nil
	}
	return checkDarwinPermissions(execRunner)
}
