package notification

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dooshek/zoomleaver/internal/logger"
)

const appTitle = "Zoom Auto Leaver"

// Notifier defines the interface for system notifications
type Notifier interface {
	Notify(title, message string) error
	NotifyMeetingLeft(count int) error
}

// SilentNotifier is a no-op implementation for headless mode
type SilentNotifier struct{}

func NewSilent() Notifier {
	return &SilentNotifier{}
}

func (s *SilentNotifier) Notify(title, message string) error { return nil }
func (s *SilentNotifier) NotifyMeetingLeft(count int) error  { return nil }

type baseNotifier struct {
	platform platformNotifier
}

type platformNotifier interface {
	send(title, message string) error
}

type commandRunner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// New creates a new platform-specific notification service
func New() Notifier {
	logger.Debug("Initializing notification system")
	var platform platformNotifier
	switch runtime.GOOS {
	case "darwin":
		logger.Debug("Using Darwin (macOS) notifier")
		platform = newDarwinNotifier(execRunner)
	case "linux":
		logger.Debug("Using Linux notifier")
		platform = newLinuxNotifier(execRunner)
	default:
		logger.Debugf("No notifier for %s, notifications disabled", runtime.GOOS)
		return NewSilent()
	}
	return &baseNotifier{platform: platform}
}

func (n *baseNotifier) Notify(title, message string) error {
	return n.platform.send(title, message)
}

func (n *baseNotifier) NotifyMeetingLeft(count int) error {
	logger.Debug("Sending meeting left notification")
	return n.Notify(appTitle, formatLeftMessage(count))
}

func formatLeftMessage(count int) string {
	return fmt.Sprintf("Left the meeting (%d participant(s) remaining)", count)
}
