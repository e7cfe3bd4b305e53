package notification

import (
	"fmt"
	"strings"

	"github.com/dooshek/zoomleaver/internal/logger"
)

type darwinNotifier struct {
	run commandRunner
}

func newDarwinNotifier(run commandRunner) platformNotifier {
	return &darwinNotifier{run: run}
}

func (n *darwinNotifier) send(title, message string) error {
	logger.Debugf("Sending macOS notification: %s - %s", title, message)
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, quote(message), quote(title))
	if err := n.run("osascript", "-e", script); err != nil {
		logger.Error("Failed to send macOS notification", err)
		return fmt.Errorf("osascript notification: %w", err)
	}
	return nil
}

func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
