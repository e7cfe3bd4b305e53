package notification

import (
	"github.com/dooshek/zoomleaver/internal/logger"
)

type linuxNotifier struct {
	run commandRunner
}

func newLinuxNotifier(run commandRunner) platformNotifier {
	return &linuxNotifier{run: run}
}

// send does not wait for notify-send; a missing notification daemon only logs.
func (n *linuxNotifier) send(title, message string) error {
	logger.Debugf("Sending notification: %s - %s", title, message)
	go func() {
		if err := n.run("notify-send", "--app-name=zoomleaver", title, message); err != nil {
			logger.Error("Failed to send notification", err)
		}
	}()
	return nil
}
