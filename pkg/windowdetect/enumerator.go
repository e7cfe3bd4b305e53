package windowdetect

import "github.com/dooshek/zoomleaver/internal/logger"

// Lister is the window-enumeration half of a Detector.
type Lister interface {
	ListWindows() ([]WindowInfo, error)
}

// Enumerator captures window snapshots. It never fails: query errors are
// logged and produce an empty snapshot so callers simply retry next time.
type Enumerator struct {
	lister Lister
}

// NewEnumerator creates an Enumerator backed by l.
func NewEnumerator(l Lister) *Enumerator {
	return &Enumerator{lister: l}
}

// Snapshot returns the windows currently open.
func (e *Enumerator) Snapshot() Snapshot {
	windows, err := e.lister.ListWindows()
	if err != nil {
		logger.Error("Failed to enumerate windows", err)
		return Snapshot{}
	}
	return Snapshot(windows)
}
