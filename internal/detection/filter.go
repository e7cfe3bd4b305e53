package detection

import (
	"strings"

	"github.com/dooshek/zoomleaver/pkg/windowdetect"
)

var (
	inclusionTokens = []string{"zoom", "participant", "meeting"}

	// Installer/updater noise and editors that commonly show "zoom" or "meeting" in file names.
	exclusionTokens = []string{"installer", "update", "uninstall", "visual studio", "vscode"}
)

const participantToken = "participant"

// IsMeetingWindow reports whether a window title plausibly belongs to a meeting.
func IsMeetingWindow(title string) bool {
	lower := strings.ToLower(title)
	return containsAny(lower, inclusionTokens) && !containsAny(lower, exclusionTokens)
}

// IsRelevantWindow is the looser check used by the detection report: it
// includes excluded windows so users can see why they were dropped.
func IsRelevantWindow(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "zoom") || strings.Contains(lower, participantToken)
}

// FilterWindows returns the meeting windows of a snapshot, with participant
// panels moved to the front. Relative order is otherwise preserved.
func FilterWindows(snapshot windowdetect.Snapshot) []windowdetect.WindowInfo {
	var panels, others []windowdetect.WindowInfo
	for _, w := range snapshot {
		if w.Title == "" || !IsMeetingWindow(w.Title) {
			continue
		}
		if strings.Contains(strings.ToLower(w.Title), participantToken) {
			panels = append(panels, w)
		} else {
			others = append(others, w)
		}
	}
	return append(panels, others...)
}

// Filter returns the candidate titles of a snapshot in priority order.
func Filter(snapshot windowdetect.Snapshot) []string {
	return windowdetect.Snapshot(FilterWindows(snapshot)).Titles()
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
