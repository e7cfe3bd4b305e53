package detection

import (
	"fmt"
	"testing"

	"github.com/dooshek/zoomleaver/pkg/windowdetect"
	"github.com/stretchr/testify/assert"
)

func snapshotOf(titles ...string) windowdetect.Snapshot {
	s := make(windowdetect.Snapshot, 0, len(titles))
	for _, title := range titles {
		s = append(s, windowdetect.WindowInfo{Title: title})
	}
	return s
}

func TestIsMeetingWindow(t *testing.T) {
	testCases := []struct {
		title    string
		expected bool
	}{
		{"Zoom Meeting", true},
		{"Participants (12)", true},
		{"Weekly Meeting - Notes", true},
		{"ZOOM", true},
		{"Zoom Installer", false},
		{"Zoom Update Available", false},
		{"Uninstall Zoom", false},
		{"meeting.go - Visual Studio Code", false},
		{"zoom.ts - vscode", false},
		{"Slack - general", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsMeetingWindow(tc.title))
		})
	}
}

func TestFilterPrioritizesParticipantPanels(t *testing.T) {
	snapshot := snapshotOf(
		"Zoom Meeting",
		"Installer Update",
		"Terminal",
		"Zoom - Chat",
		"Participants (3)",
		"participant list",
	)

	assert.Equal(t,
		[]string{"Participants (3)", "participant list", "Zoom Meeting", "Zoom - Chat"},
		Filter(snapshot))
}

func TestFilterEmpty(t *testing.T) {
	assert.Empty(t, Filter(nil))
	assert.Empty(t, Filter(snapshotOf("Terminal", "Firefox")))
}

func TestExtractTitlePatterns(t *testing.T) {
	for _, n := range []int{1, 2, 15, 99, 1000, 10000} {
		titles := []string{
			fmt.Sprintf("Participants (%d)", n),
			fmt.Sprintf("Participants: %d", n),
			fmt.Sprintf("participant %d", n),
			fmt.Sprintf("(%d) Participants", n),
			fmt.Sprintf("%d participants", n),
			fmt.Sprintf("Zoom Meeting ID: 987 654 3210 (%d)", n),
			fmt.Sprintf("Something (%d)", n),
		}
		for _, title := range titles {
			t.Run(title, func(t *testing.T) {
				count, ok := ExtractTitle(title)
				assert.True(t, ok)
				assert.Equal(t, n, count)
			})
		}
	}
}

func TestExtractTitleSanityBound(t *testing.T) {
	testCases := []string{
		"Participants (0)",
		"Participants: 10001",
		"(20000) Participants",
		"0 participants",
		"Zoom Meeting ID: 123 (99999)",
		"Participants (99999999999999999999999)",
		"Zoom Meeting",
		"Participants",
	}

	for _, title := range testCases {
		t.Run(title, func(t *testing.T) {
			_, ok := ExtractTitle(title)
			assert.False(t, ok)
		})
	}
}

func TestExtractPatternOrder(t *testing.T) {
	// The specific phrasing wins over the parenthesized fallback.
	count, ok := ExtractTitle("Breakout (2) - Participants: 7")
	assert.True(t, ok)
	assert.Equal(t, 7, count)

	// An out-of-range specific match falls through to later patterns.
	count, ok = ExtractTitle("Participants: 0 (6)")
	assert.True(t, ok)
	assert.Equal(t, 6, count)
}

func TestExtractFirstCandidateWins(t *testing.T) {
	count, ok := Extract([]string{"Zoom Meeting", "Participants (9)", "Participants (4)"})
	assert.True(t, ok)
	assert.Equal(t, 9, count)

	_, ok = Extract([]string{"Zoom Meeting", "Zoom"})
	assert.False(t, ok)

	_, ok = Extract(nil)
	assert.False(t, ok)
}

func TestInstallerExcludedMeetingIDCounted(t *testing.T) {
	candidates := Filter(snapshotOf("Installer Update", "Zoom Meeting ID: 123 (4)"))

	assert.Equal(t, []string{"Zoom Meeting ID: 123 (4)"}, candidates)
	count, ok := Extract(candidates)
	assert.True(t, ok)
	assert.Equal(t, 4, count)
}

func TestParticipantWindowPrioritized(t *testing.T) {
	candidates := Filter(snapshotOf("Zoom Meeting", "Participants (3)"))

	count, ok := Extract(candidates)
	assert.True(t, ok)
	assert.Equal(t, 3, count)
}

func TestExtractIdempotent(t *testing.T) {
	snapshot := snapshotOf("Zoom Meeting (11)", "Participants: 8")
	candidates := Filter(snapshot)

	first, ok1 := Extract(candidates)
	second, ok2 := Extract(candidates)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, Detect(snapshot), Detect(snapshot))
}

func TestDetectReport(t *testing.T) {
	snapshot := windowdetect.Snapshot{
		{Title: "Zoom Installer"},
		{Title: "Zoom Meeting", AppName: "zoom.us"},
		{Title: "Participants (6)", AppName: "zoom.us"},
		{Title: "Terminal"},
	}

	report := Detect(snapshot)

	assert.Len(t, report.Relevant, 3)
	assert.Equal(t, []string{"Participants (6)", "Zoom Meeting"}, report.Candidates)
	assert.True(t, report.HasCount)
	assert.Equal(t, 6, report.Count)

	listing := report.String()
	assert.Contains(t, listing, "Found 3 potentially relevant window(s)")
	assert.Contains(t, listing, "'Zoom Meeting' (zoom.us)")
	assert.Contains(t, listing, "found 2 Zoom window(s)")
	assert.Contains(t, listing, "Current participant count: 6")

	empty := Detect(nil)
	assert.Contains(t, empty.String(), "Could not determine participant count")
}
