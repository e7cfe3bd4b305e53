package detection

import (
	"fmt"
	"strings"

	"github.com/dooshek/zoomleaver/pkg/windowdetect"
)

// Report is the debug listing produced by a detection test run.
type Report struct {
	Relevant   []windowdetect.WindowInfo `json:"relevant"`
	Candidates []string                  `json:"candidates"`
	Count      int                       `json:"count"`
	HasCount   bool                      `json:"has_count"`
}

// Detect runs filter and extraction over a snapshot and records every step.
func Detect(snapshot windowdetect.Snapshot) Report {
	var report Report
	for _, w := range snapshot {
		if IsRelevantWindow(w.Title) {
			report.Relevant = append(report.Relevant, w)
		}
	}
	report.Candidates = Filter(snapshot)
	report.Count, report.HasCount = Extract(report.Candidates)
	return report
}

func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d potentially relevant window(s):\n", len(r.Relevant))
	for i, w := range r.Relevant {
		if w.AppName != "" {
			fmt.Fprintf(&b, "  %d. '%s' (%s)\n", i+1, w.Title, w.AppName)
		} else {
			fmt.Fprintf(&b, "  %d. '%s'\n", i+1, w.Title)
		}
	}

	fmt.Fprintf(&b, "\nAfter filtering, found %d Zoom window(s):\n", len(r.Candidates))
	for i, title := range r.Candidates {
		fmt.Fprintf(&b, "  %d. '%s'\n", i+1, title)
	}

	if r.HasCount {
		fmt.Fprintf(&b, "\nCurrent participant count: %d\n", r.Count)
	} else {
		b.WriteString("\nCould not determine participant count from window titles\n")
	}
	return b.String()
}
