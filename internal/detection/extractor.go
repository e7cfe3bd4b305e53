package detection

import (
	"regexp"
	"strconv"
)

const (
	MinParticipants = 1
	MaxParticipants = 10000
)

// countPatterns are tried in order for every candidate title. Earlier entries
// are more specific; the last one accepts any parenthesized number.
var countPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)participants?\s*\((\d+)\)`), // "Participants (15)"
	regexp.MustCompile(`(?i)participants?\s*:\s*(\d+)`), // "Participants: 15"
	regexp.MustCompile(`(?i)participants?\s+(\d+)`),     // "Participants 15"
	regexp.MustCompile(`(?i)\((\d+)\)\s*participants?`), // "(15) Participants"
	regexp.MustCompile(`(?i)(\d+)\s+participants?`),     // "15 participants"
	regexp.MustCompile(`(?i)meeting\s+id.*?\((\d+)\)`),  // "Zoom Meeting ID: 123 (4)"
	regexp.MustCompile(`\((\d+)\)`),                     // fallback
}

// Extract returns the participant count found in the first candidate title
// that yields one. ok is false when no title carries a count in
// [MinParticipants, MaxParticipants].
func Extract(candidates []string) (count int, ok bool) {
	for _, title := range candidates {
		if n, ok := ExtractTitle(title); ok {
			return n, true
		}
	}
	return 0, false
}

// ExtractTitle applies the count patterns to a single title.
func ExtractTitle(title string) (int, bool) {
	for _, pattern := range countPatterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n >= MinParticipants && n <= MaxParticipants {
			return n, true
		}
	}
	return 0, false
}
