package stats

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dooshek/zoomleaver/internal/monitor"
)

// Stats holds counters for the current session. Nothing is persisted.
type Stats struct {
	Runs          int       `json:"runs"`
	Cycles        int       `json:"cycles"`
	Misses        int       `json:"misses"`
	LeaveFailures int       `json:"leave_failures"`
	MeetingsLeft  int       `json:"meetings_left"`
	LastCount     int       `json:"last_count"`
	LastLeftAt    time.Time `json:"last_left_at"`
}

// StatsManager accumulates monitor events
type StatsManager struct {
	stats Stats
	now   func() time.Time
	mu    sync.Mutex
}

// NewStatsManager creates an empty stats manager
func NewStatsManager() *StatsManager {
	return &StatsManager{now: time.Now}
}

// Attach subscribes the manager to m.
func (sm *StatsManager) Attach(m *monitor.Monitor) {
	m.Subscribe(sm.Record)
}

// Record updates the counters for one event
func (sm *StatsManager) Record(ev monitor.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch ev.Type {
	case monitor.EventStarted:
		sm.stats.Runs++
	case monitor.EventCount:
		sm.stats.Cycles++
		sm.stats.LastCount = ev.Count
	case monitor.EventNoCount:
		sm.stats.Cycles++
		sm.stats.Misses++
	case monitor.EventLeaveFailed:
		sm.stats.LeaveFailures++
	case monitor.EventLeft:
		sm.stats.MeetingsLeft++
		sm.stats.LastLeftAt = sm.now()
	}
}

// GetStats returns a copy of current statistics
func (sm *StatsManager) GetStats() Stats {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.stats
}

// GetStatsJSON returns statistics as a JSON string (for D-Bus)
func (sm *StatsManager) GetStatsJSON() (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	data, err := json.Marshal(sm.stats)
	if err != nil {
		return "", fmt.Errorf("failed to marshal stats to JSON: %w", err)
	}

	return string(data), nil
}

// Reset clears all statistics
func (sm *StatsManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stats = Stats{}
}
