package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	leftAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	sm := NewStatsManager()
	sm.now = func() time.Time { return leftAt }

	for _, ev := range []monitor.Event{
		{Type: monitor.EventStarted},
		{Type: monitor.EventNoCount, Windows: 1},
		{Type: monitor.EventCount, Count: 7},
		{Type: monitor.EventCount, Count: 4},
		{Type: monitor.EventLeaveFailed, Count: 4},
		{Type: monitor.EventCount, Count: 4},
		{Type: monitor.EventLeft, Count: 4},
		{Type: monitor.EventStopped},
	} {
		sm.Record(ev)
	}

	assert.Equal(t, Stats{
		Runs:          1,
		Cycles:        4,
		Misses:        1,
		LeaveFailures: 1,
		MeetingsLeft:  1,
		LastCount:     4,
		LastLeftAt:    leftAt,
	}, sm.GetStats())
}

func TestGetStatsJSON(t *testing.T) {
	sm := NewStatsManager()
	sm.Record(monitor.Event{Type: monitor.EventCount, Count: 12})

	data, err := sm.GetStatsJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &decoded))
	assert.EqualValues(t, 12, decoded["last_count"])
	assert.EqualValues(t, 1, decoded["cycles"])
}

func TestReset(t *testing.T) {
	sm := NewStatsManager()
	sm.Record(monitor.Event{Type: monitor.EventStarted})
	sm.Reset()
	assert.Equal(t, Stats{}, sm.GetStats())
}
