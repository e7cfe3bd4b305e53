package dbus

import (
	"encoding/json"
	"testing"

	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	running   bool
	starts    int
	stops     int
	listeners []func(monitor.Event)
}

func (f *fakeController) Start() bool {
	f.starts++
	if f.running {
		return false
	}
	f.running = true
	return true
}

func (f *fakeController) Stop() {
	f.stops++
	f.running = false
}

func (f *fakeController) Status() monitor.Status {
	if f.running {
		return monitor.Status{State: monitor.Running, Running: true, LastCount: 7, HasCount: true}
	}
	return monitor.Status{State: monitor.Idle}
}

func (f *fakeController) TestDetection() detection.Report {
	return detection.Report{Candidates: []string{"Participants (4)"}, Count: 4, HasCount: true}
}

func (f *fakeController) Subscribe(fn func(monitor.Event)) {
	f.listeners = append(f.listeners, fn)
}

type fakeStats struct{}

func (fakeStats) GetStatsJSON() (string, error) { return `{"cycles":3}`, nil }

func TestServerMethods(t *testing.T) {
	ctrl := &fakeController{}
	s := NewServer(ctrl, fakeStats{})
	require.Len(t, ctrl.listeners, 1)

	started, dErr := s.StartMonitor()
	require.Nil(t, dErr)
	assert.True(t, started)

	started, dErr = s.StartMonitor()
	require.Nil(t, dErr)
	assert.False(t, started)

	raw, dErr := s.GetStatus()
	require.Nil(t, dErr)
	var reply StatusReply
	require.NoError(t, json.Unmarshal([]byte(raw), &reply))
	assert.Equal(t, StatusReply{State: "running", Running: true, LastCount: 7, HasCount: true}, reply)
	assert.Equal(t, "running (participants: 7)", reply.String())

	require.Nil(t, s.StopMonitor())
	assert.Equal(t, 1, ctrl.stops)

	report, dErr := s.TestDetection()
	require.Nil(t, dErr)
	assert.Contains(t, report, "Current participant count: 4")

	stats, dErr := s.GetStats()
	require.Nil(t, dErr)
	assert.Equal(t, `{"cycles":3}`, stats)

	// Without a bus connection events are dropped quietly.
	ctrl.listeners[0](monitor.Event{Type: monitor.EventLeft, Count: 2})
}

func TestSignalFor(t *testing.T) {
	testCases := []struct {
		event monitor.Event
		name  string
		args  []interface{}
		ok    bool
	}{
		{monitor.Event{Type: monitor.EventStarted}, "MonitorStarted", nil, true},
		{monitor.Event{Type: monitor.EventStopped}, "MonitorStopped", nil, true},
		{monitor.Event{Type: monitor.EventCount, Count: 9}, "ParticipantCount", []interface{}{int32(9)}, true},
		{monitor.Event{Type: monitor.EventLeaveFailed, Count: 3}, "LeaveFailed", []interface{}{int32(3)}, true},
		{monitor.Event{Type: monitor.EventLeft, Count: 3}, "MeetingLeft", []interface{}{int32(3)}, true},
		{monitor.Event{Type: monitor.EventNoCount}, "", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.event.Type.String(), func(t *testing.T) {
			name, args, ok := signalFor(tc.event)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestIntrospectNode(t *testing.T) {
	node := introspectNode()
	require.Len(t, node.Interfaces, 1)

	var methods []string
	for _, m := range node.Interfaces[0].Methods {
		methods = append(methods, m.Name)
	}
	assert.Equal(t, []string{"Start", "Stop", "GetStatus", "TestDetection", "GetStats"}, methods)
}
