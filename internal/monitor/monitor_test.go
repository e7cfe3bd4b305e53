package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLister returns one snapshot per call, repeating the last one.
type scriptedLister struct {
	mu     sync.Mutex
	frames [][]string
	calls  int
	hook   func(call int)
}

func (s *scriptedLister) ListWindows() ([]windowdetect.WindowInfo, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	idx := call
	if idx >= len(s.frames) {
		idx = len(s.frames) - 1
	}
	frame := s.frames[idx]
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	var windows []windowdetect.WindowInfo
	for _, title := range frame {
		windows = append(windows, windowdetect.WindowInfo{Title: title})
	}
	return windows, nil
}

type failingLister struct{}

func (failingLister) ListWindows() ([]windowdetect.WindowInfo, error) {
	return nil, errors.New("xdotool: cannot open display")
}

type fakeLeaver struct {
	mu      sync.Mutex
	results []bool
	calls   int
}

func (f *fakeLeaver) Leave() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return true
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

func (f *fakeLeaver) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestMonitor(lister windowdetect.Lister, leaver Leaver, threshold int) (*Monitor, *int) {
	m := New(lister, leaver, Options{Threshold: threshold, Interval: 10 * time.Second})
	sleeps := 0
	m.sleep = func(ctx context.Context, d time.Duration) bool {
		sleeps++
		return ctx.Err() == nil
	}
	return m, &sleeps
}

func participants(n string) []string {
	return []string{"Zoom Meeting", "Participants (" + n + ")"}
}

func TestMonitorLeavesAtThreshold(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("8"), participants("3")}}
	leaver := &fakeLeaver{}
	m, sleeps := newTestMonitor(lister, leaver, 5)

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 1, leaver.Calls())
	assert.Equal(t, 1, *sleeps)
	status := m.Status()
	assert.Equal(t, LeftSuccessfully, status.State)
	assert.False(t, status.Running)
	assert.True(t, status.HasCount)
	assert.Equal(t, 3, status.LastCount)
}

func TestMonitorLeavesWhenEqualToThreshold(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("5")}}
	leaver := &fakeLeaver{}
	m, sleeps := newTestMonitor(lister, leaver, 5)

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 1, leaver.Calls())
	assert.Equal(t, 0, *sleeps)
	assert.Equal(t, LeftSuccessfully, m.Status().State)
}

func TestMonitorRetriesFailedLeave(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("2")}}
	leaver := &fakeLeaver{results: []bool{false, false, true}}
	m, sleeps := newTestMonitor(lister, leaver, 5)

	var failures int
	m.Subscribe(func(ev Event) {
		if ev.Type == EventLeaveFailed {
			failures++
		}
	})

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 3, leaver.Calls())
	assert.Equal(t, 2, *sleeps)
	assert.Equal(t, 2, failures)
	assert.Equal(t, LeftSuccessfully, m.Status().State)
}

func TestMonitorStopNeverLeaves(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("1")}}
	leaver := &fakeLeaver{}
	m, _ := newTestMonitor(lister, leaver, 5)
	// Stop arrives while the snapshot is being taken, after the cycle's
	// entry check but before the leave decision.
	lister.hook = func(int) { m.Stop() }

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 0, leaver.Calls())
	assert.Equal(t, Stopped, m.Status().State)
}

func TestMonitorKeepsPollingWithoutCount(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{{"Zoom Workplace"}, {}, {"Slack"}}}
	leaver := &fakeLeaver{}
	m, _ := newTestMonitor(lister, leaver, 5)

	cycles := 0
	m.sleep = func(ctx context.Context, d time.Duration) bool {
		cycles++
		if cycles == 3 {
			return false
		}
		return true
	}

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 3, cycles)
	assert.Equal(t, 0, leaver.Calls())
	status := m.Status()
	assert.Equal(t, Stopped, status.State)
	assert.False(t, status.HasCount)
}

func TestMonitorSurvivesEnumerationFailure(t *testing.T) {
	leaver := &fakeLeaver{}
	m, sleeps := newTestMonitor(failingLister{}, leaver, 5)
	m.sleep = func(ctx context.Context, d time.Duration) bool {
		*sleeps++
		return *sleeps < 2
	}

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, 2, *sleeps)
	assert.Equal(t, 0, leaver.Calls())
}

func TestMonitorStartTwice(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("9")}}
	leaver := &fakeLeaver{}
	m := New(lister, leaver, Options{Threshold: 5, Interval: time.Hour})

	require.True(t, m.Start())
	assert.False(t, m.Start())
	assert.True(t, m.Status().Running)

	m.Stop()
	m.Wait()
	assert.Equal(t, Stopped, m.Status().State)
	assert.Equal(t, 0, leaver.Calls())

	// A finished run can be followed by a new one.
	require.True(t, m.Start())
	m.Stop()
	m.Wait()
}

func TestMonitorOptionsApplyToNextRun(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{participants("4")}}
	leaver := &fakeLeaver{}
	m, _ := newTestMonitor(lister, leaver, 3)

	stopAfterFirst := func(ctx context.Context, d time.Duration) bool { return false }
	m.sleep = stopAfterFirst

	require.True(t, m.Start())
	m.SetOptions(Options{Threshold: 5, Interval: time.Second})
	m.Wait()
	assert.Equal(t, 0, leaver.Calls())

	require.True(t, m.Start())
	m.Wait()
	assert.Equal(t, 1, leaver.Calls())
	assert.Equal(t, Options{Threshold: 5, Interval: time.Second}, m.Options())
}

func TestMonitorEvents(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{{"Zoom Meeting"}, participants("2")}}
	m, _ := newTestMonitor(lister, &fakeLeaver{}, 5)

	var got []EventType
	m.Subscribe(func(ev Event) { got = append(got, ev.Type) })

	require.True(t, m.Start())
	m.Wait()

	assert.Equal(t, []EventType{EventStarted, EventNoCount, EventCount, EventLeft}, got)
}

func TestTestDetection(t *testing.T) {
	lister := &scriptedLister{frames: [][]string{{"Terminal", "Zoom Meeting", "Participants (6)"}}}
	m, _ := newTestMonitor(lister, &fakeLeaver{}, 5)

	report := m.TestDetection()
	assert.True(t, report.HasCount)
	assert.Equal(t, 6, report.Count)
	assert.Len(t, report.Relevant, 2)
	assert.Equal(t, Idle, m.Status().State)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(types.Config{ParticipantThreshold: 3, CheckInterval: 15})
	assert.Equal(t, Options{Threshold: 3, Interval: 15 * time.Second}, opts)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepContext(ctx, time.Hour))
	assert.True(t, sleepContext(context.Background(), time.Millisecond))
}
