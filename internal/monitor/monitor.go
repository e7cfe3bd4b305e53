// Package monitor polls window titles for the meeting participant count and
// leaves the meeting once it drops to the configured threshold.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
)

// State of a monitor run.
type State int

const (
	Idle State = iota
	Running
	Stopped
	LeftSuccessfully
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case LeftSuccessfully:
		return "left"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Options are copied when a run starts.
type Options struct {
	Threshold int
	Interval  time.Duration
}

// OptionsFromConfig converts the configuration record into run options.
func OptionsFromConfig(cfg types.Config) Options {
	return Options{
		Threshold: cfg.ParticipantThreshold,
		Interval:  time.Duration(cfg.CheckInterval) * time.Second,
	}
}

// Leaver performs the leave sequence.
type Leaver interface {
	Leave() bool
}

// Status is a point-in-time view of the monitor.
type Status struct {
	State     State `json:"state"`
	Running   bool  `json:"running"`
	LastCount int   `json:"last_count"`
	HasCount  bool  `json:"has_count"`
}

type Monitor struct {
	enum   *windowdetect.Enumerator
	leaver Leaver
	sleep  func(ctx context.Context, d time.Duration) bool

	mu        sync.Mutex
	opts      Options
	state     State
	cancel    context.CancelFunc
	done      chan struct{}
	lastCount int
	hasCount  bool
	listeners []func(Event)
}

// New creates an idle Monitor.
func New(lister windowdetect.Lister, leaver Leaver, opts Options) *Monitor {
	return &Monitor{
		enum:   windowdetect.NewEnumerator(lister),
		leaver: leaver,
		sleep:  sleepContext,
		opts:   opts,
	}
}

// SetOptions replaces the options used by the next run.
func (m *Monitor) SetOptions(opts Options) {
	m.mu.Lock()
	m.opts = opts
	m.mu.Unlock()
}

// Options returns the options the next run will use.
func (m *Monitor) Options() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts
}

// Subscribe registers fn for every event emitted from now on. Listeners run
// on the monitor goroutine and must not block.
func (m *Monitor) Subscribe(fn func(Event)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Start launches a run in the background. It returns false if a run is
// already in progress.
func (m *Monitor) Start() bool {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		logger.Debug("Monitor already running")
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.state = Running
	m.hasCount = false
	m.lastCount = 0
	opts := m.opts
	done := m.done
	m.mu.Unlock()

	m.emit(Event{Type: EventStarted, Threshold: opts.Threshold})
	go m.run(ctx, opts, done)
	return true
}

// Stop requests the current run to end. The run finishes its in-flight OS
// call, if any, and never leaves the meeting after Stop.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		logger.Info("Stopping monitor")
		cancel()
	}
}

// Wait blocks until the current run, if any, has ended.
func (m *Monitor) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		State:     m.state,
		Running:   m.state == Running,
		LastCount: m.lastCount,
		HasCount:  m.hasCount,
	}
}

// TestDetection runs a single detection pass without acting on it.
func (m *Monitor) TestDetection() detection.Report {
	return detection.Detect(m.enum.Snapshot())
}

// TestLeave runs the leave sequence once, regardless of the participant count.
func (m *Monitor) TestLeave() bool {
	logger.Info("Testing leave sequence")
	return m.leaver.Leave()
}

func (m *Monitor) run(ctx context.Context, opts Options, done chan struct{}) {
	defer close(done)

	final := Stopped
	defer func() { m.finish(final) }()

	logger.Infof("Monitoring started (threshold: %d participants, interval: %s)", opts.Threshold, opts.Interval)

	for ctx.Err() == nil {
		candidates := detection.Filter(m.enum.Snapshot())
		count, ok := detection.Extract(candidates)
		m.record(count, ok)

		if !ok {
			logger.Debugf("Could not determine participant count (%d Zoom window(s) found)", len(candidates))
			for _, title := range candidates {
				logger.Debugf("  - %s", title)
			}
			m.emit(Event{Type: EventNoCount, Windows: len(candidates), Threshold: opts.Threshold})
		} else {
			logger.Infof("Current participants: %d", count)
			m.emit(Event{Type: EventCount, Count: count, Threshold: opts.Threshold})

			if count <= opts.Threshold {
				if ctx.Err() != nil {
					break
				}
				logger.Infof("Participant count (%d) is at or below threshold (%d). Leaving meeting...", count, opts.Threshold)
				if m.leaver.Leave() {
					final = LeftSuccessfully
					return
				}
				logger.Warn("Failed to leave meeting, will retry next cycle")
				m.emit(Event{Type: EventLeaveFailed, Count: count, Threshold: opts.Threshold})
			}
		}

		if !m.sleep(ctx, opts.Interval) {
			break
		}
	}
}

func (m *Monitor) finish(final State) {
	m.mu.Lock()
	m.state = final
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	count := m.lastCount
	m.mu.Unlock()

	if final == LeftSuccessfully {
		logger.Info("Successfully left the meeting")
		m.emit(Event{Type: EventLeft, Count: count})
		return
	}
	logger.Info("Monitoring stopped")
	m.emit(Event{Type: EventStopped})
}

func (m *Monitor) record(count int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasCount = ok
	if ok {
		m.lastCount = count
	}
}

func (m *Monitor) emit(ev Event) {
	m.mu.Lock()
	listeners := make([]func(Event), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// sleepContext waits for d and reports false if ctx ended first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
