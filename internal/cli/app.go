package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/keyboard/robot"
	"github.com/dooshek/zoomleaver/internal/leaver"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/dooshek/zoomleaver/internal/notification"
	"github.com/dooshek/zoomleaver/internal/stats"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
)

// app wires the monitor to the desktop and holds the live configuration.
type app struct {
	*monitor.Monitor

	leaver   *leaver.Leaver
	stats    *stats.StatsManager
	notifier notification.Notifier

	ctx      context.Context
	shutdown context.CancelFunc

	mu  sync.RWMutex
	cfg types.Config
}

func newApp(ctx context.Context, cfg types.Config, notifier notification.Notifier) (*app, error) {
	detector, err := windowdetect.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window detection: %w", err)
	}
	logger.Debugf("Using %s window detector", detector.Name())

	l := leaver.New(detector, robot.New(), leaver.OptionsFromConfig(cfg))
	m := monitor.New(detector, l, monitor.OptionsFromConfig(cfg))

	ctx, cancel := context.WithCancel(ctx)
	a := &app{
		Monitor:  m,
		leaver:   l,
		stats:    stats.NewStatsManager(),
		notifier: notifier,
		ctx:      ctx,
		shutdown: cancel,
		cfg:      cfg,
	}
	a.stats.Attach(m)
	m.Subscribe(a.onEvent)
	logger.SetActivity(cfg.LogActivity)
	return a, nil
}

func (a *app) onEvent(ev monitor.Event) {
	if ev.Type != monitor.EventLeft {
		return
	}
	if err := a.notifier.NotifyMeetingLeft(ev.Count); err != nil {
		logger.Warn("Could not send notification")
	}
}

// Config returns the live configuration.
func (a *app) Config() types.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// applyConfig makes cfg the live configuration. A running monitor keeps the
// options it started with.
func (a *app) applyConfig(cfg types.Config) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	logger.SetActivity(cfg.LogActivity)
	a.leaver.SetOptions(leaver.OptionsFromConfig(cfg))
	a.SetOptions(monitor.OptionsFromConfig(cfg))
	if a.Status().Running {
		logger.Info("Configuration reloaded, changes apply to the next monitoring run")
	} else {
		logger.Info("Configuration reloaded")
	}
}

// watchConfig reloads path into the app until the app shuts down.
func (a *app) watchConfig(path string) {
	w, err := config.NewWatcher(path, a.applyConfig)
	if err != nil {
		logger.Warnf("Config hot reload disabled: %v", err)
		return
	}
	go w.Start(a.ctx)
}

func (a *app) RequestShutdown() {
	a.shutdown()
}

func (a *app) Done() <-chan struct{} {
	return a.ctx.Done()
}
