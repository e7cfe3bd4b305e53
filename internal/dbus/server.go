package dbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	dbusServiceName = "com.dooshek.zoomleaver"
	dbusObjectPath  = "/com/dooshek/zoomleaver/Monitor"
	dbusInterface   = "com.dooshek.zoomleaver.Monitor"
)

// Controller is the part of the monitor exposed on the bus.
type Controller interface {
	Start() bool
	Stop()
	Status() monitor.Status
	TestDetection() detection.Report
	Subscribe(fn func(monitor.Event))
}

// StatsSource supplies the GetStats payload.
type StatsSource interface {
	GetStatsJSON() (string, error)
}

// Server implements D-Bus service for the zoomleaver monitor
type Server struct {
	conn    *dbus.Conn
	monitor Controller
	stats   StatsSource
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new D-Bus server instance
func NewServer(m Controller, stats StatsSource) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		monitor: m,
		stats:   stats,
		ctx:     ctx,
		cancel:  cancel,
	}
	m.Subscribe(s.handleEvent)
	return s
}

// Start connects to the session bus and exports the monitor object
func (s *Server) Start() error {
	var err error
	s.conn, err = dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	// Request name
	reply, err := s.conn.RequestName(dbusServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		s.conn.Close()
		return fmt.Errorf("name already taken")
	}

	// Export object
	err = s.conn.ExportWithMap(s, map[string]string{
		"StartMonitor": "Start",
		"StopMonitor":  "Stop",
	}, dbusObjectPath, dbusInterface)
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to export object: %w", err)
	}

	err = s.conn.Export(introspect.NewIntrospectable(introspectNode()), dbusObjectPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	logger.Infof("🔌 D-Bus service started: %s", dbusServiceName)
	return nil
}

// Stop releases the bus connection
func (s *Server) Stop() {
	s.cancel()
	if s.conn != nil {
		s.conn.Close()
	}
	logger.Infof("🔌 D-Bus service stopped")
}

// Wait waits for the server context to be cancelled
func (s *Server) Wait() {
	<-s.ctx.Done()
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: dbusObjectPath,
		Interfaces: []introspect.Interface{{
			Name: dbusInterface,
			Methods: []introspect.Method{
				{
					Name: "Start",
					Args: []introspect.Arg{
						{Name: "started", Type: "b", Direction: "out"},
					},
				},
				{Name: "Stop"},
				{
					Name: "GetStatus",
					Args: []introspect.Arg{
						{Name: "status", Type: "s", Direction: "out"},
					},
				},
				{
					Name: "TestDetection",
					Args: []introspect.Arg{
						{Name: "report", Type: "s", Direction: "out"},
					},
				},
				{
					Name: "GetStats",
					Args: []introspect.Arg{
						{Name: "stats", Type: "s", Direction: "out"},
					},
				},
			},
			Signals: []introspect.Signal{
				{Name: "MonitorStarted"},
				{Name: "MonitorStopped"},
				{
					Name: "ParticipantCount",
					Args: []introspect.Arg{
						{Name: "count", Type: "i"},
					},
				},
				{
					Name: "LeaveFailed",
					Args: []introspect.Arg{
						{Name: "count", Type: "i"},
					},
				},
				{
					Name: "MeetingLeft",
					Args: []introspect.Arg{
						{Name: "count", Type: "i"},
					},
				},
			},
		}},
	}
}

// StartMonitor begins a monitoring run (D-Bus method Start)
func (s *Server) StartMonitor() (bool, *dbus.Error) {
	logger.Debug("D-Bus: Start called")
	return s.monitor.Start(), nil
}

// StopMonitor ends the current run (D-Bus method Stop)
func (s *Server) StopMonitor() *dbus.Error {
	logger.Debug("D-Bus: Stop called")
	s.monitor.Stop()
	return nil
}

// GetStatus returns the monitor status as JSON (D-Bus method)
func (s *Server) GetStatus() (string, *dbus.Error) {
	data, err := json.Marshal(s.monitor.Status())
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

// TestDetection returns the detection debug listing (D-Bus method)
func (s *Server) TestDetection() (string, *dbus.Error) {
	return s.monitor.TestDetection().String(), nil
}

// GetStats returns session statistics as JSON (D-Bus method)
func (s *Server) GetStats() (string, *dbus.Error) {
	data, err := s.stats.GetStatsJSON()
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return data, nil
}

func (s *Server) handleEvent(ev monitor.Event) {
	if name, args, ok := signalFor(ev); ok {
		s.emitSignal(name, args...)
	}
}

// signalFor maps a monitor event to the signal broadcast for it.
func signalFor(ev monitor.Event) (string, []interface{}, bool) {
	switch ev.Type {
	case monitor.EventStarted:
		return "MonitorStarted", nil, true
	case monitor.EventStopped:
		return "MonitorStopped", nil, true
	case monitor.EventCount:
		return "ParticipantCount", []interface{}{int32(ev.Count)}, true
	case monitor.EventLeaveFailed:
		return "LeaveFailed", []interface{}{int32(ev.Count)}, true
	case monitor.EventLeft:
		return "MeetingLeft", []interface{}{int32(ev.Count)}, true
	default:
		return "", nil, false
	}
}

// emitSignal emits a D-Bus signal
func (s *Server) emitSignal(name string, args ...interface{}) {
	if s.conn == nil {
		logger.Debugf("D-Bus: Cannot emit signal %s - no connection", name)
		return
	}

	signalPath := dbus.ObjectPath(dbusObjectPath)
	signalName := dbusInterface + "." + name

	err := s.conn.Emit(signalPath, signalName, args...)
	if err != nil {
		logger.Errorf("D-Bus: Failed to emit signal %s", err, name)
	} else {
		logger.Debugf("D-Bus: Emitted signal: %s", name)
	}
}
