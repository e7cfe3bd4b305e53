package dbus

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrNotRunning is returned when no zoomleaver daemon owns the bus name.
var ErrNotRunning = errors.New("zoomleaver daemon is not running")

// Client talks to a running daemon over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the daemon. It returns ErrNotRunning when the service
// name has no owner.
func Dial() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var hasOwner bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, dbusServiceName).Store(&hasOwner)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to query bus name: %w", err)
	}
	if !hasOwner {
		conn.Close()
		return nil, ErrNotRunning
	}

	return &Client{
		conn: conn,
		obj:  conn.Object(dbusServiceName, dbus.ObjectPath(dbusObjectPath)),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Start asks the daemon to begin monitoring. It reports false if the daemon
// was already monitoring.
func (c *Client) Start() (bool, error) {
	var started bool
	if err := c.obj.Call(dbusInterface+".Start", 0).Store(&started); err != nil {
		return false, fmt.Errorf("start: %w", err)
	}
	return started, nil
}

func (c *Client) Stop() error {
	if call := c.obj.Call(dbusInterface+".Stop", 0); call.Err != nil {
		return fmt.Errorf("stop: %w", call.Err)
	}
	return nil
}

func (c *Client) Status() (StatusReply, error) {
	var raw string
	if err := c.obj.Call(dbusInterface+".GetStatus", 0).Store(&raw); err != nil {
		return StatusReply{}, fmt.Errorf("get status: %w", err)
	}
	var reply StatusReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return StatusReply{}, fmt.Errorf("failed to decode status: %w", err)
	}
	return reply, nil
}

// TestDetection returns the daemon's detection listing.
func (c *Client) TestDetection() (string, error) {
	var report string
	if err := c.obj.Call(dbusInterface+".TestDetection", 0).Store(&report); err != nil {
		return "", fmt.Errorf("test detection: %w", err)
	}
	return report, nil
}

// Stats returns the daemon's session statistics as JSON.
func (c *Client) Stats() (string, error) {
	var stats string
	if err := c.obj.Call(dbusInterface+".GetStats", 0).Store(&stats); err != nil {
		return "", fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// StatusReply is the decoded GetStatus payload.
type StatusReply struct {
	State     string `json:"state"`
	Running   bool   `json:"running"`
	LastCount int    `json:"last_count"`
	HasCount  bool   `json:"has_count"`
}

func (r StatusReply) String() string {
	if r.HasCount {
		return fmt.Sprintf("%s (participants: %d)", r.State, r.LastCount)
	}
	return r.State
}
