package monitor

// EventType identifies what happened during a run.
type EventType int

const (
	EventStarted EventType = iota
	EventCount
	EventNoCount
	EventLeaveFailed
	EventLeft
	EventStopped
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventCount:
		return "count"
	case EventNoCount:
		return "no_count"
	case EventLeaveFailed:
		return "leave_failed"
	case EventLeft:
		return "left"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
type Event struct {
	Type      EventType
	Count     int // participant count, for EventCount, EventLeaveFailed and EventLeft
	Windows   int // candidate windows seen, for EventNoCount
	Threshold int
}
