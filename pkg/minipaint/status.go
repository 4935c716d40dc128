package minipaint

import (
	"time"

	"github.com/opd-ai/go-minipaint/internal/session"
)

// Status represents the current state of a Painter.
type Status struct {
	// Running indicates if Run is active.
	Running bool
	// StartTime is when Run was last called (zero if never started).
	StartTime time.Time
	// Frames is the number of frame updates since the painter was created.
	Frames int64
	// LastError is the most recent error reported (nil if none).
	LastError error
	// ConfigSource describes where the configuration came from.
	ConfigSource string
	// Canvas is the tool, width and history position of the session.
	Canvas session.Status
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for painter events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a painter event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
	// Path is the written file for EventSaved.
	Path string
}

// EventType enumerates painter event types.
type EventType int

const (
	// EventStarted is emitted when Run begins.
	EventStarted EventType = iota
	// EventStopped is emitted when Run returns.
	EventStopped
	// EventConfigReloaded is emitted after an in-place configuration reload.
	EventConfigReloaded
	// EventSaved is emitted after the canvas was written to disk.
	EventSaved
	// EventCleared is emitted after the canvas was cleared.
	EventCleared
	// EventError is emitted when a recoverable error occurs.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventSaved:
		return "saved"
	case EventCleared:
		return "cleared"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
