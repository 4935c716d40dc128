package session

import (
	"fmt"

	"github.com/opd-ai/go-minipaint/internal/history"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// EventKind identifies what changed in a session.
type EventKind int

const (
	EventGestureStarted EventKind = iota
	EventCommitted
	EventUndone
	EventRedone
	EventCleared
	EventSaved
	EventSaveFailed
)

// String returns a human-readable event name.
func (k EventKind) String() string {
	switch k {
	case EventGestureStarted:
		return "gesture_started"
	case EventCommitted:
		return "committed"
	case EventUndone:
		return "undone"
	case EventRedone:
		return "redone"
	case EventCleared:
		return "cleared"
	case EventSaved:
		return "saved"
	case EventSaveFailed:
		return "save_failed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event describes one session state change. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind     EventKind
	Tool     tool.Kind
	Snapshot history.Snapshot
	Path     string
	Err      error
}
