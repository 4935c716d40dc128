// Package history implements the bounded, linear undo/redo log of canvas
// snapshots.
//
// The stack always holds at least one snapshot and the snapshot at the
// cursor equals the current canvas. Committing after an undo discards the
// redo branch; committing past capacity evicts the oldest snapshot. After
// every commit the cursor indexes the snapshot just taken.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/opd-ai/go-minipaint/internal/raster"
)

// DefaultCapacity is the snapshot limit used when none is configured.
const DefaultCapacity = 50

// Snapshot is an immutable copy of the canvas at one point in time.
type Snapshot struct {
	ID    uuid.UUID
	Taken time.Time
	buf   *raster.Buffer
}

// Buffer returns a copy of the snapshot's pixels.
func (s Snapshot) Buffer() *raster.Buffer {
	return s.buf.Clone()
}

// Stack is a bounded undo/redo log. It is not safe for concurrent use;
// the frame loop is its only writer.
type Stack struct {
	entries  []Snapshot
	cursor   int
	capacity int
	now      func() time.Time
}

// New returns a stack holding one snapshot of initial. Capacities below 1
// are raised to 1.
func New(initial *raster.Buffer, capacity int) *Stack {
	s := &Stack{
		capacity: max(capacity, 1),
		now:      time.Now,
	}
	s.entries = append(s.entries, s.snapshot(initial))
	return s
}

func (s *Stack) snapshot(buf *raster.Buffer) Snapshot {
	return Snapshot{ID: uuid.New(), Taken: s.now(), buf: buf.Clone()}
}

// Commit records a copy of buf as the newest snapshot and returns it.
func (s *Stack) Commit(buf *raster.Buffer) Snapshot {
	s.entries = s.entries[:s.cursor+1]

	snap := s.snapshot(buf)
	s.entries = append(s.entries, snap)
	if len(s.entries) > s.capacity {
		s.entries[0] = Snapshot{}
		s.entries = s.entries[1:]
	}
	s.cursor = len(s.entries) - 1
	return snap
}

// Undo moves the cursor back one snapshot and returns a copy of it.
// At the oldest snapshot it returns nil, false and changes nothing.
func (s *Stack) Undo() (*raster.Buffer, bool) {
	if s.cursor == 0 {
		return nil, false
	}
	s.cursor--
	return s.entries[s.cursor].Buffer(), true
}

// Redo moves the cursor forward one snapshot and returns a copy of it.
// At the newest snapshot it returns nil, false and changes nothing.
func (s *Stack) Redo() (*raster.Buffer, bool) {
	if s.cursor >= len(s.entries)-1 {
		return nil, false
	}
	s.cursor++
	return s.entries[s.cursor].Buffer(), true
}

// CanUndo reports whether Undo would change the cursor.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo would change the cursor.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries)-1 }

// Len returns the number of retained snapshots.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor returns the index of the current snapshot.
func (s *Stack) Cursor() int { return s.cursor }

// Capacity returns the maximum number of retained snapshots.
func (s *Stack) Capacity() int { return s.capacity }

// Current returns the snapshot at the cursor.
func (s *Stack) Current() Snapshot { return s.entries[s.cursor] }
