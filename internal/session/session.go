// Package session implements the stroke state machine that turns pointer
// events into canvas mutations.
//
// A session is Idle until a pointer-down lands inside the canvas. While
// Drawing, freehand tools paint straight into the persistent buffer and
// shape tools redraw the preview overlay; pointer-up finalizes the shape,
// clears the overlay and commits one history snapshot. Positions outside
// the canvas are ignored. Nothing here returns an error except Save.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/opd-ai/go-minipaint/internal/canvas"
	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/history"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// ErrNoSaver is returned by Save when the session has no export target.
var ErrNoSaver = errors.New("session: no saver configured")

// State is the gesture state of a session.
type State int

const (
	Idle State = iota
	Drawing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Saver persists a canvas image and returns where it was written.
type Saver interface {
	Save(img image.Image) (string, error)
}

// Logger is the subset of *slog.Logger a session logs through.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Gesture is the in-flight pointer interaction. Start and Last are only
// meaningful while Active.
type Gesture struct {
	Active bool
	Start  geom.Point
	Last   geom.Point
	Style  tool.Style
}

// Options configure a new Session.
type Options struct {
	// Style is the initial tool, color and width.
	Style tool.Style
	// Saver receives the canvas on Save. Optional.
	Saver Saver
	// Logger receives debug and error logs. Nil disables logging.
	Logger Logger
	// OnEvent, if set, is called synchronously after every state change
	// worth reporting.
	OnEvent func(Event)
}

// DefaultStyle is the blue width-5 brush the application starts with.
func DefaultStyle() tool.Style {
	return tool.Style{Tool: tool.Brush, Color: raster.Blue, Width: 5}
}

// Session drives one canvas. It is single-threaded.
type Session struct {
	canvas  *canvas.Canvas
	style   tool.Style
	gesture Gesture
	saver   Saver
	log     Logger
	onEvent func(Event)
}

// New attaches a session to c.
func New(c *canvas.Canvas, opts Options) *Session {
	style := opts.Style
	if style.Width == 0 {
		style = DefaultStyle()
	}
	style.Width = tool.ClampWidth(style.Width)

	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &Session{
		canvas:  c,
		style:   style,
		saver:   opts.Saver,
		log:     log,
		onEvent: opts.OnEvent,
	}
}

// Canvas returns the canvas this session draws on.
func (s *Session) Canvas() *canvas.Canvas { return s.canvas }

// State returns Drawing while a gesture is active.
func (s *Session) State() State {
	if s.gesture.Active {
		return Drawing
	}
	return Idle
}

// Gesture returns a copy of the current gesture.
func (s *Session) Gesture() Gesture { return s.gesture }

// Style returns the style the next gesture will use.
func (s *Session) Style() tool.Style { return s.style }

// SetSaver replaces the export target.
func (s *Session) SetSaver(v Saver) { s.saver = v }

func (s *Session) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}

// SelectTool changes the tool for subsequent gestures. Invalid kinds are ignored.
func (s *Session) SelectTool(k tool.Kind) {
	if !k.Valid() {
		return
	}
	s.style.Tool = k
}

// SelectColor changes the color for subsequent gestures.
func (s *Session) SelectColor(c raster.Color) {
	s.style.Color = c
}

// SelectWidth changes the width for subsequent gestures, clamped to 1..100.
func (s *Session) SelectWidth(w int) {
	s.style.Width = tool.ClampWidth(w)
}

// PointerDown starts a gesture at p. It is ignored when p lies outside the
// canvas or a gesture is already active.
func (s *Session) PointerDown(p geom.Point) {
	s.down(p, s.canvas.Contains(p))
}

// PointerMove extends the active gesture to p. Out-of-bounds positions do
// not extend the gesture.
func (s *Session) PointerMove(p geom.Point) {
	s.move(p, s.canvas.Contains(p))
}

// PointerUp finishes the active gesture at p, or at the last in-bounds
// position when p lies outside the canvas.
func (s *Session) PointerUp(p geom.Point) {
	s.up(p, s.canvas.Contains(p))
}

// Sample feeds one frame of polled pointer state. Edges of pressed become
// down and up events; holding the button becomes a move. A press that
// begins off-canvas starts the gesture once the pointer enters it.
func (s *Session) Sample(p geom.Point, inside, pressed bool) {
	ok := inside && s.canvas.Contains(p)
	switch {
	case pressed && !s.gesture.Active:
		s.down(p, ok)
	case pressed:
		s.move(p, ok)
	case s.gesture.Active:
		s.up(p, ok)
	}
}

func (s *Session) down(p geom.Point, ok bool) {
	if !ok || s.gesture.Active {
		return
	}
	s.gesture = Gesture{Active: true, Start: p, Last: p, Style: s.style}
	s.log.Debug("gesture started", "tool", s.style.Tool.String(), "x", p.X, "y", p.Y)
	s.emit(Event{Kind: EventGestureStarted, Tool: s.style.Tool})

	if s.style.Tool.IsFreehand() {
		st := s.gesture.Style
		raster.FillCircle(s.canvas.Persistent(), p, st.DabRadius(), st.Paint(s.canvas.Background()))
	}
}

func (s *Session) move(p geom.Point, ok bool) {
	if !ok || !s.gesture.Active {
		return
	}
	g := &s.gesture
	if g.Style.Tool.IsFreehand() {
		raster.Interpolate(s.canvas.Persistent(), g.Last, p, g.Style.DabRadius(), g.Style.Paint(s.canvas.Background()))
	} else {
		s.canvas.ClearPreview()
		s.drawShape(s.canvas.Preview(), g.Start, p)
	}
	g.Last = p
}

func (s *Session) up(p geom.Point, ok bool) {
	if !s.gesture.Active {
		return
	}
	g := s.gesture
	if !ok {
		p = g.Last
	}
	if !g.Style.Tool.IsFreehand() {
		s.drawShape(s.canvas.Persistent(), g.Start, p)
	}
	s.canvas.ClearPreview()
	s.gesture = Gesture{}

	snap := s.canvas.Commit()
	s.logCommit("gesture committed", snap)
	s.emit(Event{Kind: EventCommitted, Tool: g.Style.Tool, Snapshot: snap})
}

// drawShape rasterizes the active shape tool from start to end onto dst.
func (s *Session) drawShape(dst *raster.Buffer, start, end geom.Point) {
	st := s.gesture.Style
	shape, ok := st.Tool.Shape()
	if !ok {
		return
	}
	g, ok := shape(start, end)
	if !ok {
		return
	}
	raster.Apply(dst, st.Pen(s.canvas.Background()), g)
}

// abandon drops an in-flight gesture so a command can run against the
// committed canvas. Freehand marks already painted are reverted.
func (s *Session) abandon() {
	if !s.gesture.Active {
		return
	}
	s.canvas.Persistent().CopyFrom(s.canvas.History().Current().Buffer())
	s.canvas.ClearPreview()
	s.gesture = Gesture{}
	s.log.Debug("gesture abandoned")
}

// Undo restores the previous snapshot. It reports false at the oldest one.
func (s *Session) Undo() bool {
	s.abandon()
	if !s.canvas.Undo() {
		return false
	}
	s.logCommit("undo", s.canvas.History().Current())
	s.emit(Event{Kind: EventUndone, Snapshot: s.canvas.History().Current()})
	return true
}

// Redo restores the next snapshot. It reports false at the newest one.
func (s *Session) Redo() bool {
	s.abandon()
	if !s.canvas.Redo() {
		return false
	}
	s.logCommit("redo", s.canvas.History().Current())
	s.emit(Event{Kind: EventRedone, Snapshot: s.canvas.History().Current()})
	return true
}

// Clear fills the canvas with the background and commits.
func (s *Session) Clear() {
	s.abandon()
	snap := s.canvas.Clear()
	s.logCommit("canvas cleared", snap)
	s.emit(Event{Kind: EventCleared, Snapshot: snap})
}

// Save hands a copy of the persistent canvas to the saver. Failures are
// logged and returned; the canvas is never modified.
func (s *Session) Save() (string, error) {
	if s.saver == nil {
		return "", ErrNoSaver
	}
	path, err := s.saver.Save(s.canvas.Snapshot())
	if err != nil {
		s.log.Error("save failed", "error", err)
		s.emit(Event{Kind: EventSaveFailed, Err: err})
		return "", fmt.Errorf("save canvas: %w", err)
	}
	s.log.Info("canvas saved", "path", path)
	s.emit(Event{Kind: EventSaved, Path: path})
	return path, nil
}

func (s *Session) logCommit(msg string, snap history.Snapshot) {
	h := s.canvas.History()
	s.log.Debug(msg, "snapshot", snap.ID.String(), "position", h.Cursor()+1, "length", h.Len())
}
