package render

import (
	"fmt"
	"image"

	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/session"
)

// noticeFrames is how long a save notice stays in the header.
const noticeFrames = 180

// View selects which screen is shown.
type View int

const (
	ViewLanding View = iota
	ViewEditor
)

// String returns the view name.
func (v View) String() string {
	if v == ViewLanding {
		return "landing"
	}
	return "editor"
}

// InputState is one frame of polled input. Shortcut fields are edges:
// true only on the frame the key combination was pressed.
type InputState struct {
	X, Y        int
	Pressed     bool
	JustPressed bool
	Undo        bool
	Redo        bool
	Save        bool
	Escape      bool
}

// Input supplies one InputState per frame.
type Input interface {
	Poll() InputState
}

// Controller turns frames of input into session commands and view
// changes. It holds no Ebiten state and is driven by Game.Update.
type Controller struct {
	cfg     Config
	layout  Layout
	session *session.Session
	view    View
	sliding bool
	// holdOff ignores the pointer until the button that opened the
	// editor is released.
	holdOff bool
	notice  string
	ttl     int
	onError ErrorHandler
}

// NewController creates a Controller for s laid out according to cfg.
func NewController(s *session.Session, cfg Config) *Controller {
	c := &Controller{session: s, view: ViewEditor}
	if cfg.ShowLanding {
		c.view = ViewLanding
	}
	c.Reconfigure(cfg)
	return c
}

// Reconfigure applies a new window configuration. The session and the
// current view are kept.
func (c *Controller) Reconfigure(cfg Config) {
	cv := c.session.Canvas()
	c.cfg = cfg
	c.layout = NewLayout(cfg, cv.Width(), cv.Height())
}

// SetErrorHandler sets the callback for failed commands.
func (c *Controller) SetErrorHandler(h ErrorHandler) { c.onError = h }

// Layout returns the current element placement.
func (c *Controller) Layout() *Layout { return &c.layout }

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// Session returns the driven session.
func (c *Controller) Session() *session.Session { return c.session }

// View returns the visible screen.
func (c *Controller) View() View { return c.view }

// Sliding reports whether the width slider is being dragged.
func (c *Controller) Sliding() bool { return c.sliding }

// Notice returns the transient header message, if any.
func (c *Controller) Notice() string { return c.notice }

// ActionEnabled reports whether a command button currently does anything.
func (c *Controller) ActionEnabled(a Action) bool {
	h := c.session.Canvas().History()
	switch a {
	case ActionUndo:
		return h.CanUndo()
	case ActionRedo:
		return h.CanRedo()
	}
	return true
}

// Step processes one frame of input.
func (c *Controller) Step(in InputState) {
	if c.ttl > 0 {
		c.ttl--
		if c.ttl == 0 {
			c.notice = ""
		}
	}

	p := image.Pt(in.X, in.Y)
	if c.view == ViewLanding {
		if in.JustPressed && p.In(c.layout.StartButton) {
			c.view = ViewEditor
			c.holdOff = true
		}
		return
	}
	if in.Escape {
		c.leaveEditor()
		return
	}
	if in.Undo {
		c.run(ActionUndo)
	}
	if in.Redo {
		c.run(ActionRedo)
	}
	if in.Save {
		c.run(ActionSave)
	}

	if c.holdOff {
		if in.Pressed {
			return
		}
		c.holdOff = false
	}

	if in.JustPressed && !c.session.Gesture().Active && c.press(p) {
		return
	}
	if c.sliding {
		if in.Pressed {
			c.session.SelectWidth(c.layout.SliderWidth(in.X))
			return
		}
		c.sliding = false
	}

	cp, inside := c.layout.Viewport.ToCanvas(in.X, in.Y)
	c.session.Sample(cp, inside, in.Pressed)
}

// press handles a click on the toolbar. It reports whether p hit a widget.
func (c *Controller) press(p image.Point) bool {
	if k, ok := c.layout.ToolAt(p); ok {
		c.session.SelectTool(k)
		return true
	}
	if i, ok := c.layout.SwatchAt(p); ok {
		c.session.SelectColor(c.cfg.Palette[i])
		return true
	}
	// The handle overhangs the track by 5px above and below.
	if p.In(c.layout.Slider.Inset(-5)) {
		c.sliding = true
		c.session.SelectWidth(c.layout.SliderWidth(p.X))
		return true
	}
	if a, ok := c.layout.ActionAt(p); ok {
		c.run(a)
		return true
	}
	return false
}

func (c *Controller) run(a Action) {
	switch a {
	case ActionUndo:
		c.session.Undo()
	case ActionRedo:
		c.session.Redo()
	case ActionClear:
		c.session.Clear()
	case ActionSave:
		c.save()
	case ActionBack:
		c.leaveEditor()
	}
}

func (c *Controller) save() {
	path, err := c.session.Save()
	if err != nil {
		c.setNotice(fmt.Sprintf("Save failed: %v", err))
		if c.onError != nil {
			c.onError(err)
		}
		return
	}
	c.setNotice("Canvas saved as " + path)
}

func (c *Controller) setNotice(s string) {
	c.notice = s
	c.ttl = noticeFrames
}

// leaveEditor returns to the landing view. A gesture in progress is
// finished where the pointer last was.
func (c *Controller) leaveEditor() {
	if c.session.Gesture().Active {
		c.session.Sample(geom.Point{}, false, false)
	}
	c.sliding = false
	c.view = ViewLanding
}

// SelectedColor returns the color shown in the current-color box.
func (c *Controller) SelectedColor() raster.Color {
	return c.session.Style().Color
}
