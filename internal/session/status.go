package session

import (
	"fmt"

	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// Status is the read-only summary the UI shows every frame.
type Status struct {
	Tool  tool.Kind
	Color raster.Color
	Width int
	State State
	// Position is the 1-based history cursor.
	Position int
	Length   int
	CanUndo  bool
	CanRedo  bool
}

// String formats the status line, e.g.
// "Tool: Brush | Size: 5px | History: 1/1".
func (s Status) String() string {
	return fmt.Sprintf("Tool: %s | Size: %dpx | History: %d/%d", s.Tool.Title(), s.Width, s.Position, s.Length)
}

// Status returns the current tool, width and history position.
func (s *Session) Status() Status {
	h := s.canvas.History()
	return Status{
		Tool:     s.style.Tool,
		Color:    s.style.Color,
		Width:    s.style.Width,
		State:    s.State(),
		Position: h.Cursor() + 1,
		Length:   h.Len(),
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
	}
}

// Viewport places the canvas inside a window.
type Viewport struct {
	Origin geom.Point
	Width  int
	Height int
}

// CanvasOrigin returns where the canvas sits for a toolbar and header of
// the given sizes: 20 pixels of margin right of the toolbar and below the header.
func CanvasOrigin(toolbarWidth, headerHeight int) geom.Point {
	return geom.Pt(toolbarWidth+20, headerHeight+20)
}

// ToCanvas maps a window coordinate to a canvas coordinate. It reports
// false for positions outside the canvas.
func (v Viewport) ToCanvas(x, y int) (geom.Point, bool) {
	p := geom.Pt(x, y).Sub(v.Origin)
	return p, p.In(v.Width, v.Height)
}

// ToWindow maps a canvas coordinate back to window space.
func (v Viewport) ToWindow(p geom.Point) geom.Point {
	return p.Add(v.Origin)
}
