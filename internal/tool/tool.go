// Package tool defines the drawing tools, the stroke style a gesture is
// painted with, and the lookup from a shape tool to its geometry.
package tool

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/raster"
)

// Width limits accepted from the UI and scripts.
const (
	MinWidth = 1
	MaxWidth = 100
)

// Kind identifies a drawing tool.
type Kind int

const (
	Brush Kind = iota
	Pen
	Marker
	Eraser
	Line
	Rectangle
	Circle
	Triangle
	Star
	Heart
)

// Kinds lists every tool in toolbar order.
var Kinds = []Kind{Brush, Pen, Marker, Eraser, Line, Rectangle, Circle, Triangle, Star, Heart}

var kindNames = [...]string{
	Brush:     "brush",
	Pen:       "pen",
	Marker:    "marker",
	Eraser:    "eraser",
	Line:      "line",
	Rectangle: "rectangle",
	Circle:    "circle",
	Triangle:  "triangle",
	Star:      "star",
	Heart:     "heart",
}

var titler = cases.Title(language.English)

// String returns the lowercase tool name used in config files and scripts.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("tool(%d)", int(k))
	}
	return kindNames[k]
}

// Title returns the display name shown in the status line ("Brush").
func (k Kind) Title() string {
	return titler.String(k.String())
}

// Valid reports whether k is one of the known tools.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// IsFreehand reports whether the tool paints continuously along the
// pointer path instead of once at gesture completion.
func (k Kind) IsFreehand() bool {
	switch k {
	case Brush, Pen, Marker, Eraser:
		return true
	}
	return false
}

// Parse looks up a tool by name, ignoring case and surrounding space.
func Parse(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// ClampWidth limits w to [MinWidth, MaxWidth].
func ClampWidth(w int) int {
	return min(max(w, MinWidth), MaxWidth)
}

// Style is the tool, color and width a gesture is painted with.
type Style struct {
	Tool  Kind
	Color raster.Color
	Width int
}

// EffectiveWidth returns the width after per-tool scaling: the pen halves
// it (never below 1), the marker scales it by 1.5 rounded down.
func (s Style) EffectiveWidth() int {
	switch s.Tool {
	case Pen:
		return max(1, s.Width/2)
	case Marker:
		return s.Width * 3 / 2
	}
	return s.Width
}

// DabRadius is the radius of the discs a freehand tool stamps.
func (s Style) DabRadius() int {
	return s.EffectiveWidth() / 2
}

// Paint returns the color actually written to the canvas. The eraser
// always paints the background.
func (s Style) Paint(background raster.Color) raster.Color {
	if s.Tool == Eraser {
		return background
	}
	return s.Color
}

// Pen returns the rasterizer pen for shape tools.
func (s Style) Pen(background raster.Color) raster.Pen {
	return raster.Pen{Color: s.Paint(background), Width: s.EffectiveWidth()}
}

// ShapeFunc maps a gesture's start and end points to the geometry a shape
// tool draws. The boolean is false for degenerate input.
type ShapeFunc func(start, end geom.Point) (geom.Geometry, bool)

func shape[G geom.Geometry](f func(start, end geom.Point) (G, bool)) ShapeFunc {
	return func(start, end geom.Point) (geom.Geometry, bool) {
		g, ok := f(start, end)
		return g, ok
	}
}

var shapes = map[Kind]ShapeFunc{
	Line:      shape(geom.LineBetween),
	Rectangle: shape(geom.RectBetween),
	Circle:    shape(geom.CircleAround),
	Triangle:  shape(geom.TriangleIn),
	Star:      shape(geom.StarBetween),
	Heart:     shape(geom.HeartBetween),
}

// Shape returns the geometry strategy for a shape tool. Freehand tools
// have none.
func (k Kind) Shape() (ShapeFunc, bool) {
	f, ok := shapes[k]
	return f, ok
}
