// Package geom provides the pure shape geometry used by go-minipaint.
// Every function maps control points to vertices or outlines without
// touching a pixel buffer, so results are deterministic for identical inputs.
package geom

import (
	"image"
	"math"
)

// Point is an integer canvas coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// In reports whether p lies inside the half-open rectangle [0,w)×[0,h).
func (p Point) In(w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}

// ImagePoint converts p to an image.Point.
func (p Point) ImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// FromImagePoint converts an image.Point to a Point.
func FromImagePoint(p image.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// Geometry is the closed set of shapes a rasterizer knows how to draw:
// Line, Rect, Circle, Polygon and Heart.
type Geometry interface {
	geometry()
}

// Line is a straight segment between two endpoints.
type Line struct {
	A, B Point
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Circle is a center and an integer radius.
type Circle struct {
	Center Point
	Radius int
}

// Polygon is a closed outline through its vertices in order.
type Polygon []Point

// Heart is two circular lobes sitting on a downward-pointing triangle.
type Heart struct {
	Lobes [2]Circle
	Point Polygon
}

func (Line) geometry()    {}
func (Rect) geometry()    {}
func (Circle) geometry()  {}
func (Polygon) geometry() {}
func (Heart) geometry()   {}

// Bounds returns the rectangle as an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
