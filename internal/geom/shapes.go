package geom

import "math"

// starPoints is the number of vertices of a star: five outer tips and
// five inner notches, alternating.
const starPoints = 10

// LineBetween returns the segment from start to end.
// A zero-length segment is degenerate and reports false.
func LineBetween(start, end Point) (Line, bool) {
	return Line{A: start, B: end}, start != end
}

// RectBetween returns the axis-aligned box spanned by two corners.
func RectBetween(start, end Point) (Rect, bool) {
	r := Rect{
		X: min(start.X, end.X),
		Y: min(start.Y, end.Y),
		W: abs(end.X - start.X),
		H: abs(end.Y - start.Y),
	}
	return r, !r.Empty()
}

// CircleAround returns the circle centered at start passing through end.
// The radius is the Euclidean distance rounded to the nearest integer;
// radius 0 is degenerate.
func CircleAround(start, end Point) (Circle, bool) {
	r := int(math.Round(start.Dist(end)))
	return Circle{Center: start, Radius: r}, r > 0
}

// TriangleIn returns the isosceles triangle whose apex sits halfway along
// the top edge of the box spanned from start by the displacement to end.
// Halving truncates toward zero, so negative drags mirror the shape.
func TriangleIn(start, end Point) (Polygon, bool) {
	w := end.X - start.X
	h := end.Y - start.Y
	if w == 0 || h == 0 {
		return nil, false
	}
	return Polygon{
		{X: start.X + w/2, Y: start.Y},
		{X: start.X, Y: start.Y + h},
		{X: start.X + w, Y: start.Y + h},
	}, true
}

// Star returns the ten vertices of a five-pointed star centered at c.
// Vertex i lies at angle i·π/5 − π/2; even vertices use the outer radius
// and odd vertices half of it. Coordinates are truncated toward zero.
func Star(c Point, radius int) (Polygon, bool) {
	if radius <= 0 {
		return nil, false
	}
	inner := radius / 2
	pts := make(Polygon, starPoints)
	for i := 0; i < starPoints; i++ {
		r := radius
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/5 - math.Pi/2
		pts[i] = Point{
			X: c.X + int(float64(r)*math.Cos(angle)),
			Y: c.Y + int(float64(r)*math.Sin(angle)),
		}
	}
	return pts, true
}

// StarBetween derives the star radius from half the horizontal drag.
func StarBetween(start, end Point) (Polygon, bool) {
	return Star(start, abs(end.X-start.X)/2)
}

// HeartShape returns a heart of the given size centered at c. With
// half = size/2 the lobes have radius half/2, sit half/2 left and right of
// the center and half/3 above it; the point's base spans ±half on the
// center row and its apex is half below.
func HeartShape(c Point, size int) (Heart, bool) {
	if size <= 0 {
		return Heart{}, false
	}
	half := size / 2
	lobe := half / 2
	up := c.Y - half/3
	return Heart{
		Lobes: [2]Circle{
			{Center: Point{X: c.X - lobe, Y: up}, Radius: lobe},
			{Center: Point{X: c.X + lobe, Y: up}, Radius: lobe},
		},
		Point: Polygon{
			{X: c.X - half, Y: c.Y},
			{X: c.X + half, Y: c.Y},
			{X: c.X, Y: c.Y + half},
		},
	}, true
}

// HeartBetween sizes the heart by the full horizontal drag.
func HeartBetween(start, end Point) (Heart, bool) {
	return HeartShape(start, abs(end.X-start.X))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
