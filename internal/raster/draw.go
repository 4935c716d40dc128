package raster

import (
	"math"

	"github.com/opd-ai/go-minipaint/internal/geom"
)

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// FillCircle paints every pixel whose center lies within radius of c.
// Radius 0 paints the single center pixel; negative radii paint nothing.
func FillCircle(b *Buffer, c geom.Point, radius int, col Color) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		dx := isqrt(r2 - dy*dy)
		b.hspan(c.X-dx, c.X+dx, c.Y+dy, col)
	}
}

// StrokeCircle paints a ring of the given thickness inside the circle:
// pixels with (r-t)² < d² <= r². Thickness <= 0 or >= radius fills the disc.
func StrokeCircle(b *Buffer, c geom.Circle, thickness int, col Color) {
	r := c.Radius
	if r < 0 {
		return
	}
	if thickness <= 0 || thickness >= r {
		FillCircle(b, c.Center, r, col)
		return
	}
	r2 := r * r
	inner := r - thickness
	i2 := inner * inner
	for dy := -r; dy <= r; dy++ {
		y := c.Center.Y + dy
		outer := isqrt(r2 - dy*dy)
		if dy*dy > i2 {
			b.hspan(c.Center.X-outer, c.Center.X+outer, y, col)
			continue
		}
		in := isqrt(i2 - dy*dy)
		b.hspan(c.Center.X-outer, c.Center.X-in-1, y, col)
		b.hspan(c.Center.X+in+1, c.Center.X+outer, y, col)
	}
}

// StrokeRect paints a border of the given thickness inside the box.
// A border thick enough to meet itself fills the box.
func StrokeRect(b *Buffer, r geom.Rect, thickness int, col Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	if thickness <= 0 || 2*thickness >= r.W || 2*thickness >= r.H {
		b.fillRect(x0, y0, x1, y1, col)
		return
	}
	b.fillRect(x0, y0, x1, y0+thickness, col)
	b.fillRect(x0, y1-thickness, x1, y1, col)
	b.fillRect(x0, y0+thickness, x0+thickness, y1-thickness, col)
	b.fillRect(x1-thickness, y0+thickness, x1, y1-thickness, col)
}

// stamp paints a square pen of the given side centered on p.
func stamp(b *Buffer, p geom.Point, side int, col Color) {
	if side <= 1 {
		b.Set(p.X, p.Y, col)
		return
	}
	off := (side - 1) / 2
	b.fillRect(p.X-off, p.Y-off, p.X-off+side, p.Y-off+side, col)
}

// StrokeLine walks the segment from a to e with Bresenham's algorithm and
// stamps a square pen of the given thickness at every step.
func StrokeLine(b *Buffer, a, e geom.Point, thickness int, col Color) {
	dx := abs(e.X - a.X)
	dy := -abs(e.Y - a.Y)
	sx, sy := 1, 1
	if a.X > e.X {
		sx = -1
	}
	if a.Y > e.Y {
		sy = -1
	}
	err := dx + dy
	p := a
	for {
		stamp(b, p, thickness, col)
		if p == e {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// StrokePolygon strokes every edge of the closed outline, including the
// edge from the last vertex back to the first.
func StrokePolygon(b *Buffer, poly geom.Polygon, thickness int, col Color) {
	switch len(poly) {
	case 0:
		return
	case 1:
		stamp(b, poly[0], thickness, col)
		return
	}
	for i, p := range poly {
		StrokeLine(b, p, poly[(i+1)%len(poly)], thickness, col)
	}
}

// Interpolate stamps filled discs of the given radius along the segment
// from -> to so fast pointer motion leaves no gaps. The step count is the
// rounded distance (at least 1) and positions are truncated toward zero.
func Interpolate(b *Buffer, from, to geom.Point, radius int, col Color) {
	d := to.Sub(from)
	steps := max(int(math.Round(from.Dist(to))), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := geom.Point{
			X: int(float64(from.X) + t*float64(d.X)),
			Y: int(float64(from.Y) + t*float64(d.Y)),
		}
		FillCircle(b, p, radius, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
