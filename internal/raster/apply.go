package raster

import "github.com/opd-ai/go-minipaint/internal/geom"

// Pen is the color and outline thickness a shape is drawn with.
type Pen struct {
	Color Color
	Width int
}

// Apply rasterizes g onto b as an outline drawn with pen.
func Apply(b *Buffer, pen Pen, g geom.Geometry) {
	switch s := g.(type) {
	case geom.Line:
		StrokeLine(b, s.A, s.B, pen.Width, pen.Color)
	case geom.Rect:
		StrokeRect(b, s, pen.Width, pen.Color)
	case geom.Circle:
		StrokeCircle(b, s, pen.Width, pen.Color)
	case geom.Polygon:
		StrokePolygon(b, s, pen.Width, pen.Color)
	case geom.Heart:
		for _, lobe := range s.Lobes {
			StrokeCircle(b, lobe, pen.Width, pen.Color)
		}
		StrokePolygon(b, s.Point, pen.Width, pen.Color)
	}
}

// Composite writes base with overlay blended over it into dst. Overlay
// pixels contribute their own alpha scaled by opacity/255; fully
// transparent overlay pixels leave base untouched. All three buffers
// must share a size; dst may alias base.
func Composite(dst, base, overlay *Buffer, opacity uint8) {
	if dst != base {
		dst.CopyFrom(base)
	}
	if opacity == 0 {
		return
	}
	op := uint32(opacity)
	n := min(len(dst.pix), len(overlay.pix))
	for i := 0; i < n; i += bytesPerPixel {
		oa := uint32(overlay.pix[i+3])
		if oa == 0 {
			continue
		}
		sa := div255(oa * op)
		da := uint32(dst.pix[i+3])
		// Resulting alpha in 0..255 scaled by 255 to keep precision.
		outA := sa*255 + da*(255-sa)
		if outA == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			sc := uint32(overlay.pix[i+c])
			dc := uint32(dst.pix[i+c])
			v := (sc*sa*255 + dc*da*(255-sa) + outA/2) / outA
			dst.pix[i+c] = uint8(v)
		}
		dst.pix[i+3] = uint8(div255(outA))
	}
}

// div255 returns v/255 rounded to nearest.
func div255(v uint32) uint32 {
	return (v + 127) / 255
}
