// Package raster owns the pixel buffers of go-minipaint and the integer
// rasterization primitives that write into them. Every write is clipped
// against the buffer bounds; nothing in this package returns an error.
package raster

import (
	"bytes"
	"image"
	"image/color"
)

// bytesPerPixel is the size of one RGBA sample in Buffer.pix.
const bytesPerPixel = 4

// Buffer is a fixed-size grid of non-premultiplied RGBA pixels.
// The persistent canvas is always opaque; preview overlays use alpha 0
// for "nothing drawn here".
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// Verify interface implementation at compile time.
var _ image.Image = (*Buffer)(nil)

// NewBuffer returns a fully transparent buffer of the given size.
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*bytesPerPixel),
	}
}

// NewFilled returns an opaque buffer filled with c.
func NewFilled(width, height int, c Color) *Buffer {
	b := NewBuffer(width, height)
	b.Fill(c)
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Pix returns the raw RGBA bytes, row-major with stride 4*Width.
func (b *Buffer) Pix() []uint8 { return b.pix }

// Contains reports whether (x, y) addresses a pixel of b.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.width + x) * bytesPerPixel
}

// Set writes an opaque pixel. Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, c Color) {
	if !b.Contains(x, y) {
		return
	}
	i := b.offset(x, y)
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = 0xff
}

// SetNRGBA writes a pixel with explicit alpha. Out-of-bounds writes are ignored.
func (b *Buffer) SetNRGBA(x, y int, c color.NRGBA) {
	if !b.Contains(x, y) {
		return
	}
	i := b.offset(x, y)
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// NRGBAAt returns the pixel at (x, y), or transparent black outside the buffer.
func (b *Buffer) NRGBAAt(x, y int) color.NRGBA {
	if !b.Contains(x, y) {
		return color.NRGBA{}
	}
	i := b.offset(x, y)
	return color.NRGBA{R: b.pix[i+0], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// ColorAt returns the RGB channels of the pixel at (x, y), ignoring alpha.
func (b *Buffer) ColorAt(x, y int) Color {
	n := b.NRGBAAt(x, y)
	return Color{R: n.R, G: n.G, B: n.B}
}

// hspan paints the pixels x0..x1 inclusive on row y, clipped.
func (b *Buffer) hspan(x0, x1, y int, c Color) {
	if y < 0 || y >= b.height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, b.width-1)
	for i := b.offset(x0, y); x0 <= x1; x0++ {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = 0xff
		i += bytesPerPixel
	}
}

// fillRect paints the half-open box [x0,x1)×[y0,y1), clipped.
func (b *Buffer) fillRect(x0, y0, x1, y1 int, c Color) {
	for y := max(y0, 0); y < min(y1, b.height); y++ {
		b.hspan(x0, x1-1, y, c)
	}
}

// Fill paints every pixel with the opaque color c.
func (b *Buffer) Fill(c Color) {
	for i := 0; i < len(b.pix); i += bytesPerPixel {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = 0xff
	}
}

// Reset makes every pixel fully transparent.
func (b *Buffer) Reset() {
	clear(b.pix)
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// CopyFrom overwrites b with the overlapping region of src.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.width == b.width && src.height == b.height {
		copy(b.pix, src.pix)
		return
	}
	w := min(b.width, src.width) * bytesPerPixel
	for y := 0; y < min(b.height, src.height); y++ {
		copy(b.pix[b.offset(0, y):b.offset(0, y)+w], src.pix[src.offset(0, y):src.offset(0, y)+w])
	}
}

// Equal reports whether b and o have the same size and identical pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height && bytes.Equal(b.pix, o.pix)
}

// Transparent reports whether no pixel of b has non-zero alpha.
func (b *Buffer) Transparent() bool {
	for i := 3; i < len(b.pix); i += bytesPerPixel {
		if b.pix[i] != 0 {
			return false
		}
	}
	return true
}

// ToImage returns a copy of b as an *image.NRGBA.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	copy(img.Pix, b.pix)
	return img
}

// FromImage creates a buffer from any image, anchored at its Min corner.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	b := NewBuffer(r.Dx(), r.Dy())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA))
		}
	}
	return b
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	return b.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}
