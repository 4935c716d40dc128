package raster

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-minipaint/internal/geom"
)

// countColor returns how many pixels of b carry exactly c.
func countColor(b *Buffer, c Color) int {
	n := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.ColorAt(x, y) == c && b.NRGBAAt(x, y).A == 0xff {
				n++
			}
		}
	}
	return n
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"#ff0000", Color{255, 0, 0}, false},
		{"00FF00", Color{0, 255, 0}, false},
		{"#abc", Color{0xaa, 0xbb, 0xcc}, false},
		{"blue", Blue, false},
		{"  White ", White, false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"notacolor", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if got := Blue.Hex(); got != "#2563eb" {
		t.Errorf("Blue.Hex() = %q", got)
	}
	if got := FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255}); got != RGB(1, 2, 3) {
		t.Errorf("FromColor = %v", got)
	}
}

func TestBufferClipsWrites(t *testing.T) {
	b := NewBuffer(4, 3)
	b.Set(-1, 0, Red)
	b.Set(4, 0, Red)
	b.Set(0, 3, Red)
	if !b.Transparent() {
		t.Fatal("out-of-bounds writes must not touch the buffer")
	}
	b.Set(3, 2, Red)
	if b.ColorAt(3, 2) != Red || b.NRGBAAt(3, 2).A != 0xff {
		t.Errorf("pixel (3,2) = %v", b.NRGBAAt(3, 2))
	}
	if got := b.NRGBAAt(10, 10); got != (color.NRGBA{}) {
		t.Errorf("NRGBAAt outside = %v, want zero", got)
	}
}

func TestBufferCloneIsIndependent(t *testing.T) {
	a := NewFilled(5, 5, White)
	c := a.Clone()
	c.Set(2, 2, Black)
	if a.ColorAt(2, 2) != White {
		t.Error("mutating a clone changed the original")
	}
	if a.Equal(c) {
		t.Error("buffers should differ after mutation")
	}
	c.CopyFrom(a)
	if !a.Equal(c) {
		t.Error("CopyFrom should restore equality")
	}
}

func TestBufferResetAndFill(t *testing.T) {
	b := NewFilled(3, 3, Green)
	if countColor(b, Green) != 9 {
		t.Fatal("Fill should paint every pixel")
	}
	b.Reset()
	if !b.Transparent() {
		t.Error("Reset should clear alpha everywhere")
	}
}

func TestFillCircle(t *testing.T) {
	b := NewBuffer(21, 21)
	FillCircle(b, geom.Pt(10, 10), 0, Red)
	if countColor(b, Red) != 1 || b.ColorAt(10, 10) != Red {
		t.Fatal("radius 0 should paint the center pixel only")
	}

	b.Reset()
	FillCircle(b, geom.Pt(10, 10), 5, Red)
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			dx, dy := x-10, y-10
			inside := dx*dx+dy*dy <= 25
			painted := b.NRGBAAt(x, y).A != 0
			if inside != painted {
				t.Fatalf("pixel (%d,%d) painted=%v, want %v", x, y, painted, inside)
			}
		}
	}
}

func TestFillCircleClipsAtEdges(t *testing.T) {
	b := NewBuffer(10, 10)
	FillCircle(b, geom.Pt(0, 0), 3, Red)
	if b.ColorAt(0, 0) != Red || b.ColorAt(3, 0) != Red || b.ColorAt(0, 3) != Red {
		t.Error("visible quarter of the disc should be painted")
	}
	if b.NRGBAAt(3, 3).A != 0 {
		t.Error("(3,3) lies outside radius 3")
	}
}

func TestStrokeCircleRing(t *testing.T) {
	b := NewBuffer(41, 41)
	StrokeCircle(b, geom.Circle{Center: geom.Pt(20, 20), Radius: 10}, 3, Blue)
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			dx, dy := x-20, y-20
			d2 := dx*dx + dy*dy
			want := d2 <= 100 && d2 > 49
			if got := b.NRGBAAt(x, y).A != 0; got != want {
				t.Fatalf("pixel (%d,%d) painted=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestStrokeCircleThickFills(t *testing.T) {
	b := NewBuffer(21, 21)
	StrokeCircle(b, geom.Circle{Center: geom.Pt(10, 10), Radius: 4}, 10, Blue)
	if b.ColorAt(10, 10) != Blue {
		t.Error("a ring at least as thick as the radius should fill the disc")
	}
}

func TestStrokeRect(t *testing.T) {
	b := NewFilled(30, 30, White)
	StrokeRect(b, geom.Rect{X: 5, Y: 5, W: 20, H: 10}, 2, Black)

	tests := []struct {
		x, y int
		want Color
	}{
		{5, 5, Black},   // top-left corner
		{24, 14, Black}, // bottom-right corner, inside the box
		{25, 14, White}, // just outside the box
		{6, 6, Black},   // second border row
		{7, 7, White},   // interior
		{15, 10, White}, // center
		{15, 13, Black}, // bottom band
		{23, 10, Black}, // right band
	}
	for _, tt := range tests {
		if got := b.ColorAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestStrokeRectThickFills(t *testing.T) {
	b := NewFilled(20, 20, White)
	StrokeRect(b, geom.Rect{X: 2, Y: 2, W: 10, H: 4}, 2, Black)
	if countColor(b, Black) != 40 {
		t.Errorf("painted %d pixels, want the whole 10x4 box", countColor(b, Black))
	}
}

func TestStrokeLineEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		a, e      geom.Point
		thickness int
		want      int
	}{
		{"horizontal", geom.Pt(2, 5), geom.Pt(12, 5), 1, 11},
		{"vertical", geom.Pt(5, 2), geom.Pt(5, 9), 1, 8},
		{"diagonal", geom.Pt(0, 0), geom.Pt(9, 9), 1, 10},
		{"single point", geom.Pt(4, 4), geom.Pt(4, 4), 1, 1},
		{"thick horizontal", geom.Pt(2, 5), geom.Pt(12, 5), 3, 39}, // 13 columns x 3 rows
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(20, 20)
			StrokeLine(b, tt.a, tt.e, tt.thickness, Red)
			if got := countColor(b, Red); got != tt.want {
				t.Errorf("painted %d pixels, want %d", got, tt.want)
			}
			if b.ColorAt(tt.a.X, tt.a.Y) != Red || b.ColorAt(tt.e.X, tt.e.Y) != Red {
				t.Error("both endpoints should be painted")
			}
		})
	}
}

func TestStrokePolygonCloses(t *testing.T) {
	b := NewBuffer(20, 20)
	StrokePolygon(b, geom.Polygon{geom.Pt(2, 2), geom.Pt(10, 2), geom.Pt(10, 10)}, 1, Red)
	// The closing edge runs along the diagonal.
	if b.ColorAt(6, 6) != Red {
		t.Error("closing edge was not drawn")
	}
}

func TestInterpolateLeavesNoGaps(t *testing.T) {
	b := NewFilled(100, 20, White)
	Interpolate(b, geom.Pt(10, 10), geom.Pt(90, 10), 2, Black)
	for x := 10; x <= 90; x++ {
		for y := 8; y <= 12; y++ {
			if b.ColorAt(x, y) != Black {
				t.Fatalf("gap at (%d,%d)", x, y)
			}
		}
	}
	if b.ColorAt(50, 13) != White || b.ColorAt(50, 7) != White {
		t.Error("band is thicker than the dab diameter")
	}
}

func TestInterpolateSamePoint(t *testing.T) {
	b := NewBuffer(10, 10)
	Interpolate(b, geom.Pt(5, 5), geom.Pt(5, 5), 1, Red)
	if countColor(b, Red) != 5 {
		t.Errorf("painted %d pixels, want a radius-1 disc of 5", countColor(b, Red))
	}
}

func TestApplyHeart(t *testing.T) {
	h, ok := geom.HeartShape(geom.Pt(50, 50), 40)
	if !ok {
		t.Fatal("heart should be drawable")
	}
	b := NewBuffer(100, 100)
	Apply(b, Pen{Color: Pink, Width: 1}, h)
	if b.ColorAt(50, 70) != Pink {
		t.Error("apex of the heart should be painted")
	}
	if b.ColorAt(h.Lobes[0].Center.X, h.Lobes[0].Center.Y-h.Lobes[0].Radius) != Pink {
		t.Error("top of the left lobe should be painted")
	}
}

func TestCompositeOpacity(t *testing.T) {
	base := NewFilled(2, 1, White)
	overlay := NewBuffer(2, 1)
	overlay.Set(0, 0, Black)

	dst := NewBuffer(2, 1)
	Composite(dst, base, overlay, 255)
	if dst.ColorAt(0, 0) != Black {
		t.Errorf("opaque overlay = %v, want black", dst.ColorAt(0, 0))
	}
	if dst.ColorAt(1, 0) != White {
		t.Error("transparent overlay pixels should show the base")
	}

	Composite(dst, base, overlay, 200)
	// 255 * (255-200) / 255 = 55
	if got := dst.ColorAt(0, 0); got != RGB(55, 55, 55) {
		t.Errorf("200/255 overlay = %v, want #373737", got)
	}
	if dst.NRGBAAt(0, 0).A != 0xff {
		t.Error("compositing onto an opaque base must stay opaque")
	}
	if base.ColorAt(0, 0) != White {
		t.Error("Composite must not modify base when dst differs")
	}
}

func TestCompositeZeroOpacity(t *testing.T) {
	base := NewFilled(1, 1, White)
	overlay := NewFilled(1, 1, Red)
	dst := NewBuffer(1, 1)
	Composite(dst, base, overlay, 0)
	if !dst.Equal(base) {
		t.Error("zero opacity should copy the base")
	}
}
