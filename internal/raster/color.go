package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB value. Equality is exact component match.
type Color struct {
	R, G, B uint8
}

// RGB returns the Color with the given channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Named colors used by the default palette and UI.
var (
	White     = Color{255, 255, 255}
	Black     = Color{0, 0, 0}
	Gray      = Color{128, 128, 128}
	LightGray = Color{200, 200, 200}
	DarkGray  = Color{64, 64, 64}
	Blue      = Color{37, 99, 235}
	Purple    = Color{139, 92, 246}
	Red       = Color{239, 68, 68}
	Green     = Color{34, 197, 94}
	Yellow    = Color{251, 191, 36}
	Orange    = Color{249, 115, 22}
	Pink      = Color{236, 72, 153}
	Cyan      = Color{6, 182, 212}
)

// colorNames maps the names accepted by ParseColor.
var colorNames = map[string]Color{
	"white":     White,
	"black":     Black,
	"gray":      Gray,
	"grey":      Gray,
	"lightgray": LightGray,
	"lightgrey": LightGray,
	"darkgray":  DarkGray,
	"darkgrey":  DarkGray,
	"blue":      Blue,
	"purple":    Purple,
	"red":       Red,
	"green":     Green,
	"yellow":    Yellow,
	"orange":    Orange,
	"pink":      Pink,
	"cyan":      Cyan,
}

// RGBA returns c as a fully opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex returns c in #rrggbb notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// FromColor converts any color.Color to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ParseColor accepts a color name ("blue"), "#rrggbb", "rrggbb" or "#rgb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color format: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
