//go:build !noebiten

package render

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font sizes used by the UI.
const (
	fontSizeLarge  = 40.0
	fontSizeMedium = 22.0
	fontSizeSmall  = 16.0
)

// TextRendererInterface defines the interface for text rendering.
// This allows for mocking in tests.
type TextRendererInterface interface {
	DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA)
	MeasureText(textStr string) (width, height float64)
	LineHeight() float64
	SetFontSize(size float64)
	FontSize() float64
}

// TextRenderer handles text rendering using Ebiten's text package.
type TextRenderer struct {
	fontSource *text.GoTextFaceSource
	fontSize   float64
	mu         sync.RWMutex
}

// NewTextRenderer creates a TextRenderer with the Go regular font.
func NewTextRenderer() *TextRenderer {
	return mustTextRenderer(goregular.TTF, fontSizeSmall)
}

// NewHeadingRenderer creates a TextRenderer with the Go bold font.
func NewHeadingRenderer() *TextRenderer {
	return mustTextRenderer(gobold.TTF, fontSizeMedium)
}

func mustTextRenderer(ttf []byte, size float64) *TextRenderer {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		// This should never fail with the embedded fonts
		panic("failed to load embedded font: " + err.Error())
	}
	return &TextRenderer{fontSource: fontSource, fontSize: size}
}

// SetFontSize sets the font size for text rendering.
func (tr *TextRenderer) SetFontSize(size float64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.fontSize = size
}

// FontSize returns the current font size.
func (tr *TextRenderer) FontSize() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize
}

func (tr *TextRenderer) face() *text.GoTextFace {
	return &text.GoTextFace{Source: tr.fontSource, Size: tr.fontSize}
}

// DrawText renders text with its top-left corner at (x, y).
func (tr *TextRenderer) DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, textStr, tr.face(), op)
}

// MeasureText returns the width and height of the given text string.
func (tr *TextRenderer) MeasureText(textStr string) (width, height float64) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return text.Measure(textStr, tr.face(), tr.fontSize*1.2)
}

// LineHeight returns the height of a single line of text.
func (tr *TextRenderer) LineHeight() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize * 1.2
}

// drawCentered draws textStr centered on (cx, cy) at size.
func drawCentered(screen *ebiten.Image, tr TextRendererInterface, textStr string, cx, cy, size float64, clr color.RGBA) {
	tr.SetFontSize(size)
	w, h := tr.MeasureText(textStr)
	tr.DrawText(screen, textStr, cx-w/2, cy-h/2, clr)
}
