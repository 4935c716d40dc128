//go:build !noebiten

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), width, clr, false)
}

// drawButton paints a filled, outlined button with a centered label.
func (g *Game) drawButton(screen *ebiten.Image, r image.Rectangle, label string, fill, ink color.RGBA, size float64) {
	fillRect(screen, r, fill)
	strokeRect(screen, r, 2, colorBorder)
	c := r.Min.Add(r.Size().Div(2))
	drawCentered(screen, g.body, label, float64(c.X), float64(c.Y), size, ink)
}

// drawLanding paints the gradient backdrop, the title and the start button.
func (g *Game) drawLanding(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.backdrop == nil || g.backdrop.Bounds().Dx() != w || g.backdrop.Bounds().Dy() != h {
		g.backdrop = newGradient(w, h)
	}
	screen.DrawImage(g.backdrop, nil)

	l := g.ctrl.Layout()
	drawCentered(screen, g.heading, "Mini Paint", float64(l.LandingTitleC.X), float64(l.LandingTitleC.Y), fontSizeLarge, colorOnAccent)
	g.drawButton(screen, l.StartButton, "Start Creating", colorLanding, colorOnAccent, fontSizeMedium)
}

func newGradient(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		c := gradientAt(y, h)
		for x := 0; x < w; x++ {
			i := 4 * (y*w + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	img.WritePixels(pix)
	return img
}

// drawToolbar paints the tool grid, the width slider, the palette and
// the command buttons.
func (g *Game) drawToolbar(screen *ebiten.Image) {
	l := g.ctrl.Layout()
	s := g.ctrl.Session()
	style := s.Style()

	fillRect(screen, l.Toolbar, colorToolbar)
	vector.StrokeLine(screen, float32(l.Toolbar.Max.X), 0, float32(l.Toolbar.Max.X), float32(l.Toolbar.Max.Y), 2, colorFrame, false)

	g.heading.SetFontSize(fontSizeMedium)
	g.heading.DrawText(screen, "Mini Paint Studio", float64(l.TitleAt.X), float64(l.TitleAt.Y), colorText)

	g.body.SetFontSize(fontSizeSmall)
	g.body.DrawText(screen, "Drawing Tools", float64(l.ToolsLabelAt.X), float64(l.ToolsLabelAt.Y), colorText)
	for _, b := range l.Tools {
		fill, ink := colorIdle, color.RGBA{A: 255}
		if b.Kind == style.Tool {
			fill, ink = colorAccent, colorOnAccent
		}
		g.drawButton(screen, b.Rect, b.Kind.Title(), fill, ink, fontSizeSmall)
	}

	g.body.SetFontSize(fontSizeSmall)
	g.body.DrawText(screen, fmt.Sprintf("Brush Size: %dpx", style.Width), float64(l.SizeLabelAt.X), float64(l.SizeLabelAt.Y), colorText)
	fillRect(screen, l.Slider, colorIdle)
	hx := l.SliderHandleX(style.Width)
	fillRect(screen, image.Rect(hx-10, l.Slider.Min.Y-5, hx+10, l.Slider.Max.Y+5), colorAccent)

	g.body.DrawText(screen, "Color Palette", float64(l.PaletteLabel.X), float64(l.PaletteLabel.Y), colorText)
	fillRect(screen, l.CurrentColor, style.Color.RGBA())
	strokeRect(screen, l.CurrentColor, 2, colorSwatchEdge)
	palette := g.ctrl.Config().Palette
	for i, r := range l.Swatches {
		fillRect(screen, r, palette[i].RGBA())
		strokeRect(screen, r, 1, colorSwatchEdge)
	}

	for a, r := range l.Actions {
		action := Action(a)
		fill := colorLanding
		switch action {
		case ActionUndo, ActionRedo:
			fill = colorDisabled
			if g.ctrl.ActionEnabled(action) {
				fill = colorEnabled
			}
		case ActionClear:
			fill = colorDanger
		case ActionSave:
			fill = colorAccent
		}
		g.drawButton(screen, r, action.String(), fill, colorOnAccent, fontSizeSmall)
	}
}

// drawCanvas uploads the composited canvas and draws it with its frame,
// the status line and any notice.
func (g *Game) drawCanvas(screen *ebiten.Image) {
	l := g.ctrl.Layout()
	cv := g.ctrl.Session().Canvas()

	fillRect(screen, l.CanvasFrame, colorOnAccent)
	strokeRect(screen, l.CanvasFrame, 3, colorFrame)

	if g.canvasImage == nil {
		g.canvasImage = ebiten.NewImage(cv.Width(), cv.Height())
	}
	// The persistent layer is opaque, so the composite is opaque and its
	// straight-alpha pixels are also valid premultiplied pixels.
	g.canvasImage.WritePixels(cv.Composite().Pix())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(l.Canvas.Min.X), float64(l.Canvas.Min.Y))
	screen.DrawImage(g.canvasImage, op)
	strokeRect(screen, l.Canvas, 2, colorBorder)

	g.body.SetFontSize(fontSizeSmall)
	g.body.DrawText(screen, g.ctrl.Session().Status().String(), float64(l.StatusAt.X), float64(l.StatusAt.Y), colorText)
	if n := g.ctrl.Notice(); n != "" {
		g.body.DrawText(screen, n, float64(l.NoticeAt.X), float64(l.NoticeAt.Y), colorText)
	}
}
