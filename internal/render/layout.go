package render

import (
	"image"

	"github.com/opd-ai/go-minipaint/internal/session"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// Toolbar geometry, in window pixels.
const (
	toolbarMargin   = 20
	toolColumns     = 3
	toolButtonW     = 90
	toolButtonH     = 40
	toolPitchX      = 100
	toolPitchY      = 50
	sliderWidth     = 250
	sliderHeight    = 20
	swatchColumns   = 8
	swatchSize      = 30
	swatchPitch     = 35
	actionButtonW   = 100
	actionButtonH   = 40
	actionSpacing   = 10
	startButtonW    = 200
	startButtonH    = 60
	canvasFramePad  = 10
	currentColorBox = 50
)

// Action is a toolbar command button.
type Action int

const (
	ActionUndo Action = iota
	ActionRedo
	ActionClear
	ActionSave
	ActionBack
	actionCount
)

var actionLabels = [...]string{
	ActionUndo:  "Undo",
	ActionRedo:  "Redo",
	ActionClear: "Clear",
	ActionSave:  "Save",
	ActionBack:  "Back to Home",
}

// String returns the button label.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionLabels[a]
}

// ToolButton places one tool selector.
type ToolButton struct {
	Kind tool.Kind
	Rect image.Rectangle
}

// Layout holds the window-space rectangles of every element of the
// editor and the landing view. It is recomputed when the window
// configuration or the palette changes.
type Layout struct {
	Window  image.Rectangle
	Toolbar image.Rectangle

	TitleAt       image.Point
	ToolsLabelAt  image.Point
	Tools         []ToolButton
	SizeLabelAt   image.Point
	Slider        image.Rectangle
	PaletteLabel  image.Point
	CurrentColor  image.Rectangle
	Swatches      []image.Rectangle
	Actions       [actionCount]image.Rectangle
	CanvasFrame   image.Rectangle
	Canvas        image.Rectangle
	StatusAt      image.Point
	NoticeAt      image.Point
	Viewport      session.Viewport
	StartButton   image.Rectangle
	LandingTitleC image.Point
}

// NewLayout arranges the toolbar down the left edge, the canvas to its
// right below the header, and the landing view centered in the window.
func NewLayout(cfg Config, canvasW, canvasH int) Layout {
	l := Layout{
		Window:  image.Rect(0, 0, cfg.Width, cfg.Height),
		Toolbar: image.Rect(0, 0, cfg.ToolbarWidth, cfg.Height),
	}

	y := toolbarMargin
	l.TitleAt = image.Pt(toolbarMargin, y)
	y += 50
	l.ToolsLabelAt = image.Pt(toolbarMargin, y)
	y += 30

	l.Tools = make([]ToolButton, len(tool.Kinds))
	for i, k := range tool.Kinds {
		x := toolbarMargin + (i%toolColumns)*toolPitchX
		ty := y + (i/toolColumns)*toolPitchY
		l.Tools[i] = ToolButton{Kind: k, Rect: image.Rect(x, ty, x+toolButtonW, ty+toolButtonH)}
	}
	y += len(tool.Kinds)/toolColumns*toolPitchY + 50

	l.SizeLabelAt = image.Pt(toolbarMargin, y)
	y += 30
	l.Slider = image.Rect(toolbarMargin, y, toolbarMargin+sliderWidth, y+sliderHeight)
	y += 50

	l.PaletteLabel = image.Pt(toolbarMargin, y)
	y += 30
	l.CurrentColor = image.Rect(toolbarMargin, y, toolbarMargin+currentColorBox, y+currentColorBox)
	l.Swatches = make([]image.Rectangle, len(cfg.Palette))
	for i := range cfg.Palette {
		x := toolbarMargin + (i%swatchColumns)*swatchPitch
		sy := y + 60 + (i/swatchColumns)*swatchPitch
		l.Swatches[i] = image.Rect(x, sy, x+swatchSize, sy+swatchSize)
	}
	y += 200

	second := toolbarMargin + actionButtonW + actionSpacing
	l.Actions[ActionUndo] = image.Rect(toolbarMargin, y, toolbarMargin+actionButtonW, y+actionButtonH)
	l.Actions[ActionRedo] = image.Rect(second, y, second+actionButtonW, y+actionButtonH)
	y += actionButtonH + actionSpacing
	l.Actions[ActionClear] = image.Rect(toolbarMargin, y, toolbarMargin+actionButtonW, y+actionButtonH)
	l.Actions[ActionSave] = image.Rect(second, y, second+actionButtonW, y+actionButtonH)
	y += actionButtonH + actionSpacing
	l.Actions[ActionBack] = image.Rect(toolbarMargin, y, second+actionButtonW, y+actionButtonH)

	origin := session.CanvasOrigin(cfg.ToolbarWidth, cfg.HeaderHeight)
	l.Viewport = session.Viewport{Origin: origin, Width: canvasW, Height: canvasH}
	l.Canvas = image.Rect(origin.X, origin.Y, origin.X+canvasW, origin.Y+canvasH)
	l.CanvasFrame = l.Canvas.Inset(-canvasFramePad)
	l.StatusAt = image.Pt(origin.X, cfg.HeaderHeight+canvasH+40)
	l.NoticeAt = image.Pt(origin.X, cfg.HeaderHeight/2-10)

	cx, cy := cfg.Width/2, cfg.Height/2
	l.LandingTitleC = image.Pt(cx, cy-50)
	l.StartButton = image.Rect(cx-startButtonW/2, cy+20, cx+startButtonW/2, cy+20+startButtonH)
	return l
}

// ToolAt returns the tool whose button contains p.
func (l *Layout) ToolAt(p image.Point) (tool.Kind, bool) {
	for _, b := range l.Tools {
		if p.In(b.Rect) {
			return b.Kind, true
		}
	}
	return 0, false
}

// SwatchAt returns the palette index of the swatch containing p.
func (l *Layout) SwatchAt(p image.Point) (int, bool) {
	for i, r := range l.Swatches {
		if p.In(r) {
			return i, true
		}
	}
	return 0, false
}

// ActionAt returns the command button containing p.
func (l *Layout) ActionAt(p image.Point) (Action, bool) {
	for a, r := range l.Actions {
		if p.In(r) {
			return Action(a), true
		}
	}
	return 0, false
}

// SliderWidth maps a pointer x coordinate to a stroke width.
func (l *Layout) SliderWidth(x int) int {
	rel := float64(x - l.Slider.Min.X)
	return tool.ClampWidth(int(rel/float64(l.Slider.Dx())*99) + 1)
}

// SliderHandleX returns the x coordinate of the handle center for width.
func (l *Layout) SliderHandleX(width int) int {
	return l.Slider.Min.X + int(float64(width-1)/99*float64(l.Slider.Dx()))
}
