package render

import (
	"image"
	"testing"

	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

func TestNewLayoutPositions(t *testing.T) {
	l := NewLayout(DefaultConfig(), 800, 600)

	tests := []struct {
		name string
		got  image.Rectangle
		want image.Rectangle
	}{
		{"first tool", l.Tools[0].Rect, image.Rect(20, 100, 110, 140)},
		{"fifth tool", l.Tools[4].Rect, image.Rect(120, 150, 210, 190)},
		{"last tool", l.Tools[9].Rect, image.Rect(20, 250, 110, 290)},
		{"slider", l.Slider, image.Rect(20, 330, 270, 350)},
		{"current color", l.CurrentColor, image.Rect(20, 410, 70, 460)},
		{"undo", l.Actions[ActionUndo], image.Rect(20, 610, 120, 650)},
		{"redo", l.Actions[ActionRedo], image.Rect(130, 610, 230, 650)},
		{"clear", l.Actions[ActionClear], image.Rect(20, 660, 120, 700)},
		{"save", l.Actions[ActionSave], image.Rect(130, 660, 230, 700)},
		{"back", l.Actions[ActionBack], image.Rect(20, 710, 230, 750)},
		{"canvas", l.Canvas, image.Rect(370, 100, 1170, 700)},
		{"canvas frame", l.CanvasFrame, image.Rect(360, 90, 1180, 710)},
		{"start button", l.StartButton, image.Rect(500, 420, 700, 480)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if l.StatusAt != image.Pt(370, 720) {
		t.Errorf("status at %v, want (370,720)", l.StatusAt)
	}
	if l.Viewport.Origin != geom.Pt(370, 100) {
		t.Errorf("viewport origin = %v", l.Viewport.Origin)
	}
}

func TestLayoutSwatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = cfg.Palette[:0]
	for i := 0; i < 10; i++ {
		cfg.Palette = append(cfg.Palette, DefaultConfig().Palette[i%8])
	}
	l := NewLayout(cfg, 800, 600)

	if len(l.Swatches) != 10 {
		t.Fatalf("got %d swatches, want 10", len(l.Swatches))
	}
	if l.Swatches[0] != image.Rect(20, 470, 50, 500) {
		t.Errorf("swatch 0 = %v", l.Swatches[0])
	}
	// Second row starts after eight columns.
	if l.Swatches[9] != image.Rect(55, 505, 85, 535) {
		t.Errorf("swatch 9 = %v", l.Swatches[9])
	}

	if i, ok := l.SwatchAt(image.Pt(60, 510)); !ok || i != 9 {
		t.Errorf("SwatchAt = %d, %v", i, ok)
	}
	// Gap between swatches.
	if _, ok := l.SwatchAt(image.Pt(52, 480)); ok {
		t.Error("gap should not hit a swatch")
	}
}

func TestLayoutHitTesting(t *testing.T) {
	l := NewLayout(DefaultConfig(), 800, 600)

	if k, ok := l.ToolAt(image.Pt(150, 160)); !ok || k != tool.Line {
		t.Errorf("ToolAt = %v, %v; want line", k, ok)
	}
	if _, ok := l.ToolAt(image.Pt(115, 120)); ok {
		t.Error("gap between tool buttons should miss")
	}
	if a, ok := l.ActionAt(image.Pt(200, 680)); !ok || a != ActionSave {
		t.Errorf("ActionAt = %v, %v; want save", a, ok)
	}
	if _, ok := l.ActionAt(image.Pt(600, 400)); ok {
		t.Error("canvas should not hit an action")
	}
}

func TestLayoutSlider(t *testing.T) {
	l := NewLayout(DefaultConfig(), 800, 600)

	tests := []struct {
		x    int
		want int
	}{
		{0, 1},
		{20, 1},
		{145, 50},
		{270, 100},
		{400, 100},
	}
	for _, tt := range tests {
		if got := l.SliderWidth(tt.x); got != tt.want {
			t.Errorf("SliderWidth(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}

	if x := l.SliderHandleX(1); x != 20 {
		t.Errorf("SliderHandleX(1) = %d, want 20", x)
	}
	if x := l.SliderHandleX(100); x != 270 {
		t.Errorf("SliderHandleX(100) = %d, want 270", x)
	}
}

func TestActionString(t *testing.T) {
	if ActionUndo.String() != "Undo" || ActionBack.String() != "Back to Home" {
		t.Errorf("labels = %q, %q", ActionUndo, ActionBack)
	}
	if Action(42).String() != "unknown" {
		t.Error("out of range action should be unknown")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGradientAt(t *testing.T) {
	if c := gradientAt(0, 800); c != gradientTop {
		t.Errorf("top = %v", c)
	}
	mid := gradientAt(400, 800)
	if mid.R != 52 || mid.G != 20 || mid.B != 105 {
		t.Errorf("middle = %v", mid)
	}
	if c := gradientAt(0, 0); c != gradientTop {
		t.Errorf("empty = %v", c)
	}
}
