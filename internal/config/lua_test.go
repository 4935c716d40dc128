package config

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

func newTestLuaParser(t *testing.T) *LuaConfigParser {
	t.Helper()
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestLuaConfigParserConfigTable(t *testing.T) {
	p := newTestLuaParser(t)

	cfg, err := p.Parse([]byte(`
minipaint.config = {
    canvas_width = 320,
    canvas_height = 200.0,
    history_capacity = 5,
    tool = "heart",
    color = "#123456",
    width = 20,
    show_landing = false,
    save_format = "bmp",
    title = "Studio " .. 2,
}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Canvas.Width != 320 || cfg.Canvas.Height != 200 {
		t.Errorf("canvas = %dx%d, want 320x200", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.History.Capacity != 5 {
		t.Errorf("capacity = %d, want 5", cfg.History.Capacity)
	}
	if cfg.Tools.Default != tool.Heart {
		t.Errorf("tool = %v, want heart", cfg.Tools.Default)
	}
	if cfg.Tools.Color != raster.RGB(0x12, 0x34, 0x56) {
		t.Errorf("color = %v", cfg.Tools.Color)
	}
	if cfg.Tools.Width != 20 {
		t.Errorf("width = %d, want 20", cfg.Tools.Width)
	}
	if cfg.Window.ShowLanding {
		t.Error("show_landing should be false")
	}
	if cfg.Save.Format != export.BMP {
		t.Errorf("format = %q, want bmp", cfg.Save.Format)
	}
	if cfg.Window.Title != "Studio 2" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
}

func TestLuaConfigParserPalette(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    []raster.Color
		wantErr string
	}{
		{
			name:   "strings and triples",
			script: `minipaint.palette = { "white", {1, 2, 3}, "#ff0000" }`,
			want:   []raster.Color{raster.White, {R: 1, G: 2, B: 3}, {R: 255, G: 0, B: 0}},
		},
		{
			name:   "palette inside config",
			script: `minipaint.config = { palette = { "black" } }`,
			want:   []raster.Color{raster.Black},
		},
		{
			name:   "palette string inside config",
			script: `minipaint.config = { palette = "red green" }`,
			want:   []raster.Color{raster.Red, raster.Green},
		},
		{
			name:   "generated by a loop",
			script: "local p = {}\nfor i = 1, 3 do p[i] = {i, i, i} end\nminipaint.palette = p",
			want:   []raster.Color{{R: 1, G: 1, B: 1}, {R: 2, G: 2, B: 2}, {R: 3, G: 3, B: 3}},
		},
		{
			name:    "channel out of range",
			script:  `minipaint.palette = { {0, 0, 256} }`,
			wantErr: "entry 1",
		},
		{
			name:    "wrong entry type",
			script:  `minipaint.palette = { "red", true }`,
			wantErr: "entry 2",
		},
		{
			name:    "palette not a table",
			script:  `minipaint.palette = 3`,
			wantErr: "not a table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLuaParser(t)
			cfg, err := p.Parse([]byte(tt.script))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(cfg.Palette) != len(tt.want) {
				t.Fatalf("palette = %v, want %v", cfg.Palette, tt.want)
			}
			for i := range tt.want {
				if cfg.Palette[i] != tt.want[i] {
					t.Errorf("palette[%d] = %v, want %v", i, cfg.Palette[i], tt.want[i])
				}
			}
		})
	}
}

func TestLuaConfigParserErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"syntax error", `minipaint.config = {`},
		{"runtime error", `error("boom")`},
		{"unsupported value", `minipaint.config = { width = {} }`},
		{"bad tool", `minipaint.config = { tool = "lasso" }`},
		{"root replaced", `minipaint = 7`},
		{"runaway loop", `while true do end`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLuaParser(t)
			if _, err := p.Parse([]byte(tt.script)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLuaConfigParserResetsBetweenParses(t *testing.T) {
	p := newTestLuaParser(t)

	if _, err := p.Parse([]byte(`minipaint.config.width = 33`)); err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	cfg, err := p.Parse([]byte(`-- nothing set`))
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}
	if cfg.Tools.Width != DefaultToolWidth {
		t.Errorf("width = %d, want default %d", cfg.Tools.Width, DefaultToolWidth)
	}
}

func TestLuaConfigParserRemovedRoot(t *testing.T) {
	p := newTestLuaParser(t)
	cfg, err := p.Parse([]byte(`minipaint = nil`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Tools.Width != DefaultToolWidth {
		t.Errorf("width = %d, want default", cfg.Tools.Width)
	}
}
