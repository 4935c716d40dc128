package config

import (
	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// Default values for configuration options.
const (
	DefaultCanvasWidth    = 800
	DefaultCanvasHeight   = 600
	DefaultCapacity       = 50
	DefaultWindowWidth    = 1200
	DefaultWindowHeight   = 800
	DefaultTitle          = "Mini Paint - Professional Digital Art Studio"
	DefaultToolbarWidth   = 350
	DefaultHeaderHeight   = 80
	DefaultTargetFPS      = 60
	DefaultToolWidth      = 5
	DefaultPreviewOpacity = 200
	DefaultSaveDir        = "saves"
)

// DefaultPalette returns the 26 swatches of the color picker.
func DefaultPalette() []raster.Color {
	return []raster.Color{
		raster.Black, raster.White, raster.Red, raster.Green,
		raster.Blue, raster.Yellow, raster.Orange, raster.Purple,
		raster.Pink, raster.Cyan, {R: 128, G: 0, B: 0}, {R: 0, G: 128, B: 0},
		{R: 0, G: 0, B: 128}, {R: 128, G: 128, B: 0}, {R: 128, G: 0, B: 128}, {R: 0, G: 128, B: 128},
		raster.Gray, raster.LightGray, {R: 255, G: 128, B: 128}, {R: 128, G: 255, B: 128},
		{R: 128, G: 128, B: 255}, {R: 255, G: 255, B: 128}, {R: 255, G: 128, B: 255}, {R: 128, G: 255, B: 255},
		{R: 255, G: 192, B: 128}, {R: 192, G: 128, B: 255},
	}
}

// DefaultConfig returns a Config with the stock settings: an 800x600
// white canvas, 50 undo steps and a blue width-5 brush.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:      DefaultCanvasWidth,
			Height:     DefaultCanvasHeight,
			Background: raster.White,
		},
		History: HistoryConfig{
			Capacity: DefaultCapacity,
		},
		Window: WindowConfig{
			Width:        DefaultWindowWidth,
			Height:       DefaultWindowHeight,
			Title:        DefaultTitle,
			ToolbarWidth: DefaultToolbarWidth,
			HeaderHeight: DefaultHeaderHeight,
			TargetFPS:    DefaultTargetFPS,
			ShowLanding:  true,
		},
		Tools: ToolConfig{
			Default:        tool.Brush,
			Color:          raster.Blue,
			Width:          DefaultToolWidth,
			PreviewOpacity: DefaultPreviewOpacity,
		},
		Palette: DefaultPalette(),
		Save: SaveConfig{
			Dir:    DefaultSaveDir,
			Format: export.PNG,
		},
	}
}
