// Package config provides configuration data structures for go-minipaint.
// A configuration is written either as a Lua script assigning the
// minipaint.config table or as a key/value rc file; both produce a Config.
package config

import (
	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// Config represents the complete go-minipaint configuration.
type Config struct {
	// Canvas fixes the drawing surface size and background.
	Canvas CanvasConfig
	// History bounds the undo log.
	History HistoryConfig
	// Window controls the interactive window and its layout.
	Window WindowConfig
	// Tools holds the initial drawing style.
	Tools ToolConfig
	// Palette lists the swatches offered in the color picker.
	Palette []raster.Color
	// Save controls where and how the canvas is exported.
	Save SaveConfig
}

// CanvasConfig holds the drawing surface settings. They are fixed once a
// canvas has been created.
type CanvasConfig struct {
	Width      int
	Height     int
	Background raster.Color
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// Capacity is the maximum number of snapshots kept, including the
	// initial blank canvas.
	Capacity int
}

// WindowConfig holds window and UI layout settings.
type WindowConfig struct {
	Width        int
	Height       int
	Title        string
	ToolbarWidth int
	HeaderHeight int
	// TargetFPS is the frame loop rate.
	TargetFPS int
	// ShowLanding opens on the landing view instead of the editor.
	ShowLanding bool
}

// ToolConfig holds the style the first gesture is drawn with.
type ToolConfig struct {
	Default tool.Kind
	Color   raster.Color
	Width   int
	// PreviewOpacity is the alpha (0-255) of uncommitted shape previews.
	PreviewOpacity int
}

// SaveConfig holds export settings.
type SaveConfig struct {
	Dir    string
	Format export.Format
}

// Style returns the initial stroke style.
func (c Config) Style() tool.Style {
	return tool.Style{Tool: c.Tools.Default, Color: c.Tools.Color, Width: c.Tools.Width}
}

// Clone returns a copy of c that shares no slices with it.
func (c Config) Clone() Config {
	c.Palette = append([]raster.Color(nil), c.Palette...)
	return c
}
