// Package render provides the Ebiten front end for go-minipaint: the
// window, the toolbar widgets, the landing view and the frame loop that
// feeds pointer and keyboard input into a painting session.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/opd-ai/go-minipaint/internal/raster"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors raised by UI commands.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "minipaint: %v\n", err)
}

// Config holds the window and UI layout options.
type Config struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// ToolbarWidth is the width of the tool column on the left.
	ToolbarWidth int
	// HeaderHeight is the space above the canvas.
	HeaderHeight int
	// TargetFPS is the number of updates per second.
	TargetFPS int
	// ShowLanding starts on the landing view.
	ShowLanding bool
	// Palette lists the color swatches.
	Palette []raster.Color
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:        1200,
		Height:       800,
		Title:        "Mini Paint",
		ToolbarWidth: 350,
		HeaderHeight: 80,
		TargetFPS:    60,
		ShowLanding:  true,
		Palette: []raster.Color{
			raster.Black, raster.White, raster.Red, raster.Green,
			raster.Blue, raster.Yellow, raster.Orange, raster.Purple,
		},
	}
}

// Validate checks if the Config has valid values.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("target fps must be positive, got %d", c.TargetFPS)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must not be empty")
	}
	return nil
}

// Theme colors.
var (
	colorWindow     = color.RGBA{250, 250, 255, 255}
	colorToolbar    = color.RGBA{240, 240, 250, 255}
	colorText       = raster.DarkGray.RGBA()
	colorOnAccent   = raster.White.RGBA()
	colorIdle       = raster.LightGray.RGBA()
	colorDisabled   = raster.Gray.RGBA()
	colorEnabled    = raster.Green.RGBA()
	colorAccent     = raster.Blue.RGBA()
	colorDanger     = raster.Red.RGBA()
	colorLanding    = raster.Purple.RGBA()
	colorBorder     = raster.DarkGray.RGBA()
	colorFrame      = raster.Gray.RGBA()
	gradientTop     = color.RGBA{75, 0, 130, 255}
	gradientBottom  = color.RGBA{30, 41, 81, 255}
	colorSwatchEdge = raster.Black.RGBA()
)

// gradientAt interpolates the landing background for row y of h rows.
func gradientAt(y, h int) color.RGBA {
	if h <= 0 {
		return gradientTop
	}
	t := float64(y) / float64(h)
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
	return color.RGBA{
		R: mix(gradientTop.R, gradientBottom.R),
		G: mix(gradientTop.G, gradientBottom.G),
		B: mix(gradientTop.B, gradientBottom.B),
		A: 255,
	}
}
