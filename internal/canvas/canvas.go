// Package canvas owns the persistent pixel buffer, the transparent
// preview overlay and the history stack that records every commit.
package canvas

import (
	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/history"
	"github.com/opd-ai/go-minipaint/internal/raster"
)

// DefaultPreviewOpacity is the alpha the preview overlay is shown with.
const DefaultPreviewOpacity = 200

// Config fixes the canvas dimensions and history depth at construction.
type Config struct {
	Width          int
	Height         int
	Background     raster.Color
	Capacity       int
	PreviewOpacity uint8
}

// DefaultConfig returns an 800x600 white canvas with 50 undo steps.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		Background:     raster.White,
		Capacity:       history.DefaultCapacity,
		PreviewOpacity: DefaultPreviewOpacity,
	}
}

// Canvas is the single-owner drawing surface. All methods must be called
// from the same goroutine.
type Canvas struct {
	persistent     *raster.Buffer
	preview        *raster.Buffer
	composite      *raster.Buffer
	background     raster.Color
	previewOpacity uint8
	history        *history.Stack
}

// New creates a canvas filled with the background color and a history
// holding that blank state.
func New(cfg Config) *Canvas {
	persistent := raster.NewFilled(cfg.Width, cfg.Height, cfg.Background)
	return &Canvas{
		persistent:     persistent,
		preview:        raster.NewBuffer(cfg.Width, cfg.Height),
		composite:      raster.NewBuffer(cfg.Width, cfg.Height),
		background:     cfg.Background,
		previewOpacity: cfg.PreviewOpacity,
		history:        history.New(persistent, cfg.Capacity),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.persistent.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.persistent.Height() }

// Contains reports whether p addresses a canvas pixel.
func (c *Canvas) Contains(p geom.Point) bool {
	return p.In(c.Width(), c.Height())
}

// Background returns the fill color used by Clear and the eraser.
func (c *Canvas) Background() raster.Color { return c.background }

// Persistent returns the live persistent buffer. Callers draw into it
// directly and must Commit to record the change.
func (c *Canvas) Persistent() *raster.Buffer { return c.persistent }

// Preview returns the live preview overlay.
func (c *Canvas) Preview() *raster.Buffer { return c.preview }

// History exposes the snapshot log for status queries.
func (c *Canvas) History() *history.Stack { return c.history }

// PreviewOpacity returns the alpha the overlay is composited with.
func (c *Canvas) PreviewOpacity() uint8 { return c.previewOpacity }

// SetPreviewOpacity changes the alpha the overlay is composited with.
func (c *Canvas) SetPreviewOpacity(a uint8) { c.previewOpacity = a }

// ClearPreview resets the overlay to fully transparent.
func (c *Canvas) ClearPreview() {
	c.preview.Reset()
}

// Commit snapshots the persistent buffer.
func (c *Canvas) Commit() history.Snapshot {
	return c.history.Commit(c.persistent)
}

// Clear fills the persistent buffer with the background and commits.
func (c *Canvas) Clear() history.Snapshot {
	c.persistent.Fill(c.background)
	return c.Commit()
}

// Undo restores the previous snapshot. It reports false at the oldest one.
func (c *Canvas) Undo() bool {
	buf, ok := c.history.Undo()
	if ok {
		c.persistent.CopyFrom(buf)
	}
	return ok
}

// Redo restores the next snapshot. It reports false at the newest one.
func (c *Canvas) Redo() bool {
	buf, ok := c.history.Redo()
	if ok {
		c.persistent.CopyFrom(buf)
	}
	return ok
}

// Composite returns the persistent buffer with the preview blended over
// it. Neither input is modified. The returned buffer is reused by the next
// call; clone it to keep it.
func (c *Canvas) Composite() *raster.Buffer {
	raster.Composite(c.composite, c.persistent, c.preview, c.previewOpacity)
	return c.composite
}

// Snapshot returns a copy of the persistent buffer, suitable for export.
func (c *Canvas) Snapshot() *raster.Buffer {
	return c.persistent.Clone()
}
