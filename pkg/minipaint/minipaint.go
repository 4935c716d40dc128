package minipaint

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/opd-ai/go-minipaint/internal/config"
	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/session"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// Configuration formats accepted by NewFromReader.
const (
	FormatLua = config.FormatLua
	FormatRC  = config.FormatRC
)

// Types of the drawing core, re-exported for embedders.
type (
	// Session is the stroke state machine driving one canvas.
	Session = session.Session
	// SessionStatus is the tool, width and history position of a session.
	SessionStatus = session.Status
	// Point is a canvas pixel coordinate.
	Point = geom.Point
	// Color is an opaque 8-bit RGB color.
	Color = raster.Color
	// Tool identifies a drawing tool.
	Tool = tool.Kind
)

// Drawing tools.
const (
	Brush     = tool.Brush
	Pen       = tool.Pen
	Marker    = tool.Marker
	Eraser    = tool.Eraser
	Line      = tool.Line
	Rectangle = tool.Rectangle
	Circle    = tool.Circle
	Triangle  = tool.Triangle
	Star      = tool.Star
	Heart     = tool.Heart
)

// Painter is a running or runnable painting application.
// All methods are safe for concurrent use.
type Painter interface {
	// Run shows the window, or blocks headless, until Stop is called or
	// the window is closed. When a window is shown Run must be called
	// from the main goroutine.
	Run() error

	// Stop ends Run and waits for it to return. Stopping a painter that
	// is not running is a no-op.
	Stop() error

	// ReloadConfig reads the configuration source again and applies it
	// without restarting. Returns ErrNotRunning if Run is not active.
	ReloadConfig() error

	// IsRunning reports whether Run is active.
	IsRunning() bool

	// Status returns a snapshot of the painter and its canvas.
	Status() Status

	// WithSession runs fn with exclusive access to the session. fn must
	// not call back into the Painter.
	WithSession(fn func(s *Session))

	// RunScript executes Lua source against the session through the
	// paint table. name is used in error messages.
	RunScript(name, source string) error

	// SetErrorHandler registers a callback for runtime errors.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for painter events.
	SetEventHandler(handler EventHandler)

	// Metrics returns the metrics collector.
	Metrics() *Metrics
}

// New creates a Painter from a configuration file on disk. The format is
// detected from the content.
func New(configPath string, opts *Options) (Painter, error) {
	return build(configPath, configPath, opts, func(p *config.Parser) (*config.Config, error) {
		return p.ParseFile(configPath)
	})
}

// NewFromFS creates a Painter from a configuration file in fsys.
//
//	//go:embed configs/*
//	var configs embed.FS
//	p, err := minipaint.NewFromFS(configs, "configs/minipaint.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Painter, error) {
	return build("embedded:"+configPath, "", opts, func(p *config.Parser) (*config.Config, error) {
		return p.ParseFromFS(fsys, configPath)
	})
}

// NewFromReader creates a Painter from configuration content. format is
// FormatLua or FormatRC. The content is read once and kept for reloads.
func NewFromReader(r io.Reader, format string, opts *Options) (Painter, error) {
	if format != FormatLua && format != FormatRC {
		return nil, fmt.Errorf("invalid format: %s (expected '%s' or '%s')", format, FormatLua, FormatRC)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return build("reader", "", opts, func(p *config.Parser) (*config.Config, error) {
		return p.ParseReader(bytes.NewReader(content), format)
	})
}

// build parses the configuration once and returns a painter that can
// parse it again on reload. watchPath is empty for sources that cannot
// change on disk.
func build(source, watchPath string, opts *Options, parse func(*config.Parser) (*config.Config, error)) (Painter, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, fmt.Errorf("parser init: %w", err)
		}
		defer p.Close()

		cfg, err := parse(p)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := loader()
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryConfig)
	}
	return newPainter(cfg, *opts, source, watchPath, loader), nil
}
