//go:build !noebiten

package render

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-minipaint/internal/session"
)

// Game implements ebiten.Game. Every access to the session, from the
// frame loop or from other goroutines through WithSession, happens under
// the game's lock.
type Game struct {
	config       Config
	pending      *Config
	ctrl         *Controller
	input        Input
	body         TextRendererInterface
	heading      TextRendererInterface
	errorHandler ErrorHandler
	canvasImage  *ebiten.Image
	backdrop     *ebiten.Image
	onFrame      func()
	frames       uint64
	mu           sync.RWMutex
	running      bool
	ctx          context.Context
}

// NewGame creates a Game that draws s and polls input through Ebiten.
func NewGame(config Config, s *session.Session) *Game {
	return NewGameWithInput(config, s, EbitenInput{}, NewTextRenderer(), NewHeadingRenderer())
}

// NewGameWithInput creates a Game with custom input and text renderers.
// This is useful for testing.
func NewGameWithInput(config Config, s *session.Session, input Input, body, heading TextRendererInterface) *Game {
	g := &Game{
		config:       config,
		ctrl:         NewController(s, config),
		input:        input,
		body:         body,
		heading:      heading,
		errorHandler: DefaultErrorHandler,
	}
	g.ctrl.SetErrorHandler(g.handleError)
	return g
}

func (g *Game) handleError(err error) {
	if g.errorHandler != nil {
		g.errorHandler(err)
	}
}

// SetErrorHandler sets a custom error handler for failed commands.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetFrameHook sets a function called at the end of every update.
func (g *Game) SetFrameHook(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFrame = fn
}

// WithSession runs fn with exclusive access to the session.
func (g *Game) WithSession(fn func(*session.Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.ctrl.Session())
}

// View returns the visible screen.
func (g *Game) View() View {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctrl.View()
}

// Frames returns the number of updates run so far.
func (g *Game) Frames() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frames
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Check for context cancellation (used for programmatic shutdown)
	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if g.pending != nil {
		g.applyConfig(*g.pending)
		g.pending = nil
	}

	g.ctrl.Step(g.input.Poll())
	g.frames++
	if g.onFrame != nil {
		g.onFrame()
	}
	return nil
}

func (g *Game) applyConfig(cfg Config) {
	if g.running {
		if cfg.Width != g.config.Width || cfg.Height != g.config.Height {
			ebiten.SetWindowSize(cfg.Width, cfg.Height)
		}
		if cfg.Title != g.config.Title {
			ebiten.SetWindowTitle(cfg.Title)
		}
		if cfg.TargetFPS != g.config.TargetFPS {
			ebiten.SetTPS(cfg.TargetFPS)
		}
	}
	g.config = cfg
	g.ctrl.Reconfigure(cfg)
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.ctrl.View() == ViewLanding {
		g.drawLanding(screen)
		return
	}
	screen.Fill(colorWindow)
	g.drawToolbar(screen)
	g.drawCanvas(screen)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig schedules a configuration change for the next update.
// This allows hot-reloading of configuration without stopping the game loop.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &config
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	g.mu.Lock()
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetTPS(g.config.TargetFPS)
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
