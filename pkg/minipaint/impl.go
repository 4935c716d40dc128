package minipaint

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-minipaint/internal/canvas"
	"github.com/opd-ai/go-minipaint/internal/config"
	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/lua"
	"github.com/opd-ai/go-minipaint/internal/render"
	"github.com/opd-ai/go-minipaint/internal/session"
)

// frontend is the window that owns the session while it is open.
type frontend interface {
	WithSession(fn func(*session.Session))
	SetConfig(cfg render.Config)
}

// painterImpl is the private implementation of the Painter interface.
type painterImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	watchPath    string
	configLoader func() (*config.Config, error)

	// Components
	session  *session.Session
	exporter *export.Exporter
	metrics  *Metrics
	logger   Logger

	// front is set while a window runs; sessMu guards the session otherwise.
	front  frontend
	sessMu sync.Mutex

	// State
	running   atomic.Bool
	startTime time.Time
	lastError atomic.Value // stores error

	// Handlers have their own lock: session events fire while mu is read-held.
	hmu          sync.RWMutex
	errorHandler ErrorHandler
	eventHandler EventHandler

	mu     sync.RWMutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Verify interface implementation at compile time.
var _ Painter = (*painterImpl)(nil)

func newPainter(cfg *config.Config, opts Options, source, watchPath string, loader func() (*config.Config, error)) *painterImpl {
	p := &painterImpl{
		cfg:          cfg,
		opts:         opts,
		configSource: source,
		watchPath:    watchPath,
		configLoader: loader,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
	}
	if p.metrics == nil {
		p.metrics = NewMetrics()
	}
	if p.logger == nil {
		p.logger = NopLogger()
	}

	p.exporter = export.New(p.saveDir(cfg), cfg.Save.Format)
	c := canvas.New(canvas.Config{
		Width:          cfg.Canvas.Width,
		Height:         cfg.Canvas.Height,
		Background:     cfg.Canvas.Background,
		Capacity:       cfg.History.Capacity,
		PreviewOpacity: uint8(cfg.Tools.PreviewOpacity),
	})
	p.session = session.New(c, session.Options{
		Style:   cfg.Style(),
		Saver:   p.exporter,
		Logger:  p.logger,
		OnEvent: p.onSessionEvent,
	})
	return p
}

func (p *painterImpl) saveDir(cfg *config.Config) string {
	if p.opts.SaveDir != "" {
		return p.opts.SaveDir
	}
	return cfg.Save.Dir
}

// renderConfig maps the window section of cfg onto the frame loop settings.
func (p *painterImpl) renderConfig(cfg *config.Config) render.Config {
	rc := render.Config{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Title:        cfg.Window.Title,
		ToolbarWidth: cfg.Window.ToolbarWidth,
		HeaderHeight: cfg.Window.HeaderHeight,
		TargetFPS:    cfg.Window.TargetFPS,
		ShowLanding:  cfg.Window.ShowLanding,
		Palette:      slices.Clone(cfg.Palette),
	}
	if p.opts.WindowTitle != "" {
		rc.Title = p.opts.WindowTitle
	}
	return rc
}

// Run blocks until Stop is called or the window is closed.
func (p *painterImpl) Run() error {
	p.mu.Lock()
	if p.running.Load() {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.startTime = time.Now()
	done := p.done
	// Set running before releasing the lock so a concurrent Run fails.
	p.running.Store(true)
	p.mu.Unlock()

	p.metrics.IncrementStarts()
	p.metrics.SetRunning(true)

	var watcher *configWatcher
	if p.opts.WatchConfig && p.watchPath != "" {
		w, err := newConfigWatcher(p.watchPath, p.opts.WatchDebounce,
			func() { _ = p.ReloadConfig() },
			func(err error) {
				p.notifyError(NewCategorizedError(fmt.Errorf("watch config: %w", err), ErrorCategoryIO))
			},
		)
		if err != nil {
			p.notifyError(NewCategorizedError(fmt.Errorf("watch config: %w", err), ErrorCategoryIO))
		} else {
			watcher = w
			watcher.Start()
		}
	}

	p.logger.Info("painter started", "source", p.configSource, "headless", p.opts.Headless)
	p.emitEvent(EventStarted, "Painter started", "")

	var err error
	if p.opts.Headless {
		<-ctx.Done()
	} else {
		err = p.runRenderLoop(ctx)
	}

	if watcher != nil {
		watcher.Stop()
	}
	cancel()
	p.running.Store(false)
	p.metrics.SetRunning(false)
	p.logger.Info("painter stopped")
	p.emitEvent(EventStopped, "Painter stopped", "")
	close(done)

	if err != nil {
		cerr := NewCategorizedError(fmt.Errorf("render loop: %w", err), ErrorCategoryRender)
		p.notifyError(cerr)
		return cerr
	}
	return nil
}

// Stop ends Run and waits for it to return.
func (p *painterImpl) Stop() error {
	p.mu.RLock()
	cancel, done := p.cancel, p.done
	p.mu.RUnlock()

	if !p.running.Load() || cancel == nil {
		return nil
	}
	cancel()

	timeout := p.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		p.metrics.IncrementStops()
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("shutdown timeout after %v", timeout)
		p.notifyError(NewCategorizedError(err, ErrorCategoryRender))
		return err
	}
}

// ReloadConfig reloads the configuration in place. Canvas size,
// background and history capacity are fixed at construction; changes to
// them are logged and ignored. The current tool, color and width are kept.
func (p *painterImpl) ReloadConfig() error {
	if !p.running.Load() {
		return ErrNotRunning
	}
	if p.configLoader == nil {
		return ErrNoConfigLoader
	}

	newCfg, err := p.configLoader()
	if err != nil {
		cerr := NewCategorizedError(fmt.Errorf("config reload failed: %w", err), ErrorCategoryConfig)
		p.notifyError(cerr)
		return cerr
	}

	p.mu.Lock()
	p.keepFixed(newCfg, p.cfg)
	p.cfg = newCfg
	front := p.front
	p.mu.Unlock()

	p.WithSession(func(s *Session) {
		p.exporter.Dir = p.saveDir(newCfg)
		p.exporter.Format = newCfg.Save.Format
		s.Canvas().SetPreviewOpacity(uint8(newCfg.Tools.PreviewOpacity))
	})
	if front != nil {
		front.SetConfig(p.renderConfig(newCfg))
	}

	p.metrics.IncrementConfigReloads()
	p.logger.Info("configuration reloaded", "source", p.configSource)
	p.emitEvent(EventConfigReloaded, "Configuration reloaded in-place", "")
	return nil
}

// keepFixed copies the settings a live canvas cannot change from old into next.
func (p *painterImpl) keepFixed(next, old *config.Config) {
	if next.Canvas != old.Canvas {
		p.logger.Warn("canvas settings cannot change while running; keeping current values",
			"width", old.Canvas.Width, "height", old.Canvas.Height)
		next.Canvas = old.Canvas
	}
	if next.History != old.History {
		p.logger.Warn("history capacity cannot change while running; keeping current value",
			"capacity", old.History.Capacity)
		next.History = old.History
	}
}

// IsRunning returns true if Run is active.
func (p *painterImpl) IsRunning() bool {
	return p.running.Load()
}

// Status returns detailed status information about the painter.
func (p *painterImpl) Status() Status {
	p.mu.RLock()
	startTime := p.startTime
	configSource := p.configSource
	p.mu.RUnlock()

	var canvasStatus session.Status
	p.WithSession(func(s *Session) { canvasStatus = s.Status() })

	return Status{
		Running:      p.running.Load(),
		StartTime:    startTime,
		Frames:       p.metrics.frames.Load(),
		LastError:    p.getError(),
		ConfigSource: configSource,
		Canvas:       canvasStatus,
	}
}

// WithSession runs fn with exclusive access to the session.
func (p *painterImpl) WithSession(fn func(s *Session)) {
	p.mu.RLock()
	front := p.front
	if front != nil {
		p.mu.RUnlock()
		front.WithSession(fn)
		return
	}

	// Holding mu keeps a window from taking over the session during fn.
	p.sessMu.Lock()
	fn(p.session)
	p.sessMu.Unlock()
	p.mu.RUnlock()
}

// setFrontend hands the session to f, or takes it back when f is nil.
func (p *painterImpl) setFrontend(f frontend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.front = f
}

// RunScript executes source with the paint table bound to the session.
func (p *painterImpl) RunScript(name, source string) error {
	rcfg := lua.DefaultConfig()
	rcfg.Stdout = nil
	if p.opts.LuaCPULimit > 0 {
		rcfg.CPULimit = p.opts.LuaCPULimit
	}
	if p.opts.LuaMemoryLimit > 0 {
		rcfg.MemoryLimit = p.opts.LuaMemoryLimit
	}

	runtime, err := lua.New(rcfg)
	if err != nil {
		return NewCategorizedError(fmt.Errorf("lua runtime: %w", err), ErrorCategoryLua)
	}
	defer runtime.Close()

	start := time.Now()
	var runErr error
	p.WithSession(func(s *Session) {
		if _, err := lua.NewPaintAPI(runtime, s); err != nil {
			runErr = err
			return
		}
		_, runErr = runtime.ExecuteString(name, source)
	})
	elapsed := time.Since(start)
	p.metrics.RecordScript(elapsed, runErr != nil)

	if out := runtime.Output(); out != "" {
		p.logger.Debug("script output", "script", name, "output", out)
	}
	if runErr != nil {
		cerr := NewCategorizedError(fmt.Errorf("script %s: %w", name, runErr), ErrorCategoryLua)
		p.notifyError(cerr)
		return cerr
	}
	p.logger.Debug("script finished", "script", name, "elapsed", elapsed)
	return nil
}

// SetErrorHandler registers a callback for runtime errors.
func (p *painterImpl) SetErrorHandler(handler ErrorHandler) {
	p.hmu.Lock()
	defer p.hmu.Unlock()
	p.errorHandler = handler
}

// SetEventHandler registers a callback for painter events.
func (p *painterImpl) SetEventHandler(handler EventHandler) {
	p.hmu.Lock()
	defer p.hmu.Unlock()
	p.eventHandler = handler
}

// Metrics returns the metrics collector for this painter.
func (p *painterImpl) Metrics() *Metrics {
	return p.metrics
}

// onSessionEvent runs synchronously inside session calls, with the
// session lock held. It must not touch mu or the session.
func (p *painterImpl) onSessionEvent(e session.Event) {
	switch e.Kind {
	case session.EventGestureStarted:
		p.metrics.IncrementGestures()
	case session.EventCommitted:
		p.metrics.IncrementCommits()
	case session.EventUndone:
		p.metrics.IncrementUndos()
	case session.EventRedone:
		p.metrics.IncrementRedos()
	case session.EventCleared:
		p.metrics.IncrementClears()
		p.emitEvent(EventCleared, "Canvas cleared", "")
	case session.EventSaved:
		p.metrics.IncrementSaves()
		p.emitEvent(EventSaved, "Canvas saved as "+e.Path, e.Path)
	case session.EventSaveFailed:
		p.metrics.IncrementSaveErrors()
		p.notifyError(NewCategorizedError(fmt.Errorf("save canvas: %w", e.Err), ErrorCategoryIO))
	}
}

// getError retrieves the last error.
func (p *painterImpl) getError() error {
	if v := p.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// notifyError stores err, invokes the error handler and emits EventError.
func (p *painterImpl) notifyError(err error) {
	p.lastError.Store(err)
	p.metrics.IncrementErrors()

	p.hmu.RLock()
	handler := p.errorHandler
	p.hmu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	p.emitEvent(EventError, err.Error(), "")
}

// emitEvent sends an event to the event handler if configured.
func (p *painterImpl) emitEvent(eventType EventType, message, path string) {
	p.metrics.IncrementEventsEmitted()

	p.hmu.RLock()
	handler := p.eventHandler
	p.hmu.RUnlock()

	if handler == nil {
		return
	}
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Message:   message,
		Path:      path,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("event handler panicked", "panic", r, "event", eventType.String())
			}
		}()
		handler(event)
	}()
}
