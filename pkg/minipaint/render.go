//go:build !noebiten

package minipaint

import (
	"context"
	"errors"

	"github.com/opd-ai/go-minipaint/internal/render"
)

// runRenderLoop opens the window and runs the Ebiten loop until the
// window is closed or ctx is cancelled.
func (p *painterImpl) runRenderLoop(ctx context.Context) error {
	p.mu.RLock()
	rc := p.renderConfig(p.cfg)
	p.mu.RUnlock()

	game := render.NewGame(rc, p.session)
	game.SetContext(ctx)
	game.SetFrameHook(p.metrics.IncrementFrames)
	// Save failures already arrive through session events.
	game.SetErrorHandler(func(err error) {
		p.logger.Debug("command failed", "error", err)
	})

	p.setFrontend(game)
	defer p.setFrontend(nil)

	err := game.Run()
	if errors.Is(err, render.ErrGameTerminated) {
		return nil
	}
	return err
}
