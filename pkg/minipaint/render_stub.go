//go:build noebiten

package minipaint

import "context"

// runRenderLoop has no window to show in noebiten builds and behaves
// like headless mode.
func (p *painterImpl) runRenderLoop(ctx context.Context) error {
	p.logger.Warn("built without ebiten; running headless")
	<-ctx.Done()
	return nil
}
