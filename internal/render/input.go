//go:build !noebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput polls the mouse and keyboard through Ebiten. Ctrl or Cmd
// combined with Z, Y or S produce the undo, redo and save shortcuts.
type EbitenInput struct{}

// Poll implements Input.
func (EbitenInput) Poll() InputState {
	x, y := ebiten.CursorPosition()
	mod := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	return InputState{
		X:           x,
		Y:           y,
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Undo:        mod && inpututil.IsKeyJustPressed(ebiten.KeyZ),
		Redo:        mod && inpututil.IsKeyJustPressed(ebiten.KeyY),
		Save:        mod && inpututil.IsKeyJustPressed(ebiten.KeyS),
		Escape:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}
