//go:build !noebiten

package render

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-minipaint/internal/canvas"
	"github.com/opd-ai/go-minipaint/internal/session"
)

// mockTextRenderer implements TextRendererInterface for testing
type mockTextRenderer struct {
	mu            sync.Mutex
	drawTextCalls int
	fontSize      float64
}

func (m *mockTextRenderer) DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawTextCalls++
}

func (m *mockTextRenderer) MeasureText(textStr string) (width, height float64) {
	return float64(len(textStr)) * 10, 16
}

func (m *mockTextRenderer) LineHeight() float64 { return m.fontSize * 1.2 }

func (m *mockTextRenderer) SetFontSize(size float64) { m.fontSize = size }

func (m *mockTextRenderer) FontSize() float64 { return m.fontSize }

// scriptedInput replays a fixed list of frames, then reports idle input.
type scriptedInput struct {
	frames []InputState
}

func (s *scriptedInput) Poll() InputState {
	if len(s.frames) == 0 {
		return InputState{}
	}
	in := s.frames[0]
	s.frames = s.frames[1:]
	return in
}

func newTestGame(t *testing.T, frames ...InputState) (*Game, *mockTextRenderer) {
	t.Helper()
	cfg := canvas.DefaultConfig()
	cfg.Width, cfg.Height = 200, 150
	s := session.New(canvas.New(cfg), session.Options{})

	rc := DefaultConfig()
	rc.Width, rc.Height = 700, 800
	rc.ShowLanding = false
	text := &mockTextRenderer{fontSize: 14}
	return NewGameWithInput(rc, s, &scriptedInput{frames: frames}, text, text), text
}

func TestGameUpdateDrivesSession(t *testing.T) {
	game, _ := newTestGame(t,
		InputState{X: 400, Y: 130, Pressed: true, JustPressed: true},
		InputState{X: 420, Y: 140, Pressed: true},
		InputState{X: 420, Y: 140},
	)

	for i := 0; i < 3; i++ {
		if err := game.Update(); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	if game.Frames() != 3 {
		t.Errorf("frames = %d, want 3", game.Frames())
	}
	game.WithSession(func(s *session.Session) {
		if n := s.Canvas().History().Len(); n != 2 {
			t.Errorf("history length = %d, want 2", n)
		}
	})
}

func TestGameContextCancellation(t *testing.T) {
	game, _ := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	game.SetContext(ctx)

	if err := game.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	cancel()
	if err := game.Update(); !errors.Is(err, ErrGameTerminated) {
		t.Errorf("Update() error = %v, want ErrGameTerminated", err)
	}
}

func TestGameSetConfigAppliesOnUpdate(t *testing.T) {
	game, _ := newTestGame(t)

	cfg := game.Config()
	cfg.Width, cfg.Height = 900, 850
	cfg.ShowLanding = true
	game.SetConfig(cfg)

	if w, _ := game.Layout(0, 0); w != 700 {
		t.Errorf("config applied before update: width %d", w)
	}
	if err := game.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if w, h := game.Layout(0, 0); w != 900 || h != 850 {
		t.Errorf("Layout() = %dx%d, want 900x850", w, h)
	}
	// A reload keeps the current view.
	if game.View() != ViewEditor {
		t.Errorf("view = %v, want editor", game.View())
	}
}

func TestGameFrameHook(t *testing.T) {
	game, _ := newTestGame(t)
	calls := 0
	game.SetFrameHook(func() { calls++ })

	for i := 0; i < 5; i++ {
		_ = game.Update()
	}
	if calls != 5 {
		t.Errorf("hook calls = %d, want 5", calls)
	}
}

func TestGameErrorHandler(t *testing.T) {
	game, _ := newTestGame(t, InputState{Save: true})

	var got error
	game.SetErrorHandler(func(err error) { got = err })
	if err := game.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !errors.Is(got, session.ErrNoSaver) {
		t.Errorf("handler error = %v, want ErrNoSaver", got)
	}
}

func TestGameDraw(t *testing.T) {
	game, text := newTestGame(t)
	screen := ebiten.NewImage(700, 800)

	game.Draw(screen)
	if text.drawTextCalls == 0 {
		t.Error("editor view drew no text")
	}

	game.ctrl.leaveEditor()
	before := text.drawTextCalls
	game.Draw(screen)
	if text.drawTextCalls == before {
		t.Error("landing view drew no text")
	}
	if game.backdrop == nil {
		t.Error("landing view should build its backdrop")
	}
}

func TestGameIsRunning(t *testing.T) {
	game, _ := newTestGame(t)
	if game.IsRunning() {
		t.Error("game should not be running before Run")
	}
}
