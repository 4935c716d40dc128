// Package minipaint provides the public API for embedding the go-minipaint
// drawing application. It owns one canvas session built from a
// configuration and runs it either in an Ebiten window or headless.
//
// # Basic Usage
//
//	p, err := minipaint.New("/path/to/minipaint.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Run(); err != nil { // blocks until the window closes
//		log.Fatal(err)
//	}
//
// Run must be called from the main goroutine when a window is shown.
//
// # Configuration Sources
//
//   - Disk file: Use [New] to load from a filesystem path
//   - Embedded FS: Use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: Use [NewFromReader] with [FormatLua] or [FormatRC]
//
// A disk configuration can be watched for changes with Options.WatchConfig.
// Palette, save settings, preview opacity and window settings are applied
// in place; the canvas size and history capacity stay fixed.
//
// # Driving the canvas
//
// The session is shared with the frame loop, so it is only reachable
// through [Painter.WithSession]:
//
//	p.WithSession(func(s *minipaint.Session) {
//		s.SelectTool(minipaint.Star)
//		s.PointerDown(minipaint.Point{X: 100, Y: 100})
//		s.PointerUp(minipaint.Point{X: 180, Y: 100})
//	})
//
// Lua scripts using the paint table can be run with [Painter.RunScript].
//
// # Events and Errors
//
// Event and error handlers are called asynchronously; do not block in them.
// Errors passed to the error handler are [*CategorizedError] values.
//
// # Headless Mode
//
// With Options.Headless, Run blocks until Stop is called and no window is
// created. Builds with the noebiten tag are always headless.
package minipaint
