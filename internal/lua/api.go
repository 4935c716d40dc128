// Package lua provides Golua integration for go-minipaint.
// This file implements the paint scripting API that drives a session.
package lua

import (
	"fmt"
	"sync"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-minipaint/internal/geom"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/session"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// GlobalName is the Lua global holding the paint functions.
const GlobalName = "paint"

// PaintAPI exposes a session to Lua scripts through the global paint
// table. Coordinates are canvas pixels.
//
//	paint.tool("star")
//	paint.color("#ef4444")       -- or paint.color(239, 68, 68)
//	paint.width(8)
//	paint.stroke(10, 10, 120, 80)
//	local path = paint.save()
type PaintAPI struct {
	runtime *Runtime
	session *session.Session
	mu      sync.Mutex
}

// NewPaintAPI creates a PaintAPI and registers the paint table in runtime.
func NewPaintAPI(runtime *Runtime, s *session.Session) (*PaintAPI, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	if s == nil {
		return nil, ErrNilSession
	}

	api := &PaintAPI{runtime: runtime, session: s}
	api.registerFunctions()
	return api, nil
}

// Session returns the bound session.
func (api *PaintAPI) Session() *session.Session {
	return api.session
}

func (api *PaintAPI) registerFunctions() {
	funcs := []struct {
		name  string
		fn    rt.GoFunctionFunc
		nArgs int
	}{
		{"tool", api.toolLua, 1},
		{"color", api.colorLua, 3},
		{"width", api.widthLua, 1},
		{"down", api.pointerLua(api.session.PointerDown), 2},
		{"move", api.pointerLua(api.session.PointerMove), 2},
		{"up", api.pointerLua(api.session.PointerUp), 2},
		{"stroke", api.strokeLua, 4},
		{"undo", api.undoLua, 0},
		{"redo", api.redoLua, 0},
		{"clear", api.clearLua, 0},
		{"save", api.saveLua, 0},
		{"pixel", api.pixelLua, 2},
		{"size", api.sizeLua, 0},
		{"status", api.statusLua, 0},
	}

	table := rt.NewTable()
	for _, f := range funcs {
		table.Set(rt.StringValue(f.name), NewGoFunction(f.fn, GlobalName+"."+f.name, f.nArgs, false))
	}
	api.runtime.SetGlobal(GlobalName, rt.TableValue(table))
}

// toolLua selects a tool by name and returns its display name.
func (api *PaintAPI) toolLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	name, err := c.StringArg(0)
	if err != nil {
		return nil, fmt.Errorf("paint.tool: %w", err)
	}
	k, err := tool.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("paint.tool: %w", err)
	}

	api.mu.Lock()
	api.session.SelectTool(k)
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.StringValue(k.Title())), nil
}

// colorLua accepts either a color string or three 0-255 channels.
func (api *PaintAPI) colorLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	var col raster.Color
	if c.NArgs() >= 3 {
		var ch [3]uint8
		for i := range ch {
			n, err := c.IntArg(i)
			if err != nil {
				return nil, fmt.Errorf("paint.color: %w", err)
			}
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("paint.color: channel #%d out of range: %d", i+1, n)
			}
			ch[i] = uint8(n)
		}
		col = raster.RGB(ch[0], ch[1], ch[2])
	} else {
		s, err := c.StringArg(0)
		if err != nil {
			return nil, fmt.Errorf("paint.color: %w", err)
		}
		if col, err = raster.ParseColor(s); err != nil {
			return nil, fmt.Errorf("paint.color: %w", err)
		}
	}

	api.mu.Lock()
	api.session.SelectColor(col)
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.StringValue(col.Hex())), nil
}

// widthLua sets the width and returns the clamped value.
func (api *PaintAPI) widthLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	n, err := c.IntArg(0)
	if err != nil {
		return nil, fmt.Errorf("paint.width: %w", err)
	}

	api.mu.Lock()
	api.session.SelectWidth(int(n))
	w := api.session.Style().Width
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(w))), nil
}

func pointArgs(c *rt.GoCont, first int) (geom.Point, error) {
	x, err := c.IntArg(first)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := c.IntArg(first + 1)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(int(x), int(y)), nil
}

// pointerLua adapts a pointer event handler to a Lua function of (x, y).
func (api *PaintAPI) pointerLua(handle func(geom.Point)) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		p, err := pointArgs(c, 0)
		if err != nil {
			return nil, fmt.Errorf("paint: %w", err)
		}

		api.mu.Lock()
		handle(p)
		api.mu.Unlock()
		return c.Next(), nil
	}
}

// strokeLua runs a whole gesture from (x1, y1) to (x2, y2).
func (api *PaintAPI) strokeLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	from, err := pointArgs(c, 0)
	if err != nil {
		return nil, fmt.Errorf("paint.stroke: %w", err)
	}
	to, err := pointArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("paint.stroke: %w", err)
	}

	api.mu.Lock()
	api.session.PointerDown(from)
	api.session.PointerMove(to)
	api.session.PointerUp(to)
	api.mu.Unlock()
	return c.Next(), nil
}

func (api *PaintAPI) undoLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	api.mu.Lock()
	ok := api.session.Undo()
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.BoolValue(ok)), nil
}

func (api *PaintAPI) redoLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	api.mu.Lock()
	ok := api.session.Redo()
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.BoolValue(ok)), nil
}

func (api *PaintAPI) clearLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	api.mu.Lock()
	api.session.Clear()
	api.mu.Unlock()
	return c.Next(), nil
}

// saveLua exports the canvas and returns the written path.
func (api *PaintAPI) saveLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	api.mu.Lock()
	path, err := api.session.Save()
	api.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("paint.save: %w", err)
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(path)), nil
}

// pixelLua returns the committed color at (x, y) as "#rrggbb", or nil
// outside the canvas.
func (api *PaintAPI) pixelLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	p, err := pointArgs(c, 0)
	if err != nil {
		return nil, fmt.Errorf("paint.pixel: %w", err)
	}

	api.mu.Lock()
	buf := api.session.Canvas().Persistent()
	inside := buf.Contains(p.X, p.Y)
	var hex string
	if inside {
		hex = buf.ColorAt(p.X, p.Y).Hex()
	}
	api.mu.Unlock()

	if !inside {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(hex)), nil
}

// sizeLua returns the canvas width and height.
func (api *PaintAPI) sizeLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	cv := api.session.Canvas()
	return c.PushingNext(t.Runtime,
		rt.IntValue(int64(cv.Width())),
		rt.IntValue(int64(cv.Height()))), nil
}

func (api *PaintAPI) statusLua(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	api.mu.Lock()
	st := api.session.Status()
	api.mu.Unlock()
	return c.PushingNext1(t.Runtime, rt.StringValue(st.String())), nil
}
