// Package config provides configuration parsing for go-minipaint.
// This file implements the Lua configuration parser.

package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-minipaint/internal/raster"
)

// Resource limits applied while a configuration script runs.
const (
	luaCPULimit    = 10_000_000
	luaMemoryLimit = 50 * 1024 * 1024 // 50 MB
)

// LuaConfigParser parses Lua configuration files. The script fills the
// minipaint.config table with the same keys an rc file uses and may set
// minipaint.palette to a list of colors.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output
// for print calls made by the script.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes content and extracts the configuration it assigns.
// A script that exceeds the CPU or memory limit fails with an error.
func (p *LuaConfigParser) Parse(content []byte) (cfg *Config, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// golua panics when a hard limit is reached.
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("lua configuration aborted: %v", r)
		}
	}()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    luaCPULimit,
			Memory: luaMemoryLimit,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal resets the minipaint global table before each parse.
func (p *LuaConfigParser) initGlobal() {
	root := rt.NewTable()
	root.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("minipaint"), rt.TableValue(root))
}

// extractConfig reads minipaint.config and minipaint.palette.
func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	rootVal := p.runtime.GlobalEnv().Get(rt.StringValue("minipaint"))
	if rootVal == rt.NilValue {
		return &cfg, nil
	}
	root, ok := rootVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("minipaint is not a table")
	}

	if table, ok := root.Get(rt.StringValue("config")).TryTable(); ok {
		if err := extractConfigTable(&cfg, table); err != nil {
			return nil, err
		}
	}

	if val := root.Get(rt.StringValue("palette")); val != rt.NilValue {
		table, ok := val.TryTable()
		if !ok {
			return nil, fmt.Errorf("minipaint.palette is not a table")
		}
		palette, err := tablePalette(table)
		if err != nil {
			return nil, fmt.Errorf("invalid minipaint.palette: %w", err)
		}
		cfg.Palette = palette
	}

	return &cfg, nil
}

// extractConfigTable applies every known key present in table. Keys are
// visited in sorted order so the first reported error is stable.
func extractConfigTable(cfg *Config, table *rt.Table) error {
	keys := make([]string, 0, len(directives))
	for k := range directives {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		val := table.Get(rt.StringValue(key))
		if val == rt.NilValue {
			continue
		}

		if key == "palette" {
			if t, ok := val.TryTable(); ok {
				palette, err := tablePalette(t)
				if err != nil {
					return fmt.Errorf("invalid palette: %w", err)
				}
				cfg.Palette = palette
				continue
			}
		}

		s, ok := scalarString(val)
		if !ok {
			return fmt.Errorf("invalid %s: unsupported Lua value", key)
		}
		if _, err := applyDirective(cfg, key, s); err != nil {
			return err
		}
	}
	return nil
}

// tablePalette reads an array of colors. Entries are color strings or
// {r, g, b} triples.
func tablePalette(table *rt.Table) ([]raster.Color, error) {
	var palette []raster.Color
	for i := int64(1); ; i++ {
		val := table.Get(rt.IntValue(i))
		if val == rt.NilValue {
			break
		}
		c, err := tableColor(val)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}

func tableColor(val rt.Value) (raster.Color, error) {
	if s, ok := val.TryString(); ok {
		return raster.ParseColor(s)
	}
	t, ok := val.TryTable()
	if !ok {
		return raster.Color{}, fmt.Errorf("expected a color string or {r, g, b}")
	}
	var ch [3]uint8
	for i := range ch {
		n := getTableInt(t, int64(i+1))
		if n == nil || *n < 0 || *n > 255 {
			return raster.Color{}, fmt.Errorf("channel %d must be an integer in 0..255", i+1)
		}
		ch[i] = uint8(*n)
	}
	return raster.RGB(ch[0], ch[1], ch[2]), nil
}

// scalarString renders a Lua string, number or boolean as directive text.
func scalarString(val rt.Value) (string, bool) {
	if s, ok := val.TryString(); ok {
		return s, true
	}
	if n, ok := val.TryInt(); ok {
		return strconv.FormatInt(n, 10), true
	}
	if f, ok := val.TryFloat(); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	if b, ok := val.TryBool(); ok {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// getTableInt retrieves an integer at an array index.
// Returns nil if the index is missing or not a number.
func getTableInt(table *rt.Table, index int64) *int {
	val := table.Get(rt.IntValue(index))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Try float conversion (truncate)
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}
