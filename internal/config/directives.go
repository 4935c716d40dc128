package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/raster"
	"github.com/opd-ai/go-minipaint/internal/tool"
)

// setter applies one textual configuration value.
type setter func(cfg *Config, value string) error

// directives maps every configuration key to its setter. The rc and Lua
// parsers share this table, so both formats accept the same keys.
var directives = map[string]setter{
	"canvas_width":     intField(func(c *Config) *int { return &c.Canvas.Width }),
	"canvas_height":    intField(func(c *Config) *int { return &c.Canvas.Height }),
	"background":       colorField(func(c *Config) *raster.Color { return &c.Canvas.Background }),
	"history_capacity": intField(func(c *Config) *int { return &c.History.Capacity }),
	"window_width":     intField(func(c *Config) *int { return &c.Window.Width }),
	"window_height":    intField(func(c *Config) *int { return &c.Window.Height }),
	"title":            stringField(func(c *Config) *string { return &c.Window.Title }),
	"toolbar_width":    intField(func(c *Config) *int { return &c.Window.ToolbarWidth }),
	"header_height":    intField(func(c *Config) *int { return &c.Window.HeaderHeight }),
	"fps":              intField(func(c *Config) *int { return &c.Window.TargetFPS }),
	"show_landing":     boolField(func(c *Config) *bool { return &c.Window.ShowLanding }),
	"color":            colorField(func(c *Config) *raster.Color { return &c.Tools.Color }),
	"width":            intField(func(c *Config) *int { return &c.Tools.Width }),
	"preview_opacity":  intField(func(c *Config) *int { return &c.Tools.PreviewOpacity }),
	"save_dir":         stringField(func(c *Config) *string { return &c.Save.Dir }),
	"tool": func(cfg *Config, v string) error {
		k, err := tool.Parse(v)
		if err != nil {
			return err
		}
		cfg.Tools.Default = k
		return nil
	},
	"save_format": func(cfg *Config, v string) error {
		f, err := export.ParseFormat(v)
		if err != nil {
			return err
		}
		cfg.Save.Format = f
		return nil
	},
	"palette": func(cfg *Config, v string) error {
		p, err := parsePalette(v)
		if err != nil {
			return err
		}
		cfg.Palette = p
		return nil
	},
}

// applyDirective sets key to value. Unknown keys are reported as not
// known and leave cfg unchanged.
func applyDirective(cfg *Config, key, value string) (bool, error) {
	set, ok := directives[strings.ToLower(key)]
	if !ok {
		return false, nil
	}
	if err := set(cfg, value); err != nil {
		return true, fmt.Errorf("invalid %s: %w", key, err)
	}
	return true, nil
}

func intField(field func(*Config) *int) setter {
	return func(cfg *Config, v string) error {
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		*field(cfg) = n
		return nil
	}
}

func boolField(field func(*Config) *bool) setter {
	return func(cfg *Config, v string) error {
		*field(cfg) = parseBool(v)
		return nil
	}
}

func stringField(field func(*Config) *string) setter {
	return func(cfg *Config, v string) error {
		*field(cfg) = strings.TrimSpace(v)
		return nil
	}
}

func colorField(field func(*Config) *raster.Color) setter {
	return func(cfg *Config, v string) error {
		c, err := raster.ParseColor(v)
		if err != nil {
			return err
		}
		*field(cfg) = c
		return nil
	}
}

// parseBool parses a boolean value from common string representations.
// Accepts: yes, no, true, false, 1, 0
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}

// parseInt parses an int, accepting a float value with no fractional part.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// parsePalette parses a comma or whitespace separated list of colors.
func parsePalette(s string) ([]raster.Color, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	palette := make([]raster.Color, 0, len(fields))
	for i, f := range fields {
		c, err := raster.ParseColor(f)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i+1, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}
