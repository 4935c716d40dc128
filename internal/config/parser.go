// Package config provides configuration parsing for go-minipaint.
// This file implements the unified parser that auto-detects the configuration format.

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Format names accepted by ParseReader.
const (
	FormatLua = "lua"
	FormatRC  = "rc"
)

// Parser provides a unified interface for parsing configuration files.
// It detects whether content is a Lua script or an rc file, then expands
// environment variables in string values.
type Parser struct {
	rcParser  *RCParser
	luaParser *LuaConfigParser
}

// NewParser creates a new Parser that can handle both rc and Lua configurations.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		rcParser:  NewRCParser(),
		luaParser: luaParser,
	}, nil
}

// ParseFile reads and parses a configuration file, auto-detecting the format.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return p.Parse(content)
}

// Parse parses configuration content, auto-detecting the format.
func (p *Parser) Parse(content []byte) (*Config, error) {
	if isLuaConfig(content) {
		return p.parseWith(p.luaParser.Parse, content)
	}
	return p.parseWith(p.rcParser.Parse, content)
}

func (p *Parser) parseWith(parse func([]byte) (*Config, error), content []byte) (*Config, error) {
	cfg, err := parse(content)
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// luaConfigPattern matches an assignment to minipaint.config or
// minipaint.palette at the start of a line, which marks a Lua configuration.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*minipaint\.(config|palette)\s*=`)

// isLuaConfig determines if the content is a Lua configuration.
func isLuaConfig(content []byte) bool {
	return luaConfigPattern.Match(content)
}

// ParseFromFS reads and parses a configuration file from a filesystem.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
// The format parameter must be "rc" or "lua".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch format {
	case FormatLua:
		return p.parseWith(p.luaParser.Parse, content)
	case FormatRC:
		return p.parseWith(p.rcParser.Parse, content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'rc')", format)
	}
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
