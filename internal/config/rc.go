// Package config provides configuration parsing for go-minipaint.
// This file implements the key/value rc parser.

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// RCParser parses minipaintrc files: one "key value" directive per line,
// blank lines and lines starting with # ignored.
type RCParser struct {
	// Strict rejects unknown keys instead of ignoring them.
	Strict bool
}

// NewRCParser creates a new RCParser instance.
func NewRCParser() *RCParser {
	return &RCParser{}
}

// Parse parses rc content into a Config starting from the defaults.
func (p *RCParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			key, value = line[:i], strings.TrimSpace(line[i+1:])
		}
		known, err := applyDirective(&cfg, key, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if !known && p.Strict {
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNum, key)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	return &cfg, nil
}
