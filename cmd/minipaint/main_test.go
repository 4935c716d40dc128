package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-minipaint/pkg/minipaint"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplayWritesOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "small.rc", "canvas_width 80\ncanvas_height 60\n")
	script := writeFile(t, dir, "heart.lua", `
paint.tool("heart")
paint.color("#ef4444")
paint.stroke(40, 30, 70, 30)
`)
	out := filepath.Join(dir, "heart.png")

	cmd := &Replay{Config: cfg, Output: out, Script: script}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("image size = %dx%d, want 80x60", b.Dx(), b.Dy())
	}
}

func TestReplaySavesToConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	saves := filepath.Join(dir, "saves")
	cfg := writeFile(t, dir, "small.rc", "canvas_width 20\ncanvas_height 20\nsave_format bmp\nsave_dir "+saves+"\n")
	script := writeFile(t, dir, "dot.lua", `paint.down(5, 5) paint.up(5, 5)`)

	if err := (&Replay{Config: cfg, Script: script}).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	entries, err := os.ReadDir(saves)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".bmp") {
		t.Errorf("save dir holds %v, want one .bmp", entries)
	}
}

func TestReplayErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.lua", `paint.width("wide")`)
	good := writeFile(t, dir, "good.lua", `paint.clear()`)

	tests := []struct {
		name string
		cmd  Replay
	}{
		{"missing script", Replay{Script: filepath.Join(dir, "missing.lua")}},
		{"script error", Replay{Script: bad, Output: filepath.Join(dir, "out.png")}},
		{"unknown output format", Replay{Script: good, Output: filepath.Join(dir, "out.gif")}},
		{"missing config", Replay{Config: filepath.Join(dir, "none.rc"), Script: good}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewPainterDefaults(t *testing.T) {
	opts := minipaint.DefaultOptions()
	opts.Headless = true
	p, err := newPainter("", &opts)
	if err != nil {
		t.Fatalf("newPainter() error = %v", err)
	}
	p.WithSession(func(s *minipaint.Session) {
		if s.Canvas().Width() != 800 || s.Canvas().Height() != 600 {
			t.Errorf("canvas = %dx%d, want 800x600", s.Canvas().Width(), s.Canvas().Height())
		}
	})
}
