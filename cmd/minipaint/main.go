// Package main provides the entry point for go-minipaint, a small raster
// painting program built on Ebiten with Lua configuration and scripting.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/tdewolff/argp"

	"github.com/opd-ai/go-minipaint/internal/export"
	"github.com/opd-ai/go-minipaint/internal/profiling"
	"github.com/opd-ai/go-minipaint/pkg/minipaint"
)

// Version is the current version of go-minipaint.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// Paint opens the painting window.
type Paint struct {
	Config     string `short:"c" desc:"Configuration file (Lua or rc)"`
	Watch      bool   `short:"w" desc:"Reload the configuration when the file changes"`
	SaveDir    string `name:"save-dir" desc:"Directory for saved images, overrides the configuration"`
	Verbose    bool   `short:"v" desc:"Log debug messages"`
	JSON       bool   `name:"log-json" desc:"Log as JSON"`
	CPUProfile string `name:"cpuprofile" desc:"Write CPU profile to file"`
	MemProfile string `name:"memprofile" desc:"Write memory profile to file"`
}

// Replay runs a Lua paint script headlessly and writes the result.
type Replay struct {
	Config string `short:"c" desc:"Configuration file (Lua or rc)"`
	Output string `short:"o" desc:"Output image; the format follows the extension (png, bmp, tiff, pdf)"`
	Script string `index:"0" desc:"Lua script using the paint table"`
}

// VersionCmd prints the program version.
type VersionCmd struct{}

func main() {
	root := argp.NewCmd(&Paint{}, "Mini Paint: a small raster painting program")
	root.AddCmd(&Replay{}, "replay", "Run a paint script without a window and save the canvas")
	root.AddCmd(&VersionCmd{}, "version", "Print version")
	root.Parse()
	root.PrintHelp()
}

// newLogger picks the log format and level from the flags.
func newLogger(verbose, asJSON bool) minipaint.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if asJSON {
		return minipaint.JSONLogger(os.Stderr, level)
	}
	return minipaint.TextLogger(os.Stderr, level)
}

// newPainter loads path, or the built-in defaults when path is empty.
func newPainter(path string, opts *minipaint.Options) (minipaint.Painter, error) {
	if path == "" {
		return minipaint.NewFromReader(strings.NewReader(""), minipaint.FormatRC, opts)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("error accessing configuration file %s: %w", path, err)
	}
	return minipaint.New(path, opts)
}

func (cmd *Paint) Run() error {
	logger := newLogger(cmd.Verbose, cmd.JSON)
	opts := minipaint.DefaultOptions()
	opts.Logger = logger
	opts.SaveDir = cmd.SaveDir
	opts.WatchConfig = cmd.Watch

	p, err := newPainter(cmd.Config, &opts)
	if err != nil {
		return err
	}

	p.SetErrorHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})
	p.SetEventHandler(func(e minipaint.Event) {
		if e.Type == minipaint.EventSaved {
			fmt.Printf("Canvas saved as %s\n", e.Path)
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading configuration")
				if err := p.ReloadConfig(); err != nil {
					logger.Error("reload failed", "error", err)
				}
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
			if err := p.Stop(); err != nil {
				logger.Error("stop failed", "error", err)
			}
		}
	}()

	profiler := profiling.New(profiling.Config{
		CPUProfilePath: cmd.CPUProfile,
		MemProfilePath: cmd.MemProfile,
	})
	// The window must run on the main goroutine.
	return profiler.Run(p.Run)
}

func (cmd *Replay) Run() error {
	if cmd.Script == "" {
		return argp.ShowUsage
	}
	source, err := os.ReadFile(cmd.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	opts := minipaint.DefaultOptions()
	opts.Headless = true
	opts.Logger = minipaint.NopLogger()
	p, err := newPainter(cmd.Config, &opts)
	if err != nil {
		return err
	}
	if err := p.RunScript(filepath.Base(cmd.Script), string(source)); err != nil {
		return err
	}

	path, err := cmd.write(p)
	if err != nil {
		return err
	}
	fmt.Printf("%s\nCanvas saved as %s\n", p.Status().Canvas, path)
	return nil
}

// write stores the canvas at cmd.Output, or in the configured save
// directory when no output is given.
func (cmd *Replay) write(p minipaint.Painter) (string, error) {
	if cmd.Output == "" {
		var path string
		var err error
		p.WithSession(func(s *minipaint.Session) { path, err = s.Save() })
		return path, err
	}

	format, err := export.FormatFromPath(cmd.Output)
	if err != nil {
		return "", err
	}
	var img image.Image
	p.WithSession(func(s *minipaint.Session) { img = s.Canvas().Snapshot() })

	f, err := os.Create(cmd.Output)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	if err := export.Encode(f, img, format); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output: %w", err)
	}
	return cmd.Output, nil
}

func (cmd *VersionCmd) Run() error {
	fmt.Printf("go-minipaint version %s\n", Version)
	return nil
}
