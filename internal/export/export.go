// Package export writes canvas images to disk as timestamped files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// FilePrefix starts every exported file name.
const FilePrefix = "mini_paint_masterpiece_"

// timestampLayout is YYYYMMDDHHMMSS.
const timestampLayout = "20060102150405"

// ErrUnknownFormat is returned for formats other than png, bmp, tiff and pdf.
var ErrUnknownFormat = errors.New("export: unknown image format")

// Format is an output file format, named by its extension.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{PNG, BMP, TIFF, PDF}

// ParseFormat accepts a format name or extension, with or without a dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case "tif":
		return TIFF, nil
	case PNG, BMP, TIFF, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case PDF:
		return encodePDF(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// encodePDF embeds img as a PNG on a single page of the same size,
// one point per pixel.
func encodePDF(w io.Writer, img image.Image) error {
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	orientation := "P"
	if width > height {
		orientation = "L"
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetCreator("go-minipaint", false)
	p.SetTitle("Mini Paint masterpiece", false)
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("canvas", opts, &raw)
	p.ImageOptions("canvas", 0, 0, width, height, false, opts, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return p.Output(w)
}

// Exporter saves images into Dir under timestamped names.
type Exporter struct {
	// Dir is created on first save if it does not exist.
	Dir    string
	Format Format
	// Now supplies the timestamp; nil means time.Now.
	Now func() time.Time
}

// New returns an Exporter writing format files into dir.
func New(dir string, format Format) *Exporter {
	return &Exporter{Dir: dir, Format: format}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) format() Format {
	if e.Format == "" {
		return PNG
	}
	return e.Format
}

// Name returns the file name for a save at t, before collision handling.
func (e *Exporter) Name(t time.Time) string {
	return FilePrefix + t.Format(timestampLayout) + "." + string(e.format())
}

// Save encodes img into a new file and returns its path. The file is
// written under a temporary name and renamed into place; a second save
// within the same second gets a _1, _2, ... suffix.
func (e *Exporter) Save(img image.Image) (string, error) {
	format, err := ParseFormat(string(e.format()))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(e.Dir, ".minipaint-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := Encode(tmp, img, format); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path, err := e.freePath(e.now())
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename into place: %w", err)
	}
	return path, nil
}

// freePath returns the first unused path for a save at t.
func (e *Exporter) freePath(t time.Time) (string, error) {
	base := strings.TrimSuffix(e.Name(t), "."+string(e.format()))
	ext := "." + string(e.format())

	for n := 0; ; n++ {
		name := base + ext
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", base, n, ext)
		}
		path := filepath.Join(e.Dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
	}
}
