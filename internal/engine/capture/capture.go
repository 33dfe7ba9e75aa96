// Package capture turns rendered frames into PNG images and saves them.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/Faultbox/poolviz/internal/pool"
)

var (
	// ErrNoTarget is returned when there is nothing to read pixels from.
	ErrNoTarget = errors.New("capture: no render target")
	// ErrEmptyFrame is returned for zero-sized frames.
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// Image is an encoded capture.
type Image struct {
	// Filename is the suggested name, not a path.
	Filename string
	PNG      []byte
	Width    int
	Height   int
}

// DefaultFilename returns the suggested file name for a capture of spec.
func DefaultFilename(spec pool.BasinSpec) string {
	return spec.Name() + ".png"
}

// Encode compresses img as PNG.
func Encode(img image.Image, filename string) (*Image, error) {
	if img == nil {
		return nil, ErrNoTarget
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyFrame
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return &Image{
		Filename: filename,
		PNG:      buf.Bytes(),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// FromGLPixels converts a bottom-up RGBA read-back into a top-down image.
func FromGLPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyFrame
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	src := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return transform.FlipV(src), nil
}

// Downscale filters img to width x height.
func Downscale(img image.Image, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// Saver writes captures into a directory.
type Saver struct {
	dir    string
	prefix string
}

// NewSaver creates a saver. An empty prefix keeps each capture's own
// filename.
func NewSaver(dir, prefix string) *Saver {
	return &Saver{dir: dir, prefix: prefix}
}

// Dir returns the output directory.
func (s *Saver) Dir() string {
	return s.dir
}

// Filename returns the name a capture is saved under at time now.
func (s *Saver) Filename(img *Image, now time.Time) string {
	name := img.Filename
	if s.prefix != "" {
		name = fmt.Sprintf("%s_%s.png", s.prefix, now.Format("2006-01-02_15-04-05"))
	}
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}

// Save writes img and returns the path it was written to.
func (s *Saver) Save(img *Image) (string, error) {
	if img == nil || len(img.PNG) == 0 {
		return "", ErrEmptyFrame
	}
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := s.Filename(img, time.Now())
	if err := os.WriteFile(path, img.PNG, 0644); err != nil {
		return "", fmt.Errorf("writing capture: %w", err)
	}
	return path, nil
}
