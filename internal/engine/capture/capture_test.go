package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/pool"
)

func TestDefaultFilename(t *testing.T) {
	spec := pool.BasinSpec{Length: 10, Width: 5, Depth: 1.5, Shape: pool.Rectangular}
	assert.Equal(t, "pool-rectangular-10x5.png", DefaultFilename(spec))

	spec.Shape = pool.Oval
	spec.Length = 8.5
	assert.Equal(t, "pool-oval-8.5x5.png", DefaultFilename(spec))
}

func TestEncodeProducesValidPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img, err := Encode(src, "shot.png")
	require.NoError(t, err)
	assert.Equal(t, "shot.png", img.Filename)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)

	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
	r, g, b, _ := decoded.At(2, 1).RGBA()
	assert.Equal(t, uint32(10), r>>8)
	assert.Equal(t, uint32(20), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil, "x.png")
	assert.ErrorIs(t, err, ErrNoTarget)

	_, err = Encode(image.NewRGBA(image.Rect(0, 0, 0, 0)), "x.png")
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestFromGLPixelsFlipsRows(t *testing.T) {
	// Two rows, bottom row first as GL returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img, err := FromGLPixels(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 1))

	_, err = FromGLPixels(pixels, 3, 2)
	assert.Error(t, err)
	_, err = FromGLPixels(nil, 0, 2)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	out := Downscale(src, 4, 4)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assert.InDelta(t, 200, int(out.RGBAAt(2, 2).R), 1)
}

func TestSaverWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	s := NewSaver(dir, "")
	img := &Image{Filename: "pool-oval-8x4.png", PNG: []byte{1, 2, 3}}

	path, err := s.Save(img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pool-oval-8x4.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.PNG, data)
}

func TestSaverPrefix(t *testing.T) {
	s := NewSaver("", "poolviz")
	now := time.Date(2026, 10, 19, 14, 3, 9, 0, time.UTC)
	name := s.Filename(&Image{Filename: "ignored.png"}, now)
	assert.Equal(t, "poolviz_2026-10-19_14-03-09.png", name)
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestSaverRejectsEmpty(t *testing.T) {
	_, err := NewSaver(t.TempDir(), "").Save(&Image{})
	assert.ErrorIs(t, err, ErrEmptyFrame)
}
