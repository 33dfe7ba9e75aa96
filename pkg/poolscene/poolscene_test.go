package poolscene

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/pool"
)

var spec = BasinSpec{Length: 10, Width: 5, Depth: 1.5, Shape: Rectangular}

func small() []Option {
	return []Option{WithSize(48, 32), WithShadows(false)}
}

func TestRenderAndCapture(t *testing.T) {
	h, err := RenderPoolScene(spec, Composite, Sunset, small()...)
	require.NoError(t, err)
	assert.Equal(t, Composite, h.Scene().Spec().Material)
	assert.Equal(t, Sunset, h.Scene().Preset())

	data, name, err := CaptureFrame(h, "")
	require.NoError(t, err)
	assert.Equal(t, "pool-rectangular-10x5.png", name)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
	assert.Equal(t, "pool-rectangular-10x5.png", CaptureName(h))
}

func TestCaptureFrameKeepsRequestedName(t *testing.T) {
	h, err := RenderPoolScene(spec, Liner, Night, small()...)
	require.NoError(t, err)

	_, name, err := CaptureFrame(h, "estimate-7.png")
	require.NoError(t, err)
	assert.Equal(t, "estimate-7.png", name)
}

func TestRenderRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"supersample too large", []Option{WithSize(48, 32), WithSupersample(64)}},
		{"supersample zero", []Option{WithSize(48, 32), WithSupersample(0)}},
		{"empty size", []Option{WithSize(0, 32)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPoolScene(spec, Concrete, Day, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}

	_, err := RenderPoolScene(spec, Concrete, Day, WithSize(48, 32), WithShadows(false), WithSupersample(MaxSupersample))
	assert.NoError(t, err)
}

func TestRenderRejectsInvalidSpec(t *testing.T) {
	_, err := RenderPoolScene(BasinSpec{Length: -1, Width: 5, Depth: 1}, Concrete, Day, small()...)
	assert.ErrorIs(t, err, pool.ErrInvalidDimensions)
}

func TestUpdateAndMutators(t *testing.T) {
	h, err := RenderPoolScene(spec, Concrete, Day, small()...)
	require.NoError(t, err)
	basin := h.Scene().Basin()

	rebuilt, err := h.Update(spec, Liner, Night)
	require.NoError(t, err)
	assert.False(t, rebuilt)
	assert.Same(t, basin, h.Scene().Basin())

	SetMaterial(h, Composite)
	SetLightingPreset(h, Day)
	assert.Equal(t, Composite, h.Scene().Spec().Material)
	assert.Equal(t, Day, h.Scene().Preset())

	oval := spec
	oval.Shape = Oval
	rebuilt, err = h.Update(oval, Composite, Day)
	require.NoError(t, err)
	assert.True(t, rebuilt)

	_, err = h.Update(BasinSpec{}, Concrete, Day)
	assert.Error(t, err)
	assert.Equal(t, Oval, h.Scene().Spec().Shape, "rejected updates leave the scene alone")

	require.NoError(t, h.Frame())
	require.NoError(t, h.Resize(24, 16))
	data, _, err := CaptureFrame(h, "after-resize.png")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())
}

func TestPlacement(t *testing.T) {
	counts := equipment.Count(Placement(10, 5, 1.5))
	assert.Equal(t, 3, counts[equipment.Light])
	assert.Equal(t, 1, counts[equipment.Ladder])
	assert.Equal(t, 1, counts[equipment.Skimmer])
	assert.Equal(t, 1, counts[equipment.Filter])
	assert.Equal(t, 1, counts[equipment.Heater])

	assert.Equal(t, 1, equipment.Count(Placement(6, 4, 1.2))[equipment.Light])
}
