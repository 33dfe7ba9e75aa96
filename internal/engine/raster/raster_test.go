package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/internal/engine/shadow"
	"github.com/Faultbox/poolviz/pkg/math"
)

func testFrame(w, h int) *render.Frame {
	eye := math.V3(0, 0, 5)
	return &render.Frame{
		View:       math.LookAt(eye, math.Vec3{}, math.V3(0, 1, 0)),
		Projection: math.Perspective(50*math.Pi/180, float32(w)/float32(h), 0.1, 100),
		Eye:        eye,
		Background: material.Hex("#000000"),
		Sun: lighting.DirectionalLight{
			Position: math.V3(0, 0, 10),
			Color:    material.White,
		},
		Fill: lighting.DirectionalLight{
			Position: math.V3(0, 10, 0),
			Color:    material.White,
		},
	}
}

func unlit(name, hex string, model math.Mat4) render.Item {
	return render.Item{
		Name:       name,
		Mesh:       geometry.Plane(4, 4),
		Model:      model,
		Appearance: material.Solid(hex, 1, 0),
		Unlit:      true,
	}
}

func newRenderer(t *testing.T, w, h int) *Renderer {
	t.Helper()
	r, err := New(Options{Width: w, Height: h, ShadowResolution: 256})
	require.NoError(t, err)
	return r
}

func renderAndSnap(t *testing.T, r *Renderer, f *render.Frame) func(x, y int) color.RGBA {
	t.Helper()
	require.NoError(t, r.Render(f))
	img, err := r.Snapshot()
	require.NoError(t, err)
	return func(x, y int) color.RGBA { return img.RGBAAt(x, y) }
}

func TestNewRejectsEmptySize(t *testing.T) {
	_, err := New(Options{Width: 0, Height: 10})
	assert.Error(t, err)
}

func TestNewRejectsOversizedSupersample(t *testing.T) {
	_, err := New(Options{Width: 16, Height: 16, Supersample: MaxSupersample + 1})
	assert.ErrorContains(t, err, "supersample")

	r, err := New(Options{Width: 16, Height: 16, Supersample: MaxSupersample})
	require.NoError(t, err)
	assert.Equal(t, 64, r.color.Bounds().Dx())
}

func TestSnapshotBeforeRender(t *testing.T) {
	r := newRenderer(t, 4, 4)
	_, err := r.Snapshot()
	assert.ErrorIs(t, err, render.ErrNoFrame)
}

func TestRenderNilFrame(t *testing.T) {
	r := newRenderer(t, 4, 4)
	assert.Error(t, r.Render(nil))
}

func TestBackgroundClear(t *testing.T) {
	r := newRenderer(t, 8, 6)
	f := testFrame(8, 6)
	f.Background = material.Hex("#dfe9f3")

	at := renderAndSnap(t, r, f)
	for _, p := range [][2]int{{0, 0}, {7, 5}, {4, 3}} {
		c := at(p[0], p[1])
		assert.InDelta(t, 0xdf, int(c.R), 1)
		assert.InDelta(t, 0xe9, int(c.G), 1)
		assert.InDelta(t, 0xf3, int(c.B), 1)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestUnlitPlaneFillsCentre(t *testing.T) {
	r := newRenderer(t, 32, 24)
	f := testFrame(32, 24)
	f.Items = []render.Item{unlit("red", "#ff0000", math.Identity())}

	at := renderAndSnap(t, r, f)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, at(16, 12))
	assert.Equal(t, color.RGBA{A: 255}, at(0, 0), "corner stays background")
}

func TestDepthOrderIndependentOfSubmission(t *testing.T) {
	red := unlit("red", "#ff0000", math.Identity())
	blue := unlit("blue", "#0000ff", math.Translate(0, 0, 1))

	for _, items := range [][]render.Item{{red, blue}, {blue, red}} {
		r := newRenderer(t, 32, 24)
		f := testFrame(32, 24)
		f.Items = items
		at := renderAndSnap(t, r, f)
		assert.Equal(t, color.RGBA{B: 255, A: 255}, at(16, 12))
	}
}

func TestBlendedItemMixesWithOpaque(t *testing.T) {
	r := newRenderer(t, 32, 24)
	f := testFrame(32, 24)
	glass := unlit("glass", "#0000ff", math.Translate(0, 0, 1))
	glass.Appearance.Opacity = 0.5
	f.Items = []render.Item{glass, unlit("red", "#ff0000", math.Identity())}

	c := renderAndSnap(t, r, f)(16, 12)
	assert.Greater(t, int(c.R), 100)
	assert.Greater(t, int(c.B), 100)
	assert.Less(t, int(c.R), 255)
	assert.Less(t, int(c.B), 255)
	assert.Equal(t, uint8(0), c.G)
}

func TestBackFaceCulling(t *testing.T) {
	away := unlit("away", "#ff0000", math.RotateY(math.Pi))

	r := newRenderer(t, 16, 16)
	f := testFrame(16, 16)
	f.Items = []render.Item{away}
	assert.Equal(t, color.RGBA{A: 255}, renderAndSnap(t, r, f)(8, 8))

	away.Appearance.DoubleSided = true
	f.Items = []render.Item{away}
	assert.Equal(t, color.RGBA{R: 255, A: 255}, renderAndSnap(t, r, f)(8, 8))
}

func TestPlaneCrossingNearPlane(t *testing.T) {
	floor := render.Item{
		Mesh:       geometry.Plane(40, 40),
		Model:      math.Translate(0, -1, 0).Mul(math.RotateX(-math.Pi / 2)),
		Appearance: material.Solid("#00ff00", 1, 0),
		Unlit:      true,
	}
	r := newRenderer(t, 32, 32)
	f := testFrame(32, 32)
	f.Items = []render.Item{floor}

	at := renderAndSnap(t, r, f)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, at(16, 31))
	assert.Equal(t, color.RGBA{A: 255}, at(16, 0))
}

func TestSunLightsFacingSurface(t *testing.T) {
	box := render.Item{
		Mesh:       geometry.Box(2, 2, 2),
		Model:      math.Identity(),
		Appearance: material.Solid("#808080", 1, 0),
	}

	dark := testFrame(32, 24)
	dark.Items = []render.Item{box}
	lit := testFrame(32, 24)
	lit.Items = []render.Item{box}
	lit.Sun.Intensity = 1

	d := renderAndSnap(t, newRenderer(t, 32, 24), dark)(16, 12)
	l := renderAndSnap(t, newRenderer(t, 32, 24), lit)(16, 12)
	assert.Greater(t, int(l.R), int(d.R)+50)
}

func TestEmissiveGlowsWithoutLight(t *testing.T) {
	item := render.Item{
		Mesh:       geometry.Plane(4, 4),
		Model:      math.Identity(),
		Appearance: material.Solid("#000000", 1, 0).Glow("#00ff00", 1),
	}
	f := testFrame(16, 16)
	f.Items = []render.Item{item}

	c := renderAndSnap(t, newRenderer(t, 16, 16), f)(8, 8)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(0), c.R)
}

func TestPointLightFalloff(t *testing.T) {
	wall := render.Item{
		Mesh:       geometry.Plane(4, 4),
		Model:      math.Identity(),
		Appearance: material.Solid("#ffffff", 1, 0),
	}
	f := testFrame(64, 64)
	f.Items = []render.Item{wall}
	f.Points = []lighting.PointLight{{
		Position:  math.V3(0, 0, 0.5),
		Color:     material.White,
		Intensity: 2,
		Range:     2,
		Decay:     2,
	}}

	at := renderAndSnap(t, newRenderer(t, 64, 64), f)
	centre := at(32, 32)
	edge := at(32+20, 32)
	assert.Greater(t, int(centre.R), int(edge.R))
}

func TestSunShadow(t *testing.T) {
	floor := render.Item{
		Mesh:       geometry.Plane(20, 20),
		Model:      math.RotateX(-math.Pi / 2),
		Appearance: material.Solid("#ffffff", 1, 0),
	}
	blocker := render.Item{
		Mesh:       geometry.Box(2, 2, 2),
		Model:      math.Translate(0, 3, 0),
		Appearance: material.Solid("#ffffff", 1, 0),
		CastShadow: true,
	}
	f := testFrame(16, 16)
	f.Items = []render.Item{floor, blocker}
	f.Shadows = true
	f.Sun = lighting.DirectionalLight{
		Position:   math.V3(0, 20, 0),
		Color:      material.White,
		Intensity:  1,
		CastShadow: true,
		Shadow:     shadow.DefaultFrustum(),
	}

	r := newRenderer(t, 16, 16)
	require.NoError(t, r.Render(f))
	assert.Equal(t, 256, r.shadow.res)
	assert.Equal(t, float32(0), r.shadow.visibility(math.V3(0, 0, 0), 1))
	assert.Equal(t, float32(1), r.shadow.visibility(math.V3(8, 0, 8), 1))
	assert.Equal(t, float32(1), r.shadow.visibility(math.V3(100, 0, 0), 1), "outside the map is lit")
}

func TestSupersampleSnapshotSize(t *testing.T) {
	r, err := New(Options{Width: 8, Height: 6, Supersample: 2})
	require.NoError(t, err)
	w, h := r.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 6, h)

	f := testFrame(8, 6)
	f.Items = []render.Item{unlit("red", "#ff0000", math.Identity())}
	require.NoError(t, r.Render(f))

	img, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	assert.Greater(t, int(img.RGBAAt(4, 3).R), 200)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := newRenderer(t, 4, 4)
	require.NoError(t, r.Render(testFrame(4, 4)))

	a, err := r.Snapshot()
	require.NoError(t, err)
	a.SetRGBA(0, 0, color.RGBA{R: 9, A: 255})

	b, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 255}, b.RGBAAt(0, 0))
}

func TestResize(t *testing.T) {
	r := newRenderer(t, 4, 4)
	require.NoError(t, r.Render(testFrame(4, 4)))
	require.NoError(t, r.Resize(10, 5))

	_, err := r.Snapshot()
	assert.ErrorIs(t, err, render.ErrNoFrame)
	w, h := r.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)
	assert.Error(t, r.Resize(-1, 5))
}
