package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/poolviz/internal/engine/shadow"
	"github.com/Faultbox/poolviz/pkg/math"
)

func TestGetPresets(t *testing.T) {
	tests := []struct {
		preset  Preset
		ambient float32
		sunPos  math.Vec3
		sun     string
		sunI    float32
		fill    string
		fillI   float32
	}{
		{Day, 0.6, math.V3(10, 20, 10), "#ffffff", 1.5, "#e6f2ff", 0.4},
		{Sunset, 0.4, math.V3(15, 8, 5), "#ffaa66", 1.2, "#ff8844", 0.5},
		{Night, 0.2, math.V3(5, 15, 5), "#aaccff", 0.3, "#6688aa", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			r := Get(tt.preset)
			assert.Equal(t, tt.preset, r.Preset)
			assert.Equal(t, tt.ambient, r.Ambient.Intensity)
			assert.Equal(t, tt.sunPos, r.Sun.Position)
			assert.Equal(t, tt.sun, r.Sun.Color.String())
			assert.Equal(t, tt.sunI, r.Sun.Intensity)
			assert.Equal(t, tt.fill, r.Fill.Color.String())
			assert.Equal(t, tt.fillI, r.Fill.Intensity)

			assert.True(t, r.Sun.CastShadow)
			assert.False(t, r.Fill.CastShadow)
			assert.Equal(t, shadow.DefaultFrustum(), r.Sun.Shadow)
			assert.Equal(t, 2048, r.Sun.Shadow.Resolution)
			assert.Equal(t, math.V3(-10, 10, -10), r.Fill.Position)

			assert.Equal(t, float32(0.3), r.Rim.Intensity)
			assert.Equal(t, math.V3(0, 15, 0), r.Rim.Position)
			assert.Equal(t, float32(10), r.Underwater.Range)
			assert.Equal(t, "#00aaff", r.Underwater.Color.String())
			assert.Len(t, r.PointLights(), 2)
		})
	}
}

func TestGetIsIdempotent(t *testing.T) {
	for _, p := range Presets {
		assert.Equal(t, Get(p), Get(p))
	}
}

func TestUnknownPresetFallsBackToDay(t *testing.T) {
	assert.Equal(t, Get(Day), Get(Preset(99)))
	assert.Equal(t, Day, ParsePreset("noon"))
	assert.Equal(t, Sunset, ParsePreset("Sunset"))
	assert.Equal(t, Night, ParsePreset(" night "))
}

func TestSunShadowCoversPool(t *testing.T) {
	r := Get(Sunset)
	dir := r.Sun.Direction()
	assert.InDelta(t, 1, dir.Length(), 1e-6)
	assert.Greater(t, dir.Y, float32(0))

	// A point at the origin projects inside the shadow map.
	p := r.Sun.LightMatrix().TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.Greater(t, p.Z, float32(-1))
	assert.Less(t, p.Z, float32(1))
}

func TestAttenuation(t *testing.T) {
	unlimited := PointLight{Intensity: 1}
	assert.Equal(t, float32(1), unlimited.Attenuation(100))

	fixture := PointLight{Intensity: 2, Range: 4, Decay: 2}
	assert.Zero(t, fixture.Attenuation(4))
	assert.Zero(t, fixture.Attenuation(10))
	assert.Greater(t, fixture.Attenuation(1), fixture.Attenuation(2))
	assert.InDelta(t, 1.0, fixture.Attenuation(1)/((1-1.0/256)*(1-1.0/256)), 1e-5)
}

func TestPointLightBuffer(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights+3; i++ {
		ok := b.AddLight(PointLight{Position: math.V3(float32(i), 0, 0), Intensity: 1})
		assert.Equal(t, i < MaxPointLights, ok)
	}
	assert.Equal(t, MaxPointLights, b.Count)

	assert.Zero(t, b.SetLights(Get(Day).PointLights()))
	assert.Equal(t, 2, b.Count)
	pos := b.Positions()
	assert.Len(t, pos, MaxPointLights*3)
	assert.Equal(t, float32(15), pos[1])
	assert.Equal(t, float32(-1), pos[4])
	falloff := b.Falloffs()
	assert.Equal(t, float32(10), falloff[2])
	colors := b.Colors()
	assert.InDelta(t, 0.3, colors[0], 1e-5)

	many := make([]PointLight, MaxPointLights+2)
	assert.Equal(t, 2, b.SetLights(many))
	assert.Equal(t, MaxPointLights, b.Count)
	assert.Len(t, b.Lights, MaxPointLights)
}
