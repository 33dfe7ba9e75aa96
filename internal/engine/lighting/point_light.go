// Package lighting defines the light sources of the pool scene and the
// fixed lighting presets.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 16

// PointLight is an omnidirectional light.
type PointLight struct {
	Position  math.Vec3
	Color     material.Color
	Intensity float32
	Range     float32 // 0 means unlimited reach
	Decay     float32 // 0 disables inverse-power falloff
}

// Attenuation returns the fraction of intensity that reaches distance d.
// A finite Range fades the light smoothly to zero at that distance.
func (l PointLight) Attenuation(d float32) float32 {
	att := float32(1)
	if l.Decay > 0 {
		att = 1 / math32.Max(math32.Pow(d, l.Decay), 0.01)
	}
	if l.Range > 0 {
		r := d / l.Range
		w := 1 - r*r*r*r
		if w <= 0 {
			return 0
		}
		att *= w * w
	}
	return att
}

// Transformed returns the light with its position moved by m.
func (l PointLight) Transformed(m math.Mat4) PointLight {
	l.Position = m.TransformPoint(l.Position)
	return l
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer and returns how many did
// not fit.
func (b *PointLightBuffer) SetLights(lights []PointLight) int {
	b.Clear()
	for i, light := range lights {
		if !b.AddLight(light) {
			return len(lights) - i
		}
	}
	return 0
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		p := light.Position.Array()
		copy(result[i*3:], p[:])
	}
	return result
}

// Colors returns linear colours premultiplied by intensity, flattened for
// GPU upload.
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		c := light.Color.Linear()
		result[i*3+0] = c[0] * light.Intensity
		result[i*3+1] = c[1] * light.Intensity
		result[i*3+2] = c[2] * light.Intensity
	}
	return result
}

// Falloffs returns (range, decay) pairs flattened for GPU upload.
func (b *PointLightBuffer) Falloffs() []float32 {
	result := make([]float32, MaxPointLights*2)
	for i, light := range b.Lights {
		result[i*2+0] = light.Range
		result[i*2+1] = light.Decay
	}
	return result
}
