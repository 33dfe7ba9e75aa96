// Package shadow computes the light-space projection used for sun shadows.
package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/pkg/math"
)

// DefaultResolution is the shadow map size in texels per side.
const DefaultResolution = 2048

// Frustum is the orthographic volume a directional light renders its
// shadow map from, in light view space.
type Frustum struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	Resolution               int
}

// DefaultFrustum covers a 40x40 area up to 50 units from the light.
func DefaultFrustum() Frustum {
	return Frustum{
		Left: -20, Right: 20, Bottom: -20, Top: 20,
		Near: 0.5, Far: 50,
		Resolution: DefaultResolution,
	}
}

// Projection returns the orthographic projection of the frustum.
func (f Frustum) Projection() math.Mat4 {
	return math.Ortho(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
}

// View returns the light view matrix looking from the light position at
// target.
func View(lightPos, target math.Vec3) math.Mat4 {
	up := math.Vec3{Y: 1}
	// Nearly vertical light needs a different up vector.
	if dir := target.Sub(lightPos).Normalize(); math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	return math.LookAt(lightPos, target, up)
}

// LightMatrix returns projection * view for a light at lightPos aimed at
// target.
func (f Frustum) LightMatrix(lightPos, target math.Vec3) math.Mat4 {
	return f.Projection().Mul(View(lightPos, target))
}

// Covers reports whether every corner of b falls inside the frustum seen
// from lightPos toward target.
func (f Frustum) Covers(lightPos, target math.Vec3, b geometry.Bounds) bool {
	m := f.LightMatrix(lightPos, target)
	for _, c := range corners(b) {
		p := m.TransformPoint(c)
		if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 || p.Z < -1 || p.Z > 1 {
			return false
		}
	}
	return true
}

// Fit returns a frustum grown just enough to cover b from lightPos toward
// target. The result is never smaller than f.
func (f Frustum) Fit(lightPos, target math.Vec3, b geometry.Bounds) Frustum {
	if b.Empty() {
		return f
	}
	view := View(lightPos, target)
	out := f
	for _, c := range corners(b) {
		p := view.TransformPoint(c)
		out.Left = math32.Min(out.Left, p.X)
		out.Right = math32.Max(out.Right, p.X)
		out.Bottom = math32.Min(out.Bottom, p.Y)
		out.Top = math32.Max(out.Top, p.Y)
		// View space looks down -Z.
		out.Near = math32.Max(0.01, math32.Min(out.Near, -p.Z))
		out.Far = math32.Max(out.Far, -p.Z)
	}
	return out
}

func corners(b geometry.Bounds) [8]math.Vec3 {
	var out [8]math.Vec3
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out[i] = c
	}
	return out
}
