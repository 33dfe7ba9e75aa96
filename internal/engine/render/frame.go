// Package render describes a frame independently of the backend that
// draws it.
package render

import (
	"errors"
	"image"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/pkg/math"
)

// ErrNoFrame is returned by Snapshot before anything has been rendered.
var ErrNoFrame = errors.New("no frame rendered")

// Item is one mesh to draw.
type Item struct {
	Name       string
	Mesh       *geometry.Mesh
	Model      math.Mat4
	Appearance material.Appearance
	CastShadow bool
	// Unlit items ignore lights and show their base colour.
	Unlit bool
}

// Frame is everything a backend needs to draw one image.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3

	Items []Item

	Ambient lighting.Ambient
	Sun     lighting.DirectionalLight
	Fill    lighting.DirectionalLight
	// Points are in world space.
	Points []lighting.PointLight

	Background material.Color
	Shadows    bool
}

// ViewProjection returns Projection * View.
func (f *Frame) ViewProjection() math.Mat4 {
	return f.Projection.Mul(f.View)
}

// Opaque returns the items drawn in the depth-writing pass, in order.
func (f *Frame) Opaque() []Item {
	out := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		if !it.Appearance.Transparent() {
			out = append(out, it)
		}
	}
	return out
}

// Blended returns the translucent items, drawn after the opaque ones.
func (f *Frame) Blended() []Item {
	var out []Item
	for _, it := range f.Items {
		if it.Appearance.Transparent() {
			out = append(out, it)
		}
	}
	return out
}

// Backend draws frames into a render target that can be read back.
type Backend interface {
	// Size returns the render target size in pixels.
	Size() (width, height int)
	// Render draws f into the render target.
	Render(f *Frame) error
	// Snapshot returns a copy of the last rendered image, top row first.
	Snapshot() (*image.RGBA, error)
}
