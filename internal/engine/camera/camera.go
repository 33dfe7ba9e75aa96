// Package camera provides the orbit camera used to inspect the pool.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Settings are the tunable limits of an OrbitCamera.
type Settings struct {
	FOV             float32 // vertical field of view, degrees
	MinDistance     float32
	MaxDistance     float32
	MaxPolarAngle   float32 // radians from straight up; Pi/2 keeps the camera above the horizon
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32
	FrameDuration   float32 // seconds spent easing toward a new framing
}

// DefaultSettings matches the pool viewer: 50 degree lens, distance kept
// between 5 and 30 and never below the horizon.
func DefaultSettings() Settings {
	return Settings{
		FOV:             50,
		MinDistance:     5,
		MaxDistance:     30,
		MaxPolarAngle:   math.Pi / 2,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
		FrameDuration:   0.6,
	}
}

// DefaultEye is the initial camera position.
var DefaultEye = math.V3(15, 10, 15)

// maxPitch keeps the view direction off the vertical so LookAt stays
// defined.
const maxPitch = 1.55

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (elevation above the horizon, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	Settings Settings
	Near     float32
	Far      float32

	framing [4]*gween.Tween
}

// NewOrbitCamera creates an orbit camera at DefaultEye looking at the
// origin.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{
		Settings: s,
		Near:     0.1,
		Far:      200,
	}
	c.LookFrom(DefaultEye, math.Vec3{})
	return c
}

// minPitch is the lowest allowed elevation implied by MaxPolarAngle.
func (c *OrbitCamera) minPitch() float32 {
	return math.Pi/2 - c.Settings.MaxPolarAngle
}

// LookFrom places the camera at eye looking at target, clamped to limits.
func (c *OrbitCamera) LookFrom(eye, target math.Vec3) {
	d := eye.Sub(target)
	c.Center = target
	c.Distance = d.Length()
	if c.Distance > 0 {
		c.RotationX = math32.Asin(d.Y / c.Distance)
		c.RotationY = math32.Atan2(d.X, d.Z)
	}
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)
	return c.Center.Add(math.V3(cp*sy, sp, cp*cy).Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.Settings.FOV*math.Pi/180, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.framing = [4]*gween.Tween{}
	c.RotationY -= deltaX * c.Settings.DragSensitivity
	c.RotationX += deltaY * c.Settings.DragSensitivity
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.framing = [4]*gween.Tween{}
	c.Distance -= delta * c.Distance * c.Settings.ZoomSensitivity
	c.clamp()
}

// HandlePan moves the center in the view plane by a screen-space delta.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	c.framing = [4]*gween.Tween{}
	forward := c.Center.Sub(c.Position()).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.Settings.PanSensitivity
	c.Center = c.Center.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// Apply replaces the settings and pulls the camera back inside the new
// limits.
func (c *OrbitCamera) Apply(s Settings) {
	c.Settings = s
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	c.Distance = math32.Max(c.Settings.MinDistance, math32.Min(c.Settings.MaxDistance, c.Distance))
	c.RotationX = math32.Max(c.minPitch(), math32.Min(maxPitch, c.RotationX))
}

// FitToBounds starts easing the camera toward a framing of b: centered on
// the box and far enough back for the whole box to fit the field of view.
func (c *OrbitCamera) FitToBounds(b geometry.Bounds) {
	if b.Empty() {
		return
	}
	target := b.Center()
	half := c.Settings.FOV * math.Pi / 360
	dist := b.Radius() / math32.Sin(half)
	dist = math32.Max(c.Settings.MinDistance, math32.Min(c.Settings.MaxDistance, dist))

	d := c.Settings.FrameDuration
	if d <= 0 {
		c.framing = [4]*gween.Tween{}
		c.Center = target
		c.Distance = dist
		return
	}
	fn := ease.OutCubic
	c.framing[0] = gween.New(c.Center.X, target.X, d, fn)
	c.framing[1] = gween.New(c.Center.Y, target.Y, d, fn)
	c.framing[2] = gween.New(c.Center.Z, target.Z, d, fn)
	c.framing[3] = gween.New(c.Distance, dist, d, fn)
}

// Framing reports whether a FitToBounds transition is in progress.
func (c *OrbitCamera) Framing() bool {
	return c.framing[0] != nil
}

// Update advances any framing transition by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.framing[0] == nil {
		return
	}
	var vals [4]float32
	done := true
	for i, tw := range c.framing {
		v, finished := tw.Update(dt)
		vals[i] = v
		if !finished {
			done = false
		}
	}
	c.Center = math.V3(vals[0], vals[1], vals[2])
	c.Distance = vals[3]
	c.clamp()
	if done {
		c.framing = [4]*gween.Tween{}
	}
}
