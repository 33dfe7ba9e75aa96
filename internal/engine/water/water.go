// Package water builds the animated water surface that fills a basin and
// advances its closed-form ripple every frame.
package water

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Default surface parameters.
const (
	DefaultSegments  = 24
	DefaultAmplitude = 0.05
	DefaultSpeed     = 0.5

	// ovalInset pulls clamped oval vertices just inside the boundary.
	ovalInset = 0.99
)

// Options tunes the surface resolution and ripple.
type Options struct {
	Segments  int     // grid cells per axis
	Amplitude float32 // A, height of the primary wave
	Speed     float32 // S, phase speed of the primary wave
}

// DefaultOptions returns the standard ripple settings.
func DefaultOptions() Options {
	return Options{
		Segments:  DefaultSegments,
		Amplitude: DefaultAmplitude,
		Speed:     DefaultSpeed,
	}
}

// Surface is a grid mesh over the basin interior whose vertex heights
// follow Height at the last time passed to Advance.
//
// Mesh positions are in surface space: (x, y) in the plane with x across
// the width and y along the length, and the wave height in z. ModelMatrix
// lays the surface into the scene.
type Surface struct {
	Mesh    *geometry.Mesh
	Options Options

	// RadiusX and RadiusY are the half extents of the interior footprint.
	RadiusX, RadiusY float32
	Shape            pool.Shape

	// planar holds the rest position of each vertex.
	planar []math.Vec2
	time   float32
}

// New builds a flat surface for a basin of the given outer dimensions.
// The grid spans the footprint minus the wall on both sides; for ovals any
// vertex outside the interior ellipse is moved onto 99% of it.
func New(length, width float64, shape pool.Shape, opts Options) *Surface {
	if opts.Segments < 1 {
		opts.Segments = DefaultSegments
	}
	rx := float32(width/2 - pool.WallThickness)
	ry := float32(length/2 - pool.WallThickness)

	n := opts.Segments
	count := (n + 1) * (n + 1)
	s := &Surface{
		Options: opts,
		RadiusX: rx,
		RadiusY: ry,
		Shape:   shape,
		planar:  make([]math.Vec2, 0, count),
		Mesh: &geometry.Mesh{
			Vertices:    make([]geometry.Vertex, 0, count),
			Indices:     make([]uint32, 0, n*n*6),
			DoubleSided: true,
		},
	}

	for row := 0; row <= n; row++ {
		y := ry - 2*ry*float32(row)/float32(n)
		for col := 0; col <= n; col++ {
			x := -rx + 2*rx*float32(col)/float32(n)
			if shape == pool.Oval && rx > 0 && ry > 0 && x*x/(rx*rx)+y*y/(ry*ry) > 1 {
				angle := math32.Atan2(y, x)
				sin, cos := math32.Sincos(angle)
				x = cos * rx * ovalInset
				y = sin * ry * ovalInset
			}
			s.planar = append(s.planar, math.Vec2{X: x, Y: y})
			s.Mesh.Vertices = append(s.Mesh.Vertices, geometry.Vertex{
				Position: [3]float32{x, y, 0},
				Normal:   [3]float32{0, 0, 1},
			})
		}
	}

	stride := uint32(n + 1)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			a := uint32(row)*stride + uint32(col)
			b := a + stride
			c := b + 1
			d := a + 1
			// Rows run from +y to -y, so a-b-d is counter-clockwise seen
			// from +z.
			s.Mesh.Indices = append(s.Mesh.Indices, a, b, d, b, c, d)
		}
	}
	s.Mesh.UpdateBounds()
	return s
}

// Height evaluates the ripple at planar position (x, y) and time t seconds.
func (o Options) Height(x, y, t float32) float32 {
	a, sp := o.Amplitude, o.Speed
	return a*math32.Sin(0.5*x+t*sp) +
		0.5*a*math32.Sin(0.3*y+t*0.7*sp) +
		0.3*a*math32.Sin(0.2*(x+y)+t*1.3*sp)
}

// Envelope is the largest possible |Height|, the sum of the three wave
// amplitudes.
func (o Options) Envelope() float32 {
	return 1.8 * math32.Abs(o.Amplitude)
}

// Advance sets every vertex height for time t (seconds since the scene
// started) and recomputes normals. It reuses the existing buffers and is a
// no-op on a nil or empty surface.
func (s *Surface) Advance(t float32) {
	if s == nil || s.Mesh == nil || len(s.Mesh.Vertices) == 0 || len(s.planar) != len(s.Mesh.Vertices) {
		return
	}
	for i, p := range s.planar {
		s.Mesh.Vertices[i].Position[2] = s.Options.Height(p.X, p.Y, t)
	}
	s.Mesh.ComputeNormals()
	s.Mesh.Bounds.Min.Z = -s.Options.Envelope()
	s.Mesh.Bounds.Max.Z = s.Options.Envelope()
	s.time = t
	s.Mesh.Touch()
}

// Time returns the time of the last Advance.
func (s *Surface) Time() float32 {
	if s == nil {
		return 0
	}
	return s.time
}

// VertexCount returns the number of grid vertices.
func (s *Surface) VertexCount() int {
	if s == nil {
		return 0
	}
	return s.Mesh.VertexCount()
}

// Planar returns the rest position of vertex i.
func (s *Surface) Planar(i int) math.Vec2 {
	return s.planar[i]
}

// Level returns the resting height of the surface for a basin of the given
// depth.
func Level(depth float64) float32 {
	return float32(pool.WaterLevel(depth))
}

// ModelMatrix places the surface at the given height: planar (x, y, h) goes
// to world (x, level+h, -y).
func ModelMatrix(level float32) math.Mat4 {
	return math.Translate(0, level, 0).Mul(math.RotateX(-math.Pi / 2))
}
