package water

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

func TestNewRectangularFootprint(t *testing.T) {
	s := New(10, 5, pool.Rectangular, DefaultOptions())

	assert.Equal(t, 25*25, s.VertexCount())
	assert.Len(t, s.Mesh.Indices, 24*24*6)
	assert.InDelta(t, -2.2, s.Mesh.Bounds.Min.X, 1e-5)
	assert.InDelta(t, 2.2, s.Mesh.Bounds.Max.X, 1e-5)
	assert.InDelta(t, -4.7, s.Mesh.Bounds.Min.Y, 1e-5)
	assert.InDelta(t, 4.7, s.Mesh.Bounds.Max.Y, 1e-5)
}

func TestNewOvalContainment(t *testing.T) {
	for _, dims := range [][2]float64{{10, 5}, {12, 4}, {3, 3}} {
		s := New(dims[0], dims[1], pool.Oval, DefaultOptions())
		a, b := s.RadiusX, s.RadiusY
		for i := 0; i < s.VertexCount(); i++ {
			p := s.Planar(i)
			e := p.X*p.X/(a*a) + p.Y*p.Y/(b*b)
			assert.LessOrEqual(t, e, float32(1+1e-5), "vertex %d of %v", i, dims)
		}
	}
}

func TestOvalClampOnlyMovesOutsideVertices(t *testing.T) {
	rect := New(10, 5, pool.Rectangular, DefaultOptions())
	oval := New(10, 5, pool.Oval, DefaultOptions())

	// The center vertex of the grid is inside the ellipse and untouched.
	center := (DefaultSegments/2)*(DefaultSegments+1) + DefaultSegments/2
	assert.Equal(t, rect.Planar(center), oval.Planar(center))
	assert.InDelta(t, 0, oval.Planar(center).Length(), 1e-5)

	// Corners are pulled onto 99% of the ellipse.
	p := oval.Planar(0)
	e := p.X*p.X/(oval.RadiusX*oval.RadiusX) + p.Y*p.Y/(oval.RadiusY*oval.RadiusY)
	assert.InDelta(t, 0.99*0.99, e, 1e-4)
}

func TestHeightEnvelope(t *testing.T) {
	o := DefaultOptions()
	env := o.Envelope()
	assert.InDelta(t, 0.09, env, 1e-7)
	for x := float32(-10); x <= 10; x += 0.37 {
		for y := float32(-10); y <= 10; y += 0.41 {
			for _, tm := range []float32{0, 0.5, 3.3, 120, 9876.5} {
				assert.LessOrEqual(t, math32.Abs(o.Height(x, y, tm)), env+1e-6)
			}
		}
	}
}

func TestAdvance(t *testing.T) {
	s := New(8, 4, pool.Rectangular, DefaultOptions())
	version := s.Mesh.Version
	capBefore := cap(s.Mesh.Vertices)

	s.Advance(2.5)

	assert.Equal(t, version+1, s.Mesh.Version)
	assert.Equal(t, capBefore, cap(s.Mesh.Vertices))
	assert.Equal(t, float32(2.5), s.Time())
	for i, v := range s.Mesh.Vertices {
		p := s.Planar(i)
		assert.Equal(t, s.Options.Height(p.X, p.Y, 2.5), v.Position[2])
		assert.Equal(t, p.X, v.Position[0])
		n := math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		assert.InDelta(t, 1, n.Length(), 1e-4)
		// Gentle ripples: normals stay close to straight up.
		assert.Greater(t, v.Normal[2], float32(0.9))
	}
}

func TestAdvanceDoesNotAllocate(t *testing.T) {
	s := New(10, 5, pool.Oval, DefaultOptions())
	s.Advance(0)
	allocs := testing.AllocsPerRun(20, func() { s.Advance(1.25) })
	assert.Zero(t, allocs)
}

func TestAdvanceDegenerate(t *testing.T) {
	var nilSurface *Surface
	assert.NotPanics(t, func() { nilSurface.Advance(1) })

	empty := &Surface{}
	assert.NotPanics(t, func() { empty.Advance(1) })
	assert.Zero(t, empty.VertexCount())
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(0.6)
	got := m.TransformPoint(math.Vec3{X: 1, Y: 2, Z: 0.05})
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 0.65, got.Y, 1e-5)
	assert.InDelta(t, -2, got.Z, 1e-5)

	assert.InDelta(t, 0.6, Level(1.5), 1e-6)
}

func TestCustomOptions(t *testing.T) {
	s := New(6, 3, pool.Rectangular, Options{Segments: 4, Amplitude: 0.1, Speed: 1})
	require.Equal(t, 25, s.VertexCount())
	assert.InDelta(t, 0.18, s.Options.Envelope(), 1e-6)

	s = New(6, 3, pool.Rectangular, Options{})
	assert.Equal(t, (DefaultSegments+1)*(DefaultSegments+1), s.VertexCount())
}
