// Package geometry builds triangulated solids: the basin shell and the
// primitive shapes equipment is assembled from.
package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/pkg/math"
)

// Vertex is one mesh vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices    []Vertex
	Indices     []uint32
	DoubleSided bool
	Bounds      Bounds

	// Version is bumped whenever vertex data changes in place so GPU
	// backends know to re-upload.
	Version uint64
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns inverted bounds that any Extend call will replace.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns the bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns the radius of the bounding sphere.
func (b Bounds) Radius() float32 {
	return b.Size().Length() / 2
}

// Transform returns the bounds of the eight transformed corners.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if b.Empty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
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
		out.Extend(m.TransformPoint(c))
	}
	return out
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	p := m.Vertices[i].Position
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Touch marks the vertex data as modified.
func (m *Mesh) Touch() {
	m.Version++
}

// UpdateBounds recomputes Bounds from the vertices.
func (m *Mesh) UpdateBounds() {
	m.Bounds = EmptyBounds()
	for i := range m.Vertices {
		m.Bounds.Extend(m.Position(i))
	}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return &c
}

// Transform returns a copy with positions and normals transformed by t.
func (m *Mesh) Transform(t math.Mat4) *Mesh {
	out := m.Clone()
	nm := t.NormalMatrix()
	for i := range out.Vertices {
		v := &out.Vertices[i]
		p := t.TransformPoint(m.Position(i))
		n := nm.TransformDirection(math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}).Normalize()
		v.Position = p.Array()
		v.Normal = n.Array()
	}
	out.UpdateBounds()
	return out
}

// Append adds the vertices and triangles of other to m.
func (m *Mesh) Append(other *Mesh) {
	if len(m.Vertices) == 0 {
		m.Bounds = other.Bounds
	} else {
		m.Bounds = m.Bounds.Union(other.Bounds)
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// ComputeNormals recomputes smooth vertex normals by accumulating the
// unnormalized face normal of every adjacent triangle, which weights each
// face by its area. It does not allocate.
func (m *Mesh) ComputeNormals() {
	if m == nil || len(m.Vertices) == 0 {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = [3]float32{}
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		e1x, e1y, e1z := p1[0]-p0[0], p1[1]-p0[1], p1[2]-p0[2]
		e2x, e2y, e2z := p2[0]-p0[0], p2[1]-p0[1], p2[2]-p0[2]
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x

		for _, idx := range [3]uint32{i0, i1, i2} {
			n := &m.Vertices[idx].Normal
			n[0] += nx
			n[1] += ny
			n[2] += nz
		}
	}
	for i := range m.Vertices {
		n := &m.Vertices[i].Normal
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l < 1e-12 {
			*n = [3]float32{0, 1, 0}
			continue
		}
		n[0] /= l
		n[1] /= l
		n[2] /= l
	}
}

func (m *Mesh) addVertex(p, n math.Vec3) uint32 {
	m.Vertices = append(m.Vertices, Vertex{Position: p.Array(), Normal: n.Array()})
	return uint32(len(m.Vertices) - 1)
}

// addTri appends a triangle wound counter-clockwise as seen from the side
// the facing vector points to.
func (m *Mesh) addTri(a, b, c uint32, facing math.Vec3) {
	pa, pb, pc := m.Position(int(a)), m.Position(int(b)), m.Position(int(c))
	if pb.Sub(pa).Cross(pc.Sub(pa)).Dot(facing) < 0 {
		b, c = c, b
	}
	m.Indices = append(m.Indices, a, b, c)
}

// addQuad appends the flat quad a-b-c-d (in perimeter order) with normal n.
func (m *Mesh) addQuad(a, b, c, d, n math.Vec3) {
	ia := m.addVertex(a, n)
	ib := m.addVertex(b, n)
	ic := m.addVertex(c, n)
	id := m.addVertex(d, n)
	m.addTri(ia, ib, ic, n)
	m.addTri(ia, ic, id, n)
}

// addGridStrip connects two rings of vertices with the same length,
// orienting each triangle by the normal of its first vertex.
func (m *Mesh) addGridStrip(ringA, ringB uint32, count int) {
	for j := 0; j < count; j++ {
		a := ringA + uint32(j)
		b := ringA + uint32(j+1)
		c := ringB + uint32(j+1)
		d := ringB + uint32(j)
		n := m.vertexNormal(a).Add(m.vertexNormal(c))
		m.addTri(a, b, c, n)
		m.addTri(a, c, d, n)
	}
}

func (m *Mesh) vertexNormal(i uint32) math.Vec3 {
	n := m.Vertices[i].Normal
	return math.Vec3{X: n[0], Y: n[1], Z: n[2]}
}
