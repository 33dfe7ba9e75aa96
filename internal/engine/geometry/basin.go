package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

// EllipseSegments is the number of edges approximating an oval outline.
const EllipseSegments = 64

// Outline returns the closed boundary of a basin footprint in the
// horizontal plane, counter-clockwise, with X across the width and Y along
// the length. inset shrinks the outline on every side; for ovals both radii
// shrink by inset, which is not a true constant-distance offset.
func Outline(length, width float64, shape pool.Shape, inset float64) []math.Vec2 {
	hw := float32(width/2 - inset)
	hl := float32(length/2 - inset)

	if shape == pool.Oval {
		pts := make([]math.Vec2, EllipseSegments)
		for i := range pts {
			s, c := math32.Sincos(2 * math.Pi * float32(i) / EllipseSegments)
			pts[i] = math.Vec2{X: hw * c, Y: hl * s}
		}
		return pts
	}
	return []math.Vec2{
		{X: -hw, Y: -hl},
		{X: hw, Y: -hl},
		{X: hw, Y: hl},
		{X: -hw, Y: hl},
	}
}

// BuildBasin builds the basin shell: the region between the outer outline
// and the outline inset by the wall thickness, extruded by depth, plus the
// cavity floor. World X spans the width, world Z the length and the solid
// occupies y in [-depth/2, depth/2].
//
// The builder does not validate its arguments; callers clamp first.
func BuildBasin(length, width, depth float64, shape pool.Shape) *Mesh {
	outer := Outline(length, width, shape, 0)
	inner := Outline(length, width, shape, pool.WallThickness)
	top := float32(depth / 2)
	bottom := -top
	smooth := shape == pool.Oval

	m := &Mesh{DoubleSided: true}

	m.addWall(outer, bottom, top, smooth, 1)
	m.addWall(inner, bottom, top, smooth, -1)

	// Rim and underside of the wall ring.
	up := math.Vec3{Y: 1}
	down := math.Vec3{Y: -1}
	n := len(outer)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addQuad(at(outer[i], top), at(outer[j], top), at(inner[j], top), at(inner[i], top), up)
		m.addQuad(at(outer[i], bottom), at(outer[j], bottom), at(inner[j], bottom), at(inner[i], bottom), down)
	}

	// Cavity floor, a fan over the convex inner outline.
	center := m.addVertex(math.Vec3{Y: bottom}, up)
	ring := uint32(len(m.Vertices))
	for _, p := range inner {
		m.addVertex(at(p, bottom), up)
	}
	for i := 0; i < n; i++ {
		m.addTri(center, ring+uint32(i), ring+uint32((i+1)%n), up)
	}

	m.UpdateBounds()
	return m
}

// addWall adds the vertical faces along a closed outline. side is +1 for
// faces looking away from the center and -1 for faces looking into it.
func (m *Mesh) addWall(outline []math.Vec2, bottom, top float32, smooth bool, side float32) {
	n := len(outline)
	edgeNormal := func(i int) math.Vec3 {
		a, b := outline[i], outline[(i+1)%n]
		d := b.Sub(a)
		return math.Vec3{X: d.Y, Z: -d.X}.Normalize().Scale(side)
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		fn := edgeNormal(i)
		na, nb := fn, fn
		if smooth {
			na = edgeNormal((i + n - 1) % n).Add(fn).Normalize()
			nb = fn.Add(edgeNormal(j)).Normalize()
		}
		b0 := m.addVertex(at(outline[i], bottom), na)
		b1 := m.addVertex(at(outline[j], bottom), nb)
		t1 := m.addVertex(at(outline[j], top), nb)
		t0 := m.addVertex(at(outline[i], top), na)
		m.addTri(b0, b1, t1, fn)
		m.addTri(b0, t1, t0, fn)
	}
}

// at lifts an outline point to world space at height y.
func at(p math.Vec2, y float32) math.Vec3 {
	return math.Vec3{X: p.X, Y: y, Z: p.Y}
}
