package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/pkg/math"
)

// Box returns an axis-aligned box centred on the origin.
func Box(w, h, d float32) *Mesh {
	x, y, z := w/2, h/2, d/2
	m := &Mesh{}
	m.addQuad(v(x, -y, -z), v(x, y, -z), v(x, y, z), v(x, -y, z), v(1, 0, 0))
	m.addQuad(v(-x, -y, z), v(-x, y, z), v(-x, y, -z), v(-x, -y, -z), v(-1, 0, 0))
	m.addQuad(v(-x, y, -z), v(-x, y, z), v(x, y, z), v(x, y, -z), v(0, 1, 0))
	m.addQuad(v(-x, -y, z), v(-x, -y, -z), v(x, -y, -z), v(x, -y, z), v(0, -1, 0))
	m.addQuad(v(-x, -y, z), v(x, -y, z), v(x, y, z), v(-x, y, z), v(0, 0, 1))
	m.addQuad(v(x, -y, -z), v(-x, -y, -z), v(-x, y, -z), v(x, y, -z), v(0, 0, -1))
	m.UpdateBounds()
	return m
}

// Plane returns a w by h rectangle in the XY plane facing +Z.
func Plane(w, h float32) *Mesh {
	x, y := w/2, h/2
	m := &Mesh{}
	m.addQuad(v(-x, -y, 0), v(x, -y, 0), v(x, y, 0), v(-x, y, 0), v(0, 0, 1))
	m.UpdateBounds()
	return m
}

// Cylinder returns a capped cylinder or truncated cone along the Y axis,
// centred on the origin.
func Cylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	hh := height / 2
	slope := (radiusBottom - radiusTop) / height
	m := &Mesh{}

	top := uint32(len(m.Vertices))
	for i := 0; i <= segments; i++ {
		s, c := math32.Sincos(2 * math.Pi * float32(i) / float32(segments))
		n := v(s, slope, c).Normalize()
		m.addVertex(v(radiusTop*s, hh, radiusTop*c), n)
	}
	bottom := uint32(len(m.Vertices))
	for i := 0; i <= segments; i++ {
		s, c := math32.Sincos(2 * math.Pi * float32(i) / float32(segments))
		n := v(s, slope, c).Normalize()
		m.addVertex(v(radiusBottom*s, -hh, radiusBottom*c), n)
	}
	m.addGridStrip(top, bottom, segments)

	m.addCap(radiusTop, hh, segments, v(0, 1, 0))
	m.addCap(radiusBottom, -hh, segments, v(0, -1, 0))
	m.UpdateBounds()
	return m
}

func (m *Mesh) addCap(radius, y float32, segments int, n math.Vec3) {
	if radius <= 0 {
		return
	}
	center := m.addVertex(v(0, y, 0), n)
	ring := uint32(len(m.Vertices))
	for i := 0; i < segments; i++ {
		s, c := math32.Sincos(2 * math.Pi * float32(i) / float32(segments))
		m.addVertex(v(radius*s, y, radius*c), n)
	}
	for i := 0; i < segments; i++ {
		m.addTri(center, ring+uint32(i), ring+uint32((i+1)%segments), n)
	}
}

// Torus returns a ring of the given radius around the Z axis, lying in the
// XY plane, with a circular tube cross-section.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	m := &Mesh{}
	rings := make([]uint32, radialSegments+1)
	for j := 0; j <= radialSegments; j++ {
		rings[j] = uint32(len(m.Vertices))
		sv, cv := math32.Sincos(2 * math.Pi * float32(j) / float32(radialSegments))
		for i := 0; i <= tubularSegments; i++ {
			su, cu := math32.Sincos(2 * math.Pi * float32(i) / float32(tubularSegments))
			p := v((radius+tube*cv)*cu, (radius+tube*cv)*su, tube*sv)
			center := v(radius*cu, radius*su, 0)
			m.addVertex(p, p.Sub(center).Normalize())
		}
	}
	for j := 0; j < radialSegments; j++ {
		m.addGridStrip(rings[j], rings[j+1], tubularSegments)
	}
	m.UpdateBounds()
	return m
}

// SphereCap returns the part of a sphere around the +Y pole between polar
// angles 0 and thetaLength, open at its rim.
func SphereCap(radius float32, widthSegments, heightSegments int, thetaLength float32) *Mesh {
	m := &Mesh{}
	rows := make([]uint32, heightSegments+1)
	for y := 0; y <= heightSegments; y++ {
		rows[y] = uint32(len(m.Vertices))
		st, ct := math32.Sincos(thetaLength * float32(y) / float32(heightSegments))
		for x := 0; x <= widthSegments; x++ {
			sp, cp := math32.Sincos(2 * math.Pi * float32(x) / float32(widthSegments))
			n := v(-cp*st, ct, sp*st)
			m.addVertex(n.Scale(radius), n)
		}
	}
	for y := 0; y < heightSegments; y++ {
		m.addGridStrip(rows[y], rows[y+1], widthSegments)
	}
	m.UpdateBounds()
	return m
}

// Tube sweeps a circle of the given radius along a curve, using parallel
// transport frames so the cross-section does not twist. The ends are open.
func Tube(curve *CatmullRom, segments int, radius float32, radialSegments int) *Mesh {
	frames := curve.Frames(segments)
	m := &Mesh{}
	rings := make([]uint32, len(frames))
	for i, f := range frames {
		rings[i] = uint32(len(m.Vertices))
		for j := 0; j <= radialSegments; j++ {
			s, c := math32.Sincos(2 * math.Pi * float32(j) / float32(radialSegments))
			n := f.Normal.Scale(c).Add(f.Binormal.Scale(s)).Normalize()
			m.addVertex(f.Point.Add(n.Scale(radius)), n)
		}
	}
	for i := 0; i+1 < len(rings); i++ {
		m.addGridStrip(rings[i], rings[i+1], radialSegments)
	}
	m.UpdateBounds()
	return m
}

func v(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}
