package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/pkg/math"
)

// CatmullRom is an open centripetal Catmull-Rom spline through its control
// points. The end segments use mirrored phantom points.
type CatmullRom struct {
	Points []math.Vec3
}

// NewCatmullRom returns a spline through pts.
func NewCatmullRom(pts ...math.Vec3) *CatmullRom {
	return &CatmullRom{Points: pts}
}

// Point evaluates the curve at t in [0, 1].
func (c *CatmullRom) Point(t float32) math.Vec3 {
	n := len(c.Points)
	switch n {
	case 0:
		return math.Vec3{}
	case 1:
		return c.Points[0]
	}

	t = math32.Max(0, math32.Min(1, t))
	p := float32(n-1) * t
	seg := int(math32.Floor(p))
	if seg >= n-1 {
		seg = n - 2
	}
	w := p - float32(seg)

	p1 := c.Points[seg]
	p2 := c.Points[seg+1]
	var p0, p3 math.Vec3
	if seg > 0 {
		p0 = c.Points[seg-1]
	} else {
		p0 = p1.Scale(2).Sub(p2)
	}
	if seg+2 < n {
		p3 = c.Points[seg+2]
	} else {
		p3 = p2.Scale(2).Sub(p1)
	}

	dt0 := math32.Pow(p0.Sub(p1).Dot(p0.Sub(p1)), 0.25)
	dt1 := math32.Pow(p1.Sub(p2).Dot(p1.Sub(p2)), 0.25)
	dt2 := math32.Pow(p2.Sub(p3).Dot(p2.Sub(p3)), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return math.Vec3{
		X: hermite(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: hermite(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: hermite(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// hermite evaluates one coordinate of a non-uniform Catmull-Rom segment
// between x1 and x2.
func hermite(x0, x1, x2, x3, dt0, dt1, dt2, w float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return x1 + w*(t1+w*(c2+w*c3))
}

// Tangent returns the unit direction of the curve at t.
func (c *CatmullRom) Tangent(t float32) math.Vec3 {
	const delta = 1e-3
	a := math32.Max(0, t-delta)
	b := math32.Min(1, t+delta)
	return c.Point(b).Sub(c.Point(a)).Normalize()
}

// Frame is a point on a curve with an orthonormal basis.
type Frame struct {
	Point    math.Vec3
	Tangent  math.Vec3
	Normal   math.Vec3
	Binormal math.Vec3
}

// Frames samples segments+1 evenly spaced frames. Each normal is the
// previous one rotated by the change in tangent, so the frames do not twist.
func (c *CatmullRom) Frames(segments int) []Frame {
	if segments < 1 {
		segments = 1
	}
	frames := make([]Frame, segments+1)
	for i := range frames {
		t := float32(i) / float32(segments)
		frames[i].Point = c.Point(t)
		frames[i].Tangent = c.Tangent(t)
	}

	// Seed the first normal from the axis least aligned with the tangent.
	t0 := frames[0].Tangent
	axis := math.Vec3{X: 1}
	least := math32.Abs(t0.X)
	if ay := math32.Abs(t0.Y); ay <= least {
		least = ay
		axis = math.Vec3{Y: 1}
	}
	if az := math32.Abs(t0.Z); az <= least {
		axis = math.Vec3{Z: 1}
	}
	side := t0.Cross(axis).Normalize()
	frames[0].Normal = t0.Cross(side).Normalize()
	frames[0].Binormal = t0.Cross(frames[0].Normal)

	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1].Tangent, frames[i].Tangent
		n := frames[i-1].Normal
		if r := prev.Cross(cur); r.Length() > 1e-6 {
			theta := math32.Acos(math32.Max(-1, math32.Min(1, prev.Dot(cur))))
			n = math.RotateAxis(r.Normalize(), theta).TransformDirection(n)
		}
		frames[i].Normal = n.Normalize()
		frames[i].Binormal = cur.Cross(frames[i].Normal)
	}
	return frames
}
