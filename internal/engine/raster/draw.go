package raster

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/pkg/math"
)

// nearEpsilon keeps clipped vertices strictly in front of the eye.
const nearEpsilon = 1e-5

type clipVert struct {
	clip   math.Vec4
	world  math.Vec3
	normal math.Vec3
}

type screenVert struct {
	x, y, z float32
	invW    float32
	world   math.Vec3
	normal  math.Vec3
}

// drawItem draws every triangle of it and returns how many reached the
// rasterizer.
func (r *Renderer) drawItem(it render.Item, vp math.Mat4, ls lightSet, w, h int, blended bool) int {
	m := it.Mesh
	if m == nil || len(m.Indices) < 3 {
		return 0
	}
	surf := resolve(it.Appearance, it.Unlit)
	normalMat := it.Model.NormalMatrix()
	mvp := vp.Mul(it.Model)
	eye := ls.eye

	cull := !m.DoubleSided && !it.Appearance.DoubleSided
	drawn := 0

	var poly, scratch [8]clipVert
	for t := 0; t+2 < len(m.Indices); t += 3 {
		for k := 0; k < 3; k++ {
			v := m.Vertices[m.Indices[t+k]]
			p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
			n := math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
			poly[k] = clipVert{
				clip:   mvp.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1}),
				world:  it.Model.TransformPoint(p),
				normal: normalMat.TransformDirection(n),
			}
		}
		count := clipNear(poly[:3], scratch[:0])
		if count < 3 {
			continue
		}
		for k := 1; k+1 < count; k++ {
			tri := [3]screenVert{
				toScreen(scratch[0], w, h),
				toScreen(scratch[k], w, h),
				toScreen(scratch[k+1], w, h),
			}
			drawn++
			rasterize(&tri, w, h, cull, blended, func(x, y int, b [3]float32, z float32, front bool) {
				if z < -1 || z > 1 {
					return
				}
				di := y*w + x
				if z >= r.depth[di] {
					return
				}
				p, n := interpolate(&tri, b)
				if !front {
					n = n.Scale(-1)
				}
				c := surf.shade(&ls, p, n, eye)
				pix := y*r.color.Stride + x*4
				if blended {
					r.blend(pix, c, surf.opacity)
					return
				}
				r.depth[di] = z
				r.put(pix, c)
			})
		}
	}
	return drawn
}

// clipNear clips a polygon against the near plane (z >= -w) and writes the
// result into out, returning its vertex count.
func clipNear(in []clipVert, out []clipVert) int {
	n := 0
	dist := func(v clipVert) float32 { return v.clip[2] + v.clip[3] - nearEpsilon }
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
			n++
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpClip(a, b, da/(da-db)))
			n++
		}
	}
	return n
}

func lerpClip(a, b clipVert, t float32) clipVert {
	var c math.Vec4
	for i := range c {
		c[i] = a.clip[i] + (b.clip[i]-a.clip[i])*t
	}
	return clipVert{
		clip:   c,
		world:  a.world.Lerp(b.world, t),
		normal: a.normal.Lerp(b.normal, t),
	}
}

func toScreen(v clipVert, w, h int) screenVert {
	inv := 1 / v.clip[3]
	return screenVert{
		x:      (v.clip[0]*inv + 1) * 0.5 * float32(w),
		y:      (1 - v.clip[1]*inv) * 0.5 * float32(h),
		z:      v.clip[2] * inv,
		invW:   inv,
		world:  v.world,
		normal: v.normal,
	}
}

// interpolate returns the perspective-correct world position and unit
// normal at screen barycentrics b.
func interpolate(tri *[3]screenVert, b [3]float32) (math.Vec3, math.Vec3) {
	w0 := b[0] * tri[0].invW
	w1 := b[1] * tri[1].invW
	w2 := b[2] * tri[2].invW
	sum := w0 + w1 + w2
	if sum != 0 {
		w0, w1, w2 = w0/sum, w1/sum, w2/sum
	}
	p := tri[0].world.Scale(w0).Add(tri[1].world.Scale(w1)).Add(tri[2].world.Scale(w2))
	n := tri[0].normal.Scale(w0).Add(tri[1].normal.Scale(w1)).Add(tri[2].normal.Scale(w2))
	return p, n.Normalize()
}

// rasterize calls fn for every pixel centre covered by tri. front reports
// whether the triangle winds counter-clockwise in normalized device
// coordinates. Strict coverage leaves shared edges to one side so blended
// surfaces are not drawn twice there.
func rasterize(tri *[3]screenVert, w, h int, cull, strict bool, fn func(x, y int, b [3]float32, z float32, front bool)) {
	v0, v1, v2 := tri[0], tri[1], tri[2]
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 || math32.IsNaN(area) {
		return
	}
	// Screen Y points down, which mirrors the winding.
	front := area < 0
	if cull && !front {
		return
	}

	minX := clampInt(int(math32.Floor(min3(v0.x, v1.x, v2.x))), 0, w-1)
	maxX := clampInt(int(math32.Ceil(max3(v0.x, v1.x, v2.x))), 0, w-1)
	minY := clampInt(int(math32.Floor(min3(v0.y, v1.y, v2.y))), 0, h-1)
	maxY := clampInt(int(math32.Ceil(max3(v0.y, v1.y, v2.y))), 0, h-1)

	inv := 1 / area
	for y := minY; y <= maxY; y++ {
		cy := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			cx := float32(x) + 0.5
			b := [3]float32{
				edge(v1.x, v1.y, v2.x, v2.y, cx, cy) * inv,
				edge(v2.x, v2.y, v0.x, v0.y, cx, cy) * inv,
				edge(v0.x, v0.y, v1.x, v1.y, cx, cy) * inv,
			}
			if strict {
				if b[0] <= 0 || b[1] <= 0 || b[2] <= 0 {
					continue
				}
			} else if b[0] < 0 || b[1] < 0 || b[2] < 0 {
				continue
			}
			z := b[0]*v0.z + b[1]*v1.z + b[2]*v2.z
			fn(x, y, b, z, front)
		}
	}
}

func edge(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
