package raster

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/pkg/math"
)

const (
	shadowBias      = 0.002
	shadowSlopeBias = 0.01
)

// shadowMap is the sun's depth buffer.
type shadowMap struct {
	res    int
	depth  []float32
	matrix math.Mat4
}

func (s *shadowMap) render(f *render.Frame, res int) {
	if res <= 0 {
		res = 1
	}
	if s.res != res {
		s.res = res
		s.depth = make([]float32, res*res)
	}
	for i := range s.depth {
		s.depth[i] = 1
	}
	s.matrix = f.Sun.LightMatrix()

	for _, it := range f.Opaque() {
		if !it.CastShadow || it.Mesh == nil {
			continue
		}
		mvp := s.matrix.Mul(it.Model)
		verts := it.Mesh.Vertices
		idx := it.Mesh.Indices
		for t := 0; t+2 < len(idx); t += 3 {
			var tri [3]screenVert
			for k := 0; k < 3; k++ {
				p := verts[idx[t+k]].Position
				c := mvp.MulVec4(math.Vec4{p[0], p[1], p[2], 1})
				tri[k] = s.toScreen(c)
			}
			rasterize(&tri, res, res, false, false, func(x, y int, _ [3]float32, z float32, _ bool) {
				i := y*res + x
				if z >= -1 && z < s.depth[i] {
					s.depth[i] = z
				}
			})
		}
	}
}

func (s *shadowMap) toScreen(c math.Vec4) screenVert {
	n := float32(s.res)
	return screenVert{
		x:    (c[0] + 1) * 0.5 * n,
		y:    (1 - c[1]) * 0.5 * n,
		z:    c[2],
		invW: 1,
	}
}

// visibility returns 1 when p is lit by the sun and 0 when it is occluded.
// ndl is the cosine between the surface normal and the sun direction.
func (s *shadowMap) visibility(p math.Vec3, ndl float32) float32 {
	if s.res == 0 {
		return 1
	}
	c := s.matrix.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	sv := s.toScreen(c)
	x, y := int(math32.Floor(sv.x)), int(math32.Floor(sv.y))
	if x < 0 || y < 0 || x >= s.res || y >= s.res || sv.z > 1 {
		return 1
	}
	bias := shadowBias + shadowSlopeBias*(1-clamp01(ndl))
	lit := 0
	taps := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			tx, ty := x+dx, y+dy
			if tx < 0 || ty < 0 || tx >= s.res || ty >= s.res {
				continue
			}
			taps++
			if sv.z-bias <= s.depth[ty*s.res+tx] {
				lit++
			}
		}
	}
	return float32(lit) / float32(taps)
}
