package raster

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/pkg/math"
)

type directional struct {
	dir      math.Vec3 // toward the light
	radiance [3]float32
}

type pointLight struct {
	light    lighting.PointLight
	radiance [3]float32
}

type lightSet struct {
	eye     math.Vec3
	ambient [3]float32
	sun     directional
	fill    directional
	points  []pointLight
	shadow  *shadowMap
}

func prepareLights(f *render.Frame) lightSet {
	ls := lightSet{
		eye:     f.Eye,
		ambient: scale3(f.Ambient.Color.Linear(), f.Ambient.Intensity),
		sun: directional{
			dir:      f.Sun.Direction(),
			radiance: scale3(f.Sun.Color.Linear(), f.Sun.Intensity),
		},
		fill: directional{
			dir:      f.Fill.Direction(),
			radiance: scale3(f.Fill.Color.Linear(), f.Fill.Intensity),
		},
	}
	for _, p := range f.Points {
		ls.points = append(ls.points, pointLight{
			light:    p,
			radiance: scale3(p.Color.Linear(), p.Intensity),
		})
	}
	return ls
}

// surface is an Appearance resolved into linear values once per item.
type surface struct {
	diffuse   [3]float32
	specular  [3]float32
	shininess float32
	clearcoat float32
	coatShine float32
	emissive  [3]float32
	opacity   float32
	unlit     [3]float32
	isUnlit   bool
}

func resolve(a material.Appearance, unlit bool) surface {
	base := a.BaseColor.Linear()
	s := surface{
		shininess: shininess(a.Roughness),
		emissive:  scale3(a.Emissive.Linear(), a.EmissiveIntensity),
		opacity:   a.Opacity,
		unlit:     base,
		isUnlit:   unlit,
	}
	for i := range base {
		s.diffuse[i] = base[i] * (1 - a.Metalness)
		s.specular[i] = 0.04 + (base[i]-0.04)*a.Metalness
	}
	if a.Clearcoat != nil {
		s.clearcoat = *a.Clearcoat
		rough := float32(0)
		if a.ClearcoatRoughness != nil {
			rough = *a.ClearcoatRoughness
		}
		s.coatShine = shininess(rough)
	}
	if s.opacity <= 0 {
		s.opacity = 1
	}
	return s
}

// shininess maps roughness onto a Blinn-Phong exponent.
func shininess(roughness float32) float32 {
	r := clamp01(roughness)
	return 2 + (1-r)*(1-r)*510
}

// shade returns linear radiance leaving p toward the eye.
func (s *surface) shade(ls *lightSet, p, n, eye math.Vec3) [3]float32 {
	if s.isUnlit {
		return s.unlit
	}
	v := eye.Sub(p).Normalize()

	out := [3]float32{
		s.diffuse[0]*ls.ambient[0] + s.emissive[0],
		s.diffuse[1]*ls.ambient[1] + s.emissive[1],
		s.diffuse[2]*ls.ambient[2] + s.emissive[2],
	}

	sunVisible := float32(1)
	if ls.shadow != nil {
		sunVisible = ls.shadow.visibility(p, n.Dot(ls.sun.dir))
	}
	s.addLight(&out, n, v, ls.sun.dir, scale3(ls.sun.radiance, sunVisible))
	s.addLight(&out, n, v, ls.fill.dir, ls.fill.radiance)

	for i := range ls.points {
		pl := &ls.points[i]
		toLight := pl.light.Position.Sub(p)
		d := toLight.Length()
		att := pl.light.Attenuation(d)
		if att <= 0 || d == 0 {
			continue
		}
		s.addLight(&out, n, v, toLight.Scale(1/d), scale3(pl.radiance, att))
	}
	return out
}

func (s *surface) addLight(out *[3]float32, n, v, l math.Vec3, radiance [3]float32) {
	ndl := n.Dot(l)
	if ndl <= 0 {
		return
	}
	h := l.Add(v).Normalize()
	ndh := math32.Max(n.Dot(h), 0)
	spec := math32.Pow(ndh, s.shininess) * (s.shininess + 8) / (8 * math.Pi)
	coat := float32(0)
	if s.clearcoat > 0 {
		coat = s.clearcoat * 0.04 * math32.Pow(ndh, s.coatShine) * (s.coatShine + 8) / (8 * math.Pi)
	}
	for i := 0; i < 3; i++ {
		out[i] += (s.diffuse[i] + s.specular[i]*spec + coat) * radiance[i] * ndl
	}
}

func scale3(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toSRGB(c [3]float32) color.RGBA {
	r, g, b := colorful.LinearRgb(
		float64(clamp01(c[0])),
		float64(clamp01(c[1])),
		float64(clamp01(c[2])),
	).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func fromSRGB(c color.RGBA) [3]float32 {
	r, g, b := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}
