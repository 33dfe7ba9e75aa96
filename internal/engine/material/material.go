// Package material defines surface appearance records and the fixed basin
// finishes.
package material

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/poolviz/internal/pool"
)

// Color is an sRGB colour with components in [0, 1].
type Color [3]float32

// White and Black are used by lights and unlit parts.
var (
	White = Color{1, 1, 1}
	Black = Color{}
)

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return Color{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// Hex is ParseHex for literals; it panics on malformed input.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear converts the colour to linear RGB for shading.
func (c Color) Linear() [3]float32 {
	r, g, b := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// String formats the colour as #rrggbb.
func (c Color) String() string {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().Hex()
}

// Appearance holds the shading parameters of a surface.
type Appearance struct {
	BaseColor         Color
	Roughness         float32 // [0, 1]
	Metalness         float32 // [0, 1]
	Emissive          Color
	EmissiveIntensity float32

	// Clearcoat and ClearcoatRoughness are nil when the finish has no
	// lacquer layer.
	Clearcoat          *float32
	ClearcoatRoughness *float32

	// Opacity below 1 marks the surface as blended.
	Opacity     float32
	DoubleSided bool
}

// Transparent reports whether the surface is drawn in the blended pass.
func (a Appearance) Transparent() bool {
	return a.Opacity < 1
}

// Solid returns an opaque non-emissive appearance.
func Solid(hex string, roughness, metalness float32) Appearance {
	return Appearance{
		BaseColor: Hex(hex),
		Roughness: roughness,
		Metalness: metalness,
		Opacity:   1,
	}
}

// Glow returns a copy of a with the given self-illumination.
func (a Appearance) Glow(hex string, intensity float32) Appearance {
	a.Emissive = Hex(hex)
	a.EmissiveIntensity = intensity
	return a
}

func ptr(v float32) *float32 { return &v }

var finishes = map[pool.MaterialID]Appearance{
	pool.Concrete: {
		BaseColor:         Hex("#b0b0b0"),
		Roughness:         0.85,
		Metalness:         0.05,
		Emissive:          Hex("#2a2a2a"),
		EmissiveIntensity: 0.02,
		Opacity:           1,
		DoubleSided:       true,
	},
	pool.Composite: {
		BaseColor:          Hex("#5aa3d9"),
		Roughness:          0.25,
		Metalness:          0.3,
		Emissive:           Hex("#1a4d7a"),
		EmissiveIntensity:  0.05,
		Clearcoat:          ptr(0.3),
		ClearcoatRoughness: ptr(0.2),
		Opacity:            1,
		DoubleSided:        true,
	},
	pool.Liner: {
		BaseColor:          Hex("#40c0ff"),
		Roughness:          0.08,
		Metalness:          0.6,
		Emissive:           Hex("#0080c0"),
		EmissiveIntensity:  0.08,
		Clearcoat:          ptr(0.8),
		ClearcoatRoughness: ptr(0.1),
		Opacity:            1,
		DoubleSided:        true,
	},
}

// Lookup returns the basin finish for id. Unknown ids get Concrete.
// The returned value is a copy; the optional fields point at fresh storage.
func Lookup(id pool.MaterialID) Appearance {
	a, ok := finishes[id]
	if !ok {
		a = finishes[pool.Concrete]
	}
	if a.Clearcoat != nil {
		a.Clearcoat = ptr(*a.Clearcoat)
	}
	if a.ClearcoatRoughness != nil {
		a.ClearcoatRoughness = ptr(*a.ClearcoatRoughness)
	}
	return a
}

// Water is the appearance of the animated surface.
var Water = Appearance{
	BaseColor:   Hex("#0077be"),
	Roughness:   0.1,
	Metalness:   0.1,
	Opacity:     0.85,
	DoubleSided: true,
}
