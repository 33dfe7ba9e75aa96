package equipment

import (
	"golang.org/x/text/language"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Part is one shaded piece of an equipment model, in model space.
type Part struct {
	Name       string
	Mesh       *geometry.Mesh
	Appearance material.Appearance
}

// Group is an assembled equipment model. Model space has +Y up and the
// model's working face toward +Z.
type Group struct {
	Kind  Kind
	Parts []Part
	// Light is set for kinds that illuminate the scene; its position is in
	// model space.
	Light  *lighting.PointLight
	Bounds geometry.Bounds
}

// Label returns the display name of the group.
func (g *Group) Label(lang language.Tag) string {
	return Label(g.Kind, lang)
}

func (g *Group) add(name string, mesh *geometry.Mesh, at math.Mat4, look material.Appearance) {
	m := mesh.Transform(at)
	g.Parts = append(g.Parts, Part{Name: name, Mesh: m, Appearance: look})
	if len(g.Parts) == 1 {
		g.Bounds = m.Bounds
	} else {
		g.Bounds = g.Bounds.Union(m.Bounds)
	}
}

// Build assembles the model for k. Models depend only on the kind; each
// call returns new meshes the caller owns.
func Build(k Kind) *Group {
	g := &Group{Kind: k}
	switch k {
	case Filter:
		buildFilter(g)
	case Heater:
		buildHeater(g)
	case Ladder:
		buildLadder(g)
	case Light:
		buildLight(g)
	case Skimmer:
		buildSkimmer(g)
	}
	return g
}

var (
	halfPi = math.Pi / 2
	dark   = material.Solid("#111111", 1, 0)
	gray   = material.Solid("#333333", 1, 0)
	white  = material.Solid("#ffffff", 1, 0)
)

func at(x, y, z float32) math.Mat4 {
	return math.Translate(x, y, z)
}

func buildFilter(g *Group) {
	g.add("tank", geometry.Cylinder(0.25, 0.25, 0.8, 32), at(0, 0.4, 0),
		material.Solid("#333333", 0.4, 0.3))
	g.add("base", geometry.Cylinder(0.3, 0.3, 0.1, 32), at(0, 0.05, 0), dark)

	valve := at(0, 0.85, 0)
	g.add("valve", geometry.Cylinder(0.12, 0.15, 0.2, 16), valve, dark)
	g.add("handle", geometry.Cylinder(0.02, 0.02, 0.25, 8),
		valve.Mul(at(0, 0.12, 0)).Mul(math.RotateZ(halfPi)), dark)
	g.add("gauge", geometry.Cylinder(0.04, 0.04, 0.05, 16),
		valve.Mul(at(0.1, 0.05, 0)).Mul(math.RotateZ(-math.Pi/4)),
		material.Solid("#cccccc", 1, 0.8))

	g.add("pipe", geometry.Cylinder(0.04, 0.04, 0.2, 8),
		at(0.2, 0.7, 0).Mul(math.RotateZ(-halfPi)), gray)
}

func buildHeater(g *Group) {
	g.add("body", geometry.Box(0.3, 0.5, 0.2), at(0, 0.3, 0),
		material.Solid("#e0e0e0", 0.2, 0.5))
	g.add("panel-right", geometry.Box(0.02, 0.48, 0.18), at(0.16, 0.3, 0), gray)
	g.add("panel-left", geometry.Box(0.02, 0.48, 0.18), at(-0.16, 0.3, 0), gray)
	g.add("display", geometry.Plane(0.2, 0.08), at(0, 0.45, 0.11), dark)
	g.add("readout", geometry.Plane(0.1, 0.04), at(0, 0.45, 0.111),
		material.Solid("#00ff00", 1, 0).Glow("#00ff00", 0.5))
}

// LadderCurve is the rail profile: up from the pool floor, over the coping
// and down the outside.
func LadderCurve() *geometry.CatmullRom {
	return geometry.NewCatmullRom(
		math.V3(0, 0, 0),
		math.V3(0, 1.2, 0),
		math.V3(0, 1.4, -0.2),
		math.V3(0, 1.4, -0.5),
		math.V3(0, 0, -0.5),
	)
}

// LadderSteps are the heights of the treads above the rail feet.
var LadderSteps = []float32{0.3, 0.6, 0.9}

func buildLadder(g *Group) {
	rail := geometry.Tube(LadderCurve(), 20, 0.02, 8)
	chrome := material.Solid("#e0e0e0", 0.1, 0.9)
	g.add("rail-left", rail, at(-0.25, 0, 0), chrome)
	g.add("rail-right", rail, at(0.25, 0, 0), chrome)

	tread := geometry.Box(0.5, 0.02, 0.08)
	strip := geometry.Plane(0.4, 0.05)
	for _, y := range LadderSteps {
		g.add("step", tread, at(0, y, 0), material.Solid("#ffffff", 0.5, 0))
		// Lay the strip flat on top of the tread.
		g.add("anti-slip", strip, at(0, y+0.011, 0).Mul(math.RotateX(-halfPi)), gray)
	}
}

// Fixture light parameters.
const (
	FixtureIntensity = 2
	FixtureRange     = 4
	FixtureDecay     = 2
)

func buildLight(g *Group) {
	g.add("bezel", geometry.Torus(0.12, 0.02, 16, 32), math.Identity(),
		material.Solid("#cccccc", 0.2, 0.8))
	// Housing axis along Z, behind the bezel.
	g.add("housing", geometry.Cylinder(0.12, 0.1, 0.05, 32),
		at(0, 0, -0.02).Mul(math.RotateX(halfPi)), white)

	lens := material.Solid("#ffffff", 1, 0).Glow("#ffffff", 1)
	lens.Opacity = 0.9
	// The cap bulges toward +Z.
	g.add("lens", geometry.SphereCap(0.1, 32, 16, math.Pi*0.2),
		at(0, 0, 0.01).Mul(math.RotateX(halfPi)), lens)

	g.Light = &lighting.PointLight{
		Position:  math.V3(0, 0, 0.05),
		Color:     material.Hex("#eeeeff"),
		Intensity: FixtureIntensity,
		Range:     FixtureRange,
		Decay:     FixtureDecay,
	}
}

func buildSkimmer(g *Group) {
	g.add("faceplate", geometry.Box(0.25, 0.2, 0.02), at(0, 0, 0.01), white)
	g.add("throat", geometry.Box(0.2, 0.12, 0.01), at(0, 0.02, 0.02), dark)
	g.add("flap", geometry.Box(0.18, 0.08, 0.005),
		at(0, -0.03, 0.02).Mul(math.RotateX(math.Pi/6)), material.Solid("#cccccc", 1, 0))
}
