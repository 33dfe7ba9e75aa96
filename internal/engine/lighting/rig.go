package lighting

import (
	"strings"

	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/internal/engine/shadow"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Preset selects one of the fixed lighting rigs.
type Preset int

const (
	Day Preset = iota
	Sunset
	Night
)

// Presets lists every preset in display order.
var Presets = []Preset{Day, Sunset, Night}

// String returns the config name of the preset.
func (p Preset) String() string {
	switch p {
	case Sunset:
		return "sunset"
	case Night:
		return "night"
	default:
		return "day"
	}
}

// ParsePreset maps a config name to a Preset. Unknown names fall back to
// Day.
func ParsePreset(name string) Preset {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunset", "evening":
		return Sunset
	case "night":
		return Night
	default:
		return Day
	}
}

// Ambient is uniform light reaching every surface.
type Ambient struct {
	Color     material.Color
	Intensity float32
}

// DirectionalLight is a light infinitely far away along the line from
// Position to Target.
type DirectionalLight struct {
	Position   math.Vec3
	Target     math.Vec3
	Color      material.Color
	Intensity  float32
	CastShadow bool
	Shadow     shadow.Frustum
}

// Direction returns the unit vector pointing from the scene toward the
// light.
func (d DirectionalLight) Direction() math.Vec3 {
	return d.Position.Sub(d.Target).Normalize()
}

// LightMatrix returns the shadow projection * view of the light.
func (d DirectionalLight) LightMatrix() math.Mat4 {
	return d.Shadow.LightMatrix(d.Position, d.Target)
}

// Rig is a complete lighting setup.
type Rig struct {
	Preset     Preset
	Ambient    Ambient
	Sun        DirectionalLight
	Fill       DirectionalLight
	Rim        PointLight
	Underwater PointLight

	// Background tints the sky behind the scene.
	Background material.Color
	// Environment names the sky mood the preset imitates.
	Environment string
}

// PointLights returns the rig's own point lights.
func (r Rig) PointLights() []PointLight {
	return []PointLight{r.Rim, r.Underwater}
}

type presetValues struct {
	ambient     float32
	sunPos      math.Vec3
	sunColor    string
	sunPower    float32
	fillColor   string
	fillPower   float32
	background  string
	environment string
}

var presets = map[Preset]presetValues{
	Day: {
		ambient: 0.6,
		sunPos:  math.V3(10, 20, 10), sunColor: "#ffffff", sunPower: 1.5,
		fillColor: "#e6f2ff", fillPower: 0.4,
		background: "#dfe9f3", environment: "dawn",
	},
	Sunset: {
		ambient: 0.4,
		sunPos:  math.V3(15, 8, 5), sunColor: "#ffaa66", sunPower: 1.2,
		fillColor: "#ff8844", fillPower: 0.5,
		background: "#f3b98c", environment: "sunset",
	},
	Night: {
		ambient: 0.2,
		sunPos:  math.V3(5, 15, 5), sunColor: "#aaccff", sunPower: 0.3,
		fillColor: "#6688aa", fillPower: 0.6,
		background: "#0d1526", environment: "night",
	},
}

// Get returns the rig for p. Unknown presets get Day. Every call builds a
// fresh value from constants, so repeated calls compare equal.
func Get(p Preset) Rig {
	v, ok := presets[p]
	if !ok {
		p = Day
		v = presets[Day]
	}
	return Rig{
		Preset:  p,
		Ambient: Ambient{Color: material.White, Intensity: v.ambient},
		Sun: DirectionalLight{
			Position:   v.sunPos,
			Color:      material.Hex(v.sunColor),
			Intensity:  v.sunPower,
			CastShadow: true,
			Shadow:     shadow.DefaultFrustum(),
		},
		Fill: DirectionalLight{
			Position:  math.V3(-10, 10, -10),
			Color:     material.Hex(v.fillColor),
			Intensity: v.fillPower,
		},
		Rim: PointLight{
			Position:  math.V3(0, 15, 0),
			Color:     material.White,
			Intensity: 0.3,
		},
		Underwater: PointLight{
			Position:  math.V3(0, -1, 0),
			Color:     material.Hex("#00aaff"),
			Intensity: 0.5,
			Range:     10,
			Decay:     2,
		},
		Background:  material.Hex(v.background),
		Environment: v.environment,
	}
}
