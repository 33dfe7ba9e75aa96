package equipment

import (
	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Placement offsets.
const (
	// LadderInset pulls the ladder in from the corner along both axes.
	LadderInset = 0.5
	// WallMountInset puts wall fixtures just inside the wall face.
	WallMountInset = pool.WallThickness + 0.01
	// ExternalClearance separates the filter from the basin side.
	ExternalClearance = 2.0
	// PairSpacing separates the heater from the filter.
	PairSpacing = 1.0
	// ExtraLightsLength is the length above which the long wall gets two
	// more lights.
	ExtraLightsLength = 6.0
)

// Instance is one placed equipment model.
type Instance struct {
	Kind     Kind
	Position math.Vec3
	Rotation math.Vec3 // Euler angles, XYZ order
}

// Transform returns the model matrix of the instance.
func (in Instance) Transform() math.Mat4 {
	return math.Compose(in.Position, in.Rotation)
}

// Place lays out the equipment for a basin of the given dimensions: a
// ladder near one corner, lights along the +X long wall (one at the middle,
// plus one toward each end when the basin is longer than
// ExtraLightsLength), a skimmer on the opposite wall at water height, and
// the filter and heater outside the footprint. The basin is centred on the
// origin with its length along Z. The layout is the same for every shape,
// so on an oval basin the ladder and the two end lights sit outside the
// ellipse, in the rectangular corners.
func Place(length, width, depth float64) []Instance {
	l := float32(length)
	w := float32(width)
	d := float32(depth)
	floor := -d / 2
	deck := d / 2
	waterY := float32(pool.WaterLevel(depth))
	lightY := (floor + waterY) / 2

	out := make([]Instance, 0, 7)
	out = append(out, Instance{
		Kind:     Ladder,
		Position: math.V3(w/2-LadderInset, floor, l/2-LadderInset),
		Rotation: math.V3(0, math.Pi, 0),
	})

	lightX := w/2 - WallMountInset
	lightRot := math.V3(0, -math.Pi/2, 0)
	out = append(out, Instance{Kind: Light, Position: math.V3(lightX, lightY, 0), Rotation: lightRot})
	if length > ExtraLightsLength {
		out = append(out,
			Instance{Kind: Light, Position: math.V3(lightX, lightY, l/4), Rotation: lightRot},
			Instance{Kind: Light, Position: math.V3(lightX, lightY, -l/4), Rotation: lightRot},
		)
	}

	out = append(out, Instance{
		Kind:     Skimmer,
		Position: math.V3(-w/2+WallMountInset, waterY, 0),
		Rotation: math.V3(0, math.Pi/2, 0),
	})

	filterX := w/2 + ExternalClearance
	out = append(out,
		Instance{Kind: Filter, Position: math.V3(filterX, deck, -l/2)},
		Instance{Kind: Heater, Position: math.V3(filterX+PairSpacing, deck, -l/2)},
	)
	return out
}

// Count tallies instances per kind.
func Count(instances []Instance) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, in := range instances {
		counts[in.Kind]++
	}
	return counts
}
