// Package pool holds the basin description shared by the geometry, water,
// equipment and scene packages.
package pool

import (
	"errors"
	"fmt"
	"strings"
)

// WallThickness is the inward offset from the outer to the inner boundary.
const WallThickness = 0.3

// Freeboard is the gap between the deck and the resting water surface.
const Freeboard = 0.15

// Dimension bounds applied by Clamp.
const (
	MinLength = 2.0
	MaxLength = 50.0
	MinWidth  = 1.5
	MaxWidth  = 25.0
	MinDepth  = 0.8
	MaxDepth  = 3.5
)

// ErrInvalidDimensions is returned by Validate when a dimension is not a
// positive finite number or leaves no interior after the wall offset.
var ErrInvalidDimensions = errors.New("invalid basin dimensions")

// Shape is the footprint of the basin.
type Shape int

const (
	Rectangular Shape = iota
	Oval
)

// String returns the config name of the shape.
func (s Shape) String() string {
	switch s {
	case Oval:
		return "oval"
	default:
		return "rectangular"
	}
}

// ParseShape maps a config name to a Shape. Unknown names fall back to
// Rectangular.
func ParseShape(name string) Shape {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "oval", "ellipse", "round":
		return Oval
	default:
		return Rectangular
	}
}

// MaterialID names one of the basin finishes.
type MaterialID int

const (
	Concrete MaterialID = iota
	Composite
	Liner
)

// Materials lists every finish in display order.
var Materials = []MaterialID{Concrete, Composite, Liner}

// String returns the config name of the material.
func (m MaterialID) String() string {
	switch m {
	case Composite:
		return "composite"
	case Liner:
		return "liner"
	default:
		return "concrete"
	}
}

// Next cycles to the following finish.
func (m MaterialID) Next() MaterialID {
	return Materials[(int(m)+1)%len(Materials)]
}

// ParseMaterial maps a config name to a MaterialID. Unknown names fall back
// to Concrete.
func ParseMaterial(name string) MaterialID {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "composite":
		return Composite
	case "liner", "film", "pvc":
		return Liner
	default:
		return Concrete
	}
}

// BasinSpec describes a basin. Two specs are the same basin exactly when
// they compare equal with ==.
type BasinSpec struct {
	Length   float64 // along world Z
	Width    float64 // along world X
	Depth    float64 // vertical
	Shape    Shape
	Material MaterialID
}

// Geometry returns the spec with the material cleared, the part of the spec
// that determines meshes and placement.
func (b BasinSpec) Geometry() BasinSpec {
	b.Material = Concrete
	return b
}

// Validate reports whether every dimension is usable.
func (b BasinSpec) Validate() error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"length", b.Length}, {"width", b.Width}, {"depth", b.Depth}} {
		if !(d.v > 0) || d.v != d.v || d.v > 1e6 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidDimensions, d.name, d.v)
		}
	}
	if b.Length <= 2*WallThickness || b.Width <= 2*WallThickness {
		return fmt.Errorf("%w: %vx%v leaves no interior inside %.1f walls",
			ErrInvalidDimensions, b.Length, b.Width, WallThickness)
	}
	return nil
}

// Clamp limits every dimension to the supported range.
func (b BasinSpec) Clamp() BasinSpec {
	b.Length = clamp(b.Length, MinLength, MaxLength)
	b.Width = clamp(b.Width, MinWidth, MaxWidth)
	b.Depth = clamp(b.Depth, MinDepth, MaxDepth)
	return b
}

// WaterLevel is the height of the resting water surface for a basin of the
// given depth centred on y = 0.
func WaterLevel(depth float64) float64 {
	return depth/2 - Freeboard
}

// Name returns the short identifier used in capture file names, e.g.
// "pool-oval-10x5".
func (b BasinSpec) Name() string {
	return fmt.Sprintf("pool-%s-%gx%g", b.Shape, b.Length, b.Width)
}

func clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
