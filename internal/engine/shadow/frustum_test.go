package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/pkg/math"
)

var sun = math.V3(10, 20, 5)

func box(x, y, z float32) geometry.Bounds {
	return geometry.Bounds{Min: math.V3(-x, -y, -z), Max: math.V3(x, y, z)}
}

func TestDefaultFrustumCoversStandardBasin(t *testing.T) {
	f := DefaultFrustum()
	assert.True(t, f.Covers(sun, math.Vec3{}, box(2.5, 0.75, 5)))
	assert.False(t, f.Covers(sun, math.Vec3{}, box(30, 1, 30)))
}

func TestFitGrowsToCover(t *testing.T) {
	f := DefaultFrustum()
	big := box(30, 1, 30)

	fitted := f.Fit(sun, math.Vec3{}, big)
	assert.LessOrEqual(t, fitted.Left, f.Left)
	assert.GreaterOrEqual(t, fitted.Right, f.Right)
	assert.GreaterOrEqual(t, fitted.Far, f.Far)
	assert.Equal(t, f.Resolution, fitted.Resolution)

	inner := box(29.9, 0.9, 29.9)
	assert.True(t, fitted.Covers(sun, math.Vec3{}, inner))
}

func TestFitNeverShrinks(t *testing.T) {
	f := DefaultFrustum()
	assert.Equal(t, f, f.Fit(sun, math.Vec3{}, box(1, 1, 1)))

	empty := geometry.Bounds{Min: math.V3(1, 1, 1), Max: math.V3(-1, -1, -1)}
	assert.Equal(t, f, f.Fit(sun, math.Vec3{}, empty))
}
