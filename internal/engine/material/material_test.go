package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/pool"
)

func TestLookupFinishes(t *testing.T) {
	concrete := Lookup(pool.Concrete)
	assert.Equal(t, "#b0b0b0", concrete.BaseColor.String())
	assert.InDelta(t, 0.85, concrete.Roughness, 1e-6)
	assert.Nil(t, concrete.Clearcoat)

	liner := Lookup(pool.Liner)
	require.NotNil(t, liner.Clearcoat)
	assert.InDelta(t, 0.8, *liner.Clearcoat, 1e-6)
	assert.InDelta(t, 0.1, *liner.ClearcoatRoughness, 1e-6)
	assert.Less(t, liner.Roughness, Lookup(pool.Composite).Roughness)

	for _, id := range pool.Materials {
		a := Lookup(id)
		assert.True(t, a.DoubleSided, id.String())
		assert.False(t, a.Transparent(), id.String())
		assert.GreaterOrEqual(t, a.Roughness, float32(0))
		assert.LessOrEqual(t, a.Metalness, float32(1))
	}
}

func TestLookupUnknownFallsBackToConcrete(t *testing.T) {
	assert.Equal(t, Lookup(pool.Concrete), Lookup(pool.MaterialID(42)))
}

func TestLookupReturnsIndependentCopies(t *testing.T) {
	a := Lookup(pool.Composite)
	*a.Clearcoat = 1
	b := Lookup(pool.Composite)
	assert.InDelta(t, 0.3, *b.Clearcoat, 1e-6)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#0f0")
	require.NoError(t, err)
	assert.Equal(t, Color{0, 1, 0}, c)

	_, err = ParseHex("green")
	assert.Error(t, err)
}

func TestLinear(t *testing.T) {
	lin := Color{0.5, 0.5, 0.5}.Linear()
	assert.InDelta(t, 0.214, lin[0], 0.01)
	assert.InDelta(t, 1, White.Linear()[2], 1e-6)
}

func TestWaterIsBlended(t *testing.T) {
	assert.True(t, Water.Transparent())
	assert.Equal(t, "#0077be", Water.BaseColor.String())
}
