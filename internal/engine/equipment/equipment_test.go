package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Faultbox/poolviz/pkg/math"
)

func TestBuildEveryKind(t *testing.T) {
	for _, k := range Kinds {
		g := Build(k)
		require.NotEmpty(t, g.Parts, k.String())
		assert.Equal(t, k, g.Kind)
		assert.False(t, g.Bounds.Empty(), k.String())
		for _, p := range g.Parts {
			assert.NotZero(t, p.Mesh.TriangleCount(), "%s/%s", k, p.Name)
			assert.True(t, g.Bounds.Union(p.Mesh.Bounds) == g.Bounds, "%s/%s outside group bounds", k, p.Name)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, k := range Kinds {
		a, b := Build(k), Build(k)
		require.Len(t, b.Parts, len(a.Parts))
		for i := range a.Parts {
			assert.Equal(t, a.Parts[i].Mesh.Vertices, b.Parts[i].Mesh.Vertices)
		}
		assert.NotSame(t, a.Parts[0].Mesh, b.Parts[0].Mesh)
	}
}

func TestOnlyLightsEmit(t *testing.T) {
	for _, k := range Kinds {
		g := Build(k)
		if k == Light {
			require.NotNil(t, g.Light)
			assert.Equal(t, float32(4), g.Light.Range)
			assert.Equal(t, float32(2), g.Light.Intensity)
			continue
		}
		assert.Nil(t, g.Light, k.String())
	}
}

func TestFilterParts(t *testing.T) {
	g := Build(Filter)
	names := make([]string, 0, len(g.Parts))
	for _, p := range g.Parts {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"tank", "base", "valve", "handle", "gauge", "pipe"}, names)
	// Sits on the ground with the valve handle on top.
	assert.InDelta(t, 0, g.Bounds.Min.Y, 1e-5)
	assert.InDelta(t, 0.99, g.Bounds.Max.Y, 1e-3)
}

func TestLadderRails(t *testing.T) {
	g := Build(Ladder)
	assert.Greater(t, g.Bounds.Max.Y, float32(1.4))
	assert.Less(t, g.Bounds.Max.Y, float32(1.5))
	assert.InDelta(t, -0.27, g.Bounds.Min.X, 1e-3)
	assert.InDelta(t, 0.27, g.Bounds.Max.X, 1e-3)

	steps := 0
	for _, p := range g.Parts {
		if p.Name == "step" {
			steps++
		}
	}
	assert.Equal(t, len(LadderSteps), steps)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Skimmer", Label(Skimmer, language.English))
	assert.Equal(t, "Фильтровальная установка", Label(Filter, language.Russian))
	assert.Equal(t, "Прожектор", Label(Light, language.MustParse("ru-RU")))
	assert.Equal(t, "Heater", Label(Heater, language.German))
	assert.Equal(t, "Лестница", Build(Ladder).Label(language.Russian))
	assert.Equal(t, "unknown", Label(Kind(42), language.English))
	assert.Equal(t, language.English, ParseLanguage("not a tag!"))
}

func TestNextLanguageCycles(t *testing.T) {
	assert.Equal(t, []language.Tag{language.English, language.Russian}, Languages())
	assert.Equal(t, language.Russian, NextLanguage(language.English))
	assert.Equal(t, language.English, NextLanguage(language.Russian))
	assert.Equal(t, language.English, NextLanguage(language.MustParse("ru-RU")))
	assert.Equal(t, language.English, NextLanguage(language.German))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Heater")
	assert.True(t, ok)
	assert.Equal(t, Heater, k)
	_, ok = ParseKind("slide")
	assert.False(t, ok)
}

func TestPlaceCountLaw(t *testing.T) {
	tests := []struct {
		length, width, depth float64
		lights               int
	}{
		{10, 5, 1.5, 3},
		{6, 3, 1.2, 1},
		{6.01, 3, 1.2, 3},
		{4, 4, 0.8, 1},
		{25, 12, 2.5, 3},
	}
	for _, tt := range tests {
		counts := Count(Place(tt.length, tt.width, tt.depth))
		assert.Equal(t, tt.lights, counts[Light], "%vx%v", tt.length, tt.width)
		assert.Equal(t, 1, counts[Ladder])
		assert.Equal(t, 1, counts[Skimmer])
		assert.Equal(t, 1, counts[Filter])
		assert.Equal(t, 1, counts[Heater])
		assert.Len(t, counts, 5)
	}
}

func TestPlaceScenario(t *testing.T) {
	placed := Place(10, 5, 1.5)
	require.Len(t, placed, 7)

	byKind := map[Kind][]Instance{}
	for _, in := range placed {
		byKind[in.Kind] = append(byKind[in.Kind], in)
	}

	ladder := byKind[Ladder][0]
	assert.InDelta(t, 2.0, ladder.Position.X, 1e-6)
	assert.InDelta(t, -0.75, ladder.Position.Y, 1e-6)
	assert.InDelta(t, 4.5, ladder.Position.Z, 1e-6)

	zs := []float32{}
	for _, l := range byKind[Light] {
		assert.InDelta(t, 2.19, l.Position.X, 1e-6)
		// Midway between the floor and the water surface.
		assert.InDelta(t, (-0.75+0.6)/2, l.Position.Y, 1e-6)
		zs = append(zs, l.Position.Z)
	}
	assert.ElementsMatch(t, []float32{0, 2.5, -2.5}, zs)

	skimmer := byKind[Skimmer][0]
	assert.InDelta(t, -2.19, skimmer.Position.X, 1e-6)
	assert.InDelta(t, 0.6, skimmer.Position.Y, 1e-6)

	filter, heater := byKind[Filter][0], byKind[Heater][0]
	assert.InDelta(t, 4.5, filter.Position.X, 1e-6)
	assert.InDelta(t, 5.5, heater.Position.X, 1e-6)
	assert.Equal(t, filter.Position.Z, heater.Position.Z)
	assert.InDelta(t, -5, filter.Position.Z, 1e-6)
}

func TestPlacedFixturesFaceThePool(t *testing.T) {
	for _, in := range Place(10, 5, 1.5) {
		if in.Kind != Light && in.Kind != Skimmer {
			continue
		}
		facing := in.Transform().TransformDirection(math.V3(0, 0, 1))
		// Working face points back toward the basin axis.
		assert.Less(t, facing.X*in.Position.X, float32(0), in.Kind.String())
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	assert.Equal(t, Place(8, 4, 1.4), Place(8, 4, 1.4))
}
