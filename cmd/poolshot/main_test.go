package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/pkg/poolscene"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadRejectsOversizedSupersample(t *testing.T) {
	isolate(t)
	_, err := load("render", []string{"-supersample", "64"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supersample must be 1..4")
}

func TestLoadAcceptsValidFlags(t *testing.T) {
	isolate(t)
	var output string
	cfg, err := load("render", []string{"-supersample", "2", "-o", "x.png"}, func(fs *flag.FlagSet) {
		fs.StringVar(&output, "o", "", "")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Graphics.Supersample)
	assert.Equal(t, "x.png", output)
}

func TestParseKinds(t *testing.T) {
	keep, err := parseKinds("")
	require.NoError(t, err)
	assert.Nil(t, keep)

	keep, err = parseKinds("Light, ladder")
	require.NoError(t, err)
	assert.Equal(t, map[equipment.Kind]bool{equipment.Light: true, equipment.Ladder: true}, keep)

	_, err = parseKinds("light,slide")
	assert.ErrorContains(t, err, `"slide"`)
}

func TestFilterKinds(t *testing.T) {
	all := poolscene.Placement(10, 5, 1.5)

	assert.Len(t, filterKinds(all, nil), 7)

	lights := filterKinds(all, map[equipment.Kind]bool{equipment.Light: true})
	assert.Len(t, lights, 3)
	for _, in := range lights {
		assert.Equal(t, equipment.Light, in.Kind)
	}
	assert.Len(t, all, 7)
}
