// poolshot renders pool scenes to PNG without a window and prints the
// data behind them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/poolviz/internal/config"
	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/internal/logger"
	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
	"github.com/Faultbox/poolviz/pkg/poolscene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render", "r":
		cmdRender(args)
	case "place":
		cmdPlace(args)
	case "presets":
		cmdPresets()
	case "materials":
		cmdMaterials()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`poolshot - headless pool scene renderer

Usage:
  poolshot <command> [options]

Commands:
  render [flags]           Render the scene to a PNG file
  place [flags]            List equipment placed for a basin
  presets                  List lighting presets
  materials                List basin finishes

Examples:
  poolshot render -pool-length 12 -pool-width 6 -shape oval -o oval.png
  poolshot render -material liner -lighting night -supersample 2
  poolshot place -pool-length 5 -lang ru
  poolshot place -kind light,ladder`)
}

// load parses args with the shared config flags plus extra flags
// registered by the caller, and validates the result.
func load(name string, args []string, extra func(fs *flag.FlagSet)) (*config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := config.BindFlags(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWith(f)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, ""); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}

func mustLoad(name string, args []string, extra func(fs *flag.FlagSet)) *config.Config {
	cfg, err := load(name, args, extra)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(2)
	}
	return cfg
}

func cmdRender(args []string) {
	var output, dir string
	cfg := mustLoad("render", args, func(fs *flag.FlagSet) {
		fs.StringVar(&output, "o", "", "Output file (default: <basin name>.png)")
		fs.StringVar(&dir, "dir", "", "Output directory (default: capture dir from config)")
	})
	defer logger.Sync()

	spec := cfg.BasinSpec()
	h, err := poolscene.RenderPoolScene(spec, spec.Material, cfg.LightingPreset(),
		poolscene.WithSize(cfg.Graphics.Width, cfg.Graphics.Height),
		poolscene.WithSupersample(cfg.Graphics.Supersample),
		poolscene.WithShadows(cfg.Graphics.Shadows),
		poolscene.WithGrid(cfg.UI.ShowGrid),
		poolscene.WithLanguage(cfg.Language()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, name, err := poolscene.CaptureFrame(h, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if output == "" && dir == "" {
		dir = cfg.Capture.Dir
	}
	path := filepath.Join(dir, name)
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Basin:    %s (depth %gm)\n", spec.Name(), spec.Depth)
	fmt.Printf("Finish:   %s\n", spec.Material)
	fmt.Printf("Lighting: %s\n", cfg.LightingPreset())
	fmt.Printf("Wrote %s (%dx%d, %.1f KB)\n", path, cfg.Graphics.Width, cfg.Graphics.Height, float64(len(data))/1024)
}

func cmdPlace(args []string) {
	var kinds string
	cfg := mustLoad("place", args, func(fs *flag.FlagSet) {
		fs.StringVar(&kinds, "kind", "", "Comma-separated equipment kinds to list (default: all)")
	})
	spec := cfg.BasinSpec()
	lang := cfg.Language()

	keep, err := parseKinds(kinds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	instances := filterKinds(poolscene.Placement(spec.Length, spec.Width, spec.Depth), keep)
	fmt.Printf("Basin: %s, depth %gm, water at %+.2fm\n", spec.Name(), spec.Depth, pool.WaterLevel(spec.Depth))
	fmt.Println()
	for _, in := range instances {
		p := in.Position
		fmt.Printf("  %-28s (%6.2f, %6.2f, %6.2f)  yaw %4.0f°\n",
			equipment.Label(in.Kind, lang), p.X, p.Y, p.Z, in.Rotation.Y*180/math.Pi)
	}

	counts := equipment.Count(instances)
	present := make([]equipment.Kind, 0, len(counts))
	for k := range counts {
		present = append(present, k)
	}
	sort.Slice(present, func(i, j int) bool { return present[i] < present[j] })
	fmt.Println()
	for _, k := range present {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
}

// parseKinds reads a -kind list. An empty list selects every kind.
func parseKinds(list string) (map[equipment.Kind]bool, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	keep := make(map[equipment.Kind]bool)
	for _, name := range strings.Split(list, ",") {
		k, ok := equipment.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown equipment kind %q", strings.TrimSpace(name))
		}
		keep[k] = true
	}
	return keep, nil
}

func filterKinds(instances []equipment.Instance, keep map[equipment.Kind]bool) []equipment.Instance {
	if keep == nil {
		return instances
	}
	out := instances[:0:0]
	for _, in := range instances {
		if keep[in.Kind] {
			out = append(out, in)
		}
	}
	return out
}

func cmdPresets() {
	for _, p := range lighting.Presets {
		r := lighting.Get(p)
		fmt.Printf("  %-8s sun %s x%.1f  fill %s x%.1f  ambient %.1f  sky %s (%s)\n",
			p, r.Sun.Color, r.Sun.Intensity, r.Fill.Color, r.Fill.Intensity,
			r.Ambient.Intensity, r.Background, r.Environment)
	}
}

func cmdMaterials() {
	for _, id := range pool.Materials {
		a := material.Lookup(id)
		coat := "-"
		if a.Clearcoat != nil {
			coat = fmt.Sprintf("%.1f", *a.Clearcoat)
		}
		fmt.Printf("  %-10s base %s  roughness %.2f  metalness %.2f  clearcoat %s\n",
			id, a.BaseColor, a.Roughness, a.Metalness, coat)
	}
}
