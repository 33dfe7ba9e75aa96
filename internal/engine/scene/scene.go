// Package scene composes a pool scene: basin, water, equipment, lighting
// and camera. It is driven one frame at a time by the host and draws
// through a render.Backend.
package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Faultbox/poolviz/internal/engine/camera"
	"github.com/Faultbox/poolviz/internal/engine/capture"
	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/engine/geometry"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/material"
	"github.com/Faultbox/poolviz/internal/engine/picking"
	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/internal/engine/water"
	"github.com/Faultbox/poolviz/internal/logger"
	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Grid helper layout.
const (
	GridSize         = 20
	GridDivisions    = 20
	GridSectionEvery = 5

	gridCellWidth    = 0.02
	gridSectionWidth = 0.04
)

// LabelLift is how far above an equipment group its hover label sits.
const LabelLift = 1.0

var (
	gridCellLook    = material.Solid("#6f6f6f", 1, 0)
	gridSectionLook = material.Solid("#9d4b4b", 1, 0)
)

// Config contains scene configuration options.
type Config struct {
	Shadows  bool
	Grid     bool
	Water    water.Options
	Camera   camera.Settings
	Language language.Tag
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Shadows:  true,
		Grid:     true,
		Water:    water.DefaultOptions(),
		Camera:   camera.DefaultSettings(),
		Language: language.English,
	}
}

// Option customises a Scene.
type Option func(*Scene)

// WithClock replaces time.Now as the source of frame times.
func WithClock(now func() time.Time) Option {
	return func(s *Scene) { s.now = now }
}

// Placed is an equipment group positioned around the basin.
type Placed struct {
	equipment.Instance
	Group  *equipment.Group
	Model  math.Mat4
	Bounds geometry.Bounds // world space
}

// Hover describes the equipment under the cursor.
type Hover struct {
	Index  int
	Kind   equipment.Kind
	Label  string
	Anchor math.Vec3
}

// Scene holds everything drawn for one basin.
type Scene struct {
	cfg     Config
	backend render.Backend
	now     func() time.Time
	log     *zap.Logger

	Camera *camera.OrbitCamera

	spec   pool.BasinSpec
	built  bool
	look   material.Appearance
	preset lighting.Preset
	rig    lighting.Rig

	basin        *geometry.Mesh
	surface      *water.Surface
	level        float32
	placed       []Placed
	gridCells    *geometry.Mesh
	gridSections *geometry.Mesh

	start     time.Time
	lastFrame time.Time
	itemHint  int
	frames    uint64
}

// New creates an empty scene drawing through backend. Call Apply to give
// it a basin.
func New(cfg Config, backend render.Backend, opts ...Option) *Scene {
	s := &Scene{
		cfg:     cfg,
		backend: backend,
		now:     time.Now,
		log:     logger.Named("scene"),
		Camera:  camera.NewOrbitCamera(cfg.Camera),
		preset:  lighting.Day,
		rig:     lighting.Get(lighting.Day),
		look:    material.Lookup(pool.Concrete),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	s.lastFrame = s.start
	s.SetGrid(cfg.Grid)
	return s
}

// SetGrid shows or hides the reference grid.
func (s *Scene) SetGrid(on bool) {
	s.cfg.Grid = on
	if on && s.gridCells == nil {
		s.gridCells, _ = geometry.Grid(GridSize, GridDivisions, GridSectionEvery, gridCellWidth)
		_, s.gridSections = geometry.Grid(GridSize, GridDivisions, GridSectionEvery, gridSectionWidth)
	}
}

// SetShadows turns sun shadows on or off.
func (s *Scene) SetShadows(on bool) {
	s.cfg.Shadows = on
}

// SetWater changes the ripple and grid resolution of the water surface,
// rebuilding it when the basin exists. It reports whether anything changed.
func (s *Scene) SetWater(opts water.Options) bool {
	if opts == s.cfg.Water {
		return false
	}
	s.cfg.Water = opts
	if s.built {
		s.surface = water.New(s.spec.Length, s.spec.Width, s.spec.Shape, opts)
		s.surface.Advance(s.elapsed(s.lastFrame))
	}
	return true
}

// SetCamera replaces the camera limits and sensitivities.
func (s *Scene) SetCamera(settings camera.Settings) {
	s.cfg.Camera = settings
	s.Camera.Apply(settings)
}

// Config returns the current scene settings.
func (s *Scene) Config() Config { return s.cfg }

// Apply sets the basin, finish and lighting. Geometry is rebuilt only
// when the dimensions or shape differ from the current basin; the return
// value reports whether that happened.
func (s *Scene) Apply(spec pool.BasinSpec, preset lighting.Preset) bool {
	rebuilt := false
	if !s.built || spec.Geometry() != s.spec.Geometry() {
		s.rebuild(spec)
		rebuilt = true
	}
	s.SetMaterial(spec.Material)
	s.SetLightingPreset(preset)
	return rebuilt
}

func (s *Scene) rebuild(spec pool.BasinSpec) {
	first := !s.built
	s.spec = spec
	s.built = true

	s.basin = geometry.BuildBasin(spec.Length, spec.Width, spec.Depth, spec.Shape)
	s.surface = water.New(spec.Length, spec.Width, spec.Shape, s.cfg.Water)
	s.level = water.Level(spec.Depth)
	s.surface.Advance(s.elapsed(s.lastFrame))

	instances := equipment.Place(spec.Length, spec.Width, spec.Depth)
	s.placed = make([]Placed, 0, len(instances))
	for _, in := range instances {
		g := equipment.Build(in.Kind)
		m := in.Transform()
		s.placed = append(s.placed, Placed{
			Instance: in,
			Group:    g,
			Model:    m,
			Bounds:   g.Bounds.Transform(m),
		})
	}

	s.fitShadow()
	if !first {
		s.Camera.FitToBounds(s.basin.Bounds)
	}

	s.log.Debug("basin rebuilt",
		zap.String("basin", spec.Name()),
		zap.Float64("depth", spec.Depth),
		zap.Int("basin_vertices", s.basin.VertexCount()),
		zap.Int("water_vertices", s.surface.VertexCount()),
		zap.Int("equipment", len(s.placed)))
}

// SetMaterial swaps the basin finish without touching geometry.
func (s *Scene) SetMaterial(id pool.MaterialID) {
	changed := s.spec.Material != id
	s.spec.Material = id
	s.look = material.Lookup(id)
	if changed {
		s.log.Debug("material changed", zap.Stringer("material", id))
	}
}

// SetLightingPreset swaps the lighting rig. Selecting the current preset
// again changes nothing and returns false.
func (s *Scene) SetLightingPreset(p lighting.Preset) bool {
	if p == s.preset {
		return false
	}
	s.preset = p
	s.rig = lighting.Get(p)
	s.fitShadow()
	s.log.Debug("lighting preset changed", zap.Stringer("preset", p))
	return true
}

// fitShadow grows the preset's sun frustum when the scene outgrows it.
func (s *Scene) fitShadow() {
	if s.basin == nil {
		return
	}
	base := lighting.Get(s.preset).Sun.Shadow
	s.rig.Sun.Shadow = base.Fit(s.rig.Sun.Position, s.rig.Sun.Target, s.Bounds())
}

// Frame advances the water to the time elapsed since the scene started and
// renders.
func (s *Scene) Frame(now time.Time) error {
	dt := float32(now.Sub(s.lastFrame).Seconds())
	if dt < 0 {
		dt = 0
	}
	s.lastFrame = now
	s.surface.Advance(s.elapsed(now))
	s.Camera.Update(dt)
	if s.backend == nil {
		return nil
	}
	return s.render()
}

// Tick is Frame at the scene clock's current time.
func (s *Scene) Tick() error {
	return s.Frame(s.now())
}

func (s *Scene) elapsed(now time.Time) float32 {
	t := now.Sub(s.start).Seconds()
	if t < 0 {
		return 0
	}
	return float32(t)
}

func (s *Scene) render() error {
	if s.backend == nil {
		return capture.ErrNoTarget
	}
	if err := s.backend.Render(s.BuildFrame()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	s.frames++
	return nil
}

// Capture renders the current state once more and returns it as a PNG.
// An empty filename is replaced by the basin's default capture name.
func (s *Scene) Capture(filename string) (*capture.Image, error) {
	if s.backend == nil {
		return nil, capture.ErrNoTarget
	}
	if err := s.render(); err != nil {
		return nil, err
	}
	img, err := s.backend.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("reading frame: %w", err)
	}
	if filename == "" {
		filename = capture.DefaultFilename(s.spec)
	}
	out, err := capture.Encode(img, filename)
	if err != nil {
		return nil, err
	}
	s.log.Debug("frame captured",
		zap.String("file", out.Filename),
		zap.Int("width", out.Width),
		zap.Int("height", out.Height),
		zap.Int("bytes", len(out.PNG)))
	return out, nil
}

// BuildFrame describes the current scene for a backend. Each call returns a
// new Frame that later calls leave untouched.
func (s *Scene) BuildFrame() *render.Frame {
	w, h := 1, 1
	if s.backend != nil {
		w, h = s.backend.Size()
	}
	aspect := float32(w) / float32(max(h, 1))

	f := &render.Frame{
		View:       s.Camera.ViewMatrix(),
		Projection: s.Camera.ProjectionMatrix(aspect),
		Eye:        s.Camera.Position(),
		Ambient:    s.rig.Ambient,
		Sun:        s.rig.Sun,
		Fill:       s.rig.Fill,
		Points:     s.rig.PointLights(),
		Background: s.rig.Background,
		Shadows:    s.cfg.Shadows,
	}

	items := make([]render.Item, 0, s.itemHint)
	if s.cfg.Grid {
		deck := math.Translate(0, float32(s.spec.Depth/2)+0.001, 0)
		items = append(items,
			render.Item{Name: "grid", Mesh: s.gridCells, Model: deck, Appearance: gridCellLook, Unlit: true},
			render.Item{Name: "grid-sections", Mesh: s.gridSections, Model: deck, Appearance: gridSectionLook, Unlit: true},
		)
	}
	if s.built {
		items = append(items, render.Item{
			Name:       "basin",
			Mesh:       s.basin,
			Model:      math.Identity(),
			Appearance: s.look,
			CastShadow: true,
		})
		for _, p := range s.placed {
			for _, part := range p.Group.Parts {
				items = append(items, render.Item{
					Name:       p.Kind.String() + "/" + part.Name,
					Mesh:       part.Mesh,
					Model:      p.Model,
					Appearance: part.Appearance,
					CastShadow: true,
				})
			}
			if p.Group.Light != nil {
				f.Points = append(f.Points, p.Group.Light.Transformed(p.Model))
			}
		}
		items = append(items, render.Item{
			Name:       "water",
			Mesh:       s.surface.Mesh,
			Model:      water.ModelMatrix(s.level),
			Appearance: material.Water,
		})
	}
	s.itemHint = len(items)
	f.Items = items
	return f
}

// LabelAt returns the equipment under the screen position (x, y) in
// backend pixels.
func (s *Scene) LabelAt(x, y float32) (Hover, bool) {
	if s.backend == nil || len(s.placed) == 0 {
		return Hover{}, false
	}
	w, h := s.backend.Size()
	aspect := float32(w) / float32(max(h, 1))
	vp := s.Camera.ProjectionMatrix(aspect).Mul(s.Camera.ViewMatrix())
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), vp.Inverse())

	boxes := make([]geometry.Bounds, len(s.placed))
	for i, p := range s.placed {
		boxes[i] = p.Bounds
	}
	i := ray.Nearest(boxes)
	if i < 0 {
		return Hover{}, false
	}
	return s.hover(i), true
}

func (s *Scene) hover(i int) Hover {
	p := s.placed[i]
	c := p.Bounds.Center()
	return Hover{
		Index:  i,
		Kind:   p.Kind,
		Label:  p.Group.Label(s.cfg.Language),
		Anchor: math.V3(c.X, p.Bounds.Max.Y+LabelLift, c.Z),
	}
}

// SetLanguage changes the language of hover labels.
func (s *Scene) SetLanguage(lang language.Tag) {
	s.cfg.Language = lang
}

// Caption summarises the basin, finish and lighting, e.g.
// "pool-oval-10x5 | liner | sunset".
func (s *Scene) Caption() string {
	return s.spec.Name() + " | " + s.spec.Material.String() + " | " + s.preset.String()
}

// Spec returns the current basin.
func (s *Scene) Spec() pool.BasinSpec { return s.spec }

// Preset returns the current lighting preset.
func (s *Scene) Preset() lighting.Preset { return s.preset }

// Rig returns the active lighting rig.
func (s *Scene) Rig() lighting.Rig { return s.rig }

// Appearance returns the current basin finish.
func (s *Scene) Appearance() material.Appearance { return s.look }

// Basin returns the basin mesh, nil before the first Apply.
func (s *Scene) Basin() *geometry.Mesh { return s.basin }

// Water returns the water surface, nil before the first Apply.
func (s *Scene) Water() *water.Surface { return s.surface }

// Equipment returns the placed equipment. A rebuild replaces the slice
// rather than overwriting it.
func (s *Scene) Equipment() []Placed { return s.placed }

// Frames returns how many frames have been rendered.
func (s *Scene) Frames() uint64 { return s.frames }

// Bounds returns the world bounds of the basin and its equipment.
func (s *Scene) Bounds() geometry.Bounds {
	b := geometry.EmptyBounds()
	if s.basin != nil {
		b = b.Union(s.basin.Bounds)
	}
	for _, p := range s.placed {
		b = b.Union(p.Bounds)
	}
	return b
}
