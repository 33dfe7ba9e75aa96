// Package poolscene is the embedding API for the procedural pool scene:
// build a scene from a pool configuration, keep it in sync as the
// configuration changes, and capture rendered frames as PNG.
//
// A Handle is not safe for concurrent use. Drive it from one goroutine,
// typically the host's frame loop.
package poolscene

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/Faultbox/poolviz/internal/engine/capture"
	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/raster"
	"github.com/Faultbox/poolviz/internal/engine/scene"
	"github.com/Faultbox/poolviz/internal/pool"
)

// Re-exported configuration types.
type (
	BasinSpec      = pool.BasinSpec
	Shape          = pool.Shape
	MaterialID     = pool.MaterialID
	LightingPreset = lighting.Preset
	Instance       = equipment.Instance
)

const (
	Rectangular = pool.Rectangular
	Oval        = pool.Oval

	Concrete  = pool.Concrete
	Composite = pool.Composite
	Liner     = pool.Liner

	Day    = lighting.Day
	Sunset = lighting.Sunset
	Night  = lighting.Night
)

// Default output size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// MaxSupersample is the largest factor WithSupersample accepts.
const MaxSupersample = raster.MaxSupersample

// ErrInvalidOutput is returned for an output size below one pixel or a
// supersample factor outside 1..MaxSupersample.
var ErrInvalidOutput = errors.New("poolscene: invalid output settings")

type options struct {
	width, height int
	supersample   int
	scene         scene.Config
}

// Option configures RenderPoolScene.
type Option func(*options)

// WithSize sets the rendered image size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithSupersample renders at factor times the size and filters down. The
// factor must be between 1 and MaxSupersample.
func WithSupersample(factor int) Option {
	return func(o *options) { o.supersample = factor }
}

// WithShadows toggles sun shadows.
func WithShadows(enabled bool) Option {
	return func(o *options) { o.scene.Shadows = enabled }
}

// WithGrid toggles the ground grid.
func WithGrid(enabled bool) Option {
	return func(o *options) { o.scene.Grid = enabled }
}

// WithLanguage sets the language of equipment labels.
func WithLanguage(lang language.Tag) Option {
	return func(o *options) { o.scene.Language = lang }
}

// Handle is a live pool scene.
type Handle struct {
	scene   *scene.Scene
	backend *raster.Renderer
}

// RenderPoolScene builds a scene for spec with the given finish and
// lighting and renders its first frame. spec.Material is ignored in favour
// of materialID.
func RenderPoolScene(spec BasinSpec, materialID MaterialID, preset LightingPreset, opts ...Option) (*Handle, error) {
	o := options{
		width:       DefaultWidth,
		height:      DefaultHeight,
		supersample: 1,
		scene:       scene.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidOutput, o.width, o.height)
	}
	if o.supersample < 1 || o.supersample > MaxSupersample {
		return nil, fmt.Errorf("%w: supersample %d, want 1..%d", ErrInvalidOutput, o.supersample, MaxSupersample)
	}

	backend, err := raster.New(raster.Options{
		Width:       o.width,
		Height:      o.height,
		Supersample: o.supersample,
	})
	if err != nil {
		return nil, fmt.Errorf("creating render target: %w", err)
	}

	h := &Handle{
		scene:   scene.New(o.scene, backend),
		backend: backend,
	}
	spec.Material = materialID
	h.scene.Apply(spec, preset)
	if err := h.scene.Tick(); err != nil {
		return nil, err
	}
	return h, nil
}

// Update applies a new configuration. Geometry is rebuilt only when the
// dimensions or shape change; the result reports whether it was.
func (h *Handle) Update(spec BasinSpec, materialID MaterialID, preset LightingPreset) (bool, error) {
	if err := spec.Validate(); err != nil {
		return false, err
	}
	spec.Material = materialID
	return h.scene.Apply(spec, preset), nil
}

// Frame advances the water animation to now and renders.
func (h *Handle) Frame() error {
	return h.scene.Tick()
}

// Resize changes the output size.
func (h *Handle) Resize(width, height int) error {
	return h.backend.Resize(width, height)
}

// Scene exposes the underlying scene for camera control and hover labels.
func (h *Handle) Scene() *scene.Scene {
	return h.scene
}

// SetLightingPreset swaps the lighting rig in place.
func SetLightingPreset(h *Handle, preset LightingPreset) {
	h.scene.SetLightingPreset(preset)
}

// SetMaterial swaps the basin finish in place.
func SetMaterial(h *Handle, materialID MaterialID) {
	h.scene.SetMaterial(materialID)
}

// CaptureFrame renders the current state and returns it PNG-encoded with
// the file name to save it under: filename, or CaptureName when empty.
func CaptureFrame(h *Handle, filename string) ([]byte, string, error) {
	img, err := h.scene.Capture(filename)
	if err != nil {
		return nil, "", err
	}
	return img.PNG, img.Filename, nil
}

// CaptureName returns the suggested file name for captures of h.
func CaptureName(h *Handle) string {
	return capture.DefaultFilename(h.scene.Spec())
}

// Placement returns where equipment goes around a basin of the given
// dimensions.
func Placement(length, width, depth float64) []Instance {
	return equipment.Place(length, width, depth)
}
