// Package raster is a software render backend. It draws frames into an
// in-memory image so scenes can be rendered and captured without a GPU or
// a window.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/poolviz/internal/engine/capture"
	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/internal/logger"
)

// MaxSupersample bounds Options.Supersample.
const MaxSupersample = 4

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and filters
	// down on Snapshot. Values below 1 mean 1; values above MaxSupersample
	// are rejected.
	Supersample int
	// ShadowResolution overrides the sun frustum resolution when > 0.
	ShadowResolution int
}

// Renderer rasterizes frames on the CPU.
type Renderer struct {
	opts Options

	color  *image.RGBA
	depth  []float32
	shadow shadowMap

	rendered bool
	log      *zap.Logger
}

var _ render.Backend = (*Renderer)(nil)

// New creates a renderer with an internal target of the requested size.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample > MaxSupersample {
		return nil, fmt.Errorf("raster: supersample %d exceeds %d", opts.Supersample, MaxSupersample)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	r := &Renderer{opts: opts, log: logger.Named("raster")}
	r.allocate()
	return r, nil
}

func (r *Renderer) allocate() {
	w := r.opts.Width * r.opts.Supersample
	h := r.opts.Height * r.opts.Supersample
	r.color = image.NewRGBA(image.Rect(0, 0, w, h))
	r.depth = make([]float32, w*h)
	r.rendered = false
}

// Size returns the output size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.opts.Width, r.opts.Height
}

// Resize changes the output size. The previous image is discarded.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	if width == r.opts.Width && height == r.opts.Height {
		return nil
	}
	r.opts.Width, r.opts.Height = width, height
	r.allocate()
	return nil
}

// Render draws f. Opaque items are drawn first with depth writes, then
// translucent items are blended over them.
func (r *Renderer) Render(f *render.Frame) error {
	if f == nil {
		return fmt.Errorf("raster: nil frame")
	}
	w, h := r.color.Rect.Dx(), r.color.Rect.Dy()

	bg := toSRGB(f.Background.Linear())
	for i := 0; i < len(r.color.Pix); i += 4 {
		r.color.Pix[i+0] = bg.R
		r.color.Pix[i+1] = bg.G
		r.color.Pix[i+2] = bg.B
		r.color.Pix[i+3] = 255
	}
	for i := range r.depth {
		r.depth[i] = 1
	}

	lights := prepareLights(f)
	if f.Shadows && f.Sun.CastShadow {
		res := f.Sun.Shadow.Resolution
		if r.opts.ShadowResolution > 0 {
			res = r.opts.ShadowResolution
		}
		r.shadow.render(f, res)
		lights.shadow = &r.shadow
	}

	vp := f.ViewProjection()
	var drawn int
	for _, it := range f.Opaque() {
		drawn += r.drawItem(it, vp, lights, w, h, false)
	}
	for _, it := range f.Blended() {
		drawn += r.drawItem(it, vp, lights, w, h, true)
	}

	r.rendered = true
	r.log.Debug("frame rendered",
		zap.Int("items", len(f.Items)),
		zap.Int("triangles", drawn),
		zap.Int("width", w),
		zap.Int("height", h))
	return nil
}

// Snapshot returns a copy of the last rendered image at output size.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if !r.rendered {
		return nil, render.ErrNoFrame
	}
	if r.opts.Supersample == 1 {
		out := image.NewRGBA(r.color.Rect)
		copy(out.Pix, r.color.Pix)
		return out, nil
	}
	return capture.Downscale(r.color, r.opts.Width, r.opts.Height), nil
}

func (r *Renderer) blend(idx int, c [3]float32, alpha float32) {
	p := r.color.Pix[idx : idx+4 : idx+4]
	dst := fromSRGB(color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
	out := [3]float32{
		c[0]*alpha + dst[0]*(1-alpha),
		c[1]*alpha + dst[1]*(1-alpha),
		c[2]*alpha + dst[2]*(1-alpha),
	}
	s := toSRGB(out)
	p[0], p[1], p[2] = s.R, s.G, s.B
}

func (r *Renderer) put(idx int, c [3]float32) {
	s := toSRGB(c)
	p := r.color.Pix[idx : idx+4 : idx+4]
	p[0], p[1], p[2], p[3] = s.R, s.G, s.B, 255
}
