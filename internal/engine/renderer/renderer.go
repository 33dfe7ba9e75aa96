// Package renderer is the OpenGL render backend used by the interactive
// viewer. It draws frames into an offscreen target that is blitted to the
// window and can be read back for captures.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/poolviz/internal/engine/framebuffer"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/render"
	"github.com/Faultbox/poolviz/internal/engine/renderer/shaders"
	"github.com/Faultbox/poolviz/internal/engine/shader"
	"github.com/Faultbox/poolviz/internal/logger"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// ShadowResolution overrides the sun frustum resolution when > 0.
	ShadowResolution int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	scene *shader.Program
	depth *shader.Program

	target *framebuffer.Framebuffer
	shadow *shadowMap
	meshes *meshCache
	lights *lighting.PointLightBuffer

	rendered bool
	log      *zap.Logger
}

var _ render.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: newMeshCache(),
		lights: lighting.NewPointLightBuffer(),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	r.scene, err = shader.New("scene", shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, err
	}
	r.depth, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		r.scene.Delete()
		return nil, err
	}

	r.target, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		r.scene.Delete()
		r.depth.Delete()
		return nil, err
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.meshes.destroy()
	if r.shadow != nil {
		r.shadow.destroy()
	}
	r.target.Destroy()
	r.scene.Delete()
	r.depth.Delete()
}

// Size returns the offscreen target size.
func (r *Renderer) Size() (int, int) {
	return r.target.Size()
}

// Resize changes the offscreen target size. The next Snapshot needs a new
// Render.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.target.Resize(width, height)
	r.rendered = false
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws f into the offscreen target: the sun depth pass, opaque
// items with depth writes, then blended items over them.
func (r *Renderer) Render(f *render.Frame) error {
	if f == nil {
		return fmt.Errorf("renderer: nil frame")
	}

	lightMatrix := f.Sun.LightMatrix()
	shadows := f.Shadows && f.Sun.CastShadow
	if shadows {
		if err := r.renderShadows(f, lightMatrix); err != nil {
			return err
		}
	}

	r.target.Bind()
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	bg := f.Background.Linear()
	r.target.Clear(bg[0], bg[1], bg[2], 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)

	r.scene.Use()
	r.setFrameUniforms(f, lightMatrix, shadows)

	vp := f.ViewProjection()
	r.scene.SetMat4("uViewProj", vp)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, it := range f.Opaque() {
		r.drawItem(it)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, it := range f.Blended() {
		r.drawItem(it)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(0)

	gl.Disable(gl.FRAMEBUFFER_SRGB)
	r.target.Unbind()

	if freed := r.meshes.sweep(); freed > 0 {
		r.log.Debug("released meshes", zap.Int("count", freed))
	}
	r.rendered = true
	return nil
}

func (r *Renderer) renderShadows(f *render.Frame, lightMatrix math.Mat4) error {
	res := f.Sun.Shadow.Resolution
	if r.config.ShadowResolution > 0 {
		res = r.config.ShadowResolution
	}
	if r.shadow == nil || int(r.shadow.resolution) != res {
		if r.shadow != nil {
			r.shadow.destroy()
		}
		sm, err := newShadowMap(res)
		if err != nil {
			r.shadow = nil
			return err
		}
		r.shadow = sm
	}

	r.shadow.bind()
	r.depth.Use()
	r.depth.SetMat4("uLightViewProj", lightMatrix)
	for _, it := range f.Opaque() {
		if !it.CastShadow || it.Mesh == nil {
			continue
		}
		setCulling(it)
		r.depth.SetMat4("uModel", it.Model)
		r.meshes.get(it.Mesh).draw()
	}
	r.shadow.unbind()
	return nil
}

func (r *Renderer) setFrameUniforms(f *render.Frame, lightMatrix math.Mat4, shadows bool) {
	p := r.scene
	p.SetVec3("uEye", f.Eye.Array())
	p.SetMat4("uLightViewProj", lightMatrix)
	p.SetVec3("uAmbient", scale(f.Ambient.Color.Linear(), f.Ambient.Intensity))
	p.SetVec3("uSunDir", f.Sun.Direction().Array())
	p.SetVec3("uSunColor", scale(f.Sun.Color.Linear(), f.Sun.Intensity))
	p.SetVec3("uFillDir", f.Fill.Direction().Array())
	p.SetVec3("uFillColor", scale(f.Fill.Color.Linear(), f.Fill.Intensity))

	p.SetBool("uShadows", shadows && r.shadow != nil)
	if r.shadow != nil {
		r.shadow.bindTexture(gl.TEXTURE0)
		p.SetInt("uShadowMap", 0)
		p.SetFloat("uShadowTexel", 1/float32(r.shadow.resolution))
	}

	if dropped := r.lights.SetLights(f.Points); dropped > 0 {
		r.log.Warn("point lights dropped",
			zap.Int("lights", len(f.Points)),
			zap.Int("dropped", dropped),
			zap.Int("max", lighting.MaxPointLights))
	}
	p.SetInt("uPointCount", int32(r.lights.Count))
	p.SetVec3Array("uPointPos", r.lights.Positions(), r.lights.Count)
	p.SetVec3Array("uPointColor", r.lights.Colors(), r.lights.Count)
	p.SetVec2Array("uPointFalloff", r.lights.Falloffs(), r.lights.Count)
}

func (r *Renderer) drawItem(it render.Item) {
	if it.Mesh == nil || len(it.Mesh.Indices) == 0 {
		return
	}
	p := r.scene
	a := it.Appearance

	setCulling(it)
	p.SetMat4("uModel", it.Model)
	p.SetMat4("uNormalMatrix", it.Model.NormalMatrix())
	p.SetVec3("uBaseColor", a.BaseColor.Linear())
	p.SetFloat("uRoughness", a.Roughness)
	p.SetFloat("uMetalness", a.Metalness)
	p.SetVec3("uEmissive", scale(a.Emissive.Linear(), a.EmissiveIntensity))
	opacity := a.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	p.SetFloat("uOpacity", opacity)
	var coat, coatRough float32
	if a.Clearcoat != nil {
		coat = *a.Clearcoat
	}
	if a.ClearcoatRoughness != nil {
		coatRough = *a.ClearcoatRoughness
	}
	p.SetFloat("uClearcoat", coat)
	p.SetFloat("uClearcoatRoughness", coatRough)
	p.SetBool("uUnlit", it.Unlit)

	r.meshes.get(it.Mesh).draw()
}

func setCulling(it render.Item) {
	if it.Mesh.DoubleSided || it.Appearance.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}
}

// Present blits the last frame to the window's default framebuffer.
func (r *Renderer) Present(windowWidth, windowHeight int) {
	r.target.BlitToScreen(windowWidth, windowHeight)
}

// Snapshot reads the offscreen target back, top row first.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if !r.rendered {
		return nil, render.ErrNoFrame
	}
	return r.target.Snapshot()
}

func scale(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}
