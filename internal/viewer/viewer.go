// Package viewer runs the interactive pool viewer: window, GL backend,
// scene and the input loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/poolviz/internal/config"
	"github.com/Faultbox/poolviz/internal/engine/capture"
	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/engine/input"
	"github.com/Faultbox/poolviz/internal/engine/renderer"
	"github.com/Faultbox/poolviz/internal/engine/scene"
	"github.com/Faultbox/poolviz/internal/engine/window"
	"github.com/Faultbox/poolviz/internal/logger"
)

// Title is the window title prefix.
const Title = "PoolViz"

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	flags   *config.Flags
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	scene    *scene.Scene
	controls *input.Controller
	saver    *capture.Saver
	watcher  *config.Watcher

	events  []input.Event
	hovered string
	fps     int
	log     *zap.Logger
}

// New creates the window, the GL backend and the scene described by cfg.
// flags are re-applied whenever the config file is reloaded.
func New(cfg *config.Config, flags *config.Flags) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		flags: flags,
		saver: capture.NewSaver(cfg.Capture.Dir, cfg.Capture.Prefix),
		log:   logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scene = scene.New(cfg.Scene(), v.renderer)
	v.scene.Apply(cfg.BasinSpec(), cfg.LightingPreset())
	v.controls = input.NewController(v.scene.Camera)

	if path := config.Path(flags); path != "" {
		v.watcher, err = config.Watch(path, flags)
		if err != nil {
			v.log.Warn("config reload disabled", zap.String("path", path), zap.Error(err))
		} else {
			v.log.Info("watching config", zap.String("path", path))
		}
	}

	v.updateTitle()
	v.log.Info("viewer initialized",
		zap.String("basin", v.scene.Spec().Name()),
		zap.Stringer("lighting", v.scene.Preset()))
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()
	var budget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 && !v.cfg.Graphics.VSync {
		budget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	v.log.Info("starting render loop")

	for v.running {
		start := time.Now()

		v.events = v.window.PollEvents(v.events)
		for _, ev := range v.events {
			v.handle(v.controls.Handle(ev))
		}
		if !v.running {
			break
		}
		v.reload()

		if err := v.scene.Frame(start); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.renderer.Present(v.window.DrawableSize())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.fps = frameCount
			v.log.Debug("fps", zap.Int("count", frameCount))
			if v.cfg.UI.ShowFPS {
				v.updateTitle()
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) handle(a input.Action) {
	switch a.Kind {
	case input.ActionQuit:
		v.running = false

	case input.ActionResize:
		v.renderer.Resize(a.Width, a.Height)

	case input.ActionPreset:
		if v.scene.SetLightingPreset(a.Preset) {
			v.log.Info("lighting preset", zap.Stringer("preset", a.Preset))
			v.updateTitle()
		}

	case input.ActionCycleMaterial:
		next := v.scene.Spec().Material.Next()
		v.scene.SetMaterial(next)
		v.log.Info("material", zap.Stringer("material", next))
		v.updateTitle()

	case input.ActionToggleGrid:
		v.scene.SetGrid(!v.scene.Config().Grid)

	case input.ActionToggleLanguage:
		v.scene.SetLanguage(equipment.NextLanguage(v.scene.Config().Language))
		v.hovered = ""
		v.updateTitle()

	case input.ActionCapture:
		v.capture()

	case input.ActionHover:
		label := ""
		if h, ok := v.scene.LabelAt(float32(a.X), float32(a.Y)); ok {
			label = h.Label
		}
		if label != v.hovered {
			v.hovered = label
			if label != "" {
				v.log.Debug("hover", zap.String("label", label))
			}
			v.updateTitle()
		}
	}
}

func (v *Viewer) capture() {
	img, err := v.scene.Capture("")
	if err != nil {
		v.log.Error("capture failed", zap.Error(err))
		return
	}
	path, err := v.saver.Save(img)
	if err != nil {
		v.log.Error("saving capture failed", zap.Error(err))
		return
	}
	v.log.Info("capture saved", zap.String("path", path), zap.Int("bytes", len(img.PNG)))
}

// reload applies the newest config from the watcher, if any. The window
// size, vsync, FPS limit and shadow map resolution are read at startup only.
func (v *Viewer) reload() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg := <-v.watcher.Changes():
		v.cfg = cfg
		v.saver = capture.NewSaver(cfg.Capture.Dir, cfg.Capture.Prefix)
		sc := cfg.Scene()
		v.scene.SetGrid(sc.Grid)
		v.scene.SetShadows(sc.Shadows)
		v.scene.SetLanguage(sc.Language)
		v.scene.SetCamera(sc.Camera)
		if v.scene.SetWater(sc.Water) {
			v.log.Debug("water settings changed", zap.Int("segments", sc.Water.Segments))
		}
		rebuilt := v.scene.Apply(cfg.BasinSpec(), cfg.LightingPreset())
		v.log.Info("config reloaded",
			zap.String("basin", v.scene.Spec().Name()),
			zap.Bool("rebuilt", rebuilt))
		v.updateTitle()
	case err := <-v.watcher.Errors():
		v.log.Warn("config reload failed", zap.Error(err))
	default:
	}
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(title(v.scene.Caption(), v.hovered, v.fps, v.cfg.UI.ShowFPS))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
