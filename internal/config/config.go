// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/Faultbox/poolviz/internal/engine/camera"
	"github.com/Faultbox/poolviz/internal/engine/equipment"
	"github.com/Faultbox/poolviz/internal/engine/lighting"
	"github.com/Faultbox/poolviz/internal/engine/raster"
	"github.com/Faultbox/poolviz/internal/engine/scene"
	"github.com/Faultbox/poolviz/internal/engine/water"
	"github.com/Faultbox/poolviz/internal/pool"
	"github.com/Faultbox/poolviz/pkg/math"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Pool     PoolConfig     `yaml:"pool"`
	Camera   CameraConfig   `yaml:"camera"`
	Water    WaterConfig    `yaml:"water"`
	Capture  CaptureConfig  `yaml:"capture"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	FPSLimit    int  `yaml:"fps_limit"`
	Shadows     bool `yaml:"shadows"`
	Supersample int  `yaml:"supersample"` // headless renders only
}

// PoolConfig is the basin shown at startup.
type PoolConfig struct {
	Length   float64 `yaml:"length"`
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Shape    string  `yaml:"shape"`
	Material string  `yaml:"material"`
	Lighting string  `yaml:"lighting"`
}

// CameraConfig holds orbit camera limits and sensitivities.
type CameraConfig struct {
	FOV             float32 `yaml:"fov"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	MaxPolarAngle   float32 `yaml:"max_polar_angle"` // degrees from straight up
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	PanSensitivity  float32 `yaml:"pan_sensitivity"`
	FrameDuration   float32 `yaml:"frame_duration"`
}

// WaterConfig tunes the animated surface.
type WaterConfig struct {
	Segments  int     `yaml:"segments"`
	Amplitude float32 `yaml:"amplitude"`
	Speed     float32 `yaml:"speed"`
}

// CaptureConfig controls where captures are saved.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language string `yaml:"language"`
	ShowFPS  bool   `yaml:"show_fps"`
	ShowGrid bool   `yaml:"show_grid"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := camera.DefaultSettings()
	w := water.DefaultOptions()
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			FPSLimit:    0,
			Shadows:     true,
			Supersample: 1,
		},
		Pool: PoolConfig{
			Length:   10,
			Width:    5,
			Depth:    1.5,
			Shape:    pool.Rectangular.String(),
			Material: pool.Concrete.String(),
			Lighting: lighting.Day.String(),
		},
		Camera: CameraConfig{
			FOV:             cam.FOV,
			MinDistance:     cam.MinDistance,
			MaxDistance:     cam.MaxDistance,
			MaxPolarAngle:   90,
			DragSensitivity: cam.DragSensitivity,
			ZoomSensitivity: cam.ZoomSensitivity,
			PanSensitivity:  cam.PanSensitivity,
			FrameDuration:   cam.FrameDuration,
		},
		Water: WaterConfig{
			Segments:  w.Segments,
			Amplitude: w.Amplitude,
			Speed:     w.Speed,
		},
		Capture: CaptureConfig{
			Dir:    "captures",
			Prefix: "",
		},
		UI: UIConfig{
			Language: "en",
			ShowFPS:  false,
			ShowGrid: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// BasinSpec returns the configured basin, clamped to the supported range.
func (c *Config) BasinSpec() pool.BasinSpec {
	return pool.BasinSpec{
		Length:   c.Pool.Length,
		Width:    c.Pool.Width,
		Depth:    c.Pool.Depth,
		Shape:    pool.ParseShape(c.Pool.Shape),
		Material: pool.ParseMaterial(c.Pool.Material),
	}.Clamp()
}

// LightingPreset returns the configured preset.
func (c *Config) LightingPreset() lighting.Preset {
	return lighting.ParsePreset(c.Pool.Lighting)
}

// Language returns the configured label language.
func (c *Config) Language() language.Tag {
	return equipment.ParseLanguage(c.UI.Language)
}

// Scene returns the scene settings implied by the config.
func (c *Config) Scene() scene.Config {
	return scene.Config{
		Shadows: c.Graphics.Shadows,
		Grid:    c.UI.ShowGrid,
		Water: water.Options{
			Segments:  c.Water.Segments,
			Amplitude: c.Water.Amplitude,
			Speed:     c.Water.Speed,
		},
		Camera: camera.Settings{
			FOV:             c.Camera.FOV,
			MinDistance:     c.Camera.MinDistance,
			MaxDistance:     c.Camera.MaxDistance,
			MaxPolarAngle:   c.Camera.MaxPolarAngle * math.Pi / 180,
			DragSensitivity: c.Camera.DragSensitivity,
			ZoomSensitivity: c.Camera.ZoomSensitivity,
			PanSensitivity:  c.Camera.PanSensitivity,
			FrameDuration:   c.Camera.FrameDuration,
		},
		Language: c.Language(),
	}
}

// Validate reports settings that cannot be used as given.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.Supersample < 1 || c.Graphics.Supersample > raster.MaxSupersample {
		return fmt.Errorf("graphics: supersample must be 1..%d, got %d", raster.MaxSupersample, c.Graphics.Supersample)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		return fmt.Errorf("camera: invalid distance range %v..%v", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Water.Segments < 1 {
		return fmt.Errorf("water: segments must be positive, got %d", c.Water.Segments)
	}
	spec := pool.BasinSpec{Length: c.Pool.Length, Width: c.Pool.Width, Depth: c.Pool.Depth}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	return nil
}
