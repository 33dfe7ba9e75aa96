package config

import "flag"

// Flags are command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config      string
	Debug       bool
	Windowed    bool
	Fullscreen  bool
	Width       int
	Height      int
	Length      float64
	PoolWidth   float64
	Depth       float64
	Shape       string
	Material    string
	Lighting    string
	Language    string
	Supersample int
	NoShadows   bool
}

// BindFlags registers the overrides on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window or image width")
	fs.IntVar(&f.Height, "height", 0, "Window or image height")
	fs.Float64Var(&f.Length, "pool-length", 0, "Basin length")
	fs.Float64Var(&f.PoolWidth, "pool-width", 0, "Basin width")
	fs.Float64Var(&f.Depth, "pool-depth", 0, "Basin depth")
	fs.StringVar(&f.Shape, "shape", "", "Basin shape (rectangular, oval)")
	fs.StringVar(&f.Material, "material", "", "Basin finish (concrete, composite, liner)")
	fs.StringVar(&f.Lighting, "lighting", "", "Lighting preset (day, sunset, night)")
	fs.StringVar(&f.Language, "lang", "", "Label language (en, ru)")
	fs.IntVar(&f.Supersample, "supersample", 0, "Render at N times the size and filter down")
	fs.BoolVar(&f.NoShadows, "no-shadows", false, "Disable sun shadows")
	return f
}

var commandLine = BindFlags(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// CommandLine returns the overrides parsed from the process arguments.
func CommandLine() *Flags {
	return commandLine
}

// Apply applies the overrides to cfg.
func (f *Flags) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.UI.ShowFPS = true
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Length > 0 {
		cfg.Pool.Length = f.Length
	}
	if f.PoolWidth > 0 {
		cfg.Pool.Width = f.PoolWidth
	}
	if f.Depth > 0 {
		cfg.Pool.Depth = f.Depth
	}
	if f.Shape != "" {
		cfg.Pool.Shape = f.Shape
	}
	if f.Material != "" {
		cfg.Pool.Material = f.Material
	}
	if f.Lighting != "" {
		cfg.Pool.Lighting = f.Lighting
	}
	if f.Language != "" {
		cfg.UI.Language = f.Language
	}
	if f.Supersample > 0 {
		cfg.Graphics.Supersample = f.Supersample
	}
	if f.NoShadows {
		cfg.Graphics.Shadows = false
	}
}
