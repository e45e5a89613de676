// Package config provides configuration loading and access for the visuals.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Field      FieldConfig      `yaml:"field"`
	Background BackgroundConfig `yaml:"background"`
	Rain       RainConfig       `yaml:"rain"`
	Icons      IconsConfig      `yaml:"icons"`
	Typing     TypingConfig     `yaml:"typing"`
	Sentinel   SentinelConfig   `yaml:"sentinel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Range is an inclusive [min, max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ColorSpec is a hex colour with a separate alpha in [0, 1].
type ColorSpec struct {
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Count                  int      `yaml:"count"`                    // 0 disables the field
	ConnectionDistance     float64  `yaml:"connection_distance"`      // Max centre distance for a line
	ConnectionOpacityScale float64  `yaml:"connection_opacity_scale"` // Alpha at zero distance
	ConnectionWidth        float64  `yaml:"connection_width"`
	ConnectionColor        string   `yaml:"connection_color"`
	SpeedFactor            float64  `yaml:"speed_factor"` // Velocity components in [-2, 2] * this
	OpacityRange           Range    `yaml:"opacity_range"`
	PulseSpeedRange        Range    `yaml:"pulse_speed_range"`
	RadiusRange            Range    `yaml:"radius_range"`
	Palette                []string `yaml:"palette"`
	HueRange               Range    `yaml:"hue_range"` // Used when palette is empty
	HueSteps               int      `yaml:"hue_steps"`
	Glow                   float64  `yaml:"glow"` // Halo radius multiplier (0 = off)
}

// BackgroundConfig holds the radial gradient painted under the field.
type BackgroundConfig struct {
	Inner ColorSpec `yaml:"inner"`
	Outer ColorSpec `yaml:"outer"`
}

// RainConfig holds digital rain parameters.
type RainConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ColumnWidth    float64 `yaml:"column_width"`
	FontSize       float64 `yaml:"font_size"`
	ResetThreshold float64 `yaml:"reset_threshold"` // Drop resets when rand exceeds this past the bottom
	FadeAlpha      float64 `yaml:"fade_alpha"`      // Black wash applied every tick
	LayerOpacity   float64 `yaml:"layer_opacity"`
	Color          string  `yaml:"color"`
	Charset        string  `yaml:"charset"`
}

// IconsConfig holds drifting iconography parameters.
type IconsConfig struct {
	Shields        int      `yaml:"shields"`
	Locks          int      `yaml:"locks"`
	Codes          int      `yaml:"codes"`
	CodeSnippets   []string `yaml:"code_snippets"`
	Emblems        []string `yaml:"emblems"`
	EmblemInterval float64  `yaml:"emblem_interval"` // Seconds between emblem spawns
	EmblemLifetime float64  `yaml:"emblem_lifetime"` // Seconds to cross the screen
	EmblemSize     float64  `yaml:"emblem_size"`
}

// TypingConfig holds the typing/deleting text animation timings (milliseconds).
type TypingConfig struct {
	Phrases  []string `yaml:"phrases"`
	TypeMS   int      `yaml:"type_ms"`
	DeleteMS int      `yaml:"delete_ms"`
	HoldMS   int      `yaml:"hold_ms"`
	NextMS   int      `yaml:"next_ms"`
}

// SentinelConfig holds the mouse-tracked figure parameters.
type SentinelConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	MarginRight    float64 `yaml:"margin_right"`
	MarginBottom   float64 `yaml:"margin_bottom"`
	MaxPupilOffset float64 `yaml:"max_pupil_offset"`
	PupilDivisor   float64 `yaml:"pupil_divisor"`
	ReactionSec    float64 `yaml:"reaction_sec"`
	AntennaSec     float64 `yaml:"antenna_sec"`
	FadeSec        float64 `yaml:"fade_sec"`
	WaveSec        float64 `yaml:"wave_sec"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT              float64      // Seconds per tick (1 / target_fps)
	Palette         []color.RGBA // Field palette (explicit or generated from hue range)
	ConnectionColor color.RGBA
	BackgroundInner color.RGBA
	BackgroundOuter color.RGBA
	RainColor       color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the visuals cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}

	f := c.Field
	if f.Count < 0 {
		return fmt.Errorf("field.count must not be negative, got %d", f.Count)
	}
	if f.ConnectionDistance <= 0 {
		return fmt.Errorf("field.connection_distance must be positive, got %g", f.ConnectionDistance)
	}
	if f.OpacityRange.Min > f.OpacityRange.Max {
		return fmt.Errorf("field.opacity_range min %g exceeds max %g", f.OpacityRange.Min, f.OpacityRange.Max)
	}
	if f.PulseSpeedRange.Min < 0 || f.PulseSpeedRange.Min > f.PulseSpeedRange.Max {
		return fmt.Errorf("field.pulse_speed_range invalid: [%g, %g]", f.PulseSpeedRange.Min, f.PulseSpeedRange.Max)
	}
	if f.RadiusRange.Min <= 0 || f.RadiusRange.Min > f.RadiusRange.Max {
		return fmt.Errorf("field.radius_range invalid: [%g, %g]", f.RadiusRange.Min, f.RadiusRange.Max)
	}
	if len(f.Palette) == 0 && (f.HueSteps <= 0 || f.HueRange.Min > f.HueRange.Max) {
		return fmt.Errorf("field needs a palette or a hue_range with hue_steps > 0")
	}

	if c.Rain.Enabled && c.Rain.ColumnWidth <= 0 {
		return fmt.Errorf("rain.column_width must be positive, got %g", c.Rain.ColumnWidth)
	}
	if c.Rain.Enabled && c.Rain.Charset == "" {
		return fmt.Errorf("rain.charset must not be empty")
	}

	t := c.Typing
	if len(t.Phrases) > 0 && (t.TypeMS <= 0 || t.DeleteMS <= 0 || t.HoldMS <= 0 || t.NextMS <= 0) {
		return fmt.Errorf("typing delays must be positive")
	}
	for i, p := range t.Phrases {
		if p == "" {
			return fmt.Errorf("typing.phrases[%d] is empty", i)
		}
	}

	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %g", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)

	c.Derived.Palette = c.Derived.Palette[:0]
	if len(c.Field.Palette) > 0 {
		for _, hex := range c.Field.Palette {
			col, err := ParseColor(hex, 1)
			if err != nil {
				return fmt.Errorf("field.palette: %w", err)
			}
			c.Derived.Palette = append(c.Derived.Palette, col)
		}
	} else {
		c.Derived.Palette = HuePalette(c.Field.HueRange.Min, c.Field.HueRange.Max, c.Field.HueSteps)
	}

	var err error
	if c.Derived.ConnectionColor, err = ParseColor(c.Field.ConnectionColor, 1); err != nil {
		return fmt.Errorf("field.connection_color: %w", err)
	}
	if c.Derived.BackgroundInner, err = ParseColor(c.Background.Inner.Hex, c.Background.Inner.Alpha); err != nil {
		return fmt.Errorf("background.inner: %w", err)
	}
	if c.Derived.BackgroundOuter, err = ParseColor(c.Background.Outer.Hex, c.Background.Outer.Alpha); err != nil {
		return fmt.Errorf("background.outer: %w", err)
	}
	if c.Derived.RainColor, err = ParseColor(c.Rain.Color, 1); err != nil {
		return fmt.Errorf("rain.color: %w", err)
	}
	return nil
}

// ParseColor converts a "#rrggbb" string and an alpha in [0, 1] to RGBA.
func ParseColor(hex string, alpha float64) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alphaByte(alpha)}, nil
}

// HuePalette returns steps fully saturated colours with hues evenly spread
// over [minHue, maxHue] degrees.
func HuePalette(minHue, maxHue float64, steps int) []color.RGBA {
	if steps <= 0 {
		return nil
	}
	out := make([]color.RGBA, 0, steps)
	for i := 0; i < steps; i++ {
		h := minHue
		if steps > 1 {
			h += (maxHue - minHue) * float64(i) / float64(steps-1)
		}
		r, g, b := colorful.Hsl(h, 1, 0.5).Clamped().RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}

func alphaByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
