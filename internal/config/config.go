package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/input"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultTitle     = "crtsim"
	DefaultTargetFPS = 60
	DefaultDataDir   = "screenshots"
	DefaultLogLevel  = "info"
)

type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Video    VideoConfig       `yaml:"video"`
	Preset   string            `yaml:"preset,omitempty"`
	Filters  FiltersConfig     `yaml:"filters"`
	Bindings map[string]string `yaml:"bindings,omitempty"`
	DataDir  string            `yaml:"data_dir"`
	LogLevel string            `yaml:"log_level"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type VideoConfig struct {
	PixelWidth float32 `yaml:"pixel_width"`
	Stretch    bool    `yaml:"stretch"`
	// MaxTextureSize of zero asks the GPU.
	MaxTextureSize int `yaml:"max_texture_size"`
	MaxSide        int `yaml:"max_side"`
}

// FiltersConfig overrides filter defaults. Nil fields keep the value they
// had before Apply.
type FiltersConfig struct {
	BlurPasses         *int     `yaml:"blur_passes,omitempty"`
	LinesPerPixel      *int     `yaml:"lines_per_pixel,omitempty"`
	ColorChannels      *string  `yaml:"color_channels,omitempty"`
	Geometry           *string  `yaml:"geometry,omitempty"`
	Shadow             *int     `yaml:"shadow,omitempty"`
	Layering           *string  `yaml:"layering,omitempty"`
	Curvature          *string  `yaml:"curvature,omitempty"`
	Brightness         *float32 `yaml:"brightness,omitempty"`
	Contrast           *float32 `yaml:"contrast,omitempty"`
	LightColor         *string  `yaml:"light_color,omitempty"`
	BrightnessColor    *string  `yaml:"brightness_color,omitempty"`
	PixelWidth         *float32 `yaml:"pixel_width,omitempty"`
	HorizontalGap      *float32 `yaml:"horizontal_gap,omitempty"`
	VerticalGap        *float32 `yaml:"vertical_gap,omitempty"`
	Spread             *float32 `yaml:"spread,omitempty"`
	InternalResolution *float64 `yaml:"internal_resolution,omitempty"`
	Interpolation      *string  `yaml:"interpolation,omitempty"`
	Background         *bool    `yaml:"background,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     DefaultTitle,
			TargetFPS: DefaultTargetFPS,
		},
		Video: VideoConfig{
			PixelWidth: 1,
		},
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyFilters applies the named preset, then the explicit filter overrides.
func (c *Config) ApplyFilters(f *crt.Filters) error {
	if c.Preset != "" {
		p := GetPreset(c.Preset)
		if p == nil {
			return fmt.Errorf("config: unknown preset %q", c.Preset)
		}
		if err := p.Apply(f); err != nil {
			return fmt.Errorf("config: preset %q: %w", c.Preset, err)
		}
	}
	return c.Filters.Apply(f)
}

// Apply writes every set field into f, clamping numbers to the filter
// bounds. Unknown variant names and malformed colours are errors.
func (fc FiltersConfig) Apply(f *crt.Filters) error {
	if fc.BlurPasses != nil {
		f.BlurPasses = clamp(*fc.BlurPasses, crt.MinBlurPasses, crt.MaxBlurPasses)
	}
	if fc.LinesPerPixel != nil {
		f.LinesPerPixel = clamp(*fc.LinesPerPixel, crt.MinLinesPerPx, crt.MaxLinesPerPx)
	}
	if fc.ColorChannels != nil {
		v, ok := crt.ParseColorChannels(*fc.ColorChannels)
		if !ok {
			return fmt.Errorf("config: unknown color_channels %q", *fc.ColorChannels)
		}
		f.ColorChannels = v
	}
	if fc.Geometry != nil {
		v, ok := crt.ParsePixelsGeometryKind(*fc.Geometry)
		if !ok {
			return fmt.Errorf("config: unknown geometry %q", *fc.Geometry)
		}
		f.PixelsGeometryKind = v
	}
	if fc.Shadow != nil {
		f.ShadowShape = *fc.Shadow
	}
	if fc.Layering != nil {
		v, ok := crt.ParseScreenLayeringKind(*fc.Layering)
		if !ok {
			return fmt.Errorf("config: unknown layering %q", *fc.Layering)
		}
		f.SetLayering(v)
	}
	if fc.Curvature != nil {
		v, ok := crt.ParseScreenCurvatureKind(*fc.Curvature)
		if !ok {
			return fmt.Errorf("config: unknown curvature %q", *fc.Curvature)
		}
		f.ScreenCurvatureKind = v
	}
	if fc.Brightness != nil {
		f.ExtraBright = clamp(*fc.Brightness, crt.MinBrightness, crt.MaxBrightness)
	}
	if fc.Contrast != nil {
		f.ExtraContrast = clamp(*fc.Contrast, crt.MinContrast, crt.MaxContrast)
	}
	if fc.LightColor != nil {
		c, err := input.ParseColor(*fc.LightColor)
		if err != nil {
			return fmt.Errorf("config: light_color: %w", err)
		}
		f.LightColor = c
	}
	if fc.BrightnessColor != nil {
		c, err := input.ParseColor(*fc.BrightnessColor)
		if err != nil {
			return fmt.Errorf("config: brightness_color: %w", err)
		}
		f.BrightnessColor = c
	}
	if fc.PixelWidth != nil {
		f.PixelWidth = clamp(*fc.PixelWidth, crt.MinPixelWidth, crt.MaxPixelSize)
	}
	if fc.HorizontalGap != nil {
		f.PixelScaleY = clamp(*fc.HorizontalGap, crt.MinPixelSize, crt.MaxPixelSize)
	}
	if fc.VerticalGap != nil {
		f.PixelScaleX = clamp(*fc.VerticalGap, crt.MinPixelSize, crt.MaxPixelSize)
	}
	if fc.Spread != nil {
		f.PixelGap = clamp(*fc.Spread, crt.MinPixelSize, crt.MaxPixelSize)
	}
	if fc.InternalResolution != nil {
		if !crt.ValidMultiplier(*fc.InternalResolution) {
			return fmt.Errorf("config: unsupported internal_resolution %g", *fc.InternalResolution)
		}
		f.InternalResolution.Multiplier = *fc.InternalResolution
	}
	if fc.Interpolation != nil {
		v, ok := crt.ParseTextureInterpolation(*fc.Interpolation)
		if !ok {
			return fmt.Errorf("config: unknown interpolation %q", *fc.Interpolation)
		}
		f.TextureInterpolation = v
	}
	if fc.Background != nil {
		f.ShowingBackground = *fc.Background
	}
	return nil
}

// ParseLogLevel accepts slog level names such as "debug" or "warn+2".
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

func clamp[T int | float32](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
