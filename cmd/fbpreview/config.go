package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fbcon/kernel/hal/gop"
)

//go:embed defaults/fbpreview.yaml
var defaultConfigYAML []byte

// localConfigPath is checked when no custom path is given.
const localConfigPath = "fbpreview.yaml"

// Config describes the simulated firmware and the export settings.
type Config struct {
	Modes  []ModeConfig `yaml:"modes"`
	Output OutputConfig `yaml:"output"`
}

// ModeConfig is a single display mode as reported by the simulated firmware.
type ModeConfig struct {
	Number uint32 `yaml:"number"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
	Stride uint32 `yaml:"stride"`
	Format string `yaml:"format"`
}

// OutputConfig holds the settings for exported images.
type OutputConfig struct {
	Scale       int  `yaml:"scale"`
	ShowPadding bool `yaml:"show_padding"`
	Grid        bool `yaml:"grid"`
}

// LoadConfig loads the simulated firmware description.
// Search order: customPath -> ./fbpreview.yaml -> embedded default
func LoadConfig(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.withDefaults(), nil
	}

	// Try the working directory
	if data, err := os.ReadFile(localConfigPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.withDefaults(), nil
		}
		cfg = Config{}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Output.Scale < 1 {
		c.Output.Scale = 1
	}

	return c
}

// parsePixelFormat maps a config format name to the firmware pixel format.
func parsePixelFormat(name string) (gop.PixelFormat, error) {
	for _, f := range []gop.PixelFormat{gop.PixelFormatRGB, gop.PixelFormatBGR, gop.PixelFormatBitmask, gop.PixelFormatBltOnly} {
		if f.String() == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown pixel format %q; supported values are: rgb, bgr, bitmask or blt-only", name)
}

// FirmwareModes converts the configured modes into the list that the
// firmware would report. The framebuffer base address is left empty.
func (c Config) FirmwareModes() ([]gop.ModeInfo, error) {
	if len(c.Modes) == 0 {
		return nil, fmt.Errorf("config does not define any display modes")
	}

	modes := make([]gop.ModeInfo, 0, len(c.Modes))
	for i, m := range c.Modes {
		format, err := parsePixelFormat(m.Format)
		if err != nil {
			return nil, fmt.Errorf("mode %d (entry %d): %w", m.Number, i, err)
		}

		stride := m.Stride
		if stride == 0 {
			stride = m.Width
		}

		modes = append(modes, gop.ModeInfo{
			Number: m.Number,
			Width:  m.Width,
			Height: m.Height,
			Stride: stride,
			Format: format,
		})
	}

	return modes, nil
}
