package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bfarr/prism/internal/anim"
	"github.com/bfarr/prism/internal/corner"
)

const (
	DefaultFPS           = 30
	DefaultRoughLength   = 10.0
	DefaultSampsPerFrame = 10
	DefaultFinalBins     = 50
	DefaultColor         = "#000000"
	DefaultTruthColor    = "#4682b4"
	DefaultMarkerSize    = 2.0
	DefaultPanelSize     = 240
)

type HistConfig struct {
	// Style is "step" (outline) or "bar" (filled).
	Style   string `yaml:"style"`
	Density bool   `yaml:"density"`
}

type Config struct {
	FPS           int        `yaml:"fps"`
	RoughLength   float64    `yaml:"rough_length"`
	SampsPerFrame int        `yaml:"samps_per_frame"`
	FinalBins     int        `yaml:"final_bins"`
	Color         string     `yaml:"color"`
	TruthColor    string     `yaml:"truth_color"`
	MarkerSize    float64    `yaml:"marker_size"`
	PanelSize     int        `yaml:"panel_size"`
	PinYMax       bool       `yaml:"pin_ymax"`
	Hist          HistConfig `yaml:"hist"`
	Labels        []string   `yaml:"labels"`
	Truths        []float64  `yaml:"truths"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:           DefaultFPS,
		RoughLength:   DefaultRoughLength,
		SampsPerFrame: DefaultSampsPerFrame,
		FinalBins:     DefaultFinalBins,
		Color:         DefaultColor,
		TruthColor:    DefaultTruthColor,
		MarkerSize:    DefaultMarkerSize,
		PanelSize:     DefaultPanelSize,
		PinYMax:       true,
		Hist:          HistConfig{Style: "step", Density: true},
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

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.RoughLength <= 0 {
		return fmt.Errorf("rough_length must be positive, got %g", c.RoughLength)
	}
	if c.FinalBins < 1 {
		return fmt.Errorf("final_bins must be at least 1, got %d", c.FinalBins)
	}
	switch c.Hist.Style {
	case "step", "bar":
	default:
		return fmt.Errorf("hist style must be \"step\" or \"bar\", got %q", c.Hist.Style)
	}
	return nil
}

// Style translates the config into the renderer's option struct.
func (c *Config) Style() (corner.Style, error) {
	if err := c.Validate(); err != nil {
		return corner.Style{}, err
	}
	s := corner.Style{
		Color:      c.Color,
		TruthColor: c.TruthColor,
		MarkerSize: c.MarkerSize,
		Density:    c.Hist.Density,
		PinYMax:    c.PinYMax,
		PanelSize:  c.PanelSize,
	}
	if c.Hist.Style == "bar" {
		s.Hist = corner.HistBar
	}
	return s, nil
}

// Options translates the config into animation pacing options.
func (c *Config) Options() anim.Options {
	return anim.Options{
		FPS:           c.FPS,
		RoughLength:   c.RoughLength,
		SampsPerFrame: c.SampsPerFrame,
	}
}
