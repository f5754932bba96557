package config

import (
	"path/filepath"
	"testing"

	"github.com/bfarr/prism/internal/corner"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.FPS != 30 || cfg.RoughLength != 10.0 || cfg.FinalBins != 50 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.PinYMax {
		t.Error("y-limits should be pinned by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative length", func(c *Config) { c.RoughLength = -1 }},
		{"zero bins", func(c *Config) { c.FinalBins = 0 }},
		{"unknown hist style", func(c *Config) { c.Hist.Style = "violin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 24
	cfg.Hist.Style = "bar"
	cfg.Labels = []string{"m1", "m2"}
	cfg.Truths = []float64{1.5, -0.5}

	path := filepath.Join(t.TempDir(), "prism.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.FPS != 24 || loaded.Hist.Style != "bar" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if len(loaded.Labels) != 2 || loaded.Labels[1] != "m2" {
		t.Errorf("round trip lost labels: %v", loaded.Labels)
	}
	if len(loaded.Truths) != 2 || loaded.Truths[0] != 1.5 {
		t.Errorf("round trip lost truths: %v", loaded.Truths)
	}
}

func TestStyleMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hist.Style = "bar"
	style, err := cfg.Style()
	if err != nil {
		t.Fatal(err)
	}
	if style.Hist != corner.HistBar {
		t.Error("bar style not mapped")
	}

	cfg.Hist.Style = "step"
	style, err = cfg.Style()
	if err != nil {
		t.Fatal(err)
	}
	if style.Hist != corner.HistStep {
		t.Error("step style not mapped")
	}

	opts := cfg.Options()
	if opts.FPS != cfg.FPS || opts.RoughLength != cfg.RoughLength {
		t.Errorf("options mapping lost values: %+v", opts)
	}
}
