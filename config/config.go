// Package config provides display and engine settings for the render
// core. Settings load from YAML over embedded defaults, so a partial
// file only overrides what it names.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Shaders ShadersConfig `yaml:"shaders"`
	Debug   DebugConfig   `yaml:"debug"`
}

// DisplayConfig holds window and presentation settings consumed at
// BeginFrame call sites.
type DisplayConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float32 `yaml:"scale"` // 0 = use the window's content scale
	VSync  bool    `yaml:"vsync"`
	Title  string  `yaml:"title"`
}

// ShadersConfig tunes shader loading and hot reload.
type ShadersConfig struct {
	Dir        string `yaml:"dir"`
	HotReload  bool   `yaml:"hot_reload"`
	DebounceMS int    `yaml:"debounce_ms"` // coalesce window for rapid writes
	SettleMS   int    `yaml:"settle_ms"`   // re-arm delay after a recompile
}

// DebugConfig controls diagnostic surfaces.
type DebugConfig struct {
	Overlay   bool `yaml:"overlay"`   // start with the debug overlay visible
	Wireframe bool `yaml:"wireframe"` // start in wireframe mode
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	// The embedded defaults are compiled in; a parse failure is a
	// build defect, not a runtime condition.
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load reads path over the defaults. A missing file returns the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale < 0 {
		return fmt.Errorf("display scale must not be negative, got %v", c.Display.Scale)
	}
	if c.Shaders.DebounceMS <= 0 || c.Shaders.SettleMS <= 0 {
		return fmt.Errorf("shader debounce windows must be positive")
	}
	return nil
}
