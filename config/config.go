// Package config loads the YAML configuration for glbacteria.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/stewi1014/glbacteria/game"
	"github.com/stewi1014/glbacteria/programs"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "GLBACTERIA_CONFIG"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Debug   bool   `yaml:"debug"`
	Program string `yaml:"program"`
	// Seed for circle placement; 0 picks one from the clock.
	Seed uint64 `yaml:"seed"`

	// StatusInterval is how often the score readout refreshes.
	StatusInterval time.Duration `yaml:"status_interval"`

	Window WindowConfig `yaml:"window"`
	Flat   game.Config  `yaml:"flat"`
	Sphere game.Config  `yaml:"sphere"`
	Square SquareConfig `yaml:"square"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Backend string `yaml:"backend"` // gtk or glfw
}

type SquareConfig struct {
	// GrowthRate is size units per second; negative shrinks.
	GrowthRate float32 `yaml:"growth_rate"`
}

func Default() Config {
	return Config{
		Program:        "bacteria",
		StatusInterval: 500 * time.Millisecond,
		Window: WindowConfig{
			Width:   600,
			Height:  600,
			Backend: "gtk",
		},
		Flat:   game.DefaultConfig(game.Flat),
		Sphere: game.DefaultConfig(game.Sphere),
		Square: SquareConfig{GrowthRate: 0.1},
	}
}

// Path returns the config file to use: the flag value if set, otherwise
// the environment.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Flat.Variant = game.Flat
	cfg.Sphere.Variant = game.Sphere

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.Backend != "gtk" && c.Window.Backend != "glfw" {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Window.Backend)
	}
	if c.StatusInterval <= 0 {
		return fmt.Errorf("%w: status interval %v", ErrInvalidConfig, c.StatusInterval)
	}
	if c.Program != "" {
		if _, err := programs.Lookup(c.Program); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if g := float64(c.Square.GrowthRate); math.IsNaN(g) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: square growth rate %v is not finite", ErrInvalidConfig, g)
	}
	if err := c.Flat.Validate(); err != nil {
		return fmt.Errorf("%w: flat: %w", ErrInvalidConfig, err)
	}
	if err := c.Sphere.Validate(); err != nil {
		return fmt.Errorf("%w: sphere: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Game returns the balance for a variant.
func (c Config) Game(v game.Variant) game.Config {
	if v == game.Sphere {
		return c.Sphere
	}
	return c.Flat
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
