package game

import (
	"errors"
	"fmt"
	"math"
)

// Capacity is the length of the circle uniform arrays in the shaders.
const Capacity = 22

var ErrInvalidConfig = errors.New("invalid game config")

type Variant int

const (
	// Flat circles spawn on a ring around the board and cross the threshold by phase.
	Flat Variant = iota
	// Sphere circles spawn on the unit sphere and cross the threshold by radius.
	Sphere
)

func (v Variant) String() string {
	switch v {
	case Flat:
		return "flat"
	case Sphere:
		return "sphere"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Config holds the game balance.
type Config struct {
	Variant Variant `yaml:"-"`

	Count         int     `yaml:"count"`
	GrowthRate    float32 `yaml:"growth_rate"`
	InitialRadius float32 `yaml:"initial_radius"`
	SpawnRadius   float32 `yaml:"spawn_radius"`

	// PhaseStep is added to the phase of every live flat circle each tick.
	PhaseStep float64 `yaml:"phase_step"`
	// PhaseThreshold is in radians.
	PhaseThreshold  float64 `yaml:"phase_threshold"`
	RadiusThreshold float32 `yaml:"radius_threshold"`

	Bonus         int `yaml:"bonus"`
	LossCrossings int `yaml:"loss_crossings"`
}

func DefaultConfig(v Variant) Config {
	switch v {
	case Sphere:
		return Config{
			Variant:         Sphere,
			Count:           10,
			GrowthRate:      0.1,
			InitialRadius:   0.05,
			SpawnRadius:     1,
			RadiusThreshold: 1,
			Bonus:           1000,
			LossCrossings:   2,
		}
	default:
		return Config{
			Variant:        Flat,
			Count:          10,
			GrowthRate:     0.05,
			SpawnRadius:    0.8,
			PhaseStep:      0.02,
			PhaseThreshold: 1200 * (math.Pi / 180),
			Bonus:          1000,
			LossCrossings:  2,
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"growth rate":      float64(c.GrowthRate),
		"initial radius":   float64(c.InitialRadius),
		"spawn radius":     float64(c.SpawnRadius),
		"phase step":       c.PhaseStep,
		"phase threshold":  c.PhaseThreshold,
		"radius threshold": float64(c.RadiusThreshold),
	} {
		if !finite(v) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidConfig, name, v)
		}
	}

	switch {
	case c.Variant != Flat && c.Variant != Sphere:
		return fmt.Errorf("%w: unknown variant %v", ErrInvalidConfig, c.Variant)
	case c.Count < 1 || c.Count > Capacity:
		return fmt.Errorf("%w: count %d outside [1, %d]", ErrInvalidConfig, c.Count, Capacity)
	case c.GrowthRate < 0:
		return fmt.Errorf("%w: negative growth rate %v", ErrInvalidConfig, c.GrowthRate)
	case c.InitialRadius < 0:
		return fmt.Errorf("%w: negative initial radius %v", ErrInvalidConfig, c.InitialRadius)
	case c.SpawnRadius <= 0:
		return fmt.Errorf("%w: spawn radius %v must be positive", ErrInvalidConfig, c.SpawnRadius)
	case c.PhaseStep < 0:
		return fmt.Errorf("%w: negative phase step %v", ErrInvalidConfig, c.PhaseStep)
	case c.LossCrossings < 1:
		return fmt.Errorf("%w: loss crossings %d < 1", ErrInvalidConfig, c.LossCrossings)
	case c.Variant == Flat && c.PhaseThreshold <= 0:
		return fmt.Errorf("%w: phase threshold must be positive", ErrInvalidConfig)
	case c.Variant == Sphere && c.RadiusThreshold <= 0:
		return fmt.Errorf("%w: radius threshold must be positive", ErrInvalidConfig)
	}
	return nil
}
