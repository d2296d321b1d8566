package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/shadestep/internal/physics"
	"github.com/tomz197/shadestep/internal/ship"
)

// Tuning holds gameplay numbers that designers may override from YAML.
// Durations are in seconds.
type Tuning struct {
	MoveSpeed       float64 `yaml:"move_speed"`
	TurnSpeed       float64 `yaml:"turn_speed"` // Degrees per fixed step
	ShadeDuration   float64 `yaml:"shade_duration"`
	SolDuration     float64 `yaml:"sol_duration"`
	BulletImpulse   float64 `yaml:"bullet_impulse"`
	BulletLifetime  float64 `yaml:"bullet_lifetime"`
	MessageDuration float64 `yaml:"message_duration"`
	BarrierDelay    float64 `yaml:"barrier_delay"` // Seconds a shattered barrier lingers
	FixedStep       float64 `yaml:"fixed_step"`
	Damping         float64 `yaml:"damping"` // Fraction of velocity kept per second
	ShipRadius      float64 `yaml:"ship_radius"`
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:       12,
		TurnSpeed:       3,
		ShadeDuration:   0.5,
		SolDuration:     2.0,
		BulletImpulse:   40,
		BulletLifetime:  3,
		MessageDuration: 4,
		BarrierDelay:    1,
		FixedStep:       0.02,
		Damping:         0.5,
		ShipRadius:      1.5,
	}
}

// ParseTuning overlays YAML data on the defaults.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadTuning reads a tuning file. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: read tuning %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the game cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.FixedStep <= 0:
		return fmt.Errorf("config: fixed_step must be positive, got %v", t.FixedStep)
	case t.ShadeDuration <= 0 || t.SolDuration <= 0:
		return fmt.Errorf("config: power durations must be positive")
	case t.Damping <= 0 || t.Damping > 1:
		return fmt.Errorf("config: damping must be in (0, 1], got %v", t.Damping)
	case t.ShipRadius <= 0:
		return fmt.Errorf("config: ship_radius must be positive, got %v", t.ShipRadius)
	}
	return nil
}

// Ship returns the ship tuning.
func (t Tuning) Ship() ship.Config {
	return ship.Config{
		MoveSpeed:       t.MoveSpeed,
		TurnSpeed:       t.TurnSpeed,
		ShadeDuration:   seconds(t.ShadeDuration),
		SolDuration:     seconds(t.SolDuration),
		BulletImpulse:   t.BulletImpulse,
		NoseOffset:      t.ShipRadius + 1,
		MessageDuration: seconds(t.MessageDuration),
	}
}

// Physics returns the space options.
func (t Tuning) Physics() physics.Options {
	return physics.Options{Damping: t.Damping, ShipRadius: t.ShipRadius, ShipMass: 1}
}

// Step returns the fixed physics step.
func (t Tuning) Step() time.Duration {
	return seconds(t.FixedStep)
}

// BarrierDelayDuration returns how long a shattered barrier lingers.
func (t Tuning) BarrierDelayDuration() time.Duration {
	return seconds(t.BarrierDelay)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
