package psim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the tunable state of a World. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Movement   MovementConfig   `yaml:"movement"`
	Camera     CameraConfig     `yaml:"camera"`
	Recovery   RecoveryConfig   `yaml:"recovery"`
}

// SimulationConfig holds the clock rates.
type SimulationConfig struct {
	// TickRate is the number of fixed ticks per second.
	TickRate int `yaml:"tickRate"`
	// FrameRate is the number of presentation frames per second. Zero disables
	// frames when running on the scheduler.
	FrameRate int `yaml:"frameRate"`
}

// MovementConfig mirrors MovementTuning.
type MovementConfig struct {
	Speed          float64 `yaml:"speed"`
	SprintFactor   float64 `yaml:"sprintFactor"`
	JumpHeight     float64 `yaml:"jumpHeight"`
	JumpMultiplier float64 `yaml:"jumpMultiplier"`
	Gravity        float64 `yaml:"gravity"`
}

// CameraConfig holds orientation and rig settings.
type CameraConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`
	Distance    float64 `yaml:"distance"`
	EyeHeight   float64 `yaml:"eyeHeight"`
}

// RecoveryConfig holds the default bounds and grace policy.
type RecoveryConfig struct {
	Bounds []RuleConfig `yaml:"bounds"`
	Grace  GraceConfig  `yaml:"grace"`
}

// RuleConfig is the file form of a BoundsRule.
type RuleConfig struct {
	Axis      string  `yaml:"axis"`
	Compare   string  `yaml:"compare"`
	Threshold float64 `yaml:"threshold"`
}

// GraceConfig is the file form of a GracePolicy.
type GraceConfig struct {
	Mode     string        `yaml:"mode"`
	Duration time.Duration `yaml:"duration"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	bounds := DefaultBounds()
	rules := make([]RuleConfig, len(bounds))
	for i, r := range bounds {
		rules[i] = RuleConfig{Axis: axisName(r.Axis), Compare: r.Compare.String(), Threshold: r.Threshold}
	}

	return Config{
		Simulation: SimulationConfig{
			TickRate:  64,
			FrameRate: 60,
		},
		Movement: MovementConfig{
			Speed:          0.07,
			SprintFactor:   2.0,
			JumpHeight:     2.0,
			JumpMultiplier: 1.1,
			Gravity:        9.81,
		},
		Camera: CameraConfig{
			Sensitivity: 0.5,
			Distance:    DefaultCameraDistance,
			EyeHeight:   2.0,
		},
		Recovery: RecoveryConfig{
			Bounds: rules,
			Grace: GraceConfig{
				Mode:     GraceTimer.String(),
				Duration: 10 * time.Second,
			},
		},
	}
}

// LoadConfig reads the given YAML files in order, each overriding the fields it
// sets on top of DefaultConfig, and validates the result. A file that sets
// recovery.bounds replaces the whole rule list.
func LoadConfig(paths ...string) (Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("psim: could not read config file %s: %w", path, err)
		}
		if err := cfg.merge(data); err != nil {
			return Config{}, fmt.Errorf("psim: could not process config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge decodes data over c.
func (c *Config) merge(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that the configuration can drive a World.
func (c Config) Validate() error {
	var errs []error
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tickRate must be positive, got %d", c.Simulation.TickRate))
	}
	if c.Simulation.TickRate > 0 && c.FixedDelta() <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tickRate %d exceeds one tick per nanosecond", c.Simulation.TickRate))
	}
	if c.Simulation.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("simulation.frameRate must not be negative, got %d", c.Simulation.FrameRate))
	}
	if c.Simulation.FrameRate > 0 && c.FrameDelta() <= 0 {
		errs = append(errs, fmt.Errorf("simulation.frameRate %d exceeds one frame per nanosecond", c.Simulation.FrameRate))
	}
	if c.Movement.SprintFactor <= 0 {
		errs = append(errs, fmt.Errorf("movement.sprintFactor must be positive, got %v", c.Movement.SprintFactor))
	}
	if c.Movement.Gravity < 0 {
		errs = append(errs, fmt.Errorf("movement.gravity must not be negative, got %v", c.Movement.Gravity))
	}
	if c.Camera.Distance < 0 {
		errs = append(errs, fmt.Errorf("camera.distance must not be negative, got %v", c.Camera.Distance))
	}
	if _, err := c.Rules(); err != nil {
		errs = append(errs, err)
	}
	if g, err := c.GracePolicy(); err != nil {
		errs = append(errs, err)
	} else if g.Mode == GraceTimer && g.Duration <= 0 {
		errs = append(errs, fmt.Errorf("recovery.grace.duration must be positive for timer grace, got %s", g.Duration))
	}
	if len(errs) > 0 {
		return fmt.Errorf("psim: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Rules converts the configured bounds.
func (c Config) Rules() (BoundsRules, error) {
	rules := make(BoundsRules, 0, len(c.Recovery.Bounds))
	for i, rc := range c.Recovery.Bounds {
		axis, err := ParseAxis(rc.Axis)
		if err != nil {
			return nil, fmt.Errorf("recovery.bounds[%d]: %w", i, err)
		}
		cmp, err := ParseComparison(rc.Compare)
		if err != nil {
			return nil, fmt.Errorf("recovery.bounds[%d]: %w", i, err)
		}
		rules = append(rules, BoundsRule{Axis: axis, Compare: cmp, Threshold: rc.Threshold})
	}
	return rules, nil
}

// GracePolicy converts the configured grace window.
func (c Config) GracePolicy() (GracePolicy, error) {
	mode, err := ParseGraceMode(c.Recovery.Grace.Mode)
	if err != nil {
		return GracePolicy{}, fmt.Errorf("recovery.grace.mode: %w", err)
	}
	return GracePolicy{Mode: mode, Duration: c.Recovery.Grace.Duration}, nil
}

// FixedDelta returns the length of one fixed tick.
func (c Config) FixedDelta() time.Duration {
	return time.Second / time.Duration(c.Simulation.TickRate)
}

// FrameDelta returns the length of one presentation frame, zero if disabled.
func (c Config) FrameDelta() time.Duration {
	if c.Simulation.FrameRate == 0 {
		return 0
	}
	return time.Second / time.Duration(c.Simulation.FrameRate)
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tuning returns the movement constants.
func (m MovementConfig) tuning() MovementTuning {
	return MovementTuning{
		Speed:          m.Speed,
		SprintFactor:   m.SprintFactor,
		JumpHeight:     m.JumpHeight,
		JumpMultiplier: m.JumpMultiplier,
		Gravity:        m.Gravity,
	}
}
