package psim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 64, cfg.Simulation.TickRate)
	assert.Equal(t, 0.07, cfg.Movement.Speed)
	assert.Equal(t, 2.0, cfg.Movement.SprintFactor)
	assert.Equal(t, 0.5, cfg.Camera.Sensitivity)
	assert.Equal(t, time.Second/64, cfg.FixedDelta())

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, DefaultBounds(), rules)

	grace, err := cfg.GracePolicy()
	require.NoError(t, err)
	assert.Equal(t, TimedGrace(10*time.Second), grace)
}

func TestLoadConfigLayers(t *testing.T) {
	base := writeFile(t, "base.yaml", `
movement:
  speed: 0.1
recovery:
  grace:
    duration: 3s
`)
	override := writeFile(t, "override.yaml", `
camera:
  distance: 12
movement:
  sprintFactor: 3
`)

	cfg, err := LoadConfig(base, override)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Movement.Speed)
	assert.Equal(t, 3.0, cfg.Movement.SprintFactor)
	assert.Equal(t, 12.0, cfg.Camera.Distance)
	assert.Equal(t, 3*time.Second, cfg.Recovery.Grace.Duration)
	// Untouched fields keep their defaults.
	assert.Equal(t, 9.81, cfg.Movement.Gravity)
	assert.Equal(t, "timer", cfg.Recovery.Grace.Mode)
	assert.Len(t, cfg.Recovery.Bounds, 6)
}

func TestLoadConfigReplacesBounds(t *testing.T) {
	path := writeFile(t, "bounds.yaml", `
recovery:
  bounds:
    - axis: y
      compare: "<"
      threshold: -50
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, BoundsRules{LessThan(-50, cube.Y)}, rules)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "could not read config file")

	_, err = LoadConfig(writeFile(t, "unknown.yaml", "movement:\n  velocity: 3\n"))
	assert.ErrorContains(t, err, "could not process config file")

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "simulation:\n  tickRate: 0\n"))
	assert.ErrorContains(t, err, "simulation.tickRate")

	_, err = LoadConfig(writeFile(t, "axis.yaml", "recovery:\n  bounds:\n    - {axis: w, compare: '>', threshold: 1}\n"))
	assert.ErrorContains(t, err, "recovery.bounds[0]")

	_, err = LoadConfig(writeFile(t, "grace.yaml", "recovery:\n  grace:\n    mode: forever\n"))
	assert.ErrorContains(t, err, "recovery.grace.mode")
}

func TestValidateRejectsSubNanosecondRates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulation.TickRate = 2_000_000_000
	assert.ErrorContains(t, cfg.Validate(), "simulation.tickRate")

	cfg = DefaultConfig()
	cfg.Simulation.FrameRate = 2_000_000_000
	assert.ErrorContains(t, cfg.Validate(), "simulation.frameRate")

	cfg = DefaultConfig()
	cfg.Simulation.TickRate = 1_000_000_000
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.Nanosecond, cfg.FixedDelta())
}

func TestConfigMarshalLoadsBack(t *testing.T) {
	data, err := DefaultConfig().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "duration: 10s")

	cfg, err := LoadConfig(writeFile(t, "default.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFrameDelta(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second/60, cfg.FrameDelta())
	cfg.Simulation.FrameRate = 0
	assert.Zero(t, cfg.FrameDelta())
}
