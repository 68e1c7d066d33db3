package psim

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsRuleStrict(t *testing.T) {
	r := More(200, cube.Y)
	assert.False(t, r.Violated(mgl64.Vec3{0, 200, 0}))
	assert.True(t, r.Violated(mgl64.Vec3{0, 200.001, 0}))
	assert.Equal(t, "y > 200", r.String())

	r = LessThan(-10, cube.X)
	assert.False(t, r.Violated(mgl64.Vec3{-10, 0, 0}))
	assert.True(t, r.Violated(mgl64.Vec3{-10.5, 0, 0}))
	assert.Equal(t, "x < -10", r.String())
}

func TestDefaultBounds(t *testing.T) {
	rules := DefaultBounds()
	require.Len(t, rules, 6)

	assert.False(t, rules.Violates(mgl64.Vec3{0, 0, 0}))
	assert.False(t, rules.Violates(mgl64.Vec3{50, 50, 50}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, 250, 0}))
	assert.False(t, rules.Violates(mgl64.Vec3{100, 200, -100}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, -11, 0}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, 201, 0}))
	assert.True(t, rules.Violates(mgl64.Vec3{150, 0, 0}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, 0, -101}))
}

func TestViolationReportsFirstRule(t *testing.T) {
	rules := BoundsRules{More(200, cube.Y), LessThan(-5, cube.Y), More(10, cube.X)}

	r, ok := rules.Violation(mgl64.Vec3{20, -6, 0})
	require.True(t, ok)
	assert.Equal(t, LessThan(-5, cube.Y), r)

	_, ok = rules.Violation(mgl64.Vec3{0, 0, 0})
	assert.False(t, ok)
}

func TestEmptyRulesNeverViolate(t *testing.T) {
	var rules BoundsRules
	assert.False(t, rules.Violates(mgl64.Vec3{1e12, -1e12, 1e12}))
	assert.False(t, BoundsRules{}.Violates(mgl64.Vec3{0, -1e9, 0}))
}

func TestRulesFromBox(t *testing.T) {
	rules := RulesFromBox(cube.Box(-1, -2, -3, 1, 2, 3))
	assert.False(t, rules.Violates(mgl64.Vec3{1, 2, 3}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, 0, 3.5}))
	assert.True(t, rules.Violates(mgl64.Vec3{0, -2.5, 0}))
}

func TestParseRuleParts(t *testing.T) {
	axis, err := ParseAxis("Z")
	require.NoError(t, err)
	assert.Equal(t, cube.Z, axis)
	_, err = ParseAxis("w")
	assert.Error(t, err)

	cmp, err := ParseComparison("lt")
	require.NoError(t, err)
	assert.Equal(t, Less, cmp)
	_, err = ParseComparison("==")
	assert.Error(t, err)
}
