package psim

import (
	"fmt"
	"strconv"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Comparison is the comparator of a bounds rule.
type Comparison uint8

const (
	// Greater is violated when the coordinate is strictly greater than the threshold.
	Greater Comparison = iota
	// Less is violated when the coordinate is strictly less than the threshold.
	Less
)

// String returns the comparator symbol.
func (c Comparison) String() string {
	switch c {
	case Greater:
		return ">"
	case Less:
		return "<"
	default:
		return "?"
	}
}

// BoundsRule describes one out-of-world condition on a single axis.
type BoundsRule struct {
	Axis      cube.Axis
	Compare   Comparison
	Threshold float64
}

// More returns a rule violated when the coordinate on axis exceeds threshold.
func More(threshold float64, axis cube.Axis) BoundsRule {
	return BoundsRule{Axis: axis, Compare: Greater, Threshold: threshold}
}

// LessThan returns a rule violated when the coordinate on axis is below threshold.
func LessThan(threshold float64, axis cube.Axis) BoundsRule {
	return BoundsRule{Axis: axis, Compare: Less, Threshold: threshold}
}

// Violated reports whether pos breaks the rule. Both comparators are strict, so
// a position exactly on the threshold is inside.
func (r BoundsRule) Violated(pos mgl64.Vec3) bool {
	v := axisComponent(pos, r.Axis)
	switch r.Compare {
	case Greater:
		return v > r.Threshold
	case Less:
		return v < r.Threshold
	}
	return false
}

// String returns the rule in the form "y > 200".
func (r BoundsRule) String() string {
	return axisName(r.Axis) + " " + r.Compare.String() + " " + strconv.FormatFloat(r.Threshold, 'g', -1, 64)
}

// BoundsRules is a disjunctive set of rules: a position is out of bounds if any
// rule is violated. An empty set never reports a violation.
type BoundsRules []BoundsRule

// Violation returns the first rule pos violates.
func (rs BoundsRules) Violation(pos mgl64.Vec3) (BoundsRule, bool) {
	for _, r := range rs {
		if r.Violated(pos) {
			return r, true
		}
	}
	return BoundsRule{}, false
}

// Violates reports whether pos violates any rule.
func (rs BoundsRules) Violates(pos mgl64.Vec3) bool {
	_, ok := rs.Violation(pos)
	return ok
}

// RulesFromBox returns the six rules that keep a position within box.
func RulesFromBox(box cube.BBox) BoundsRules {
	lo, hi := box.Min(), box.Max()
	return BoundsRules{
		More(hi[1], cube.Y),
		LessThan(lo[1], cube.Y),
		More(hi[0], cube.X),
		LessThan(lo[0], cube.X),
		More(hi[2], cube.Z),
		LessThan(lo[2], cube.Z),
	}
}

// DefaultBounds returns the default playable volume.
func DefaultBounds() BoundsRules {
	return RulesFromBox(cube.Box(-100, -10, -100, 100, 200, 100))
}

// ParseAxis parses "x", "y" or "z" (either case).
func ParseAxis(s string) (cube.Axis, error) {
	switch s {
	case "x", "X":
		return cube.X, nil
	case "y", "Y":
		return cube.Y, nil
	case "z", "Z":
		return cube.Z, nil
	}
	return 0, fmt.Errorf("psim: unknown axis %q", s)
}

// ParseComparison parses ">" / "gt" / "more" or "<" / "lt" / "less".
func ParseComparison(s string) (Comparison, error) {
	switch s {
	case ">", "gt", "more":
		return Greater, nil
	case "<", "lt", "less":
		return Less, nil
	}
	return 0, fmt.Errorf("psim: unknown comparison %q", s)
}

func axisComponent(pos mgl64.Vec3, a cube.Axis) float64 {
	switch a {
	case cube.X:
		return pos[0]
	case cube.Y:
		return pos[1]
	case cube.Z:
		return pos[2]
	}
	return 0
}

func axisName(a cube.Axis) string {
	switch a {
	case cube.X:
		return "x"
	case cube.Y:
		return "y"
	case cube.Z:
		return "z"
	}
	return "?"
}
