package psim

// Stage represents a scheduling stage for system execution.
// Systems are executed in stage order: Before → Default → After.
type Stage int

const (
	// Before stage runs first. Use for input sampling and contact bookkeeping
	// that other systems depend on.
	Before Stage = iota

	// Default stage runs second. Movement and orientation live here.
	// On the fixed tick the physics engine is stepped right after this stage.
	Default

	// After stage runs last. Use for bounds checks, recovery and anything that
	// must observe settled positions, such as camera rigs.
	After

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case Before:
		return "Before"
	case Default:
		return "Default"
	case After:
		return "After"
	default:
		return "Unknown"
	}
}

// Cadence selects which clock drives a system.
type Cadence int

const (
	// Fixed systems run once per simulation tick of constant length. Anything
	// that accumulates velocity must run here.
	Fixed Cadence = iota

	// Frame systems run once per presentation frame with a variable delta.
	Frame

	cadenceCount
)

// String returns the string representation of the cadence.
func (c Cadence) String() string {
	switch c {
	case Fixed:
		return "Fixed"
	case Frame:
		return "Frame"
	default:
		return "Unknown"
	}
}
