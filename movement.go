package psim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MovementTuning holds the constants of the movement resolver.
type MovementTuning struct {
	// Speed is the velocity added per fixed tick along a held direction.
	Speed float64
	// SprintFactor multiplies Speed while sprint is held.
	SprintFactor float64
	// JumpHeight is the height a jump reaches under Gravity.
	JumpHeight float64
	// JumpMultiplier scales the ballistic launch speed.
	JumpMultiplier float64
	// Gravity is the magnitude of gravitational acceleration.
	Gravity float64
}

// ResolveMovement returns the velocity to add to an actor this fixed tick. It is
// an impulse per tick and deliberately takes no delta time: scaling it by frame
// time would change the effective top speed with the frame rate.
func ResolveMovement(direction mgl64.Quat, in Input, tuning MovementTuning) mgl64.Vec3 {
	dx := in.axis(ActionRight, ActionLeft)
	dy := in.axis(ActionDown, ActionUp)

	localX := direction.Rotate(worldX)
	localY := direction.Rotate(worldZ)

	accel := 1.0
	if in.Held.Has(ActionSprint) {
		accel = tuning.SprintFactor
	}

	var delta mgl64.Vec3
	delta[0] += dx * tuning.Speed * localX[0] * accel
	delta[2] += dx * tuning.Speed * localX[2] * accel

	delta[0] += dy * tuning.Speed * localY[0] * accel
	delta[2] += dy * tuning.Speed * localY[2] * accel
	return delta
}

// LaunchSpeed is the initial speed needed to reach height h under gravity g.
func LaunchSpeed(g, h float64) float64 {
	return math.Sqrt(2 * g * h)
}

// ResolveJump returns the jump impulse for one fixed tick. The jump edge is
// consumed whether or not the actor can jump, so a press made in mid-air does
// not fire on landing. Without contacts the result is zero.
func ResolveJump(direction mgl64.Quat, input *InputState, normal mgl64.Vec3, contacts int, tuning MovementTuning) mgl64.Vec3 {
	if !input.PollAndClear(ActionJump) || contacts == 0 {
		return mgl64.Vec3{}
	}

	in := input.Current()
	dx := in.axis(ActionRight, ActionLeft)
	dy := in.axis(ActionDown, ActionUp)

	dir := normal.
		Add(direction.Rotate(worldX).Mul(dx)).
		Add(direction.Rotate(worldZ).Mul(dy))
	return normalizeOrZero(dir).Mul(LaunchSpeed(tuning.Gravity, tuning.JumpHeight) * tuning.JumpMultiplier)
}

// ContactNormal approximates the "up" direction of the surfaces an actor rests
// on: the normalised sum of the offsets from each contact point to the actor.
// It is zero without contacts.
func ContactNormal(position mgl64.Vec3, contacts []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, c := range contacts {
		sum = sum.Add(position.Sub(c))
	}
	return normalizeOrZero(sum)
}

// normalizeOrZero normalises v, or returns zero for a zero-length v.
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// contactSystem refreshes every actor's contact normal before movement runs.
type contactSystem struct{}

func (contactSystem) Name() string { return "contacts" }

func (contactSystem) Run(w *World, _ Tick) {
	w.Each(func(a *Actor) {
		a.contacts = a.body.Contacts()
		a.jumpNormal = ContactNormal(a.body.Position(), a.contacts)
	})
}

// movementSystem applies movement and jump impulses on the fixed tick.
type movementSystem struct{}

func (movementSystem) Name() string { return "movement" }

func (movementSystem) Run(w *World, _ Tick) {
	tuning := w.cfg.Movement.tuning()

	w.Each(func(a *Actor) {
		delta := ResolveMovement(a.Orientation.Direction, a.input.Current(), tuning)
		delta = delta.Add(ResolveJump(a.Orientation.Direction, &a.input, a.jumpNormal, len(a.contacts), tuning))
		if delta == (mgl64.Vec3{}) {
			return
		}
		a.body.SetVelocity(a.body.Velocity().Add(delta))
	})
}
