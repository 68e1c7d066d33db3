package psim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ActorConfig configures the initial state of an actor.
// It is used with World.Spawn.
type ActorConfig struct {
	// ID is the network-unique player identifier. A zero ID is replaced with a
	// random one.
	ID uuid.UUID
	// Name is only used in diagnostics.
	Name string

	// Body is the actor's physics body. Required.
	Body Body

	// Rules override the world's default bounds when non-nil. Use an empty,
	// non-nil slice for an actor that never respawns.
	Rules BoundsRules
	// Grace overrides the world's default grace policy when non-nil.
	Grace *GracePolicy
}

// Actor is a player-controlled simulated body. Actors are owned by the World and
// must only be touched on the simulation goroutine.
type Actor struct {
	id     uuid.UUID
	name   string
	handle Handle
	body   Body

	// Orientation is the look direction and camera distance.
	Orientation Orientation

	input      InputState
	contacts   []mgl64.Vec3
	jumpNormal mgl64.Vec3
	recovery   Recovery
}

// ID returns the actor's player identifier.
func (a *Actor) ID() uuid.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a *Actor) Name() string {
	return a.name
}

// Handle returns the actor's handle in its World.
func (a *Actor) Handle() Handle {
	return a.handle
}

// Body returns the actor's physics body.
func (a *Actor) Body() Body {
	return a.body
}

// Position returns the body's position.
func (a *Actor) Position() mgl64.Vec3 {
	return a.body.Position()
}

// Input returns the actor's input state. Only the movement system should poll
// edges from it.
func (a *Actor) Input() *InputState {
	return &a.input
}

// JumpNormal returns the contact normal computed on the last fixed tick.
func (a *Actor) JumpNormal() mgl64.Vec3 {
	return a.jumpNormal
}

// Recovery returns the actor's bounds monitor state.
func (a *Actor) Recovery() *Recovery {
	return &a.recovery
}

// String returns a debug representation of the actor.
func (a *Actor) String() string {
	return "Actor{Name: " + a.name + ", ID: " + a.id.String() + ", Phase: " + a.recovery.phase.String() + "}"
}
