package psim

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Handler receives the events the World emits while simulating. All methods are
// called synchronously on the simulation goroutine, so it is safe to read and
// modify the actor passed in, but a Handler must not block.
type Handler interface {
	// HandleSpawn is called after an actor has been placed in the world.
	HandleSpawn(a *Actor)
	// HandleRespawn is called after the bounds monitor moved an actor back into
	// the world.
	HandleRespawn(a *Actor, from, to mgl64.Vec3)
	// HandleRespawnFailed is called when no spawn point was available. The actor
	// is left stranded until World.Respawn succeeds.
	HandleRespawnFailed(a *Actor, err error)
	// HandleGraceEnd is called when an actor's grace window closes.
	HandleGraceEnd(a *Actor)
	// HandleRemove is called before an actor is removed from the world.
	HandleRemove(a *Actor)
}

// NopHandler implements Handler with no-op methods. Embed it to implement only
// the events you need.
type NopHandler struct{}

// Compile-time check that NopHandler implements Handler.
var _ Handler = NopHandler{}

func (NopHandler) HandleSpawn(*Actor)                         {}
func (NopHandler) HandleRespawn(*Actor, mgl64.Vec3, mgl64.Vec3) {}
func (NopHandler) HandleRespawnFailed(*Actor, error)          {}
func (NopHandler) HandleGraceEnd(*Actor)                      {}
func (NopHandler) HandleRemove(*Actor)                        {}
