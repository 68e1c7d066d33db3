package psim

import (
	"math/bits"
)

// Layers is a 32-bit collision layer mask. A body is a member of some layers and
// filters which layers it may touch.
type Layers uint32

const (
	// LayerDefault is the layer of static level geometry.
	LayerDefault Layers = 1 << iota
	// LayerActor is the layer of actors that collide with each other.
	LayerActor
	// LayerActorNoclip is the layer of actors in a grace window.
	// Actors with this layer cannot collide with other actors.
	LayerActorNoclip

	// LayerAll matches every layer.
	LayerAll Layers = ^Layers(0)
)

// Set returns m with the given layers set.
func (m Layers) Set(l Layers) Layers {
	return m | l
}

// Clear returns m with the given layers cleared.
func (m Layers) Clear(l Layers) Layers {
	return m &^ l
}

// Has returns true if every layer in l is set in m.
func (m Layers) Has(l Layers) bool {
	return m&l == l
}

// ContainsAny returns true if any layer set in other is also set in m.
func (m Layers) ContainsAny(other Layers) bool {
	return m&other != 0
}

// IsZero returns true if no layers are set.
func (m Layers) IsZero() bool {
	return m == 0
}

// Count returns the number of layers set.
func (m Layers) Count() int {
	return bits.OnesCount32(uint32(m))
}

// CollisionGroups pairs the layers a body belongs to with the layers it accepts
// contacts from.
type CollisionGroups struct {
	Memberships Layers
	Filter      Layers
}

// ActorGroups is the collision setup of an actor in normal play.
func ActorGroups() CollisionGroups {
	return CollisionGroups{Memberships: LayerActor, Filter: LayerAll}
}

// NoclipGroups is the collision setup of an actor in a grace window: it keeps
// touching the level but ignores every other actor.
func NoclipGroups() CollisionGroups {
	return CollisionGroups{
		Memberships: LayerActorNoclip,
		Filter:      LayerAll.Clear(LayerActor | LayerActorNoclip),
	}
}

// Interacts reports whether two bodies with these groups may collide. Both sides
// must accept the other's memberships.
func (g CollisionGroups) Interacts(other CollisionGroups) bool {
	return g.Memberships.ContainsAny(other.Filter) && other.Memberships.ContainsAny(g.Filter)
}
