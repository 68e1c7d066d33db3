package psim

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoSpawnPoint is returned by SpawnRegistry.Take when nothing is registered.
var ErrNoSpawnPoint = errors.New("psim: no spawn point available")

// SpawnRegistry is the catalog of coordinates actors can be placed at.
//
// Points are never used up: Take hands them out round-robin in registration
// order, so consecutive spawns spread over the level instead of stacking on one
// marker. The registry has a single owner and is not safe for concurrent use;
// fill it during level load, before the scheduler starts.
type SpawnRegistry struct {
	points []mgl64.Vec3
	next   int
}

// NewSpawnRegistry creates a registry holding the given points.
func NewSpawnRegistry(points ...mgl64.Vec3) *SpawnRegistry {
	r := &SpawnRegistry{}
	for _, p := range points {
		r.Register(p)
	}
	return r
}

// Register appends a coordinate.
func (r *SpawnRegistry) Register(pos mgl64.Vec3) {
	r.points = append(r.points, pos)
}

// Take returns the next coordinate in round-robin order.
func (r *SpawnRegistry) Take() (mgl64.Vec3, error) {
	if len(r.points) == 0 {
		return mgl64.Vec3{}, ErrNoSpawnPoint
	}
	if r.next >= len(r.points) {
		r.next = 0
	}
	p := r.points[r.next]
	r.next++
	return p, nil
}

// Len returns the number of registered coordinates.
func (r *SpawnRegistry) Len() int {
	return len(r.points)
}

// Empty returns true if nothing is registered. A level counts as loaded once its
// registry is non-empty.
func (r *SpawnRegistry) Empty() bool {
	return len(r.points) == 0
}

// Points returns a copy of the registered coordinates.
func (r *SpawnRegistry) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(r.points))
	copy(out, r.points)
	return out
}

// Clear removes every coordinate, for example when a level is unloaded.
func (r *SpawnRegistry) Clear() {
	r.points = r.points[:0]
	r.next = 0
}
