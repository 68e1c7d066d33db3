package psim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the physics engine's view of an actor. The core reads and writes its
// velocity, teleports it and toggles its collision groups; integration and
// contact resolution stay inside the engine.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	// Teleport moves the body without sweeping it through the space in between.
	Teleport(pos mgl64.Vec3)
	// Contacts returns the world-space contact points of the last physics step.
	Contacts() []mgl64.Vec3
	CollisionGroups() CollisionGroups
	SetCollisionGroups(g CollisionGroups)
}

// PhysicsEngine is stepped once per fixed tick, after movement and before the
// bounds check.
type PhysicsEngine interface {
	Step(dt time.Duration)
}

// PointBody is a minimal Body: a sphere integrated by PointPhysics. It stands in
// for a real rigid-body engine in headless runs and tests.
type PointBody struct {
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	radius   float64
	groups   CollisionGroups
	contacts []mgl64.Vec3

	teleports int
}

// NewPointBody creates a body of the given radius at pos.
func NewPointBody(pos mgl64.Vec3, radius float64) *PointBody {
	return &PointBody{pos: pos, radius: radius, groups: ActorGroups()}
}

func (b *PointBody) Position() mgl64.Vec3                 { return b.pos }
func (b *PointBody) Velocity() mgl64.Vec3                 { return b.vel }
func (b *PointBody) SetVelocity(v mgl64.Vec3)             { b.vel = v }
func (b *PointBody) Contacts() []mgl64.Vec3               { return b.contacts }
func (b *PointBody) CollisionGroups() CollisionGroups     { return b.groups }
func (b *PointBody) SetCollisionGroups(g CollisionGroups) { b.groups = g }

// Teleport implements Body.
func (b *PointBody) Teleport(pos mgl64.Vec3) {
	b.pos = pos
	b.contacts = nil
	b.teleports++
}

// Teleports returns how many times the body has been teleported.
func (b *PointBody) Teleports() int {
	return b.teleports
}

// Radius returns the body's radius.
func (b *PointBody) Radius() float64 {
	return b.radius
}

// PointPhysics integrates PointBodies over a square floor. Bodies that walk off
// the floor fall forever, which is what the bounds monitor is for.
type PointPhysics struct {
	// Gravity is the downward acceleration.
	Gravity float64
	// FloorY is the height of the floor plane.
	FloorY float64
	// FloorHalfExtent is half the side length of the floor, centred on the origin.
	FloorHalfExtent float64
	// Friction is the fraction of horizontal velocity lost per step on the floor.
	Friction float64

	bodies []*PointBody
}

// Add registers a body with the engine.
func (p *PointPhysics) Add(b *PointBody) {
	p.bodies = append(p.bodies, b)
}

// Remove unregisters a body.
func (p *PointPhysics) Remove(b *PointBody) {
	for i, other := range p.bodies {
		if other == b {
			p.bodies = append(p.bodies[:i], p.bodies[i+1:]...)
			return
		}
	}
}

// Step implements PhysicsEngine.
func (p *PointPhysics) Step(dt time.Duration) {
	secs := dt.Seconds()
	for _, b := range p.bodies {
		b.contacts = b.contacts[:0]
		b.vel[1] -= p.Gravity * secs
		b.pos = b.pos.Add(b.vel.Mul(secs))
		p.resolveFloor(b)
	}

	for i, a := range p.bodies {
		for _, b := range p.bodies[i+1:] {
			if a.groups.Interacts(b.groups) {
				resolvePair(a, b)
			}
		}
	}
}

func (p *PointPhysics) resolveFloor(b *PointBody) {
	if b.pos[0] < -p.FloorHalfExtent || b.pos[0] > p.FloorHalfExtent ||
		b.pos[2] < -p.FloorHalfExtent || b.pos[2] > p.FloorHalfExtent {
		return
	}
	bottom := b.pos[1] - b.radius
	// Bodies already well below the floor have fallen past its edge.
	if bottom > p.FloorY || bottom < p.FloorY-b.radius {
		return
	}
	b.pos[1] = p.FloorY + b.radius
	if b.vel[1] < 0 {
		b.vel[1] = 0
	}
	b.vel[0] *= 1 - p.Friction
	b.vel[2] *= 1 - p.Friction
	b.contacts = append(b.contacts, mgl64.Vec3{b.pos[0], p.FloorY, b.pos[2]})
}

// resolvePair pushes two overlapping spheres apart and records the contact on
// both.
func resolvePair(a, b *PointBody) {
	d := b.pos.Sub(a.pos)
	dist := d.Len()
	overlap := a.radius + b.radius - dist
	if overlap <= 0 {
		return
	}
	n := normalizeOrZero(d)
	if n == (mgl64.Vec3{}) {
		n = worldY
	}
	a.pos = a.pos.Sub(n.Mul(overlap / 2))
	b.pos = b.pos.Add(n.Mul(overlap / 2))

	point := a.pos.Add(n.Mul(a.radius))
	a.contacts = append(a.contacts, point)
	b.contacts = append(b.contacts, point)
}
