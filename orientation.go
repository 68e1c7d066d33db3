package psim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultCameraDistance is the distance the camera trails its actor at when
// nothing occludes the view.
const DefaultCameraDistance = 20.0

// SpawnCameraDistance is the camera distance a freshly spawned actor starts with
// until its first orientation update.
var SpawnCameraDistance = math.Sqrt(325)

var (
	worldX = mgl64.Vec3{1, 0, 0}
	worldY = mgl64.Vec3{0, 1, 0}
	worldZ = mgl64.Vec3{0, 0, 1}
)

// Orientation is an actor's look direction and camera follow distance.
type Orientation struct {
	Direction mgl64.Quat
	Distance  float64
}

// NewOrientation returns the orientation actors are spawned with.
func NewOrientation() Orientation {
	return Orientation{Direction: mgl64.QuatIdent(), Distance: SpawnCameraDistance}
}

// Turn returns direction rotated by a yaw around the world vertical axis and a
// pitch around the direction's own horizontal axis, both in radians.
//
// The yaw is pre-multiplied (global) and the pitch post-multiplied (local). This
// is what keeps the horizon level in free-look; the order must not be swapped.
func Turn(direction mgl64.Quat, yaw, pitch float64) mgl64.Quat {
	direction = mgl64.QuatRotate(yaw, worldY).Mul(direction)
	direction = direction.Mul(mgl64.QuatRotate(pitch, worldX))
	return direction.Normalize()
}

// Rotate applies one frame of turn input to the direction. dt is the frame
// delta in seconds.
func (o *Orientation) Rotate(in Input, sensitivity, dt float64) {
	o.Direction = Turn(o.Direction,
		in.TurnHorizontal*sensitivity*dt,
		in.TurnVertical*sensitivity*dt,
	)
}

// Forward returns the direction's local Z axis in world space. The camera sits
// along this axis behind the actor.
func (o Orientation) Forward() mgl64.Vec3 {
	return o.Direction.Rotate(worldZ)
}

// Right returns the direction's local X axis in world space.
func (o Orientation) Right() mgl64.Vec3 {
	return o.Direction.Rotate(worldX)
}

// Occluder answers ray queries against level geometry. It is optional; without
// one the camera distance stays at DefaultCameraDistance.
type Occluder interface {
	// CastRay returns the distance to the first hit along dir from origin, if any
	// hit lies within maxDist. dir is normalised.
	CastRay(origin, dir mgl64.Vec3, maxDist float64) (float64, bool)
}

// orientationSystem samples turn input every presentation frame.
type orientationSystem struct{}

func (orientationSystem) Name() string { return "orientation" }

func (orientationSystem) Run(w *World, t Tick) {
	dt := t.Seconds()
	sensitivity := w.cfg.Camera.Sensitivity
	eye := mgl64.Vec3{0, w.cfg.Camera.EyeHeight, 0}

	w.Each(func(a *Actor) {
		a.Orientation.Rotate(a.input.Current(), sensitivity, dt)
		// TODO: blend towards the occluded distance instead of snapping once
		// occlusion is enabled in the client.
		a.Orientation.Distance = w.cfg.Camera.Distance

		if w.occluder == nil {
			return
		}
		origin := a.body.Position().Add(eye)
		if toi, ok := w.occluder.CastRay(origin, a.Orientation.Forward().Normalize(), a.Orientation.Distance); ok && toi < a.Orientation.Distance {
			a.Orientation.Distance = toi
		}
	})
}
