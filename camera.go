package psim

import (
	"github.com/go-gl/mathgl/mgl64"
)

// CameraRig is a presentation-only viewpoint bound to one actor. Its transform
// is recomputed from the target every frame and never mutated on its own, so
// the view cannot drift from the simulation.
type CameraRig struct {
	target Handle

	// Position is the rig's world position: the target's eye point.
	Position mgl64.Vec3
	// Rotation is the target's look direction.
	Rotation mgl64.Quat
	// View is the viewpoint's translation in the rig's local space. The camera
	// sits Distance units along local +Z.
	View mgl64.Vec3

	// frozen is set while the target cannot be resolved.
	frozen bool
}

// Target returns the handle of the actor the rig follows.
func (c *CameraRig) Target() Handle {
	return c.target
}

// Frozen returns true if the last update was skipped because the target was
// missing.
func (c *CameraRig) Frozen() bool {
	return c.frozen
}

// Eye returns the camera's world position.
func (c *CameraRig) Eye() mgl64.Vec3 {
	return c.Position.Add(c.Rotation.Rotate(c.View))
}

// follow copies the target's transform into the rig.
func (c *CameraRig) follow(a *Actor, eyeHeight float64) {
	c.Position = a.body.Position().Add(mgl64.Vec3{0, eyeHeight, 0})
	c.Rotation = a.Orientation.Direction
	c.View = worldZ.Mul(a.Orientation.Distance)
	c.frozen = false
}

// AttachCamera creates a rig following target. The rig is created even if the
// handle is stale; it stays frozen until it can resolve its target.
func (w *World) AttachCamera(target Handle) *CameraRig {
	c := &CameraRig{target: target, Rotation: mgl64.QuatIdent()}
	w.rigs = append(w.rigs, c)
	return c
}

// DetachCamera removes a rig. Returns false if it was not attached.
func (w *World) DetachCamera(c *CameraRig) bool {
	for i, other := range w.rigs {
		if other == c {
			w.rigs = append(w.rigs[:i], w.rigs[i+1:]...)
			return true
		}
	}
	return false
}

// Cameras returns the attached rigs.
func (w *World) Cameras() []*CameraRig {
	return w.rigs
}

// cameraSystem mirrors targets into their rigs once per frame, after everything
// else has settled.
type cameraSystem struct{}

func (cameraSystem) Name() string { return "camera" }

func (cameraSystem) Run(w *World, _ Tick) {
	for _, c := range w.rigs {
		a := w.resolve(c.target)
		if a == nil || a.body == nil {
			ev := w.log.Warn()
			if c.frozen {
				ev = w.log.Debug()
			}
			ev.Str("target", c.target.String()).Msg("camera: cannot follow target without transform")
			c.frozen = true
			continue
		}
		c.follow(a, w.cfg.Camera.EyeHeight)
	}
}
