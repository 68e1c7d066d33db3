package psim

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrame = 16 * time.Millisecond

func TestCameraFollowsTarget(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{3, 1, -2})
	h, _ := spawnActor(t, w.World)
	rig := w.AttachCamera(h)
	require.Equal(t, h, rig.Target())

	w.Frame(testFrame)
	assert.False(t, rig.Frozen())
	assert.Equal(t, mgl64.Vec3{3, 3, -2}, rig.Position)
	assert.Equal(t, mgl64.QuatIdent(), rig.Rotation)
	assert.Equal(t, mgl64.Vec3{0, 0, DefaultCameraDistance}, rig.View)
	assertVecNear(t, mgl64.Vec3{3, 3, 18}, rig.Eye(), 1e-12)
}

func TestCameraTracksTurns(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{})
	h, _ := spawnActor(t, w.World)
	a := w.Actor(h)
	rig := w.AttachCamera(h)

	// A quarter turn: the camera swings round to +X.
	w.SubmitInput(a.ID(), Input{TurnHorizontal: math.Pi / 2 / testFrame.Seconds() / w.Config().Camera.Sensitivity})
	w.Frame(testFrame)

	assert.Equal(t, a.Orientation.Direction, rig.Rotation)
	assertVecNear(t, mgl64.Vec3{DefaultCameraDistance, 2, 0}, rig.Eye(), 1e-9)
}

func TestCameraFreezesOnStaleTarget(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{0, 1, 0})
	h, _ := spawnActor(t, w.World)
	rig := w.AttachCamera(h)
	w.Frame(testFrame)
	pos := rig.Position

	w.Remove(h)
	require.NotPanics(t, func() { w.Frame(testFrame) })
	assert.True(t, rig.Frozen())
	assert.Equal(t, pos, rig.Position)
	assert.Contains(t, w.logs.String(), `"level":"warn"`)
	assert.Contains(t, w.logs.String(), "camera: cannot follow target without transform")

	// Later frames keep skipping and only log at debug level.
	w.Frame(testFrame)
	assert.True(t, rig.Frozen())
	assert.Equal(t, 1, strings.Count(w.logs.String(), `"level":"warn"`))
}

func TestCameraOnZeroHandle(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{})
	rig := w.AttachCamera(Handle{})
	w.Frame(testFrame)
	assert.True(t, rig.Frozen())
}

func TestDetachCamera(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{})
	h, _ := spawnActor(t, w.World)
	rig := w.AttachCamera(h)
	require.Len(t, w.Cameras(), 1)

	assert.True(t, w.DetachCamera(rig))
	assert.False(t, w.DetachCamera(rig))
	assert.Empty(t, w.Cameras())
}
