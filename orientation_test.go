package psim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnYaw(t *testing.T) {
	dir := Turn(mgl64.QuatIdent(), math.Pi/2, 0)
	got := dir.Rotate(worldZ)
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, got, 1e-12)
}

func TestTurnPitch(t *testing.T) {
	dir := Turn(mgl64.QuatIdent(), 0, math.Pi/2)
	got := dir.Rotate(worldZ)
	assertVecNear(t, mgl64.Vec3{0, -1, 0}, got, 1e-12)
}

// Yaw about the world vertical and pitch about the local horizontal keep the
// local X axis level, however many turns are combined.
func TestTurnKeepsHorizonLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dir := mgl64.QuatIdent()
	for i := 0; i < 1000; i++ {
		dir = Turn(dir, rng.Float64()-0.5, rng.Float64()-0.5)
		right := dir.Rotate(worldX)
		require.InDelta(t, 0, right[1], 1e-9, "roll introduced after %d turns", i)
		require.InDelta(t, 1, dir.Len(), 1e-9)
	}
}

func TestRotateScalesByFrameTime(t *testing.T) {
	o := NewOrientation()
	o.Rotate(Input{TurnHorizontal: 1, TurnVertical: 0.5}, 0.5, 2)

	want := Turn(mgl64.QuatIdent(), 1, 0.5)
	assert.Equal(t, want, o.Direction)
	assert.Equal(t, SpawnCameraDistance, o.Distance)
}

func TestOrientationSystemSetsDistance(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{})
	h, _ := spawnActor(t, w.World)
	require.InDelta(t, math.Sqrt(325), w.Actor(h).Orientation.Distance, 1e-12)

	w.Frame(16 * time.Millisecond)
	assert.Equal(t, DefaultCameraDistance, w.Actor(h).Orientation.Distance)
}

type wall struct {
	distance float64
}

func (o wall) CastRay(_, _ mgl64.Vec3, maxDist float64) (float64, bool) {
	if o.distance > maxDist {
		return 0, false
	}
	return o.distance, true
}

func TestOccluderPullsCameraIn(t *testing.T) {
	w := newTestWorld(t, NewBuilder().Occluder(wall{distance: 5}), mgl64.Vec3{})
	h, _ := spawnActor(t, w.World)

	w.Frame(16 * time.Millisecond)
	assert.Equal(t, 5.0, w.Actor(h).Orientation.Distance)

	far := newTestWorld(t, NewBuilder().Occluder(wall{distance: 50}), mgl64.Vec3{})
	h, _ = spawnActor(t, far.World)
	far.Frame(16 * time.Millisecond)
	assert.Equal(t, DefaultCameraDistance, far.Actor(h).Orientation.Distance)
}

func TestForwardAndRight(t *testing.T) {
	o := NewOrientation()
	assert.Equal(t, worldZ, o.Forward())
	assert.Equal(t, worldX, o.Right())
}

func TestTurnOrderMatters(t *testing.T) {
	start := mgl64.QuatRotate(0.4, mgl64.Vec3{1, 2, 3}.Normalize())
	yaw, pitch := 0.3, -0.2

	got := Turn(start, yaw, pitch)
	swapped := mgl64.QuatRotate(pitch, worldX).Mul(start).Mul(mgl64.QuatRotate(yaw, worldY)).Normalize()

	diff := got.Rotate(worldZ).Sub(swapped.Rotate(worldZ)).Len()
	assert.Greater(t, diff, 1e-3)
}
