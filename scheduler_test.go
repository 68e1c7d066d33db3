package psim

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadenceStateDriftFree(t *testing.T) {
	t0 := time.Unix(0, 0)
	c := cadenceState{interval: 10 * time.Millisecond, nextRun: t0}

	require.True(t, c.ShouldRun(t0))
	// Running late does not push the schedule back.
	c.MarkRun(t0.Add(3 * time.Millisecond))
	assert.Equal(t, t0.Add(10*time.Millisecond), c.nextRun)
	assert.False(t, c.ShouldRun(t0.Add(9*time.Millisecond)))
	assert.True(t, c.ShouldRun(t0.Add(10*time.Millisecond)))

	// Falling far behind skips the missed runs instead of bursting.
	c.MarkRun(t0.Add(100 * time.Millisecond))
	assert.Equal(t, t0.Add(110*time.Millisecond), c.nextRun)
}

func TestSchedulerAdvance(t *testing.T) {
	w := newTestWorld(t, nil, mgl64.Vec3{})
	s := newScheduler(w.World, 10*time.Millisecond, 20*time.Millisecond)

	t0 := time.Unix(0, 0)
	fixed := cadenceState{interval: s.tickRate, nextRun: t0}
	frame := cadenceState{interval: s.frameRate, nextRun: t0}
	s.lastFrame = t0

	s.advance(t0, &fixed, &frame)
	assert.Equal(t, uint64(1), w.TickNumber())
	assert.Equal(t, uint64(1), w.FrameNumber())

	s.advance(t0.Add(10*time.Millisecond), &fixed, &frame)
	assert.Equal(t, uint64(2), w.TickNumber())
	assert.Equal(t, uint64(1), w.FrameNumber())

	s.advance(t0.Add(20*time.Millisecond), &fixed, &frame)
	assert.Equal(t, uint64(3), w.TickNumber())
	assert.Equal(t, uint64(2), w.FrameNumber())
}

func TestSchedulerStartStop(t *testing.T) {
	ticked := make(chan struct{})
	var once sync.Once
	probe := SystemFunc{ID: "probe", Fn: func(*World, Tick) { once.Do(func() { close(ticked) }) }}

	w := newTestWorld(t, NewBuilder().System(probe, Fixed, After), mgl64.Vec3{})
	w.Start()
	w.Start()
	assert.True(t, w.scheduler.Running())

	select {
	case <-ticked:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not tick")
	}

	w.Stop()
	w.Stop()
	assert.False(t, w.scheduler.Running())
	assert.Positive(t, w.TickNumber())
	assert.Contains(t, w.logs.String(), "scheduler: started")
	assert.Contains(t, w.logs.String(), "scheduler: stopped")
}
