package psim

import (
	"sync/atomic"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Scheduler drives a World from one goroutine: fixed ticks at a constant rate
// and presentation frames at their own rate. Both run on the same goroutine, so
// systems never race each other.
type Scheduler struct {
	world *World

	// Execution state
	mu      deadlock.Mutex
	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	tickRate  time.Duration
	frameRate time.Duration
	lastFrame time.Time
	now       func() time.Time
}

// cadenceState tracks drift-free timing for one cadence.
type cadenceState struct {
	interval time.Duration
	nextRun  time.Time
}

// ShouldRun checks if the cadence is due at the given time.
func (c *cadenceState) ShouldRun(now time.Time) bool {
	if c.interval == 0 {
		return true
	}
	return !now.Before(c.nextRun)
}

// MarkRun schedules the next run.
func (c *cadenceState) MarkRun(now time.Time) {
	if c.interval > 0 {
		// Drift-free timing
		c.nextRun = c.nextRun.Add(c.interval)
		if c.nextRun.Before(now) {
			// Catch up if we're behind
			c.nextRun = now.Add(c.interval)
		}
	}
}

// newScheduler creates a scheduler for w.
func newScheduler(w *World, tickRate, frameRate time.Duration) *Scheduler {
	return &Scheduler{
		world:     w,
		tickRate:  tickRate,
		frameRate: frameRate,
		now:       time.Now,
	}
}

// Running returns true between Start and Stop.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Start begins the scheduler's loop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Swap(true) {
		return // Already running
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.loop()
}

// Stop gracefully shuts down the scheduler. It waits for the tick or frame in
// progress to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Swap(false) {
		return // Not running
	}
	close(s.stopCh)
	<-s.doneCh
}

// loop is the main scheduler loop.
func (s *Scheduler) loop() {
	defer close(s.doneCh)

	// The ticker runs at the finer of the two rates; each cadence decides on its
	// own whether it is due.
	base := s.tickRate
	if s.frameRate > 0 && s.frameRate < base {
		base = s.frameRate
	}
	ticker := time.NewTicker(base)
	defer ticker.Stop()

	start := s.now()
	fixed := cadenceState{interval: s.tickRate, nextRun: start}
	frame := cadenceState{interval: s.frameRate, nextRun: start}
	s.lastFrame = start

	s.world.log.Info().
		Dur("tick", s.tickRate).
		Dur("frame", s.frameRate).
		Msg("scheduler: started")

	for {
		select {
		case <-s.stopCh:
			s.world.log.Info().Uint64("ticks", s.world.tick).Msg("scheduler: stopped")
			return

		case <-ticker.C:
			now := s.now()
			s.advance(now, &fixed, &frame)
		}
	}
}

// advance runs the fixed tick and then the frame, each only if due. The fixed
// tick goes first so the camera sees settled positions.
func (s *Scheduler) advance(now time.Time, fixed, frame *cadenceState) {
	if fixed.ShouldRun(now) {
		s.world.Step()
		fixed.MarkRun(now)
	}
	if s.frameRate > 0 && frame.ShouldRun(now) {
		s.world.Frame(now.Sub(s.lastFrame))
		s.lastFrame = now
		frame.MarkRun(now)
	}
}
