package psim

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrStaleHandle is returned for handles of removed actors.
	ErrStaleHandle = errors.New("psim: stale actor handle")
	// ErrDuplicateActor is returned when spawning an ID that is already present.
	ErrDuplicateActor = errors.New("psim: actor already exists")
	// ErrNilBody is returned when spawning without a body.
	ErrNilBody = errors.New("psim: actor has no body")
)

// World is the arena of actors and the pipeline of systems that simulates them.
//
// A World is driven from a single goroutine: either call Step and Frame
// yourself, or Start the built-in Scheduler. SubmitInput is the only method that
// may be called from other goroutines.
type World struct {
	cfg      Config
	log      zerolog.Logger
	spawns   *SpawnRegistry
	handler  Handler
	physics  PhysicsEngine
	occluder Occluder

	bounds BoundsRules
	grace  GracePolicy

	// slots holds actors indexed by Handle.index
	slots []slot
	free  []uint32

	// byID provides identifier-based lookup
	byID map[uuid.UUID]Handle

	rigs []*CameraRig

	systems [cadenceCount][stageCount][]System

	inputs *inputMailbox

	tick       uint64
	frame      uint64
	fixedDelta time.Duration

	scheduler *Scheduler
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Spawns returns the world's spawn registry.
func (w *World) Spawns() *SpawnRegistry {
	return w.spawns
}

// Logger returns the world's logger.
func (w *World) Logger() zerolog.Logger {
	return w.log
}

// TickNumber returns the number of fixed ticks run so far.
func (w *World) TickNumber() uint64 {
	return w.tick
}

// FrameNumber returns the number of presentation frames run so far.
func (w *World) FrameNumber() uint64 {
	return w.frame
}

// FixedDelta returns the length of one fixed tick.
func (w *World) FixedDelta() time.Duration {
	return w.fixedDelta
}

// Spawn creates an actor at the next spawn point with the default orientation.
// It fails with ErrNoSpawnPoint if the registry is empty; the caller decides
// whether to retry.
func (w *World) Spawn(cfg ActorConfig) (Handle, error) {
	if cfg.Body == nil {
		return Handle{}, ErrNilBody
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if _, ok := w.byID[cfg.ID]; ok {
		return Handle{}, fmt.Errorf("psim: spawn %s: %w", cfg.ID, ErrDuplicateActor)
	}

	pos, err := w.spawns.Take()
	if err != nil {
		return Handle{}, fmt.Errorf("psim: spawn %s: %w", cfg.ID, err)
	}

	rules := w.bounds
	if cfg.Rules != nil {
		rules = cfg.Rules
	}
	grace := w.grace
	if cfg.Grace != nil {
		grace = *cfg.Grace
	}
	name := cfg.Name
	if name == "" {
		name = "Character:" + cfg.ID.String()
	}

	a := &Actor{
		id:          cfg.ID,
		name:        name,
		body:        cfg.Body,
		Orientation: NewOrientation(),
		jumpNormal:  worldY,
		recovery: Recovery{
			Rules:      rules,
			SpawnPoint: pos,
			Grace:      grace,
		},
	}
	a.body.Teleport(pos)
	a.handle = w.allocate(a)
	w.byID[a.id] = a.handle

	w.log.Debug().
		Str("actor", a.id.String()).
		Str("name", a.name).
		Msg("world: actor spawned")
	w.handler.HandleSpawn(a)
	return a.handle, nil
}

// Remove deletes the actor h refers to. It is the disconnect path; the bounds
// monitor never removes actors. Returns false if h is stale.
func (w *World) Remove(h Handle) bool {
	a := w.resolve(h)
	if a == nil {
		return false
	}
	w.handler.HandleRemove(a)

	delete(w.byID, a.id)
	w.inputs.forget(a.id)
	w.release(h)

	w.log.Debug().Str("actor", a.id.String()).Msg("world: actor removed")
	return true
}

// Actor returns the actor h refers to, or nil if h is stale.
func (w *World) Actor(h Handle) *Actor {
	return w.resolve(h)
}

// ActorByID returns the actor with the given identifier, or nil.
func (w *World) ActorByID(id uuid.UUID) *Actor {
	h, ok := w.byID[id]
	if !ok {
		return nil
	}
	return w.resolve(h)
}

// Len returns the number of live actors.
func (w *World) Len() int {
	return len(w.byID)
}

// Each calls fn for every live actor in slot order.
func (w *World) Each(fn func(a *Actor)) {
	for i := range w.slots {
		if a := w.slots[i].actor; a != nil {
			fn(a)
		}
	}
}

// SubmitInput queues an input snapshot for the actor with the given ID. It is
// safe for concurrent use; snapshots are applied at the start of the next tick
// or frame. Presses between two drains are kept even if already released.
func (w *World) SubmitInput(id uuid.UUID, in Input) {
	w.inputs.submit(id, in)
}

// Respawn moves the actor to the next spawn point and arms its grace window. It
// is the retry path for stranded actors. Inside a grace window, or if the actor
// already respawned this tick, it does nothing.
func (w *World) Respawn(h Handle) error {
	a := w.resolve(h)
	if a == nil {
		return ErrStaleHandle
	}
	return w.respawn(a, "manual")
}

// EndGrace closes the actor's grace window early. It is the only way a gated
// window ends.
func (w *World) EndGrace(h Handle) error {
	a := w.resolve(h)
	if a == nil {
		return ErrStaleHandle
	}
	w.endGrace(a)
	return nil
}

// Step advances the simulation by one fixed tick: drain input, refresh contacts,
// apply movement, step physics, then run the bounds monitor.
func (w *World) Step() {
	w.tick++
	t := Tick{Number: w.tick, Delta: w.fixedDelta}

	w.drainInput()
	for stage := Before; stage < stageCount; stage++ {
		w.runStage(Fixed, stage, t)
		if stage == Default && w.physics != nil {
			w.stepPhysics(t.Delta)
		}
	}
}

// Frame runs one presentation frame of length dt: orientation sampling and
// camera rigs. It never touches velocity, so slicing frames differently does
// not change the simulation.
func (w *World) Frame(dt time.Duration) {
	w.frame++
	t := Tick{Number: w.frame, Delta: dt}

	w.drainInput()
	for stage := Before; stage < stageCount; stage++ {
		w.runStage(Frame, stage, t)
	}
}

// drainInput applies queued snapshots to their actors.
func (w *World) drainInput() {
	w.inputs.drain(func(id uuid.UUID, e mailboxEntry) {
		a := w.ActorByID(id)
		if a == nil {
			w.inputs.forget(id)
			return
		}
		a.input.apply(e.latest, e.rising)
	})
}

// runStage runs every system of a stage, isolating panics so one faulty system
// cannot halt the loop.
func (w *World) runStage(c Cadence, stage Stage, t Tick) {
	for _, sys := range w.systems[c][stage] {
		w.runSystem(c, sys, t)
	}
}

func (w *World) runSystem(c Cadence, sys System, t Tick) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().
				Str("system", sys.Name()).
				Str("cadence", c.String()).
				Uint64("tick", t.Number).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("world: system panicked")
		}
	}()
	sys.Run(w, t)
}

func (w *World) stepPhysics(dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("world: physics step panicked")
		}
	}()
	w.physics.Step(dt)
}

// addSystem registers a system. Systems within a stage run in registration order.
func (w *World) addSystem(sys System, c Cadence, stage Stage) {
	w.systems[c][stage] = append(w.systems[c][stage], sys)
}

// Start runs the world on its scheduler goroutine.
func (w *World) Start() {
	w.scheduler.Start()
}

// Stop stops the scheduler and waits for the current tick to finish.
func (w *World) Stop() {
	w.scheduler.Stop()
}
