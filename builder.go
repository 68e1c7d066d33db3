package psim

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Builder configures a World before initialization.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	cfg      Config
	log      zerolog.Logger
	spawns   *SpawnRegistry
	handler  Handler
	physics  PhysicsEngine
	occluder Occluder
	systems  []systemRegistration
}

type systemRegistration struct {
	system  System
	cadence Cadence
	stage   Stage
}

// NewBuilder creates a new builder with DefaultConfig and a no-op logger.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
		log: zerolog.Nop(),
	}
}

// Config replaces the configuration.
func (b *Builder) Config(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Logger sets the logger the world and its scheduler write to.
func (b *Builder) Logger(log zerolog.Logger) *Builder {
	b.log = log
	return b
}

// Registry sets the spawn registry. Required.
func (b *Builder) Registry(r *SpawnRegistry) *Builder {
	b.spawns = r
	return b
}

// Handler sets the event handler.
func (b *Builder) Handler(h Handler) *Builder {
	b.handler = h
	return b
}

// Physics sets the engine stepped on every fixed tick. Without one, velocities
// are still written but nothing integrates them.
func (b *Builder) Physics(p PhysicsEngine) *Builder {
	b.physics = p
	return b
}

// Occluder sets the ray caster used to pull the camera in front of walls.
func (b *Builder) Occluder(o Occluder) *Builder {
	b.occluder = o
	return b
}

// System adds a system to the given cadence and stage. User systems run after
// the built-in systems of the same stage.
//
// Example:
//
//	builder.System(psim.SystemFunc{ID: "score", Fn: score}, psim.Fixed, psim.After)
func (b *Builder) System(sys System, c Cadence, stage Stage) *Builder {
	b.systems = append(b.systems, systemRegistration{sys, c, stage})
	return b
}

// Init validates the configuration and returns the World. The scheduler is not
// started; call World.Start or drive the world with Step and Frame.
func (b *Builder) Init() *World {
	if b.spawns == nil {
		panic("psim: builder has no spawn registry")
	}
	if err := b.cfg.Validate(); err != nil {
		panic(err.Error())
	}
	bounds, _ := b.cfg.Rules()
	grace, _ := b.cfg.GracePolicy()

	handler := b.handler
	if handler == nil {
		handler = NopHandler{}
	}

	w := &World{
		cfg:        b.cfg,
		log:        b.log,
		spawns:     b.spawns,
		handler:    handler,
		physics:    b.physics,
		occluder:   b.occluder,
		bounds:     bounds,
		grace:      grace,
		byID:       make(map[uuid.UUID]Handle),
		inputs:     newInputMailbox(),
		fixedDelta: b.cfg.FixedDelta(),
	}
	w.scheduler = newScheduler(w, b.cfg.FixedDelta(), b.cfg.FrameDelta())

	// Built-in systems
	w.addSystem(contactSystem{}, Fixed, Before)
	w.addSystem(movementSystem{}, Fixed, Default)
	w.addSystem(recoverySystem{}, Fixed, After)
	w.addSystem(orientationSystem{}, Frame, Default)
	w.addSystem(cameraSystem{}, Frame, After)

	for _, reg := range b.systems {
		w.addSystem(reg.system, reg.cadence, reg.stage)
	}

	w.log.Debug().
		Int("systems", len(b.systems)).
		Int("spawnPoints", b.spawns.Len()).
		Msg("world: initialised")
	return w
}
