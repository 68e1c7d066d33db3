package psim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the recovery state of an actor.
type Phase uint8

const (
	// PhaseActive is normal play; the bounds monitor watches the actor.
	PhaseActive Phase = iota
	// PhaseGrace follows a respawn: the actor ignores other actors until the
	// grace window ends. Violations are not acted upon.
	PhaseGrace
	// PhaseStranded means a respawn failed for lack of spawn points. The monitor
	// leaves the actor alone until World.Respawn is called.
	PhaseStranded
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "Active"
	case PhaseGrace:
		return "Grace"
	case PhaseStranded:
		return "Stranded"
	default:
		return "Unknown"
	}
}

// GraceMode selects how a grace window ends.
type GraceMode uint8

const (
	// GraceNone skips the grace window entirely.
	GraceNone GraceMode = iota
	// GraceTimer ends the window after a fixed amount of simulated time.
	GraceTimer
	// GraceGated keeps the window open until World.EndGrace is called.
	GraceGated
)

// String returns the string representation of the mode.
func (m GraceMode) String() string {
	switch m {
	case GraceNone:
		return "none"
	case GraceTimer:
		return "timer"
	case GraceGated:
		return "gated"
	default:
		return "unknown"
	}
}

// ParseGraceMode parses the names returned by GraceMode.String.
func ParseGraceMode(s string) (GraceMode, error) {
	switch s {
	case "none", "":
		return GraceNone, nil
	case "timer":
		return GraceTimer, nil
	case "gated":
		return GraceGated, nil
	}
	return 0, fmt.Errorf("psim: unknown grace mode %q", s)
}

// GracePolicy configures the grace window armed on respawn.
type GracePolicy struct {
	Mode     GraceMode
	Duration time.Duration
}

// TimedGrace returns a timer policy of duration d.
func TimedGrace(d time.Duration) GracePolicy {
	return GracePolicy{Mode: GraceTimer, Duration: d}
}

// Recovery is the per-actor state of the bounds monitor.
type Recovery struct {
	// Rules define the playable volume. Empty rules never trigger a respawn.
	Rules BoundsRules
	// SpawnPoint is the coordinate the actor was last placed at.
	SpawnPoint mgl64.Vec3
	// Grace is armed on every respawn.
	Grace GracePolicy

	phase   Phase
	elapsed time.Duration
	// respawnTick is the fixed tick of the last respawn, valid once respawned
	// is set.
	respawnTick uint64
	respawned   bool
	// saved holds the collision groups to restore when grace ends.
	saved CollisionGroups
}

// Phase returns the current recovery phase.
func (r *Recovery) Phase() Phase {
	return r.phase
}

// Elapsed returns how long the current grace window has been open.
func (r *Recovery) Elapsed() time.Duration {
	return r.elapsed
}

// Remaining returns the time left in a timed grace window, zero otherwise.
func (r *Recovery) Remaining() time.Duration {
	if r.phase != PhaseGrace || r.Grace.Mode != GraceTimer {
		return 0
	}
	return max(r.Grace.Duration-r.elapsed, 0)
}

// advance moves the grace timer forward by dt and reports whether the window
// closed.
func (r *Recovery) advance(dt time.Duration) bool {
	if r.phase != PhaseGrace || r.Grace.Mode != GraceTimer {
		return false
	}
	r.elapsed += dt
	return r.elapsed >= r.Grace.Duration
}

// respawn moves a to a coordinate from the registry and arms the grace window.
// It is a no-op while a grace window is open or if a already respawned this tick.
func (w *World) respawn(a *Actor, reason string) error {
	r := &a.recovery
	if r.phase == PhaseGrace || (r.respawned && r.respawnTick == w.tick) {
		return nil
	}

	from := a.body.Position()
	to, err := w.spawns.Take()
	if err != nil {
		r.phase = PhaseStranded
		w.log.Warn().
			Str("actor", a.id.String()).
			Str("reason", reason).
			Err(err).
			Msg("recovery: respawn failed")
		w.handler.HandleRespawnFailed(a, err)
		return fmt.Errorf("psim: respawn %s: %w", a.id, err)
	}

	a.body.Teleport(to)
	a.body.SetVelocity(mgl64.Vec3{})
	r.SpawnPoint = to
	r.respawnTick = w.tick
	r.respawned = true
	r.phase = PhaseActive

	if r.Grace.Mode != GraceNone {
		r.saved = a.body.CollisionGroups()
		a.body.SetCollisionGroups(NoclipGroups())
		r.phase = PhaseGrace
		r.elapsed = 0
	}

	w.log.Debug().
		Str("actor", a.id.String()).
		Str("reason", reason).
		Uint64("tick", w.tick).
		Msg("recovery: respawned")
	w.handler.HandleRespawn(a, from, to)
	return nil
}

// endGrace restores collisions and returns a to normal play.
func (w *World) endGrace(a *Actor) {
	r := &a.recovery
	if r.phase != PhaseGrace {
		return
	}
	a.body.SetCollisionGroups(r.saved)
	r.phase = PhaseActive
	r.elapsed = 0

	w.log.Debug().Str("actor", a.id.String()).Msg("recovery: grace ended")
	w.handler.HandleGraceEnd(a)
}

// recoverySystem is the bounds monitor. It runs after physics on the fixed tick.
type recoverySystem struct{}

func (recoverySystem) Name() string { return "recovery" }

func (recoverySystem) Run(w *World, t Tick) {
	w.Each(func(a *Actor) {
		r := &a.recovery
		if r.advance(t.Delta) {
			w.endGrace(a)
		}
		if r.phase != PhaseActive {
			return
		}
		rule, ok := r.Rules.Violation(a.body.Position())
		if !ok {
			return
		}
		// Failures are reported through the handler and leave the actor stranded.
		_ = w.respawn(a, rule.String())
	})
}
