package main

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/oriumgames/psim"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

//go:embed hub.yaml
var defaultLevel []byte

// botRadius is half the height of a bot, matching the two-unit actor size.
const botRadius = 1.0

type runOptions struct {
	configs  []string
	level    string
	bots     int
	duration time.Duration
	floor    float64
	seed     int64
}

// reporter logs world events and counts respawns per actor. It is only touched
// on the simulation goroutine and read after the world has stopped.
type reporter struct {
	psim.NopHandler
	respawns map[uuid.UUID]int
	failures int
}

func (r *reporter) HandleSpawn(a *psim.Actor) {
	log.Info().Str("actor", a.Name()).Str("at", formatVec(a.Position())).Msg("spawned")
}

func (r *reporter) HandleRespawn(a *psim.Actor, from, to mgl64.Vec3) {
	r.respawns[a.ID()]++
	log.Info().
		Str("actor", a.Name()).
		Str("from", formatVec(from)).
		Str("to", formatVec(to)).
		Msg("respawned")
}

func (r *reporter) HandleRespawnFailed(a *psim.Actor, err error) {
	r.failures++
	log.Error().Err(err).Str("actor", a.Name()).Msg("respawn failed")
}

func (r *reporter) HandleGraceEnd(a *psim.Actor) {
	log.Debug().Str("actor", a.Name()).Msg("grace ended")
}

func loadLevel(path string) (*psim.Level, error) {
	if path == "" {
		return psim.ParseLevel(defaultLevel)
	}
	return psim.LoadLevel(path)
}

func runCommand(opts runOptions) error {
	cfg, err := psim.LoadConfig(opts.configs...)
	if err != nil {
		return err
	}

	level, err := loadLevel(opts.level)
	if err != nil {
		return err
	}

	spawns := psim.NewSpawnRegistry()
	n := psim.HarvestSpawnPoints(level, spawns)
	if n == 0 {
		return fmt.Errorf("level %q has no spawn markers", level.Name)
	}
	log.Info().Msgf("loaded level %s (%d spawn points, %d other markers)", level.Name, n, len(level.Markers))

	physics := &psim.PointPhysics{
		Gravity:         cfg.Movement.Gravity,
		FloorHalfExtent: opts.floor,
		Friction:        0.02,
	}
	report := &reporter{respawns: make(map[uuid.UUID]int)}

	w := psim.NewBuilder().
		Config(cfg).
		Logger(log.Logger).
		Registry(spawns).
		Handler(report).
		Physics(physics).
		Init()

	ids := make([]uuid.UUID, 0, opts.bots)
	for i := 0; i < opts.bots; i++ {
		body := psim.NewPointBody(mgl64.Vec3{}, botRadius)
		physics.Add(body)

		h, err := w.Spawn(psim.ActorConfig{
			Name: fmt.Sprintf("bot-%d", i),
			Body: body,
		})
		if err != nil {
			return err
		}
		if i == 0 {
			w.AttachCamera(h)
		}
		ids = append(ids, w.Actor(h).ID())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		driveBots(ctx, w, ids, opts.seed)
	}()

	w.Start()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	select {
	case <-ctx.Done():
	case <-sigs:
		log.Info().Msg("interrupted")
		cancel()
	}
	<-done
	w.Stop()

	if rigs := w.Cameras(); len(rigs) > 0 {
		log.Info().
			Str("eye", formatVec(rigs[0].Eye())).
			Bool("frozen", rigs[0].Frozen()).
			Msg("camera")
	}
	w.Each(func(a *psim.Actor) {
		log.Info().
			Str("actor", a.Name()).
			Str("pos", formatVec(a.Position())).
			Str("phase", a.Recovery().Phase().String()).
			Int("respawns", report.respawns[a.ID()]).
			Msg("summary")
	})
	log.Info().
		Uint64("ticks", w.TickNumber()).
		Uint64("frames", w.FrameNumber()).
		Int("failedRespawns", report.failures).
		Msg("simulation finished")
	return nil
}

// driveBots submits a new random input snapshot for every bot a few times per
// second until ctx is done.
func driveBots(ctx context.Context, w *psim.World, ids []uuid.UUID, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range ids {
				w.SubmitInput(id, randomInput(rng))
			}
		}
	}
}

func randomInput(rng *rand.Rand) psim.Input {
	var held psim.Actions
	for _, a := range []psim.Action{psim.ActionUp, psim.ActionLeft, psim.ActionRight, psim.ActionSprint, psim.ActionJump} {
		if rng.Intn(3) == 0 {
			held = held.With(a)
		}
	}
	return psim.Input{
		Held:           held,
		TurnHorizontal: rng.Float64()*2 - 1,
		TurnVertical:   (rng.Float64()*2 - 1) * 0.2,
	}
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
