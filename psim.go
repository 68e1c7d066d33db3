// Package psim is the player-facing simulation core of a third-person physics
// game: orientation, movement, camera rigs and out-of-world recovery for actors
// driven by replicated input.
//
// psim provides:
//   - A World of actors addressed by generational handles
//   - A fixed-tick pipeline for anything that accumulates velocity
//   - A presentation-frame pipeline for look direction and camera rigs
//   - Bounds rules with teleport-and-grace recovery
//   - A single-owner spawn registry filled from level markers
//
// # Quick Start
//
// Load a level, build a world and feed it input:
//
//	level, _ := psim.LoadLevel("hub.yaml")
//	spawns := psim.NewSpawnRegistry()
//	psim.HarvestSpawnPoints(level, spawns)
//
//	w := psim.NewBuilder().
//	    Config(cfg).
//	    Logger(log.Logger).
//	    Registry(spawns).
//	    Physics(engine).
//	    Init()
//
//	h, err := w.Spawn(psim.ActorConfig{ID: playerID, Body: body})
//	if err != nil {
//	    return err
//	}
//	w.AttachCamera(h)
//	w.Start()
//	defer w.Stop()
//
//	w.SubmitInput(playerID, psim.Input{Held: psim.ActionsOf(psim.ActionUp)})
//
// # Cadences
//
// Movement impulses are added once per fixed tick and are never scaled by frame
// time, so the top speed does not depend on the frame rate. Turn input is
// scaled by the frame delta and sampled once per presentation frame.
//
// # Recovery
//
// Every fixed tick, after physics, each active actor is checked against its
// bounds rules. A violating actor is teleported to the next spawn point, its
// velocity is zeroed and it enters a grace window during which it does not
// collide with other actors.
package psim

// Version is the psim version.
const Version = "0.1.0"
