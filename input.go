package psim

import (
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Action is a discrete input an actor can hold.
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionSprint
	ActionJump

	actionCount
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSprint:
		return "Sprint"
	case ActionJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// Actions is a set of actions.
type Actions uint8

// ActionsOf returns the set holding the given actions.
func ActionsOf(actions ...Action) Actions {
	var s Actions
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns s with a added.
func (s Actions) With(a Action) Actions {
	return s | 1<<a
}

// Without returns s with a removed.
func (s Actions) Without(a Action) Actions {
	return s &^ (1 << a)
}

// Has returns true if a is in s.
func (s Actions) Has(a Action) bool {
	return s&(1<<a) != 0
}

// Input is one replicated input snapshot for an actor.
type Input struct {
	// Held are the actions currently held down.
	Held Actions
	// TurnHorizontal and TurnVertical are turn rates, scaled by sensitivity and
	// frame delta when applied.
	TurnHorizontal float64
	TurnVertical   float64
}

// axis returns 1, -1 or 0 depending on which of pos and neg is held.
func (in Input) axis(pos, neg Action) float64 {
	var v float64
	if in.Held.Has(pos) {
		v++
	}
	if in.Held.Has(neg) {
		v--
	}
	return v
}

// InputState is the per-actor view of input: the latest snapshot plus the rising
// edges that have not been consumed yet.
type InputState struct {
	current Input
	pending Actions
}

// Current returns the latest snapshot.
func (s *InputState) Current() Input {
	return s.current
}

// Held returns true if a is held in the latest snapshot.
func (s *InputState) Held(a Action) bool {
	return s.current.Held.Has(a)
}

// Pending returns true if a became held and has not been consumed yet.
func (s *InputState) Pending(a Action) bool {
	return s.pending.Has(a)
}

// PollAndClear returns whether a became held since it was last consumed, and
// marks it consumed. It reports true at most once per press.
func (s *InputState) PollAndClear(a Action) bool {
	if !s.pending.Has(a) {
		return false
	}
	s.pending = s.pending.Without(a)
	return true
}

// apply replaces the snapshot and records rising edges.
func (s *InputState) apply(in Input, rising Actions) {
	s.pending |= rising | (in.Held &^ s.current.Held)
	s.current = in
}

// mailboxEntry is the input collected for one actor between two drains.
type mailboxEntry struct {
	latest Input
	rising Actions
}

// inputMailbox buffers input submitted from other goroutines until the
// simulation goroutine drains it.
type inputMailbox struct {
	mu deadlock.Mutex

	// last holds the previous submission per actor, kept across drains so edges
	// are computed against what the submitter saw.
	last    map[uuid.UUID]Actions
	entries map[uuid.UUID]mailboxEntry
}

// newInputMailbox creates an empty mailbox.
func newInputMailbox() *inputMailbox {
	return &inputMailbox{
		last:    make(map[uuid.UUID]Actions),
		entries: make(map[uuid.UUID]mailboxEntry),
	}
}

// submit records a snapshot, accumulating presses so a button pressed and
// released between two ticks still produces an edge.
func (m *inputMailbox) submit(id uuid.UUID, in Input) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[id]
	e.rising |= in.Held &^ m.last[id]
	e.latest = in
	m.entries[id] = e
	m.last[id] = in.Held
}

// forget drops all state for an actor.
func (m *inputMailbox) forget(id uuid.UUID) {
	m.mu.Lock()
	delete(m.entries, id)
	delete(m.last, id)
	m.mu.Unlock()
}

// drain hands every pending entry to fn and empties the mailbox.
func (m *inputMailbox) drain(fn func(id uuid.UUID, e mailboxEntry)) {
	m.mu.Lock()
	if len(m.entries) == 0 {
		m.mu.Unlock()
		return
	}
	entries := m.entries
	m.entries = make(map[uuid.UUID]mailboxEntry, len(entries))
	m.mu.Unlock()

	for id, e := range entries {
		fn(id, e)
	}
}
