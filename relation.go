package psim

import "fmt"

// Handle is a reference to an actor slot in a World. It carries the slot's
// generation, so a handle to a removed actor stays detectably stale even after
// the slot is reused.
//
// The zero Handle never refers to an actor.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero returns true for the zero Handle.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// String returns a debug representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("Handle{%d@%d}", h.index, h.generation)
}

// slot is one arena cell. generation is odd while the slot is occupied.
type slot struct {
	generation uint32
	actor      *Actor
}

// resolve returns the actor h refers to, or nil if h is stale.
func (w *World) resolve(h Handle) *Actor {
	if h.IsZero() || int(h.index) >= len(w.slots) {
		return nil
	}
	s := &w.slots[h.index]
	if s.generation != h.generation || s.actor == nil {
		return nil
	}
	return s.actor
}

// allocate stores a in a free slot and returns its handle.
func (w *World) allocate(a *Actor) Handle {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	s := &w.slots[idx]
	s.generation++
	s.actor = a
	return Handle{index: idx, generation: s.generation}
}

// release frees the slot of h. The generation is bumped so outstanding handles
// go stale.
func (w *World) release(h Handle) {
	s := &w.slots[h.index]
	s.actor = nil
	s.generation++
	w.free = append(w.free, h.index)
}
