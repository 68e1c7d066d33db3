package psim

import "time"

// Tick describes one run of a cadence.
type Tick struct {
	// Number counts runs of the cadence, starting at 1.
	Number uint64
	// Delta is the elapsed time covered by this run. It is constant for Fixed.
	Delta time.Duration
}

// Seconds returns Delta in seconds.
func (t Tick) Seconds() float64 {
	return t.Delta.Seconds()
}

// System is implemented by everything the World runs per tick or per frame.
// The Run method contains the system's logic and is called once per run of its
// cadence, on the simulation goroutine.
type System interface {
	Name() string
	Run(w *World, t Tick)
}

// SystemFunc adapts a plain function to a System.
type SystemFunc struct {
	ID string
	Fn func(w *World, t Tick)
}

// Name implements System.
func (f SystemFunc) Name() string { return f.ID }

// Run implements System.
func (f SystemFunc) Run(w *World, t Tick) { f.Fn(w, t) }
