// Package memory is an in-process implementation of the host toolkit.
//
// Views keep their frames, margins and guides in memory, the solver records
// every native constraint it is asked to create, and the dispatcher
// serialises mutations with a mutex. Nothing is solved: frames change only
// through SetFrame. This is enough to drive the engine from tests, from the
// command line and from the HTTP API, and to inspect exactly which native
// calls a recipe produced.
package memory

import (
	"sync"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/host"
)

// DefaultMargin is the layout margin of a new view on every side.
const DefaultMargin = 8

// Host is an in-memory toolkit.
type Host struct {
	solver     *Solver
	dispatcher *Dispatcher
}

// New creates an empty host.
func New() *Host {
	return &Host{
		solver:     &Solver{},
		dispatcher: &Dispatcher{},
	}
}

func (h *Host) Solver() host.Solver         { return h.solver }
func (h *Host) Dispatcher() host.Dispatcher { return h.dispatcher }

// Recorder returns the concrete solver for inspection.
func (h *Host) Recorder() *Solver { return h.solver }

// Serial returns the concrete dispatcher for inspection.
func (h *Host) Serial() *Dispatcher { return h.dispatcher }

// HasAmbiguousLayout reports whether the active constraints touching it
// leave either axis underdetermined. An axis is determined once two distinct
// attributes on it are constrained, counting width with the horizontal axis
// and height with the vertical one. Views that still translate their frame
// are never ambiguous.
func (h *Host) HasAmbiguousLayout(it host.Item) bool {
	if v, ok := it.(*View); ok && v.TranslatesAutoFrame() {
		return false
	}
	horizontal := map[attribute.Attribute]bool{}
	vertical := map[attribute.Attribute]bool{}
	note := func(id int) {
		a, ok := attribute.FromNative(id)
		if !ok || a == attribute.None {
			return
		}
		switch {
		case a == attribute.Width || a.Axis() == attribute.Horizontal:
			horizontal[a] = true
		case a == attribute.Height || a.Axis() == attribute.Vertical:
			vertical[a] = true
		}
	}
	for _, hd := range h.solver.Active() {
		c := hd.Native()
		if c.Item == it {
			note(c.Attribute)
		}
		if c.Other == it {
			note(c.OtherAttribute)
		}
	}
	return len(horizontal) < 2 || len(vertical) < 2
}

// Dispatcher serialises Run calls. It stands in for the toolkit's main
// thread.
type Dispatcher struct {
	mu   sync.Mutex
	runs int
}

// Run executes fn while holding the dispatcher lock.
func (d *Dispatcher) Run(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runs++
	fn()
}

// Runs returns how many functions have been dispatched.
func (d *Dispatcher) Runs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runs
}

var (
	_ host.Host             = (*Host)(nil)
	_ host.AmbiguityChecker = (*Host)(nil)
	_ host.Dispatcher       = (*Dispatcher)(nil)
)
