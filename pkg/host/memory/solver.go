package memory

import (
	"sync"

	"github.com/matzehuels/anchor/pkg/host"
)

// Solver records native constraint requests. It does not solve them.
type Solver struct {
	mu      sync.Mutex
	handles []*Handle
}

// CreateConstraint records c and returns an inactive handle for it.
func (s *Solver) CreateConstraint(c host.NativeConstraint) host.Handle {
	h := &Handle{native: c, priority: c.Priority}
	s.mu.Lock()
	s.handles = append(s.handles, h)
	s.mu.Unlock()
	return h
}

// Handles returns every handle created so far, in creation order.
func (s *Solver) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Handle(nil), s.handles...)
}

// Active returns the currently active handles in creation order.
func (s *Solver) Active() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Handle
	for _, h := range s.handles {
		if h.IsActive() {
			out = append(out, h)
		}
	}
	return out
}

// Reset forgets all recorded handles.
func (s *Solver) Reset() {
	s.mu.Lock()
	s.handles = nil
	s.mu.Unlock()
}

// Handle is a recorded native constraint.
type Handle struct {
	mu       sync.Mutex
	native   host.NativeConstraint
	active   bool
	priority int

	activations   int
	deactivations int
	noops         int
}

// SetActive activates or deactivates the constraint. Repeating the current
// state is counted as a no-op.
func (h *Handle) SetActive(active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == active {
		h.noops++
		return
	}
	h.active = active
	if active {
		h.activations++
	} else {
		h.deactivations++
	}
}

func (h *Handle) IsActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *Handle) SetConstant(c float64) {
	h.mu.Lock()
	h.native.Constant = c
	h.mu.Unlock()
}

func (h *Handle) SetPriority(p int) {
	h.mu.Lock()
	h.priority = p
	h.native.Priority = p
	h.mu.Unlock()
}

func (h *Handle) Priority() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.priority
}

// Native returns the constraint as last configured.
func (h *Handle) Native() host.NativeConstraint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.native
}

// Calls returns how often the handle was activated, deactivated, and asked
// to repeat its current state.
func (h *Handle) Calls() (activations, deactivations, noops int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activations, h.deactivations, h.noops
}

var (
	_ host.Solver = (*Solver)(nil)
	_ host.Handle = (*Handle)(nil)
)
