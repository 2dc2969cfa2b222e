package grid

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/observability"
)

// Mode selects how a Grid applies its plan.
type Mode int

const (
	// ModePlace assigns frames to the cells.
	ModePlace Mode = iota
	// ModeConstrain expresses the grid as guides and constraints.
	ModeConstrain
)

func (m Mode) String() string {
	if m == ModeConstrain {
		return "constrain"
	}
	return "place"
}

// ParseMode resolves "place" or "constrain".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "place", "direct", "":
		return ModePlace, nil
	case "constrain", "constrained":
		return ModeConstrain, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown grid mode %q (want place or constrain)", s)
}

// Option configures a Grid.
type Option func(*Grid)

// WithPacking sets the packing. The default is DefaultPacking.
func WithPacking(p Packing) Option { return func(g *Grid) { g.packing = p } }

// WithCounts fixes the number of columns, rows or both.
func WithCounts(c Counts) Option { return func(g *Grid) { g.counts = c } }

// WithGap overrides the gap, which defaults to the engine's standard spacing.
func WithGap(v float64) Option {
	return func(g *Grid) {
		if v >= 0 {
			g.gap = v
		}
	}
}

// WithBorder reserves a border of v around the cells.
func WithBorder(v float64) Option {
	return func(g *Grid) {
		if v >= 0 {
			g.border = v
		}
	}
}

// WithMode selects direct or constrained placement.
func WithMode(m Mode) Option { return func(g *Grid) { g.mode = m } }

// WithLogger overrides the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// Grid keeps the subviews of a container laid out as a grid. It re-plans
// when views are added and, on hosts that report it, when the container is
// resized.
type Grid struct {
	eng       *constraint.Engine
	container host.View
	logger    *log.Logger

	packing Packing
	counts  Counts
	gap     float64
	border  float64
	mode    Mode

	mu       sync.Mutex
	plan     Plan
	guides   Constrained
	lastErr  error
	cancel   func()
}

// New creates a grid over container.
func New(eng *constraint.Engine, container host.View, opts ...Option) *Grid {
	g := &Grid{
		eng:       eng,
		container: container,
		logger:    eng.Logger(),
		packing:   DefaultPacking,
		gap:       eng.StandardSpacing(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if rn, ok := container.(host.ResizeNotifier); ok {
		g.cancel = rn.OnResize(func(host.Rect) {
			if _, err := g.Layout(); err != nil {
				g.logger.Warn("grid relayout failed", "container", container.Name(), "error", err)
			}
		})
	}
	return g
}

// Container returns the view the grid lays out.
func (g *Grid) Container() host.View { return g.container }

// Add appends views to the container and lays the grid out again.
func (g *Grid) Add(views ...host.View) (Plan, error) {
	for _, v := range views {
		if v == nil {
			return g.Plan(), errors.New(errors.ErrCodeInvalidInput, "cannot add a nil view to a grid")
		}
		g.container.AddSubview(v)
	}
	return g.Layout()
}

// Layout plans the grid for the container's current subviews and size and
// applies the plan.
func (g *Grid) Layout() (plan Plan, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	defer func() {
		observability.Layout().OnGridLayout(g.container.Name(), plan.Columns, plan.Rows, g.mode.String(), time.Since(start), err)
	}()

	bounds := g.container.Bounds()
	plan, err = Compute(Spec{
		Count:   len(g.container.Subviews()),
		Width:   bounds.Width,
		Height:  bounds.Height,
		Packing: g.packing,
		Counts:  g.counts,
		Gap:     g.gap,
		Border:  g.border,
	})
	if err != nil {
		g.lastErr = err
		return Plan{}, err
	}

	switch g.mode {
	case ModeConstrain:
		c, err := Constrain(g.eng, g.container, plan)
		if err != nil {
			g.lastErr = err
			return Plan{}, err
		}
		g.guides = c
	default:
		Place(g.container, plan)
	}

	g.plan, g.lastErr = plan, nil
	g.logger.Debug("grid layout",
		"container", g.container.Name(),
		"columns", plan.Columns,
		"rows", plan.Rows,
		"cell", plan.Cell,
		"mode", g.mode)
	return plan, nil
}

// Plan returns the most recently applied plan.
func (g *Grid) Plan() Plan {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.plan
}

// Guides returns the guides of the last constrained layout.
func (g *Grid) Guides() Constrained {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.guides
}

// Err returns the error of the last layout, if it failed.
func (g *Grid) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// Close stops following container resizes.
func (g *Grid) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
