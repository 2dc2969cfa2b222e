package constraint

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/observability"
)

// Engine builds constraints against a host and keeps track of them.
type Engine struct {
	host   host.Host
	opts   options
	logger *log.Logger
	reg    *registry
}

// New creates an engine for h.
func New(h host.Host, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		host:   h,
		opts:   o,
		logger: logger,
		reg:    newRegistry(),
	}
}

// Host returns the host the engine drives.
func (e *Engine) Host() host.Host { return e.host }

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// StandardSpacing returns the configured standard spacing.
func (e *Engine) StandardSpacing() float64 { return e.opts.standardSpacing }

// At starts an unattributed expression on it.
func (e *Engine) At(it host.Item) Expression {
	x := Expression{
		eng:      e,
		item:     it,
		mult:     1,
		priority: e.opts.defaultPriority,
	}
	if it == nil {
		x.err = errors.New(errors.ErrCodeInvalidInput, "cannot constrain a nil item")
	}
	return x
}

// Inset returns the padding inset of it on the given side. With view
// margins enabled views report their own margins; everything else uses the
// standard spacing.
func (e *Engine) Inset(it host.Item, side attribute.Side) float64 {
	v, ok := it.(host.View)
	if !e.opts.viewMargins || !ok {
		return e.opts.standardSpacing
	}
	m := v.MarginInsets()
	switch side {
	case attribute.SideTop:
		return m.Top
	case attribute.SideLeading:
		return m.Leading
	case attribute.SideTrailing:
		return m.Trailing
	default:
		return m.Bottom
	}
}

// HasAmbiguousLayout asks the host whether it is underdetermined. Hosts that
// cannot tell report false.
func (e *Engine) HasAmbiguousLayout(it host.Item) bool {
	ac, ok := e.host.(host.AmbiguityChecker)
	if !ok {
		return false
	}
	return ac.HasAmbiguousLayout(it)
}

func (e *Engine) run(fn func()) {
	e.host.Dispatcher().Run(fn)
}

// activate realises c. It runs on the dispatcher.
func (e *Engine) activate(c *Constraint) {
	e.run(func() {
		if v, ok := c.item.(host.View); ok && v.TranslatesAutoFrame() {
			v.SetTranslatesAutoFrame(false)
		}
		c.handle = e.host.Solver().CreateConstraint(c.native())
		c.handle.SetActive(true)
		e.reg.add(c)
	})
	text := c.String()
	e.logger.Debug("constraint activated", "constraint", text, "priority", c.priority)
	observability.Layout().OnConstraintActivated(text, c.priority)
}
