// Package dock provides named constraint recipes that pin a view to its
// superview or to sibling views, and that align attributes across views.
//
// Recipes are plain sequences of [constraint.Expression] comparisons. They
// keep no state of their own: the returned constraints live in the engine's
// registry like any other. A recipe either creates all of its constraints or
// none: when one comparison fails, the ones already created are removed
// before the error is returned.
//
//	d := dock.New(eng, header)
//	cs, err := d.Top(dock.WithShare(0.2), dock.WithFit(dock.Safe))
package dock

import (
	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// Fit selects the superview rectangle a view is docked to.
type Fit int

const (
	// Tight docks to the superview's own edges.
	Tight Fit = iota
	// Margin docks to the superview's layout margins guide.
	Margin
	// Safe docks to the superview's safe area guide.
	Safe
)

// DefaultFit is used when no WithFit option is given.
const DefaultFit = Margin

// String returns the fit name.
func (f Fit) String() string {
	switch f {
	case Tight:
		return "tight"
	case Safe:
		return "safe"
	default:
		return "margin"
	}
}

// ParseFit resolves "tight", "margin" or "safe".
func ParseFit(s string) (Fit, error) {
	switch s {
	case "tight":
		return Tight, nil
	case "margin", "":
		return Margin, nil
	case "safe":
		return Safe, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown fit %q (want tight, margin or safe)", s)
}

// Option configures a docking recipe.
type Option func(*config)

type config struct {
	fit      Fit
	constant float64
	share    *[2]float64
}

// WithFit selects the docking target.
func WithFit(f Fit) Option { return func(c *config) { c.fit = f } }

// WithConstant insets every docked edge by v.
func WithConstant(v float64) Option { return func(c *config) { c.constant = v } }

// WithShare sizes the view to a fraction of its superview on both axes.
func WithShare(s float64) Option { return WithShareXY(s, s) }

// WithShareXY sizes the view to separate fractions of its superview's width
// and height.
func WithShareXY(x, y float64) Option {
	return func(c *config) { c.share = &[2]float64{x, y} }
}

func newConfig(opts []Option) config {
	c := config{fit: DefaultFit}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Dock builds docking recipes for one view.
type Dock struct {
	eng  *constraint.Engine
	view host.View
}

// New returns the docking recipes for v.
func New(eng *constraint.Engine, v host.View) Dock {
	return Dock{eng: eng, view: v}
}

// recipe collects the constraints of one docking call and rolls them back
// on the first failure.
type recipe struct {
	eng  *constraint.Engine
	made constraint.Constraints
	err  error
}

func (r *recipe) eq(x constraint.Expression, other any) {
	if r.err != nil {
		return
	}
	c, err := x.Eq(other)
	if err != nil {
		r.err = err
		return
	}
	r.made = append(r.made, c)
}

func (r *recipe) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *recipe) done() (constraint.Constraints, error) {
	if r.err != nil {
		r.eng.Remove(r.made)
		return nil, r.err
	}
	return r.made, nil
}

func (d Dock) begin() (*recipe, host.View) {
	r := &recipe{eng: d.eng}
	if d.view == nil {
		r.fail(errors.New(errors.ErrCodeInvalidInput, "cannot dock a nil view"))
		return r, nil
	}
	sv := d.view.Superview()
	if sv == nil {
		r.fail(errors.New(errors.ErrCodeNoSuperview, "%s has no superview to dock to", d.view.Name()))
	}
	return r, sv
}

func (d Dock) target(sv host.View, fit Fit) constraint.Expression {
	switch fit {
	case Tight:
		return d.eng.At(sv)
	case Safe:
		return d.eng.SafeArea(sv)
	default:
		return d.eng.Margins(sv)
	}
}

func (d Dock) at() constraint.Expression { return d.eng.At(d.view) }

func (d Dock) edges(r *recipe, sv host.View, cfg config, top, bottom, leading, trailing bool) {
	if sv == nil {
		return
	}
	f := d.target(sv, cfg.fit)
	k := cfg.constant
	if top {
		r.eq(d.at().Top(), f.Top().Plus(k))
	}
	if bottom {
		r.eq(d.at().Bottom(), f.Bottom().Minus(k))
	}
	if leading {
		r.eq(d.at().Leading(), f.Leading().Plus(k))
	}
	if trailing {
		r.eq(d.at().Trailing(), f.Trailing().Minus(k))
	}
}

func (d Dock) size(r *recipe, sv host.View, cfg config, width, height bool) {
	if sv == nil || cfg.share == nil {
		return
	}
	s := d.eng.At(sv)
	if width {
		r.eq(d.at().Width(), s.Width().Times(cfg.share[0]))
	}
	if height {
		r.eq(d.at().Height(), s.Height().Times(cfg.share[1]))
	}
}

// All docks all four edges.
func (d Dock) All(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, true, true, true, true)
	return r.done()
}

// Center centres the view in its superview. The fit is ignored; a share
// sizes the view proportionally.
func (d Dock) Center(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	if sv != nil {
		r.eq(d.at().CenterX(), d.eng.At(sv).CenterX())
		r.eq(d.at().CenterY(), d.eng.At(sv).CenterY())
	}
	d.size(r, sv, cfg, true, true)
	return r.done()
}

// Sides docks the leading and trailing edges.
func (d Dock) Sides(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, false, false, true, true)
	d.size(r, sv, cfg, true, true)
	return r.done()
}

// Horizontal is an alias of Sides.
func (d Dock) Horizontal(opts ...Option) (constraint.Constraints, error) {
	return d.Sides(opts...)
}

// Vertical docks the top and bottom edges.
func (d Dock) Vertical(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, true, true, false, false)
	d.size(r, sv, cfg, true, true)
	return r.done()
}

// Top docks the top, leading and trailing edges. A share sets the height.
func (d Dock) Top(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, true, false, true, true)
	d.size(r, sv, cfg, false, true)
	return r.done()
}

// Bottom docks the bottom, leading and trailing edges. A share sets the
// height.
func (d Dock) Bottom(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, false, true, true, true)
	d.size(r, sv, cfg, false, true)
	return r.done()
}

// Leading docks the leading, top and bottom edges. A share sets the width.
func (d Dock) Leading(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, true, true, true, false)
	d.size(r, sv, cfg, true, false)
	return r.done()
}

// Trailing docks the trailing, top and bottom edges. A share sets the width.
func (d Dock) Trailing(opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, true, true, false, true)
	d.size(r, sv, cfg, true, false)
	return r.done()
}

func (d Dock) TopLeading(opts ...Option) (constraint.Constraints, error) {
	return d.corner(opts, true, true)
}

func (d Dock) TopTrailing(opts ...Option) (constraint.Constraints, error) {
	return d.corner(opts, true, false)
}

func (d Dock) BottomLeading(opts ...Option) (constraint.Constraints, error) {
	return d.corner(opts, false, true)
}

func (d Dock) BottomTrailing(opts ...Option) (constraint.Constraints, error) {
	return d.corner(opts, false, false)
}

func (d Dock) corner(opts []Option, top, leading bool) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	d.edges(r, sv, cfg, top, !top, leading, !leading)
	d.size(r, sv, cfg, true, true)
	return r.done()
}

// HorizontalBetween docks the leading and trailing edges to the superview
// and places the view vertically between topView and bottomView. With a
// tight fit the edges meet directly; otherwise they keep the padding inset.
func (d Dock) HorizontalBetween(topView, bottomView host.Item, opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	if topView == nil || bottomView == nil {
		r.fail(errors.New(errors.ErrCodeInvalidInput, "horizontal between needs a top and a bottom item"))
	}
	d.edges(r, sv, cfg, false, false, true, true)
	if r.err == nil {
		above, below := d.eng.At(topView).Bottom(), d.eng.At(bottomView).Top()
		if cfg.fit != Tight {
			above, below = d.eng.At(topView).BottomPadding(), d.eng.At(bottomView).TopPadding()
		}
		r.eq(d.at().Top(), above.Plus(cfg.constant))
		r.eq(d.at().Bottom(), below.Minus(cfg.constant))
	}
	return r.done()
}

// VerticalBetween docks the top and bottom edges to the superview and
// places the view horizontally between leadingView and trailingView.
func (d Dock) VerticalBetween(leadingView, trailingView host.Item, opts ...Option) (constraint.Constraints, error) {
	cfg := newConfig(opts)
	r, sv := d.begin()
	if leadingView == nil || trailingView == nil {
		r.fail(errors.New(errors.ErrCodeInvalidInput, "vertical between needs a leading and a trailing item"))
	}
	d.edges(r, sv, cfg, true, true, false, false)
	if r.err == nil {
		before, after := d.eng.At(leadingView).Trailing(), d.eng.At(trailingView).Leading()
		if cfg.fit != Tight {
			before, after = d.eng.At(leadingView).TrailingPadding(), d.eng.At(trailingView).LeadingPadding()
		}
		r.eq(d.at().Leading(), before.Plus(cfg.constant))
		r.eq(d.at().Trailing(), after.Minus(cfg.constant))
	}
	return r.done()
}

// Fit sizes the view to its preferred size. Text-bearing views get their
// leading and trailing insets added to the width.
func (d Dock) Fit() (constraint.Constraints, error) {
	r := &recipe{eng: d.eng}
	if d.view == nil {
		r.fail(errors.New(errors.ErrCodeInvalidInput, "cannot fit a nil view"))
		return r.done()
	}
	size := d.view.PreferredSize(host.Size{})
	extra := 0.0
	if tb, ok := d.view.(host.TextBearer); ok && tb.Text() != "" {
		extra = d.eng.Inset(d.view, attribute.SideLeading) + d.eng.Inset(d.view, attribute.SideTrailing)
	}
	r.eq(d.at().Width(), size.Width+extra)
	r.eq(d.at().Height(), size.Height)
	return r.done()
}
