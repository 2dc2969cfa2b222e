package scene

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/dock"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/grid"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/host/memory"
	"github.com/matzehuels/anchor/pkg/observability"
)

// Result is a scene built on the in-memory host.
type Result struct {
	Host   *memory.Host
	Engine *constraint.Engine
	Root   *memory.View
	Views  map[string]*memory.View
	Grids  []*grid.Grid
	Report Report

	fit dock.Fit
}

// Close stops every grid from following container resizes.
func (r *Result) Close() {
	for _, g := range r.Grids {
		g.Close()
	}
}

// Resolve looks up a view by name.
func (r *Result) Resolve(name string) (host.View, bool) {
	v, ok := r.Views[name]
	if !ok {
		return nil, false
	}
	return v, true
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	logger      *log.Logger
	spacing     *float64
	viewMargins bool
	fit         dock.Fit
}

// WithLogger routes engine and grid logging to l.
func WithLogger(l *log.Logger) BuildOption {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStandardSpacing sets the standard spacing for scenes that do not
// declare their own.
func WithStandardSpacing(v float64) BuildOption {
	return func(c *buildConfig) { c.spacing = &v }
}

// WithViewMargins makes padding attributes use each view's own margin
// insets instead of the standard spacing.
func WithViewMargins(on bool) BuildOption {
	return func(c *buildConfig) { c.viewMargins = on }
}

// WithDefaultFit sets the fit of docks that do not name one.
func WithDefaultFit(f dock.Fit) BuildOption {
	return func(c *buildConfig) { c.fit = f }
}

// Build creates the views of s and applies its statements in order: docks,
// aligns, grids, then textual constraints. A failing statement is recorded
// in the report and the build continues.
func Build(s *Scene, opts ...BuildOption) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	cfg := buildConfig{logger: log.Default(), fit: dock.DefaultFit}
	for _, opt := range opts {
		opt(&cfg)
	}

	engOpts := []constraint.Option{
		constraint.WithLogger(cfg.logger),
		constraint.WithViewMargins(s.ViewMargins || cfg.viewMargins),
	}
	switch {
	case s.StandardSpacing != nil:
		engOpts = append(engOpts, constraint.WithStandardSpacing(*s.StandardSpacing))
	case cfg.spacing != nil:
		engOpts = append(engOpts, constraint.WithStandardSpacing(*cfg.spacing))
	}
	h := memory.New()
	res := &Result{
		Host:   h,
		Engine: constraint.New(h, engOpts...),
		Root:   memory.NewView(RootName, memory.WithSize(s.Width, s.Height)),
		Views:  map[string]*memory.View{},
		Report: Report{Scene: s.Name},
		fit:    cfg.fit,
	}
	res.Views[RootName] = res.Root
	if s.OnScreen {
		res.Root.Present()
	}

	for _, v := range s.Views {
		mv := memory.NewView(v.Name, viewOptions(v)...)
		parent := RootName
		if v.Parent != "" {
			parent = v.Parent
		}
		res.Views[parent].AddSubview(mv)
		res.Views[v.Name] = mv
	}

	for _, d := range s.Docks {
		cs, err := res.dock(d)
		res.Report.add(KindDock, fmt.Sprintf("%s %s", d.View, d.Recipe), cs, err)
	}
	for _, a := range s.Aligns {
		c, err := res.align(a)
		var cs constraint.Constraints
		if c != nil {
			cs = constraint.Constraints{c}
		}
		res.Report.add(KindAlign, fmt.Sprintf("%s %s with %v", a.View, a.Attribute, a.With), cs, err)
	}
	for _, g := range s.Grids {
		cs, err := res.grid(g, cfg.logger)
		res.Report.add(KindGrid, g.Container, cs, err)
	}
	for _, text := range s.Constraints {
		var cs constraint.Constraints
		rule, err := ParseRule(text)
		if err == nil {
			var c *constraint.Constraint
			if c, err = rule.Apply(res.Engine, res.Resolve); c != nil {
				cs = constraint.Constraints{c}
			}
		}
		res.Report.add(KindConstraint, text, cs, err)
	}

	res.Report.Ambiguous = res.ambiguous()
	observability.Layout().OnSceneBuilt(s.Name, len(res.Report.Outcomes), res.Report.Failed(), time.Since(start))
	cfg.logger.Debug("scene built",
		"scene", s.Name,
		"views", len(res.Views),
		"statements", len(res.Report.Outcomes),
		"failed", res.Report.Failed())
	return res, nil
}

func viewOptions(v View) []memory.Option {
	var opts []memory.Option
	if len(v.Frame) == 4 {
		opts = append(opts, memory.WithFrame(host.Rect{X: v.Frame[0], Y: v.Frame[1], Width: v.Frame[2], Height: v.Frame[3]}))
	}
	if len(v.Preferred) == 2 {
		opts = append(opts, memory.WithPreferredSize(host.Size{Width: v.Preferred[0], Height: v.Preferred[1]}))
	}
	if v.Margins != nil {
		opts = append(opts, memory.WithMargins(host.UniformInsets(*v.Margins)))
	}
	if v.SafeArea != nil {
		opts = append(opts, memory.WithSafeArea(host.UniformInsets(*v.SafeArea)))
	}
	if v.Text != "" {
		opts = append(opts, memory.WithText(v.Text))
	}
	return opts
}

type recipeFunc func(dock.Dock, ...dock.Option) (constraint.Constraints, error)

var recipes = map[string]recipeFunc{
	"all":             dock.Dock.All,
	"center":          dock.Dock.Center,
	"sides":           dock.Dock.Sides,
	"horizontal":      dock.Dock.Horizontal,
	"vertical":        dock.Dock.Vertical,
	"top":             dock.Dock.Top,
	"bottom":          dock.Dock.Bottom,
	"leading":         dock.Dock.Leading,
	"trailing":        dock.Dock.Trailing,
	"top_leading":     dock.Dock.TopLeading,
	"top_trailing":    dock.Dock.TopTrailing,
	"bottom_leading":  dock.Dock.BottomLeading,
	"bottom_trailing": dock.Dock.BottomTrailing,
}

func (r *Result) view(name string) (*memory.View, error) {
	v, ok := r.Views[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown view %q", name)
	}
	return v, nil
}

func (r *Result) dock(d Dock) (constraint.Constraints, error) {
	v, err := r.view(d.View)
	if err != nil {
		return nil, err
	}
	fit := r.fit
	if d.Fit != "" {
		if fit, err = dock.ParseFit(d.Fit); err != nil {
			return nil, err
		}
	}
	opts := []dock.Option{dock.WithFit(fit), dock.WithConstant(d.Constant)}
	switch len(d.Share) {
	case 0:
	case 1:
		opts = append(opts, dock.WithShare(d.Share[0]))
	case 2:
		opts = append(opts, dock.WithShareXY(d.Share[0], d.Share[1]))
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "share takes one or two values, got %d", len(d.Share))
	}

	dk := dock.New(r.Engine, v)
	switch d.Recipe {
	case "fit":
		return dk.Fit()
	case "horizontal_between", "vertical_between":
		if len(d.Between) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "%s needs two views in between", d.Recipe)
		}
		first, err := r.view(d.Between[0])
		if err != nil {
			return nil, err
		}
		second, err := r.view(d.Between[1])
		if err != nil {
			return nil, err
		}
		if d.Recipe == "horizontal_between" {
			return dk.HorizontalBetween(first, second, opts...)
		}
		return dk.VerticalBetween(first, second, opts...)
	}
	fn, ok := recipes[d.Recipe]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown dock recipe %q", d.Recipe)
	}
	return fn(dk, opts...)
}

func (r *Result) align(a Align) (*constraint.Constraint, error) {
	v, err := r.view(a.View)
	if err != nil {
		return nil, err
	}
	others := make([]host.Item, 0, len(a.With))
	for _, name := range a.With {
		o, err := r.view(name)
		if err != nil {
			return nil, err
		}
		others = append(others, o)
	}
	al := dock.NewAlign(r.Engine, v)
	if a.Attribute == "size" {
		return al.Size(others...)
	}
	if attr, ok := attribute.Parse(a.Attribute); ok {
		return al.Attr(attr, others...)
	}
	if p, ok := attribute.ParsePadding(a.Attribute); ok {
		return al.Pad(p, others...)
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "unknown attribute %q", a.Attribute)
}

func (r *Result) grid(g Grid, logger *log.Logger) (constraint.Constraints, error) {
	container, err := r.view(g.Container)
	if err != nil {
		return nil, err
	}
	packing := grid.DefaultPacking
	if g.Packing != "" {
		if packing, err = grid.LookupPacking(g.Packing); err != nil {
			return nil, err
		}
	}
	mode, err := grid.ParseMode(g.Mode)
	if err != nil {
		return nil, err
	}

	opts := []grid.Option{
		grid.WithPacking(packing),
		grid.WithCounts(grid.Counts{Columns: g.Columns, Rows: g.Rows}),
		grid.WithBorder(g.Border),
		grid.WithMode(mode),
		grid.WithLogger(logger),
	}
	if g.Gap != nil {
		opts = append(opts, grid.WithGap(*g.Gap))
	}
	gr := grid.New(r.Engine, container, opts...)
	r.Grids = append(r.Grids, gr)

	cells := make([]host.View, 0, g.Cells)
	for i := range g.Cells {
		name := CellName(g.Container, i)
		cell := memory.NewView(name)
		r.Views[name] = cell
		cells = append(cells, cell)
	}
	if _, err := gr.Add(cells...); err != nil {
		return nil, err
	}
	return gr.Guides().Constraints, nil
}

func (r *Result) ambiguous() []string {
	var out []string
	host.Walk(r.Root, func(v host.View) {
		if r.Engine.Constrained(v) && r.Engine.HasAmbiguousLayout(v) {
			out = append(out, v.Name())
		}
	})
	return out
}
