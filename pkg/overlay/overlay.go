// Package overlay builds a diagnostic picture of the active constraints in
// a view hierarchy.
//
// [Build] walks a hierarchy, gives every constrained view a colour triple
// from [Palette] and turns each active constraint into one or two markers:
// thin bars drawn on the attribute they constrain, in root coordinates.
// Constraints between two items also get a connector between their markers.
// The result is plain data; [RenderText], [ToDOT] and [RenderSVG] present it.
package overlay

import (
	"slices"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/host"
)

// Marker geometry.
const (
	Thickness  = 5
	Share      = 0.75
	MarkerSize = 20
)

// Marker is a bar drawn on one attribute of one item.
type Marker struct {
	Item       string              `json:"item"`
	ItemID     string              `json:"item_id"`
	Attribute  attribute.Attribute `json:"-"`
	Attr       string              `json:"attribute"`
	Class      Class               `json:"-"`
	Color      string              `json:"color"`
	Rect       host.Rect           `json:"rect"`
	Constraint string              `json:"constraint"`
	// Other marks the marker on the right-hand side of the constraint.
	Other      bool                `json:"other,omitempty"`
}

// Connector joins the two markers of a constraint.
type Connector struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Color string  `json:"color"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

// Edge is a constraint between two items, kept for graph rendering.
type Edge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Color      string `json:"color"`
	Constraint string `json:"constraint"`
}

// Overlay is the diagnostic picture of a hierarchy.
type Overlay struct {
	Root       string              `json:"root"`
	Bounds     host.Rect           `json:"bounds"`
	Views      []string            `json:"views"`
	Colors     map[string]Colors   `json:"colors"`
	Markers    []Marker            `json:"markers"`
	Connectors []Connector         `json:"connectors"`
	Edges      []Edge              `json:"edges"`
	Constants  map[string][]string `json:"constants,omitempty"`
}

// Option configures Build.
type Option func(*options)

type options struct {
	seed  uint64
	start host.View
	attrs []attribute.Attribute
}

// WithSeed fixes the palette shuffle.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithStart limits the overlay to start and its descendants. Marker
// coordinates stay in root space.
func WithStart(v host.View) Option { return func(o *options) { o.start = v } }

// WithAttributes shows only constraints whose target attribute is listed.
func WithAttributes(attrs ...attribute.Attribute) Option {
	return func(o *options) { o.attrs = attrs }
}

// Build collects the active constraints held by root and its descendants.
func Build(eng *constraint.Engine, root host.View, opts ...Option) Overlay {
	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	start := o.start
	if start == nil {
		start = root
	}

	ov := Overlay{
		Root:      name(root),
		Bounds:    root.Bounds(),
		Colors:    map[string]Colors{},
		Constants: map[string][]string{},
	}
	deal := newDealer(o.seed)

	for _, v := range collect(eng, start) {
		colors := deal.next()
		ov.Views = append(ov.Views, name(v))
		ov.Colors[name(v)] = colors

		for _, c := range eng.Constraints(v, constraint.Query{}) {
			if len(o.attrs) > 0 && !slices.Contains(o.attrs, c.Attribute()) {
				continue
			}
			ov.add(root, c, colors)
		}
	}
	return ov
}

// collect lists the views under start that hold constraints, depth first.
func collect(eng *constraint.Engine, start host.View) []host.View {
	var out []host.View
	host.Walk(start, func(v host.View) {
		if eng.Constrained(v) {
			out = append(out, v)
		}
	})
	return out
}

func (ov *Overlay) add(root host.View, c *constraint.Constraint, colors Colors) {
	text := c.String()
	color := colors.For(ClassOf(c.Attribute()))

	first, ok := place(root, c.Item(), c.Attribute())
	if !ok {
		return
	}
	first.Color, first.Constraint = color, text
	ov.Markers = append(ov.Markers, first)
	from := len(ov.Markers) - 1

	if c.Other() == nil {
		ov.Constants[first.Item] = append(ov.Constants[first.Item], text)
		return
	}
	ov.Edges = append(ov.Edges, Edge{From: first.Item, To: name(c.Other()), Color: color, Constraint: text})

	second, ok := place(root, c.Other(), c.OtherAttribute())
	if !ok {
		return
	}
	second.Color, second.Constraint, second.Other = color, text, true
	ov.Markers = append(ov.Markers, second)
	to := len(ov.Markers) - 1

	ov.Connectors = append(ov.Connectors, Connector{
		From:  from,
		To:    to,
		Color: color,
		X1:    first.Rect.CenterX(),
		Y1:    first.Rect.CenterY(),
		X2:    second.Rect.CenterX(),
		Y2:    second.Rect.CenterY(),
	})
}

// framer is implemented by guides that know their rectangle.
type framer interface {
	Frame() host.Rect
}

// frameIn returns the frame of it in root coordinates.
func frameIn(root host.View, it host.Item) (host.Rect, bool) {
	switch v := it.(type) {
	case host.View:
		x, y := host.Origin(v, root)
		f := v.Frame()
		return host.Rect{X: x, Y: y, Width: f.Width, Height: f.Height}, true
	case host.Guide:
		owner := v.Owner()
		fr, ok := v.(framer)
		if owner == nil || !ok {
			return host.Rect{}, false
		}
		x, y := host.Origin(owner, root)
		return fr.Frame().Offset(x, y), true
	}
	return host.Rect{}, false
}

// place computes the marker for attribute a of it. Bars on horizontal
// positions are vertical and vice versa; size markers span the full size.
func place(root host.View, it host.Item, a attribute.Attribute) (Marker, bool) {
	f, ok := frameIn(root, it)
	if !ok || a == attribute.None {
		return Marker{}, false
	}
	var m host.Insets
	if v, ok := it.(host.View); ok {
		m = v.MarginInsets()
	}

	var cx, cy, w, h float64
	vertical := func(x float64) {
		cx, cy, w, h = x, f.CenterY(), Thickness, f.Height*Share
	}
	horizontal := func(y float64) {
		cx, cy, w, h = f.CenterX(), y, f.Width*Share, Thickness
	}

	switch a {
	case attribute.Left, attribute.Leading:
		vertical(f.X)
	case attribute.Right, attribute.Trailing:
		vertical(f.MaxX())
	case attribute.CenterX:
		vertical(f.CenterX())
	case attribute.LeftMargin, attribute.LeadingMargin:
		vertical(f.X + m.Leading)
	case attribute.RightMargin, attribute.TrailingMargin:
		vertical(f.MaxX() - m.Trailing)
	case attribute.Top:
		horizontal(f.Y)
	case attribute.Bottom, attribute.LastBaseline, attribute.FirstBaseline:
		horizontal(f.MaxY())
	case attribute.CenterY:
		horizontal(f.CenterY())
	case attribute.TopMargin:
		horizontal(f.Y + m.Top)
	case attribute.BottomMargin:
		horizontal(f.MaxY() - m.Bottom)
	case attribute.Width:
		cx, cy, w, h = f.CenterX(), f.CenterY(), f.Width, Thickness
	case attribute.Height:
		cx, cy, w, h = f.CenterX(), f.CenterY(), Thickness, f.Height
	}
	// Vertical bars on zero-height items stay visible.
	if h == 0 && w == Thickness {
		h = MarkerSize
	}

	return Marker{
		Item:      name(it),
		ItemID:    it.ID(),
		Attribute: a,
		Attr:      a.String(),
		Class:     ClassOf(a),
		Rect:      host.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h},
	}, true
}

func name(it host.Item) string {
	if n := it.Name(); n != "" {
		return n
	}
	if _, ok := it.(host.Guide); ok {
		return "LayoutGuide"
	}
	id := it.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "View(" + id + ")"
}
