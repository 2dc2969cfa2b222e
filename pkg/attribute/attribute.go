// Package attribute is the catalog of geometric attributes a constraint can
// relate.
//
// # Overview
//
// An [Attribute] names one property of an item's alignment rectangle: an
// edge, a centre, a baseline, a size, or an edge of the item's margin
// region. Each attribute has a fixed [Descriptor]:
//
//   - [Kind]: Position or Size. Positions need a frame of reference; sizes
//     may be literal numbers.
//   - [Axis]: Horizontal or Vertical for positions. Sizes carry no axis, so
//     width may be related to height.
//   - [EdgeClass]: Absolute (left/right) or Relative (leading/trailing,
//     writing-direction aware). Mixing the two is rejected.
//
// The catalog is immutable and total: describing an unknown value yields the
// [None] descriptor.
//
// # Native identifiers
//
// The numeric values mirror the native solver's attribute constants
// (left = 1 ... trailing_margin = 18, none = 0). They are only meant for the
// toolkit boundary; use [Attribute.Native] and [FromNative] there and the
// named constants everywhere else.
//
// # Padding
//
// Padding variants are not attributes. A [Padding] resolves to its base edge
// with the constant shifted by a margin inset: leading_padding is
// leading - inset, trailing_padding is trailing + inset.
package attribute

import "strings"

// Attribute identifies a geometric property of an item's layout rectangle.
type Attribute int

// Attributes in native order.
const (
	None Attribute = iota
	Left
	Right
	Top
	Bottom
	Leading
	Trailing
	Width
	Height
	CenterX
	CenterY
	LastBaseline
	FirstBaseline
	LeftMargin
	RightMargin
	TopMargin
	BottomMargin
	LeadingMargin
	TrailingMargin
)

// maxGuideAttribute is the last attribute a layout guide can expose.
// Guides have neither baselines nor margins of their own.
const maxGuideAttribute = CenterY

// Kind separates positions from sizes.
type Kind int

const (
	// AnyKind is the wildcard kind of [None]; it is compatible with both.
	AnyKind Kind = iota
	Position
	Size
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Position:
		return "position"
	case Size:
		return "size"
	default:
		return "any"
	}
}

// Axis is the layout axis of a position attribute.
type Axis int

const (
	NoAxis Axis = iota
	Horizontal
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

// EdgeClass distinguishes physical edges from writing-direction aware ones.
type EdgeClass int

const (
	NoEdge EdgeClass = iota
	Absolute
	Relative
)

// String returns the edge class name.
func (e EdgeClass) String() string {
	switch e {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return "none"
	}
}

// Descriptor is the fixed metadata of an attribute.
type Descriptor struct {
	Attribute Attribute
	Name      string
	Kind      Kind
	Axis      Axis
	Edge      EdgeClass
}

var catalog = [...]Descriptor{
	None:           {None, "no_attribute", AnyKind, NoAxis, NoEdge},
	Left:           {Left, "left", Position, Horizontal, Absolute},
	Right:          {Right, "right", Position, Horizontal, Absolute},
	Top:            {Top, "top", Position, Vertical, NoEdge},
	Bottom:         {Bottom, "bottom", Position, Vertical, NoEdge},
	Leading:        {Leading, "leading", Position, Horizontal, Relative},
	Trailing:       {Trailing, "trailing", Position, Horizontal, Relative},
	Width:          {Width, "width", Size, NoAxis, NoEdge},
	Height:         {Height, "height", Size, NoAxis, NoEdge},
	CenterX:        {CenterX, "center_x", Position, Horizontal, NoEdge},
	CenterY:        {CenterY, "center_y", Position, Vertical, NoEdge},
	LastBaseline:   {LastBaseline, "last_baseline", Position, Vertical, NoEdge},
	FirstBaseline:  {FirstBaseline, "first_baseline", Position, Vertical, NoEdge},
	LeftMargin:     {LeftMargin, "left_margin", Position, Horizontal, Absolute},
	RightMargin:    {RightMargin, "right_margin", Position, Horizontal, Absolute},
	TopMargin:      {TopMargin, "top_margin", Position, Vertical, NoEdge},
	BottomMargin:   {BottomMargin, "bottom_margin", Position, Vertical, NoEdge},
	LeadingMargin:  {LeadingMargin, "leading_margin", Position, Horizontal, Relative},
	TrailingMargin: {TrailingMargin, "trailing_margin", Position, Horizontal, Relative},
}

var byName = func() map[string]Attribute {
	m := make(map[string]Attribute, len(catalog))
	for _, d := range catalog {
		m[d.Name] = d.Attribute
	}
	return m
}()

// Describe returns the descriptor of a. Unknown values describe as [None].
func Describe(a Attribute) Descriptor {
	if a < None || int(a) >= len(catalog) {
		return catalog[None]
	}
	return catalog[a]
}

// All returns the real attributes (excluding [None]) in native order.
func All() []Attribute {
	out := make([]Attribute, 0, len(catalog)-1)
	for _, d := range catalog[1:] {
		out = append(out, d.Attribute)
	}
	return out
}

// Parse resolves a snake_case attribute name such as "center_x".
// Matching is case-insensitive; "none" is accepted for [None].
func Parse(name string) (Attribute, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" {
		return None, true
	}
	a, ok := byName[name]
	return a, ok
}

// FromNative converts a native solver constant back to an Attribute.
func FromNative(id int) (Attribute, bool) {
	if id < 0 || id >= len(catalog) {
		return None, false
	}
	return Attribute(id), true
}

// String returns the snake_case attribute name.
func (a Attribute) String() string { return Describe(a).Name }

// Native returns the native solver constant for a.
func (a Attribute) Native() int { return int(Describe(a).Attribute) }

// Kind returns the attribute kind.
func (a Attribute) Kind() Kind { return Describe(a).Kind }

// Axis returns the attribute axis.
func (a Attribute) Axis() Axis { return Describe(a).Axis }

// Edge returns the attribute edge class.
func (a Attribute) Edge() EdgeClass { return Describe(a).Edge }

// IsMargin reports whether a is an edge of the margin region.
func (a Attribute) IsMargin() bool { return a >= LeftMargin && a <= TrailingMargin }

// GuideSupported reports whether a layout guide can expose a.
func (a Attribute) GuideSupported() bool { return a >= None && a <= maxGuideAttribute }
