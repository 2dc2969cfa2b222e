package attribute

import "strings"

// Padding is a derived edge: a base edge offset by the margin inset on the
// corresponding side.
type Padding int

const (
	LeftPadding Padding = iota
	RightPadding
	TopPadding
	BottomPadding
	LeadingPadding
	TrailingPadding
)

// Side selects which margin inset a padding uses.
type Side int

const (
	SideTop Side = iota
	SideLeading
	SideTrailing
	SideBottom
)

var paddings = [...]struct {
	name string
	base Attribute
	side Side
	sign float64
}{
	LeftPadding:     {"left_padding", Left, SideLeading, -1},
	RightPadding:    {"right_padding", Right, SideTrailing, +1},
	TopPadding:      {"top_padding", Top, SideTop, -1},
	BottomPadding:   {"bottom_padding", Bottom, SideBottom, +1},
	LeadingPadding:  {"leading_padding", Leading, SideLeading, -1},
	TrailingPadding: {"trailing_padding", Trailing, SideTrailing, +1},
}

// Base returns the attribute the padding resolves to.
func (p Padding) Base() Attribute { return paddings[p].base }

// Side returns the inset side the padding is measured against.
func (p Padding) Side() Side { return paddings[p].side }

// Sign is -1 for paddings that move the constant against the edge
// (left, top, leading) and +1 otherwise.
func (p Padding) Sign() float64 { return paddings[p].sign }

// String returns the snake_case padding name.
func (p Padding) String() string { return paddings[p].name }

// ParsePadding resolves a padding name such as "trailing_padding".
func ParsePadding(name string) (Padding, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, p := range paddings {
		if p.name == name {
			return Padding(i), true
		}
	}
	return 0, false
}
