package host

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

func (r Rect) MaxX() float64    { return r.X + r.Width }
func (r Rect) MaxY() float64    { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }
func (r Rect) Size() Size       { return Size{Width: r.Width, Height: r.Height} }

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset returns r shrunk by in on each side.
// Leading and trailing are treated as left and right.
func (r Rect) Inset(in Insets) Rect {
	r.X += in.Leading
	r.Y += in.Top
	r.Width -= in.Leading + in.Trailing
	r.Height -= in.Top + in.Bottom
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Insets are directional edge insets.
type Insets struct {
	Top      float64 `json:"top" bson:"top"`
	Leading  float64 `json:"leading" bson:"leading"`
	Trailing float64 `json:"trailing" bson:"trailing"`
	Bottom   float64 `json:"bottom" bson:"bottom"`
}

// UniformInsets returns insets of v on every side.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Leading: v, Trailing: v, Bottom: v}
}

// Root returns the topmost ancestor of it, or nil if it has no superview.
func Root(it Item) View {
	var root View
	for v := it.Superview(); v != nil; v = v.Superview() {
		root = v
	}
	return root
}

// Walk calls fn for v and all its descendants in depth-first order.
func Walk(v View, fn func(View)) {
	fn(v)
	for _, sv := range v.Subviews() {
		Walk(sv, fn)
	}
}

// Origin returns the origin of v's frame in the coordinate space of root,
// by summing frame origins up the superview chain.
func Origin(v View, root View) (x, y float64) {
	for cur := v; cur != nil && cur != root; cur = cur.Superview() {
		f := cur.Frame()
		x += f.X
		y += f.Y
	}
	return x, y
}
