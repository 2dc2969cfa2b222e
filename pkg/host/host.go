// Package host defines the boundary between the layout engine and the UI
// toolkit that owns views and solves constraints.
//
// The engine never renders, hit-tests or solves. It talks to the toolkit
// through the small interfaces in this package:
//
//   - [View] and [Guide] are the constraint participants ([Item]).
//   - [Solver] turns a fully specified [NativeConstraint] into a [Handle].
//   - [Dispatcher] serialises every mutation onto the toolkit's single
//     execution context.
//
// Optional capabilities are discovered with type assertions:
// [TextBearer], [ResizeNotifier] and [AmbiguityChecker].
//
// See package memory for an in-process implementation used by tests, the
// CLI and the HTTP API.
package host

// Item is anything that can take part in a constraint: a view or a guide.
type Item interface {
	// ID is a stable identity, unique within a host.
	ID() string
	// Name is a display name used when rendering constraints. May be empty.
	Name() string
	// Superview is the containing view, or nil for a root or detached item.
	// For a guide this is its owning view.
	Superview() View
	// IsOnScreen reports whether the item is part of a presented hierarchy.
	IsOnScreen() bool
}

// View is a toolkit view.
type View interface {
	Item

	Subviews() []View
	AddSubview(v View)

	// TranslatesAutoFrame reports whether the toolkit still derives
	// constraints from the view's frame. The engine clears it on first use.
	TranslatesAutoFrame() bool
	SetTranslatesAutoFrame(on bool)

	// PreferredSize returns the size that best fits the content.
	PreferredSize(fitting Size) Size
	// MarginInsets returns the view's directional layout margins.
	MarginInsets() Insets

	Frame() Rect
	SetFrame(r Rect)
	Bounds() Rect

	SafeAreaGuide() Guide
	MarginsGuide() Guide
	AddGuide(name string) Guide
	RemoveGuide(g Guide)
	// Guides returns the ad-hoc guides added with AddGuide.
	Guides() []Guide
}

// Guide is a non-rendering rectangle owned by a view.
type Guide interface {
	Item
	// Owner returns the owning view, or nil once the guide was removed.
	Owner() View
}

// Relation is the native relational operator.
type Relation int

// Native relation values.
const (
	LessOrEqual    Relation = -1
	Equal          Relation = 0
	GreaterOrEqual Relation = 1
)

// String returns the operator symbol.
func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	default:
		return "=="
	}
}

// NativeConstraint is the fully specified linear relation handed to the
// solver: Item.Attribute Relation Other.OtherAttribute * Multiplier + Constant.
// Attributes are native identifiers (0 = no attribute).
type NativeConstraint struct {
	Item           Item
	Attribute      int
	Relation       Relation
	Other          Item
	OtherAttribute int
	Multiplier     float64
	Constant       float64
	Priority       int
}

// Handle is a realised native constraint.
// Deactivating an inactive handle is a no-op.
type Handle interface {
	SetActive(active bool)
	IsActive() bool
	SetConstant(c float64)
	SetPriority(p int)
	Priority() int
}

// Solver creates native constraints.
type Solver interface {
	CreateConstraint(c NativeConstraint) Handle
}

// Dispatcher runs fn on the toolkit's single execution context and returns
// once fn has completed. Calls to Run must not be nested.
type Dispatcher interface {
	Run(fn func())
}

// Host bundles the toolkit collaborators.
type Host interface {
	Solver() Solver
	Dispatcher() Dispatcher
}

// TextBearer is implemented by views that display text (labels, buttons).
// Such views get horizontal margins added when fitted to their content.
type TextBearer interface {
	Text() string
}

// ResizeNotifier is implemented by views that report frame size changes.
// The returned function cancels the subscription.
type ResizeNotifier interface {
	OnResize(fn func(Rect)) (cancel func())
}

// AmbiguityChecker is implemented by hosts that can tell whether the
// constraints on an item leave its frame underdetermined.
type AmbiguityChecker interface {
	HasAmbiguousLayout(it Item) bool
}
