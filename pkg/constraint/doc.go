// Package constraint turns algebraic comparisons between view attributes
// into validated native layout constraints.
//
// # Overview
//
// An [Engine] wraps a [host.Host]. Every constraint starts from an
// [Expression] obtained with [Engine.At]:
//
//	eng := constraint.New(h)
//	c, err := eng.At(label).Leading().Eq(eng.At(icon).TrailingPadding().Plus(4))
//
// reads as "label.leading == icon.trailing + inset + 4". The comparison is
// the finalisation point: it validates the attribute pair, clears the
// view's frame translation on first use, asks the host solver for a native
// constraint, activates it and records it in the engine's registry.
//
// # Expressions are values
//
// Every method on [Expression] returns a new value; nothing is shared
// between branches:
//
//	base := eng.At(v)
//	top := base.Top()       // base is unchanged
//	bottom := base.Bottom() // independent of top
//
// Errors found while building an expression (division by zero, an invalid
// priority, an attribute a guide cannot expose) are carried by the value,
// reported by [Expression.Err], and returned by the comparison before
// anything is registered.
//
// # Validation
//
// A comparison is rejected, in this order, when:
//
//  1. the target has no attribute (MISSING_ATTRIBUTE)
//  2. a position is related to a size (INCOMPATIBLE_ATTRIBUTE_KIND)
//  3. a horizontal position is related to a vertical one (INCOMPATIBLE_AXIS)
//  4. left/right is related to leading/trailing (INCOMPATIBLE_EDGE_CLASS)
//  5. a position has no other item, no other attribute, or a zero
//     multiplier (MISSING_POSITION_REFERENCE)
//
// Each error carries the rendered constraint text.
//
// # Registry
//
// The engine keeps a side table from item to its constraints in insertion
// order. [Engine.Constraints] queries it, [Engine.Remove] and
// [Engine.RemoveConstraints] deactivate and detach. Removal is idempotent.
//
// # Execution context
//
// Every mutation runs inside the host dispatcher. Engine methods must
// therefore not be called from within [host.Dispatcher.Run].
package constraint
