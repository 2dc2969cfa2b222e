// Package grid lays out the subviews of a container as a grid of equal
// square cells.
//
// # Overview
//
// A layout is computed in two steps. [Compute] turns a [Spec] (cell count,
// container size, packing, optional fixed counts) into a [Plan]: the number
// of columns and rows, the cell size and the width of every gap. The plan is
// pure data and can be cached, serialised or inspected. It is then applied
// either directly, by assigning frames with [Place], or through the
// constraint engine with [Constrain], which expresses the same grid as
// guides and constraints.
//
// [Grid] ties both together: it owns a container, re-plans whenever views
// are added or the container is resized, and applies the plan in the
// configured [Mode].
//
// # Dimension search
//
// Without fixed counts, [Dimensions] picks columns and rows from the
// container's aspect ratio r = width/height. The ideal counts sqrt(n*r) and
// sqrt(n/r) are rounded down and up in the order floor/floor, floor/ceil,
// ceil/floor, ceil/ceil; the first combination with enough cells and the
// least unused cells wins. Five cells in a square container give 2 columns
// and 3 rows.
//
// # Packing
//
// Each axis has a [Pattern] of three slots: the leading gap, the inner gaps
// and the trailing gap. A slot is either fixed ('I'), staying at the
// standard gap, or free ('_'), sharing the leftover space equally with the
// other free slots of that axis. A [Packing] combines the horizontal and
// vertical patterns and is written "X Y", for example "_I_ _I_" to centre
// the cells.
//
//	plan, err := grid.Compute(grid.Spec{
//		Count:   7,
//		Width:   320,
//		Height:  480,
//		Gap:     8,
//		Packing: grid.Center,
//	})
package grid
