package grid

import (
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// cellPriority lets the cell size give way to the guides.
const cellPriority = 400

// Constrained is the result of Constrain.
type Constrained struct {
	ColumnGuides []host.Guide
	RowGuides    []host.Guide
	Constraints  constraint.Constraints
}

// Constrain expresses plan as guides and constraints on container. Each
// gap becomes a guide between the cells; fixed gaps are exactly the
// planned gap wide and free gaps are at least that wide and share one
// size per axis. The first cell is square and prefers the planned cell
// size; every other cell matches it.
//
// Existing constraints held by the subviews and the container's ad-hoc
// guides are removed first. On failure everything created is removed again.
func Constrain(eng *constraint.Engine, container host.View, plan Plan) (Constrained, error) {
	views := container.Subviews()
	for _, v := range views {
		eng.RemoveConstraints(v)
	}
	eng.RemoveGuides(container)

	var out Constrained
	if len(views) == 0 || plan.Capacity() == 0 {
		return out, nil
	}
	if len(views) > plan.Capacity() {
		return out, errors.New(errors.ErrCodeInsufficientGrid,
			"plan of %dx%d cells cannot hold %d views", plan.Columns, plan.Rows, len(views))
	}
	packing, err := ParsePacking(plan.Packing)
	if err != nil {
		return out, err
	}

	b := &builder{eng: eng, gap: plan.Gap}
	c := eng.At(container)

	out.ColumnGuides = b.guides(container, plan.Columns, packing.X,
		func(x constraint.Expression) constraint.Expression { return x.Width() },
		func(g host.Guide) { b.eq(eng.At(g).Leading(), c.Leading()) },
		func(g host.Guide) { b.eq(eng.At(g).Trailing(), c.Trailing()) },
	)
	out.RowGuides = b.guides(container, plan.Rows, packing.Y,
		func(x constraint.Expression) constraint.Expression { return x.Height() },
		func(g host.Guide) { b.eq(eng.At(g).Top(), c.Top()) },
		func(g host.Guide) { b.eq(eng.At(g).Bottom(), c.Bottom()) },
	)

	first := eng.At(views[0])
	for i, v := range views {
		cell := eng.At(v)
		if i == 0 {
			b.eq(cell.Width(), cell.Height())
			b.eq(cell.Priority(cellPriority).Width(), plan.Cell)
			b.eq(cell.Priority(cellPriority).Height(), plan.Cell)
		} else {
			b.eq(cell.Width(), first.Width())
			b.eq(cell.Height(), first.Height())
		}
		col, row := i%plan.Columns, i/plan.Columns
		b.eq(cell.Top(), eng.At(out.RowGuides[row]).Bottom())
		b.eq(cell.Bottom(), eng.At(out.RowGuides[row+1]).Top())
		b.eq(cell.Leading(), eng.At(out.ColumnGuides[col]).Trailing())
		b.eq(cell.Trailing(), eng.At(out.ColumnGuides[col+1]).Leading())
	}

	if b.err != nil {
		eng.Remove(b.made)
		eng.RemoveGuides(container)
		return Constrained{}, b.err
	}
	out.Constraints = b.made
	return out, nil
}

type builder struct {
	eng  *constraint.Engine
	gap  float64
	made constraint.Constraints
	err  error
}

func (b *builder) add(c *constraint.Constraint, err error) {
	if err != nil {
		b.err = err
		return
	}
	b.made = append(b.made, c)
}

func (b *builder) eq(x constraint.Expression, other any) {
	if b.err != nil {
		return
	}
	b.add(x.Eq(other))
}

func (b *builder) ge(x constraint.Expression, other any) {
	if b.err != nil {
		return
	}
	b.add(x.Ge(other))
}

// guides creates the n+1 gap guides of one axis.
func (b *builder) guides(container host.View, n int, pat Pattern,
	size func(constraint.Expression) constraint.Expression,
	pinFirst, pinLast func(host.Guide),
) []host.Guide {
	gs := make([]host.Guide, n+1)
	var firstFree host.Guide
	for i := range gs {
		g := b.eng.NewGuide(container)
		gs[i] = g
		at := b.eng.At(g)
		if pat.Free(i, n) {
			b.ge(size(at), b.gap)
			if firstFree == nil {
				firstFree = g
			} else {
				b.eq(size(at), size(b.eng.At(firstFree)))
			}
		} else {
			b.eq(size(at), b.gap)
		}
		if i == 0 {
			pinFirst(g)
		}
		if i == n {
			pinLast(g)
		}
	}
	return gs
}
