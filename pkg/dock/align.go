package dock

import (
	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// Align relates the same attribute of one item to one or more others:
//
//	dock.NewAlign(eng, a).CenterX(b, c) // a.center_x == b.center_x, a.center_x == c.center_x
//
// Each method returns the last constraint it created.
type Align struct {
	eng  *constraint.Engine
	item host.Item
}

// NewAlign returns the alignment recipes for it.
func NewAlign(eng *constraint.Engine, it host.Item) Align {
	return Align{eng: eng, item: it}
}

// Attr aligns attribute a of the item with a of every other item.
func (al Align) Attr(a attribute.Attribute, others ...host.Item) (*constraint.Constraint, error) {
	return al.align(others, func(x constraint.Expression) constraint.Expression { return x.Attr(a) })
}

// Pad aligns padding p of the item with p of every other item.
func (al Align) Pad(p attribute.Padding, others ...host.Item) (*constraint.Constraint, error) {
	return al.align(others, func(x constraint.Expression) constraint.Expression { return x.Pad(p) })
}

func (al Align) align(others []host.Item, picks ...func(constraint.Expression) constraint.Expression) (*constraint.Constraint, error) {
	if len(others) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "align needs at least one other item")
	}
	r := &recipe{eng: al.eng}
	for _, pick := range picks {
		for _, o := range others {
			r.eq(pick(al.eng.At(al.item)), pick(al.eng.At(o)))
		}
	}
	made, err := r.done()
	if err != nil {
		return nil, err
	}
	return made[len(made)-1], nil
}

// Size aligns width and height, returning the last height constraint.
func (al Align) Size(others ...host.Item) (*constraint.Constraint, error) {
	return al.align(others,
		func(x constraint.Expression) constraint.Expression { return x.Width() },
		func(x constraint.Expression) constraint.Expression { return x.Height() },
	)
}

func (al Align) Left(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Left, others...)
}
func (al Align) Right(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Right, others...)
}
func (al Align) Top(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Top, others...)
}
func (al Align) Bottom(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Bottom, others...)
}
func (al Align) Leading(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Leading, others...)
}
func (al Align) Trailing(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Trailing, others...)
}
func (al Align) Width(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Width, others...)
}
func (al Align) Height(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.Height, others...)
}
func (al Align) CenterX(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.CenterX, others...)
}
func (al Align) CenterY(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.CenterY, others...)
}
func (al Align) LastBaseline(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.LastBaseline, others...)
}
func (al Align) FirstBaseline(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.FirstBaseline, others...)
}
func (al Align) LeftMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.LeftMargin, others...)
}
func (al Align) RightMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.RightMargin, others...)
}
func (al Align) TopMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.TopMargin, others...)
}
func (al Align) BottomMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.BottomMargin, others...)
}
func (al Align) LeadingMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.LeadingMargin, others...)
}
func (al Align) TrailingMargin(others ...host.Item) (*constraint.Constraint, error) {
	return al.Attr(attribute.TrailingMargin, others...)
}
func (al Align) LeftPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.LeftPadding, others...)
}
func (al Align) RightPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.RightPadding, others...)
}
func (al Align) TopPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.TopPadding, others...)
}
func (al Align) BottomPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.BottomPadding, others...)
}
func (al Align) LeadingPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.LeadingPadding, others...)
}
func (al Align) TrailingPadding(others ...host.Item) (*constraint.Constraint, error) {
	return al.Pad(attribute.TrailingPadding, others...)
}
