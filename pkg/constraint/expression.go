package constraint

import (
	"math"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/observability"
)

// Expression is one side of a constraint under construction:
// item.attribute * multiplier + constant, with the priority the finished
// constraint will get. The zero value is unusable; start from [Engine.At].
type Expression struct {
	eng      *Engine
	item     host.Item
	attr     attribute.Attribute
	mult     float64
	constant float64
	priority int
	err      error
}

func (x Expression) Item() host.Item                { return x.item }
func (x Expression) Attribute() attribute.Attribute { return x.attr }
func (x Expression) Multiplier() float64            { return x.mult }
func (x Expression) Constant() float64              { return x.constant }
func (x Expression) PriorityValue() int             { return x.priority }

// Err returns the first error recorded while building x.
func (x Expression) Err() error { return x.err }

// Attr returns a copy of x targeting a.
func (x Expression) Attr(a attribute.Attribute) Expression {
	a = attribute.Describe(a).Attribute
	if x.err == nil {
		if g, ok := x.item.(host.Guide); ok {
			if !a.GuideSupported() {
				x.err = errors.New(errors.ErrCodeGuideAttribute,
					"guide %s has no %s attribute", itemName(g), a)
			} else if g.Owner() == nil {
				x.err = errors.New(errors.ErrCodeInvalidInput,
					"guide %s is no longer attached to a view", itemName(g))
			}
		}
	}
	x.attr = a
	return x
}

// Pad returns a copy of x targeting the base edge of p, with the constant
// shifted by the padding inset.
func (x Expression) Pad(p attribute.Padding) Expression {
	x = x.Attr(p.Base())
	if x.eng != nil {
		x.constant += p.Sign() * x.eng.Inset(x.item, p.Side())
	}
	return x
}

func (x Expression) NoAttribute() Expression    { return x.Attr(attribute.None) }
func (x Expression) Left() Expression           { return x.Attr(attribute.Left) }
func (x Expression) Right() Expression          { return x.Attr(attribute.Right) }
func (x Expression) Top() Expression            { return x.Attr(attribute.Top) }
func (x Expression) Bottom() Expression         { return x.Attr(attribute.Bottom) }
func (x Expression) Leading() Expression        { return x.Attr(attribute.Leading) }
func (x Expression) Trailing() Expression       { return x.Attr(attribute.Trailing) }
func (x Expression) Width() Expression          { return x.Attr(attribute.Width) }
func (x Expression) Height() Expression         { return x.Attr(attribute.Height) }
func (x Expression) CenterX() Expression        { return x.Attr(attribute.CenterX) }
func (x Expression) CenterY() Expression        { return x.Attr(attribute.CenterY) }
func (x Expression) LastBaseline() Expression   { return x.Attr(attribute.LastBaseline) }
func (x Expression) FirstBaseline() Expression  { return x.Attr(attribute.FirstBaseline) }
func (x Expression) LeftMargin() Expression     { return x.Attr(attribute.LeftMargin) }
func (x Expression) RightMargin() Expression    { return x.Attr(attribute.RightMargin) }
func (x Expression) TopMargin() Expression      { return x.Attr(attribute.TopMargin) }
func (x Expression) BottomMargin() Expression   { return x.Attr(attribute.BottomMargin) }
func (x Expression) LeadingMargin() Expression  { return x.Attr(attribute.LeadingMargin) }
func (x Expression) TrailingMargin() Expression { return x.Attr(attribute.TrailingMargin) }

func (x Expression) LeftPadding() Expression     { return x.Pad(attribute.LeftPadding) }
func (x Expression) RightPadding() Expression    { return x.Pad(attribute.RightPadding) }
func (x Expression) TopPadding() Expression      { return x.Pad(attribute.TopPadding) }
func (x Expression) BottomPadding() Expression   { return x.Pad(attribute.BottomPadding) }
func (x Expression) LeadingPadding() Expression  { return x.Pad(attribute.LeadingPadding) }
func (x Expression) TrailingPadding() Expression { return x.Pad(attribute.TrailingPadding) }

// Times scales the multiplier by k.
func (x Expression) Times(k float64) Expression {
	x.mult *= k
	return x
}

// DividedBy scales the multiplier by 1/k. A zero k records DIVIDE_BY_ZERO.
func (x Expression) DividedBy(k float64) Expression {
	if k == 0 {
		if x.err == nil {
			x.err = errors.New(errors.ErrCodeDivideByZero, "cannot divide %s by zero", x.describe())
		}
		return x
	}
	x.mult *= 1 / k
	return x
}

// Plus adds k to the constant.
func (x Expression) Plus(k float64) Expression {
	x.constant += k
	return x
}

// Minus subtracts k from the constant.
func (x Expression) Minus(k float64) Expression {
	x.constant -= k
	return x
}

// Priority sets the priority the finished constraint will be created with.
// Values outside 0..1000 or with a fractional part record
// INVALID_PRIORITY_VALUE.
func (x Expression) Priority(p float64) Expression {
	v, err := errors.ValidatePriority(p)
	if err != nil {
		if x.err == nil {
			x.err = err
		}
		return x
	}
	x.priority = v
	return x
}

// SafeArea returns a fresh expression on the safe area guide of x's view.
func (x Expression) SafeArea() Expression {
	return x.derivedGuide("safe area", host.View.SafeAreaGuide)
}

// Margins returns a fresh expression on the margins guide of x's view.
func (x Expression) Margins() Expression {
	return x.derivedGuide("margins", host.View.MarginsGuide)
}

func (x Expression) derivedGuide(what string, get func(host.View) host.Guide) Expression {
	if x.err != nil {
		return x
	}
	v, ok := x.item.(host.View)
	if !ok {
		x.err = errors.New(errors.ErrCodeInvalidInput, "%s guide requires a view, got %s", what, itemName(x.item))
		return x
	}
	return x.eng.At(get(v))
}

// Eq finalises x == other.
func (x Expression) Eq(other any) (*Constraint, error) { return x.relate(host.Equal, other) }

// Le finalises x <= other.
func (x Expression) Le(other any) (*Constraint, error) { return x.relate(host.LessOrEqual, other) }

// Ge finalises x >= other.
func (x Expression) Ge(other any) (*Constraint, error) { return x.relate(host.GreaterOrEqual, other) }

// relate builds, validates and registers a constraint. Validation always
// precedes any host call.
func (x Expression) relate(rel host.Relation, other any) (*Constraint, error) {
	if x.err != nil {
		return nil, x.err
	}
	if x.eng == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expression is not bound to an engine")
	}

	c := &Constraint{
		eng:      x.eng,
		item:     x.item,
		attr:     x.attr,
		rel:      rel,
		mult:     x.mult,
		constant: x.constant,
		priority: x.priority,
	}

	switch o := other.(type) {
	case Expression:
		if o.err != nil {
			return nil, o.err
		}
		if o.eng != nil && o.eng != x.eng {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cannot relate expressions from different engines")
		}
		c.other = o.item
		c.otherAttr = o.attr
		c.mult = o.mult
		c.constant = o.constant
	case *Expression:
		if o == nil {
			return nil, errors.New(errors.ErrCodeUnsupportedOperand,
				"cannot use a nil expression in a constraint comparison").WithConstraint(c.String())
		}
		return x.relate(rel, *o)
	default:
		v, ok := toFloat(other)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupportedOperand,
				"cannot use value of type %T in a constraint comparison", other).WithConstraint(c.String())
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"constant must be finite, got %v", v).WithConstraint(c.String())
		}
		c.constant = v
	}

	if err := validate(c); err != nil {
		x.eng.logger.Debug("constraint rejected", "constraint", c.String(), "code", errors.GetCode(err))
		observability.Layout().OnConstraintRejected(string(errors.GetCode(err)))
		return nil, err
	}
	x.eng.activate(c)
	return c, nil
}

// validate applies the compatibility rules in order.
func validate(c *Constraint) error {
	a := attribute.Describe(c.attr)
	b := attribute.Describe(c.otherAttr)

	if a.Attribute == attribute.None {
		return errors.New(errors.ErrCodeMissingAttribute,
			"constraint target needs an attribute").WithConstraint(c.String())
	}
	if a.Kind != attribute.AnyKind && b.Kind != attribute.AnyKind && a.Kind != b.Kind {
		return errors.New(errors.ErrCodeIncompatibleKind,
			"constraint cannot relate location and size attributes").WithConstraint(c.String())
	}
	if a.Kind == attribute.Position && b.Kind == attribute.Position && a.Axis != b.Axis {
		return errors.New(errors.ErrCodeIncompatibleAxis,
			"constraint cannot relate horizontal and vertical location attributes").WithConstraint(c.String())
	}
	if a.Edge != attribute.NoEdge && b.Edge != attribute.NoEdge && a.Edge != b.Edge {
		return errors.New(errors.ErrCodeIncompatibleEdge,
			"constraint cannot relate absolute and relative edge attributes").WithConstraint(c.String())
	}
	if a.Kind == attribute.Position && (c.mult == 0 || c.other == nil || b.Attribute == attribute.None) {
		return errors.New(errors.ErrCodeMissingPosition,
			"location constraints cannot relate to a constant only").WithConstraint(c.String())
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
