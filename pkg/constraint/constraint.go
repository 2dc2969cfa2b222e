package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// Relation is the relational operator of a constraint.
type Relation = host.Relation

const (
	LessOrEqual    = host.LessOrEqual
	Equal          = host.Equal
	GreaterOrEqual = host.GreaterOrEqual
)

// Constraint is a finalised, registered relation
//
//	item.attribute REL other.otherAttribute * multiplier + constant
//
// Only the constant and the priority can change after creation.
type Constraint struct {
	eng       *Engine
	item      host.Item
	attr      attribute.Attribute
	rel       Relation
	other     host.Item
	otherAttr attribute.Attribute
	mult      float64
	constant  float64
	priority  int
	handle    host.Handle
}

func (c *Constraint) Item() host.Item                     { return c.item }
func (c *Constraint) Attribute() attribute.Attribute      { return c.attr }
func (c *Constraint) Relation() Relation                  { return c.rel }
func (c *Constraint) Other() host.Item                    { return c.other }
func (c *Constraint) OtherAttribute() attribute.Attribute { return c.otherAttr }
func (c *Constraint) Multiplier() float64                 { return c.mult }
func (c *Constraint) Handle() host.Handle                 { return c.handle }

// Constant returns the current constant.
func (c *Constraint) Constant() float64 {
	var v float64
	c.eng.run(func() { v = c.constant })
	return v
}

// SetConstant changes the constant and propagates it to the native
// constraint.
func (c *Constraint) SetConstant(v float64) {
	c.eng.run(func() {
		c.constant = v
		if c.handle != nil {
			c.handle.SetConstant(v)
		}
	})
}

// Priority returns the current priority.
func (c *Constraint) Priority() int {
	var p int
	c.eng.run(func() {
		p = c.priority
		if c.handle != nil {
			p = c.handle.Priority()
		}
	})
	return p
}

// SetPriority changes the priority. While the item is on screen a
// constraint cannot move between required (1000) and optional; moves among
// optional values are allowed.
func (c *Constraint) SetPriority(p float64) error {
	v, err := errors.ValidatePriority(p)
	if err != nil {
		return err
	}
	c.eng.run(func() {
		prev := c.priority
		if c.handle != nil {
			prev = c.handle.Priority()
		}
		required, wasRequired := v == errors.PriorityRequired, prev == errors.PriorityRequired
		if required != wasRequired && c.item.IsOnScreen() {
			err = errors.New(errors.ErrCodeInvalidPriorityChange,
				"cannot change priority between required (1000) and lower value while on screen (%d -> %d)", prev, v).
				WithConstraint(c.render())
			return
		}
		c.priority = v
		if c.handle != nil {
			c.handle.SetPriority(v)
		}
	})
	return err
}

// Active reports whether the native constraint is active.
func (c *Constraint) Active() bool {
	var active bool
	c.eng.run(func() { active = c.handle != nil && c.handle.IsActive() })
	return active
}

// SetActive toggles the native constraint without detaching it from the
// registry. Inactive constraints are only returned by queries with
// IncludeInactive.
func (c *Constraint) SetActive(active bool) {
	c.eng.run(func() {
		if c.handle != nil {
			c.handle.SetActive(active)
		}
	})
}

// Remove deactivates c and detaches it from the registry.
func (c *Constraint) Remove() { c.eng.Remove(c) }

func (c *Constraint) constraints() []*Constraint { return []*Constraint{c} }

func (c *Constraint) native() host.NativeConstraint {
	return host.NativeConstraint{
		Item:           c.item,
		Attribute:      c.attr.Native(),
		Relation:       c.rel,
		Other:          c.other,
		OtherAttribute: c.otherAttr.Native(),
		Multiplier:     c.mult,
		Constant:       c.constant,
		Priority:       c.priority,
	}
}

// String renders c as "A.leading == B.trailing * 2 + 12".
func (c *Constraint) String() string {
	if c.eng == nil || c.handle == nil {
		return c.render()
	}
	var s string
	c.eng.run(func() { s = c.render() })
	return s
}

func (c *Constraint) render() string {
	var b strings.Builder
	b.WriteString(itemName(c.item))
	b.WriteByte('.')
	b.WriteString(c.attr.String())
	b.WriteByte(' ')
	b.WriteString(c.rel.String())
	b.WriteByte(' ')

	if c.other == nil {
		b.WriteString(formatNumber(c.constant))
		return b.String()
	}

	b.WriteString(itemName(c.other))
	if c.otherAttr != attribute.None {
		b.WriteByte('.')
		b.WriteString(c.otherAttr.String())
	}
	if c.mult != 1 {
		b.WriteString(" * ")
		b.WriteString(formatNumber(c.mult))
	}
	writeConstant(&b, c.constant)
	return b.String()
}

// describe renders a partial expression for error messages.
func (x Expression) describe() string {
	var b strings.Builder
	b.WriteString(itemName(x.item))
	if x.attr != attribute.None {
		b.WriteByte('.')
		b.WriteString(x.attr.String())
	}
	if x.mult != 1 {
		b.WriteString(" * ")
		b.WriteString(formatNumber(x.mult))
	}
	writeConstant(&b, x.constant)
	return b.String()
}

// String renders the expression, e.g. "B.trailing + 12".
func (x Expression) String() string { return x.describe() }

func writeConstant(b *strings.Builder, v float64) {
	switch {
	case v > 0:
		b.WriteString(" + ")
		b.WriteString(formatNumber(v))
	case v < 0:
		b.WriteString(" - ")
		b.WriteString(formatNumber(-v))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func itemName(it host.Item) string {
	if it == nil {
		return "<nil>"
	}
	if n := it.Name(); n != "" {
		return n
	}
	if _, ok := it.(host.Guide); ok {
		return "LayoutGuide"
	}
	return fmt.Sprintf("View(%.8s)", it.ID())
}
