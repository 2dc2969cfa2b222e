package constraint

import (
	"slices"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/host"
)

// Removable is anything Engine.Remove accepts: a single constraint, a list
// of constraints, or a nested group of either.
type Removable interface {
	constraints() []*Constraint
}

// Constraints is an ordered list of constraints.
type Constraints []*Constraint

func (cs Constraints) constraints() []*Constraint { return cs }

// Strings renders every constraint.
func (cs Constraints) Strings() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

// Group nests removables.
type Group []Removable

func (g Group) constraints() []*Constraint {
	var out []*Constraint
	for _, r := range g {
		if r != nil {
			out = append(out, r.constraints()...)
		}
	}
	return out
}

// Role selects which side of a constraint an item must be on.
type Role int

const (
	// RoleTarget matches constraints whose target is the item.
	RoleTarget Role = iota
	// RoleOther matches constraints that reference the item as the other
	// side, held by the item or any of its ancestors.
	RoleOther
	// RoleAny matches both.
	RoleAny
)

// Query filters Engine.Constraints.
type Query struct {
	// Attributes restricts matches to these attributes of the queried item.
	// Empty matches all.
	Attributes []attribute.Attribute
	Role       Role
	// IncludeInactive also returns deactivated constraints still held by
	// the registry.
	IncludeInactive bool
}

type registry struct {
	byItem map[host.Item][]*Constraint
	order  []host.Item
}

func newRegistry() *registry {
	return &registry{byItem: make(map[host.Item][]*Constraint)}
}

func (r *registry) add(c *Constraint) {
	if _, ok := r.byItem[c.item]; !ok {
		r.order = append(r.order, c.item)
	}
	r.byItem[c.item] = append(r.byItem[c.item], c)
}

func (r *registry) remove(c *Constraint) {
	list, ok := r.byItem[c.item]
	if !ok {
		return
	}
	if i := slices.Index(list, c); i >= 0 {
		r.byItem[c.item] = slices.Delete(list, i, i+1)
	}
}

// forget drops it from the registry entirely.
func (r *registry) forget(it host.Item) {
	if _, ok := r.byItem[it]; !ok {
		return
	}
	delete(r.byItem, it)
	r.order = slices.DeleteFunc(r.order, func(cur host.Item) bool { return cur == it })
}

// Remove deactivates and detaches every constraint in rs. Removing a
// constraint that is already gone is a no-op for the registry; the native
// deactivation is repeated and ignored by the handle.
func (e *Engine) Remove(rs ...Removable) {
	var all []*Constraint
	for _, r := range rs {
		if r != nil {
			all = append(all, r.constraints()...)
		}
	}
	if len(all) == 0 {
		return
	}
	e.run(func() {
		for _, c := range all {
			if c == nil {
				continue
			}
			if c.handle != nil {
				c.handle.SetActive(false)
			}
			e.reg.remove(c)
		}
	})
	e.logger.Debug("constraints removed", "count", len(all))
}

// RemoveConstraints removes every constraint targeting it. Items the engine
// has never seen are ignored.
func (e *Engine) RemoveConstraints(it host.Item) {
	n := 0
	e.run(func() {
		list := e.reg.byItem[it]
		for _, c := range list {
			if c.handle != nil {
				c.handle.SetActive(false)
			}
		}
		n = len(list)
		if _, ok := e.reg.byItem[it]; ok {
			e.reg.byItem[it] = nil
		}
	})
	if n > 0 {
		e.logger.Debug("constraints removed", "item", itemName(it), "count", n)
	}
}

// Constraints returns the constraints matching q for it, in insertion
// order.
func (e *Engine) Constraints(it host.Item, q Query) Constraints {
	if it == nil {
		return nil
	}
	var out Constraints
	e.run(func() { out = e.query(it, q) })
	return out
}

func (e *Engine) query(it host.Item, q Query) Constraints {
	match := func(c *Constraint, a attribute.Attribute) bool {
		if !q.IncludeInactive && (c.handle == nil || !c.handle.IsActive()) {
			return false
		}
		return len(q.Attributes) == 0 || slices.Contains(q.Attributes, a)
	}

	var out Constraints
	if q.Role == RoleTarget || q.Role == RoleAny {
		for _, c := range e.reg.byItem[it] {
			if match(c, c.attr) {
				out = append(out, c)
			}
		}
	}
	if q.Role == RoleOther || q.Role == RoleAny {
		holders := []host.Item{it}
		for v := it.Superview(); v != nil; v = v.Superview() {
			holders = append(holders, v)
		}
		for _, h := range holders {
			for _, c := range e.reg.byItem[h] {
				if c.other == it && match(c, c.otherAttr) && !slices.Contains(out, c) {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// Items returns every item that has been constrained, in order of first
// registration.
func (e *Engine) Items() []host.Item {
	var out []host.Item
	e.run(func() { out = slices.Clone(e.reg.order) })
	return out
}

// Constrained reports whether it has ever been constrained through e.
func (e *Engine) Constrained(it host.Item) bool {
	var ok bool
	e.run(func() { _, ok = e.reg.byItem[it] })
	return ok
}
