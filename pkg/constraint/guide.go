package constraint

import (
	"github.com/matzehuels/anchor/pkg/host"
)

// SafeArea returns an expression on v's safe area guide.
func (e *Engine) SafeArea(v host.View) Expression {
	if v == nil {
		return e.At(nil)
	}
	return e.At(v.SafeAreaGuide())
}

// Margins returns an expression on v's layout margins guide.
func (e *Engine) Margins(v host.View) Expression {
	if v == nil {
		return e.At(nil)
	}
	return e.At(v.MarginsGuide())
}

// NewGuide adds an ad-hoc guide to v. It returns nil for a nil view.
func (e *Engine) NewGuide(v host.View) host.Guide {
	if v == nil {
		return nil
	}
	var g host.Guide
	e.run(func() { g = v.AddGuide("") })
	return g
}

// RemoveGuide removes the constraints held by g or referencing it, then
// detaches g from its owner.
func (e *Engine) RemoveGuide(g host.Guide) {
	if g == nil {
		return
	}
	e.run(func() { e.removeGuide(g) })
}

// RemoveGuides removes every ad-hoc guide of v.
func (e *Engine) RemoveGuides(v host.View) {
	if v == nil {
		return
	}
	e.run(func() {
		for _, g := range v.Guides() {
			e.removeGuide(g)
		}
	})
}

func (e *Engine) removeGuide(g host.Guide) {
	for _, list := range e.reg.byItem {
		for _, c := range list {
			if c.item != host.Item(g) && c.other != host.Item(g) {
				continue
			}
			if c.handle != nil {
				c.handle.SetActive(false)
			}
		}
	}
	for it, list := range e.reg.byItem {
		kept := list[:0]
		for _, c := range list {
			if c.other != host.Item(g) {
				kept = append(kept, c)
			}
		}
		e.reg.byItem[it] = kept
	}
	e.reg.forget(g)
	if owner := g.Owner(); owner != nil {
		owner.RemoveGuide(g)
	}
}
