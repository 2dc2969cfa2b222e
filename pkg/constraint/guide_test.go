package constraint

import (
	"testing"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/host"
)

func TestGuideFlavours(t *testing.T) {
	f := newFixture(t)

	c := mustEq(t, f.eng.At(f.a).Top(), f.eng.SafeArea(f.root).Top())
	if got := c.String(); got != "A.top == Safe area.top" {
		t.Errorf("String() = %q", got)
	}
	c = mustEq(t, f.eng.At(f.a).Leading(), f.eng.At(f.root).Margins().Leading())
	if got := c.String(); got != "A.leading == Margins.leading" {
		t.Errorf("String() = %q", got)
	}
	if c.Other() != host.Item(f.root.MarginsGuide()) {
		t.Error("margins expression should reference the margins guide")
	}
}

func TestGuideAttributes(t *testing.T) {
	f := newFixture(t)
	g := f.eng.NewGuide(f.root)

	for _, a := range attribute.All() {
		x := f.eng.At(g).Attr(a)
		if a.GuideSupported() && x.Err() != nil {
			t.Errorf("guide.%v: unexpected error %v", a, x.Err())
		}
		if !a.GuideSupported() && x.Err() == nil {
			t.Errorf("guide.%v: expected error", a)
		}
	}
}

func TestRemoveGuide(t *testing.T) {
	f := newFixture(t)
	g := f.eng.NewGuide(f.root)
	held := mustEq(t, f.eng.At(g).Width(), 40)
	ref := mustEq(t, f.eng.At(f.a).Leading(), f.eng.At(g).Trailing())
	kept := mustEq(t, f.eng.At(f.a).Width(), 10)

	f.eng.RemoveGuide(g)

	if held.Active() || ref.Active() {
		t.Error("constraints touching the guide should be inactive")
	}
	if !kept.Active() {
		t.Error("unrelated constraint should stay active")
	}
	if got := f.eng.Constraints(f.a, Query{IncludeInactive: true}); len(got) != 1 || got[0] != kept {
		t.Errorf("Constraints(A) = %v", got.Strings())
	}
	if g.Owner() != nil || len(f.root.Guides()) != 0 {
		t.Error("guide should be detached")
	}
	if err := f.eng.At(g).Top().Err(); err == nil {
		t.Error("detached guide should reject new constraints")
	}
}

func TestRemoveGuides(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		g := f.eng.NewGuide(f.root)
		mustEq(t, f.eng.At(g).Width(), 8)
	}
	f.eng.RemoveGuides(f.root)
	if len(f.root.Guides()) != 0 {
		t.Errorf("Guides() = %d, want 0", len(f.root.Guides()))
	}
	if len(f.host.Recorder().Active()) != 0 {
		t.Error("guide constraints should be inactive")
	}
}

func TestGuidesOfNilView(t *testing.T) {
	f := newFixture(t)
	if g := f.eng.NewGuide(nil); g != nil {
		t.Errorf("NewGuide(nil) = %v, want nil", g)
	}
	f.eng.RemoveGuides(nil)
	f.eng.RemoveGuide(nil)
	if err := f.eng.SafeArea(nil).Top().Err(); err == nil {
		t.Error("SafeArea(nil) should carry an error")
	}
}
