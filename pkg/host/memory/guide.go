package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/anchor/pkg/host"
)

type guideKind int

const (
	guideAdHoc guideKind = iota
	guideSafeArea
	guideMargins
)

// Guide is an in-memory layout guide.
type Guide struct {
	mu    sync.RWMutex
	id    string
	name  string
	kind  guideKind
	owner *View
	frame host.Rect
}

func newGuide(owner *View, name string, kind guideKind) *Guide {
	return &Guide{
		id:    uuid.NewString(),
		name:  name,
		kind:  kind,
		owner: owner,
	}
}

func (g *Guide) ID() string   { return g.id }
func (g *Guide) Name() string { return g.name }

// Owner returns the owning view, or nil after removal.
func (g *Guide) Owner() host.View {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.owner == nil {
		return nil
	}
	return g.owner
}

// Superview is the owning view.
func (g *Guide) Superview() host.View { return g.Owner() }

func (g *Guide) IsOnScreen() bool {
	g.mu.RLock()
	owner := g.owner
	g.mu.RUnlock()
	return owner != nil && owner.IsOnScreen()
}

// Frame returns the guide's rectangle in its owner's coordinate space.
// Safe area and margins guides derive it from the owner; ad-hoc guides
// return whatever was last set.
func (g *Guide) Frame() host.Rect {
	g.mu.RLock()
	owner, kind, frame := g.owner, g.kind, g.frame
	g.mu.RUnlock()
	if owner == nil {
		return host.Rect{}
	}
	switch kind {
	case guideSafeArea:
		return owner.Bounds().Inset(owner.safeAreaInsets())
	case guideMargins:
		return owner.Bounds().Inset(owner.MarginInsets())
	default:
		return frame
	}
}

// SetFrame sets the frame of an ad-hoc guide. Derived guides ignore it.
func (g *Guide) SetFrame(r host.Rect) {
	g.mu.Lock()
	if g.kind == guideAdHoc {
		g.frame = r
	}
	g.mu.Unlock()
}

func (g *Guide) detach() {
	g.mu.Lock()
	g.owner = nil
	g.mu.Unlock()
}

var _ host.Guide = (*Guide)(nil)
