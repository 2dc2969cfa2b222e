package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/anchor/pkg/host"
)

// View is an in-memory view.
type View struct {
	mu sync.RWMutex

	id         string
	name       string
	text       string
	superview  *View
	subviews   []host.View
	presented  bool
	translates bool
	frame      host.Rect
	preferred  host.Size
	margins    host.Insets
	safeArea   host.Insets

	safeGuide    *Guide
	marginsGuide *Guide
	guides       []*Guide

	listeners map[int]func(host.Rect)
	nextID    int
}

// Option configures a new view.
type Option func(*View)

// WithFrame sets the initial frame.
func WithFrame(r host.Rect) Option { return func(v *View) { v.frame = r } }

// WithSize sets the initial frame size at the origin.
func WithSize(w, h float64) Option {
	return func(v *View) { v.frame = host.Rect{Width: w, Height: h} }
}

// WithPreferredSize sets the size returned by PreferredSize.
func WithPreferredSize(s host.Size) Option { return func(v *View) { v.preferred = s } }

// WithMargins overrides the default layout margins.
func WithMargins(in host.Insets) Option { return func(v *View) { v.margins = in } }

// WithSafeArea sets the safe area insets relative to the view's bounds.
func WithSafeArea(in host.Insets) Option { return func(v *View) { v.safeArea = in } }

// WithText marks the view as text-bearing.
func WithText(s string) Option { return func(v *View) { v.text = s } }

// NewView creates a detached view. The view translates its frame until a
// constraint engine takes it over.
func NewView(name string, opts ...Option) *View {
	v := &View{
		id:         uuid.NewString(),
		name:       name,
		translates: true,
		margins:    host.UniformInsets(DefaultMargin),
		listeners:  make(map[int]func(host.Rect)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) ID() string { return v.id }

func (v *View) Name() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.name
}

// Text implements host.TextBearer.
func (v *View) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

func (v *View) Superview() host.View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.superview == nil {
		return nil
	}
	return v.superview
}

func (v *View) Subviews() []host.View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]host.View(nil), v.subviews...)
}

// AddSubview appends sv to v, detaching it from any previous superview.
// Views from other toolkits are ignored.
func (v *View) AddSubview(sv host.View) {
	child, ok := sv.(*View)
	if !ok || child == v {
		return
	}
	if old := child.parent(); old != nil {
		old.removeSubview(child)
	}
	child.mu.Lock()
	child.superview = v
	child.mu.Unlock()

	v.mu.Lock()
	v.subviews = append(v.subviews, child)
	v.mu.Unlock()
}

// RemoveFromSuperview detaches v from its superview.
func (v *View) RemoveFromSuperview() {
	if p := v.parent(); p != nil {
		p.removeSubview(v)
	}
	v.mu.Lock()
	v.superview = nil
	v.mu.Unlock()
}

func (v *View) parent() *View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.superview
}

func (v *View) removeSubview(child *View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, sv := range v.subviews {
		if sv == host.View(child) {
			v.subviews = append(v.subviews[:i], v.subviews[i+1:]...)
			return
		}
	}
}

// Present marks the hierarchy rooted at v as on screen.
func (v *View) Present() {
	v.mu.Lock()
	v.presented = true
	v.mu.Unlock()
}

// Dismiss takes the hierarchy rooted at v off screen.
func (v *View) Dismiss() {
	v.mu.Lock()
	v.presented = false
	v.mu.Unlock()
}

// IsOnScreen reports whether the root of v's hierarchy is presented.
func (v *View) IsOnScreen() bool {
	root := v
	for p := root.parent(); p != nil; p = p.parent() {
		root = p
	}
	root.mu.RLock()
	defer root.mu.RUnlock()
	return root.presented
}

func (v *View) TranslatesAutoFrame() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.translates
}

func (v *View) SetTranslatesAutoFrame(on bool) {
	v.mu.Lock()
	v.translates = on
	v.mu.Unlock()
}

// PreferredSize returns the configured preferred size regardless of fitting.
func (v *View) PreferredSize(host.Size) host.Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.preferred
}

func (v *View) MarginInsets() host.Insets {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.margins
}

func (v *View) Frame() host.Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frame
}

// SetFrame updates the frame. Resize listeners run after the update when the
// size changed; they must not be triggered from inside a dispatcher Run.
func (v *View) SetFrame(r host.Rect) {
	v.mu.Lock()
	resized := r.Width != v.frame.Width || r.Height != v.frame.Height
	v.frame = r
	var fns []func(host.Rect)
	if resized {
		for i := 0; i < v.nextID; i++ {
			if fn, ok := v.listeners[i]; ok {
				fns = append(fns, fn)
			}
		}
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
}

func (v *View) Bounds() host.Rect {
	f := v.Frame()
	return host.Rect{Width: f.Width, Height: f.Height}
}

// OnResize implements host.ResizeNotifier.
func (v *View) OnResize(fn func(host.Rect)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}

func (v *View) SafeAreaGuide() host.Guide {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.safeGuide == nil {
		v.safeGuide = newGuide(v, "Safe area", guideSafeArea)
	}
	return v.safeGuide
}

func (v *View) MarginsGuide() host.Guide {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.marginsGuide == nil {
		v.marginsGuide = newGuide(v, "Margins", guideMargins)
	}
	return v.marginsGuide
}

// AddGuide creates an ad-hoc guide owned by v.
func (v *View) AddGuide(name string) host.Guide {
	if name == "" {
		name = "LayoutGuide"
	}
	g := newGuide(v, name, guideAdHoc)
	v.mu.Lock()
	v.guides = append(v.guides, g)
	v.mu.Unlock()
	return g
}

// RemoveGuide detaches g if v owns it.
func (v *View) RemoveGuide(g host.Guide) {
	mg, ok := g.(*Guide)
	if !ok {
		return
	}
	v.mu.Lock()
	found := false
	for i, cur := range v.guides {
		if cur == mg {
			v.guides = append(v.guides[:i], v.guides[i+1:]...)
			found = true
			break
		}
	}
	v.mu.Unlock()
	if found {
		mg.detach()
	}
}

func (v *View) Guides() []host.Guide {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]host.Guide, len(v.guides))
	for i, g := range v.guides {
		out[i] = g
	}
	return out
}

// safeAreaInsets returns the configured safe area insets.
func (v *View) safeAreaInsets() host.Insets {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.safeArea
}

// Find returns the first view named name in the hierarchy rooted at v.
func (v *View) Find(name string) *View {
	var found *View
	host.Walk(v, func(cur host.View) {
		if found != nil {
			return
		}
		if mv, ok := cur.(*View); ok && mv.Name() == name {
			found = mv
		}
	})
	return found
}

var (
	_ host.View           = (*View)(nil)
	_ host.TextBearer     = (*View)(nil)
	_ host.ResizeNotifier = (*View)(nil)
)
