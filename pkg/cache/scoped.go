package cache

// ScopedKeyer prefixes every key of an inner Keyer. The API server scopes
// its keys so it can share a Redis instance with other deployments:
//
//	keys := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "anchor:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) PlanKey(opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(opts)
}

func (k *ScopedKeyer) ReportKey(sceneHash string) string {
	return k.prefix + k.inner.ReportKey(sceneHash)
}

func (k *ScopedKeyer) OverlayKey(sceneHash string, opts OverlayKeyOpts) string {
	return k.prefix + k.inner.OverlayKey(sceneHash, opts)
}
