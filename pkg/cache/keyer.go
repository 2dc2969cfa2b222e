package cache

import "fmt"

// Keyer builds cache keys for each kind of cached artifact.
type Keyer interface {
	// PlanKey identifies a grid plan.
	PlanKey(opts PlanKeyOpts) string
	// ReportKey identifies the check report of a scene.
	ReportKey(sceneHash string) string
	// OverlayKey identifies an overlay rendering of a scene.
	OverlayKey(sceneHash string, opts OverlayKeyOpts) string
}

// PlanKeyOpts are the inputs that determine a grid plan.
type PlanKeyOpts struct {
	Count   int     `json:"count"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Packing string  `json:"packing"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Gap     float64 `json:"gap"`
	Border  float64 `json:"border"`
}

// OverlayKeyOpts are the rendering options of an overlay.
type OverlayKeyOpts struct {
	Format     string   `json:"format"`
	Start      string   `json:"start,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
	Seed       uint64   `json:"seed"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts)
}

func (DefaultKeyer) ReportKey(sceneHash string) string {
	return fmt.Sprintf("report:%s", sceneHash)
}

func (DefaultKeyer) OverlayKey(sceneHash string, opts OverlayKeyOpts) string {
	return hashKey("overlay", sceneHash, opts)
}

var _ Keyer = DefaultKeyer{}
