// Package snapshot captures a built scene in a serialisable form and stores
// captures.
//
// A [Snapshot] records every view with its frame in root coordinates, the
// active constraints it holds, the grid plans and the check report of the
// scene. Snapshots are plain data with json and bson tags so they can be
// written to files, returned by the API and stored in MongoDB.
//
// Storage backends implement [Store]:
//
//	store := snapshot.NewMemoryStore()              // tests, single process
//	store, err := snapshot.NewMongoStore(ctx, cfg)  // API server
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/grid"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/scene"
)

// Snapshot is a capture of a laid-out scene.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Scene     string    `json:"scene" bson:"scene"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Width     float64   `json:"width" bson:"width"`
	Height    float64   `json:"height" bson:"height"`

	Views  []ViewState  `json:"views" bson:"views"`
	Grids  []GridState  `json:"grids,omitempty" bson:"grids,omitempty"`
	Report scene.Report `json:"report" bson:"report"`
}

// ViewState is one view of a snapshot.
type ViewState struct {
	Name        string    `json:"name" bson:"name"`
	Parent      string    `json:"parent,omitempty" bson:"parent,omitempty"`
	Frame       host.Rect `json:"frame" bson:"frame"`
	Ambiguous   bool      `json:"ambiguous,omitempty" bson:"ambiguous,omitempty"`
	Constraints []string  `json:"constraints,omitempty" bson:"constraints,omitempty"`
}

// GridState is the plan of one grid container.
type GridState struct {
	Container string    `json:"container" bson:"container"`
	Plan      grid.Plan `json:"plan" bson:"plan"`
}

// Summary is the listing form of a snapshot.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Scene     string    `json:"scene" bson:"scene"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Failed    int       `json:"failed" bson:"failed"`
}

// Capture records the current state of res. Frames are in root coordinates.
func Capture(res *scene.Result) *Snapshot {
	bounds := res.Root.Bounds()
	s := &Snapshot{
		ID:        uuid.NewString(),
		Scene:     res.Report.Scene,
		CreatedAt: time.Now().UTC(),
		Width:     bounds.Width,
		Height:    bounds.Height,
		Report:    res.Report,
	}

	ambiguous := map[string]bool{}
	for _, name := range res.Report.Ambiguous {
		ambiguous[name] = true
	}
	host.Walk(res.Root, func(v host.View) {
		x, y := host.Origin(v, res.Root)
		f := v.Frame()
		vs := ViewState{
			Name:        v.Name(),
			Frame:       host.Rect{X: x, Y: y, Width: f.Width, Height: f.Height},
			Ambiguous:   ambiguous[v.Name()],
			Constraints: res.Engine.Constraints(v, constraint.Query{}).Strings(),
		}
		if sv := v.Superview(); sv != nil {
			vs.Parent = sv.Name()
		}
		s.Views = append(s.Views, vs)
	})

	for _, g := range res.Grids {
		s.Grids = append(s.Grids, GridState{Container: g.Container().Name(), Plan: g.Plan()})
	}
	return s
}

// Summary returns the listing form of s.
func (s *Snapshot) Summary() Summary {
	return Summary{ID: s.ID, Scene: s.Scene, CreatedAt: s.CreatedAt, Failed: s.Report.Failed()}
}

// View returns the state of the named view.
func (s *Snapshot) View(name string) (ViewState, bool) {
	for _, v := range s.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewState{}, false
}

// WriteFile writes s as indented JSON.
func (s *Snapshot) WriteFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot written by WriteFile.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}
