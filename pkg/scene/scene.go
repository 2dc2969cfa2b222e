// Package scene describes a view hierarchy and its layout in TOML and builds
// it through the constraint engine on the in-memory host.
//
// A scene lists views, docking and alignment recipes, grids and free-form
// constraints written as text:
//
//	name = "login"
//	width = 375
//	height = 667
//
//	constraints = [
//	  "field.top == title.bottom_padding",
//	  "field.width == root.width * 0.8 @750",
//	]
//
//	[[views]]
//	name = "title"
//	text = "Sign in"
//	preferred = [120, 24]
//
//	[[views]]
//	name = "field"
//
//	[[docks]]
//	view = "title"
//	recipe = "top"
//	fit = "safe"
//
// Top-level keys must come before the first [[table]]; TOML would otherwise
// attach them to that table, and [Parse] rejects keys it cannot place.
//
// [Build] applies every statement in order and records the outcome of each
// in a [Report], so a broken statement does not hide the ones after it.
package scene

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/grid"
)

// RootName is the name of the implicit root view.
const RootName = "root"

// Scene is a parsed scene file.
type Scene struct {
	Name            string   `toml:"name" json:"name"`
	Width           float64  `toml:"width" json:"width"`
	Height          float64  `toml:"height" json:"height"`
	StandardSpacing *float64 `toml:"standard_spacing" json:"standard_spacing,omitempty"`
	ViewMargins     bool     `toml:"view_margins" json:"view_margins,omitempty"`
	OnScreen        bool     `toml:"on_screen" json:"on_screen,omitempty"`

	Views       []View   `toml:"views" json:"views,omitempty"`
	Docks       []Dock   `toml:"docks" json:"docks,omitempty"`
	Aligns      []Align  `toml:"aligns" json:"aligns,omitempty"`
	Grids       []Grid   `toml:"grids" json:"grids,omitempty"`
	Constraints []string `toml:"constraints" json:"constraints,omitempty"`
}

// View declares a view. Parent defaults to the root.
type View struct {
	Name      string    `toml:"name" json:"name"`
	Parent    string    `toml:"parent" json:"parent,omitempty"`
	Text      string    `toml:"text" json:"text,omitempty"`
	Frame     []float64 `toml:"frame" json:"frame,omitempty"`
	Preferred []float64 `toml:"preferred" json:"preferred,omitempty"`
	Margins   *float64  `toml:"margins" json:"margins,omitempty"`
	SafeArea  *float64  `toml:"safe_area" json:"safe_area,omitempty"`
}

// Dock applies a docking recipe to a view.
type Dock struct {
	View     string    `toml:"view" json:"view"`
	Recipe   string    `toml:"recipe" json:"recipe"`
	Fit      string    `toml:"fit" json:"fit,omitempty"`
	Constant float64   `toml:"constant" json:"constant,omitempty"`
	Share    []float64 `toml:"share" json:"share,omitempty"`
	Between  []string  `toml:"between" json:"between,omitempty"`
}

// Align aligns one attribute of a view with other views.
type Align struct {
	View      string   `toml:"view" json:"view"`
	Attribute string   `toml:"attribute" json:"attribute"`
	With      []string `toml:"with" json:"with"`
}

// Grid lays out the subviews of a container. Cells adds that many plain
// cell views before the layout runs.
type Grid struct {
	Container string   `toml:"container" json:"container"`
	Packing   string   `toml:"packing" json:"packing,omitempty"`
	Mode      string   `toml:"mode" json:"mode,omitempty"`
	Columns   int      `toml:"columns" json:"columns,omitempty"`
	Rows      int      `toml:"rows" json:"rows,omitempty"`
	Gap       *float64 `toml:"gap" json:"gap,omitempty"`
	Border    float64  `toml:"border" json:"border,omitempty"`
	Cells     int      `toml:"cells" json:"cells,omitempty"`
}

// CellName is the name given to the i-th cell a grid statement creates.
func CellName(container string, i int) string {
	return fmt.Sprintf("%s_cell%d", container, i)
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates TOML scene data.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScene,
			"unknown scene keys: %s (top-level keys such as constraints must come before the first [[table]])",
			strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names, references and sizes. Statements themselves are
// checked when the scene is built.
func (s *Scene) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene size cannot be negative (%vx%v)", s.Width, s.Height)
	}
	known := map[string]bool{RootName: true}
	for i, v := range s.Views {
		if err := errors.ValidateName(v.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "view %d", i)
		}
		if known[v.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate view %q", v.Name)
		}
		if v.Parent != "" && !known[v.Parent] {
			return errors.New(errors.ErrCodeInvalidScene,
				"view %q: parent %q must be declared before it", v.Name, v.Parent)
		}
		if len(v.Frame) != 0 && len(v.Frame) != 4 {
			return errors.New(errors.ErrCodeInvalidScene, "view %q: frame needs [x, y, width, height]", v.Name)
		}
		if len(v.Preferred) != 0 && len(v.Preferred) != 2 {
			return errors.New(errors.ErrCodeInvalidScene, "view %q: preferred needs [width, height]", v.Name)
		}
		known[v.Name] = true
	}
	generated := map[string]bool{}
	for _, g := range s.Grids {
		if !known[g.Container] {
			return errors.New(errors.ErrCodeInvalidScene, "grid container %q is not a declared view", g.Container)
		}
		if g.Cells < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "grid %q: cells cannot be negative", g.Container)
		}
		if g.Cells > grid.MaxCells || g.Columns > grid.MaxCells || g.Rows > grid.MaxCells {
			return errors.New(errors.ErrCodeInvalidScene,
				"grid %q: at most %d cells per count (cells: %d, columns: %d, rows: %d)",
				g.Container, grid.MaxCells, g.Cells, g.Columns, g.Rows)
		}
		for i := range g.Cells {
			name := CellName(g.Container, i)
			if known[name] || generated[name] {
				return errors.New(errors.ErrCodeInvalidScene,
					"grid %q: generated cell %q clashes with another view", g.Container, name)
			}
			generated[name] = true
		}
	}
	return nil
}
