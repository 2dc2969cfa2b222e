package scene

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/dock"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

const loginScene = `
name = "login"
width = 400
height = 300

constraints = [
  "field.leading == title.trailing_padding + 4",
  "field.width == root.width * 0.5 @750",
  "field.top >= root.top + 20",
  "field.bogus == 1",
]

[[views]]
name = "title"
text = "Sign in"
preferred = [120, 24]

[[views]]
name = "field"

[[views]]
name = "button"
frame = [0, 0, 80, 30]

[[views]]
name = "tiles"
frame = [0, 0, 200, 100]

[[docks]]
view = "title"
recipe = "top"
fit = "tight"

[[docks]]
view = "button"
recipe = "bottom_trailing"
constant = 10

[[docks]]
view = "field"
recipe = "nowhere"

[[aligns]]
view = "button"
attribute = "width"
with = ["title"]

[[grids]]
container = "tiles"
cells = 2
gap = 10
packing = "fill"
`

func quiet() BuildOption { return WithLogger(log.New(io.Discard)) }

func TestParse(t *testing.T) {
	s, err := Parse([]byte(loginScene))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "login" || s.Width != 400 || len(s.Views) != 4 {
		t.Errorf("scene = %+v", s)
	}
	if len(s.Constraints) != 4 || s.Grids[0].Cells != 2 || *s.Grids[0].Gap != 10 {
		t.Errorf("statements = %+v %+v", s.Constraints, s.Grids)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "name = "},
		{"negative size", "width = -1"},
		{"bad name", "[[views]]\nname = \"a.b\""},
		{"duplicate", "[[views]]\nname = \"a\"\n[[views]]\nname = \"a\""},
		{"reserved root", "[[views]]\nname = \"root\""},
		{"parent later", "[[views]]\nname = \"a\"\nparent = \"b\"\n[[views]]\nname = \"b\""},
		{"short frame", "[[views]]\nname = \"a\"\nframe = [1, 2]"},
		{"unknown container", "[[grids]]\ncontainer = \"nope\""},
		{"negative cells", "[[grids]]\ncontainer = \"root\"\ncells = -1"},
		{"constraints inside a table", "[[docks]]\nview = \"root\"\nrecipe = \"all\"\nconstraints = [\"root.width == 10\"]"},
		{"unknown key", "colour = \"red\""},
		{"too many cells", "[[grids]]\ncontainer = \"root\"\ncells = 100000000"},
		{"too many rows", "[[grids]]\ncontainer = \"root\"\nrows = 100000000"},
		{"cell name taken", "[[views]]\nname = \"root_cell1\"\n[[grids]]\ncontainer = \"root\"\ncells = 2"},
		{"two grids on one container", "[[grids]]\ncontainer = \"root\"\ncells = 1\n[[grids]]\ncontainer = \"root\"\ncells = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidScene)
			}
		})
	}
}

func TestParseKeepsTopLevelConstraints(t *testing.T) {
	s, err := Parse([]byte("constraints = [\"a.height == 40\"]\n\n[[views]]\nname = \"a\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Constraints) != 1 || s.Constraints[0] != "a.height == 40" {
		t.Errorf("Constraints = %v, want [a.height == 40]", s.Constraints)
	}

	_, err = Parse([]byte("[[views]]\nname = \"a\"\nconstraints = [\"a.height == 40\"]\n"))
	if !errors.Is(err, errors.ErrCodeInvalidScene) || !strings.Contains(err.Error(), "views.constraints") {
		t.Errorf("Parse() error = %v, want %s naming views.constraints", err, errors.ErrCodeInvalidScene)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.toml")
	if err := os.WriteFile(path, []byte(loginScene), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "login" {
		t.Errorf("Name = %q", s.Name)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(loginScene))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Build(s, quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if _, ok := res.Views["tiles_cell1"]; !ok {
		t.Error("grid cells should be registered as views")
	}
	if got := res.Views["tiles_cell1"].Frame(); got != (host.Rect{X: 100, Y: 10, Width: 80, Height: 80}) {
		t.Errorf("tiles_cell1 frame = %+v", got)
	}

	rep := res.Report
	if rep.Scene != "login" || len(rep.Outcomes) != 9 {
		t.Fatalf("report = %+v", rep)
	}
	tests := []struct {
		i     int
		kind  Kind
		ok    bool
		code  errors.Code
		first string
	}{
		{0, KindDock, true, "", "title.top == root.top"},
		{1, KindDock, true, "", "button.bottom == Margins.bottom - 10"},
		{2, KindDock, false, errors.ErrCodeInvalidScene, ""},
		{3, KindAlign, true, "", "button.width == title.width"},
		{4, KindGrid, true, "", ""},
		{5, KindConstraint, true, "", "field.leading == title.trailing + 12"},
		{6, KindConstraint, true, "", "field.width == root.width * 0.5"},
		{7, KindConstraint, true, "", "field.top >= root.top + 20"},
		{8, KindConstraint, false, errors.ErrCodeInvalidScene, ""},
	}
	for _, tt := range tests {
		o := rep.Outcomes[tt.i]
		if o.Kind != tt.kind || o.OK != tt.ok || o.Code != string(tt.code) {
			t.Errorf("outcome %d = %+v", tt.i, o)
			continue
		}
		if tt.first != "" && (len(o.Constraints) == 0 || o.Constraints[0] != tt.first) {
			t.Errorf("outcome %d constraints = %v, want first %q", tt.i, o.Constraints, tt.first)
		}
	}
	if rep.Failed() != 2 || rep.Clean() {
		t.Errorf("Failed() = %d, Clean() = %v", rep.Failed(), rep.Clean())
	}

	ambiguous := strings.Join(rep.Ambiguous, ",")
	if !strings.Contains(ambiguous, "field") {
		t.Errorf("Ambiguous = %v, want field listed", rep.Ambiguous)
	}
}

func TestBuildPriority(t *testing.T) {
	s := &Scene{
		Width:       100,
		Height:      100,
		Views:       []View{{Name: "a"}},
		Constraints: []string{"a.width == 10 @250"},
	}
	res, err := Build(s, quiet())
	if err != nil {
		t.Fatal(err)
	}
	v, _ := res.Resolve("a")
	cs := res.Engine.Constraints(v, constraint.Query{})
	if len(cs) != 1 || cs[0].Priority() != 250 {
		t.Errorf("constraints = %v", cs.Strings())
	}
}

func TestReportRender(t *testing.T) {
	s, err := Parse([]byte(loginScene))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Build(s, quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	var buf bytes.Buffer
	if err := res.Report.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"title top", "unknown dock recipe", "unknown attribute", "9 statements, 2 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildOptions(t *testing.T) {
	four, three := 4.0, 3.0
	tests := []struct {
		name     string
		spacing  *float64
		margins  *float64
		opts     []BuildOption
		wantDock string
		wantPad  string
	}{
		{
			name:     "defaults",
			wantDock: "a.top == Margins.top",
			wantPad:  "a.leading == b.trailing + 8",
		},
		{
			name:     "configured spacing and fit",
			opts:     []BuildOption{WithStandardSpacing(20), WithDefaultFit(dock.Tight)},
			wantDock: "a.top == root.top",
			wantPad:  "a.leading == b.trailing + 20",
		},
		{
			name:     "scene spacing wins",
			spacing:  &four,
			opts:     []BuildOption{WithStandardSpacing(20)},
			wantDock: "a.top == Margins.top",
			wantPad:  "a.leading == b.trailing + 4",
		},
		{
			name:     "view margins",
			margins:  &three,
			opts:     []BuildOption{WithViewMargins(true)},
			wantDock: "a.top == Margins.top",
			wantPad:  "a.leading == b.trailing + 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scene{
				Width:           300,
				Height:          200,
				StandardSpacing: tt.spacing,
				Views:           []View{{Name: "a"}, {Name: "b", Margins: tt.margins}},
				Docks:           []Dock{{View: "a", Recipe: "top"}},
				Constraints:     []string{"a.leading == b.trailing_padding"},
			}
			res, err := Build(s, append(tt.opts, quiet())...)
			if err != nil {
				t.Fatal(err)
			}
			defer res.Close()

			if n := res.Report.Failed(); n != 0 {
				t.Fatalf("Failed() = %d, want 0", n)
			}
			if got := res.Report.Outcomes[0].Constraints[0]; got != tt.wantDock {
				t.Errorf("dock constraint = %q, want %q", got, tt.wantDock)
			}
			if got := res.Report.Outcomes[1].Constraints[0]; got != tt.wantPad {
				t.Errorf("padding constraint = %q, want %q", got, tt.wantPad)
			}
		})
	}
}
