package overlay

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/host/memory"
)

type fixture struct {
	eng  *constraint.Engine
	root *memory.View
	a    *memory.View
	b    *memory.View
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		eng:  constraint.New(memory.New(), constraint.WithLogger(log.New(io.Discard))),
		root: memory.NewView("root", memory.WithSize(400, 300)),
		a:    memory.NewView("a", memory.WithFrame(host.Rect{X: 10, Y: 20, Width: 100, Height: 50})),
		b:    memory.NewView("b", memory.WithFrame(host.Rect{X: 200, Y: 20, Width: 100, Height: 50})),
	}
	f.root.AddSubview(f.a)
	f.root.AddSubview(f.b)

	if _, err := f.eng.At(f.a).Leading().Eq(f.eng.At(f.b).Trailing().Plus(12)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.eng.At(f.a).Width().Eq(100); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestBuild(t *testing.T) {
	f := newFixture(t)
	ov := Build(f.eng, f.root, WithSeed(7))

	if len(ov.Views) != 1 || ov.Views[0] != "a" {
		t.Fatalf("Views = %v, want [a]", ov.Views)
	}
	if len(ov.Markers) != 3 {
		t.Fatalf("Markers = %d, want 3", len(ov.Markers))
	}

	colors := ov.Colors["a"]
	tests := []struct {
		i     int
		item  string
		rect  host.Rect
		color string
		other bool
	}{
		{0, "a", host.Rect{X: 7.5, Y: 26.25, Width: 5, Height: 37.5}, colors[ClassEdge], false},
		{1, "b", host.Rect{X: 297.5, Y: 26.25, Width: 5, Height: 37.5}, colors[ClassEdge], true},
		{2, "a", host.Rect{X: 10, Y: 42.5, Width: 100, Height: 5}, colors[ClassSize], false},
	}
	for _, tt := range tests {
		m := ov.Markers[tt.i]
		if m.Item != tt.item || m.Rect != tt.rect || m.Color != tt.color || m.Other != tt.other {
			t.Errorf("marker %d = %+v, want item %s rect %+v color %s", tt.i, m, tt.item, tt.rect, tt.color)
		}
	}

	if len(ov.Connectors) != 1 {
		t.Fatalf("Connectors = %d, want 1", len(ov.Connectors))
	}
	c := ov.Connectors[0]
	if c.From != 0 || c.To != 1 || c.X1 != 10 || c.Y1 != 45 || c.X2 != 300 || c.Y2 != 45 {
		t.Errorf("connector = %+v", c)
	}
	if got := ov.Constants["a"]; len(got) != 1 || got[0] != "a.width == 100" {
		t.Errorf("Constants[a] = %v", got)
	}

	again := Build(f.eng, f.root, WithSeed(7))
	if again.Colors["a"] != colors {
		t.Error("same seed should pick the same colours")
	}
}

func TestBuildFilters(t *testing.T) {
	f := newFixture(t)

	ov := Build(f.eng, f.root, WithAttributes(attribute.Width))
	if len(ov.Markers) != 1 || ov.Markers[0].Attribute != attribute.Width {
		t.Errorf("filtered markers = %+v", ov.Markers)
	}

	ov = Build(f.eng, f.root, WithStart(f.b))
	if len(ov.Views) != 0 || len(ov.Markers) != 0 {
		t.Errorf("overlay from b = %+v, want empty", ov)
	}
}

func TestBuildGuideMarker(t *testing.T) {
	f := newFixture(t)
	if _, err := f.eng.At(f.a).Top().Eq(f.eng.Margins(f.root).Top()); err != nil {
		t.Fatal(err)
	}
	ov := Build(f.eng, f.root, WithAttributes(attribute.Top))
	if len(ov.Markers) != 2 {
		t.Fatalf("Markers = %d, want 2", len(ov.Markers))
	}
	want := host.Rect{X: 56, Y: 5.5, Width: 288, Height: 5}
	if got := ov.Markers[1].Rect; got != want {
		t.Errorf("margins marker = %+v, want %+v", got, want)
	}
}

func TestClassOf(t *testing.T) {
	tests := map[attribute.Attribute]Class{
		attribute.Left:          ClassEdge,
		attribute.TopMargin:     ClassEdge,
		attribute.Width:         ClassSize,
		attribute.Height:        ClassSize,
		attribute.CenterX:       ClassCenter,
		attribute.FirstBaseline: ClassCenter,
	}
	for a, want := range tests {
		if got := ClassOf(a); got != want {
			t.Errorf("ClassOf(%v) = %v, want %v", a, got, want)
		}
	}
}

func TestDealerCyclesPalette(t *testing.T) {
	d := newDealer(3)
	seen := map[Colors]int{}
	for range Palette {
		seen[d.next()]++
	}
	if len(seen) != len(Palette) {
		t.Errorf("dealt %d distinct entries, want all of the palette", len(seen))
	}
	if len(d.left) != 0 {
		t.Errorf("left = %d after a full round", len(d.left))
	}
	d.next()
	if len(d.left) != len(Palette)-1 {
		t.Errorf("palette should be reshuffled after a full round")
	}
}

func TestRenderText(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	if err := RenderText(&buf, Build(f.eng, f.root)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"overlay root", "a.leading == b.trailing + 12", "a.width == 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText() missing %q in:\n%s", want, out)
		}
	}
}

func TestToDOT(t *testing.T) {
	f := newFixture(t)
	dot := ToDOT(Build(f.eng, f.root))
	for _, want := range []string{
		"digraph overlay",
		`"a" -> "b"`,
		`label="a.leading == b.trailing + 12"`,
		`"b" [label="b", style="rounded,dashed"]`,
		`a.width == 100`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	f := newFixture(t)
	svg, err := RenderSVG(context.Background(), ToDOT(Build(f.eng, f.root)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatText, "text": FormatText, "dot": FormatDOT, "svg": FormatSVG}
	for in, want := range tests {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Error("ParseFormat(png) should fail")
	}
}

func TestRenderFormats(t *testing.T) {
	f := newFixture(t)
	ov := Build(f.eng, f.root)
	for _, tt := range []struct {
		format Format
		want   string
	}{
		{FormatText, "a.width == 100"},
		{FormatDOT, "digraph overlay"},
	} {
		out, err := Render(context.Background(), ov, tt.format)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), tt.want) {
			t.Errorf("Render(%s) missing %q", tt.format, tt.want)
		}
	}
}
