package dock

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/host/memory"
)

type fixture struct {
	host *memory.Host
	eng  *constraint.Engine
	root *memory.View
	v    *memory.View
	a    *memory.View
	b    *memory.View
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := memory.New()
	f := &fixture{
		host: h,
		eng:  constraint.New(h, constraint.WithLogger(log.New(io.Discard))),
		root: memory.NewView("root", memory.WithSize(400, 300)),
		v:    memory.NewView("v"),
		a:    memory.NewView("a"),
		b:    memory.NewView("b"),
	}
	f.root.AddSubview(f.v)
	f.root.AddSubview(f.a)
	f.root.AddSubview(f.b)
	return f
}

func rendered(cs constraint.Constraints) []string { return cs.Strings() }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDockRecipes(t *testing.T) {
	tests := []struct {
		name string
		run  func(d Dock) (constraint.Constraints, error)
		want []string
	}{
		{
			name: "all margin",
			run:  func(d Dock) (constraint.Constraints, error) { return d.All() },
			want: []string{
				"v.top == Margins.top",
				"v.bottom == Margins.bottom",
				"v.leading == Margins.leading",
				"v.trailing == Margins.trailing",
			},
		},
		{
			name: "all tight with constant",
			run:  func(d Dock) (constraint.Constraints, error) { return d.All(WithFit(Tight), WithConstant(10)) },
			want: []string{
				"v.top == root.top + 10",
				"v.bottom == root.bottom - 10",
				"v.leading == root.leading + 10",
				"v.trailing == root.trailing - 10",
			},
		},
		{
			name: "center with share",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Center(WithShareXY(0.5, 0.25)) },
			want: []string{
				"v.center_x == root.center_x",
				"v.center_y == root.center_y",
				"v.width == root.width * 0.5",
				"v.height == root.height * 0.25",
			},
		},
		{
			name: "sides safe",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Sides(WithFit(Safe)) },
			want: []string{
				"v.leading == Safe area.leading",
				"v.trailing == Safe area.trailing",
			},
		},
		{
			name: "vertical",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Vertical(WithFit(Tight)) },
			want: []string{"v.top == root.top", "v.bottom == root.bottom"},
		},
		{
			name: "top with share",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Top(WithFit(Tight), WithShare(0.2)) },
			want: []string{
				"v.top == root.top",
				"v.leading == root.leading",
				"v.trailing == root.trailing",
				"v.height == root.height * 0.2",
			},
		},
		{
			name: "bottom",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Bottom(WithFit(Tight)) },
			want: []string{"v.bottom == root.bottom", "v.leading == root.leading", "v.trailing == root.trailing"},
		},
		{
			name: "leading with share",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Leading(WithFit(Tight), WithShare(0.3)) },
			want: []string{
				"v.top == root.top",
				"v.bottom == root.bottom",
				"v.leading == root.leading",
				"v.width == root.width * 0.3",
			},
		},
		{
			name: "trailing",
			run:  func(d Dock) (constraint.Constraints, error) { return d.Trailing(WithFit(Tight)) },
			want: []string{"v.top == root.top", "v.bottom == root.bottom", "v.trailing == root.trailing"},
		},
		{
			name: "top leading",
			run:  func(d Dock) (constraint.Constraints, error) { return d.TopLeading(WithFit(Tight)) },
			want: []string{"v.top == root.top", "v.leading == root.leading"},
		},
		{
			name: "top trailing",
			run:  func(d Dock) (constraint.Constraints, error) { return d.TopTrailing(WithFit(Tight)) },
			want: []string{"v.top == root.top", "v.trailing == root.trailing"},
		},
		{
			name: "bottom leading",
			run:  func(d Dock) (constraint.Constraints, error) { return d.BottomLeading(WithFit(Tight)) },
			want: []string{"v.bottom == root.bottom", "v.leading == root.leading"},
		},
		{
			name: "bottom trailing with share",
			run:  func(d Dock) (constraint.Constraints, error) { return d.BottomTrailing(WithFit(Tight), WithShare(0.5)) },
			want: []string{
				"v.bottom == root.bottom",
				"v.trailing == root.trailing",
				"v.width == root.width * 0.5",
				"v.height == root.height * 0.5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cs, err := tt.run(New(f.eng, f.v))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rendered(cs); !equal(got, tt.want) {
				t.Errorf("constraints = %q, want %q", got, tt.want)
			}
			if got := len(f.host.Recorder().Active()); got != len(tt.want) {
				t.Errorf("active native constraints = %d, want %d", got, len(tt.want))
			}
		})
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name string
		run  func(f *fixture) (constraint.Constraints, error)
		want []string
	}{
		{
			name: "horizontal between padded",
			run: func(f *fixture) (constraint.Constraints, error) {
				return New(f.eng, f.v).HorizontalBetween(f.a, f.b, WithConstant(2))
			},
			want: []string{
				"v.leading == Margins.leading + 2",
				"v.trailing == Margins.trailing - 2",
				"v.top == a.bottom + 10",
				"v.bottom == b.top - 10",
			},
		},
		{
			name: "horizontal between tight",
			run: func(f *fixture) (constraint.Constraints, error) {
				return New(f.eng, f.v).HorizontalBetween(f.a, f.b, WithFit(Tight))
			},
			want: []string{
				"v.leading == root.leading",
				"v.trailing == root.trailing",
				"v.top == a.bottom",
				"v.bottom == b.top",
			},
		},
		{
			name: "vertical between padded",
			run: func(f *fixture) (constraint.Constraints, error) {
				return New(f.eng, f.v).VerticalBetween(f.a, f.b)
			},
			want: []string{
				"v.top == Margins.top",
				"v.bottom == Margins.bottom",
				"v.leading == a.trailing + 8",
				"v.trailing == b.leading - 8",
			},
		},
		{
			name: "vertical between tight",
			run: func(f *fixture) (constraint.Constraints, error) {
				return New(f.eng, f.v).VerticalBetween(f.a, f.b, WithFit(Tight), WithConstant(4))
			},
			want: []string{
				"v.top == root.top + 4",
				"v.bottom == root.bottom - 4",
				"v.leading == a.trailing + 4",
				"v.trailing == b.leading - 4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cs, err := tt.run(f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rendered(cs); !equal(got, tt.want) {
				t.Errorf("constraints = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDockWithoutSuperview(t *testing.T) {
	f := newFixture(t)
	orphan := memory.NewView("orphan")
	cs, err := New(f.eng, orphan).All()
	if !errors.Is(err, errors.ErrCodeNoSuperview) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeNoSuperview)
	}
	if cs != nil || len(f.host.Recorder().Handles()) != 0 {
		t.Error("failed recipe should create nothing")
	}
}

func TestDockRollback(t *testing.T) {
	f := newFixture(t)
	// The first two constraints succeed, the guide rejects baselines.
	g := f.eng.NewGuide(f.root)
	_, err := New(f.eng, f.v).VerticalBetween(f.a, g)
	if err != nil {
		t.Fatalf("guide leading should be accepted: %v", err)
	}

	before := len(f.host.Recorder().Active())
	_, err = NewAlign(f.eng, f.v).FirstBaseline(f.a, g)
	if !errors.Is(err, errors.ErrCodeGuideAttribute) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeGuideAttribute)
	}
	if got := len(f.host.Recorder().Active()); got != before {
		t.Errorf("active constraints = %d after rollback, want %d", got, before)
	}
	if got := len(f.eng.Constraints(f.v, constraint.Query{})); got != before {
		t.Errorf("registry holds %d constraints, want %d", got, before)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		opts []memory.Option
		want []string
	}{
		{"plain", []memory.Option{memory.WithPreferredSize(host.Size{Width: 40, Height: 20})}, []string{"v.width == 40", "v.height == 20"}},
		{"text", []memory.Option{memory.WithPreferredSize(host.Size{Width: 40, Height: 20}), memory.WithText("Done")}, []string{"v.width == 56", "v.height == 20"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			v := memory.NewView("v", tt.opts...)
			cs, err := New(f.eng, v).Fit()
			if err != nil {
				t.Fatal(err)
			}
			if got := rendered(cs); !equal(got, tt.want) {
				t.Errorf("constraints = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	f := newFixture(t)
	al := NewAlign(f.eng, f.v)

	last, err := al.CenterX(f.a, f.b)
	if err != nil {
		t.Fatal(err)
	}
	if got := last.String(); got != "v.center_x == b.center_x" {
		t.Errorf("last = %q", got)
	}

	last, err = al.Size(f.a)
	if err != nil {
		t.Fatal(err)
	}
	if got := last.String(); got != "v.height == a.height" {
		t.Errorf("Size last = %q", got)
	}

	last, err = al.TrailingPadding(f.a)
	if err != nil {
		t.Fatal(err)
	}
	if got := last.String(); got != "v.trailing == a.trailing + 8" {
		t.Errorf("TrailingPadding last = %q", got)
	}

	if got := len(f.eng.Constraints(f.v, constraint.Query{})); got != 5 {
		t.Errorf("registry holds %d constraints, want 5", got)
	}

	if _, err := al.Top(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Top() without others error = %v", err)
	}
}

func TestParseFit(t *testing.T) {
	tests := []struct {
		in      string
		want    Fit
		wantErr bool
	}{
		{"tight", Tight, false},
		{"margin", Margin, false},
		{"", Margin, false},
		{"safe", Safe, false},
		{"loose", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFit(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFit(%q) = %v, %v", tt.in, got, err)
		}
	}
}
