package attribute

import "testing"

func TestCatalogCoversNativeRange(t *testing.T) {
	all := All()
	if len(all) != 18 {
		t.Fatalf("All() returned %d attributes, want 18", len(all))
	}
	for i, a := range all {
		if a.Native() != i+1 {
			t.Errorf("All()[%d].Native() = %d, want %d", i, a.Native(), i+1)
		}
		back, ok := FromNative(a.Native())
		if !ok || back != a {
			t.Errorf("FromNative(%d) = %v, %v, want %v", a.Native(), back, ok, a)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		attr Attribute
		name string
		kind Kind
		axis Axis
		edge EdgeClass
	}{
		{None, "no_attribute", AnyKind, NoAxis, NoEdge},
		{Left, "left", Position, Horizontal, Absolute},
		{Top, "top", Position, Vertical, NoEdge},
		{Leading, "leading", Position, Horizontal, Relative},
		{Width, "width", Size, NoAxis, NoEdge},
		{Height, "height", Size, NoAxis, NoEdge},
		{CenterX, "center_x", Position, Horizontal, NoEdge},
		{FirstBaseline, "first_baseline", Position, Vertical, NoEdge},
		{RightMargin, "right_margin", Position, Horizontal, Absolute},
		{TrailingMargin, "trailing_margin", Position, Horizontal, Relative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Describe(tt.attr)
			if d.Name != tt.name || d.Kind != tt.kind || d.Axis != tt.axis || d.Edge != tt.edge {
				t.Errorf("Describe(%d) = %+v, want {%s %v %v %v}", tt.attr, d, tt.name, tt.kind, tt.axis, tt.edge)
			}
		})
	}
}

func TestDescribeUnknown(t *testing.T) {
	for _, a := range []Attribute{-1, 19, 100} {
		if d := Describe(a); d.Attribute != None {
			t.Errorf("Describe(%d) = %v, want None", a, d.Attribute)
		}
	}
	if _, ok := FromNative(42); ok {
		t.Error("FromNative(42) should fail")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Attribute
		ok    bool
	}{
		{"left", Left, true},
		{"CENTER_X", CenterX, true},
		{" leading_margin ", LeadingMargin, true},
		{"none", None, true},
		{"no_attribute", None, true},
		{"leading_padding", None, false},
		{"middle", None, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Parse(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGuideSupported(t *testing.T) {
	for _, a := range All() {
		want := a.Native() <= 10
		if got := a.GuideSupported(); got != want {
			t.Errorf("%v.GuideSupported() = %v, want %v", a, got, want)
		}
	}
}

func TestIsMargin(t *testing.T) {
	margins := map[Attribute]bool{
		LeftMargin: true, RightMargin: true, TopMargin: true,
		BottomMargin: true, LeadingMargin: true, TrailingMargin: true,
	}
	for _, a := range All() {
		if got := a.IsMargin(); got != margins[a] {
			t.Errorf("%v.IsMargin() = %v, want %v", a, got, margins[a])
		}
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		pad  Padding
		base Attribute
		side Side
		sign float64
	}{
		{LeftPadding, Left, SideLeading, -1},
		{RightPadding, Right, SideTrailing, 1},
		{TopPadding, Top, SideTop, -1},
		{BottomPadding, Bottom, SideBottom, 1},
		{LeadingPadding, Leading, SideLeading, -1},
		{TrailingPadding, Trailing, SideTrailing, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pad.String(), func(t *testing.T) {
			if tt.pad.Base() != tt.base || tt.pad.Side() != tt.side || tt.pad.Sign() != tt.sign {
				t.Errorf("%v = {%v %v %v}, want {%v %v %v}",
					tt.pad, tt.pad.Base(), tt.pad.Side(), tt.pad.Sign(), tt.base, tt.side, tt.sign)
			}
			got, ok := ParsePadding(tt.pad.String())
			if !ok || got != tt.pad {
				t.Errorf("ParsePadding(%q) = %v, %v", tt.pad.String(), got, ok)
			}
		})
	}

	if _, ok := ParsePadding("center_padding"); ok {
		t.Error("ParsePadding(center_padding) should fail")
	}
}
