package host

import "testing"

func TestRectAccessors(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"MaxX", r.MaxX(), 110},
		{"MaxY", r.MaxY(), 70},
		{"CenterX", r.CenterX(), 60},
		{"CenterY", r.CenterY(), 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		in   Insets
		want Rect
	}{
		{"uniform", Rect{0, 0, 100, 100}, UniformInsets(8), Rect{8, 8, 84, 84}},
		{"asymmetric", Rect{10, 10, 100, 60}, Insets{Top: 5, Leading: 2, Trailing: 3, Bottom: 1}, Rect{12, 15, 95, 54}},
		{"clamped", Rect{0, 0, 10, 10}, UniformInsets(20), Rect{20, 20, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Inset(tt.in); got != tt.want {
				t.Errorf("Inset() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRelationString(t *testing.T) {
	tests := map[Relation]string{
		LessOrEqual:    "<=",
		Equal:          "==",
		GreaterOrEqual: ">=",
	}
	for rel, want := range tests {
		if got := rel.String(); got != want {
			t.Errorf("Relation(%d).String() = %q, want %q", rel, got, want)
		}
	}
}
