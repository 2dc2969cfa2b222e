package grid

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/anchor/pkg/errors"
)

func TestNamedPackings(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"fill", "III III"},
		{"spread", "___ ___"},
		{"center", "_I_ _I_"},
		{"top", "___ II_"},
		{"bottom", "___ _II"},
		{"leading", "II_ ___"},
		{"trailing", "_II ___"},
		{"top_leading", "II_ II_"},
		{"top_trailing", "_II II_"},
		{"bottom_leading", "II_ _II"},
		{"bottom_trailing", "_II _II"},
		{"center_x", "_I_ ___"},
		{"center_y", "___ _I_"},
		{"sides", "I_I I_I"},
		{"start_spread", "I__ I__"},
		{"end_spread", "__I __I"},
		{"TOP-LEADING", "II_ II_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupPacking(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("LookupPacking(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParsePacking(t *testing.T) {
	tests := []struct {
		in      string
		want    Packing
		wantErr bool
	}{
		{"_I_ _I_", Center, false},
		{"II_", Packing{X: PatternStart, Y: PatternSpread}, false},
		{"_x_ ___", Packing{}, true},
		{"_I__I_", Packing{}, true},
		{"", Packing{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePacking(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePacking(%q) error = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidPacking) {
			t.Errorf("ParsePacking(%q) code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParsePacking(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := LookupPacking("diagonal"); !errors.Is(err, errors.ErrCodeInvalidPacking) {
		t.Errorf("LookupPacking(diagonal) error = %v", err)
	}
}

func TestPackingName(t *testing.T) {
	if got := TopLeading.Name(); got != "top_leading" {
		t.Errorf("TopLeading.Name() = %q", got)
	}
	odd := Packing{X: PatternSides, Y: PatternFill}
	if got := odd.Name(); got != "I_I III" {
		t.Errorf("Name() = %q, want slot notation", got)
	}
	if names := PackingNames(); len(names) != 18 || names[0] != "bottom" {
		t.Errorf("PackingNames() = %v", names)
	}
}

func TestPackingJSON(t *testing.T) {
	var spec Spec
	if err := json.Unmarshal([]byte(`{"count": 3, "packing": "bottom_trailing"}`), &spec); err != nil {
		t.Fatal(err)
	}
	if spec.Packing != BottomTrailing {
		t.Errorf("Packing = %v, want %v", spec.Packing, BottomTrailing)
	}
	b, err := json.Marshal(spec.Packing)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"_II _II"` {
		t.Errorf("Marshal = %s", b)
	}
}

func TestPatternFree(t *testing.T) {
	p := PatternCenter
	n := 3
	want := []bool{true, false, false, true}
	for i, w := range want {
		if got := p.Free(i, n); got != w {
			t.Errorf("Free(%d, %d) = %v, want %v", i, n, got, w)
		}
	}
}
