package grid

import (
	"sort"
	"strings"

	"github.com/matzehuels/anchor/pkg/errors"
)

// Pattern classifies the gap slots of one axis. A true slot is free and
// absorbs leftover space; a false slot is fixed at the standard gap.
type Pattern struct {
	Leading  bool
	Center   bool
	Trailing bool
}

// Single-axis patterns.
var (
	PatternFill        = Pattern{}
	PatternSpread      = Pattern{Leading: true, Center: true, Trailing: true}
	PatternCenter      = Pattern{Leading: true, Trailing: true}
	PatternStart       = Pattern{Trailing: true}
	PatternEnd         = Pattern{Leading: true}
	PatternSides       = Pattern{Center: true}
	PatternStartSpread = Pattern{Center: true, Trailing: true}
	PatternEndSpread   = Pattern{Leading: true, Center: true}
)

// ParsePattern parses a three-slot pattern such as "_I_".
func ParsePattern(s string) (Pattern, error) {
	if len(s) != 3 {
		return Pattern{}, errors.New(errors.ErrCodeInvalidPacking, "axis pattern must be 3 slots long: %q", s)
	}
	if err := errors.ValidatePacking(s); err != nil {
		return Pattern{}, err
	}
	return Pattern{Leading: s[0] == '_', Center: s[1] == '_', Trailing: s[2] == '_'}, nil
}

// String renders the pattern in slot notation.
func (p Pattern) String() string {
	slot := func(free bool) byte {
		if free {
			return '_'
		}
		return 'I'
	}
	return string([]byte{slot(p.Leading), slot(p.Center), slot(p.Trailing)})
}

// Free reports whether gap slot i of n+1 slots is free, where n is the
// number of cells on the axis. Slot 0 is the leading gap and slot n the
// trailing gap.
func (p Pattern) Free(i, n int) bool {
	switch {
	case i == 0:
		return p.Leading
	case i == n:
		return p.Trailing
	default:
		return p.Center
	}
}

// Packing holds the horizontal and vertical patterns of a grid.
type Packing struct {
	X Pattern
	Y Pattern
}

// Named packings.
var (
	Fill           = Packing{X: PatternFill, Y: PatternFill}
	Spread         = Packing{X: PatternSpread, Y: PatternSpread}
	Center         = Packing{X: PatternCenter, Y: PatternCenter}
	Top            = Packing{X: PatternSpread, Y: PatternStart}
	Bottom         = Packing{X: PatternSpread, Y: PatternEnd}
	Leading        = Packing{X: PatternStart, Y: PatternSpread}
	Trailing       = Packing{X: PatternEnd, Y: PatternSpread}
	TopLeading     = Packing{X: PatternStart, Y: PatternStart}
	TopTrailing    = Packing{X: PatternEnd, Y: PatternStart}
	BottomLeading  = Packing{X: PatternStart, Y: PatternEnd}
	BottomTrailing = Packing{X: PatternEnd, Y: PatternEnd}
	CenterX        = Packing{X: PatternCenter, Y: PatternSpread}
	CenterY        = Packing{X: PatternSpread, Y: PatternCenter}
	Start          = Packing{X: PatternStart, Y: PatternStart}
	End            = Packing{X: PatternEnd, Y: PatternEnd}
	Sides          = Packing{X: PatternSides, Y: PatternSides}
	StartSpread    = Packing{X: PatternStartSpread, Y: PatternStartSpread}
	EndSpread      = Packing{X: PatternEndSpread, Y: PatternEndSpread}
)

// DefaultPacking spreads cells over the whole container.
var DefaultPacking = Spread

// packings lists the named packings; two-axis names come first so Name
// prefers them.
var packings = []struct {
	name string
	p    Packing
}{
	{"fill", Fill},
	{"spread", Spread},
	{"center", Center},
	{"top", Top},
	{"bottom", Bottom},
	{"leading", Leading},
	{"trailing", Trailing},
	{"top_leading", TopLeading},
	{"top_trailing", TopTrailing},
	{"bottom_leading", BottomLeading},
	{"bottom_trailing", BottomTrailing},
	{"center_x", CenterX},
	{"center_y", CenterY},
	{"start", Start},
	{"end", End},
	{"sides", Sides},
	{"start_spread", StartSpread},
	{"end_spread", EndSpread},
}

// ParsePacking parses "X Y" slot notation. A single pattern applies to the
// horizontal axis and leaves the vertical axis spread.
func ParsePacking(s string) (Packing, error) {
	if err := errors.ValidatePacking(s); err != nil {
		return Packing{}, err
	}
	x, _ := ParsePattern(s[:3])
	if len(s) == 3 {
		return Packing{X: x, Y: PatternSpread}, nil
	}
	y, _ := ParsePattern(s[4:])
	return Packing{X: x, Y: y}, nil
}

// LookupPacking resolves a packing by name ("top_leading", "TOP-LEADING")
// or by slot notation.
func LookupPacking(s string) (Packing, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, np := range packings {
		if np.name == key {
			return np.p, nil
		}
	}
	p, err := ParsePacking(strings.TrimSpace(s))
	if err != nil {
		return Packing{}, errors.Wrap(errors.ErrCodeInvalidPacking, err, "unknown packing %q", s)
	}
	return p, nil
}

// PackingNames returns the names accepted by LookupPacking, sorted.
func PackingNames() []string {
	names := make([]string, 0, len(packings))
	for _, np := range packings {
		names = append(names, np.name)
	}
	sort.Strings(names)
	return names
}

// String renders the packing in "X Y" slot notation.
func (p Packing) String() string {
	return p.X.String() + " " + p.Y.String()
}

// Name returns the first registered name of p, or its slot notation.
func (p Packing) Name() string {
	for _, np := range packings {
		if np.p == p {
			return np.name
		}
	}
	return p.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Packing) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are accepted.
func (p *Packing) UnmarshalText(b []byte) error {
	v, err := LookupPacking(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
