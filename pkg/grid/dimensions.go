package grid

import (
	"math"

	"github.com/matzehuels/anchor/pkg/errors"
)

// Dimensions returns the column and row counts for n cells in a container
// of the given size. The first floor/ceil combination of the ideal counts
// that holds n cells with the least slack wins. A container without a
// positive size is treated as square.
func Dimensions(n int, width, height float64) (columns, rows int) {
	if n <= 0 {
		return 0, 0
	}
	ratio := 1.0
	if width > 0 && height > 0 {
		ratio = width / height
	}
	idealX := math.Sqrt(float64(n) * ratio)
	idealY := math.Sqrt(float64(n) / ratio)

	rounds := [4][2]func(float64) float64{
		{math.Floor, math.Floor},
		{math.Floor, math.Ceil},
		{math.Ceil, math.Floor},
		{math.Ceil, math.Ceil},
	}
	best := -1
	for _, r := range rounds {
		x, y := int(r[0](idealX)), int(r[1](idealY))
		slack := x*y - n
		if slack < 0 {
			continue
		}
		if best < 0 || slack < best {
			best, columns, rows = slack, x, y
		}
	}
	return columns, rows
}

// Counts fixes the number of columns, rows or both. Zero leaves a count to
// be derived.
type Counts struct {
	Columns int `json:"columns,omitempty" toml:"columns" bson:"columns,omitempty"`
	Rows    int `json:"rows,omitempty" toml:"rows" bson:"rows,omitempty"`
}

// ResolveCounts settles the grid dimensions for n cells. Missing counts are
// searched with Dimensions when both are open, or derived from the fixed one.
// Fixed counts that cannot hold n cells fail with INSUFFICIENT_GRID_CAPACITY.
func ResolveCounts(n int, c Counts, width, height float64) (columns, rows int, err error) {
	if c.Columns < 0 || c.Rows < 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"grid counts cannot be negative (columns: %d, rows: %d)", c.Columns, c.Rows)
	}
	columns, rows = c.Columns, c.Rows
	switch {
	case columns == 0 && rows == 0:
		columns, rows = Dimensions(n, width, height)
	case columns == 0:
		columns = ceilDiv(n, rows)
	case rows == 0:
		rows = ceilDiv(n, columns)
	}
	if n > columns*rows {
		return 0, 0, errors.New(errors.ErrCodeInsufficientGrid,
			"fixed counts (columns: %d, rows: %d) cannot hold %d views", columns, rows, n)
	}
	return columns, rows, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
