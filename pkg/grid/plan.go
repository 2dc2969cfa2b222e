package grid

import (
	"math"

	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// DefaultGap is the standard gap between cells and around the grid.
const DefaultGap = 8

// MaxCells bounds the cell count and each fixed count of a grid.
const MaxCells = 10_000

// Spec is the input of a grid computation.
type Spec struct {
	Count   int     `json:"count" toml:"count"`
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	Packing Packing `json:"packing" toml:"packing"`
	Counts  Counts  `json:"counts" toml:"counts"`
	Gap     float64 `json:"gap" toml:"gap"`
	Border  float64 `json:"border" toml:"border"`
}

// Plan is a computed grid. Gaps are listed per axis from leading to
// trailing, so an axis with n cells has n+1 gaps.
type Plan struct {
	Count      int       `json:"count" bson:"count"`
	Columns    int       `json:"columns" bson:"columns"`
	Rows       int       `json:"rows" bson:"rows"`
	Cell       float64   `json:"cell" bson:"cell"`
	Width      float64   `json:"width" bson:"width"`
	Height     float64   `json:"height" bson:"height"`
	Gap        float64   `json:"gap" bson:"gap"`
	Border     float64   `json:"border" bson:"border"`
	Packing    string    `json:"packing" bson:"packing"`
	ColumnGaps []float64 `json:"column_gaps" bson:"column_gaps"`
	RowGaps    []float64 `json:"row_gaps" bson:"row_gaps"`
}

// Compute plans a grid for s.
func Compute(s Spec) (Plan, error) {
	if s.Count < 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidInput, "cell count cannot be negative: %d", s.Count)
	}
	if s.Count > MaxCells || s.Counts.Columns > MaxCells || s.Counts.Rows > MaxCells {
		return Plan{}, errors.New(errors.ErrCodeInvalidInput,
			"grids hold at most %d cells per count (count: %d, columns: %d, rows: %d)",
			MaxCells, s.Count, s.Counts.Columns, s.Counts.Rows)
	}
	for _, v := range []float64{s.Width, s.Height, s.Gap, s.Border} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Plan{}, errors.New(errors.ErrCodeInvalidInput,
				"grid sizes must be finite and non-negative (width: %v, height: %v, gap: %v, border: %v)",
				s.Width, s.Height, s.Gap, s.Border)
		}
	}

	p := Plan{
		Count:   s.Count,
		Width:   s.Width,
		Height:  s.Height,
		Gap:     s.Gap,
		Border:  s.Border,
		Packing: s.Packing.String(),
	}
	if s.Count == 0 {
		return p, nil
	}

	cols, rows, err := ResolveCounts(s.Count, s.Counts, s.Width, s.Height)
	if err != nil {
		return Plan{}, err
	}
	p.Columns, p.Rows = cols, rows

	cellW := (s.Width - 2*s.Border - float64(cols+1)*s.Gap) / float64(cols)
	cellH := (s.Height - 2*s.Border - float64(rows+1)*s.Gap) / float64(rows)
	p.Cell = math.Max(0, math.Min(cellW, cellH))

	p.ColumnGaps = distribute(s.Packing.X, cols, s.Width-2*s.Border, p.Cell, s.Gap)
	p.RowGaps = distribute(s.Packing.Y, rows, s.Height-2*s.Border, p.Cell, s.Gap)
	return p, nil
}

// distribute sizes the n+1 gaps of one axis. Leftover space is shared
// equally by the free slots; without free slots every gap stays at gap and
// the leftover remains after the last cell.
func distribute(pat Pattern, n int, size, cell, gap float64) []float64 {
	gaps := make([]float64, n+1)
	free := 0
	for i := range gaps {
		gaps[i] = gap
		if pat.Free(i, n) {
			free++
		}
	}
	rest := size - float64(n)*cell - float64(n+1)*gap
	if free == 0 || rest <= 0 {
		return gaps
	}
	share := rest / float64(free)
	for i := range gaps {
		if pat.Free(i, n) {
			gaps[i] += share
		}
	}
	return gaps
}

// Capacity returns the number of cells in the grid.
func (p Plan) Capacity() int { return p.Columns * p.Rows }

// Slack returns the number of unused cells.
func (p Plan) Slack() int { return p.Capacity() - p.Count }

// Frame returns the frame of cell i in container coordinates. Cells fill
// rows first. The second result is false for indexes outside the grid.
func (p Plan) Frame(i int) (host.Rect, bool) {
	if i < 0 || i >= p.Capacity() {
		return host.Rect{}, false
	}
	col, row := i%p.Columns, i/p.Columns
	return host.Rect{
		X:      offset(p.Border, p.ColumnGaps, p.Cell, col),
		Y:      offset(p.Border, p.RowGaps, p.Cell, row),
		Width:  p.Cell,
		Height: p.Cell,
	}, true
}

// Frames returns the frames of the first n cells, capped at the capacity.
func (p Plan) Frames(n int) []host.Rect {
	n = min(n, p.Capacity())
	if n <= 0 {
		return nil
	}
	out := make([]host.Rect, n)
	for i := range out {
		out[i], _ = p.Frame(i)
	}
	return out
}

func offset(border float64, gaps []float64, cell float64, k int) float64 {
	at := border
	for i := 0; i <= k; i++ {
		at += gaps[i]
	}
	return at + float64(k)*cell
}
