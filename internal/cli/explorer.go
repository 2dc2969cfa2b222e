package cli

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/grid"
	"github.com/matzehuels/anchor/pkg/host"
	"github.com/matzehuels/anchor/pkg/host/memory"
)

// resizeStep is how far one arrow key press grows or shrinks the container.
const resizeStep = 20

const cellLabels = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	explorerFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	explorerEmpty = lipgloss.NewStyle().Foreground(colorDim)
	explorerCells = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(colorCyan),
		lipgloss.NewStyle().Foreground(colorGreen),
		lipgloss.NewStyle().Foreground(colorBlue),
		lipgloss.NewStyle().Foreground(colorYellow),
	}
)

// explorer is the bubbletea model behind "anchor grid --interactive". It
// keeps a live grid over an in-memory container: adding or removing cells
// re-plans through the grid, and resizing the container re-plans through the
// host's resize notification.
type explorer struct {
	eng       *constraint.Engine
	container *memory.View
	grid      *grid.Grid
	spec      grid.Spec

	packings []string
	packing  int // index into packings, -1 for a custom pattern
	added    int
	err      error

	termWidth int
}

func newExplorer(spec grid.Spec) (*explorer, error) {
	eng := constraint.New(memory.New(), constraint.WithLogger(log.New(io.Discard)))
	m := &explorer{
		eng:       eng,
		container: memory.NewView("container", memory.WithSize(spec.Width, spec.Height)),
		spec:      spec,
		packings:  grid.PackingNames(),
		termWidth: 80,
	}
	m.packing = slices.Index(m.packings, spec.Packing.Name())
	m.grid = m.newGrid(spec.Packing)

	cells := make([]host.View, spec.Count)
	for i := range cells {
		cells[i] = m.nextCell()
	}
	if _, err := m.grid.Add(cells...); err != nil {
		m.grid.Close()
		return nil, err
	}
	return m, nil
}

func (m *explorer) newGrid(p grid.Packing) *grid.Grid {
	return grid.New(m.eng, m.container,
		grid.WithPacking(p),
		grid.WithCounts(m.spec.Counts),
		grid.WithGap(m.spec.Gap),
		grid.WithBorder(m.spec.Border))
}

func (m *explorer) nextCell() host.View {
	v := memory.NewView(fmt.Sprintf("cell%d", m.added))
	m.added++
	return v
}

func (m *explorer) close() { m.grid.Close() }

func (m *explorer) Init() tea.Cmd { return nil }

func (m *explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "a", "+":
			_, m.err = m.grid.Add(m.nextCell())
		case "x", "-":
			m.removeCell()
		case "p":
			m.cyclePacking(1)
		case "P":
			m.cyclePacking(-1)
		case "left", "h":
			m.resize(-resizeStep, 0)
		case "right", "l":
			m.resize(resizeStep, 0)
		case "up", "k":
			m.resize(0, -resizeStep)
		case "down", "j":
			m.resize(0, resizeStep)
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
	}
	return m, nil
}

func (m *explorer) removeCell() {
	subviews := m.container.Subviews()
	if len(subviews) == 0 {
		return
	}
	last, ok := subviews[len(subviews)-1].(*memory.View)
	if !ok {
		m.err = fmt.Errorf("cannot remove cell of type %T", subviews[len(subviews)-1])
		return
	}
	last.RemoveFromSuperview()
	_, m.err = m.grid.Layout()
}

func (m *explorer) cyclePacking(step int) {
	n := len(m.packings)
	m.packing = ((m.packing+step)%n + n) % n
	p, err := grid.LookupPacking(m.packings[m.packing])
	if err != nil {
		m.err = err
		return
	}
	m.grid.Close()
	m.grid = m.newGrid(p)
	_, m.err = m.grid.Layout()
}

// resize changes the container frame; the grid follows through its resize
// listener.
func (m *explorer) resize(dw, dh float64) {
	f := m.container.Frame()
	f.Width = math.Max(0, f.Width+dw)
	f.Height = math.Max(0, f.Height+dh)
	m.container.SetFrame(f)
	m.err = m.grid.Err()
}

func (m *explorer) packingName() string {
	if m.packing < 0 {
		return m.grid.Plan().Packing
	}
	return m.packings[m.packing]
}

func (m *explorer) View() string {
	var b strings.Builder
	plan := m.grid.Plan()
	bounds := m.container.Bounds()

	b.WriteString(StyleTitle.Render("Grid Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("a/x add/remove  p/P packing  ←/→/↑/↓ resize  q quit"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s %s\n",
		StyleDim.Render("packing"), StyleValue.Render(m.packingName()),
		StyleDim.Render("size"), StyleValue.Render(fmt.Sprintf("%g × %g", bounds.Width, bounds.Height)),
		StyleDim.Render("grid"), StyleNumber.Render(fmt.Sprintf("%d × %d", plan.Columns, plan.Rows)),
		StyleDim.Render("cell"), StyleNumber.Render(fmt.Sprintf("%g", plan.Cell)))
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString(m.canvas(bounds))
	return b.String()
}

// canvas draws the container scaled to the terminal, one label per cell.
// Terminal cells are about twice as tall as wide.
func (m *explorer) canvas(bounds host.Rect) string {
	cols := min(m.termWidth-2, 100)
	if cols < 10 || bounds.Width <= 0 || bounds.Height <= 0 {
		return explorerFrame.Render(explorerEmpty.Render("(empty container)"))
	}
	sx := bounds.Width / float64(cols)
	sy := 2 * sx
	rows := max(1, min(40, int(math.Round(bounds.Height/sy))))

	owner := make([][]int, rows)
	for y := range owner {
		owner[y] = make([]int, cols)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, v := range m.container.Subviews() {
		f := v.Frame()
		x0, x1 := clampSpan(f.X/sx, f.MaxX()/sx, cols)
		y0, y1 := clampSpan(f.Y/sy, f.MaxY()/sy, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				owner[y][x] = i
			}
		}
	}

	lines := make([]string, rows)
	for y, row := range owner {
		var line strings.Builder
		for _, i := range row {
			if i < 0 {
				line.WriteString(explorerEmpty.Render("·"))
				continue
			}
			label := string(cellLabels[i%len(cellLabels)])
			line.WriteString(explorerCells[i%len(explorerCells)].Render(label))
		}
		lines[y] = line.String()
	}
	return explorerFrame.Render(strings.Join(lines, "\n"))
}

// clampSpan rounds [lo, hi) to character cells within [0, n), keeping at
// least one cell for a non-empty span.
func clampSpan(lo, hi float64, n int) (int, int) {
	a := max(0, min(n, int(math.Round(lo))))
	b := max(0, min(n, int(math.Round(hi))))
	if b <= a && hi > lo && a < n {
		b = a + 1
	}
	return a, b
}
