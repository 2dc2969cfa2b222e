package overlay

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const swatch = "■"

// RenderText writes a terminal listing of ov: one section per view, one
// line per marker, with swatches in the marker colours.
func RenderText(w io.Writer, ov Overlay) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		styleHeader.Render("overlay "+ov.Root),
		styleDim.Render(fmt.Sprintf("(%gx%g, %d markers, %d connectors)",
			ov.Bounds.Width, ov.Bounds.Height, len(ov.Markers), len(ov.Connectors))))

	for _, v := range ov.Views {
		colors := ov.Colors[v]
		fmt.Fprintf(&b, "\n%s %s\n", styleHeader.Render(v), paletteRow(colors))
		for _, m := range ov.Markers {
			if m.Item != v || m.Other {
				continue
			}
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render(swatch)
			fmt.Fprintf(&b, "  %s %-30s %s\n", dot, m.Constraint,
				styleDim.Render(fmt.Sprintf("@ %g,%g %gx%g", m.Rect.X, m.Rect.Y, m.Rect.Width, m.Rect.Height)))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func paletteRow(cs Colors) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(swatch))
	}
	return strings.Join(parts, "")
}
