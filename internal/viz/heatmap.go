package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravmap/internal/grid"
)

const cell = "██"

func stride(cols, maxCols int) int {
	if maxCols <= 0 || cols <= maxCols {
		return 1
	}
	return (cols + maxCols - 1) / maxCols
}

// Heatmap renders f as coloured cells over rng, the last row (largest y) on top.
// Fields wider than maxCols are decimated with a fixed stride on both axes.
func Heatmap(f *grid.Field2D, rng grid.Range, cm Colormap, maxCols int) string {
	if f.Rows == 0 || f.Cols == 0 {
		return ""
	}
	s := stride(f.Cols, maxCols)

	lines := make([]string, 0, f.Rows/s+1)
	for i := f.Rows - 1; i >= 0; i -= s {
		var b strings.Builder
		row := f.Row(i)
		for j := 0; j < f.Cols; j += s {
			b.WriteString(lipgloss.NewStyle().Foreground(cm.Color(row[j], rng)).Render(cell))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// HeatmapWidth is the printed width of Heatmap for a field with cols columns.
func HeatmapWidth(cols, maxCols int) int {
	s := stride(cols, maxCols)
	return (cols + s - 1) / s * lipgloss.Width(cell)
}

// ColorBar draws the colormap across width cells with the range limits underneath.
func ColorBar(rng grid.Range, cm Colormap, width int) string {
	if width < 2 {
		width = 2
	}
	var bar strings.Builder
	for k := 0; k < width; k++ {
		t := float64(k) / float64(width-1)
		bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cm.Hex(t))).Render("▀"))
	}

	lo := fmt.Sprintf("%.3e", rng.Min)
	hi := fmt.Sprintf("%.3e", rng.Max)
	gap := width - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	return bar.String() + "\n" + Subtle.Render(lo+strings.Repeat(" ", gap)+hi)
}
