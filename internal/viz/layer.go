package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravmap/internal/survey"
)

const (
	PotentialLabel = "Gravity Potential U"
	EffectLabel    = "Gravity Effect gz"
)

// Title names a panel the way the report figures do.
func Title(quantity string, l survey.Layer) string {
	return fmt.Sprintf("%s at z = %.0f m (dx = %g m)", quantity, l.Height, l.Spacing)
}

// RenderLayer draws the potential and effect heatmaps of one layer side by side,
// each coloured over its sheet-wide range.
func RenderLayer(l survey.Layer, s survey.Sheet, cm Colormap, maxCols int) string {
	w := HeatmapWidth(l.Potential.Cols, maxCols)

	left := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(Title(PotentialLabel, l)),
		Heatmap(l.Potential, s.PotentialRange, cm, maxCols),
		ColorBar(s.PotentialRange, cm, w),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(Title(EffectLabel, l)),
		Heatmap(l.Effect, s.EffectRange, cm, maxCols),
		ColorBar(s.EffectRange, cm, w),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, GlassPanel.Render(left), GlassPanel.Render(right))
}

// RenderContours draws iso-lines of both fields at n levels of the sheet ranges.
func RenderContours(l survey.Layer, s survey.Sheet, n, width, height int) string {
	u := Contours(l.Potential, ContourLevels(s.PotentialRange, n), width, height)
	gz := Contours(l.Effect, ContourLevels(s.EffectRange, n), width, height)

	left := lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render("U contours"), u.String())
	right := lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render("gz contours"), gz.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, GlassPanel.Render(left), GlassPanel.Render(right))
}

// RenderProfiles plots the centre-row profile of both fields.
func RenderProfiles(l survey.Layer, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		Profile(CentreRow(l.Potential), "U along centre row", width, 8),
		"",
		Profile(CentreRow(l.Effect), "gz along centre row", width, 8),
	)
}
