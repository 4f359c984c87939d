package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravmap/internal/grid"
	"github.com/san-kum/gravmap/internal/survey"
	"github.com/san-kum/gravmap/internal/viz"
)

const (
	panelPad   = 40.0
	titleSpace = 30.0
	barHeight  = 14.0
	barSpace   = 50.0
)

func svgHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))
}

// LayerToSVG draws the potential and effect panels of one layer side by side.
// Both panels are coloured over the sheet ranges so layers of one spacing compare directly.
func LayerToSVG(l survey.Layer, s survey.Sheet, cm viz.Colormap, cellSize float64) string {
	rows, cols := l.Shape()
	if rows == 0 || cols == 0 {
		return ""
	}

	panelW := float64(cols) * cellSize
	panelH := float64(rows) * cellSize
	width := 2*panelW + 3*panelPad
	height := titleSpace + panelH + barSpace + panelPad

	var sb strings.Builder
	svgHeader(&sb, width, height)
	writeGradient(&sb, cm)

	panels := []struct {
		label string
		field *grid.Field2D
		rng   grid.Range
	}{
		{viz.PotentialLabel, l.Potential, s.PotentialRange},
		{viz.EffectLabel, l.Effect, s.EffectRange},
	}

	for p, panel := range panels {
		x0 := panelPad + float64(p)*(panelW+panelPad)
		y0 := titleSpace
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="12">%s</text>
`, x0, y0-10, viz.Title(panel.label, l)))
		writeCells(&sb, panel.field, panel.rng, cm, x0, y0, cellSize)
		writeMarkers(&sb, rows, cols, x0, y0, cellSize)
		writeColorBar(&sb, panel.rng, x0, y0+panelH+12, panelW)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeGradient(sb *strings.Builder, cm viz.Colormap) {
	sb.WriteString(`<defs><linearGradient id="cmap" x1="0" x2="1" y1="0" y2="0">`)
	n := len(cm.Stops)
	for i, c := range cm.Stops {
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s"/>`, float64(i)/float64(n-1), c))
	}
	sb.WriteString("</linearGradient></defs>\n")
}

// writeCells draws row 0 (smallest y) at the bottom of the panel.
func writeCells(sb *strings.Builder, f *grid.Field2D, rng grid.Range, cm viz.Colormap, x0, y0, size float64) {
	for i := 0; i < f.Rows; i++ {
		y := y0 + float64(f.Rows-1-i)*size
		for j, v := range f.Row(i) {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x0+float64(j)*size, y, size, size, cm.Hex(viz.Normalize(v, rng))))
		}
	}
}

func writeMarkers(sb *strings.Builder, rows, cols int, x0, y0, size float64) {
	arm := size * 0.15
	sb.WriteString(`<g stroke="#000000" stroke-width="0.5">` + "\n")
	for i := 0; i < rows; i++ {
		cy := y0 + float64(i)*size + size/2
		for j := 0; j < cols; j++ {
			cx := x0 + float64(j)*size + size/2
			sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>
`, cx-arm, cy-arm, cx+arm, cy+arm, cx-arm, cy+arm, cx+arm, cy-arm))
		}
	}
	sb.WriteString("</g>\n")
}

func writeColorBar(sb *strings.Builder, rng grid.Range, x0, y0, width float64) {
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#cmap)"/>
<text x="%.1f" y="%.1f" font-size="10">%.3e</text>
<text x="%.1f" y="%.1f" font-size="10" text-anchor="end">%.3e</text>
`, x0, y0, width, barHeight,
		x0, y0+barHeight+12, rng.Min,
		x0+width, y0+barHeight+12, rng.Max))
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, color))

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ProfileToSVG plots values against xs as a polyline.
func ProfileToSVG(xs, values []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(values) {
		return ""
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
