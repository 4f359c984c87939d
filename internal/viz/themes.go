package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravmap/internal/grid"
)

// Colormap is a perceptual colour ramp sampled at evenly spaced stops.
type Colormap struct {
	Name  string
	Stops []string
}

var (
	Viridis = Colormap{
		Name: "viridis",
		Stops: []string{
			"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
			"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
		},
	}

	Magma = Colormap{
		Name: "magma",
		Stops: []string{
			"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
			"#e55064", "#fb8761", "#fec287", "#fcfdbf",
		},
	}

	Cividis = Colormap{
		Name: "cividis",
		Stops: []string{
			"#00224e", "#123570", "#3b496c", "#575d6d", "#707173",
			"#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838",
		},
	}

	// Retro uses the green phosphor palette of the terminal theme.
	Retro = Colormap{
		Name:  "retro",
		Stops: []string{"#001100", "#005500", "#00cc00", "#88ff88"},
	}
)

var colormaps = map[string]Colormap{
	Viridis.Name: Viridis,
	Magma.Name:   Magma,
	Cividis.Name: Cividis,
	Retro.Name:   Retro,
}

// GetColormap returns the named colormap, falling back to viridis.
func GetColormap(name string) Colormap {
	if cm, ok := colormaps[name]; ok {
		return cm
	}
	return Viridis
}

func ListColormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hex maps t in [0, 1] to a colour. t is clamped; NaN maps to the midpoint.
func (c Colormap) Hex(t float64) string {
	if math.IsNaN(t) {
		t = 0.5
	}
	t = math.Max(0, math.Min(1, t))

	n := len(c.Stops)
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return c.Stops[n-1]
	}
	frac := pos - float64(i)

	sr, sg, sb := parseHex(c.Stops[i])
	er, eg, eb := parseHex(c.Stops[i+1])
	r := int(math.Round(float64(sr) + frac*float64(er-sr)))
	g := int(math.Round(float64(sg) + frac*float64(eg-sg)))
	b := int(math.Round(float64(sb) + frac*float64(eb-sb)))
	return hexColor(r, g, b)
}

// Normalize maps v into [0, 1] over rng. A zero-width range maps to 0.5.
func Normalize(v float64, rng grid.Range) float64 {
	span := rng.Span()
	if span == 0 {
		return 0.5
	}
	return (v - rng.Min) / span
}

func (c Colormap) Color(v float64, rng grid.Range) lipgloss.Color {
	return lipgloss.Color(c.Hex(Normalize(v, rng)))
}
