package config

import "sort"

var Presets = map[string]*Config{
	"lab": DefaultConfig(),
	"shallow": {
		Mass: 1.0e7, Location: PointConfig{Z: -2}, G: 6.674e-11,
		Heights: []float64{0, 2, 5}, Spacings: []float64{1, 5},
		Extent: ExtentConfig{XMin: -20, XMax: 20, YMin: -20, YMax: 20},
		Output: OutputConfig{Theme: "viridis", Width: 41},
	},
	"deep": {
		Mass: 5.0e10, Location: PointConfig{Z: -500}, G: 6.674e-11,
		Heights: []float64{0, 100, 1000}, Spacings: []float64{50, 250},
		Extent: ExtentConfig{XMin: -2000, XMax: 2000, YMin: -2000, YMax: 2000},
		Output: OutputConfig{Theme: "viridis", Width: 41},
	},
	"void": {
		Mass: -2.0e7, Location: PointConfig{X: 20, Y: -30, Z: -15}, G: 6.674e-11,
		Heights: []float64{0, 10, 100}, Spacings: []float64{5, 25},
		Extent: ExtentConfig{XMin: -100, XMax: 100, YMin: -100, YMax: 100},
		Output: OutputConfig{Theme: "magma", Width: 41},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
