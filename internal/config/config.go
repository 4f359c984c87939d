package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/survey"
)

const (
	DefaultMass   = 1.0e7
	DefaultDepth  = -10.0
	DefaultExtent = 100.0
)

var (
	DefaultHeights  = []float64{0, 10, 100}
	DefaultSpacings = []float64{5, 25}
)

type Config struct {
	Mass     float64      `yaml:"mass"`
	Location PointConfig  `yaml:"location"`
	G        float64      `yaml:"g"`
	Heights  []float64    `yaml:"heights"`
	Spacings []float64    `yaml:"spacings"`
	Extent   ExtentConfig `yaml:"extent"`
	Parallel bool         `yaml:"parallel"`
	Workers  int          `yaml:"workers"`
	Output   OutputConfig `yaml:"output"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ExtentConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type OutputConfig struct {
	Theme string `yaml:"theme"`
	Width int    `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:     DefaultMass,
		Location: PointConfig{Z: DefaultDepth},
		G:        gravity.DefaultG,
		Heights:  append([]float64(nil), DefaultHeights...),
		Spacings: append([]float64(nil), DefaultSpacings...),
		Extent: ExtentConfig{
			XMin: -DefaultExtent, XMax: DefaultExtent,
			YMin: -DefaultExtent, YMax: DefaultExtent,
		},
		Output: OutputConfig{Theme: "viridis", Width: 41},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Anomaly() gravity.Anomaly {
	return gravity.Anomaly{
		Location: gravity.Point3{X: c.Location.X, Y: c.Location.Y, Z: c.Location.Z},
		Mass:     c.Mass,
	}
}

func (c *Config) Plan() survey.Plan {
	return survey.Plan{
		Anomaly:  c.Anomaly(),
		G:        c.G,
		Heights:  append([]float64(nil), c.Heights...),
		Spacings: append([]float64(nil), c.Spacings...),
		Extent: survey.Extent{
			XMin: c.Extent.XMin, XMax: c.Extent.XMax,
			YMin: c.Extent.YMin, YMax: c.Extent.YMax,
		},
		Parallel: c.Parallel,
		Workers:  c.Workers,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Heights = append([]float64(nil), c.Heights...)
	cp.Spacings = append([]float64(nil), c.Spacings...)
	return &cp
}
