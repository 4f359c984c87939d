package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/gravmap/internal/survey"
)

type ExportData struct {
	Spacing   float64            `json:"spacing"`
	Height    float64            `json:"height"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	X         []float64          `json:"x"`
	Y         []float64          `json:"y"`
	Potential [][]float64        `json:"potential"`
	Effect    [][]float64        `json:"effect"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a layer as nested [row][col] arrays with its axes and metrics.
func ExportJSON(path string, l survey.Layer) error {
	rows, cols := l.Shape()
	data := ExportData{
		Spacing:   l.Spacing,
		Height:    l.Height,
		Rows:      rows,
		Cols:      cols,
		X:         l.Xs(),
		Y:         l.Ys(),
		Potential: make([][]float64, rows),
		Effect:    make([][]float64, rows),
		Metrics:   l.Metrics,
	}

	for i := 0; i < rows; i++ {
		data.Potential[i] = l.Potential.Row(i)
		data.Effect[i] = l.Effect.Row(i)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
