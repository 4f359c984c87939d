package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/grid"
	"github.com/san-kum/gravmap/internal/survey"
)

var (
	ErrLayerNotFound = errors.New("storage: layer not found")
	ErrCorruptLayer  = errors.New("storage: layer file does not match metadata")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type LayerMeta struct {
	Spacing        float64            `json:"spacing"`
	Height         float64            `json:"height"`
	File           string             `json:"file"`
	Rows           int                `json:"rows"`
	Cols           int                `json:"cols"`
	PotentialRange grid.Range         `json:"potential_range"`
	EffectRange    grid.Range         `json:"effect_range"`
	Metrics        map[string]float64 `json:"metrics"`
}

type SheetMeta struct {
	Spacing        float64     `json:"spacing"`
	PotentialRange grid.Range  `json:"potential_range"`
	EffectRange    grid.Range  `json:"effect_range"`
	Layers         []LayerMeta `json:"layers"`
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Mass      float64        `json:"mass"`
	Location  gravity.Point3 `json:"location"`
	G         float64        `json:"g"`
	Heights   []float64      `json:"heights"`
	Spacings  []float64      `json:"spacings"`
	Extent    survey.Extent  `json:"extent"`
	Parallel  bool           `json:"parallel"`
	ElapsedMS float64        `json:"elapsed_ms"`
	Sheets    []SheetMeta    `json:"sheets"`
}

// Plan rebuilds the survey plan the run was produced from.
func (m *RunMetadata) Plan() survey.Plan {
	return survey.Plan{
		Anomaly:  gravity.Anomaly{Location: m.Location, Mass: m.Mass},
		G:        m.G,
		Heights:  m.Heights,
		Spacings: m.Spacings,
		Extent:   m.Extent,
		Parallel: m.Parallel,
	}
}

func (m *RunMetadata) layer(spacing, height float64) (*LayerMeta, bool) {
	for si := range m.Sheets {
		for li := range m.Sheets[si].Layers {
			l := &m.Sheets[si].Layers[li]
			if l.Spacing == spacing && l.Height == height {
				return l, true
			}
		}
	}
	return nil, false
}

func layerFile(spacing, height float64) string {
	return fmt.Sprintf("dx%g_z%g.csv", spacing, height)
}

// Save writes metadata.json and one CSV per layer into a new run directory.
// A failed save removes the partial directory.
func (s *Store) Save(report *survey.Report) (id string, err error) {
	now := time.Now()
	runID := "survey_" + now.Format("20060102_150405.000000")
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	plan := report.Plan
	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Mass:      plan.Anomaly.Mass,
		Location:  plan.Anomaly.Location,
		G:         plan.G,
		Heights:   plan.Heights,
		Spacings:  plan.Spacings,
		Extent:    plan.Extent,
		Parallel:  plan.Parallel,
		ElapsedMS: float64(report.Elapsed.Microseconds()) / 1000,
		Sheets:    make([]SheetMeta, 0, len(report.Sheets)),
	}

	for _, sheet := range report.Sheets {
		sm := SheetMeta{
			Spacing:        sheet.Spacing,
			PotentialRange: sheet.PotentialRange,
			EffectRange:    sheet.EffectRange,
			Layers:         make([]LayerMeta, 0, len(sheet.Layers)),
		}
		for _, l := range sheet.Layers {
			rows, cols := l.Shape()
			u, _ := l.Potential.Range()
			gz, _ := l.Effect.Range()
			lm := LayerMeta{
				Spacing:        l.Spacing,
				Height:         l.Height,
				File:           layerFile(l.Spacing, l.Height),
				Rows:           rows,
				Cols:           cols,
				PotentialRange: u,
				EffectRange:    gz,
				Metrics:        l.Metrics,
			}
			if err := writeLayer(filepath.Join(runDir, lm.File), l.Result); err != nil {
				return "", fmt.Errorf("write layer %s: %w", lm.File, err)
			}
			sm.Layers = append(sm.Layers, lm)
		}
		meta.Sheets = append(meta.Sheets, sm)
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeLayer(path string, res *grid.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "potential", "effect"}); err != nil {
		return err
	}
	for k := range res.X.Values {
		row := []string{
			formatFloat(res.X.Values[k]),
			formatFloat(res.Y.Values[k]),
			formatFloat(res.Potential.Values[k]),
			formatFloat(res.Effect.Values[k]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first. Directories without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadLayer rebuilds the sampled grid for one spacing and height of a run.
func (s *Store) LoadLayer(runID string, spacing, height float64) (*grid.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	lm, ok := meta.layer(spacing, height)
	if !ok {
		return nil, fmt.Errorf("%w: dx=%g z=%g in %s", ErrLayerNotFound, spacing, height, runID)
	}
	return s.readLayer(runID, lm)
}

func (s *Store) readLayer(runID string, lm *LayerMeta) (*grid.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, lm.File))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) != lm.Rows*lm.Cols+1 {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrCorruptLayer, lm.File, len(records)-1, lm.Rows*lm.Cols)
	}

	res := &grid.Result{
		Mesh: grid.Mesh{
			X: grid.NewField2D(lm.Rows, lm.Cols),
			Y: grid.NewField2D(lm.Rows, lm.Cols),
		},
		Z:         lm.Height,
		Potential: grid.NewField2D(lm.Rows, lm.Cols),
		Effect:    grid.NewField2D(lm.Rows, lm.Cols),
	}
	targets := []*grid.Field2D{res.X, res.Y, res.Potential, res.Effect}

	for k, record := range records[1:] {
		for c, field := range targets {
			v, err := strconv.ParseFloat(record[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %v", ErrCorruptLayer, lm.File, k+2, err)
			}
			field.Values[k] = v
		}
	}
	return res, nil
}

// LoadReport rebuilds a whole survey report from a saved run.
func (s *Store) LoadReport(runID string) (*survey.Report, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	report := &survey.Report{
		Plan:    meta.Plan(),
		Sheets:  make([]survey.Sheet, 0, len(meta.Sheets)),
		Elapsed: time.Duration(meta.ElapsedMS * float64(time.Millisecond)),
	}
	for _, sm := range meta.Sheets {
		sheet := survey.Sheet{
			Spacing:        sm.Spacing,
			PotentialRange: sm.PotentialRange,
			EffectRange:    sm.EffectRange,
			Layers:         make([]survey.Layer, 0, len(sm.Layers)),
		}
		for li := range sm.Layers {
			lm := &sm.Layers[li]
			res, err := s.readLayer(runID, lm)
			if err != nil {
				return nil, err
			}
			sheet.Layers = append(sheet.Layers, survey.Layer{
				Height:  lm.Height,
				Spacing: lm.Spacing,
				Metrics: lm.Metrics,
				Result:  res,
			})
		}
		report.Sheets = append(report.Sheets, sheet)
	}
	return report, nil
}
