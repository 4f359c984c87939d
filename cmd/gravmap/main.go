package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravmap/internal/config"
	"github.com/san-kum/gravmap/internal/export"
	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/logging"
	"github.com/san-kum/gravmap/internal/storage"
	"github.com/san-kum/gravmap/internal/survey"
	"github.com/san-kum/gravmap/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	// Survey definition
	configFile string
	preset     string
	mass       float64
	xm, ym, zm float64
	gConst     float64
	heights    []float64
	spacings   []float64
	extent     float64
	parallel   bool
	workers    int
	// Single point / single layer
	px, py, pz float64
	height     float64
	spacing    float64
	// Output
	theme    string
	maxCols  int
	contours bool
	profile  bool
	save     bool
	svgDir   string
	jsonPath string
)

// main is the entry point for the gravmap CLI.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gravmap",
		Short:        "gravity field of a buried point mass",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(os.Stderr, logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravmap", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	pointCmd := &cobra.Command{
		Use:   "point",
		Short: "evaluate potential and vertical effect at one survey point",
		RunE:  evalPoint,
	}
	anomalyFlags(pointCmd)
	pointCmd.Flags().Float64Var(&px, "x", 0, "survey point x")
	pointCmd.Flags().Float64Var(&py, "y", 0, "survey point y")
	pointCmd.Flags().Float64Var(&pz, "z", 0, "survey point z")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "sample and render one layer",
		RunE:  sampleOne,
	}
	anomalyFlags(gridCmd)
	outputFlags(gridCmd)
	gridCmd.Flags().Float64Var(&height, "height", 0, "observation height z")
	gridCmd.Flags().Float64Var(&spacing, "dx", 5, "grid spacing")
	gridCmd.Flags().Float64Var(&extent, "extent", config.DefaultExtent, "half width of the square grid")
	gridCmd.Flags().BoolVar(&parallel, "parallel", false, "sample rows concurrently")
	gridCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "sample every spacing and height of a survey plan",
		RunE:  runSurvey,
	}
	anomalyFlags(surveyCmd)
	planFlags(surveyCmd)
	outputFlags(surveyCmd)
	surveyCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	outputFlags(showCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write one svg figure per layer of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgDir, "out", ".", "output directory")
	exportSVGCmd.Flags().StringVar(&theme, "theme", "viridis", "colormap")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export one layer of a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().Float64Var(&spacing, "dx", 5, "grid spacing of the layer")
	exportJSONCmd.Flags().Float64Var(&height, "height", 0, "observation height of the layer")
	exportJSONCmd.Flags().StringVar(&jsonPath, "out", "layer.json", "output file")

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "browse the layers of a saved run, or of a fresh survey",
		Args:  cobra.MaximumNArgs(1),
		RunE:  browse,
	}
	anomalyFlags(browseCmd)
	planFlags(browseCmd)
	browseCmd.Flags().StringVar(&theme, "theme", "viridis", "colormap")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list survey presets and colormaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s m=%.1e kg at (%g, %g, %g)\n", name, p.Mass, p.Location.X, p.Location.Y, p.Location.Z)
			}
			fmt.Println("colormaps:")
			for _, name := range viz.ListColormaps() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default survey config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(pointCmd, gridCmd, surveyCmd, listCmd, showCmd, exportSVGCmd, exportJSONCmd, browseCmd, presetsCmd, initCmd)
	return rootCmd
}

func anomalyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "anomaly mass (kg)")
	cmd.Flags().Float64Var(&xm, "xm", 0, "anomaly x")
	cmd.Flags().Float64Var(&ym, "ym", 0, "anomaly y")
	cmd.Flags().Float64Var(&zm, "zm", config.DefaultDepth, "anomaly z")
	cmd.Flags().Float64Var(&gConst, "g", gravity.DefaultG, "constant of gravitation")
}

func planFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&heights, "heights", config.DefaultHeights, "observation heights")
	cmd.Flags().Float64SliceVar(&spacings, "spacings", config.DefaultSpacings, "grid spacings")
	cmd.Flags().Float64Var(&extent, "extent", config.DefaultExtent, "half width of the square grid")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "sample rows concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
}

func outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", "viridis", "colormap")
	cmd.Flags().IntVar(&maxCols, "cols", 41, "max heatmap columns")
	cmd.Flags().BoolVar(&contours, "contours", false, "draw contour lines")
	cmd.Flags().BoolVar(&profile, "profile", false, "plot centre-row profiles")
}

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("xm") {
		cfg.Location.X = xm
	}
	if flags.Changed("ym") {
		cfg.Location.Y = ym
	}
	if flags.Changed("zm") {
		cfg.Location.Z = zm
	}
	if flags.Changed("g") {
		cfg.G = gConst
	}
	if flags.Changed("heights") {
		cfg.Heights = heights
	}
	if flags.Changed("spacings") {
		cfg.Spacings = spacings
	}
	if flags.Changed("extent") {
		cfg.Extent = config.ExtentConfig{XMin: -extent, XMax: extent, YMin: -extent, YMax: extent}
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Output.Theme = theme
	}
	if flags.Changed("cols") {
		cfg.Output.Width = maxCols
	}
	return cfg, nil
}

func evalPoint(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	field := gravity.Field{Anomaly: cfg.Anomaly(), G: cfg.G}
	x := gravity.Point3{X: px, Y: py, Z: pz}

	s, err := field.Evaluate(x)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "survey point\t%v\n", x)
	fmt.Fprintf(w, "anomaly\t%v\tm=%.4e kg\n", field.Anomaly.Location, field.Anomaly.Mass)
	fmt.Fprintf(w, "distance\t%.6g\n", x.Distance(field.Anomaly.Location))
	fmt.Fprintf(w, "U\t%.6e\n", s.Potential)
	fmt.Fprintf(w, "gz\t%.6e\n", s.Effect)
	return w.Flush()
}

func sampleOne(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Heights = []float64{height}
	cfg.Spacings = []float64{spacing}

	report, err := survey.Run(context.Background(), cfg.Plan())
	if err != nil {
		return err
	}
	renderReport(report, cfg)
	return nil
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	report, err := survey.Run(context.Background(), cfg.Plan())
	if err != nil {
		return err
	}

	if err := printSummary(report); err != nil {
		return err
	}
	fmt.Println()
	renderReport(report, cfg)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(report)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printSummary(report *survey.Report) error {
	a := report.Plan.Anomaly
	fmt.Printf("anomaly m=%.1e kg at %v, G=%g\n", a.Mass, a.Location, report.Plan.G)
	fmt.Printf("%d layers in %v\n\n", report.LayerCount(), report.Elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DX\tZ\tNODES\tU MIN\tU MAX\tGZ MIN\tGZ MAX\tGZ R1/2")
	for _, s := range report.Sheets {
		for _, l := range s.Layers {
			u, _ := l.Potential.Range()
			gz, _ := l.Effect.Range()
			fmt.Fprintf(w, "%g\t%g\t%d\t%.4e\t%.4e\t%.4e\t%.4e\t%.2f\n",
				l.Spacing, l.Height, l.NodeCount(), u.Min, u.Max, gz.Min, gz.Max,
				l.Metrics["gz_half_peak_radius"])
		}
	}
	return w.Flush()
}

func renderReport(report *survey.Report, cfg *config.Config) {
	cm := viz.GetColormap(cfg.Output.Theme)
	for _, s := range report.Sheets {
		for _, l := range s.Layers {
			fmt.Println(viz.RenderLayer(l, s, cm, cfg.Output.Width))
			if contours {
				fmt.Println(viz.RenderContours(l, s, 8, 40, 20))
			}
			if profile {
				fmt.Println(viz.RenderProfiles(l, 80))
			}
			fmt.Println()
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMASS\tLOCATION\tHEIGHTS\tSPACINGS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2e\t%v\t%v\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Location,
			run.Heights,
			run.Spacings,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	report, err := storage.New(dataDir).LoadReport(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Output.Theme = theme
	cfg.Output.Width = maxCols

	if err := printSummary(report); err != nil {
		return err
	}
	fmt.Println()
	renderReport(report, cfg)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	report, err := storage.New(dataDir).LoadReport(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		return err
	}

	cm := viz.GetColormap(theme)
	for _, s := range report.Sheets {
		for _, l := range s.Layers {
			base := fmt.Sprintf("dx%g_z%g", l.Spacing, l.Height)

			path := filepath.Join(svgDir, base+".svg")
			if err := os.WriteFile(path, []byte(export.LayerToSVG(l, s, cm, 8)), 0644); err != nil {
				return err
			}

			profilePath := filepath.Join(svgDir, base+"_profile.svg")
			svg := export.ProfileToSVG(l.Xs(), viz.CentreRow(l.Potential), 400, 200, "#31688e")
			if err := os.WriteFile(profilePath, []byte(svg), 0644); err != nil {
				return err
			}

			contourPath := filepath.Join(svgDir, base+"_contours.svg")
			canvas := viz.Contours(l.Potential, viz.ContourLevels(s.PotentialRange, 10), 60, 30)
			if err := os.WriteFile(contourPath, []byte(export.CanvasToSVG(canvas, 3, "#440154")), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	report, err := storage.New(dataDir).LoadReport(args[0])
	if err != nil {
		return err
	}

	_, l, ok := report.Layer(spacing, height)
	if !ok {
		return fmt.Errorf("%w: dx=%g z=%g", storage.ErrLayerNotFound, spacing, height)
	}

	if err := storage.ExportJSON(jsonPath, *l); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonPath)
	return nil
}

func browse(cmd *cobra.Command, args []string) error {
	var report *survey.Report
	var err error

	if len(args) == 1 {
		report, err = storage.New(dataDir).LoadReport(args[0])
	} else {
		var cfg *config.Config
		cfg, err = resolveConfig(cmd)
		if err != nil {
			return err
		}
		report, err = survey.Run(context.Background(), cfg.Plan())
	}
	if err != nil {
		return err
	}

	return viz.RunBrowser(report, viz.GetColormap(theme))
}
