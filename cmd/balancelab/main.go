package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/balancelab/internal/analysis"
	"github.com/san-kum/balancelab/internal/bridge"
	"github.com/san-kum/balancelab/internal/challenge"
	"github.com/san-kum/balancelab/internal/config"
	"github.com/san-kum/balancelab/internal/export"
	"github.com/san-kum/balancelab/internal/metrics"
	"github.com/san-kum/balancelab/internal/model"
	"github.com/san-kum/balancelab/internal/sim"
	"github.com/san-kum/balancelab/internal/storage"
	"github.com/san-kum/balancelab/internal/tangible"
	"github.com/san-kum/balancelab/internal/tui"
)

var (
	dataDir  string
	dt       float64
	duration float64
	seed     int64
	columns  string
	initTilt float64
	// Mass placements as value@distance, repeatable
	massSpecs []string
	// Config file and preset name
	configFile string
	preset     string
	// Frame rate for live views
	frameRate int
	watch     bool
	// Settle metric threshold
	settleThreshold float64
	// Challenge options
	challengeSeed  int64
	challengeCount int
	showSolutions  bool
	// SVG export
	svgWidth  int
	svgHeight int
	svgOut    string
	// Device bridge
	serveAddr  string
	deviceMass float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "balancelab",
		Short: "see-saw torque simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive view when no command given
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			bm, err := buildModel(cfg)
			if err != nil {
				return err
			}
			return tui.Run(bm, cfg.Dt, frameRate)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".balancelab", "data directory")
	addScenarioFlags(rootCmd)
	rootCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless and store the result",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	runCmd.Flags().Float64Var(&settleThreshold, "settle-threshold", 0.01, "tilt threshold for settle time")
	runCmd.Flags().BoolVar(&watch, "watch", false, "render the run live in the terminal")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tilt and angular velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "tilt vs angular velocity phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the tilt signal",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the tilt trajectory as an SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (stdout if empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE:  listScenarioPresets,
	}

	challengeCmd := &cobra.Command{
		Use:   "challenge",
		Short: "generate balance challenges",
		RunE:  generateChallenges,
	}
	challengeCmd.Flags().Int64Var(&challengeSeed, "seed", time.Now().UnixNano(), "random seed")
	challengeCmd.Flags().IntVar(&challengeCount, "count", 5, "number of challenges")
	challengeCmd.Flags().BoolVar(&showSolutions, "solutions", false, "print solutions")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with interactive visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the tangible device bridge over websocket",
		RunE:  serveBridge,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8765", "listen address")
	serveCmd.Flags().Float64Var(&deviceMass, "mass", 5.0, "device-controlled mass in kg")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, challengeCmd,
		liveCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().StringVar(&columns, "columns", "", "column state: double | single | none")
	cmd.Flags().Float64Var(&initTilt, "tilt", 0, "initial tilt angle (radians)")
	cmd.Flags().StringArrayVar(&massSpecs, "mass", nil, "mass placement value@distance, repeatable")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

// resolveConfig builds the scenario from preset, config file, and
// flags, in that precedence order (flags win).
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, presetNames())
		}
		// Copy so flag overrides never touch the shared preset.
		c := *p
		c.Masses = append([]config.MassPlacement(nil), p.Masses...)
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if f := cmd.Flags().Lookup("time"); f != nil && f.Changed {
		cfg.Duration = duration
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("columns") {
		cfg.ColumnState = columns
	}
	if cmd.Flags().Changed("tilt") {
		cfg.InitTilt = initTilt
	}
	for _, spec := range massSpecs {
		p, err := parseMassSpec(spec)
		if err != nil {
			return nil, err
		}
		cfg.Masses = append(cfg.Masses, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseMassSpec parses "value@distance", e.g. "5@-1.25".
func parseMassSpec(spec string) (config.MassPlacement, error) {
	parts := strings.SplitN(spec, "@", 2)
	if len(parts) != 2 {
		return config.MassPlacement{}, fmt.Errorf("invalid mass spec %q, want value@distance", spec)
	}
	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return config.MassPlacement{}, fmt.Errorf("invalid mass value in %q: %w", spec, err)
	}
	distance, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return config.MassPlacement{}, fmt.Errorf("invalid mass distance in %q: %w", spec, err)
	}
	return config.MassPlacement{Value: value, Distance: distance}, nil
}

// buildModel assembles a balance model from a validated scenario.
func buildModel(cfg *config.Config) (*model.BalanceModel, error) {
	cs, err := config.ParseColumnState(cfg.ColumnState)
	if err != nil {
		return nil, err
	}

	bm := model.New()
	bm.ColumnState.Set(cs)

	for _, p := range cfg.Masses {
		m := model.NewMass(p.Value, bm.Plank.Pivot())
		bm.AddMass(m)
		bm.Plank.AddMassToSurfaceAt(m, p.Distance)
	}

	if cs == model.NoColumns && cfg.InitTilt != 0 {
		bm.Plank.SetTiltAngle(cfg.InitTilt)
	}
	return bm, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	bm, err := buildModel(cfg)
	if err != nil {
		return err
	}

	runner := sim.New(bm)
	runner.AddMetric(metrics.NewMaxTilt())
	runner.AddMetric(metrics.NewSettleTime(settleThreshold))
	runner.AddMetric(metrics.NewTorqueRMS())

	if watch {
		r := tui.NewRenderer(bm, 30)
		r.Start()
		defer r.Stop()
		runner.AddObserver(r)
	}

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		ValidateState: true,
	}

	fmt.Printf("running %s scenario...\n", cfg.Scenario)
	start := time.Now()

	result, err := runner.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	cs, _ := config.ParseColumnState(cfg.ColumnState)
	runID, err := st.Save(cfg.Scenario, cs.String(), simCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if len(result.Tilts) > 0 {
		fmt.Printf("final tilt: %+.6f rad\n", result.Tilts[len(result.Tilts)-1])
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tCOLUMNS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.ColumnState,
		)
	}

	return w.Flush()
}

func loadFrames(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", runID)
	}
	return meta, frames, nil
}

func framesToResult(frames []sim.Frame) *sim.Result {
	res := &sim.Result{}
	for _, f := range frames {
		res.Times = append(res.Times, f.Time)
		res.Tilts = append(res.Tilts, f.Tilt)
		res.Omegas = append(res.Omegas, f.Omega)
		res.Torques = append(res.Torques, f.Torque)
	}
	return res
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(frames))

	res := framesToResult(frames)

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{res.Tilts, "tilt (rad)"},
		{res.Omegas, "angular velocity (rad/s)"},
		{res.Torques, "net torque (N·m)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Println("x: tilt (rad), y: angular velocity (rad/s)")
	fmt.Println()

	portrait := analysis.PhasePortraitFromResult(framesToResult(frames))
	fmt.Println(portrait.ToASCII(70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	res := framesToResult(frames)

	_, mags, err := analysis.Spectrum(res.Tilts, meta.Dt)
	if err != nil {
		return err
	}
	plotData := mags
	if len(mags) >= 8 {
		plotData = mags[:len(mags)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("tilt spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, err := analysis.DominantFrequency(res.Tilts, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n", 1.0/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "tilt", "omega", "torque", "balanced"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.Tilt, 'f', 6, 64),
			strconv.FormatFloat(f.Omega, 'f', 6, 64),
			strconv.FormatFloat(f.Torque, 'f', 6, 64),
			strconv.FormatBool(f.Balanced),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Frames []sim.Frame          `json:"frames"`
	}{meta, frames}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, frames, err := loadFrames(args[0])
	if err != nil {
		return err
	}

	res := framesToResult(frames)
	svg := export.TiltSeriesToSVG(res.Times, res.Tilts, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func presetNames() []string {
	names := config.ListPresets()
	sort.Strings(names)
	return names
}

func listScenarioPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLUMNS\tMASSES\tDURATION")
	for _, name := range presetNames() {
		p := config.GetPreset(name)
		placements := make([]string, 0, len(p.Masses))
		for _, m := range p.Masses {
			placements = append(placements, fmt.Sprintf("%g@%g", m.Value, m.Distance))
		}
		cs := p.ColumnState
		if cs == "" {
			cs = "double"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\n", name, cs, strings.Join(placements, " "), p.Duration)
	}
	return w.Flush()
}

func generateChallenges(cmd *cobra.Command, args []string) error {
	g := challenge.NewGenerator(challengeSeed)

	for i := 0; i < challengeCount; i++ {
		c, err := g.Next()
		if err != nil {
			return err
		}

		fmt.Printf("challenge %d:\n", i+1)
		for _, p := range c.Fixed {
			side := "right"
			d := p.Distance
			if d < 0 {
				side = "left"
				d = -d
			}
			fmt.Printf("  fixed: %g kg at %.2f m %s of center\n", p.Value, d, side)
		}
		fmt.Printf("  place the %g kg mass to balance the plank\n", c.Movable)
		if showSolutions {
			fmt.Printf("  solution: %.2f m from center\n", c.Solution)
		}
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	bm, err := buildModel(cfg)
	if err != nil {
		return err
	}
	return tui.Run(bm, cfg.Dt, frameRate)
}

func serveBridge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	bm, err := buildModel(cfg)
	if err != nil {
		return err
	}

	ctrl := tangible.New(bm, deviceMass)
	srv := bridge.NewServer(bm, ctrl, cfg.Dt)
	return srv.ListenAndServe(serveAddr)
}
