package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/poolsim/internal/config"
	"github.com/san-kum/poolsim/internal/kinetics"
	"github.com/san-kum/poolsim/internal/metrics"
	"github.com/san-kum/poolsim/internal/pools"
	"github.com/san-kum/poolsim/internal/sim"
	"github.com/san-kum/poolsim/internal/storage"
	"github.com/san-kum/poolsim/internal/viz"
)

const modelName = "two_pool"

var (
	dataDir    string
	configFile string
	preset     string
	integrator string
	dt         float64
	steps      int
	poolA      float64
	poolB      float64
	capacityA  float64
	capacityB  float64
	input      float64
	vmaxAB     float64
	kAB        float64
	vmaxBA     float64
	kBA        float64
	vmaxBO     float64
	kBO        float64
	follow     bool
	frameRate  int
	stepDelay  time.Duration
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolsim",
		Short: "two-pool saturable kinetics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".poolsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&follow, "follow", false, "redraw charts live instead of printing the step table")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --follow")
	runCmd.Flags().DurationVar(&stepDelay, "delay", 0, "pacing delay per step for --follow")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the per-step table")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with interactive live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trace as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored trace as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, listCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	defaults := pools.DefaultTwoPoolParams()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&poolA, "pool-a", config.DefaultPoolA, "initial amount in pool A")
	cmd.Flags().Float64Var(&poolB, "pool-b", config.DefaultPoolB, "initial amount in pool B")
	cmd.Flags().Float64Var(&capacityA, "capacity-a", defaults.CapacityA, "capacity of pool A")
	cmd.Flags().Float64Var(&capacityB, "capacity-b", defaults.CapacityB, "capacity of pool B")
	cmd.Flags().Float64Var(&input, "input", defaults.Input, "constant external inflow into A")
	cmd.Flags().Float64Var(&vmaxAB, "vmax-ab", defaults.VmaxAB, "vmax of flux A->B")
	cmd.Flags().Float64Var(&kAB, "k-ab", defaults.KAB, "affinity constant of flux A->B")
	cmd.Flags().Float64Var(&vmaxBA, "vmax-ba", defaults.VmaxBA, "vmax of flux B->A")
	cmd.Flags().Float64Var(&kBA, "k-ba", defaults.KBA, "affinity constant of flux B->A")
	cmd.Flags().Float64Var(&vmaxBO, "vmax-bo", defaults.VmaxBO, "vmax of outflow B->environment")
	cmd.Flags().Float64Var(&kBO, "k-bo", defaults.KBO, "affinity constant of outflow")
}

// resolveConfig layers preset, config file, and explicitly set flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("pool-a") {
		cfg.InitState.PoolA = poolA
	}
	if flags.Changed("pool-b") {
		cfg.InitState.PoolB = poolB
	}
	if flags.Changed("capacity-a") {
		cfg.Params.CapacityA = capacityA
	}
	if flags.Changed("capacity-b") {
		cfg.Params.CapacityB = capacityB
	}
	if flags.Changed("input") {
		cfg.Params.Input = input
	}
	if flags.Changed("vmax-ab") {
		cfg.Params.VmaxAB = vmaxAB
	}
	if flags.Changed("k-ab") {
		cfg.Params.KAB = kAB
	}
	if flags.Changed("vmax-ba") {
		cfg.Params.VmaxBA = vmaxBA
	}
	if flags.Changed("k-ba") {
		cfg.Params.KBA = kBA
	}
	if flags.Changed("vmax-bo") {
		cfg.Params.VmaxBO = vmaxBO
	}
	if flags.Changed("k-bo") {
		cfg.Params.KBO = kBO
	}

	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *pools.Network, kinetics.Integrator, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	net, err := pools.NewTwoPool(cfg.TwoPoolParams())
	if err != nil {
		return nil, nil, nil, err
	}

	integ, err := sim.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%v (available: %v)", err, sim.ListIntegrators())
	}

	return cfg, net, integ, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, net, integ, err := setup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	drv := sim.New(net, integ)
	drv.AddMetric(metrics.NewBalance(net.TotalInput(), net.ExternalFluxes()))
	drv.AddMetric(metrics.NewPeakFlux())

	poolNames, fluxNames := viz.SystemLabels(net)
	if follow {
		drv.AddObserver(viz.NewLiveRenderer(os.Stdout, poolNames, fluxNames, frameRate, stepDelay))
	} else if !quiet {
		drv.AddObserver(viz.NewStepLogger(os.Stdout, poolNames, fluxNames))
	}

	runCfg := kinetics.Config{Dt: cfg.Dt, Steps: cfg.Steps}
	start := time.Now()
	tr, runErr := drv.Run(context.Background(), kinetics.State(cfg.GetInitState()), runCfg)
	elapsed := time.Since(start)

	if tr == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Printf("\nhalted after %d records: %v\n", tr.Len(), runErr)
	}

	runID, err := st.Save(modelName, runCfg, cfg.Integrator, poolNames, fluxNames, drv.MetricValues(), tr)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("records: %d\n", tr.Len())
	fmt.Println("\nmetrics:")
	for name, val := range drv.MetricValues() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, net, integ, err := setup(cmd)
	if err != nil {
		return err
	}

	runCfg := kinetics.Config{Dt: cfg.Dt, Steps: cfg.Steps}
	if err := runCfg.Validate(); err != nil {
		return err
	}

	return viz.RunLive(net, integ, kinetics.State(cfg.GetInitState()), runCfg)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, meta, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("records: %d\n\n", tr.Len())
	fmt.Println(viz.RenderPanels(tr, meta.PoolNames, meta.FluxNames, 80, 10))

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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	csvPath := filepath.Join(dataDir, args[0], "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(os.Stdout, file)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, meta, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, tr)
}
