package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neoaces/arm/internal/config"
	"github.com/neoaces/arm/internal/integrators"
)

var (
	dataDir      string
	configFile   string
	preset       string
	verbose      bool
	logFile      string
	dt           float32
	duration     float64
	current      float32
	integrator   string
	timestepMode string
	chainMode    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "armsim",
		Short:         "motor-driven arm dynamics simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&speedLimit, "speed-limit", 0, "report the fraction of frames under this joint speed (rad/s, 0 = off)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the arm live in the terminal with a control panel",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	poseCmd := &cobra.Command{
		Use:   "pose",
		Short: "run headless and write the final pose as svg",
		RunE:  runPose,
	}
	addSimFlags(poseCmd)
	poseCmd.Flags().StringVarP(&poseOut, "out", "o", "pose.svg", "output file")
	poseCmd.Flags().IntVar(&poseSize, "size", 400, "image width and height in pixels")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngDir, "png", "", "also write png plots to this directory")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	motorsCmd := &cobra.Command{
		Use:   "motors",
		Short: "list motor constants",
		RunE:  listMotors,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "play a scripted scenario and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSimFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "final velocity across a range of currents",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float32Var(&sweepFrom, "from", -20, "lowest current (A)")
	sweepCmd.Flags().Float32Var(&sweepTo, "to", 20, "highest current (A)")
	sweepCmd.Flags().IntVar(&sweepN, "n", 9, "number of currents")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 = unlimited)")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb base link mass and length and report the spread",
		RunE:  runMonteCarlo,
	}
	addSimFlags(mcCmd)
	mcCmd.Flags().IntVar(&mcTrials, "trials", 50, "number of trials")
	mcCmd.Flags().Float64Var(&mcPerturb, "perturb", 0.1, "relative perturbation")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 = time)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "step response and phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&phaseJoint, "joint", 0, "joint for the phase portrait")
	analyzeCmd.Flags().StringVar(&phaseSVG, "svg", "", "also write the phase portrait as SVG")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search the base gear ratio for the fastest move to a target angle",
		RunE:  runTune,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&tuneRatios, "ratios", []float64{4, 8, 16, 32, 64}, "gear ratios to try")
	tuneCmd.Flags().Float64SliceVar(&tuneCurrents, "currents", nil, "currents to try (default: --current only)")
	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 1, "target base angle (rad)")

	rootCmd.AddCommand(runCmd, liveCmd, poseCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		presetsCmd, motorsCmd, scenarioCmd, sweepCmd, mcCmd, analyzeCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float32Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Float32Var(&current, "current", config.DefaultCurrent, "commanded current (A)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().StringVar(&timestepMode, "timestep-mode", "single", "timestep mode (single, legacy)")
	cmd.Flags().StringVar(&chainMode, "chain-mode", "fixed", "chain mode (fixed, forward)")
}

// loadConfig resolves --config, then --preset, then defaults, and applies
// any simulation flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("current") {
		cfg.Current = current
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("timestep-mode") {
		cfg.TimestepMode = timestepMode
	}
	if flags.Changed("chain-mode") {
		cfg.ChainMode = chainMode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a development logger when verbose, otherwise a quiet
// production logger. toFile forces output to --log-file or nowhere, for the
// terminal UI.
func newLogger(toFile bool) (*zap.Logger, error) {
	var zc zap.Config
	if verbose {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	switch {
	case logFile != "":
		zc.OutputPaths = []string{logFile}
		zc.ErrorOutputPaths = []string{logFile}
	case toFile:
		return zap.NewNop(), nil
	}
	return zc.Build()
}
