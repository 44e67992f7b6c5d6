package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neoaces/arm/internal/config"
	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/export"
	"github.com/neoaces/arm/internal/metrics"
	"github.com/neoaces/arm/internal/sim"
	"github.com/neoaces/arm/internal/storage"
	"github.com/neoaces/arm/internal/viz"
)

var (
	poseOut    string
	poseSize   int
	speedLimit float64
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	var extra []sim.Metric
	if speedLimit > 0 {
		extra = append(extra, metrics.NewSpeedLimit(speedLimit))
	}
	res, err := headless(cmd.Context(), cfg, log, extra...)
	if err != nil {
		return err
	}

	id, err := saveRun(cfg, res)
	if err != nil {
		return err
	}

	final := res.Final
	fmt.Printf("run %s: %d steps\n", id, res.StepsTaken)
	for _, c := range final.Couples {
		fmt.Printf("  link %d: θ=%.4f rad  ω=%.4f rad/s\n", c.Index, c.Angle, c.Velocity)
	}
	for _, name := range []string{"control_effort", "peak_velocity", "final_velocity", "kinetic_energy", "within_speed_limit"} {
		if v, ok := res.Metrics[name]; ok {
			fmt.Printf("  %-18s %.4f\n", name, v)
		}
	}
	return nil
}

func headless(ctx context.Context, cfg *config.Config, log *zap.Logger, extra ...sim.Metric) (*sim.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	a, err := cfg.BuildArm(log)
	if err != nil {
		return nil, err
	}
	profile, err := cfg.BuildProfile()
	if err != nil {
		return nil, err
	}

	log.Info("run",
		zap.Int("links", a.Len()),
		zap.Float32("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.String("integrator", cfg.Integrator),
	)
	return sim.Run(ctx, a, profile, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Scale: cfg.Scale}, append(metrics.Standard(), extra...)...)
}

func saveRun(cfg *config.Config, res *sim.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	name := preset
	if name == "" {
		name = "custom"
	}
	return st.Save(storage.RunInfo{
		Preset:       name,
		Motor:        string(cfg.Motor),
		Links:        len(cfg.Links),
		Dt:           float64(cfg.Dt),
		Duration:     cfg.Duration,
		Integrator:   cfg.Integrator,
		TimestepMode: cfg.TimestepMode,
		ChainMode:    cfg.ChainMode,
		Profile:      cfg.Profile.Kind,
	}, res)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := cfg.BuildArm(log)
	if err != nil {
		return err
	}

	panel := control.NewPanel(cfg.Settings(), cfg.Limits)
	engine := sim.NewEngine(a, panel, sim.WithScale(cfg.Scale), sim.WithLogger(log))

	var paused atomic.Bool
	loop := sim.NewLoop(engine, cfg.FPS, sim.WithPause(paused.Load), sim.WithLoopLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := loop.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("loop exited", zap.Error(err))
		}
	}()

	spec, err := cfg.Catalog()
	if err != nil {
		return err
	}
	m, err := spec.Lookup(cfg.Motor)
	if err != nil {
		return err
	}
	ratio := cfg.Links[0].Ratio
	vrange := float64(m.SteadyVelocity(cfg.Limits.Current.Max/4, ratio))

	model := viz.NewModel(engine, loop, &paused, viz.Options{
		Ratio:         ratio,
		VelocityRange: vrange,
		FPS:           cfg.FPS,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runPose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := headless(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	svg := export.SegmentsSVG(res.Final.Segments, poseSize, poseSize)
	if err := os.WriteFile(poseOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%.2fs, %d links)\n", poseOut, res.Final.Time, len(res.Final.Segments))
	return nil
}
