package main

import (
	"context"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/neoaces/arm/internal/automation"
)

var (
	sweepFrom    float32
	sweepTo      float32
	sweepN       int
	sweepWorkers int

	mcTrials  int
	mcPerturb float64
	mcSeed    int64
)

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	res, err := automation.RunScenario(cmdContext(cmd), scenario, cfg, log)
	if err != nil {
		return err
	}

	id, err := saveRun(cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("scenario %s: %d segments, %d steps, saved as %s\n", scenario.Name, len(scenario.Segments), res.StepsTaken, id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.Sweep{
		Currents: automation.Linspace(sweepFrom, sweepTo, sweepN),
		Duration: cfg.Duration,
		Workers:  sweepWorkers,
	}
	results, err := automation.RunSweep(cmdContext(cmd), sweep, cfg)
	if err != nil {
		return err
	}

	t := newTable("CURRENT (A)", "FINAL ω (rad/s)", "PEAK |ω|", "FINAL θ (rad)")
	finals := make([]float64, len(results))
	for i, r := range results {
		t.Row(
			fmt.Sprintf("%.2f", r.Current),
			fmt.Sprintf("%.4f", r.FinalVelocity),
			fmt.Sprintf("%.4f", r.PeakVelocity),
			fmt.Sprintf("%.4f", r.FinalAngle),
		)
		finals[i] = r.FinalVelocity
	}
	fmt.Println(t)

	if len(finals) > 1 {
		fmt.Println(asciigraph.Plot(finals,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("final ω vs current"),
		))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmdContext(cmd), &automation.MonteCarloConfig{
		Perturbation: mcPerturb,
		NumTrials:    mcTrials,
		Duration:     cfg.Duration,
		Seed:         mcSeed,
	}, cfg)
	if err != nil {
		return err
	}

	mean, lo, hi := automation.MonteCarloStats(results)
	fmt.Printf("%d trials, ±%.0f%% mass and length\n", len(results), mcPerturb*100)
	fmt.Printf("final ω: mean %.4f  min %.4f  max %.4f rad/s\n", mean, lo, hi)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
