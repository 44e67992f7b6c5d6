package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neoaces/arm/internal/analysis"
	"github.com/neoaces/arm/internal/export"
	"github.com/neoaces/arm/internal/metrics"
	"github.com/neoaces/arm/internal/optim"
	"github.com/neoaces/arm/internal/sim"
	"github.com/neoaces/arm/internal/storage"
)

var (
	phaseJoint int
	phaseSVG   string

	tuneRatios   []float64
	tuneCurrents []float64
	tuneTarget   float64
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	responses, err := analysis.JointResponses(times, states)
	if err != nil {
		return err
	}

	t := newTable("JOINT", "ω0", "ω∞", "τ (s)", "RISE (s)", "SETTLE (s)", "OVERSHOOT")
	for i, r := range responses {
		t.Row(
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", r.Initial),
			fmt.Sprintf("%.3f", r.Final),
			seconds(r.TimeConstant),
			seconds(r.RiseTime),
			seconds(r.SettlingTime),
			fmt.Sprintf("%.1f%%", r.Overshoot*100),
		)
	}
	fmt.Println(t)

	portrait := analysis.NewPhasePortrait(states, phaseJoint)
	fmt.Printf("\njoint %d phase portrait (θ across, ω up)\n", phaseJoint)
	fmt.Print(portrait.ASCII(60, 16))

	if phaseSVG != "" {
		pts := make([][2]float64, len(portrait.Points))
		for i, p := range portrait.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		svg := export.TrajectoryToSVG(pts, 600, 400, "#00d7ff")
		if svg == "" {
			return fmt.Errorf("joint %d: not enough samples for a phase plot", phaseJoint)
		}
		if err := os.WriteFile(phaseSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", phaseSVG)
	}
	return nil
}

func seconds(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	params := []optim.Param{{Name: optim.ParamRatio, Values: tuneRatios}}
	if len(tuneCurrents) > 0 {
		params = append(params, optim.Param{Name: optim.ParamCurrent, Values: tuneCurrents})
	}
	g := optim.NewGridSearch(log, params...)

	best, all, err := g.Search(cmdContext(cmd), cfg, func() sim.Metric {
		return metrics.NewTimeToAngle(tuneTarget)
	})
	if err != nil {
		return err
	}

	t := newTable("PARAMS", "TIME TO θ (s)")
	for _, c := range all {
		val := seconds(c.Value)
		switch {
		case c.Err != nil:
			val = "error: " + c.Err.Error()
		case math.IsInf(c.Value, 1):
			val = "not reached"
		}
		t.Row(formatParams(c.Params), val)
	}
	fmt.Println(t)
	fmt.Printf("best: %s reaches %.2f rad in %s s\n", formatParams(best.Params), tuneTarget, seconds(best.Value))
	return nil
}

func formatParams(p map[string]float64) string {
	var parts []string
	for _, name := range []string{optim.ParamRatio, optim.ParamCurrent} {
		if v, ok := p[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", name, v))
		}
	}
	return strings.Join(parts, " ")
}
