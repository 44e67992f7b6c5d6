package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/neoaces/arm/internal/config"
	"github.com/neoaces/arm/internal/export"
	"github.com/neoaces/arm/internal/storage"
)

var pngDir string

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
	fmt.Fprintln(w, "ID\tTIME\tLINKS\tDURATION\tDT\tINTEG\tMODE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%s\t%s/%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Links,
			run.Duration,
			run.Dt,
			run.Integrator,
			run.TimestepMode,
			run.ChainMode,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("links: %d\n", meta.Links)
	fmt.Printf("samples: %d\n\n", len(states))

	joints := len(states[0]) / 2
	for j := 0; j < joints; j++ {
		for col, caption := range []string{"theta%d (rad)", "omega%d (rad/s)"} {
			data := make([]float64, len(states))
			for i := range states {
				data[i] = states[i][2*j+col]
			}
			fmt.Println(asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf(caption, j)),
			))
			fmt.Println()
		}
	}

	if pngDir != "" {
		paths, err := export.SaveRunPlots(pngDir, times, states)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println("wrote", p)
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func listPresets(cmd *cobra.Command, args []string) error {
	t := newTable("PRESET", "LINKS", "CURRENT", "DT", "TIME", "PROFILE", "MODES")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		t.Row(name,
			fmt.Sprint(len(c.Links)),
			fmt.Sprintf("%.1f A", c.Current),
			fmt.Sprintf("%.3f s", c.Dt),
			fmt.Sprintf("%.1f s", c.Duration),
			c.Profile.Kind,
			c.TimestepMode+"/"+c.ChainMode,
		)
	}
	fmt.Println(t)
	return nil
}

func listMotors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	t := newTable("MOTOR", "KT (N·m/A)", "KV", "R (Ω)", "V", "STALL (A)", "FREE SPEED")
	for _, typ := range cat.Types() {
		s, _ := cat.Lookup(typ)
		t.Row(string(s.Type),
			fmt.Sprintf("%.4f", s.Kt),
			fmt.Sprintf("%.0f", s.Kv),
			fmt.Sprintf("%.3f", s.R),
			fmt.Sprintf("%.1f", s.NominalVoltage),
			fmt.Sprintf("%.1f", s.StallCurrent()),
			fmt.Sprintf("%.0f", s.FreeSpeed()),
		)
	}
	fmt.Println(t)
	return nil
}
