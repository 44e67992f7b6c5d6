package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SaveRunPlots writes velocity.png and angle.png for a run into dir, one
// line per joint. states rows are [theta0, omega0, theta1, omega1, ...].
func SaveRunPlots(dir string, times []float64, states [][]float64) ([]string, error) {
	if len(times) == 0 || len(times) != len(states) {
		return nil, fmt.Errorf("plot data invalid: %d times, %d states", len(times), len(states))
	}
	joints := len(states[0]) / 2
	if joints == 0 {
		return nil, fmt.Errorf("plot data invalid: no joints")
	}

	files := []struct {
		name, title, ylabel string
		col                 int
	}{
		{"velocity.png", "Joint velocity ω(t)", "ω (rad/s)", 1},
		{"angle.png", "Joint angle θ(t)", "θ (rad)", 0},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := plot.New()
		p.Title.Text = f.title
		p.X.Label.Text = "time (s)"
		p.Y.Label.Text = f.ylabel
		p.Add(plotter.NewGrid())

		for j := 0; j < joints; j++ {
			pts := make(plotter.XYs, len(times))
			for i := range times {
				pts[i].X = times[i]
				pts[i].Y = states[i][2*j+f.col]
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return paths, err
			}
			line.LineStyle.Width = vg.Points(1.5)
			line.LineStyle.Color = plotutil.Color(j)
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("joint %d", j), line)
		}
		p.Legend.Top = true

		path := filepath.Join(dir, f.name)
		if err := savePlotPNG(p, 8, 5, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
