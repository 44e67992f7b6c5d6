package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(44)
	chartStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// Gauge renders value as a centred bar of the given width, filled from the
// middle towards the sign of value. limit is the full-scale magnitude.
func Gauge(value, limit float64, width int) string {
	if width < 3 {
		width = 3
	}
	half := width / 2
	n := 0
	if limit > 0 {
		n = int(float64(half)*min(1, abs(value)/limit) + 0.5)
	}

	left := strings.Repeat("─", half)
	right := strings.Repeat("─", width-half-1)
	fill := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)

	if value < 0 {
		left = strings.Repeat("─", half-n) + fill.Render(strings.Repeat("█", n))
	} else if n > 0 {
		right = fill.Render(strings.Repeat("█", min(n, width-half-1))) + strings.Repeat("─", max(0, width-half-1-n))
	}
	return left + "│" + right
}

func formatSI(v float64, unit string) string {
	return fmt.Sprintf("%8.3f %s", v, unit)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
