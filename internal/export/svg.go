package export

import (
	"fmt"
	"strings"

	"github.com/neoaces/arm/internal/arm"
)

var linkColors = []string{"#00d7ff", "#ff5f87", "#afff00", "#ffaf00", "#d787ff"}

// SegmentsSVG draws the arm pose. Segments are in pixels with y up; the base
// is centred in the image.
func SegmentsSVG(segments []arm.Segment, width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	cx, cy := float64(width)/2, float64(height)/2
	px := func(x, y float32) (float64, float64) {
		return cx + float64(x), cy - float64(y)
	}

	for i, s := range segments {
		x1, y1 := px(s.Start.X, s.Start.Y)
		x2, y2 := px(s.End.X, s.End.Y)
		color := linkColors[i%len(linkColors)]
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="4" stroke-linecap="round"/>
`, x1, y1, x2, y2, color)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#ffffff"/>
`, x1, y1)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// TrajectoryToSVG draws the path traced by a point, fitted to the image.
func TrajectoryToSVG(points [][2]float64, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
