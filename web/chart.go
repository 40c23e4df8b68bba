package web

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/maxmalik/FORE/model"
)

const (
	chartWidth   = 320
	chartHeight  = 120
	chartPadding = 10
)

// handicapChart draws the handicap history as an inline SVG line chart,
// oldest on the left. A lower handicap is drawn lower down.
func handicapChart(points []model.HandicapData) template.HTML {
	if len(points) == 0 {
		return ""
	}

	lo, hi := points[0].Handicap, points[0].Handicap
	for _, p := range points[1:] {
		lo = min(lo, p.Handicap)
		hi = max(hi, p.Handicap)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	innerW := float64(chartWidth - 2*chartPadding)
	innerH := float64(chartHeight - 2*chartPadding)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="handicap-chart" viewBox="0 0 %d %d" role="img" aria-label="Handicap history">`, chartWidth, chartHeight)

	coords := make([]string, len(points))
	for i, p := range points {
		x := float64(chartPadding)
		if len(points) > 1 {
			x += innerW * float64(i) / float64(len(points)-1)
		} else {
			x += innerW / 2
		}
		y := float64(chartPadding) + innerH - innerH*(p.Handicap-lo)/span
		coords[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	if len(coords) > 1 {
		fmt.Fprintf(&sb, `<polyline fill="none" stroke="currentColor" stroke-width="2" points="%s"/>`, strings.Join(coords, " "))
	}
	for i, c := range coords {
		xy := strings.SplitN(c, ",", 2)
		fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="3"><title>%s: %.2f</title></circle>`,
			xy[0], xy[1], points[i].Date.Format("Jan 2, 2006"), points[i].Handicap)
	}
	sb.WriteString(`</svg>`)

	return template.HTML(sb.String())
}
