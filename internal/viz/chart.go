package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rootlab/internal/scan"
)

const (
	DefaultChartWidth  = 80
	DefaultChartHeight = 12
)

// Chart plots f over g with the x axis as a second series. Undefined
// samples leave gaps.
func Chart(g scan.Grid, width, height int, caption string) string {
	if len(g.Samples) == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	ys := make([]float64, len(g.Samples))
	zero := make([]float64, len(g.Samples))
	valid := 0
	for i, s := range g.Samples {
		if s.Valid {
			ys[i] = s.Y
			valid++
		} else {
			ys[i] = math.NaN()
		}
	}
	if valid == 0 {
		return ""
	}

	return asciigraph.PlotMany([][]float64{ys, zero},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.DarkGray),
		asciigraph.Caption(caption),
	)
}
