package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/scan"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400

	curveColor   = "#00d7ff"
	axisColor    = "#5f5f5f"
	bracketColor = "#875fff"
	chordColor   = "#ffaf00"
	newtonColor  = "#5fff87"
)

type frame struct {
	minX, maxX, minY, maxY float64
	width, height          float64
}

func newFrame(g scan.Grid, width, height int) frame {
	fr := frame{minX: g.Domain.Min, maxX: g.Domain.Max, width: float64(width), height: float64(height)}
	fr.minY, fr.maxY = math.Inf(1), math.Inf(-1)
	for _, s := range g.Samples {
		if !s.Valid {
			continue
		}
		fr.minY = math.Min(fr.minY, s.Y)
		fr.maxY = math.Max(fr.maxY, s.Y)
	}
	if math.IsInf(fr.minY, 0) {
		fr.minY, fr.maxY = -1, 1
	}
	// keep y = 0 in view
	fr.minY = math.Min(fr.minY, 0)
	fr.maxY = math.Max(fr.maxY, 0)

	rangeY := fr.maxY - fr.minY
	if rangeY == 0 {
		rangeY = 1
	}
	fr.minY -= rangeY * 0.1
	fr.maxY += rangeY * 0.1
	if fr.maxX == fr.minX {
		fr.maxX = fr.minX + 1
	}
	return fr
}

func (f frame) px(x float64) float64 {
	return (x - f.minX) / (f.maxX - f.minX) * f.width
}

func (f frame) py(y float64) float64 {
	return f.height - (y-f.minY)/(f.maxY-f.minY)*f.height
}

// CurveSVG draws f over the result's coarse grid with the zero line, the
// bracket edges and both methods' roots.
func CurveSVG(res *roots.Result, width, height int) string {
	if res == nil || len(res.Grid.Samples) < 2 {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	fr := newFrame(res.Grid, width, height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<text x="8" y="18" fill="#d0d0d0" font-family="monospace" font-size="14">%s</text>
`, escape(res.Params.Describe())))

	zero := fr.py(0)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>
`, zero, width, zero, axisColor))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1" opacity="0.6">
`, bracketColor))
	for _, br := range res.Brackets {
		for _, x := range []float64{br.Lo, br.Hi} {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, fr.px(x), zero-6, fr.px(x), zero+6))
		}
	}
	sb.WriteString("</g>\n")

	for _, d := range curvePaths(res.Grid, fr) {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, curveColor, d))
	}

	writeMarkers(&sb, fr, res.ChordRoots, chordColor, 5)
	writeMarkers(&sb, fr, res.NewtonRoots, newtonColor, 3)

	sb.WriteString("</svg>")
	return sb.String()
}

// curvePaths splits the curve wherever f is undefined.
func curvePaths(g scan.Grid, fr frame) []string {
	var paths []string
	var cur strings.Builder
	for _, s := range g.Samples {
		if !s.Valid {
			if cur.Len() > 0 {
				paths = append(paths, cur.String())
				cur.Reset()
			}
			continue
		}
		if cur.Len() == 0 {
			cur.WriteString(fmt.Sprintf("M%.1f,%.1f", fr.px(s.X), fr.py(s.Y)))
		} else {
			cur.WriteString(fmt.Sprintf(" L%.1f,%.1f", fr.px(s.X), fr.py(s.Y)))
		}
	}
	if cur.Len() > 0 {
		paths = append(paths, cur.String())
	}
	return paths
}

func writeMarkers(sb *strings.Builder, fr frame, xs []float64, color string, r float64) {
	if len(xs) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1.5">
`, color))
	for _, x := range xs {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, fr.px(x), fr.py(0), r))
	}
	sb.WriteString("</g>\n")
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
