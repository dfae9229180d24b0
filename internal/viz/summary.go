package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/rootlab/internal/roots"
)

const maxSummaryRows = 12

// Summary renders the result panel shown under the chart.
func Summary(res *roots.Result, st Styles) string {
	if res == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(st.Title.Render(res.Params.Describe()) + "\n")
	b.WriteString(field(st, "interval", fmt.Sprintf("[%.4f, %.4f]", res.Domain.Min, res.Domain.Max)))
	b.WriteString(field(st, "brackets", fmt.Sprintf("%d", len(res.Brackets))))
	b.WriteString(field(st, "roots", fmt.Sprintf("%d distinct", len(res.AllRoots))))

	for i, r := range res.AllRoots {
		if i == maxSummaryRows {
			b.WriteString(st.Subtle.Render(fmt.Sprintf("  … %d more", len(res.AllRoots)-i)) + "\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", st.Label.Render(fmt.Sprintf("x%-3d", i+1)), st.Value.Render(fmt.Sprintf("%.6f", r))))
	}

	b.WriteString("\n" + st.Header.Render("method diagnostics") + "\n")
	b.WriteString(methodRows(st, "chord", res.ChordRoots, res.ChordIterations, res.ChordResiduals))
	b.WriteString(methodRows(st, "newton", res.NewtonRoots, res.NewtonIterations, res.NewtonResiduals))

	if len(res.Pairs) > 0 {
		agreeing := 0
		worst := 0.0
		for _, p := range res.Pairs {
			if p.TooClose {
				agreeing++
			}
			if p.Difference > worst {
				worst = p.Difference
			}
		}
		agree := st.Good.Render(fmt.Sprintf("%d/%d pairs agree", agreeing, len(res.Pairs)))
		if agreeing < len(res.Pairs) {
			agree = st.Warn.Render(fmt.Sprintf("%d/%d pairs agree", agreeing, len(res.Pairs)))
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", agree, st.Label.Render(fmt.Sprintf("max |chord - newton| = %.2e", worst))))
	}

	if res.Warning != "" {
		b.WriteString("\n" + st.Warn.Render("! "+res.Warning) + "\n")
	}

	return st.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// ErrorPanel renders a failed computation in place of the summary.
func ErrorPanel(err error, st Styles) string {
	if err == nil {
		return ""
	}
	return st.Panel.Render(st.Bad.Render("error: ") + err.Error())
}

func field(st Styles, label, value string) string {
	return fmt.Sprintf("%s %s\n", st.Label.Render(fmt.Sprintf("%-9s", label)), st.Value.Render(value))
}

func methodRows(st Styles, name string, xs []float64, iters []int, residuals []float64) string {
	var b strings.Builder
	b.WriteString(st.Label.Render(fmt.Sprintf("%-7s", name)))
	if len(xs) == 0 {
		b.WriteString(st.Bad.Render(" no converged roots") + "\n")
		return b.String()
	}
	b.WriteString(st.Subtle.Render(fmt.Sprintf(" %d roots", len(xs))) + "\n")
	for i := range xs {
		if i == maxSummaryRows {
			b.WriteString(st.Subtle.Render(fmt.Sprintf("  … %d more", len(xs)-i)) + "\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			st.Value.Render(fmt.Sprintf("%12.6f", xs[i])),
			st.Label.Render(fmt.Sprintf("%4d it", iters[i])),
			st.Subtle.Render(fmt.Sprintf("f = %+.1e", residuals[i]))))
	}
	return b.String()
}
