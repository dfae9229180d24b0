package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/scan"
)

const nudge = 0.1

var paramNames = []string{"a", "b"}

// computedMsg carries the outcome of one engine call back into Update.
type computedMsg struct {
	a, b string
	res  *roots.Result
	zoom scan.Grid
	ok   bool
	err  error
}

type model struct {
	engine        *roots.Engine
	inputs        [2]string
	cursor        int
	editing       bool
	editBuf       string
	zoomed        bool
	styles        Styles
	result        *roots.Result
	zoom          scan.Grid
	hasZoom       bool
	err           error
	width, height int
}

// NewInteractiveApp starts with the given raw a and b and computes on Init.
func NewInteractiveApp(engine *roots.Engine, a, b string) *model {
	return &model{
		engine: engine,
		inputs: [2]string{a, b},
		styles: DefaultStyles(),
		width:  80, height: 24,
	}
}

func (m model) Init() tea.Cmd { return m.compute() }

func (m model) compute() tea.Cmd {
	engine, a, b := m.engine, m.inputs[0], m.inputs[1]
	return func() tea.Msg {
		msg := computedMsg{a: a, b: b}
		msg.res, msg.err = engine.Compute(a, b)
		if msg.err == nil {
			msg.zoom, msg.ok = engine.Zoom(msg.res)
		}
		return msg
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case computedMsg:
		// drop results for inputs that changed while computing
		if msg.a != m.inputs[0] || msg.b != m.inputs[1] {
			return m, nil
		}
		m.result, m.err = msg.res, msg.err
		m.zoom, m.hasZoom = msg.zoom, msg.ok
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.editing = false
			if strings.TrimSpace(m.editBuf) == "" || m.editBuf == m.inputs[m.cursor] {
				m.editBuf = ""
				return m, nil
			}
			m.inputs[m.cursor], m.editBuf = m.editBuf, ""
			return m, m.compute()
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == ',' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(paramNames)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, m.inputs[m.cursor]
	case "left", "h":
		return m.adjust(-nudge)
	case "right", "l":
		return m.adjust(nudge)
	case "z":
		m.zoomed = !m.zoomed
	case "t":
		m.styles = NewStyles(NextTheme(m.styles.Theme))
	}
	return m, nil
}

// adjust nudges the selected coefficient. Unparseable input is left alone.
func (m model) adjust(delta float64) (model, tea.Cmd) {
	p, err := roots.ParseParams(m.inputs[0], m.inputs[1])
	if err != nil {
		return m, nil
	}
	v := p.A
	if m.cursor == 1 {
		v = p.B
	}
	v += delta
	m.inputs[m.cursor] = strconv.FormatFloat(roundTo(v, 6), 'g', -1, 64)
	return m, m.compute()
}

func roundTo(v float64, digits int) float64 {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r
}

func (m model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString("\n  " + st.Title.Render("ROOTLAB") + "  " + st.Subtle.Render("f(x) = √(a·x) − cos(b·x)") + "\n")
	b.WriteString("  " + st.Separator(40) + "\n\n")

	for i, name := range paramNames {
		val := m.inputs[i]
		if m.editing && i == m.cursor {
			val = m.editBuf + "_"
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", st.Cursor.Render("▸"), st.Value.Render(name), st.Cursor.Render(fmt.Sprintf("%-12s", val))))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", st.Label.Render(name), st.Subtle.Render(fmt.Sprintf("%-12s", val))))
		}
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(ErrorPanel(m.err, st) + "\n")
	case m.result != nil:
		b.WriteString(m.plot() + "\n")
		b.WriteString(Summary(m.result, st) + "\n")
	default:
		b.WriteString(st.Subtle.Render("  computing…") + "\n")
	}

	b.WriteString("\n  " + st.KeyHints("j/k", "select", "enter", "edit", "h/l", "adjust", "z", "zoom", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (m model) plot() string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	g, title := m.result.Grid, "full window"
	if m.zoomed && m.hasZoom {
		g, title = m.zoom, "zoomed window"
	}
	c := NewCanvas(w, 8)
	c.PlotCurve(g, m.result.AllRoots)
	caption := fmt.Sprintf("%s [%.4f, %.4f]", title, g.Domain.Min, g.Domain.Max)
	return m.styles.Good.Render(c.String()) + "  " + m.styles.Subtle.Render(caption)
}

func RunInteractive(engine *roots.Engine, a, b string) error {
	_, err := tea.NewProgram(NewInteractiveApp(engine, a, b), tea.WithAltScreen()).Run()
	return err
}
