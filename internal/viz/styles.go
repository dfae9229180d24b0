package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the rendered form of a Theme.
type Styles struct {
	Theme  Theme
	Panel  lipgloss.Style
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Subtle lipgloss.Style
	Key    lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Bad    lipgloss.Style
	Cursor lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Value:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Subtle: lipgloss.NewStyle().Foreground(t.Muted),
		Key:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Good:   lipgloss.NewStyle().Foreground(t.Success),
		Warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Bad:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Cursor: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
	}
}

func DefaultStyles() Styles { return NewStyles(ThemeCyberpunk) }

// Separator draws a muted rule with a centred diamond.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

// KeyHints renders "key action" pairs in a single line.
func (s Styles) KeyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.Key.Render(pairs[i]) + s.Subtle.Render(" "+pairs[i+1]))
	}
	return b.String()
}
