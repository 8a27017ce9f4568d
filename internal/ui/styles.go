package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jiggak/waymenu/internal/config"
)

// Styles holds the lipgloss styles derived from style.jsonc.
type Styles struct {
	Prompt   lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds styles for r. The renderer must target the output the
// program draws on, which is not stdout when stdout is piped.
func NewStyles(r *lipgloss.Renderer, s config.Style) Styles {
	return Styles{
		Prompt: r.NewStyle().Foreground(lipgloss.Color(s.Prompt)).Bold(true),
		Text:   r.NewStyle().Foreground(lipgloss.Color(s.Text)),
		Dim:    r.NewStyle().Foreground(lipgloss.Color(s.Dim)).Italic(true),
		Selected: r.NewStyle().
			Foreground(lipgloss.Color(s.SelectedForeground)).
			Background(lipgloss.Color(s.SelectedBackground)).
			Bold(true),
		Error: r.NewStyle().Foreground(lipgloss.Color(s.Error)),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(s.Border)),
	}
}
