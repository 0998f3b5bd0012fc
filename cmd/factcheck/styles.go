package main

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#7D56F4"
	colorSupport = "#04B575"
	colorOppose  = "#FF5F5F"
	colorNeutral = "#A8A8A8"
	colorError   = "#FF0000"
	colorInfo    = "#626262"
	colorLink    = "#5FAFFF"
	colorBorder  = "#874BFD"
)

// styles is the terminal palette, bound to one renderer so output written to
// a pipe or a test buffer carries no escape codes.
type styles struct {
	Title   lipgloss.Style
	Verdict lipgloss.Style
	Heading lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Link    lipgloss.Style
	Box     lipgloss.Style
	Bars    map[string]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)),
		Verdict: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color(colorPrimary)),
		Heading: r.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1),
		Info: r.NewStyle().
			Foreground(lipgloss.Color(colorInfo)),
		Error: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError)),
		Link: r.NewStyle().
			Foreground(lipgloss.Color(colorLink)),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1),
		Bars: map[string]lipgloss.Style{
			"supporting": r.NewStyle().Foreground(lipgloss.Color(colorSupport)),
			"opposing":   r.NewStyle().Foreground(lipgloss.Color(colorOppose)),
			"neutral":    r.NewStyle().Foreground(lipgloss.Color(colorNeutral)),
		},
	}
}
