package page

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	brand   = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#6B7280")
	danger  = lipgloss.Color("#E53935")
	warning = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles a Terminal renders with.
type Styles struct {
	Heading lipgloss.Style
	Entry   lipgloss.Style
	ID      lipgloss.Style
	Card    lipgloss.Style
	Alert   lipgloss.Style
	Message lipgloss.Style
	Nav     lipgloss.Style
}

// NewStyles builds styles bound to w. With color false every style is plain.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return Styles{
			Heading: plain.Bold(true),
			Entry:   plain,
			ID:      plain,
			Card:    plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			Alert:   plain,
			Message: plain,
			Nav:     plain,
		}
	}
	return Styles{
		Heading: r.NewStyle().Bold(true).Foreground(brand),
		Entry:   r.NewStyle(),
		ID:      r.NewStyle().Foreground(muted),
		Card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(brand).Padding(0, 1),
		Alert:   r.NewStyle().Bold(true).Foreground(warning),
		Message: r.NewStyle().Foreground(danger),
		Nav:     r.NewStyle().Faint(true),
	}
}
