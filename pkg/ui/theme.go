package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the visual styling for the picker. Colors are adaptive so
// the widget reads correctly on both light and dark terminals.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor // checked marks, emphasis
	Secondary lipgloss.AdaptiveColor // expand indicators
	Muted     lipgloss.AdaptiveColor // branch glyphs, hints
	Highlight lipgloss.AdaptiveColor // partial marks

	Selected lipgloss.Style // cursor row
	Header   lipgloss.Style
	Status   lipgloss.Style
}

// DefaultTheme returns the standard styling bound to the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	primary := lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#58A6FF"}
	secondary := lipgloss.AdaptiveColor{Light: "#6639BA", Dark: "#BC8CFF"}
	muted := lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#484F58"}
	highlight := lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	return Theme{
		Renderer:  r,
		Primary:   primary,
		Secondary: secondary,
		Muted:     muted,
		Highlight: highlight,
		Selected:  r.NewStyle().Reverse(true),
		Header:    r.NewStyle().Foreground(primary).Bold(true),
		Status:    r.NewStyle().Foreground(muted),
	}
}
