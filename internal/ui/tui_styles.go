package ui

import "github.com/charmbracelet/lipgloss"

// tuiStyles are the Lip Gloss styles of the interactive view, derived
// from the current theme.
type tuiStyles struct {
	title, accent, muted, success, err, warn lipgloss.Style
	panel, box                               lipgloss.Style
	selected, header                         lipgloss.Style
}

func newTUIStyles(t Theme) tuiStyles {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return tuiStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.TitleColor),
		accent:   lipgloss.NewStyle().Foreground(t.AccentColor),
		muted:    lipgloss.NewStyle().Faint(true),
		success:  lipgloss.NewStyle().Foreground(t.SuccessColor),
		err:      lipgloss.NewStyle().Foreground(t.ErrorColor).Bold(true),
		warn:     lipgloss.NewStyle().Foreground(t.WarnColor),
		panel:    border,
		box:      border.BorderForeground(t.AccentColor),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.BorderColor).
			Bold(true),
	}
}
