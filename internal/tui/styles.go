package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	cell       lipgloss.Style
	cursor     lipgloss.Style
	markX      lipgloss.Style
	markO      lipgloss.Style
	status     lipgloss.Style
	winner     lipgloss.Style
	item       lipgloss.Style
	current    lipgloss.Style
	selected   lipgloss.Style
	pane       lipgloss.Style
	activePane lipgloss.Style
}

func defaultStyles() styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(0, 1)

	return styles{
		cell:       lipgloss.NewStyle().Width(3).Align(lipgloss.Center),
		cursor:     lipgloss.NewStyle().Width(3).Align(lipgloss.Center).Reverse(true),
		markX:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		markO:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Bold(true),
		status:     lipgloss.NewStyle().MarginBottom(1),
		winner:     lipgloss.NewStyle().MarginBottom(1).Bold(true).Foreground(lipgloss.Color("#CC0000")),
		item:       lipgloss.NewStyle(),
		current:    lipgloss.NewStyle().Bold(true),
		selected:   lipgloss.NewStyle().Reverse(true),
		pane:       pane,
		activePane: pane.BorderForeground(lipgloss.Color("#7D56F4")),
	}
}
