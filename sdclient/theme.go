package main

import (
	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	header    lipgloss.Style
	footer    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style

	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style

	good lipgloss.Style
	warn lipgloss.Style
	err  lipgloss.Style

	focused lipgloss.Style
	noStyle lipgloss.Style
}

func newTheme() *theme {
	return &theme{
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Underline(true),

		title:    lipgloss.NewStyle().Bold(true),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		value:    lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Reverse(true),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		good: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		focused: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		noStyle: lipgloss.NewStyle(),
	}
}
