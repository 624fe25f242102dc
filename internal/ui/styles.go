package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	TitleColor   = lipgloss.Color("#D8A24D") // Golden accent
	PlayingColor = lipgloss.Color("#1a9096") // Teal for the track line
	ErrorColor   = lipgloss.Color("#FF3333") // Red for errors
	SubtleColor  = lipgloss.Color("#666666") // Gray for secondary text
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TitleColor).
			MarginLeft(2)

	TrackStyle = lipgloss.NewStyle().
			Foreground(PlayingColor).
			Bold(true).
			MarginLeft(2)

	DetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			Italic(true).
			MarginLeft(2)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginLeft(2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1).
			MarginTop(1)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(TitleColor).
			Bold(true).
			Padding(1, 2)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Foreground(ErrorColor).
			Padding(1, 2).
			MarginTop(1).
			MarginLeft(2)
)
