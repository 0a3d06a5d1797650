package main

import "github.com/charmbracelet/lipgloss"

// Unified color palette
var (
	primaryColor        = lipgloss.Color("109")
	accentColor         = lipgloss.Color("171")
	barBackground       = lipgloss.Color("233")
	tabBackground       = lipgloss.Color("233")
	tabActiveBackground = lipgloss.Color("235")
	barColor            = lipgloss.NewStyle().Background(barBackground)
	mutedColor          = lipgloss.Color("239")
	subtleColor         = lipgloss.Color("244")
	warningColor        = lipgloss.Color("179")
	dangerColor         = lipgloss.Color("167")
	successColor        = lipgloss.Color("65")
	highlightColor      = lipgloss.Color("171")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(barBackground)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(barBackground)

	selectedStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	doneStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	countStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// Tab bar styles - minimal single-line tabs
	activeTabStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(tabActiveBackground).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Background(tabBackground)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Background(tabBackground)

	// Help bar styles - persistent bottom bar
	helpBarStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Background(barBackground)

	helpBarKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpBarDescStyle = lipgloss.NewStyle().
				Foreground(subtleColor)

	helpBarInfoStyle = lipgloss.NewStyle().
				Foreground(mutedColor)
)

// stateStyle maps a lifecycle state to its display style.
func stateStyle(s TaskState) lipgloss.Style {
	switch s {
	case StatePending:
		return countStyle
	case StateStarted:
		return warningStyle
	case StateInProgress:
		return cursorStyle
	default:
		return doneStyle
	}
}
