package ui

import "github.com/charmbracelet/lipgloss"

// Colors adapt to light and dark terminals
var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor   = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	BorderColor    = lipgloss.AdaptiveColor{Light: "#DEE2E6", Dark: "#414868"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Width(10)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)
)
