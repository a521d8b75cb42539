package output

import "charm.land/lipgloss/v2"

// Palette
var (
	colorSuccess = lipgloss.Color("82")  // green
	colorError   = lipgloss.Color("196") // red
	colorWarning = lipgloss.Color("214") // orange
	colorMuted   = lipgloss.Color("240") // dark gray
	colorInfo    = lipgloss.Color("244") // gray
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo).Italic(true)
)
