// Package styles provides shared lipgloss styles for mgit output.
//
// Colors and styles are package globals so that report lines, status
// tables and the ensure spinner all follow the configured theme. Call
// [Init] once after loading config.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette, replaced by Init
var (
	// Primary is the accent color for headers and the spinner
	Primary color.Color = lipgloss.Color("62")

	// Success marks ok reports and clean repos (green)
	Success color.Color = lipgloss.Color("82")

	// Warning marks suggestions and repos that need attention (orange)
	Warning color.Color = lipgloss.Color("214")

	// Error marks warn reports and failed syncs (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for category labels and secondary text
	Muted color.Color = lipgloss.Color("240")

	// Normal is the standard text color
	Normal color.Color = lipgloss.Color("252")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)

	// HeaderStyle renders table headers
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
)
