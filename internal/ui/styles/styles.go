// Package styles provides shared lipgloss styles for CLI output.
//
// Colors come from the active [Theme]; call [Init] once after loading
// config and before rendering anything.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme
var (
	Primary color.Color = DefaultTheme.Primary
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Warning color.Color = DefaultTheme.Warning
	Muted   color.Color = DefaultTheme.Muted
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)
