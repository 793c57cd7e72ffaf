package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for CLI output
type Theme struct {
	Primary color.Color // repository names
	Success color.Color // clean, in sync
	Error   color.Color // dirty working tree
	Warning color.Color // ahead/behind, unsynced branches
	Muted   color.Color // absent values
}

// Preset themes
var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Warning: lipgloss.Color("214"), // orange
		Muted:   lipgloss.Color("240"), // dark gray
	}

	// NoneTheme disables colors
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Warning: lipgloss.Color("#ffb86c"), // orange
		Muted:   lipgloss.Color("#6272a4"), // comment
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Warning: lipgloss.Color("#ebcb8b"), // nord13
		Muted:   lipgloss.Color("#4c566a"), // nord3
	}
)

var presets = map[string]*Theme{
	"default": &DefaultTheme,
	"none":    &NoneTheme,
	"dracula": &DraculaTheme,
	"nord":    &NordTheme,
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init activates the named preset. Unknown names select the default theme;
// colored=false forces [NoneTheme] regardless of name.
func Init(name string, colored bool) {
	theme := DefaultTheme
	if p, ok := presets[name]; ok {
		theme = *p
	}
	if !colored {
		theme = NoneTheme
	}
	currentTheme = theme
	applyTheme(theme)
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Success = t.Success
	Error = t.Error
	Warning = t.Warning
	Muted = t.Muted

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
}
