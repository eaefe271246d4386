package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - single cyan accent over dim grays, matching the
// spotlight look of the original.
const (
	ColorCyan     = "36"  // Primary accent: prompt, result numbers
	ColorWhite    = "255" // Filenames, headers
	ColorGray     = "245" // Secondary text
	ColorDarkGray = "238" // Paths, separators, hints
	ColorYellow   = "220" // Notices (no matches, invalid selection)
)

// Styles holds all session styles.
type Styles struct {
	Header   lipgloss.Style
	Prompt   lipgloss.Style
	Query    lipgloss.Style
	Number   lipgloss.Style
	Filename lipgloss.Style
	Path     lipgloss.Style
	Notice   lipgloss.Style
	Status   lipgloss.Style
	Hint     lipgloss.Style
}

// DefaultStyles returns styled components for color terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Query:    lipgloss.NewStyle().Bold(true),
		Number:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Filename: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Prompt:   lipgloss.NewStyle(),
		Query:    lipgloss.NewStyle(),
		Number:   lipgloss.NewStyle(),
		Filename: lipgloss.NewStyle(),
		Path:     lipgloss.NewStyle(),
		Notice:   lipgloss.NewStyle(),
		Status:   lipgloss.NewStyle(),
		Hint:     lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
