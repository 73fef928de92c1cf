package tui

import "github.com/charmbracelet/lipgloss"

// Color palette, DOS flavoured.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorScreen    = lipgloss.Color("19")  // EDIT.COM blue
)

// Styles for the console and the editor.
var (
	// TitleStyle renders the editor title bar.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(ColorScreen).
			Padding(0, 1)

	// BoxStyle frames the editor text area.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorSecondary)

	// PromptStyle is used for the console prompt.
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols for visual feedback.
const (
	SymbolCheck    = "✓"
	SymbolCross    = "✗"
	SymbolModified = "*"
)
