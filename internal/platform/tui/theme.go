package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hex/internal/core"
)

// Theme contains the visual styles of every screen.
type Theme struct {
	// Board maps screen buffer colors to terminal styles.
	Board map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Board: map[core.Color]lipgloss.Style{
			core.ColorDefault:      lipgloss.NewStyle(),
			core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
			core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
			core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme. Stones stay apart by glyph,
// and highlights use bold instead of color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)
	for c := range theme.Board {
		theme.Board[c] = plain
	}
	theme.Board[core.ColorBrightRed] = bold
	theme.Board[core.ColorBrightBlue] = bold
	theme.Board[core.ColorBrightYellow] = bold.Underline(true)
	theme.Board[core.ColorGray] = lipgloss.NewStyle().Faint(true)

	theme.MenuTitle = bold
	theme.MenuItemNormal = plain
	theme.MenuItemActive = bold.Reverse(true)
	theme.MenuDescription = lipgloss.NewStyle().Faint(true)
	return theme
}

// ThemeByName returns a theme by its flag name: default or mono.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	default:
		return Theme{}, fmt.Errorf("tui: unknown theme %q (want default or mono)", name)
	}
}

// Global theme variable (can be changed at startup)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return theme
}
