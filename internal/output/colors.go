package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NoColor reports whether colored output is disabled, per the NO_COLOR
// convention (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

var (
	ColorMuted  = lipgloss.Color("#95A5A6") // gray
	ColorAccent = lipgloss.Color("#9B59B6") // purple
)

// Styles shared by commands that print their own structure, like the
// doctor report. Callers check NoColor before rendering with these.
var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// plainStyles strips the level colors for NO_COLOR mode.
func plainStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, style := range styles.Levels {
		styles.Levels[level] = style.UnsetForeground().UnsetBackground()
	}
	return styles
}
