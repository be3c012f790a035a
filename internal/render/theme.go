package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette.
var (
	colorTitle   = lipgloss.Color("#2CD7C7")
	colorLabel   = lipgloss.Color("#20B9B4")
	colorValue   = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#2C4A54")
	colorSuccess = lipgloss.Color("#2CD7C7")
)

// styleFunc renders its arguments joined by spaces, like lipgloss.Style.Render.
type styleFunc func(strs ...string) string

func plainStyle(strs ...string) string {
	return strings.Join(strs, " ")
}

// theme holds the styles used by Formatter. Every style is applied to a
// single line only.
type theme struct {
	title   styleFunc
	label   styleFunc
	value   styleFunc
	muted   styleFunc
	success styleFunc
}

var plainTheme = theme{
	title:   plainStyle,
	label:   plainStyle,
	value:   plainStyle,
	muted:   plainStyle,
	success: plainStyle,
}

// newColorTheme builds styles bound to a renderer for w, so the color
// profile follows the destination rather than os.Stdout.
func newColorTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		title:   r.NewStyle().Bold(true).Foreground(colorTitle).Render,
		label:   r.NewStyle().Foreground(colorLabel).Render,
		value:   r.NewStyle().Foreground(colorValue).Render,
		muted:   r.NewStyle().Foreground(colorMuted).Render,
		success: r.NewStyle().Bold(true).Foreground(colorSuccess).Render,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether styled output should be written to f. Color
// is disabled by NO_COLOR, by TERM=dumb, and for non-terminals.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(f)
}
