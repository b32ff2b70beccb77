package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	// Color palette using terminal colors for consistency
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"} // Green
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"} // Red
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"} // Magenta/Purple
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"} // Cyan
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"} // Gray
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"} // Yellow
	ColorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "4"} // Blue
	ColorDefault = lipgloss.AdaptiveColor{Light: "7", Dark: "7"} // White

	// Status icons
	IconSuccess = "✔"
	IconError   = "✘"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconRemove  = "−"
)

// Styles holds every style rendered through one Renderer
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Accent  lipgloss.Style

	Title       lipgloss.Style
	Bold        lipgloss.Style
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style
	TableBorder lipgloss.Style
}

// UI renders messages for one invocation. The color decision is fixed at
// construction and never read from process-wide state.
type UI struct {
	Out      io.Writer
	Err      io.Writer
	Colorize bool
	Styles   Styles

	renderer *lipgloss.Renderer
}

// StdoutIsTerminal is the default for --colorize
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New creates a UI writing to out and errOut.
// theme is "auto", "dark" or "light".
func New(out, errOut io.Writer, colorize bool, theme string) *UI {
	r := lipgloss.NewRenderer(out)
	if colorize {
		// Forced on even when out is not a terminal
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	switch theme {
	case "light":
		r.SetHasDarkBackground(false)
	case "dark":
		r.SetHasDarkBackground(true)
	default:
		// Auto: lipgloss detects automatically
	}

	u := &UI{Out: out, Err: errOut, Colorize: colorize, renderer: r}
	u.Styles = newStyles(r)
	return u
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Success: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Info:    r.NewStyle().Foreground(ColorInfo),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Warning: r.NewStyle().Foreground(ColorWarning).Bold(true),
		Accent:  r.NewStyle().Foreground(ColorAccent),

		Title:       r.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true),
		Bold:        r.NewStyle().Bold(true),
		TableHeader: r.NewStyle().Foreground(ColorPrimary).Bold(true).Align(lipgloss.Left),
		TableRow:    r.NewStyle().Foreground(ColorDefault),
		TableRowAlt: r.NewStyle().Foreground(ColorDefault).Faint(true),
		TableBorder: r.NewStyle().Foreground(ColorMuted),
	}
}

// FormatSuccess returns a success message with icon
func (u *UI) FormatSuccess(msg string) string {
	return u.Styles.Success.Render(IconSuccess + " " + msg)
}

// FormatError returns an error message with icon
func (u *UI) FormatError(msg string) string {
	return u.Styles.Error.Render(IconError + " " + msg)
}

// FormatInfo returns an info message with icon
func (u *UI) FormatInfo(msg string) string {
	return u.Styles.Info.Render(IconInfo + " " + msg)
}

// FormatWarning returns a warning message with icon
func (u *UI) FormatWarning(msg string) string {
	return u.Styles.Warning.Render(IconWarning + " " + msg)
}

// FormatTitle returns a formatted title
func (u *UI) FormatTitle(title string) string {
	return u.Styles.Title.Render(title)
}

// FormatMuted returns muted/subtle text
func (u *UI) FormatMuted(text string) string {
	return u.Styles.Muted.Render(text)
}

// RenderKeyValue renders a key-value pair
func (u *UI) RenderKeyValue(key, value string) string {
	return u.Styles.Accent.Render(key) + ": " + value
}
