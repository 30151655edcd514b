// Package ui provides the visual styling for the recap studio.
// Violet/teal palette with light and dark variants.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recap/internal/channel"
)

var (
	// Light mode colors (default)
	LightBackground = lipgloss.Color("#f6f5f8")
	LightForeground = lipgloss.Color("#1d1833") // Deep violet
	LightPrimary    = lipgloss.Color("#5b4b8a") // Violet
	LightAccent     = lipgloss.Color("#14b8a6") // Teal
	LightSecondary  = lipgloss.Color("#e8e6f0")
	LightMuted      = lipgloss.Color("#9a93ad")
	LightBorder     = lipgloss.Color("#ddd9e8")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode colors
	DarkBackground = lipgloss.Color("#16121f")
	DarkForeground = lipgloss.Color("#ece9f1")
	DarkPrimary    = lipgloss.Color("#14b8a6") // Teal (flipped)
	DarkAccent     = lipgloss.Color("#8b7ab8") // Soft violet
	DarkSecondary  = lipgloss.Color("#211b30")
	DarkMuted      = lipgloss.Color("#6f6686")
	DarkBorder     = lipgloss.Color("#332a47")
	DarkCard       = lipgloss.Color("#1d1729")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e5484d")
	Success     = lipgloss.Color("#30a46c")
	Warning     = lipgloss.Color("#f5a623")
	Info        = lipgloss.Color("#0091ff")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFromName resolves a configured theme name. "auto" and unknown
// names fall through to terminal detection.
func ThemeFromName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background. COLORFGBG is the usual
// "foreground;background" pair; low background indices mean dark.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) >= 2 {
			if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("RECAP_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Panes
	PaneActive   lipgloss.Style
	PaneInactive lipgloss.Style
	PaneTitle    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Badge   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		PaneInactive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// StatusStyle maps a delivery status to its display style.
func (s Styles) StatusStyle(status channel.DeliveryStatus) lipgloss.Style {
	switch status {
	case channel.StatusSuccess:
		return s.Success
	case channel.StatusFailed:
		return s.Error
	case channel.StatusSkipped:
		return s.Warning
	case channel.StatusPending:
		return s.Info
	default:
		return s.Muted
	}
}

// StatusGlyph is the one-character marker for a delivery status.
func StatusGlyph(status channel.DeliveryStatus) string {
	switch status {
	case channel.StatusSuccess:
		return "✓"
	case channel.StatusFailed:
		return "✗"
	case channel.StatusSkipped:
		return "-"
	case channel.StatusPending:
		return "…"
	default:
		return " "
	}
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
