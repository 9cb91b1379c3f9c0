package tui

import "github.com/charmbracelet/lipgloss"

// Palette in the slate/blue scheme of the rest of the toolchain.
const (
	colorFg      = "#F8FAFC" // Slate 50
	colorFgMuted = "#94A3B8" // Slate 400
	colorPrimary = "#3B82F6" // Blue 500
	colorAccent  = "#06B6D4" // Cyan 500
	colorSuccess = "#10B981" // Emerald 500
	colorError   = "#EF4444" // Red 500
	colorBorder  = "#334155" // Slate 700
	colorBgCard  = "#1E293B" // Slate 800
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBgCard)).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBgCard)).
			Padding(0, 1)

	suggestHintStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorPrimary))

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	loadingBubbleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorFgMuted)).
				Italic(true)

	errorBubbleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorError)).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(colorError)).
				Padding(0, 1)

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(colorBorder)).
			PaddingLeft(1)

	inlineChatStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(0, 1)

	errorModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(colorError)).
			Padding(1, 2)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted))
)
