package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Quit       key.Binding
	Run        key.Binding
	Suggest    key.Binding
	InlineChat key.Binding
	Mark       key.Binding
	Language   key.Binding
	FocusNext  key.Binding
	Help       key.Binding
	Escape     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "run code"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "get AI fix suggestion"),
		),
		InlineChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "chat about selection"),
		),
		Mark: key.NewBinding(
			key.WithKeys("ctrl+@"),
			key.WithHelp("ctrl+space", "anchor selection"),
		),
		Language: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "cycle language"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay / clear selection"),
		),
	}
}

func renderHelp(keys keyMap) string {
	var b strings.Builder

	b.WriteString(helpTitleStyle.Render("codebox help"))
	b.WriteString("\n\n")

	for _, binding := range []key.Binding{
		keys.Run, keys.Suggest, keys.Mark, keys.InlineChat,
		keys.Language, keys.FocusNext, keys.Escape, keys.Quit,
	} {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Render(binding.Help().Key),
			helpDescriptionStyle.Render(binding.Help().Desc)))
	}

	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  anchor a selection with ctrl+space, move the cursor to extend it,"))
	b.WriteString("\n")
	b.WriteString(helpDescriptionStyle.Render("  then ctrl+n opens a chat pinned to that snapshot of the code."))
	b.WriteString("\n")

	return b.String()
}

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary))

	helpDescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorFgMuted))
)
