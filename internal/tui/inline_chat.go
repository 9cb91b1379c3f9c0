package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codebox/internal/app"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
)

// inlineChat is the overlay for one ephemeral selection-scoped session. The
// session snapshot never changes; the overlay lives until esc closes it or a
// new one replaces it.
type inlineChat struct {
	session *app.InlineChatSession
	input   textinput.Model
	bubbles []Message
	waiting bool
}

func newInlineChat(session *app.InlineChatSession) *inlineChat {
	in := textinput.New()
	in.Placeholder = "Ask about this code..."
	in.CharLimit = 2000
	in.Focus()
	return &inlineChat{session: session, input: in}
}

// openInlineChat creates a session over the current selection. No selection,
// no session. An already-open overlay is replaced, not merged.
func (m *Model) openInlineChat() (tea.Model, tea.Cmd) {
	selection, anchor := m.selectionText()
	session, err := m.app.NewInlineChat(selection, anchor)
	if err != nil {
		m.statusLine = "select some code first (ctrl+space to anchor, move to extend)"
		return m, nil
	}
	if m.inline != nil {
		m.inline.session.Close()
	}
	m.inline = newInlineChat(session)
	m.source.Blur()
	m.stdin.Blur()
	return m, textinput.Blink
}

func (m *Model) handleInlineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.inline.session.Close()
		m.inline = nil
		m.markSet = false
		if m.focus == focusStdin {
			return m, m.stdin.Focus()
		}
		return m, m.source.Focus()

	case msg.Type == tea.KeyEnter:
		question := strings.TrimSpace(m.inline.input.Value())
		if question == "" || m.inline.waiting {
			return m, nil
		}
		m.inline.bubbles = append(m.inline.bubbles,
			Message{Role: app.RoleUser, Content: question},
			Message{Role: app.RoleAssistant, Loading: true})
		m.inline.waiting = true
		return m, tea.Batch(m.inlineAskCmd(m.inline.session, question), m.spinCmd())
	}

	var cmd tea.Cmd
	m.inline.input, cmd = m.inline.input.Update(msg)
	return m, cmd
}

func (m *Model) inlineAskCmd(session *app.InlineChatSession, question string) tea.Cmd {
	modelID := m.app.Config.Model
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		reply, err := session.Ask(ctx, question, modelID)
		return inlineReplyMsg{sessionID: session.ID(), reply: reply, err: err}
	}
}

// deliver resolves the overlay's loading bubble, dropping replies that
// belong to an already-replaced session.
func (c *inlineChat) deliver(msg inlineReplyMsg) {
	if msg.sessionID != c.session.ID() {
		return
	}
	c.waiting = false
	for i := len(c.bubbles) - 1; i >= 0; i-- {
		if !c.bubbles[i].Loading {
			continue
		}
		c.bubbles[i].Loading = false
		if msg.err != nil {
			c.bubbles[i].Failed = true
			c.bubbles[i].Content = "The assistant did not answer: " + msg.err.Error()
		} else {
			c.bubbles[i].Content = msg.reply
		}
		break
	}
	if msg.err == nil {
		c.input.Reset()
	}
}

func (c *inlineChat) view(width, spinnerPos int) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("chat about selection (line %d)", c.session.Anchor().Row+1)))
	b.WriteString("\n")
	b.WriteString(snippetStyle.Render(truncateLines(c.session.Snapshot(), 4)))
	b.WriteString("\n")
	for _, msg := range c.bubbles {
		switch {
		case msg.Loading:
			b.WriteString(loadingBubbleStyle.Render(spinner[spinnerPos] + " thinking..."))
		case msg.Failed:
			b.WriteString(errorBubbleStyle.Render(msg.Content))
		case msg.Role == app.RoleUser:
			b.WriteString(userBubbleStyle.Render(msg.Content))
		default:
			// Inline replies render verbatim, never as markup.
			b.WriteString(msg.Content)
		}
		b.WriteString("\n")
	}
	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter ask · esc close"))
	return inlineChatStyle.Width(width).Render(b.String())
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
