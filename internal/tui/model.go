package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codebox/internal/app"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusSource focusArea = iota
	focusStdin
)

// Message is one visible bubble in the AI transcript.
type Message struct {
	Role    string
	Content string
	Loading bool
	Failed  bool
}

// Model is the bubbletea model for the whole editor: source/stdin panes,
// output pane, AI transcript, status line and the optional inline chat
// overlay. It is also the presenter the submission controller renders into.
type Model struct {
	app        *app.Application
	controller *app.SubmissionController

	source     textarea.Model
	stdin      textarea.Model
	output     viewport.Model
	transcript viewport.Model

	focus  focusArea
	width  int
	height int

	statusLine string
	outputText string
	loading    bool
	spinnerPos int

	markSet bool
	markRow int

	suggestion *app.SuggestionFlow
	messages   []Message
	inline     *inlineChat

	errTitle  string
	errDetail string
	showHelp  bool

	languages []app.Language
	langIndex int

	markdown *MarkdownRenderer
	keys     keyMap
}

type execResultMsg struct {
	result app.SubmissionResult
	err    error
}

type suggestionMsg struct {
	reply string
	err   error
}

type inlineReplyMsg struct {
	sessionID string
	reply     string
	err       error
}

type spinMsg struct{}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// New builds the editor model around an application.
func New(application *app.Application) *Model {
	src := textarea.New()
	src.Placeholder = "// write code here"
	src.CharLimit = 0
	src.SetWidth(70)
	src.SetHeight(20)
	src.Prompt = ""
	src.ShowLineNumbers = true
	src.Focus()

	in := textarea.New()
	in.Placeholder = "stdin"
	in.CharLimit = 0
	in.SetWidth(40)
	in.SetHeight(5)
	in.Prompt = ""

	langs := app.Languages()
	langIndex := 0
	for i, l := range langs {
		if l.ID == application.Config.LanguageID {
			langIndex = i
			break
		}
	}

	m := &Model{
		app:        application,
		source:     src,
		stdin:      in,
		output:     viewport.New(40, 8),
		transcript: viewport.New(40, 12),
		width:      100,
		height:     30,
		statusLine: "ready",
		languages:  langs,
		langIndex:  langIndex,
		markdown:   NewMarkdownRenderer(),
		keys:       defaultKeyMap(),
	}
	m.controller = app.NewSubmissionController(application.Exec, m, application.Logger)
	m.messages = append(m.messages, Message{
		Role:    app.RoleAssistant,
		Content: "Hi! Run your code with ctrl+r. If it fails to compile I can suggest a fix, and ctrl+n opens a chat about the selected lines.",
	})
	m.refreshTranscript()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case execResultMsg:
		if msg.err != nil {
			m.controller.HandleTransportError(msg.err)
		} else {
			m.controller.HandleResult(msg.result)
		}
		return m, nil

	case suggestionMsg:
		m.fillPlaceholder(msg.reply, msg.err)
		m.refreshTranscript()
		return m, nil

	case inlineReplyMsg:
		if m.inline != nil {
			m.inline.deliver(msg)
		}
		return m, nil

	case spinMsg:
		if m.loading || (m.inline != nil && m.inline.waiting) {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinner)
			return m, m.spinCmd()
		}
		return m, nil
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A visible error modal swallows the next keypress.
	if m.errTitle != "" {
		m.errTitle = ""
		m.errDetail = ""
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// The open overlay owns the keyboard until it is closed.
	if m.inline != nil {
		return m.handleInlineKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Run):
		return m.startRun()

	case key.Matches(msg, m.keys.Suggest):
		return m.requestSuggestion()

	case key.Matches(msg, m.keys.InlineChat):
		return m.openInlineChat()

	case key.Matches(msg, m.keys.Mark):
		m.markSet = true
		m.markRow = m.source.Line()
		m.statusLine = fmt.Sprintf("selection anchored at line %d", m.markRow+1)
		return m, nil

	case key.Matches(msg, m.keys.Language):
		m.langIndex = (m.langIndex + 1) % len(m.languages)
		m.app.Config.LanguageID = m.languages[m.langIndex].ID
		m.statusLine = "language: " + m.languages[m.langIndex].Label
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == focusSource {
			m.focus = focusStdin
			m.source.Blur()
			return m, m.stdin.Focus()
		}
		m.focus = focusSource
		m.stdin.Blur()
		return m, m.source.Focus()

	case key.Matches(msg, m.keys.Escape):
		m.markSet = false
		m.showHelp = false
		return m, nil
	}

	return m, m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusSource:
		m.source, cmd = m.source.Update(msg)
	case focusStdin:
		m.stdin, cmd = m.stdin.Update(msg)
	}
	return cmd
}

// startRun kicks off a submission unless one is already in flight.
func (m *Model) startRun() (tea.Model, tea.Cmd) {
	req := app.SubmissionRequest{
		SourceCode:      m.source.Value(),
		Stdin:           m.stdin.Value(),
		LanguageID:      m.app.Config.LanguageID,
		CompilerOptions: m.app.Config.CompilerOptions,
		CLIArguments:    m.app.Config.CLIArguments,
	}
	if err := m.controller.Start(req); err != nil {
		m.statusLine = err.Error()
		return m, nil
	}
	// A fresh run supersedes any pending suggestion offer.
	m.suggestion = nil
	return m, tea.Batch(m.runCmd(), m.spinCmd())
}

func (m *Model) runCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		res, err := m.controller.Submit(ctx)
		return execResultMsg{result: res, err: err}
	}
}

// requestSuggestion consumes the offered compile-error suggestion: appends a
// loading assistant bubble and asks the assistant in the background.
func (m *Model) requestSuggestion() (tea.Model, tea.Cmd) {
	if m.suggestion == nil || m.suggestion.Requested() {
		return m, nil
	}
	flow := m.suggestion
	// The affordance is single-shot: consume it before the call resolves.
	m.suggestion = nil
	source := m.source.Value()
	label := app.LanguageLabel(m.app.Config.LanguageID)
	modelID := m.app.Config.Model

	m.messages = append(m.messages, Message{Role: app.RoleAssistant, Loading: true})
	m.refreshTranscript()
	m.transcript.GotoBottom()

	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		reply, err := flow.Request(ctx, source, label, modelID)
		return suggestionMsg{reply: reply, err: err}
	}
	return m, tea.Batch(cmd, m.spinCmd())
}

// fillPlaceholder resolves the newest loading bubble with a reply or an error
// state. Failures stay contained to that bubble.
func (m *Model) fillPlaceholder(reply string, err error) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if !m.messages[i].Loading {
			continue
		}
		m.messages[i].Loading = false
		if err != nil {
			m.messages[i].Failed = true
			m.messages[i].Content = "The assistant did not answer: " + err.Error()
		} else {
			m.messages[i].Content = reply
		}
		return
	}
}

func (m *Model) spinCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinMsg{}
	})
}

func (m *Model) resize() {
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth - 6
	if rightWidth < 20 {
		rightWidth = 20
	}
	paneHeight := m.height - 6
	if paneHeight < 10 {
		paneHeight = 10
	}
	m.source.SetWidth(leftWidth)
	m.source.SetHeight(paneHeight)
	m.stdin.SetWidth(rightWidth)
	m.transcript.Width = rightWidth
	m.transcript.Height = paneHeight / 2
	m.output.Width = rightWidth
	m.output.Height = paneHeight - m.transcript.Height - m.stdin.Height() - 4
	if m.output.Height < 3 {
		m.output.Height = 3
	}
	m.refreshTranscript()
	m.output.SetContent(m.outputText)
}

// Presenter implementation: the controller renders through these.

func (m *Model) ShowStatus(line string) {
	m.statusLine = line
}

func (m *Model) ShowOutput(text string) {
	m.outputText = text
	m.output.SetContent(text)
	m.output.GotoTop()
}

func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

func (m *Model) ShowError(title, detail string) {
	m.errTitle = title
	m.errDetail = detail
}

func (m *Model) OfferSuggestion(compileOutput string) {
	m.suggestion = m.app.NewSuggestion(compileOutput)
}

// SuggestionOffered reports whether the "get suggestion" affordance is live.
func (m *Model) SuggestionOffered() bool {
	return m.suggestion != nil && !m.suggestion.Requested()
}

func (m *Model) selectionText() (string, app.Position) {
	if !m.markSet {
		return "", app.Position{}
	}
	lines := strings.Split(m.source.Value(), "\n")
	start, end := m.markRow, m.source.Line()
	if start > end {
		start, end = end, start
	}
	if start >= len(lines) {
		return "", app.Position{}
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n"), app.Position{Row: start}
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.messages {
		switch {
		case msg.Loading:
			b.WriteString(loadingBubbleStyle.Render(spinner[m.spinnerPos] + " thinking..."))
		case msg.Failed:
			b.WriteString(errorBubbleStyle.Render(msg.Content))
		case msg.Role == app.RoleAssistant:
			b.WriteString(m.markdown.Render(msg.Content, m.transcript.Width-2))
		default:
			b.WriteString(userBubbleStyle.Render(msg.Content))
		}
		b.WriteString("\n\n")
	}
	m.transcript.SetContent(b.String())
}

func (m *Model) languageLabel() string {
	return m.languages[m.langIndex].Label
}

func (m *Model) View() string {
	if m.errTitle != "" {
		return m.renderErrorModal()
	}

	header := headerStyle.Width(m.width - 2).Render(
		fmt.Sprintf("codebox · %s · %s", m.languageLabel(), m.app.Config.Model))

	left := paneStyle.Render(paneTitleStyle.Render("source") + "\n" + m.source.View())

	m.refreshTranscript()
	right := lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(paneTitleStyle.Render("assistant")+"\n"+m.transcript.View()),
		paneStyle.Render(paneTitleStyle.Render("stdin")+"\n"+m.stdin.View()),
		paneStyle.Render(paneTitleStyle.Render("output")+"\n"+m.output.View()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := m.statusLine
	if m.loading {
		status = spinner[m.spinnerPos] + " running..."
	} else if m.SuggestionOffered() {
		status += "  ·  " + suggestHintStyle.Render("ctrl+g get AI fix suggestion")
	}

	parts := []string{header, body, statusLineStyle.Width(m.width - 2).Render(status)}
	if m.inline != nil {
		parts = append(parts, m.inline.view(m.width-4, m.spinnerPos))
	}
	if m.showHelp {
		parts = append(parts, renderHelp(m.keys))
	} else {
		parts = append(parts, footerStyle.Render("ctrl+r run · ctrl+space mark · ctrl+n inline chat · ctrl+l language · tab focus · f1 help · ctrl+c quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderErrorModal() string {
	box := errorModalStyle.Width(min(m.width-4, 80)).Render(
		errorTitleStyle.Render(m.errTitle) + "\n\n" + m.errDetail + "\n\n" + footerStyle.Render("press any key to dismiss"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
