package tui

import (
	"errors"
	"strings"
	"testing"

	"codebox/internal/app"
)

func newTestModel() *Model {
	application := app.NewApplication(app.DefaultConfig(), true, nil)
	return New(application)
}

func TestModelRendersAcceptedResult(t *testing.T) {
	m := newTestModel()
	m.loading = true

	m.Update(execResultMsg{result: app.SubmissionResult{
		StatusID: app.StatusAccepted,
		Stdout:   app.Encode("hello\n"),
	}})

	if m.loading {
		t.Fatal("loading not cleared after result")
	}
	if !strings.Contains(m.statusLine, "Accepted") {
		t.Fatalf("status line = %q, want Accepted", m.statusLine)
	}
	if m.outputText != "hello" {
		t.Fatalf("output = %q, want %q", m.outputText, "hello")
	}
	if m.SuggestionOffered() {
		t.Fatal("suggestion offered for an accepted run")
	}
}

func TestModelOffersSuggestionOnCompileError(t *testing.T) {
	m := newTestModel()

	m.Update(execResultMsg{result: app.SubmissionResult{
		StatusID:      app.StatusCompilationError,
		CompileOutput: app.Encode("error: expected ';'"),
	}})

	if !m.SuggestionOffered() {
		t.Fatal("no suggestion offered for a compile error")
	}
	if got := m.suggestion.CompileOutput(); got != "error: expected ';'" {
		t.Fatalf("offer carries %q", got)
	}
}

func TestModelSuggestionPlaceholderLifecycle(t *testing.T) {
	m := newTestModel()
	m.Update(execResultMsg{result: app.SubmissionResult{
		StatusID:      app.StatusCompilationError,
		CompileOutput: app.Encode("boom"),
	}})

	before := len(m.messages)
	if _, cmd := m.requestSuggestion(); cmd == nil {
		t.Fatal("requestSuggestion returned no command")
	}
	if len(m.messages) != before+1 {
		t.Fatalf("placeholder not appended: %d messages", len(m.messages))
	}
	if !m.messages[len(m.messages)-1].Loading {
		t.Fatal("placeholder is not loading-marked")
	}

	m.Update(suggestionMsg{reply: "add a semicolon"})
	last := m.messages[len(m.messages)-1]
	if last.Loading || last.Failed {
		t.Fatalf("placeholder not resolved: %+v", last)
	}
	if last.Content != "add a semicolon" {
		t.Fatalf("placeholder content = %q", last.Content)
	}

	// The affordance is single-shot: consumed at click time, so a second
	// press appends nothing.
	if m.SuggestionOffered() {
		t.Fatal("offer still live after being taken")
	}
	if _, _ = m.requestSuggestion(); len(m.messages) != before+1 {
		t.Fatal("second request appended another placeholder")
	}
}

func TestModelSuggestionFailureMarksBubble(t *testing.T) {
	m := newTestModel()
	m.Update(execResultMsg{result: app.SubmissionResult{
		StatusID:      app.StatusCompilationError,
		CompileOutput: app.Encode("boom"),
	}})
	m.requestSuggestion()

	m.Update(suggestionMsg{err: errors.New("model overloaded")})

	last := m.messages[len(m.messages)-1]
	if last.Loading {
		t.Fatal("placeholder still loading after failure")
	}
	if !last.Failed || !strings.Contains(last.Content, "model overloaded") {
		t.Fatalf("placeholder = %+v, want a visible error state", last)
	}
}

func TestModelTransportFailureShowsModal(t *testing.T) {
	m := newTestModel()
	m.loading = true

	m.Update(execResultMsg{err: &app.TransportError{
		StatusCode: 503,
		Status:     "503 Service Unavailable",
		Body:       "down for maintenance",
	}})

	if m.errTitle == "" {
		t.Fatal("no error modal after transport failure")
	}
	if !strings.Contains(m.errDetail, "down for maintenance") {
		t.Fatalf("modal detail = %q, want the raw payload", m.errDetail)
	}
	if m.loading {
		t.Fatal("loading not cleared after transport failure")
	}
}

func TestModelSelection(t *testing.T) {
	m := newTestModel()
	m.source.SetValue("line a\nline b\nline c")

	// No mark, no selection.
	if text, _ := m.selectionText(); text != "" {
		t.Fatalf("selection without mark = %q, want empty", text)
	}

	m.markSet = true
	m.markRow = 0
	text, anchor := m.selectionText()
	if text != "line a\nline b\nline c" {
		t.Fatalf("selection = %q", text)
	}
	if anchor.Row != 0 {
		t.Fatalf("anchor row = %d, want 0", anchor.Row)
	}
}

func TestModelInlineChatOpenAndReply(t *testing.T) {
	m := newTestModel()
	m.source.SetValue("for(;;){}")
	m.markSet = true
	m.markRow = 0

	m.openInlineChat()
	if m.inline == nil {
		t.Fatal("inline chat did not open over a selection")
	}
	if m.inline.session.Snapshot() != "for(;;){}" {
		t.Fatalf("snapshot = %q", m.inline.session.Snapshot())
	}

	m.inline.bubbles = append(m.inline.bubbles,
		Message{Role: app.RoleUser, Content: "what is this"},
		Message{Role: app.RoleAssistant, Loading: true})
	m.inline.waiting = true

	m.Update(inlineReplyMsg{sessionID: m.inline.session.ID(), reply: "an endless loop"})

	last := m.inline.bubbles[len(m.inline.bubbles)-1]
	if last.Loading || last.Content != "an endless loop" {
		t.Fatalf("inline bubble = %+v", last)
	}
	if m.inline.waiting {
		t.Fatal("overlay still waiting after the reply")
	}
}

func TestModelInlineChatIgnoresStaleReplies(t *testing.T) {
	m := newTestModel()
	m.source.SetValue("x = 1")
	m.markSet = true
	m.markRow = 0
	m.openInlineChat()

	m.inline.bubbles = append(m.inline.bubbles, Message{Role: app.RoleAssistant, Loading: true})

	// A reply for a replaced session must not land in this overlay.
	m.Update(inlineReplyMsg{sessionID: "some-other-session", reply: "stale"})
	if !m.inline.bubbles[0].Loading {
		t.Fatal("stale reply resolved the wrong overlay")
	}

	// And a reply after close must not panic.
	m.inline.session.Close()
	m.inline = nil
	m.Update(inlineReplyMsg{sessionID: "whatever", reply: "late"})
}

func TestModelInlineChatRequiresSelection(t *testing.T) {
	m := newTestModel()
	m.openInlineChat()
	if m.inline != nil {
		t.Fatal("inline chat opened without a selection")
	}
}
