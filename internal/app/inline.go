package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrEmptySelection rejects inline chat over nothing.
	ErrEmptySelection = errors.New("selection is empty")
	// ErrSessionClosed rejects questions against a closed session.
	ErrSessionClosed = errors.New("inline chat session is closed")
)

// Position is a visual anchor for the inline chat overlay. Placement only,
// no semantic weight.
type Position struct {
	Row int
	Col int
}

// InlineChatSession is an ephemeral chat scoped to a snapshot of selected
// text. The snapshot is taken at creation and never changes, even if the
// document does. Each question is answered with exactly one message holding
// the snapshot plus that question: no session history and no shared
// conversation store. That scoping is deliberate, not an oversight.
type InlineChatSession struct {
	id       string
	chat     ChatService
	snapshot string
	anchor   Position

	mu       sync.Mutex
	messages []Turn
	closed   bool
}

// NewInlineChatSession snapshots the selection for a new session. An empty
// selection is not a session.
func NewInlineChatSession(chat ChatService, selection string, anchor Position) (*InlineChatSession, error) {
	if selection == "" {
		return nil, ErrEmptySelection
	}
	return &InlineChatSession{
		id:       uuid.NewString(),
		chat:     chat,
		snapshot: selection,
		anchor:   anchor,
	}, nil
}

// ID identifies the session, so late replies can be matched to the overlay
// that asked for them.
func (s *InlineChatSession) ID() string { return s.id }

// Snapshot returns the immutable selection text.
func (s *InlineChatSession) Snapshot() string { return s.snapshot }

// Anchor returns the visual placement hint.
func (s *InlineChatSession) Anchor() Position { return s.anchor }

// Closed reports whether Close has been called.
func (s *InlineChatSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Messages returns a copy of the session-local transcript.
func (s *InlineChatSession) Messages() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.messages))
	copy(out, s.messages)
	return out
}

// Ask records the question locally and asks the assistant about the snapshot.
// The reply is recorded and returned as plain text; inline replies skip the
// sanitizer because they are rendered verbatim, never as markup.
func (s *InlineChatSession) Ask(ctx context.Context, question, model string) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrSessionClosed
	}
	s.messages = append(s.messages, Turn{Role: RoleUser, Content: question})
	s.mu.Unlock()

	payload := []Turn{{
		Role: RoleUser,
		Content: fmt.Sprintf(`Regarding this code:
%s

Question: %s`, s.snapshot, question),
	}}

	reply, err := s.chat.Chat(ctx, payload, model)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if !s.closed {
		s.messages = append(s.messages, Turn{Role: RoleAssistant, Content: reply})
	}
	s.mu.Unlock()
	return reply, nil
}

// Close destroys the session. Further questions fail with ErrSessionClosed.
func (s *InlineChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
