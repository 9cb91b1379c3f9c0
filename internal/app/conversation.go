package app

import "sync"

// Roles for conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in an assistant conversation. Turns are
// immutable once appended to a store.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationStore is the append-only log of turns that seeds every call to
// the assistant. Order is meaningful: the slice is the literal context window
// sent upstream. The first turn is always the fixed system instruction set.
//
// The store is shared between the UI loop and completed async commands, so
// access is mutex-guarded, but there is only ever one logical writer after
// initialization (the suggestion flow).
type ConversationStore struct {
	mu    sync.Mutex
	turns []Turn
}

// NewConversationStore creates a store seeded with the assistant system
// prompt.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		turns: []Turn{{Role: RoleSystem, Content: assistantSystemPrompt}},
	}
}

// Append adds a turn to the end of the log. Past turns are never mutated or
// removed.
func (s *ConversationStore) Append(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
}

// Turns returns a copy of the log in insertion order.
func (s *ConversationStore) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len reports the number of turns, including the system seed.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}
