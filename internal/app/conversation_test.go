package app

import "testing"

func TestConversationStoreSeededWithSystemTurn(t *testing.T) {
	store := NewConversationStore()
	turns := store.Turns()
	if len(turns) != 1 {
		t.Fatalf("new store has %d turns, want 1", len(turns))
	}
	if turns[0].Role != RoleSystem {
		t.Fatalf("first turn role = %q, want %q", turns[0].Role, RoleSystem)
	}
	if turns[0].Content == "" {
		t.Fatal("system turn is empty")
	}
}

func TestConversationStoreAppendKeepsOrder(t *testing.T) {
	store := NewConversationStore()
	store.Append(Turn{Role: RoleUser, Content: "first question"})
	store.Append(Turn{Role: RoleAssistant, Content: "first answer"})
	store.Append(Turn{Role: RoleUser, Content: "second question"})

	turns := store.Turns()
	want := []string{"first question", "first answer", "second question"}
	if len(turns) != len(want)+1 {
		t.Fatalf("store has %d turns, want %d", len(turns), len(want)+1)
	}
	for i, content := range want {
		if turns[i+1].Content != content {
			t.Fatalf("turn %d = %q, want %q", i+1, turns[i+1].Content, content)
		}
	}
}

func TestConversationStoreTurnsReturnsCopy(t *testing.T) {
	store := NewConversationStore()
	store.Append(Turn{Role: RoleUser, Content: "original"})

	turns := store.Turns()
	turns[1].Content = "mutated"

	if got := store.Turns()[1].Content; got != "original" {
		t.Fatalf("store turn mutated through the returned slice: %q", got)
	}
}
