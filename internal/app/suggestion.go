package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrSuggestionRequested is returned when a flow's single suggestion request
// has already been consumed.
var ErrSuggestionRequested = errors.New("suggestion already requested for this result")

// SuggestionFlow is created once per compile-error result. It presents a
// single "get suggestion" affordance; when taken, it appends the failure
// report to the conversation store, asks the assistant for a fix and returns
// the sanitized reply.
type SuggestionFlow struct {
	store     *ConversationStore
	chat      ChatService
	sanitizer Sanitizer
	logger    *zap.Logger

	compileOutput string

	mu        sync.Mutex
	requested bool
}

// NewSuggestionFlow wraps a non-empty decoded compile output. Callers gate on
// emptiness before constructing one.
func NewSuggestionFlow(store *ConversationStore, chat ChatService, sanitizer Sanitizer, compileOutput string, logger *zap.Logger) *SuggestionFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionFlow{
		store:         store,
		chat:          chat,
		sanitizer:     sanitizer,
		logger:        logger,
		compileOutput: compileOutput,
	}
}

// CompileOutput returns the decoded compiler message this flow was created
// for.
func (f *SuggestionFlow) CompileOutput() string {
	return f.compileOutput
}

// Requested reports whether the single suggestion request has been consumed.
func (f *SuggestionFlow) Requested() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requested
}

// Request appends the structured failure report as a user turn, sends the
// whole conversation to the assistant and appends its reply. The returned
// text has passed the sanitizer and is safe for the transcript.
//
// On assistant failure no assistant turn is appended and the error is
// returned so the caller can mark the placeholder bubble instead of hanging.
func (f *SuggestionFlow) Request(ctx context.Context, sourceCode, languageLabel, model string) (string, error) {
	f.mu.Lock()
	if f.requested {
		f.mu.Unlock()
		return "", ErrSuggestionRequested
	}
	f.requested = true
	f.mu.Unlock()

	f.store.Append(Turn{
		Role: RoleUser,
		Content: fmt.Sprintf(`Here's my %s code that failed to compile:
%s

Compilation error:
%s

Please suggest a fix for this compilation error.`, languageLabel, sourceCode, f.compileOutput),
	})

	reply, err := f.chat.Chat(ctx, f.store.Turns(), model)
	if err != nil {
		f.logger.Error("suggestion request failed", zap.Error(err))
		return "", err
	}

	f.store.Append(Turn{Role: RoleAssistant, Content: reply})
	return f.sanitizer.Sanitize(reply), nil
}
