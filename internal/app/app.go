package app

import "go.uber.org/zap"

// Application wires the long-lived pieces together: one conversation store,
// one execution client and one chat client for the whole single-page
// session. Instantiated once at startup; no teardown needed.
type Application struct {
	Config    Config
	Logger    *zap.Logger
	Exec      ExecutionService
	Chat      ChatService
	Sanitizer Sanitizer
	Store     *ConversationStore
}

// NewApplication builds the application from config. With mockMode (or no
// chat API key) the chat client answers locally.
func NewApplication(cfg Config, mockMode bool, logger *zap.Logger) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}
	chatKey := cfg.ChatAPIKey
	chatBase := cfg.ChatBaseURL
	if mockMode {
		chatKey = ""
		chatBase = "mock://"
	}
	return &Application{
		Config:    cfg,
		Logger:    logger,
		Exec:      NewExecClient(cfg.ExecBaseURL, cfg.ExecAPIKey, logger),
		Chat:      NewChatClient(chatBase, chatKey, logger),
		Sanitizer: NewStrictSanitizer(),
		Store:     NewConversationStore(),
	}
}

// NewSuggestion creates the per-result suggestion flow for a decoded compile
// output.
func (a *Application) NewSuggestion(compileOutput string) *SuggestionFlow {
	return NewSuggestionFlow(a.Store, a.Chat, a.Sanitizer, compileOutput, a.Logger)
}

// NewInlineChat opens an ephemeral chat session over a selection snapshot.
func (a *Application) NewInlineChat(selection string, anchor Position) (*InlineChatSession, error) {
	return NewInlineChatSession(a.Chat, selection, anchor)
}
