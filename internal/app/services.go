package app

import "context"

// ExecutionService submits code to the remote execution backend and blocks
// until the terminal result (callers run it inside an async command).
type ExecutionService interface {
	Submit(ctx context.Context, req SubmissionRequest) (SubmissionResult, error)
}

// ChatService sends an ordered sequence of turns to the AI backend and
// returns a single text reply.
type ChatService interface {
	Chat(ctx context.Context, turns []Turn, model string) (string, error)
}

// Sanitizer converts raw assistant output into markup-safe text for the
// transcript.
type Sanitizer interface {
	Sanitize(raw string) string
}

// Presenter is the surface the submission controller renders into. The TUI
// implements it; tests use a recording fake.
type Presenter interface {
	ShowStatus(line string)
	ShowOutput(text string)
	SetLoading(loading bool)
	ShowError(title, detail string)
	OfferSuggestion(compileOutput string)
}
