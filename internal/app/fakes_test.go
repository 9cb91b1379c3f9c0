package app

import (
	"context"
	"sync"
)

// fakeExec returns a canned result and records what it was asked to submit.
type fakeExec struct {
	mu       sync.Mutex
	requests []SubmissionRequest
	result   SubmissionResult
	err      error
}

func (f *fakeExec) Submit(_ context.Context, req SubmissionRequest) (SubmissionResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.result, f.err
}

// fakeChat records every payload it is sent.
type fakeChat struct {
	mu       sync.Mutex
	payloads [][]Turn
	models   []string
	reply    string
	err      error
}

func (f *fakeChat) Chat(_ context.Context, turns []Turn, model string) (string, error) {
	f.mu.Lock()
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	f.payloads = append(f.payloads, copied)
	f.models = append(f.models, model)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// passSanitizer tags its input so tests can see it ran.
type passSanitizer struct{}

func (passSanitizer) Sanitize(raw string) string { return "sanitized:" + raw }

// fakePresenter records every presentation call in order.
type fakePresenter struct {
	statuses   []string
	outputs    []string
	loading    []bool
	errTitles  []string
	errDetails []string
	offers     []string
}

func (p *fakePresenter) ShowStatus(line string)  { p.statuses = append(p.statuses, line) }
func (p *fakePresenter) ShowOutput(text string)  { p.outputs = append(p.outputs, text) }
func (p *fakePresenter) SetLoading(loading bool) { p.loading = append(p.loading, loading) }
func (p *fakePresenter) ShowError(title, detail string) {
	p.errTitles = append(p.errTitles, title)
	p.errDetails = append(p.errDetails, detail)
}
func (p *fakePresenter) OfferSuggestion(compileOutput string) {
	p.offers = append(p.offers, compileOutput)
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }
