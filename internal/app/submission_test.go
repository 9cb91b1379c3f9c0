package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fixedClock steps forward a set amount on every reading.
type fixedClock struct {
	now  time.Time
	step time.Duration
}

func (c *fixedClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newTestController(exec ExecutionService, p Presenter) *SubmissionController {
	c := NewSubmissionController(exec, p, nil)
	c.now = (&fixedClock{now: time.Unix(1000, 0), step: 250 * time.Millisecond}).Now
	return c
}

func TestStartRejectsSecondRun(t *testing.T) {
	c := newTestController(&fakeExec{}, &fakePresenter{})

	if err := c.Start(SubmissionRequest{SourceCode: "x"}); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := c.Start(SubmissionRequest{SourceCode: "y"}); !errors.Is(err, ErrRunInFlight) {
		t.Fatalf("second Start err = %v, want ErrRunInFlight", err)
	}
}

func TestStartEncodesTextFields(t *testing.T) {
	exec := &fakeExec{}
	c := newTestController(exec, &fakePresenter{})

	req := SubmissionRequest{
		SourceCode:      "int main(){return 0;}",
		Stdin:           "7 11",
		LanguageID:      54,
		CompilerOptions: "-O2",
		CLIArguments:    "--fast",
	}
	if err := c.Start(req); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	sent := exec.requests[0]
	if got := Decode(sent.SourceCode); got != req.SourceCode {
		t.Fatalf("source decoded = %q, want %q", got, req.SourceCode)
	}
	if got := Decode(sent.Stdin); got != req.Stdin {
		t.Fatalf("stdin decoded = %q, want %q", got, req.Stdin)
	}
	if got := Decode(sent.CompilerOptions); got != req.CompilerOptions {
		t.Fatalf("compiler options decoded = %q, want %q", got, req.CompilerOptions)
	}
	if got := Decode(sent.CLIArguments); got != req.CLIArguments {
		t.Fatalf("cli arguments decoded = %q, want %q", got, req.CLIArguments)
	}
	if sent.LanguageID != 54 {
		t.Fatalf("language id = %d, want 54", sent.LanguageID)
	}
}

func TestHandleResultAccepted(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{SourceCode: "int main(){return 0;}"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.HandleResult(SubmissionResult{
		StatusID: StatusAccepted,
		Time:     strptr("0.001"),
		Memory:   intptr(376),
	})

	if c.State() != StateIdle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if len(p.statuses) != 1 {
		t.Fatalf("got %d status lines, want 1", len(p.statuses))
	}
	want := "Accepted, 0.001s, 376KB (TAT: 250ms)"
	if p.statuses[0] != want {
		t.Fatalf("status line = %q, want %q", p.statuses[0], want)
	}
	if len(p.outputs) != 1 || p.outputs[0] != "" {
		t.Fatalf("outputs = %q, want one empty string", p.outputs)
	}
	if len(p.offers) != 0 {
		t.Fatalf("suggestion offered for an accepted run: %q", p.offers)
	}
	if p.loading[len(p.loading)-1] != false {
		t.Fatal("loading not cleared after result")
	}
}

func TestHandleResultRendersDashesForMissingMetrics(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.HandleResult(SubmissionResult{StatusID: StatusInternalError})

	want := "Internal Error, -, - (TAT: 250ms)"
	if p.statuses[0] != want {
		t.Fatalf("status line = %q, want %q", p.statuses[0], want)
	}
}

func TestHandleResultCompileErrorOffersSuggestion(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{SourceCode: "int main("}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	compileMsg := "error: expected ';'"
	c.HandleResult(SubmissionResult{
		StatusID:      StatusCompilationError,
		CompileOutput: Encode(compileMsg),
	})

	if len(p.offers) != 1 {
		t.Fatalf("got %d suggestion offers, want 1", len(p.offers))
	}
	if p.offers[0] != compileMsg {
		t.Fatalf("offer carries %q, want %q", p.offers[0], compileMsg)
	}
	if p.outputs[0] != compileMsg {
		t.Fatalf("output = %q, want compile output with no stdout beneath", p.outputs[0])
	}
}

func TestHandleResultEmptyCompileOutputIsNotActionable(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.HandleResult(SubmissionResult{StatusID: StatusCompilationError})

	if len(p.offers) != 0 {
		t.Fatalf("suggestion offered with empty compile output: %q", p.offers)
	}
}

func TestHandleResultJoinsCompileOutputBeforeStdout(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.HandleResult(SubmissionResult{
		StatusID:      StatusAccepted,
		Stdout:        Encode("program output\n"),
		CompileOutput: Encode("warning: unused variable\n"),
	})

	want := "warning: unused variable\n\nprogram output"
	if p.outputs[0] != want {
		t.Fatalf("output = %q, want %q", p.outputs[0], want)
	}
}

func TestHandleTransportErrorSurfacesAndReturnsToIdle(t *testing.T) {
	p := &fakePresenter{}
	c := newTestController(&fakeExec{}, p)

	if err := c.Start(SubmissionRequest{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.HandleTransportError(&TransportError{
		StatusCode: 503,
		Status:     "503 Service Unavailable",
		Body:       `{"error":"queue full"}`,
	})

	if c.State() != StateIdle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if len(p.errTitles) != 1 || !strings.Contains(p.errTitles[0], "503") {
		t.Fatalf("error title = %q, want the failing status", p.errTitles)
	}
	if !strings.Contains(p.errDetails[0], "queue full") {
		t.Fatalf("error detail = %q, want the raw payload", p.errDetails[0])
	}
	if p.loading[len(p.loading)-1] != false {
		t.Fatal("loading not cleared after transport failure")
	}

	// The failure is terminal: a new run may start.
	if err := c.Start(SubmissionRequest{}); err != nil {
		t.Fatalf("Start after transport failure: %v", err)
	}
}
