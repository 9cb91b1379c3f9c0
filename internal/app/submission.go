package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInFlight is returned by Start while a previous run has not delivered
// its terminal result or transport failure yet.
var ErrRunInFlight = errors.New("a run is already in flight")

// RunState is the submission lifecycle state.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
)

// SubmissionController owns the run lifecycle: it encodes the request,
// tracks the in-flight state, receives the terminal result and dispatches to
// the presenter and to the compile-error suggestion flow.
//
// There is no request correlation id: if a completion handler is still
// pending when a new run is issued, the last delivered result wins for the
// visible status and output. Known limitation carried from the legacy design.
type SubmissionController struct {
	exec      ExecutionService
	presenter Presenter
	logger    *zap.Logger

	mu        sync.Mutex
	state     RunState
	pending   SubmissionRequest
	runID     string
	startedAt time.Time

	now func() time.Time
}

// NewSubmissionController creates an idle controller.
func NewSubmissionController(exec ExecutionService, presenter Presenter, logger *zap.Logger) *SubmissionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionController{
		exec:      exec,
		presenter: presenter,
		logger:    logger,
		now:       time.Now,
	}
}

// State reports the current lifecycle state.
func (c *SubmissionController) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start validates the idle state, encodes every free-form text field for
// transport, records the start timestamp and enters the loading state. The
// actual network call happens in Submit, scheduled by the caller.
func (c *SubmissionController) Start(req SubmissionRequest) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrRunInFlight
	}
	c.state = StateRunning
	c.runID = uuid.NewString()
	c.startedAt = c.now()
	c.pending = SubmissionRequest{
		SourceCode:      Encode(req.SourceCode),
		Stdin:           Encode(req.Stdin),
		LanguageID:      req.LanguageID,
		CompilerOptions: Encode(req.CompilerOptions),
		CLIArguments:    Encode(req.CLIArguments),
	}
	runID := c.runID
	c.mu.Unlock()

	c.logger.Info("submission started",
		zap.String("run_id", runID),
		zap.Int("language_id", req.LanguageID))
	c.presenter.SetLoading(true)
	return nil
}

// Submit performs the in-flight run's network call. Safe to call from a
// goroutine; it only reads the encoded request captured by Start.
func (c *SubmissionController) Submit(ctx context.Context) (SubmissionResult, error) {
	c.mu.Lock()
	req := c.pending
	c.mu.Unlock()
	return c.exec.Submit(ctx, req)
}

// HandleResult processes a terminal result: decodes the output fields,
// renders the status summary and combined output, hands a compile failure to
// the suggestion flow and folds back to idle.
func (c *SubmissionController) HandleResult(res SubmissionResult) {
	c.mu.Lock()
	elapsed := c.now().Sub(c.startedAt)
	runID := c.runID
	c.state = StateIdle
	c.mu.Unlock()

	stdout := Decode(res.Stdout)
	compileOutput := Decode(res.CompileOutput)

	timeStr := "-"
	if res.Time != nil {
		timeStr = *res.Time + "s"
	}
	memoryStr := "-"
	if res.Memory != nil {
		memoryStr = fmt.Sprintf("%dKB", *res.Memory)
	}

	c.logger.Info("submission result",
		zap.String("run_id", runID),
		zap.Int("status_id", res.StatusID),
		zap.Duration("tat", elapsed))

	c.presenter.ShowStatus(fmt.Sprintf("%s, %s, %s (TAT: %dms)",
		res.Description(), timeStr, memoryStr, elapsed.Milliseconds()))

	// An empty compile error message is not actionable.
	if res.StatusID == StatusCompilationError && compileOutput != "" {
		c.presenter.OfferSuggestion(compileOutput)
	}

	c.presenter.ShowOutput(strings.TrimSpace(compileOutput + "\n" + stdout))
	c.presenter.SetLoading(false)
}

// HandleTransportError processes an execution-service failure: terminal, not
// retried, surfaced with the full diagnostic payload.
func (c *SubmissionController) HandleTransportError(err error) {
	c.mu.Lock()
	runID := c.runID
	c.state = StateIdle
	c.mu.Unlock()

	c.logger.Error("submission transport failure",
		zap.String("run_id", runID),
		zap.Error(err))

	title := "Submission failed"
	var terr *TransportError
	if errors.As(err, &terr) {
		title = fmt.Sprintf("%s (%d)", terr.Status, terr.StatusCode)
	}
	c.presenter.ShowError(title, err.Error())
	c.presenter.SetLoading(false)
}
