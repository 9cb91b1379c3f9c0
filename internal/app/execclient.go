package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TransportError is a non-success answer from the execution service. It
// carries the full diagnostic payload for the error presenter.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execution service: %s: %s", e.Status, e.Body)
}

// ExecClient talks to a Judge0-compatible execution service over HTTP. Text
// fields travel codec-encoded in both directions; the client does not decode
// them.
type ExecClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	logger  *zap.Logger
}

type execSubmission struct {
	SourceCode      string `json:"source_code"`
	LanguageID      int    `json:"language_id"`
	Stdin           string `json:"stdin,omitempty"`
	CompilerOptions string `json:"compiler_options,omitempty"`
	CLIArguments    string `json:"command_line_arguments,omitempty"`
}

type execResult struct {
	Stdout        *string `json:"stdout"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`
	Memory        *int    `json:"memory"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// NewExecClient creates a client for the given base URL, defaulting to the
// public Judge0 CE endpoint.
func NewExecClient(baseURL, apiKey string, logger *zap.Logger) *ExecClient {
	if baseURL == "" {
		baseURL = "https://ce.judge0.com"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// Submit posts a submission and waits for its terminal result. Any non-2xx
// answer or network error is a transport failure; the run is not retried.
func (c *ExecClient) Submit(ctx context.Context, req SubmissionRequest) (SubmissionResult, error) {
	payload, err := json.Marshal(execSubmission{
		SourceCode:      req.SourceCode,
		LanguageID:      req.LanguageID,
		Stdin:           req.Stdin,
		CompilerOptions: req.CompilerOptions,
		CLIArguments:    req.CLIArguments,
	})
	if err != nil {
		return SubmissionResult{}, err
	}

	url := c.BaseURL + "/submissions?base64_encoded=true&wait=true"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return SubmissionResult{}, err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		request.Header.Set("X-Auth-Token", c.APIKey)
	}

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("execution service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("failed to read execution response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SubmissionResult{}, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var res execResult
	if err := json.Unmarshal(body, &res); err != nil {
		return SubmissionResult{}, fmt.Errorf("invalid execution response: %w", err)
	}

	c.logger.Debug("submission answered",
		zap.Int("status_id", res.Status.ID),
		zap.String("description", res.Status.Description))

	out := SubmissionResult{
		StatusID:          res.Status.ID,
		StatusDescription: res.Status.Description,
		Time:              res.Time,
		Memory:            res.Memory,
	}
	if res.Stdout != nil {
		out.Stdout = *res.Stdout
	}
	if res.CompileOutput != nil {
		out.CompileOutput = *res.CompileOutput
	}
	return out, nil
}
