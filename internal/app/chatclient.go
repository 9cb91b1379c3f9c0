package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ChatClient talks to an OpenAI-compatible chat completions endpoint. With no
// API key it runs in mock mode and answers locally, so the editor stays
// usable offline and tests need no network.
type ChatClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	logger  *zap.Logger
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewChatClient creates a client for the given base URL, defaulting to the
// OpenAI API.
func NewChatClient(baseURL, apiKey string, logger *zap.Logger) *ChatClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// Chat sends the ordered turns plus the model identifier and returns the
// single text reply.
func (c *ChatClient) Chat(ctx context.Context, turns []Turn, model string) (string, error) {
	if c.APIKey == "" || c.BaseURL == "mock://" {
		return c.mockChat(turns)
	}
	if len(turns) == 0 {
		return "", errors.New("chat requires at least one turn")
	}

	messages := make([]chatMessage, len(turns))
	for i, t := range turns {
		messages[i] = chatMessage{Role: t.Role, Content: t.Content}
	}
	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var errResp chatResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return "", fmt.Errorf("chat api error: status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("chat api error: status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("invalid chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response carried no choices: %s", string(body))
	}

	c.logger.Debug("chat reply received", zap.String("model", model), zap.Int("turns", len(turns)))
	return parsed.Choices[0].Message.Content, nil
}

// mockChat answers locally with enough shape to drive the UI.
func (c *ChatClient) mockChat(turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "", errors.New("chat requires at least one turn")
	}
	last := turns[len(turns)-1].Content
	if strings.Contains(last, "failed to compile") {
		return "The compiler message points at the marked line. Check for a missing semicolon or an undeclared identifier just before it, fix that token and rebuild.", nil
	}
	if strings.Contains(last, "Regarding this code:") {
		return "This snippet does what it says on the tin; ask a more specific question and I can dig into a particular line.", nil
	}
	return "I'm running in offline mode, but I'm happy to help with your code.", nil
}
