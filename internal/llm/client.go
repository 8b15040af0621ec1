package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quizmaster-service/internal/errs"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Completer is the transport contract the chat and generation services
// depend on. Tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
}

// Client talks to an OpenRouter-compatible chat-completion API.
type Client struct {
	HTTPClient   *http.Client
	BaseURL      string
	APIKey       string
	DefaultModel string
}

func NewClient(baseURL, apiKey, defaultModel string) *Client {
	return &Client{
		HTTPClient:   &http.Client{Timeout: 120 * time.Second},
		BaseURL:      baseURL,
		APIKey:       apiKey,
		DefaultModel: defaultModel,
	}
}

// Complete sends one chat-completion request and returns the assistant text.
// An empty model falls back to the configured default. Any transport or
// shape failure surfaces as a single TRANSPORT error.
func (c *Client) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if model == "" {
		model = c.DefaultModel
	}

	request := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", errs.Wrap(errs.KindTransport, "failed to marshal completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", errs.Wrap(errs.KindTransport, "failed to create completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://quizmaster.ai")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errs.Wrap(errs.KindTransport, "completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Wrap(errs.KindTransport, "failed to read completion response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.Wrap(errs.KindTransport,
			fmt.Sprintf("completion API error (status %d)", resp.StatusCode),
			fmt.Errorf("%s", body))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errs.Wrap(errs.KindTransport, "failed to decode completion response", err)
	}
	if len(response.Choices) == 0 {
		return "", errs.New(errs.KindTransport, "completion response has no choices")
	}

	return response.Choices[0].Message.Content, nil
}
