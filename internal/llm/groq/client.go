package groq

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

	"golang.org/x/oauth2"

	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/telemetry"
	"agrirevive-backend/internal/shared/util"
)

const (
	DefaultURL     = "https://api.groq.com/openai/v1/chat/completions"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Client implements llm.Client against an OpenAI-compatible chat completions endpoint.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithURL overrides the chat completions endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if strings.TrimSpace(url) != "" {
			c.url = url
		}
	}
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient constructs a client that authenticates with apiKey as a bearer token.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	c := &Client{
		url:   DefaultURL,
		model: model,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
				Base:   http.DefaultTransport,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	body := buildRequest(c.model, req)
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.ObserveLLMDuration(time.Since(started))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("llm request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &llm.StatusError{StatusCode: resp.StatusCode, Body: truncate(strings.TrimSpace(string(raw)), maxErrorBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: missing choices", llm.ErrMalformedResponse)
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", llm.ErrMalformedResponse)
	}

	fields := map[string]any{
		"model":       c.model,
		"prompt_hash": util.ShortFingerprint(req.System + "\n\n" + req.User),
	}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Debug("llm.response", fields)
	return content, nil
}

func buildRequest(model string, req llm.Request) chatRequest {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	if strings.TrimSpace(req.User) != "" {
		messages = append(messages, chatMessage{Role: "user", Content: req.User})
	}
	temp := req.Temperature
	out := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temp,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ llm.Client = (*Client)(nil)
