package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iksnae/termchat/internal"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// anthropicClient talks to the Anthropic messages API. The API takes
// the system prompt as a top-level field rather than a message role.
type anthropicClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	name        string
	model       string
	temperature float32
	maxTokens   int
}

func newAnthropic(cfg internal.ProviderConfig) *anthropicClient {
	return &anthropicClient{
		httpClient:  &http.Client{Timeout: 120 * time.Second},
		baseURL:     anthropicBaseURL,
		apiKey:      cfg.ResolveAPIKey(),
		name:        cfg.Provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *anthropicClient) Name() string {
	return c.name
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *anthropicClient) Complete(ctx context.Context, messages internal.Conversation) (string, error) {
	if c.apiKey == "" {
		return "", &internal.ProviderError{Provider: c.name, Err: errors.New("missing API key (set api_key or ANTHROPIC_API_KEY)")}
	}

	req := anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	for _, m := range messages {
		if m.Role == internal.RoleSystem {
			req.System = m.Content
			continue
		}
		req.Messages = append(req.Messages, anthropicMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: err}
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := httpResp.Status
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", &internal.ProviderError{Provider: c.name, Err: fmt.Errorf("request failed: %s", msg)}
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &internal.ProviderError{Provider: c.name, Err: fmt.Errorf("empty completion for model %s", c.model)}
}
