package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	oai "github.com/sashabaranov/go-openai"

	"github.com/iksnae/termchat/internal"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaHostEnv overrides the local Ollama endpoint
const OllamaHostEnv = "OLLAMA_HOST"

// ollamaClient talks to a local Ollama daemon through its
// OpenAI-compatible endpoint. No credential is required.
type ollamaClient struct {
	api         *oai.Client
	name        string
	model       string
	temperature float32
	maxTokens   int
}

func newOllama(cfg internal.ProviderConfig) *ollamaClient {
	host := os.Getenv(OllamaHostEnv)
	if host == "" {
		host = defaultOllamaHost
	}

	clientCfg := oai.DefaultConfig(cfg.ResolveAPIKey())
	clientCfg.BaseURL = strings.TrimSuffix(host, "/") + "/v1"

	return &ollamaClient{
		api:         oai.NewClientWithConfig(clientCfg),
		name:        cfg.Provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *ollamaClient) Name() string {
	return c.name
}

func (c *ollamaClient) Complete(ctx context.Context, messages internal.Conversation) (string, error) {
	req := oai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages:    toChatMessages(messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &internal.ProviderError{Provider: c.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &internal.ProviderError{Provider: c.name, Err: fmt.Errorf("empty completion for model %s", c.model)}
	}
	return resp.Choices[0].Message.Content, nil
}
