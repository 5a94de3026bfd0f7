package provider

import (
	"context"
	"errors"
	"fmt"

	oai "github.com/sashabaranov/go-openai"

	"github.com/iksnae/termchat/internal"
)

// openAIClient talks to the OpenAI chat completions API
type openAIClient struct {
	api         *oai.Client
	name        string
	model       string
	temperature float32
	maxTokens   int
	hasKey      bool
}

func newOpenAI(cfg internal.ProviderConfig) *openAIClient {
	key := cfg.ResolveAPIKey()
	return &openAIClient{
		api:         oai.NewClient(key),
		name:        cfg.Provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		hasKey:      key != "",
	}
}

func (c *openAIClient) Name() string {
	return c.name
}

func (c *openAIClient) Complete(ctx context.Context, messages internal.Conversation) (string, error) {
	if !c.hasKey {
		return "", &internal.ProviderError{Provider: c.name, Err: errors.New("missing API key (set api_key or OPENAI_API_KEY)")}
	}

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

// toChatMessages converts a conversation to the wire message format
func toChatMessages(messages internal.Conversation) []oai.ChatCompletionMessage {
	out := make([]oai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, oai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}
