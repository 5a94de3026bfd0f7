package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Client sends one completed conversation to a model provider and
// returns the assistant's reply. Implementations live in the provider
// package; tests supply fakes.
type Client interface {
	Complete(ctx context.Context, messages Conversation) (string, error)
	Name() string
}

// ClientFactory builds a Client bound to a config. It is invoked once
// at session start and again whenever a config update changes the
// provider, model, credential, temperature, or max tokens.
type ClientFactory func(cfg ProviderConfig) (Client, error)

// Session owns the live ProviderConfig and the client bound to it.
// It is stateless with respect to conversation history; the shell owns
// the conversation and passes it on every send.
type Session struct {
	mu      sync.Mutex
	cfg     ProviderConfig
	client  Client
	factory ClientFactory
}

// NewSession validates the config against the registry and binds the
// initial client.
func NewSession(cfg ProviderConfig, factory ClientFactory) (*Session, error) {
	if factory == nil {
		return nil, errors.New("nil client factory")
	}
	if !KnownProvider(cfg.Provider) {
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	cfg.Model = EnsureModel(cfg.Provider, cfg.Model)

	client, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s client: %w", cfg.Provider, err)
	}

	return &Session{cfg: cfg, client: client, factory: factory}, nil
}

// Config returns a snapshot of the live config. ProviderConfig holds
// only value fields, so the snapshot is structurally independent.
func (s *Session) Config() ProviderConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// UpdateConfig merges the update over the current config. A provider
// switch that leaves the model outside the new provider's list selects
// that provider's first listed model. The client is rebuilt only when a
// binding field changed; on rebuild failure the previous config and
// client stay in place.
func (s *Session) UpdateConfig(u ConfigUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Apply(u)

	if u.Provider != nil && !KnownProvider(next.Provider) {
		LogWarn("unknown provider %q, keeping %s", next.Provider, s.cfg.Provider)
		next.Provider = s.cfg.Provider
	}
	next.Model = EnsureModel(next.Provider, next.Model)

	if next.binding() != s.cfg.binding() {
		client, err := s.factory(next)
		if err != nil {
			return fmt.Errorf("failed to build %s client: %w", next.Provider, err)
		}
		s.client = client
		LogDebug("rebuilt %s client for model %s", next.Provider, next.Model)
	}

	s.cfg = next
	return nil
}

// SendMessage sends the conversation to the bound provider and returns
// the assistant reply. The conversation itself is never mutated; the
// caller appends the user message before calling and the reply after.
//
// The client and config are snapshotted before the network round trip:
// an UpdateConfig issued while a send is in flight takes effect for the
// next call only.
func (s *Session) SendMessage(ctx context.Context, conv Conversation) (string, error) {
	s.mu.Lock()
	client := s.client
	cfg := s.cfg
	s.mu.Unlock()

	outbound := conv
	if cfg.SystemPrompt != "" && !conv.HasSystemMessage() {
		// Synthetic message for this call only, never persisted back.
		outbound = make(Conversation, 0, len(conv)+1)
		outbound = append(outbound, Message{Role: RoleSystem, Content: cfg.SystemPrompt})
		outbound = append(outbound, conv...)
	}

	reply, err := client.Complete(ctx, outbound)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			return "", err
		}
		return "", &ProviderError{Provider: cfg.Provider, Err: err}
	}
	return reply, nil
}
