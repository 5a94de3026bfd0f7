// Package provider implements the client bindings for each supported
// model provider behind the internal.Client interface.
package provider

import (
	"fmt"

	"github.com/iksnae/termchat/internal"
)

// New builds the client for cfg.Provider. Missing credentials do not
// fail construction; the provider rejects the call at send time.
func New(cfg internal.ProviderConfig) (internal.Client, error) {
	switch cfg.Provider {
	case internal.ProviderOpenAI:
		return newOpenAI(cfg), nil
	case internal.ProviderAnthropic:
		return newAnthropic(cfg), nil
	case internal.ProviderOllama:
		return newOllama(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s, %s, %s)",
			cfg.Provider, internal.ProviderOpenAI, internal.ProviderAnthropic, internal.ProviderOllama)
	}
}
