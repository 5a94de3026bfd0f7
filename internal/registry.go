package internal

// Provider identifiers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// providerOrder fixes the display order of providers
var providerOrder = []string{ProviderOpenAI, ProviderAnthropic, ProviderOllama}

// modelRegistry maps each provider to its selectable models.
// The first entry of each list is the provider's default model.
var modelRegistry = map[string][]string{
	ProviderOpenAI: {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
	},
	ProviderAnthropic: {
		"claude-sonnet-4-20250514",
		"claude-3-5-sonnet-20241022",
		"claude-3-5-haiku-20241022",
	},
	ProviderOllama: {
		"llama3.1",
		"mistral",
		"qwen2.5",
	},
}

// Providers returns the known provider identifiers in display order
func Providers() []string {
	out := make([]string, len(providerOrder))
	copy(out, providerOrder)
	return out
}

// ModelsFor returns the ordered model list for a provider, or nil if unknown
func ModelsFor(provider string) []string {
	models, ok := modelRegistry[provider]
	if !ok {
		return nil
	}
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// KnownProvider reports whether the provider appears in the registry
func KnownProvider(provider string) bool {
	_, ok := modelRegistry[provider]
	return ok
}

// DefaultModel returns the first listed model for a provider
func DefaultModel(provider string) string {
	models := modelRegistry[provider]
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// EnsureModel validates model against the provider's list. A model outside
// the list resolves to the provider's first listed model, so a provider
// switch never leaves a foreign model behind.
func EnsureModel(provider, model string) string {
	for _, m := range modelRegistry[provider] {
		if m == model {
			return model
		}
	}
	return DefaultModel(provider)
}
