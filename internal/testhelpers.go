package internal

// CreateTestConversation returns a short two-message conversation
func CreateTestConversation() Conversation {
	return Conversation{
		{Role: RoleUser, Content: "Hello, how are you?"},
		{Role: RoleAssistant, Content: "I'm doing well, thank you!"},
	}
}

// CreateTestConfig returns a config bound to the default provider with
// deterministic field values for assertions
func CreateTestConfig() ProviderConfig {
	return ProviderConfig{
		Provider:    ProviderOpenAI,
		Model:       DefaultModel(ProviderOpenAI),
		APIKey:      "test-key",
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		SaveFormat:  DefaultSaveFormat,
	}
}
