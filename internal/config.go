package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a numeric field is absent or fails to parse
const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens   int     = 1000
	DefaultSaveDir             = "chats"
	DefaultSaveFormat          = "json"
)

// SaveDirEnv overrides the transcript directory when no explicit value is set
const SaveDirEnv = "TERMCHAT_SAVE_DIR"

// credentialEnv maps each provider to its API-key environment fallback
var credentialEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// ProviderConfig is the live configuration of one session. It holds only
// value-typed fields, so a plain struct copy is a fully independent
// snapshot: mutating a copy can never reach the live config.
type ProviderConfig struct {
	Provider     string  `yaml:"provider"`
	Model        string  `yaml:"model"`
	APIKey       string  `yaml:"api_key,omitempty"`
	Temperature  float32 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
	SystemPrompt string  `yaml:"system_prompt,omitempty"`
	SaveDir      string  `yaml:"save_dir,omitempty"`
	SaveFormat   string  `yaml:"save_format,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() ProviderConfig {
	return ProviderConfig{
		Provider:    ProviderOpenAI,
		Model:       DefaultModel(ProviderOpenAI),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		SaveFormat:  DefaultSaveFormat,
	}
}

// ConfigUpdate carries a partial configuration change. Only non-nil
// fields are merged over the current config.
type ConfigUpdate struct {
	Provider     *string
	Model        *string
	APIKey       *string
	Temperature  *float32
	MaxTokens    *int
	SystemPrompt *string
	SaveDir      *string
	SaveFormat   *string
}

// Apply merges the update over c and returns the merged config. The
// receiver is a value, so neither the current config nor the caller's
// update shares structure with the result.
func (c ProviderConfig) Apply(u ConfigUpdate) ProviderConfig {
	if u.Provider != nil {
		c.Provider = *u.Provider
	}
	if u.Model != nil {
		c.Model = *u.Model
	}
	if u.APIKey != nil {
		c.APIKey = *u.APIKey
	}
	if u.Temperature != nil {
		c.Temperature = *u.Temperature
	}
	if u.MaxTokens != nil {
		c.MaxTokens = *u.MaxTokens
	}
	if u.SystemPrompt != nil {
		c.SystemPrompt = *u.SystemPrompt
	}
	if u.SaveDir != nil {
		c.SaveDir = *u.SaveDir
	}
	if u.SaveFormat != nil {
		c.SaveFormat = *u.SaveFormat
	}
	return c
}

// binding is the subset of config fields the provider client is built
// from. Changing any of them requires a rebuild; the remaining fields
// are orthogonal to the network binding.
type binding struct {
	provider    string
	model       string
	apiKey      string
	temperature float32
	maxTokens   int
}

func (c ProviderConfig) binding() binding {
	return binding{
		provider:    c.Provider,
		model:       c.Model,
		apiKey:      c.APIKey,
		temperature: c.Temperature,
		maxTokens:   c.MaxTokens,
	}
}

// ResolveAPIKey resolves the provider credential: explicit config value,
// else the provider's environment variable, else empty (the provider
// rejects the call for missing auth).
func (c ProviderConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if env := credentialEnv[c.Provider]; env != "" {
		return os.Getenv(env)
	}
	return ""
}

// ResolveSaveDir resolves the transcript directory: explicit config
// value, else TERMCHAT_SAVE_DIR, else a relative default.
func (c ProviderConfig) ResolveSaveDir() string {
	if c.SaveDir != "" {
		return c.SaveDir
	}
	if dir := os.Getenv(SaveDirEnv); dir != "" {
		return dir
	}
	return DefaultSaveDir
}

// ParseTemperature parses a temperature input. Invalid input coerces to
// the default instead of failing.
func ParseTemperature(s string) float32 {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		LogWarn("%v; using default %.1f", &ConfigValueError{Field: "temperature", Value: s}, DefaultTemperature)
		return DefaultTemperature
	}
	return float32(v)
}

// ParseMaxTokens parses a max-tokens input. Invalid input coerces to
// the default instead of failing.
func ParseMaxTokens(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		LogWarn("%v; using default %d", &ConfigValueError{Field: "max_tokens", Value: s}, DefaultMaxTokens)
		return DefaultMaxTokens
	}
	return v
}

// DefaultConfigPath returns ~/.termchat.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".termchat.yaml"), nil
}

// LoadConfig reads the config file at path, falling back to the default
// path when path is empty. A missing file yields DefaultConfig. Numeric
// fields that are zero or out of range coerce to their defaults, and the
// model is validated against the registry.
func LoadConfig(path string) (ProviderConfig, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		LogDebug("no config file at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return normalizeConfig(cfg), nil
}

// WriteConfig persists the config as YAML at path (default path when empty)
func WriteConfig(path string, cfg ProviderConfig) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// normalizeConfig repairs a loaded config: unknown providers fall back
// to the default provider, models to the provider's list, and zero
// numerics to their defaults.
func normalizeConfig(cfg ProviderConfig) ProviderConfig {
	if !KnownProvider(cfg.Provider) {
		if cfg.Provider != "" {
			LogWarn("unknown provider %q in config, using %s", cfg.Provider, ProviderOpenAI)
		}
		cfg.Provider = ProviderOpenAI
	}
	cfg.Model = EnsureModel(cfg.Provider, cfg.Model)
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.SaveFormat == "" {
		cfg.SaveFormat = DefaultSaveFormat
	}
	return cfg
}
