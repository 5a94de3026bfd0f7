package internal

import "fmt"

// ProviderError represents a failure talking to a model provider.
// Provider-specific error shapes are always wrapped into this type
// before reaching callers.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error [%s]: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SaveError represents a filesystem failure while persisting a transcript
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save error %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// ConfigValueError represents an invalid configuration value. Numeric
// fields coerce to their defaults instead of failing, so this surfaces
// as a warning rather than a returned error.
type ConfigValueError struct {
	Field string
	Value string
}

func (e *ConfigValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}
