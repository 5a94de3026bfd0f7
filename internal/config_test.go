package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func strPtr(s string) *string   { return &s }
func f32Ptr(f float32) *float32 { return &f }
func intPtr(i int) *int         { return &i }

func TestConfigApply(t *testing.T) {
	base := CreateTestConfig()

	tests := []struct {
		name   string
		update ConfigUpdate
		check  func(t *testing.T, got ProviderConfig)
	}{
		{
			name:   "empty update changes nothing",
			update: ConfigUpdate{},
			check: func(t *testing.T, got ProviderConfig) {
				if got != base {
					t.Errorf("Apply(empty) = %+v, want %+v", got, base)
				}
			},
		},
		{
			name:   "single field merge",
			update: ConfigUpdate{Temperature: f32Ptr(0.2)},
			check: func(t *testing.T, got ProviderConfig) {
				if got.Temperature != 0.2 {
					t.Errorf("Temperature = %v, want 0.2", got.Temperature)
				}
				if got.Model != base.Model || got.Provider != base.Provider {
					t.Error("unrelated fields changed")
				}
			},
		},
		{
			name: "multi field merge",
			update: ConfigUpdate{
				SystemPrompt: strPtr("be brief"),
				MaxTokens:    intPtr(256),
				SaveFormat:   strPtr("markdown"),
			},
			check: func(t *testing.T, got ProviderConfig) {
				if got.SystemPrompt != "be brief" || got.MaxTokens != 256 || got.SaveFormat != "markdown" {
					t.Errorf("merge missed fields: %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Apply(tt.update)
			tt.check(t, got)
			if base != CreateTestConfig() {
				t.Error("Apply mutated the receiver config")
			}
		})
	}
}

func TestConfigApplyIdempotent(t *testing.T) {
	base := CreateTestConfig()
	update := ConfigUpdate{Model: strPtr("gpt-4o-mini"), Temperature: f32Ptr(0.3)}

	once := base.Apply(update)
	twice := once.Apply(update)
	if once != twice {
		t.Errorf("repeated identical update changed the config: %+v vs %+v", once, twice)
	}
}

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		input string
		want  float32
	}{
		{"0.2", 0.2},
		{"1", 1},
		{"abc", DefaultTemperature},
		{"", DefaultTemperature},
	}

	for _, tt := range tests {
		if got := ParseTemperature(tt.input); got != tt.want {
			t.Errorf("ParseTemperature(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseMaxTokens(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"512", 512},
		{"abc", DefaultMaxTokens},
		{"1.5", DefaultMaxTokens},
		{"", DefaultMaxTokens},
	}

	for _, tt := range tests {
		if got := ParseMaxTokens(tt.input); got != tt.want {
			t.Errorf("ParseMaxTokens(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{
			name: "explicit value wins",
			cfg:  ProviderConfig{Provider: ProviderOpenAI, APIKey: "explicit"},
			want: "explicit",
		},
		{
			name: "environment fallback",
			cfg:  ProviderConfig{Provider: ProviderOpenAI},
			want: "env-key",
		},
		{
			name: "provider without env key resolves empty",
			cfg:  ProviderConfig{Provider: ProviderOllama},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolveAPIKey(); got != tt.want {
				t.Errorf("ResolveAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSaveDir(t *testing.T) {
	t.Run("explicit value wins", func(t *testing.T) {
		t.Setenv(SaveDirEnv, "/env/dir")
		cfg := ProviderConfig{SaveDir: "/explicit"}
		if got := cfg.ResolveSaveDir(); got != "/explicit" {
			t.Errorf("ResolveSaveDir() = %q, want /explicit", got)
		}
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(SaveDirEnv, "/env/dir")
		cfg := ProviderConfig{}
		if got := cfg.ResolveSaveDir(); got != "/env/dir" {
			t.Errorf("ResolveSaveDir() = %q, want /env/dir", got)
		}
	})

	t.Run("literal default", func(t *testing.T) {
		t.Setenv(SaveDirEnv, "")
		cfg := ProviderConfig{}
		if got := cfg.ResolveSaveDir(); got != DefaultSaveDir {
			t.Errorf("ResolveSaveDir() = %q, want %q", got, DefaultSaveDir)
		}
	})
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(missing) = %+v, want defaults", cfg)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termchat.yaml")
	want := CreateTestConfig()
	want.SystemPrompt = "be brief"
	want.SaveFormat = "markdown"

	if err := WriteConfig(path, want); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termchat.yaml")
	raw := []byte("provider: anthropic\nmodel: gpt-4o\ntemperature: 0\nmax_tokens: 0\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Model != DefaultModel(ProviderAnthropic) {
		t.Errorf("model = %q, want provider default %q", cfg.Model, DefaultModel(ProviderAnthropic))
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("max tokens = %v, want %v", cfg.MaxTokens, DefaultMaxTokens)
	}
}
