package internal

import "testing"

func TestEnsureModel(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		model    string
		want     string
	}{
		{
			name:     "model in list is kept",
			provider: ProviderOpenAI,
			model:    "gpt-4o-mini",
			want:     "gpt-4o-mini",
		},
		{
			name:     "foreign model falls back to first entry",
			provider: ProviderAnthropic,
			model:    "gpt-4o",
			want:     DefaultModel(ProviderAnthropic),
		},
		{
			name:     "empty model falls back to first entry",
			provider: ProviderOllama,
			model:    "",
			want:     DefaultModel(ProviderOllama),
		},
		{
			name:     "unknown provider yields empty model",
			provider: "nope",
			model:    "gpt-4o",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureModel(tt.provider, tt.model); got != tt.want {
				t.Errorf("EnsureModel(%q, %q) = %q, want %q", tt.provider, tt.model, got, tt.want)
			}
		})
	}
}

func TestEnsureModelNeverForeign(t *testing.T) {
	for _, p := range Providers() {
		got := EnsureModel(p, "definitely-not-a-model")
		found := false
		for _, m := range ModelsFor(p) {
			if m == got {
				found = true
			}
		}
		if !found {
			t.Errorf("EnsureModel(%q, ...) = %q, not in that provider's list", p, got)
		}
	}
}

func TestModelsForReturnsCopy(t *testing.T) {
	models := ModelsFor(ProviderOpenAI)
	if len(models) == 0 {
		t.Fatal("ModelsFor(openai) returned no models")
	}
	models[0] = "mutated"
	if ModelsFor(ProviderOpenAI)[0] == "mutated" {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestDefaultModelIsFirstEntry(t *testing.T) {
	for _, p := range Providers() {
		if got, want := DefaultModel(p), ModelsFor(p)[0]; got != want {
			t.Errorf("DefaultModel(%q) = %q, want first entry %q", p, got, want)
		}
	}
}
