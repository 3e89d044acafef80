package translation

import (
	"context"
	"fmt"
	"testing"
)

// stubProvider is a scripted Provider for tests
type stubProvider struct {
	name     string
	response string
	err      error
	calls    int
}

func (s *stubProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) IsAvailable() error { return s.err }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantName string
		wantErr  bool
	}{
		{"google", &Config{Provider: "google", GoogleAPIKey: "k"}, "google", false},
		{"google is the default", &Config{GoogleAPIKey: "k"}, "google", false},
		{"google without key", &Config{Provider: "google"}, "", true},
		{"openai", &Config{Provider: "openai", OpenAIKey: "k"}, "openai", false},
		{"openai without key", &Config{Provider: "openai"}, "", true},
		{"gemini", &Config{Provider: "gemini", GeminiKey: "k"}, "gemini", false},
		{"gemini without key", &Config{Provider: "gemini"}, "", true},
		{"unknown", &Config{Provider: "babelfish"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider '%s', got '%s'", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_NilConfig(t *testing.T) {
	if _, err := NewProvider(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestProviderWithFallback_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", response: "hola"}
	fallback := &stubProvider{name: "fallback", response: "bonjour"}

	p := NewProviderWithFallback(primary, fallback)

	result, err := p.Translate(context.Background(), "hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result != "hola" {
		t.Errorf("Expected primary result 'hola', got '%s'", result)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback should not be called, got %d calls", fallback.calls)
	}
}

func TestProviderWithFallback_PrimaryFails(t *testing.T) {
	primary := &stubProvider{name: "primary", err: fmt.Errorf("quota exhausted")}
	fallback := &stubProvider{name: "fallback", response: "bonjour"}

	p := NewProviderWithFallback(primary, fallback)

	result, err := p.Translate(context.Background(), "hello", "en", "fr")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result != "bonjour" {
		t.Errorf("Expected fallback result 'bonjour', got '%s'", result)
	}
}

func TestProviderWithFallback_BothFail(t *testing.T) {
	primary := &stubProvider{name: "primary", err: fmt.Errorf("down")}
	fallback := &stubProvider{name: "fallback", err: fmt.Errorf("also down")}

	p := NewProviderWithFallback(primary, fallback)

	if _, err := p.Translate(context.Background(), "hello", "en", "fr"); err == nil {
		t.Error("Expected error when both providers fail")
	}
	if err := p.IsAvailable(); err == nil {
		t.Error("Expected IsAvailable to fail when both providers are down")
	}
}
