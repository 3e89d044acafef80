package translation

import (
	"context"
	"fmt"
	"os"
)

// Provider defines the interface for translation providers
type Provider interface {
	// Translate translates text from sourceLang to targetLang
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for translation providers
type Config struct {
	Provider string // Provider name: "google", "openai" or "gemini"

	GoogleAPIKey string
	OpenAIKey    string
	GeminiKey    string
}

// NewProvider creates the appropriate translation provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("translation config is required")
	}

	switch config.Provider {
	case "google", "":
		if config.GoogleAPIKey == "" {
			return nil, fmt.Errorf("Google API key is required")
		}
		return NewGoogleClient(config.GoogleAPIKey), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config.OpenAIKey), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(config.GeminiKey), nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Translate tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	result, err := p.primary.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: primary provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())
		return p.fallback.Translate(ctx, text, sourceLang, targetLang)
	}
	return result, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
