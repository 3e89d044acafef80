package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using the Gemini API
type GeminiProvider struct {
	apiKey string
}

// NewGeminiProvider creates a new Gemini-backed translation provider
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey}
}

// Translate translates text via Gemini content generation
func (p *GeminiProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("Gemini API key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := fmt.Sprintf("Translate the following text from %s to %s. Respond with only the translation, nothing else.\n\n%s",
		languageName(sourceLang), languageName(targetLang), text)

	resp, err := client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	result := strings.TrimSpace(resp.Text())
	if result == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return result, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that the provider is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
