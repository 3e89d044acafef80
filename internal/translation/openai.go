package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/cloudtranslate/internal/language"
)

// OpenAIProvider implements Provider using OpenAI chat completions.
// Used as a fallback when the Google endpoint is failing or as the
// primary provider by configuration.
type OpenAIProvider struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI-backed translation provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Translate translates text via a chat completion
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following text from %s to %s. Respond with only the translation, nothing else.\n\n%s",
					languageName(sourceLang), languageName(targetLang), text),
			},
		},
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that the provider is configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// languageName resolves a code to a full name for prompting; model
// output is better with "Thai" than with "th".
func languageName(code string) string {
	if name, ok := language.Names[code]; ok {
		return name
	}
	return code
}
