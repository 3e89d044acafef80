package testutil

import (
	"context"
	"fmt"
)

// MockProvider mocks a translation provider
type MockProvider struct {
	ProviderName string
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate mocks translating text
func (m *MockProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s)", text, sourceLang, targetLang)
	m.Calls = append(m.Calls, call)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the mocked provider name
func (m *MockProvider) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

// IsAvailable reports the mock as always available
func (m *MockProvider) IsAvailable() error {
	return nil
}
