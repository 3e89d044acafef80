package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	googleAPIURL  = "https://translation.googleapis.com/language/translate/v2"
	googleTimeout = 20 * time.Second
)

// GoogleClient implements Provider for the Google Cloud Translation API v2.
// No language detection is requested; translation is always explicit
// source to target.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// googleResponse represents the API response structure
type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// googleError represents the API error envelope
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewGoogleClient creates a new Google Cloud Translation client
func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{
		apiKey:  apiKey,
		baseURL: googleAPIURL,
		httpClient: &http.Client{
			Timeout: googleTimeout,
		},
	}
}

// Translate translates text via the v2 REST endpoint
func (g *GoogleClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("Google API key not configured")
	}

	params := url.Values{}
	params.Set("key", g.apiKey)

	form := url.Values{}
	form.Set("q", text)
	form.Set("source", sourceLang)
	form.Set("target", targetLang)
	form.Set("format", "text")

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr googleError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("translation API error (HTTP %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("translation API error: HTTP %d", resp.StatusCode)
	}

	var result googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("no translation returned from API")
	}

	return result.Data.Translations[0].TranslatedText, nil
}

// Name returns the provider name
func (g *GoogleClient) Name() string {
	return "google"
}

// IsAvailable checks that the client is configured
func (g *GoogleClient) IsAvailable() error {
	if g.apiKey == "" {
		return fmt.Errorf("Google API key not configured")
	}
	return nil
}
