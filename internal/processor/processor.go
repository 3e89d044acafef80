package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/cloudtranslate/internal"
	"codeberg.org/snonux/cloudtranslate/internal/batch"
	"codeberg.org/snonux/cloudtranslate/internal/cache"
	"codeberg.org/snonux/cloudtranslate/internal/cli"
	"codeberg.org/snonux/cloudtranslate/internal/gui"
	"codeberg.org/snonux/cloudtranslate/internal/history"
	"codeberg.org/snonux/cloudtranslate/internal/language"
	"codeberg.org/snonux/cloudtranslate/internal/translation"
	"codeberg.org/snonux/cloudtranslate/internal/usage"
)

// translateTimeout bounds a single provider call
const translateTimeout = 20 * time.Second

// Processor handles the main translation workflow
type Processor struct {
	flags    *cli.Flags
	provider translation.Provider
	tracker  *usage.Tracker
	history  *history.Log
	cache    *cache.Cache
}

// NewProcessor creates a new translation processor. It loads the usage
// tracker and history from the data directory and builds the provider
// chain from the configuration.
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	dataDir := DataDir(flags)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Use config file value if the limit was not overridden by flag
	limit := flags.MonthlyLimit
	if limit == 500000 && viper.IsSet("usage.monthly_limit") {
		limit = cli.GetMonthlyLimit()
	}

	tracker := usage.NewTracker(filepath.Join(dataDir, "usage.json"), limit)
	tracker.Load()

	log := history.NewLog(filepath.Join(dataDir, "history.json"))
	log.Load()

	p := &Processor{
		flags:   flags,
		tracker: tracker,
		history: log,
	}

	if !flags.NoCache {
		c, err := cache.Open(filepath.Join(dataDir, "cache.db"))
		if err != nil {
			// The cache is an optimization, not a requirement
			fmt.Fprintf(os.Stderr, "Warning: translation cache unavailable: %v\n", err)
		} else {
			p.cache = c
		}
	}

	// Utility modes never call the API, so no provider is needed and
	// no API key is required for them.
	if !flags.ShowHistory && !flags.ShowUsage && !flags.ClearHistory && !flags.ListLanguages {
		provider, err := buildProvider(flags)
		if err != nil {
			return nil, err
		}
		p.provider = provider
	}

	return p, nil
}

// buildProvider constructs the provider chain from flags and config.
// The primary provider sits behind a circuit breaker; when the primary
// is Google and an OpenAI key is also configured, OpenAI serves as
// fallback.
func buildProvider(flags *cli.Flags) (translation.Provider, error) {
	providerName := flags.Provider
	if providerName == "google" && viper.IsSet("translate.provider") {
		providerName = viper.GetString("translate.provider")
	}

	config := &translation.Config{
		Provider:     providerName,
		GoogleAPIKey: cli.GetGoogleAPIKey(),
		OpenAIKey:    cli.GetOpenAIKey(),
		GeminiKey:    cli.GetGeminiKey(),
	}

	primary, err := translation.NewProvider(config)
	if err != nil {
		return nil, err
	}

	provider := translation.NewBreakerProvider(primary)

	if providerName == "google" && config.OpenAIKey != "" {
		fallback := translation.NewOpenAIProvider(config.OpenAIKey)
		return translation.NewProviderWithFallback(provider, fallback), nil
	}

	return provider, nil
}

// DataDir resolves the data directory from flags and config
func DataDir(flags *cli.Flags) string {
	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".local", "state", "cloudtranslate")

	// A flag value other than the default means the user set it explicitly
	if flags.DataDir != "" && flags.DataDir != defaultDataDir {
		return flags.DataDir
	}
	if dir := viper.GetString("data.directory"); dir != "" {
		return dir
	}
	return defaultDataDir
}

// TranslateOne translates a single text from the command line
func (p *Processor) TranslateOne(text string) error {
	result, err := p.translate(text)
	if err != nil {
		return err
	}

	fmt.Println(result)
	fmt.Fprintf(os.Stderr, "Usage this month: %d / %d chars (Remaining: %d)\n",
		p.tracker.Used(), p.tracker.Limit(), p.tracker.Remaining())
	return nil
}

// ProcessBatch translates every line of the batch file
func (p *Processor) ProcessBatch() error {
	lines, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	processedCount := 0
	errorCount := 0

	for i, line := range lines {
		fmt.Fprintf(os.Stderr, "Translating %d/%d: %s\n", i+1, len(lines), internal.Truncate(line, 60))

		result, err := p.translate(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error translating '%s': %v\n", internal.Truncate(line, 60), err)
			errorCount++
			// Continue with next line
			continue
		}

		fmt.Println(result)
		processedCount++
	}

	// Print summary
	fmt.Fprintf(os.Stderr, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(os.Stderr, "Total lines: %d\n", len(lines))
	fmt.Fprintf(os.Stderr, "Translated: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(os.Stderr, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(os.Stderr, "Usage this month: %d / %d chars (Remaining: %d)\n",
		p.tracker.Used(), p.tracker.Limit(), p.tracker.Remaining())
	fmt.Fprintf(os.Stderr, "=================================\n")

	return nil
}

// translate resolves a single request through the cache, the provider,
// the usage tracker and the history log.
func (p *Processor) translate(text string) (string, error) {
	from, to := p.flags.FromLang, p.flags.ToLang
	if !language.Supported(from) {
		return "", fmt.Errorf("unsupported source language: %s", from)
	}
	if !language.Supported(to) {
		return "", fmt.Errorf("unsupported target language: %s", to)
	}

	// Cached results are free: no quota, no history entry
	if p.cache != nil {
		if cached, found := p.cache.Get(text, from, to); found {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), translateTimeout)
	defer cancel()

	result, err := p.provider.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}

	if err := p.tracker.RecordUsage(internal.CountChars(text)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record usage: %v\n", err)
	}

	entry := history.Entry{
		Date:           time.Now().Format("2006-01-02"),
		SourceLang:     from,
		TargetLang:     to,
		SourceText:     text,
		TranslatedText: result,
	}
	if err := p.history.Append(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}

	if p.cache != nil {
		if err := p.cache.Put(text, from, to, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache translation: %v\n", err)
		}
	}

	return result, nil
}

// ShowHistory prints the translation history grouped by day
func (p *Processor) ShowHistory() {
	if p.history.Len() == 0 {
		fmt.Println("No translations in history.")
		return
	}

	for _, group := range p.history.ByDate() {
		fmt.Printf("=== %s ===\n", group.Date)
		for _, e := range group.Entries {
			fmt.Printf("%s -> %s: %s\n", e.SourceLang, e.TargetLang, internal.Truncate(e.SourceText, 60))
			fmt.Printf("  %s\n", internal.Truncate(e.TranslatedText, 60))
		}
	}
}

// ShowUsage prints this month's character usage
func (p *Processor) ShowUsage() {
	fmt.Printf("Usage this month: %d / %d chars (Remaining: %d)\n",
		p.tracker.Used(), p.tracker.Limit(), p.tracker.Remaining())
	fmt.Printf("Quota resets: %s\n", p.tracker.NextReset().Format("2006-01-02"))
}

// ClearHistory removes all history entries
func (p *Processor) ClearHistory() error {
	if err := p.history.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("Translation history cleared.")
	return nil
}

// ListLanguages prints the supported languages
func (p *Processor) ListLanguages() {
	for _, code := range language.Codes() {
		fmt.Println(language.Format(code))
	}
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		Provider:    p.provider,
		Tracker:     p.tracker,
		History:     p.history,
		Cache:       p.cache,
		DefaultFrom: p.flags.FromLang,
		DefaultTo:   p.flags.ToLang,
	}

	app := gui.New(guiConfig)
	app.Run()

	return nil
}

// Close releases the processor's resources
func (p *Processor) Close() error {
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}
