package gui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/cloudtranslate/internal"
	"codeberg.org/snonux/cloudtranslate/internal/cache"
	"codeberg.org/snonux/cloudtranslate/internal/history"
	"codeberg.org/snonux/cloudtranslate/internal/language"
	"codeberg.org/snonux/cloudtranslate/internal/translation"
	"codeberg.org/snonux/cloudtranslate/internal/usage"
)

// largeTextThreshold is the character count above which a translation
// request asks for confirmation before spending quota.
const largeTextThreshold = 5000

// translateTimeout bounds a single provider call
const translateTimeout = 20 * time.Second

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	fromSelect      *widget.Select
	toSelect        *widget.Select
	inputEntry      *CustomMultiLineEntry
	outputEntry     *widget.Entry
	charCountLabel  *widget.Label
	usageLabel      *widget.Label
	resetLabel      *widget.Label
	statusLabel     *widget.Label
	translateButton *ttwidget.Button
	historyView     *HistoryView

	// Last valid selections, restored when a separator row is picked
	lastFromValid string
	lastToValid   string

	translating bool

	// Configuration
	config *Config
}

// Config holds GUI application configuration
type Config struct {
	Provider    translation.Provider
	Tracker     *usage.Tracker
	History     *history.Log
	Cache       *cache.Cache
	DefaultFrom string
	DefaultTo   string
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config.DefaultFrom == "" {
		config.DefaultFrom = "en"
	}
	if config.DefaultTo == "" {
		config.DefaultTo = "th"
	}

	myApp := app.NewWithID("org.codeberg.snonux.cloudtranslate")

	a := &Application{
		app:    myApp,
		config: config,
	}

	a.setupUI()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("CloudTranslate v%s", internal.Version))
	a.window.Resize(fyne.NewSize(900, 600))

	displayList := language.DisplayList()

	a.lastFromValid = language.DisplayFor(a.config.DefaultFrom, displayList)
	a.lastToValid = language.DisplayFor(a.config.DefaultTo, displayList)

	a.fromSelect = widget.NewSelect(displayList, func(selected string) {
		// Separator rows are headings, not languages
		if language.IsSeparator(selected) {
			a.fromSelect.SetSelected(a.lastFromValid)
			return
		}
		a.lastFromValid = selected
	})
	a.fromSelect.SetSelected(a.lastFromValid)

	a.toSelect = widget.NewSelect(displayList, func(selected string) {
		if language.IsSeparator(selected) {
			a.toSelect.SetSelected(a.lastToValid)
			return
		}
		a.lastToValid = selected
	})
	a.toSelect.SetSelected(a.lastToValid)

	swapButton := ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onSwapLanguages)

	languageSection := container.NewHBox(
		widget.NewLabel("From:"),
		a.fromSelect,
		swapButton,
		widget.NewLabel("To:"),
		a.toSelect,
	)

	// Input section
	a.inputEntry = NewCustomMultiLineEntry()
	a.inputEntry.SetPlaceHolder("Text to translate... Press Escape to exit field")
	a.inputEntry.Wrapping = fyne.TextWrapWord
	a.inputEntry.OnChanged = func(text string) {
		a.charCountLabel.SetText(fmt.Sprintf("%d chars", internal.CountChars(text)))
	}
	a.inputEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})

	a.charCountLabel = widget.NewLabel("0 chars")

	pasteButton := ttwidget.NewButtonWithIcon("", theme.ContentPasteIcon(), a.onPaste)
	clearButton := ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.onClear)

	inputToolbar := container.NewHBox(pasteButton, clearButton, a.charCountLabel)
	inputSection := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Source:"), inputToolbar),
		nil, nil, nil,
		container.NewScroll(a.inputEntry),
	)

	// Output section
	a.outputEntry = widget.NewMultiLineEntry()
	a.outputEntry.Disable()
	a.outputEntry.Wrapping = fyne.TextWrapWord

	copyButton := ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopy)
	exportButton := ttwidget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.onExport)

	outputToolbar := container.NewHBox(copyButton, exportButton)
	outputSection := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Translation:"), outputToolbar),
		nil, nil, nil,
		container.NewScroll(a.outputEntry),
	)

	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance

	textSection := container.NewVSplit(inputSection, outputSection)
	textSection.SetOffset(0.5)

	// History pane on the right
	a.historyView = NewHistoryView(a.config.History)

	mainSection := container.NewHSplit(textSection, a.historyView)
	mainSection.SetOffset(0.7)

	// Status section
	a.usageLabel = widget.NewLabel("")
	a.resetLabel = widget.NewLabel("")
	a.resetLabel.TextStyle = fyne.TextStyle{Italic: true}
	a.statusLabel = widget.NewLabel("Ready")
	a.updateUsageLabels()

	statusSection := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(a.usageLabel, a.resetLabel),
		a.statusLabel,
	)

	content := container.NewBorder(
		container.NewVBox(languageSection, widget.NewSeparator()),
		container.NewVBox(a.translateButton, statusSection),
		nil, nil,
		mainSection,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Now that the tooltip layer is created, set all tooltips
	swapButton.SetToolTip("Swap languages")
	pasteButton.SetToolTip("Paste from clipboard")
	clearButton.SetToolTip("Clear input")
	copyButton.SetToolTip("Copy translation")
	exportButton.SetToolTip("Export translation to file")
	a.translateButton.SetToolTip("Translate the source text")

	a.window.SetCloseIntercept(func() {
		dialog.ShowConfirm("Quit", "Close CloudTranslate?", func(confirmed bool) {
			if confirmed {
				a.window.Close()
			}
		}, a.window)
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onSwapLanguages exchanges the source and target language selections
func (a *Application) onSwapLanguages() {
	from, to := a.lastFromValid, a.lastToValid
	a.fromSelect.SetSelected(to)
	a.toSelect.SetSelected(from)
}

// onPaste replaces the input with the clipboard content
func (a *Application) onPaste() {
	if content := a.window.Clipboard().Content(); content != "" {
		a.inputEntry.SetText(content)
	}
}

// onClear clears the input and output fields
func (a *Application) onClear() {
	a.inputEntry.SetText("")
	a.outputEntry.SetText("")
	a.updateStatus("Ready")
}

// onCopy copies the translation to the clipboard
func (a *Application) onCopy() {
	text := a.outputEntry.Text
	if text == "" {
		return
	}
	a.window.Clipboard().SetContent(text)
	a.updateStatus("Translation copied to clipboard")
}

// onExport saves the translation to a text file
func (a *Application) onExport() {
	text := a.outputEntry.Text
	if text == "" {
		dialog.ShowInformation("Export", "Nothing to export yet.", a.window)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return // Cancelled
		}
		defer writer.Close()

		if _, err := writer.Write([]byte(text)); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export translation: %w", err), a.window)
			return
		}
		a.updateStatus(fmt.Sprintf("Exported to %s", writer.URI().Name()))
	}, a.window)
	saveDialog.SetFileName("translation.txt")
	saveDialog.Show()
}

// onTranslate runs the confirmation chain and starts the translation
func (a *Application) onTranslate() {
	text := a.inputEntry.Text
	if strings.TrimSpace(text) == "" {
		dialog.ShowInformation("Nothing to translate", "Enter some text first.", a.window)
		return
	}
	if a.translating {
		return
	}

	from := language.Parse(a.lastFromValid)
	to := language.Parse(a.lastToValid)

	a.confirmSameLanguage(from, to, func() {
		a.confirmLargeText(text, func() {
			a.confirmQuota(text, func() {
				a.startTranslation(text, from, to)
			})
		})
	})
}

// confirmSameLanguage asks before translating a text into its own
// language.
func (a *Application) confirmSameLanguage(from, to string, next func()) {
	if from != to {
		next()
		return
	}
	dialog.ShowConfirm("Same language",
		fmt.Sprintf("Source and target language are both %s. Translate anyway?", language.Format(from)),
		func(confirmed bool) {
			if confirmed {
				next()
			}
		}, a.window)
}

// confirmLargeText asks before sending a large text to the API
func (a *Application) confirmLargeText(text string, next func()) {
	count := internal.CountChars(text)
	if count < largeTextThreshold {
		next()
		return
	}
	dialog.ShowConfirm("Large text",
		fmt.Sprintf("This will send %d characters to the translation API. Continue?", count),
		func(confirmed bool) {
			if confirmed {
				next()
			}
		}, a.window)
}

// confirmQuota warns when the request would exceed the monthly quota.
// The quota is advisory, the user may always proceed.
func (a *Application) confirmQuota(text string, next func()) {
	count := internal.CountChars(text)
	if !a.config.Tracker.WouldExceed(count) {
		next()
		return
	}
	dialog.ShowConfirm("Quota warning",
		fmt.Sprintf("This translation (%d chars) would exceed your monthly quota of %d characters.\nUsed so far: %d. Continue anyway?",
			count, a.config.Tracker.Limit(), a.config.Tracker.Used()),
		func(confirmed bool) {
			if confirmed {
				next()
			}
		}, a.window)
}

// startTranslation performs the translation in the background
func (a *Application) startTranslation(text, from, to string) {
	a.translating = true
	a.translateButton.Disable()
	a.updateStatus("Translating...")

	go func() {
		result, cached, err := a.translate(text, from, to)

		fyne.Do(func() {
			a.translating = false
			a.translateButton.Enable()

			if err != nil {
				a.updateStatus("Translation failed")
				dialog.ShowError(fmt.Errorf("Translation failed: %w", err), a.window)
				return
			}

			a.outputEntry.SetText(result)
			a.updateUsageLabels()
			if cached {
				a.updateStatus("Translation served from cache")
			} else {
				a.updateStatus("Ready")
			}
		})

		if !cached {
			a.historyView.Reload()
		}
	}()
}

// translate resolves a request through the cache, the provider, the
// usage tracker and the history log.
func (a *Application) translate(text, from, to string) (result string, cached bool, err error) {
	// Cached results are free: no quota, no history entry
	if a.config.Cache != nil {
		if hit, found := a.config.Cache.Get(text, from, to); found {
			return hit, true, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), translateTimeout)
	defer cancel()

	result, err = a.config.Provider.Translate(ctx, text, from, to)
	if err != nil {
		return "", false, err
	}

	if err := a.config.Tracker.RecordUsage(internal.CountChars(text)); err != nil {
		fyne.Do(func() {
			a.updateStatus(fmt.Sprintf("Warning: failed to record usage: %v", err))
		})
	}

	entry := history.Entry{
		Date:           time.Now().Format("2006-01-02"),
		SourceLang:     from,
		TargetLang:     to,
		SourceText:     text,
		TranslatedText: result,
	}
	if err := a.config.History.Append(entry); err != nil {
		fyne.Do(func() {
			a.updateStatus(fmt.Sprintf("Warning: failed to save history: %v", err))
		})
	}

	if a.config.Cache != nil {
		a.config.Cache.Put(text, from, to, result)
	}

	return result, false, nil
}

// updateUsageLabels refreshes the quota labels from the tracker
func (a *Application) updateUsageLabels() {
	t := a.config.Tracker
	a.usageLabel.SetText(fmt.Sprintf("Usage this month: %d / %d chars (Remaining: %d)",
		t.Used(), t.Limit(), t.Remaining()))
	a.resetLabel.SetText(fmt.Sprintf("Quota resets: %s", t.NextReset().Format("2006-01-02")))
}

// updateStatus sets the status label text
func (a *Application) updateStatus(status string) {
	a.statusLabel.SetText(status)
}
