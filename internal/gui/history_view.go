package gui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/cloudtranslate/internal"
	"codeberg.org/snonux/cloudtranslate/internal/history"
)

// HistoryView is a widget that displays the translation history
// grouped by day, newest first.
type HistoryView struct {
	widget.BaseWidget

	container  *fyne.Container
	historyLog *history.Log
	entry      *widget.Entry
	scrollView *container.Scroll

	mu sync.Mutex
}

// NewHistoryView creates a new history view widget
func NewHistoryView(log *history.Log) *HistoryView {
	v := &HistoryView{
		historyLog: log,
	}

	// Read-only multiline entry for the rendered history
	v.entry = widget.NewMultiLineEntry()
	v.entry.Disable()
	v.entry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.entry)
	v.scrollView.SetMinSize(fyne.NewSize(250, 0))
	v.scrollView.Direction = container.ScrollBoth

	v.container = container.NewBorder(
		widget.NewLabel("History (newest first):"),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	v.entry.SetText(renderHistory(log))
	return v
}

// CreateRenderer implements fyne.Widget
func (v *HistoryView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Reload re-renders the history from the log. Safe to call from any
// goroutine.
func (v *HistoryView) Reload() {
	v.mu.Lock()
	defer v.mu.Unlock()

	text := renderHistory(v.historyLog)

	fyne.Do(func() {
		v.entry.SetText(text)
		// Keep scroll at top to show newest entries
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// renderHistory formats the history log for display
func renderHistory(log *history.Log) string {
	if log == nil || log.Len() == 0 {
		return "No translations yet."
	}

	var b strings.Builder
	for _, group := range log.ByDate() {
		fmt.Fprintf(&b, "=== %s ===\n", group.Date)
		for _, e := range group.Entries {
			fmt.Fprintf(&b, "%s -> %s (%d chars)\n", e.SourceLang, e.TargetLang, internal.CountChars(e.SourceText))
			fmt.Fprintf(&b, "  %s\n", internal.Truncate(e.SourceText, 60))
			fmt.Fprintf(&b, "  %s\n", internal.Truncate(e.TranslatedText, 60))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
