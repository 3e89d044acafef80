// Package history keeps a bounded, persisted log of past translations.
//
// Entries are ordered newest first, both in memory and on disk, and
// the log is capped at MaxEntries: once full, each append evicts the
// oldest insertion. Eviction is strictly FIFO by insertion order, not
// by the date value, so a skewed clock cannot grow the file without
// bound.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MaxEntries is the retention cap for the history log
const MaxEntries = 500

// Entry is a single past translation
type Entry struct {
	Date           string `json:"date"` // YYYY-MM-DD
	SourceLang     string `json:"sourceLang"`
	TargetLang     string `json:"targetLang"`
	SourceText     string `json:"sourceText"`
	TranslatedText string `json:"translatedText"`
}

// DayGroup is a run of entries sharing a date, for grouped display
type DayGroup struct {
	Date    string
	Entries []Entry
}

// Log is a durable, bounded translation history. Not safe for
// concurrent use; called from the UI event flow only.
type Log struct {
	path    string
	entries []Entry
}

// NewLog creates a history log persisting to path
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Load reads the persisted entries. A missing or unreadable file is
// treated as an empty log and is never an error.
func (l *Log) Load() {
	l.entries = nil

	data, err := os.ReadFile(l.path)
	if err != nil {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unreadable history, starting empty: %v\n", err)
		return
	}

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.entries = entries
}

// Append inserts the entry at the front, evicts past the retention
// cap, and persists the whole sequence.
func (l *Log) Append(e Entry) error {
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return l.save()
}

// All returns a copy of the entries, newest first
func (l *Log) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear empties the log and persists the empty state
func (l *Log) Clear() error {
	l.entries = nil
	return l.save()
}

// ByDate groups consecutive entries sharing a date, preserving the
// newest-first order within and across groups.
func (l *Log) ByDate() []DayGroup {
	var groups []DayGroup
	for _, e := range l.entries {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DayGroup{Date: e.Date, Entries: []Entry{e}})
	}
	return groups
}

// save writes the entries atomically via temp file + rename
func (l *Log) save() error {
	entries := l.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close history: %w", err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}
