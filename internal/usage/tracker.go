// Package usage tracks translated characters against a monthly quota.
//
// The count is persisted to a small JSON file after every mutation so
// an interrupted session never loses more than the in-flight
// translation. The accounting window is a calendar month; loading
// state from a previous month resets the count to zero.
package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State is the persisted usage record
type State struct {
	Period         string `json:"period"`
	CharactersUsed int    `json:"charactersUsed"`
}

// Tracker tracks character usage for the current calendar month.
// It is not safe for concurrent use; the application calls it from
// the UI event flow only.
type Tracker struct {
	path  string
	limit int
	now   func() time.Time
	state State
}

// NewTracker creates a tracker persisting to path with the given
// monthly character limit.
func NewTracker(path string, limit int) *Tracker {
	return NewTrackerWithClock(path, limit, time.Now)
}

// NewTrackerWithClock creates a tracker with an injected clock, used
// by tests to drive month rollover deterministically.
func NewTrackerWithClock(path string, limit int, now func() time.Time) *Tracker {
	return &Tracker{
		path:  path,
		limit: limit,
		now:   now,
	}
}

// currentPeriod returns the accounting window for the current time,
// e.g. "2024-05"
func (t *Tracker) currentPeriod() string {
	return t.now().Format("2006-01")
}

// Load reads persisted state from disk. A missing or unreadable file
// means "start fresh" and is never an error. If the stored period is
// not the current month the count resets to zero and the reset is
// persisted immediately.
func (t *Tracker) Load() {
	period := t.currentPeriod()
	t.state = State{Period: period}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return
	}

	var stored State
	if err := json.Unmarshal(data, &stored); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unreadable usage state, starting fresh: %v\n", err)
		return
	}

	if stored.Period != period || stored.CharactersUsed < 0 {
		// New month (or garbage count): reset and persist so a crash
		// before the first translation still records the rollover
		t.state = State{Period: period}
		if err := t.save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist usage reset: %v\n", err)
		}
		return
	}

	t.state = stored
}

// Used returns the characters recorded for the current period
func (t *Tracker) Used() int {
	return t.state.CharactersUsed
}

// Limit returns the configured monthly character limit
func (t *Tracker) Limit() int {
	return t.limit
}

// Period returns the accounting period currently loaded
func (t *Tracker) Period() string {
	return t.state.Period
}

// Remaining returns the characters left this month, clamped at zero
func (t *Tracker) Remaining() int {
	remaining := t.limit - t.state.CharactersUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WouldExceed reports whether translating charCount more characters
// would push usage past the monthly limit. It never blocks recording;
// the caller decides whether to warn or proceed.
func (t *Tracker) WouldExceed(charCount int) bool {
	return t.state.CharactersUsed+charCount > t.limit
}

// RecordUsage adds charCount to the running total and persists the
// state immediately. The increment is kept in memory even when the
// write fails, so the caller can log the error and continue.
func (t *Tracker) RecordUsage(charCount int) error {
	if charCount < 0 {
		return fmt.Errorf("negative character count: %d", charCount)
	}

	// Roll over if the month changed while the process was running
	if period := t.currentPeriod(); t.state.Period != period {
		t.state = State{Period: period}
	}

	t.state.CharactersUsed += charCount
	return t.save()
}

// NextReset returns the first day of the month following the current
// accounting period.
func (t *Tracker) NextReset() time.Time {
	start, err := time.Parse("2006-01", t.state.Period)
	if err != nil {
		start = t.now()
	}
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// save writes the state atomically: temp file in the same directory,
// then rename, so an interrupted write cannot corrupt existing state.
func (t *Tracker) save() error {
	data, err := json.MarshalIndent(t.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode usage state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".usage-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp usage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write usage state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close usage state: %w", err)
	}

	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace usage state: %w", err)
	}
	return nil
}
