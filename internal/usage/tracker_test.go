package usage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock(value string) func() time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestLoad_NoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tracker := NewTrackerWithClock(path, 1000, fixedClock("2024-05-10"))
	tracker.Load()

	if tracker.Used() != 0 {
		t.Errorf("Expected 0 used, got %d", tracker.Used())
	}
	if tracker.Period() != "2024-05" {
		t.Errorf("Expected period '2024-05', got '%s'", tracker.Period())
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	tracker := NewTrackerWithClock(path, 1000, fixedClock("2024-05-10"))
	tracker.Load()

	if tracker.Used() != 0 {
		t.Errorf("Expected fresh state after corrupt file, got %d used", tracker.Used())
	}
}

func TestLoad_MonthRollover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	april := NewTrackerWithClock(path, 1000, fixedClock("2024-04-20"))
	april.Load()
	if err := april.RecordUsage(300); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	may := NewTrackerWithClock(path, 1000, fixedClock("2024-05-01"))
	may.Load()

	if may.Used() != 0 {
		t.Errorf("Expected reset to 0 after rollover, got %d", may.Used())
	}
	if may.Period() != "2024-05" {
		t.Errorf("Expected period '2024-05', got '%s'", may.Period())
	}

	// The reset must have been persisted
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read usage file: %v", err)
	}
	if !strings.Contains(string(data), "2024-05") {
		t.Errorf("Persisted state not rolled over: %s", data)
	}
}

func TestLoad_SamePeriodKeepsCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	first := NewTrackerWithClock(path, 1000, fixedClock("2024-05-02"))
	first.Load()
	if err := first.RecordUsage(450); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	second := NewTrackerWithClock(path, 1000, fixedClock("2024-05-28"))
	second.Load()

	if second.Used() != 450 {
		t.Errorf("Expected 450 used after reload, got %d", second.Used())
	}
}

func TestRecordUsage_Accumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tracker := NewTrackerWithClock(path, 10000, fixedClock("2024-05-10"))
	tracker.Load()

	counts := []int{100, 0, 250, 7}
	total := 0
	for _, n := range counts {
		if err := tracker.RecordUsage(n); err != nil {
			t.Fatalf("RecordUsage(%d) failed: %v", n, err)
		}
		total += n
	}

	if tracker.Used() != total {
		t.Errorf("Expected %d used, got %d", total, tracker.Used())
	}
	if tracker.Remaining() != 10000-total {
		t.Errorf("Expected %d remaining, got %d", 10000-total, tracker.Remaining())
	}
}

func TestRecordUsage_Negative(t *testing.T) {
	tracker := NewTrackerWithClock(filepath.Join(t.TempDir(), "usage.json"), 1000, fixedClock("2024-05-10"))
	tracker.Load()

	if err := tracker.RecordUsage(-5); err == nil {
		t.Error("Expected error for negative count")
	}
}

func TestRemaining_ClampedAtZero(t *testing.T) {
	tracker := NewTrackerWithClock(filepath.Join(t.TempDir(), "usage.json"), 100, fixedClock("2024-05-10"))
	tracker.Load()

	if err := tracker.RecordUsage(150); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	if tracker.Remaining() != 0 {
		t.Errorf("Expected 0 remaining, got %d", tracker.Remaining())
	}
}

func TestWouldExceed(t *testing.T) {
	tracker := NewTrackerWithClock(filepath.Join(t.TempDir(), "usage.json"), 100, fixedClock("2024-05-10"))
	tracker.Load()
	if err := tracker.RecordUsage(90); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	if !tracker.WouldExceed(20) {
		t.Error("Expected WouldExceed(20) to be true at 90/100")
	}
	if tracker.WouldExceed(5) {
		t.Error("Expected WouldExceed(5) to be false at 90/100")
	}

	// The tracker reports but never refuses
	if err := tracker.RecordUsage(5); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}
	if tracker.Used() != 95 {
		t.Errorf("Expected 95 used, got %d", tracker.Used())
	}
	if tracker.Remaining() != 5 {
		t.Errorf("Expected 5 remaining, got %d", tracker.Remaining())
	}
}

func TestRecordUsage_RolloverMidSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	current := "2024-04-30"
	clock := func() time.Time {
		v, _ := time.Parse("2006-01-02", current)
		return v
	}

	tracker := NewTrackerWithClock(path, 1000, clock)
	tracker.Load()
	if err := tracker.RecordUsage(500); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	// Month flips while the process is still running
	current = "2024-05-01"
	if err := tracker.RecordUsage(10); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	if tracker.Used() != 10 {
		t.Errorf("Expected 10 used after mid-session rollover, got %d", tracker.Used())
	}
	if tracker.Period() != "2024-05" {
		t.Errorf("Expected period '2024-05', got '%s'", tracker.Period())
	}
}

func TestNextReset(t *testing.T) {
	tracker := NewTrackerWithClock(filepath.Join(t.TempDir(), "usage.json"), 1000, fixedClock("2024-12-15"))
	tracker.Load()

	reset := tracker.NextReset()
	if reset.Year() != 2025 || reset.Month() != time.January || reset.Day() != 1 {
		t.Errorf("Expected reset 2025-01-01, got %s", reset.Format("2006-01-02"))
	}
}

func TestSave_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTrackerWithClock(filepath.Join(dir, "usage.json"), 1000, fixedClock("2024-05-10"))
	tracker.Load()
	if err := tracker.RecordUsage(42); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".usage-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestPersistedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	tracker := NewTrackerWithClock(path, 1000, fixedClock("2024-05-10"))
	tracker.Load()
	if err := tracker.RecordUsage(123); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	content := string(data)
	for _, want := range []string{`"period"`, `"2024-05"`, `"charactersUsed"`, `123`} {
		if !strings.Contains(content, want) {
			t.Errorf("Persisted state missing %s: %s", want, content)
		}
	}
}
