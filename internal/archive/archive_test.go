package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveData(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()

	// Create data directory with some test files
	dataDir := filepath.Join(tmpDir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data directory: %v", err)
	}

	// Create some test files in data directory
	usageFile := filepath.Join(dataDir, "usage.json")
	if err := os.WriteFile(usageFile, []byte(`{"period":"2026-08","charactersUsed":42}`), 0644); err != nil {
		t.Fatalf("Failed to create usage file: %v", err)
	}
	historyFile := filepath.Join(dataDir, "history.json")
	if err := os.WriteFile(historyFile, []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to create history file: %v", err)
	}

	// Archive the data directory
	if err := ArchiveData(dataDir); err != nil {
		t.Fatalf("ArchiveData failed: %v", err)
	}

	// Check that data directory no longer exists
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Error("Data directory still exists after archiving")
	}

	// Check that archive directory was created
	archiveDir := filepath.Join(tmpDir, "archive")
	if _, err := os.Stat(archiveDir); os.IsNotExist(err) {
		t.Error("Archive directory was not created")
	}

	// Check that archived directory exists with timestamp
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry in archive directory, got %d", len(entries))
	}

	// Verify the archived directory name starts with "data-"
	archivedName := entries[0].Name()
	if !strings.HasPrefix(archivedName, "data-") {
		t.Errorf("Archived directory name doesn't start with 'data-': %s", archivedName)
	}

	// Verify timestamp format (should be data-YYYYMMDD-HHMMSS)
	parts := strings.Split(archivedName, "-")
	if len(parts) < 3 {
		t.Errorf("Invalid archive name format: %s", archivedName)
	}

	// Check that archived files exist
	archivedPath := filepath.Join(archiveDir, archivedName)
	for _, name := range []string{"usage.json", "history.json"} {
		if _, err := os.Stat(filepath.Join(archivedPath, name)); os.IsNotExist(err) {
			t.Errorf("%s not found in archive", name)
		}
	}
}

func TestArchiveData_NonExistentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentDir := filepath.Join(tmpDir, "nonexistent")

	err := ArchiveData(nonExistentDir)
	if err == nil {
		t.Error("Expected error for non-existent directory")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveData_MultipleArchives(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()

	// Archive twice to ensure unique timestamps
	for i := 0; i < 2; i++ {
		// Create data directory
		dataDir := filepath.Join(tmpDir, "data")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			t.Fatalf("Failed to create data directory: %v", err)
		}

		// Create a test file
		testFile := filepath.Join(dataDir, "usage.json")
		content := []byte("test content " + string(rune('0'+i)))
		if err := os.WriteFile(testFile, content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		// Small delay to ensure different timestamps
		if i == 1 {
			time.Sleep(10 * time.Millisecond)
		}

		// Archive
		if err := ArchiveData(dataDir); err != nil {
			t.Fatalf("ArchiveData failed on iteration %d: %v", i, err)
		}
	}

	// Check that we have 2 archives
	archiveDir := filepath.Join(tmpDir, "archive")
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries in archive directory, got %d", len(entries))
	}

	// Verify both archives have different names
	if entries[0].Name() == entries[1].Name() {
		t.Error("Archive names are not unique")
	}
}
