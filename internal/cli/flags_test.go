package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"FromLang", flags.FromLang, "en"},
		{"ToLang", flags.ToLang, "th"},
		{"Provider", flags.Provider, "google"},
		{"MonthlyLimit", flags.MonthlyLimit, 500000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ShowHistory", flags.ShowHistory},
		{"ShowUsage", flags.ShowUsage},
		{"ClearHistory", flags.ClearHistory},
		{"Archive", flags.Archive},
		{"ListLanguages", flags.ListLanguages},
		{"NoCache", flags.NoCache},
		{"GUIMode", flags.GUIMode},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"BatchFile", flags.BatchFile},
		{"DataDir", flags.DataDir},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsStructure(t *testing.T) {
	// Test that Flags struct has all expected fields
	flags := &Flags{}
	flagsType := reflect.TypeOf(*flags)

	expectedFields := []string{
		"CfgFile", "FromLang", "ToLang", "BatchFile", "Provider",
		"DataDir", "MonthlyLimit", "ShowHistory", "ShowUsage",
		"ClearHistory", "Archive", "ListLanguages", "NoCache", "GUIMode",
	}

	for _, fieldName := range expectedFields {
		t.Run("has_field_"+fieldName, func(t *testing.T) {
			if _, ok := flagsType.FieldByName(fieldName); !ok {
				t.Errorf("Flags struct missing field: %s", fieldName)
			}
		})
	}
}
