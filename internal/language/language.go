// Package language holds the supported language table and the grouped
// display list shown in the From/To selectors.
package language

import "strings"

// Names maps supported language codes to English names
var Names = map[string]string{
	"en": "English",
	"th": "Thai",
	"ar": "Arabic",
	"zh": "Chinese",
	"fr": "French",
	"ru": "Russian",
	"es": "Spanish",
	"ja": "Japanese",
	"ko": "Korean",
	"de": "German",
}

// Display groups, in presentation order
var (
	mainCodes  = []string{"en", "th"}
	whoCodes   = []string{"ar", "zh", "fr", "ru", "es"}
	extraCodes = []string{"ja", "ko", "de"}
)

const (
	whoSeparator   = "--- WHO Languages ---"
	extraSeparator = "--- Extra Languages ---"
)

// Format renders a code as "Name (code)" for display. Unknown codes
// fall back to "code (code)" so the UI never shows an empty label.
func Format(code string) string {
	name, ok := Names[code]
	if !ok {
		name = code
	}
	return name + " (" + code + ")"
}

// DisplayList returns the selector entries: main languages first, then
// the WHO working languages, then the extras, with separator rows
// between groups.
func DisplayList() []string {
	display := make([]string, 0, len(Names)+2)
	for _, c := range mainCodes {
		display = append(display, Format(c))
	}
	display = append(display, whoSeparator)
	for _, c := range whoCodes {
		display = append(display, Format(c))
	}
	display = append(display, extraSeparator)
	for _, c := range extraCodes {
		display = append(display, Format(c))
	}
	return display
}

// IsSeparator reports whether a display entry is a group separator
// rather than a selectable language.
func IsSeparator(display string) bool {
	return strings.HasPrefix(strings.TrimSpace(display), "---")
}

// Parse extracts the language code from a display entry,
// e.g. "English (en)" -> "en". Plain codes pass through unchanged.
func Parse(display string) string {
	if open := strings.LastIndex(display, "("); open >= 0 {
		if close := strings.Index(display[open:], ")"); close >= 0 {
			return display[open+1 : open+close]
		}
	}
	return display
}

// DisplayFor returns the display entry for a code, or the first real
// entry of the list when the code is not present.
func DisplayFor(code string, list []string) string {
	suffix := "(" + code + ")"
	for _, item := range list {
		if IsSeparator(item) {
			continue
		}
		if strings.HasSuffix(item, suffix) {
			return item
		}
	}
	for _, item := range list {
		if !IsSeparator(item) {
			return item
		}
	}
	return ""
}

// Codes returns all supported codes in presentation order
func Codes() []string {
	codes := make([]string, 0, len(Names))
	codes = append(codes, mainCodes...)
	codes = append(codes, whoCodes...)
	codes = append(codes, extraCodes...)
	return codes
}

// Supported reports whether code is in the language table
func Supported(code string) bool {
	_, ok := Names[code]
	return ok
}
