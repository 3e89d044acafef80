// Package translation provides text translation between languages
// through pluggable cloud providers (Google Cloud Translation, OpenAI,
// Gemini), with optional fallback chaining and circuit breaking.
package translation
