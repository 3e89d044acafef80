package translation

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestBreakerProvider_PassesThrough(t *testing.T) {
	inner := &stubProvider{name: "stub", response: "hallo"}
	b := NewBreakerProvider(inner)

	result, err := b.Translate(context.Background(), "hello", "en", "de")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result != "hallo" {
		t.Errorf("Expected 'hallo', got '%s'", result)
	}
	if b.Name() != "stub" {
		t.Errorf("Expected name 'stub', got '%s'", b.Name())
	}
}

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &stubProvider{name: "stub", err: fmt.Errorf("connection refused")}
	b := NewBreakerProvider(inner)

	// Three consecutive failures trip the breaker
	for i := 0; i < 3; i++ {
		if _, err := b.Translate(context.Background(), "hello", "en", "de"); err == nil {
			t.Fatalf("Expected error on call %d", i+1)
		}
	}

	callsBefore := inner.calls
	_, err := b.Translate(context.Background(), "hello", "en", "de")
	if err == nil {
		t.Fatal("Expected error from open circuit")
	}
	if !strings.Contains(err.Error(), "unavailable") {
		t.Errorf("Expected friendly open-circuit error, got: %v", err)
	}
	if inner.calls != callsBefore {
		t.Errorf("Open circuit should not reach the provider, got %d extra calls", inner.calls-callsBefore)
	}
}

func TestBreakerProvider_StaysClosedOnSuccess(t *testing.T) {
	inner := &stubProvider{name: "stub", response: "ok"}
	b := NewBreakerProvider(inner)

	for i := 0; i < 10; i++ {
		if _, err := b.Translate(context.Background(), "hello", "en", "de"); err != nil {
			t.Fatalf("Translate failed on call %d: %v", i+1, err)
		}
	}
	if inner.calls != 10 {
		t.Errorf("Expected 10 provider calls, got %d", inner.calls)
	}
}
