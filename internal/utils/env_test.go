package utils

import "testing"

func TestSafeEnv(t *testing.T) {
	t.Setenv("BLUCENTIA_TEST_KEY", "set")
	if got := SafeEnv("BLUCENTIA_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
	if got := SafeEnv("BLUCENTIA_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("BLUCENTIA_TEST_EMPTY", "")
	if got := SafeEnv("BLUCENTIA_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty value not treated as unset: %q", got)
	}
}
