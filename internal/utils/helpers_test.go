package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	if got := AtoiDefault("", 7); got != 7 {
		t.Fatalf("empty: got %d", got)
	}
	if got := AtoiDefault("abc", 7); got != 7 {
		t.Fatalf("garbage: got %d", got)
	}
	if got := AtoiDefault("42", 7); got != 42 {
		t.Fatalf("valid: got %d", got)
	}
	if got := AtoiDefault("-3", 7); got != -3 {
		t.Fatalf("negative: got %d", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 50); got != 1 {
		t.Fatalf("below: got %d", got)
	}
	if got := ClampInt(100, 1, 50); got != 50 {
		t.Fatalf("above: got %d", got)
	}
	if got := ClampInt(10, 1, 50); got != 10 {
		t.Fatalf("inside: got %d", got)
	}
}
