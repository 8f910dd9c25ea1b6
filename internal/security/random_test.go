package security

import (
	"testing"
	"time"
)

func TestGenerateToken_Length(t *testing.T) {
	tok, err := GenerateToken(64)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length want 64, got %d", len(tok))
	}
	for _, c := range tok {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("token contains non-hex char %q", c)
		}
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	a, err := GenerateToken(64)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	b, err := GenerateToken(64)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if a == b {
		t.Error("two generated tokens should differ")
	}
}

func TestGenerateTokenWithExpiry(t *testing.T) {
	before := time.Now().UTC()
	tok, exp, err := GenerateTokenWithExpiry(64, time.Hour)
	if err != nil {
		t.Fatalf("GenerateTokenWithExpiry: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length want 64, got %d", len(tok))
	}
	if exp.Before(before.Add(59 * time.Minute)) {
		t.Errorf("expiry too early: %v", exp)
	}
	if exp.After(before.Add(61 * time.Minute)) {
		t.Errorf("expiry too late: %v", exp)
	}
}
