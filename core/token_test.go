package core

import (
	"context"
	"encoding/base64"
	"testing"
)

func TestOpaqueTokenIssuer_GeneratesUniqueURLSafeTokens(t *testing.T) {
	issuer := OpaqueTokenIssuer{}

	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		token, err := issuer.GenerateToken(context.Background())
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		if token == "" {
			t.Fatalf("expected non-empty token")
		}
		if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
			t.Fatalf("expected url-safe token, got %q: %v", token, err)
		}
		if seen[token] {
			t.Fatalf("expected unique tokens, %q repeated", token)
		}
		seen[token] = true
	}
}

func TestOpaqueTokenIssuer_HonorsConfiguredByteLength(t *testing.T) {
	issuer := OpaqueTokenIssuer{Bytes: 16}

	token, err := issuer.GenerateToken(context.Background())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if len(decoded) != 16 {
		t.Fatalf("expected 16 bytes of entropy, got %d", len(decoded))
	}
}
