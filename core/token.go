package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const defaultTokenBytes = 32

// OpaqueTokenIssuer issues URL-safe random session tokens. It is the default
// TokenIssuer; deployments with their own token service inject theirs.
type OpaqueTokenIssuer struct {
	Bytes int
}

func (i OpaqueTokenIssuer) GenerateToken(context.Context) (string, error) {
	size := i.Bytes
	if size <= 0 {
		size = defaultTokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("core: token entropy unavailable: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var _ TokenIssuer = OpaqueTokenIssuer{}
