// Package strategy holds the credential-kind-specific registration and
// authentication implementations dispatched by the account service. The
// variant set is closed: email/password and externally-signed wallet address.
package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
)

// SignatureVerifier validates a cryptographic proof binding a challenge to a
// wallet address. Key resolution and signature math live outside this module.
type SignatureVerifier interface {
	Verify(ctx context.Context, address string, challenge string, signature string) error
}

func emailRequest(request core.AccountRequest) (core.EmailAccountRequest, error) {
	switch typed := request.(type) {
	case core.EmailAccountRequest:
		return typed, nil
	case *core.EmailAccountRequest:
		if typed != nil {
			return *typed, nil
		}
	}
	return core.EmailAccountRequest{}, fmt.Errorf("strategy: email request expected, got %T", request)
}

func addressRequest(request core.AccountRequest) (core.AddressAccountRequest, error) {
	switch typed := request.(type) {
	case core.AddressAccountRequest:
		return typed, nil
	case *core.AddressAccountRequest:
		if typed != nil {
			return *typed, nil
		}
	}
	return core.AddressAccountRequest{}, fmt.Errorf("strategy: address request expected, got %T", request)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
