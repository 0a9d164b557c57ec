package strategy

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-wallet-accounts/core"
)

type stubVerifier struct {
	err   error
	calls int
}

func (v *stubVerifier) Verify(_ context.Context, address string, challenge string, signature string) error {
	v.calls++
	return v.err
}

func newWeb3Strategy(t *testing.T, store core.AccountStore, verifier SignatureVerifier) *Web3 {
	t.Helper()
	strategy, err := NewWeb3(store, verifier)
	if err != nil {
		t.Fatalf("new web3 strategy: %v", err)
	}
	return strategy
}

func TestWeb3_RegisterThenAuthenticateRoundTrip(t *testing.T) {
	store := newMemoryAccountStore()
	verifier := &stubVerifier{}
	strategy := newWeb3Strategy(t, store, verifier)

	result, err := strategy.Register(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address: " 0xabc ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	account := store.accounts[result.ID]
	if account.WalletAddress != "0xabc" {
		t.Fatalf("expected trimmed address, got %q", account.WalletAddress)
	}
	if account.Name != "0xabc" {
		t.Fatalf("expected address fallback display name, got %q", account.Name)
	}

	user, err := strategy.Authenticate(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address:   "0xabc",
		Challenge: "nonce-1",
		Signature: "sig-1",
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != result.ID || user.Username != "0xabc" {
		t.Fatalf("unexpected user: %#v", user)
	}
	if verifier.calls != 1 {
		t.Fatalf("expected one verification, got %d", verifier.calls)
	}
}

func TestWeb3_RegisterDuplicateAddressIsGlobal(t *testing.T) {
	store := newMemoryAccountStore()
	strategy := newWeb3Strategy(t, store, &stubVerifier{})

	if _, err := strategy.Register(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address: "0xabc",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// The same address is taken even when registered under another tenant.
	_, err := strategy.Register(context.Background(), "tenant-b", core.AddressAccountRequest{
		Address: "0xabc",
	})
	if err == nil {
		t.Fatalf("expected duplicate error across tenants")
	}
	if code := textCodeOf(t, err); code != core.AccountErrorDuplicateCredential {
		t.Fatalf("expected duplicate text code, got %q", code)
	}
}

func TestWeb3_AuthenticateRejectsBadSignature(t *testing.T) {
	store := newMemoryAccountStore()
	verifier := &stubVerifier{err: fmt.Errorf("recovered key mismatch")}
	strategy := newWeb3Strategy(t, store, verifier)

	if _, err := strategy.Register(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address: "0xabc",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := strategy.Authenticate(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address:   "0xabc",
		Challenge: "nonce-1",
		Signature: "forged",
	})
	if err == nil {
		t.Fatalf("expected verification failure")
	}
	if code := textCodeOf(t, err); code != core.AccountErrorInvalidCredential {
		t.Fatalf("expected invalid credential code, got %q", code)
	}
}

func TestWeb3_AuthenticateUnknownAddressFails(t *testing.T) {
	strategy := newWeb3Strategy(t, newMemoryAccountStore(), &stubVerifier{})

	_, err := strategy.Authenticate(context.Background(), "tenant-a", core.AddressAccountRequest{
		Address:   "0xghost",
		Challenge: "nonce-1",
		Signature: "sig-1",
	})
	if err == nil {
		t.Fatalf("expected unknown address failure")
	}
	if code := textCodeOf(t, err); code != core.AccountErrorInvalidCredential {
		t.Fatalf("expected invalid credential code, got %q", code)
	}
}

func TestWeb3_ConstructorRequiresCollaborators(t *testing.T) {
	if _, err := NewWeb3(nil, &stubVerifier{}); err == nil {
		t.Fatalf("expected account store requirement")
	}
	if _, err := NewWeb3(newMemoryAccountStore(), nil); err == nil {
		t.Fatalf("expected verifier requirement")
	}
}
