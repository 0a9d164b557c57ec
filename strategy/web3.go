package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
)

// Web3 authenticates holders by a signed challenge over an externally owned
// wallet address. No secret is stored; registration records the verified
// address and authentication re-verifies a fresh proof.
//
// Address identity is global rather than tenant-scoped.
type Web3 struct {
	accounts core.AccountStore
	verifier SignatureVerifier
}

func NewWeb3(accounts core.AccountStore, verifier SignatureVerifier) (*Web3, error) {
	if accounts == nil {
		return nil, fmt.Errorf("strategy: account store is required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("strategy: signature verifier is required")
	}
	return &Web3{accounts: accounts, verifier: verifier}, nil
}

func (s *Web3) Register(ctx context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error) {
	if s == nil || s.accounts == nil {
		return core.RegistrationResult{}, fmt.Errorf("strategy: web3 strategy is not configured")
	}
	req, err := addressRequest(request)
	if err != nil {
		return core.RegistrationResult{}, err
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return core.RegistrationResult{}, fmt.Errorf("strategy: wallet address is required")
	}

	exists, err := s.accounts.HasWalletAddress(ctx, address)
	if err != nil {
		return core.RegistrationResult{}, err
	}
	if exists {
		return core.RegistrationResult{}, core.DuplicateCredentialError(
			fmt.Sprintf("strategy: wallet address %q is already registered", address),
		)
	}

	account, err := s.accounts.CreateAddressAccount(ctx, core.CreateAddressAccountInput{
		Tenant:  tenant,
		Name:    req.DisplayName(),
		Address: address,
	})
	if err != nil {
		return core.RegistrationResult{}, err
	}
	return core.RegistrationResult{ID: account.ID}, nil
}

func (s *Web3) Authenticate(ctx context.Context, _ string, request core.AccountRequest) (core.AuthenticatedUser, error) {
	if s == nil || s.accounts == nil || s.verifier == nil {
		return core.AuthenticatedUser{}, fmt.Errorf("strategy: web3 strategy is not configured")
	}
	req, err := addressRequest(request)
	if err != nil {
		return core.AuthenticatedUser{}, err
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return core.AuthenticatedUser{}, core.InvalidCredentialError("strategy: wallet address is required")
	}

	if err := s.verifier.Verify(ctx, address, req.Challenge, req.Signature); err != nil {
		return core.AuthenticatedUser{}, core.InvalidCredentialError(
			fmt.Sprintf("strategy: signature verification failed for %q", address),
		)
	}

	accounts, err := s.accounts.FindByWalletAddress(ctx, address)
	if err != nil {
		return core.AuthenticatedUser{}, err
	}
	if len(accounts) == 0 {
		return core.AuthenticatedUser{}, core.InvalidCredentialError(
			fmt.Sprintf("strategy: no account registered for address %q", address),
		)
	}

	account := accounts[0]
	return core.AuthenticatedUser{
		ID:       account.ID,
		Username: account.WalletAddress,
	}, nil
}

var _ core.AccountStrategy = (*Web3)(nil)
