package core

import (
	"context"
	"fmt"
	"strings"
)

// GetAccountWalletMappings returns the tenant-scoped wallet listings for one
// account in storage insertion order.
func (s *Service) GetAccountWalletMappings(ctx context.Context, tenant string, accountID string) (AccountWalletListing, error) {
	if s == nil || s.walletStore == nil {
		return AccountWalletListing{}, fmt.Errorf("core: wallet store is not configured")
	}
	trimmed := strings.TrimSpace(accountID)
	if trimmed == "" {
		return AccountWalletListing{}, s.mapError(fmt.Errorf("core: account id is required"))
	}
	wallets, err := s.walletStore.ListMappings(ctx, tenant, trimmed)
	if err != nil {
		return AccountWalletListing{}, s.mapError(err)
	}
	return AccountWalletListing{
		Account: trimmed,
		Wallets: wallets,
	}, nil
}

func (s *Service) HasAccountEmail(ctx context.Context, tenant string, email string) (bool, error) {
	if s == nil || s.accountStore == nil {
		return false, fmt.Errorf("core: account store is not configured")
	}
	exists, err := s.accountStore.HasEmail(ctx, tenant, strings.TrimSpace(email))
	if err != nil {
		return false, s.mapError(err)
	}
	return exists, nil
}

// HasAccountWalletAddress checks address existence across all tenants.
// Address identity is global, matching the observed behavior of the rest of
// the address lookups.
func (s *Service) HasAccountWalletAddress(ctx context.Context, address string) (bool, error) {
	if s == nil || s.accountStore == nil {
		return false, fmt.Errorf("core: account store is not configured")
	}
	exists, err := s.accountStore.HasWalletAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return false, s.mapError(err)
	}
	return exists, nil
}

func (s *Service) GetAccountByWalletAddress(ctx context.Context, address string) ([]Account, error) {
	if s == nil || s.accountStore == nil {
		return nil, fmt.Errorf("core: account store is not configured")
	}
	accounts, err := s.accountStore.FindByWalletAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return nil, s.mapError(err)
	}
	return accounts, nil
}

// GetNameFor resolves an account's display identifier. A missing account is a
// hard not-found failure, never an empty result.
func (s *Service) GetNameFor(ctx context.Context, accountID string) (string, error) {
	if s == nil || s.accountStore == nil {
		return "", fmt.Errorf("core: account store is not configured")
	}
	account, err := s.accountStore.GetByID(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return "", s.mapError(err)
	}
	if account.Email != "" {
		return account.Email, nil
	}
	return account.Name, nil
}
