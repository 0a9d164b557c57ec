package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-wallet-accounts/core"
)

const accountCacheKeyPrefix = "go-wallet-accounts::account::v1"

// CachedAccountStore layers a read-through cache over an AccountStore. Writes
// pass through and invalidate the affected lookups; hot authentication reads
// (email lookup, address lookup) hit the cache.
type CachedAccountStore struct {
	base  core.AccountStore
	cache repositorycache.CacheService
}

func NewCachedAccountStore(base core.AccountStore, cacheService repositorycache.CacheService) (*CachedAccountStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base account store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: account cache service is required")
	}
	return &CachedAccountStore{base: base, cache: cacheService}, nil
}

func accountCacheKey(segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, accountCacheKeyPrefix)
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(strings.TrimSpace(segment)))
	}
	return strings.Join(escaped, "::")
}

type accountWithHash struct {
	Account core.Account
	Hash    string
}

func (s *CachedAccountStore) CreateEmailAccount(ctx context.Context, in core.CreateEmailAccountInput) (core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	account, err := s.base.CreateEmailAccount(ctx, in)
	if err != nil {
		return core.Account{}, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.cache.Delete(ctx, accountCacheKey("email", in.Tenant, email)); err != nil {
		return core.Account{}, err
	}
	if err := s.cache.Delete(ctx, accountCacheKey("has_email", in.Tenant, email)); err != nil {
		return core.Account{}, err
	}
	return account, nil
}

func (s *CachedAccountStore) CreateAddressAccount(ctx context.Context, in core.CreateAddressAccountInput) (core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	account, err := s.base.CreateAddressAccount(ctx, in)
	if err != nil {
		return core.Account{}, err
	}
	address := strings.TrimSpace(in.Address)
	if err := s.cache.Delete(ctx, accountCacheKey("address", address)); err != nil {
		return core.Account{}, err
	}
	if err := s.cache.Delete(ctx, accountCacheKey("has_address", address)); err != nil {
		return core.Account{}, err
	}
	return account, nil
}

func (s *CachedAccountStore) GetByEmail(ctx context.Context, tenant string, email string) (core.Account, string, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, "", fmt.Errorf("sqlstore: cached account store is not configured")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	key := accountCacheKey("email", tenant, normalized)
	entry, err := repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (accountWithHash, error) {
		account, hash, fetchErr := s.base.GetByEmail(ctx, tenant, normalized)
		if fetchErr != nil {
			return accountWithHash{}, fetchErr
		}
		return accountWithHash{Account: account, Hash: hash}, nil
	})
	if err != nil {
		return core.Account{}, "", err
	}
	return entry.Account, entry.Hash, nil
}

func (s *CachedAccountStore) GetByID(ctx context.Context, id string) (core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Account{}, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	key := accountCacheKey("id", id)
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (core.Account, error) {
		return s.base.GetByID(ctx, id)
	})
}

func (s *CachedAccountStore) HasEmail(ctx context.Context, tenant string, email string) (bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return false, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	key := accountCacheKey("has_email", tenant, normalized)
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (bool, error) {
		return s.base.HasEmail(ctx, tenant, normalized)
	})
}

func (s *CachedAccountStore) HasWalletAddress(ctx context.Context, address string) (bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return false, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	trimmed := strings.TrimSpace(address)
	key := accountCacheKey("has_address", trimmed)
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (bool, error) {
		return s.base.HasWalletAddress(ctx, trimmed)
	})
}

func (s *CachedAccountStore) FindByWalletAddress(ctx context.Context, address string) ([]core.Account, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return nil, fmt.Errorf("sqlstore: cached account store is not configured")
	}
	trimmed := strings.TrimSpace(address)
	key := accountCacheKey("address", trimmed)
	accounts, err := repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]core.Account, error) {
		return s.base.FindByWalletAddress(ctx, trimmed)
	})
	if err != nil {
		return nil, err
	}
	out := make([]core.Account, len(accounts))
	copy(out, accounts)
	return out, nil
}

var _ core.AccountStore = (*CachedAccountStore)(nil)
